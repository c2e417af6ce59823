package expenses

import "github.com/go-chi/chi/v5"

// MountRoutes registers expense claim routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Put("/{id}/approve", h.decide(h.approve))
	r.Put("/{id}/reject", h.decide(h.reject))
	r.Put("/{id}/pay", h.decide(h.pay))
}
