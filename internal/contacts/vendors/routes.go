package vendors

import "github.com/go-chi/chi/v5"

// MountRoutes registers vendor routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.deactivate)
}
