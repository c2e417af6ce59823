package journals

import "github.com/go-chi/chi/v5"

// MountRoutes registers journal entry routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Post("/{id}/post", h.postDraft)
}
