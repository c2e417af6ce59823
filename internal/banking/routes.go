package banking

import "github.com/go-chi/chi/v5"

// MountRoutes registers bank account routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.listAccounts)
	r.Post("/", h.createAccount)
	r.Get("/{id}", h.getAccount)
	r.Put("/{id}", h.updateAccount)
	r.Get("/{id}/transactions", h.listTransactions)
}

// MountTransactionRoutes registers bank transaction routes.
func (h *Handler) MountTransactionRoutes(r chi.Router) {
	r.Get("/", h.listAllTransactions)
	r.Post("/", h.createTransaction)
	r.Put("/{id}/reconcile", h.reconcile)
	r.Put("/{id}/match", h.match)
}
