package reports

import "github.com/go-chi/chi/v5"

// MountRoutes registers the financial report routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/profit-loss", h.profitAndLoss)
	r.Get("/balance-sheet", h.balanceSheet)
	r.Get("/cash-flow", h.cashFlow)
	r.Get("/trial-balance", h.trialBalance)
}
