package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/accountancy-cloud/accountancy-cloud/internal/banking"
	"github.com/accountancy-cloud/accountancy-cloud/internal/contacts/clients"
	"github.com/accountancy-cloud/accountancy-cloud/internal/contacts/vendors"
	"github.com/accountancy-cloud/accountancy-cloud/internal/dashboard"
	"github.com/accountancy-cloud/accountancy-cloud/internal/expenses"
	"github.com/accountancy-cloud/accountancy-cloud/internal/ledger/accounts"
	"github.com/accountancy-cloud/accountancy-cloud/internal/ledger/journals"
	"github.com/accountancy-cloud/accountancy-cloud/internal/ledger/reports"
	"github.com/accountancy-cloud/accountancy-cloud/internal/observability"
	"github.com/accountancy-cloud/accountancy-cloud/internal/purchasing/bills"
	"github.com/accountancy-cloud/accountancy-cloud/internal/purchasing/orders"
	"github.com/accountancy-cloud/accountancy-cloud/internal/sales/invoices"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger *slog.Logger
	Config *Config

	AccountsHandler  *accounts.Handler
	JournalsHandler  *journals.Handler
	ReportsHandler   *reports.Handler
	ClientsHandler   *clients.Handler
	VendorsHandler   *vendors.Handler
	InvoicesHandler  *invoices.Handler
	BillsHandler     *bills.Handler
	OrdersHandler    *orders.Handler
	ExpensesHandler  *expenses.Handler
	BankingHandler   *banking.Handler
	DashboardHandler *dashboard.Handler

	Metrics *observability.Metrics
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/accounts", params.AccountsHandler.MountRoutes)
		r.Route("/journal-entries", params.JournalsHandler.MountRoutes)
		r.Route("/reports", params.ReportsHandler.MountRoutes)
		r.Route("/clients", params.ClientsHandler.MountRoutes)
		r.Route("/vendors", params.VendorsHandler.MountRoutes)
		r.Route("/invoices", params.InvoicesHandler.MountRoutes)
		r.Route("/bills", params.BillsHandler.MountRoutes)
		r.Route("/purchase-orders", params.OrdersHandler.MountRoutes)
		r.Route("/expense-claims", params.ExpensesHandler.MountRoutes)
		r.Route("/bank-accounts", params.BankingHandler.MountRoutes)
		r.Route("/bank-transactions", params.BankingHandler.MountTransactionRoutes)
		r.Route("/dashboard", params.DashboardHandler.MountRoutes)
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
