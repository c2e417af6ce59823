package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/accountancy-cloud/accountancy-cloud/internal/app"
	"github.com/accountancy-cloud/accountancy-cloud/internal/banking"
	"github.com/accountancy-cloud/accountancy-cloud/internal/contacts/clients"
	"github.com/accountancy-cloud/accountancy-cloud/internal/contacts/vendors"
	"github.com/accountancy-cloud/accountancy-cloud/internal/dashboard"
	"github.com/accountancy-cloud/accountancy-cloud/internal/expenses"
	"github.com/accountancy-cloud/accountancy-cloud/internal/ledger/accounts"
	"github.com/accountancy-cloud/accountancy-cloud/internal/ledger/journals"
	"github.com/accountancy-cloud/accountancy-cloud/internal/ledger/reports"
	"github.com/accountancy-cloud/accountancy-cloud/internal/observability"
	"github.com/accountancy-cloud/accountancy-cloud/internal/platform/cache"
	"github.com/accountancy-cloud/accountancy-cloud/internal/platform/db"
	"github.com/accountancy-cloud/accountancy-cloud/internal/purchasing/bills"
	"github.com/accountancy-cloud/accountancy-cloud/internal/purchasing/orders"
	"github.com/accountancy-cloud/accountancy-cloud/internal/sales/invoices"
	"github.com/accountancy-cloud/accountancy-cloud/internal/shared"
)

// postingFanout notifies every posting listener: the report cache version
// and the prometheus counter.
type postingFanout struct {
	cache   *reports.Cache
	metrics *observability.Metrics
}

func (f postingFanout) Bump(ctx context.Context) error {
	f.metrics.EntryPosted()
	return f.cache.Bump(ctx)
}

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, caching disabled", slog.Any("error", err))
		redisClient = nil
	}
	defer func() {
		if redisClient == nil {
			return
		}
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	auditLogger := shared.NewAuditLogger(dbpool)
	approvalRecorder := shared.NewApprovalRecorder(dbpool, logger)
	idempotencyStore := shared.NewIdempotencyStore(dbpool)

	reportsCache := reports.NewCache(redisClient, cfg.CacheTTL)
	metrics := observability.NewMetrics()

	accountsRepo := accounts.NewRepository(dbpool)
	accountsService := accounts.NewService(accountsRepo)

	journalsRepo := journals.NewRepository(dbpool)
	journalsService := journals.NewService(journalsRepo, auditLogger, idempotencyStore)
	journalsService.WithInvalidator(postingFanout{cache: reportsCache, metrics: metrics})

	reportsRepo := reports.NewRepository(dbpool)
	reportsService := reports.NewService(reportsRepo, reportsCache)

	clientsRepo := clients.NewRepository(dbpool)
	clientsService := clients.NewService(clientsRepo)

	vendorsRepo := vendors.NewRepository(dbpool)
	vendorsService := vendors.NewService(vendorsRepo)

	invoicesRepo := invoices.NewRepository(dbpool)
	invoicesService := invoices.NewService(invoicesRepo)

	billsRepo := bills.NewRepository(dbpool)
	billsService := bills.NewService(billsRepo)

	ordersRepo := orders.NewRepository(dbpool)
	ordersService := orders.NewService(ordersRepo)

	expensesRepo := expenses.NewRepository(dbpool)
	expensesService := expenses.NewService(expensesRepo, approvalRecorder, auditLogger)

	bankingRepo := banking.NewRepository(dbpool)
	bankingService := banking.NewService(bankingRepo)

	dashboardRepo := dashboard.NewRepository(dbpool)
	dashboardService := dashboard.NewService(dashboardRepo, reportsCache)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		AccountsHandler:  accounts.NewHandler(logger, accountsService),
		JournalsHandler:  journals.NewHandler(logger, journalsService),
		ReportsHandler:   reports.NewHandler(logger, reportsService),
		ClientsHandler:   clients.NewHandler(logger, clientsService),
		VendorsHandler:   vendors.NewHandler(logger, vendorsService),
		InvoicesHandler:  invoices.NewHandler(logger, invoicesService),
		BillsHandler:     bills.NewHandler(logger, billsService),
		OrdersHandler:    orders.NewHandler(logger, ordersService),
		ExpensesHandler:  expenses.NewHandler(logger, expensesService),
		BankingHandler:   banking.NewHandler(logger, bankingService),
		DashboardHandler: dashboard.NewHandler(logger, dashboardService),
		Metrics:          metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
