package dashboard

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/accountancy-cloud/accountancy-cloud/internal/ledger/reports"
)

var oneHundred = decimal.NewFromInt(100)

// Service assembles the dashboard metrics from ledger, sales and banking
// aggregates. Results share the reports cache so posting a journal entry
// refreshes the dashboard along with the financial statements.
type Service struct {
	repo  Repository
	cache *reports.Cache
	now   func() time.Time
}

func NewService(repo Repository, cache *reports.Cache) *Service {
	return &Service{repo: repo, cache: cache, now: time.Now}
}

func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Metrics returns the headline figures for the current month.
func (s *Service) Metrics(ctx context.Context) (Metrics, error) {
	now := s.now().UTC()
	key, err := s.cache.BuildKey(ctx, "dashboard", "metrics", now.Format("2006-01-02"))
	if err != nil {
		return Metrics{}, err
	}
	var out Metrics
	err = s.cache.FetchJSON(ctx, key, &out, func(ctx context.Context) (any, error) {
		return s.compute(ctx, now)
	})
	return out, err
}

func (s *Service) compute(ctx context.Context, now time.Time) (Metrics, error) {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	prevStart := monthStart.AddDate(0, -1, 0)
	nextStart := monthStart.AddDate(0, 1, 0)

	totalRevenue, err := s.repo.TotalRevenue(ctx)
	if err != nil {
		return Metrics{}, err
	}
	revenue, err := s.repo.RevenueBetween(ctx, monthStart, nextStart)
	if err != nil {
		return Metrics{}, err
	}
	prevRevenue, err := s.repo.RevenueBetween(ctx, prevStart, monthStart)
	if err != nil {
		return Metrics{}, err
	}
	expenses, err := s.repo.ExpensesBetween(ctx, monthStart, nextStart)
	if err != nil {
		return Metrics{}, err
	}
	prevExpenses, err := s.repo.ExpensesBetween(ctx, prevStart, monthStart)
	if err != nil {
		return Metrics{}, err
	}
	outstanding, err := s.repo.OutstandingInvoices(ctx)
	if err != nil {
		return Metrics{}, err
	}
	overdue, err := s.repo.OverdueInvoicesCount(ctx, now)
	if err != nil {
		return Metrics{}, err
	}
	cash, err := s.repo.CashBalance(ctx)
	if err != nil {
		return Metrics{}, err
	}
	bankCount, err := s.repo.BankAccountsCount(ctx)
	if err != nil {
		return Metrics{}, err
	}

	return Metrics{
		TotalRevenue:         totalRevenue,
		OutstandingInvoices:  outstanding,
		CashBalance:          cash,
		MonthlyExpenses:      expenses,
		OverdueInvoicesCount: overdue,
		BankAccountsCount:    bankCount,
		RevenueGrowth:        growth(revenue, prevRevenue),
		ExpenseGrowth:        growth(expenses, prevExpenses),
	}, nil
}

// growth returns the month-over-month change as a percentage. A zero
// previous period yields zero rather than an undefined ratio.
func growth(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous).Mul(oneHundred).Round(1)
}
