package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/accountancy-cloud/accountancy-cloud/internal/ledger/reports"
)

type stubRepo struct {
	revenue  map[time.Time]decimal.Decimal
	expenses map[time.Time]decimal.Decimal
	calls    int
}

func (s *stubRepo) TotalRevenue(context.Context) (decimal.Decimal, error) {
	s.calls++
	return decimal.RequireFromString("9800.00"), nil
}

func (s *stubRepo) RevenueBetween(_ context.Context, start, _ time.Time) (decimal.Decimal, error) {
	return s.revenue[start], nil
}

func (s *stubRepo) ExpensesBetween(_ context.Context, start, _ time.Time) (decimal.Decimal, error) {
	return s.expenses[start], nil
}

func (s *stubRepo) OutstandingInvoices(context.Context) (decimal.Decimal, error) {
	return decimal.RequireFromString("420.50"), nil
}

func (s *stubRepo) OverdueInvoicesCount(context.Context, time.Time) (int64, error) {
	return 3, nil
}

func (s *stubRepo) CashBalance(context.Context) (decimal.Decimal, error) {
	return decimal.RequireFromString("15000.00"), nil
}

func (s *stubRepo) BankAccountsCount(context.Context) (int64, error) {
	return 2, nil
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	v, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return v
}

func fixedClock() time.Time {
	return time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)
}

func newStubRepo() *stubRepo {
	july := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	june := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return &stubRepo{
		revenue: map[time.Time]decimal.Decimal{
			july: decimal.RequireFromString("1200.00"),
			june: decimal.RequireFromString("1000.00"),
		},
		expenses: map[time.Time]decimal.Decimal{
			july: decimal.RequireFromString("300.00"),
			june: decimal.RequireFromString("400.00"),
		},
	}
}

func TestMetricsComputesGrowth(t *testing.T) {
	svc := NewService(newStubRepo(), nil)
	svc.WithNow(fixedClock)

	out, err := svc.Metrics(context.Background())
	require.NoError(t, err)
	require.True(t, out.TotalRevenue.Equal(dec(t, "9800.00")), "got %s", out.TotalRevenue)
	require.True(t, out.MonthlyExpenses.Equal(dec(t, "300.00")))
	require.True(t, out.RevenueGrowth.Equal(dec(t, "20")), "got %s", out.RevenueGrowth)
	require.True(t, out.ExpenseGrowth.Equal(dec(t, "-25")), "got %s", out.ExpenseGrowth)
	require.Equal(t, int64(3), out.OverdueInvoicesCount)
	require.Equal(t, int64(2), out.BankAccountsCount)
	require.True(t, out.OutstandingInvoices.Equal(dec(t, "420.50")))
}

func TestMetricsGrowthFromZeroBase(t *testing.T) {
	repo := newStubRepo()
	repo.revenue[time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)] = decimal.Zero
	svc := NewService(repo, nil)
	svc.WithNow(fixedClock)

	out, err := svc.Metrics(context.Background())
	require.NoError(t, err)
	require.True(t, out.RevenueGrowth.IsZero())
}

func TestMetricsServedFromCacheUntilBump(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := reports.NewCache(client, time.Minute)

	repo := newStubRepo()
	svc := NewService(repo, cache)
	svc.WithNow(fixedClock)
	ctx := context.Background()

	_, err := svc.Metrics(ctx)
	require.NoError(t, err)
	first := repo.calls

	_, err = svc.Metrics(ctx)
	require.NoError(t, err)
	require.Equal(t, first, repo.calls, "second read must come from cache")

	require.NoError(t, cache.Bump(ctx))
	_, err = svc.Metrics(ctx)
	require.NoError(t, err)
	require.Greater(t, repo.calls, first)
}
