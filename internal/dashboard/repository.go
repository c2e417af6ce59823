package dashboard

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Repository exposes the aggregate queries behind the dashboard metrics.
type Repository interface {
	// TotalRevenue sums the collected amount across all paid invoices.
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)
	// RevenueBetween sums paid-invoice revenue for invoices issued in the
	// window, used for the month-over-month growth figure.
	RevenueBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, error)
	// ExpensesBetween sums expense claims dated within the window.
	ExpensesBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, error)
	OutstandingInvoices(ctx context.Context) (decimal.Decimal, error)
	OverdueInvoicesCount(ctx context.Context, asOf time.Time) (int64, error)
	CashBalance(ctx context.Context) (decimal.Decimal, error)
	BankAccountsCount(ctx context.Context) (int64, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(paid_amount), 0) FROM invoices WHERE status = 'paid'`).Scan(&total)
	return total, err
}

func (r *repository) RevenueBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRow(ctx, `
SELECT COALESCE(SUM(paid_amount), 0)
FROM invoices
WHERE status = 'paid'
  AND issue_date >= $1
  AND issue_date < $2`, start, end).Scan(&total)
	return total, err
}

func (r *repository) ExpensesBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRow(ctx, `
SELECT COALESCE(SUM(amount), 0)
FROM expense_claims
WHERE expense_date >= $1
  AND expense_date < $2`, start, end).Scan(&total)
	return total, err
}

func (r *repository) OutstandingInvoices(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRow(ctx, `
SELECT COALESCE(SUM(total_amount - paid_amount), 0)
FROM invoices
WHERE status IN ('sent', 'overdue')`).Scan(&total)
	return total, err
}

func (r *repository) OverdueInvoicesCount(ctx context.Context, asOf time.Time) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
SELECT COUNT(*)
FROM invoices
WHERE status = 'overdue' AND due_date < $1`, asOf).Scan(&count)
	return count, err
}

func (r *repository) CashBalance(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(balance), 0) FROM bank_accounts WHERE is_active`).Scan(&total)
	return total, err
}

func (r *repository) BankAccountsCount(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bank_accounts WHERE is_active`).Scan(&count)
	return count, err
}
