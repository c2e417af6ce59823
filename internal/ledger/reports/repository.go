package reports

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Cash accounts are the ledger accounts bank accounts link to, plus asset
// accounts whose sub type marks them as cash for anything not held at a bank.
const cashPredicate = `(EXISTS (SELECT 1 FROM bank_accounts b WHERE b.account_id = a.id)
	OR (a.type = 'asset' AND lower(coalesce(a.sub_type, '')) IN ('cash', 'bank', 'cash equivalents')))`

// Repository aggregates posted journal activity for the report builders.
type Repository interface {
	// AccountBalances returns one row per account with activity split into
	// opening (before start) and in-window debit/credit sums.
	AccountBalances(ctx context.Context, start, end time.Time) ([]AccountBalance, error)
	// BalancesAsOf returns cumulative debit/credit sums up to asOf.
	BalancesAsOf(ctx context.Context, asOf time.Time) ([]AccountBalance, error)
	// CashActivity returns the cash footprint of every posted entry in the
	// window that touches a cash account.
	CashActivity(ctx context.Context, start, end time.Time) ([]CashEntry, error)
	// CashBalanceAsOf returns the total cash account balance before the date.
	CashBalanceAsOf(ctx context.Context, before time.Time) (decimal.Decimal, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) AccountBalances(ctx context.Context, start, end time.Time) ([]AccountBalance, error) {
	rows, err := r.db.Query(ctx, `SELECT a.id, a.code, a.name, a.type, a.sub_type,
COALESCE(SUM(li.debit_amount - li.credit_amount) FILTER (WHERE e.entry_date < $1), 0) AS opening,
COALESCE(SUM(li.debit_amount) FILTER (WHERE e.entry_date >= $1 AND e.entry_date <= $2), 0) AS debit,
COALESCE(SUM(li.credit_amount) FILTER (WHERE e.entry_date >= $1 AND e.entry_date <= $2), 0) AS credit
FROM accounts a
JOIN journal_entry_line_items li ON li.account_id = a.id
JOIN journal_entries e ON e.id = li.journal_entry_id AND e.status = 'posted' AND e.entry_date <= $2
GROUP BY a.id, a.code, a.name, a.type, a.sub_type
ORDER BY a.code`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []AccountBalance
	for rows.Next() {
		var b AccountBalance
		if err := rows.Scan(&b.AccountID, &b.Code, &b.Name, &b.Type, &b.SubType, &b.Opening, &b.Debit, &b.Credit); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *repository) BalancesAsOf(ctx context.Context, asOf time.Time) ([]AccountBalance, error) {
	rows, err := r.db.Query(ctx, `SELECT a.id, a.code, a.name, a.type, a.sub_type,
COALESCE(SUM(li.debit_amount), 0) AS debit,
COALESCE(SUM(li.credit_amount), 0) AS credit
FROM accounts a
JOIN journal_entry_line_items li ON li.account_id = a.id
JOIN journal_entries e ON e.id = li.journal_entry_id AND e.status = 'posted' AND e.entry_date <= $1
GROUP BY a.id, a.code, a.name, a.type, a.sub_type
ORDER BY a.code`, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []AccountBalance
	for rows.Next() {
		var b AccountBalance
		b.Opening = decimal.Zero
		if err := rows.Scan(&b.AccountID, &b.Code, &b.Name, &b.Type, &b.SubType, &b.Debit, &b.Credit); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *repository) CashActivity(ctx context.Context, start, end time.Time) ([]CashEntry, error) {
	rows, err := r.db.Query(ctx, `SELECT e.id, e.entry_date, e.description,
COALESCE(SUM(CASE WHEN `+cashPredicate+` THEN li.debit_amount - li.credit_amount ELSE 0 END), 0) AS cash_change,
bool_or(a.type IN ('revenue', 'expense')) AS touches_rev_expense,
bool_or(a.type = 'asset' AND NOT (`+cashPredicate+`)) AS touches_noncash_asset
FROM journal_entries e
JOIN journal_entry_line_items li ON li.journal_entry_id = e.id
JOIN accounts a ON a.id = li.account_id
WHERE e.status = 'posted' AND e.entry_date >= $1 AND e.entry_date <= $2
GROUP BY e.id, e.entry_date, e.description
HAVING bool_or(`+cashPredicate+`)
ORDER BY e.entry_date`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []CashEntry
	for rows.Next() {
		var e CashEntry
		if err := rows.Scan(&e.EntryID, &e.EntryDate, &e.Description, &e.CashChange, &e.TouchesRevExpense, &e.TouchesNonCashAsset); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *repository) CashBalanceAsOf(ctx context.Context, before time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(li.debit_amount - li.credit_amount), 0)
FROM journal_entry_line_items li
JOIN journal_entries e ON e.id = li.journal_entry_id
JOIN accounts a ON a.id = li.account_id
WHERE e.status = 'posted' AND e.entry_date < $1 AND `+cashPredicate, before).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
