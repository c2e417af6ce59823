package accounts

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/accountancy-cloud/accountancy-cloud/internal/ledger/shared"
)

// Repository encapsulates DB operations for the chart of accounts.
type Repository interface {
	List(ctx context.Context) ([]Account, error)
	Get(ctx context.Context, id uuid.UUID) (Account, error)
	Create(ctx context.Context, account Account) (Account, error)
	Update(ctx context.Context, account Account) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	ListChildren(ctx context.Context, parentID uuid.UUID) ([]Account, error)
	HasPostings(ctx context.Context, id uuid.UUID) (bool, error)
	// SumPostedLines returns total debit and credit across posted journal
	// lines for the account, limited to entries dated on or before asOf.
	SumPostedLines(ctx context.Context, id uuid.UUID, asOf time.Time) (debit, credit decimal.Decimal, err error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const accountColumns = `id, code, name, type, sub_type, parent_id, description, is_active, balance, created_at`

func scanAccount(row pgx.Row) (Account, error) {
	var a Account
	err := row.Scan(&a.ID, &a.Code, &a.Name, &a.Type, &a.SubType, &a.ParentID, &a.Description, &a.IsActive, &a.Balance, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, shared.ErrAccountNotFound
		}
		return Account{}, err
	}
	return a, nil
}

func (r *repository) List(ctx context.Context) ([]Account, error) {
	rows, err := r.db.Query(ctx, `SELECT `+accountColumns+` FROM accounts WHERE is_active ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAccounts(rows)
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (Account, error) {
	return scanAccount(r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id=$1`, id))
}

func (r *repository) Create(ctx context.Context, account Account) (Account, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO accounts (id, code, name, type, sub_type, parent_id, description, is_active, balance)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9) RETURNING `+accountColumns,
		account.ID, account.Code, account.Name, account.Type, account.SubType, account.ParentID, account.Description, account.IsActive, account.Balance)
	created, err := scanAccount(row)
	if err != nil {
		if isUniqueViolation(err) {
			return Account{}, shared.ErrDuplicateAccountCode
		}
		return Account{}, err
	}
	return created, nil
}

func (r *repository) Update(ctx context.Context, account Account) error {
	cmd, err := r.db.Exec(ctx, `UPDATE accounts SET code=$2, name=$3, type=$4, sub_type=$5, parent_id=$6, description=$7, is_active=$8 WHERE id=$1`,
		account.ID, account.Code, account.Name, account.Type, account.SubType, account.ParentID, account.Description, account.IsActive)
	if err != nil {
		if isUniqueViolation(err) {
			return shared.ErrDuplicateAccountCode
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return shared.ErrAccountNotFound
	}
	return nil
}

func (r *repository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	cmd, err := r.db.Exec(ctx, `UPDATE accounts SET is_active=$2 WHERE id=$1`, id, active)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return shared.ErrAccountNotFound
	}
	return nil
}

func (r *repository) ListChildren(ctx context.Context, parentID uuid.UUID) ([]Account, error) {
	rows, err := r.db.Query(ctx, `SELECT `+accountColumns+` FROM accounts WHERE parent_id=$1 ORDER BY code`, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAccounts(rows)
}

func (r *repository) HasPostings(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM journal_entry_line_items WHERE account_id=$1)`, id).Scan(&exists)
	return exists, err
}

func (r *repository) SumPostedLines(ctx context.Context, id uuid.UUID, asOf time.Time) (decimal.Decimal, decimal.Decimal, error) {
	var debit, credit decimal.Decimal
	err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(li.debit_amount), 0), COALESCE(SUM(li.credit_amount), 0)
FROM journal_entry_line_items li
JOIN journal_entries e ON e.id = li.journal_entry_id
WHERE li.account_id=$1 AND e.status='posted' AND e.entry_date <= $2`, id, asOf).Scan(&debit, &credit)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return debit, credit, nil
}

func collectAccounts(rows pgx.Rows) ([]Account, error) {
	var accounts []Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.Code, &a.Name, &a.Type, &a.SubType, &a.ParentID, &a.Description, &a.IsActive, &a.Balance, &a.CreatedAt); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
