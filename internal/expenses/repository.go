package expenses

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/accountancy-cloud/accountancy-cloud/internal/platform/httpx"
)

var (
	// ErrClaimNotFound indicates a missing expense claim.
	ErrClaimNotFound = fmt.Errorf("%w: expense claim not found", httpx.ErrNotFound)
	// ErrDuplicateNumber indicates a claim number collision.
	ErrDuplicateNumber = fmt.Errorf("%w: claim number already used", httpx.ErrConflict)
)

// Repository encapsulates DB operations for expense claims.
type Repository interface {
	List(ctx context.Context) ([]ExpenseClaim, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]ExpenseClaim, error)
	Get(ctx context.Context, id uuid.UUID) (ExpenseClaim, error)
	Create(ctx context.Context, claim ExpenseClaim) error
	Update(ctx context.Context, claim ExpenseClaim) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const claimColumns = `id, claim_number, user_id, description, amount, expense_date, status, category, account_id, receipt_url, notes, approved_by, approved_at, created_at`

func (r *repository) List(ctx context.Context) ([]ExpenseClaim, error) {
	return r.listWhere(ctx, ``)
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]ExpenseClaim, error) {
	return r.listWhere(ctx, `WHERE user_id=$1`, userID)
}

func (r *repository) listWhere(ctx context.Context, where string, args ...any) ([]ExpenseClaim, error) {
	rows, err := r.db.Query(ctx, `SELECT `+claimColumns+` FROM expense_claims `+where+` ORDER BY expense_date DESC, claim_number DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ExpenseClaim
	for rows.Next() {
		var c ExpenseClaim
		if err := scanClaim(rows, &c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanClaim(row pgx.Row, c *ExpenseClaim) error {
	return row.Scan(&c.ID, &c.ClaimNumber, &c.UserID, &c.Description, &c.Amount, &c.ExpenseDate, &c.Status,
		&c.Category, &c.AccountID, &c.ReceiptURL, &c.Notes, &c.ApprovedBy, &c.ApprovedAt, &c.CreatedAt)
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (ExpenseClaim, error) {
	var c ExpenseClaim
	err := scanClaim(r.db.QueryRow(ctx, `SELECT `+claimColumns+` FROM expense_claims WHERE id=$1`, id), &c)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ExpenseClaim{}, ErrClaimNotFound
		}
		return ExpenseClaim{}, err
	}
	return c, nil
}

func (r *repository) Create(ctx context.Context, claim ExpenseClaim) error {
	_, err := r.db.Exec(ctx, `INSERT INTO expense_claims (id, claim_number, user_id, description, amount, expense_date, status, category, account_id, receipt_url, notes, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		claim.ID, claim.ClaimNumber, claim.UserID, claim.Description, claim.Amount, claim.ExpenseDate, claim.Status,
		claim.Category, claim.AccountID, claim.ReceiptURL, claim.Notes, claim.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateNumber
		}
		return err
	}
	return nil
}

func (r *repository) Update(ctx context.Context, claim ExpenseClaim) error {
	cmd, err := r.db.Exec(ctx, `UPDATE expense_claims SET description=$2, amount=$3, expense_date=$4, status=$5, category=$6, account_id=$7, receipt_url=$8, notes=$9, approved_by=$10, approved_at=$11 WHERE id=$1`,
		claim.ID, claim.Description, claim.Amount, claim.ExpenseDate, claim.Status, claim.Category, claim.AccountID, claim.ReceiptURL, claim.Notes, claim.ApprovedBy, claim.ApprovedAt)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrClaimNotFound
	}
	return nil
}
