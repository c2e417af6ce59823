package invoices

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/accountancy-cloud/accountancy-cloud/internal/platform/httpx"
)

var (
	// ErrInvoiceNotFound indicates a missing invoice.
	ErrInvoiceNotFound = fmt.Errorf("%w: invoice not found", httpx.ErrNotFound)
	// ErrDuplicateNumber indicates an invoice number collision.
	ErrDuplicateNumber = fmt.Errorf("%w: invoice number already used", httpx.ErrConflict)
)

// Repository encapsulates DB operations for invoices and their lines.
type Repository interface {
	List(ctx context.Context) ([]Invoice, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]Invoice, error)
	Get(ctx context.Context, id uuid.UUID) (Invoice, error)
	Create(ctx context.Context, invoice Invoice) error
	Update(ctx context.Context, invoice Invoice) error
	UpdatePayment(ctx context.Context, id uuid.UUID, paid decimal.Decimal, status InvoiceStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const invoiceColumns = `id, invoice_number, client_id, issue_date, due_date, status, subtotal, tax_amount, total_amount, paid_amount, notes, terms, created_at`

func (r *repository) List(ctx context.Context) ([]Invoice, error) {
	return r.listWhere(ctx, ``)
}

func (r *repository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]Invoice, error) {
	return r.listWhere(ctx, `WHERE client_id=$1`, clientID)
}

func (r *repository) listWhere(ctx context.Context, where string, args ...any) ([]Invoice, error) {
	rows, err := r.db.Query(ctx, `SELECT `+invoiceColumns+` FROM invoices `+where+` ORDER BY issue_date DESC, invoice_number DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Invoice
	for rows.Next() {
		var inv Invoice
		if err := scanInvoice(rows, &inv); err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func scanInvoice(row pgx.Row, inv *Invoice) error {
	return row.Scan(&inv.ID, &inv.InvoiceNumber, &inv.ClientID, &inv.IssueDate, &inv.DueDate, &inv.Status,
		&inv.Subtotal, &inv.TaxAmount, &inv.TotalAmount, &inv.PaidAmount, &inv.Notes, &inv.Terms, &inv.CreatedAt)
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (Invoice, error) {
	var inv Invoice
	err := scanInvoice(r.db.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id=$1`, id), &inv)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Invoice{}, ErrInvoiceNotFound
		}
		return Invoice{}, err
	}
	rows, err := r.db.Query(ctx, `SELECT id, invoice_id, description, quantity, rate, amount, account_id
FROM invoice_line_items WHERE invoice_id=$1 ORDER BY id`, id)
	if err != nil {
		return Invoice{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var line LineItem
		if err := rows.Scan(&line.ID, &line.InvoiceID, &line.Description, &line.Quantity, &line.Rate, &line.Amount, &line.AccountID); err != nil {
			return Invoice{}, err
		}
		inv.Lines = append(inv.Lines, line)
	}
	return inv, rows.Err()
}

func (r *repository) Create(ctx context.Context, invoice Invoice) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `INSERT INTO invoices (id, invoice_number, client_id, issue_date, due_date, status, subtotal, tax_amount, total_amount, paid_amount, notes, terms, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
			invoice.ID, invoice.InvoiceNumber, invoice.ClientID, invoice.IssueDate, invoice.DueDate, invoice.Status,
			invoice.Subtotal, invoice.TaxAmount, invoice.TotalAmount, invoice.PaidAmount, invoice.Notes, invoice.Terms, invoice.CreatedAt)
		if err != nil {
			return mapUnique(err)
		}
		return insertLines(ctx, tx, invoice.Lines)
	})
}

func (r *repository) Update(ctx context.Context, invoice Invoice) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		cmd, err := tx.Exec(ctx, `UPDATE invoices SET client_id=$2, issue_date=$3, due_date=$4, status=$5, subtotal=$6, tax_amount=$7, total_amount=$8, paid_amount=$9, notes=$10, terms=$11 WHERE id=$1`,
			invoice.ID, invoice.ClientID, invoice.IssueDate, invoice.DueDate, invoice.Status,
			invoice.Subtotal, invoice.TaxAmount, invoice.TotalAmount, invoice.PaidAmount, invoice.Notes, invoice.Terms)
		if err != nil {
			return mapUnique(err)
		}
		if cmd.RowsAffected() == 0 {
			return ErrInvoiceNotFound
		}
		if _, err := tx.Exec(ctx, `DELETE FROM invoice_line_items WHERE invoice_id=$1`, invoice.ID); err != nil {
			return err
		}
		return insertLines(ctx, tx, invoice.Lines)
	})
}

func (r *repository) UpdatePayment(ctx context.Context, id uuid.UUID, paid decimal.Decimal, status InvoiceStatus) error {
	cmd, err := r.db.Exec(ctx, `UPDATE invoices SET paid_amount=$2, status=$3 WHERE id=$1`, id, paid, status)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrInvoiceNotFound
	}
	return nil
}

// Delete removes the invoice and, through the FK cascade, its lines.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM invoices WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrInvoiceNotFound
	}
	return nil
}

func (r *repository) inTx(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

func insertLines(ctx context.Context, tx pgx.Tx, lines []LineItem) error {
	for _, line := range lines {
		if _, err := tx.Exec(ctx, `INSERT INTO invoice_line_items (id, invoice_id, description, quantity, rate, amount, account_id)
VALUES ($1,$2,$3,$4,$5,$6,$7)`, line.ID, line.InvoiceID, line.Description, line.Quantity, line.Rate, line.Amount, line.AccountID); err != nil {
			return err
		}
	}
	return nil
}

func mapUnique(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateNumber
	}
	return err
}
