package bills

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/accountancy-cloud/accountancy-cloud/internal/platform/httpx"
)

// ErrBillNotFound indicates a missing bill.
var ErrBillNotFound = fmt.Errorf("%w: bill not found", httpx.ErrNotFound)

// Repository encapsulates DB operations for vendor bills.
type Repository interface {
	List(ctx context.Context) ([]Bill, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]Bill, error)
	Get(ctx context.Context, id uuid.UUID) (Bill, error)
	Create(ctx context.Context, bill Bill) error
	Update(ctx context.Context, bill Bill) error
	UpdatePayment(ctx context.Context, id uuid.UUID, paid decimal.Decimal, status BillStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const billColumns = `id, bill_number, vendor_id, issue_date, due_date, status, subtotal, tax_amount, total_amount, paid_amount, notes, created_at`

func (r *repository) List(ctx context.Context) ([]Bill, error) {
	return r.listWhere(ctx, ``)
}

func (r *repository) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]Bill, error) {
	return r.listWhere(ctx, `WHERE vendor_id=$1`, vendorID)
}

func (r *repository) listWhere(ctx context.Context, where string, args ...any) ([]Bill, error) {
	rows, err := r.db.Query(ctx, `SELECT `+billColumns+` FROM bills `+where+` ORDER BY due_date, issue_date`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Bill
	for rows.Next() {
		var b Bill
		if err := rows.Scan(&b.ID, &b.BillNumber, &b.VendorID, &b.IssueDate, &b.DueDate, &b.Status, &b.Subtotal, &b.TaxAmount, &b.TotalAmount, &b.PaidAmount, &b.Notes, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (Bill, error) {
	var b Bill
	err := r.db.QueryRow(ctx, `SELECT `+billColumns+` FROM bills WHERE id=$1`, id).
		Scan(&b.ID, &b.BillNumber, &b.VendorID, &b.IssueDate, &b.DueDate, &b.Status, &b.Subtotal, &b.TaxAmount, &b.TotalAmount, &b.PaidAmount, &b.Notes, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Bill{}, ErrBillNotFound
		}
		return Bill{}, err
	}
	return b, nil
}

func (r *repository) Create(ctx context.Context, bill Bill) error {
	_, err := r.db.Exec(ctx, `INSERT INTO bills (id, bill_number, vendor_id, issue_date, due_date, status, subtotal, tax_amount, total_amount, paid_amount, notes, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		bill.ID, bill.BillNumber, bill.VendorID, bill.IssueDate, bill.DueDate, bill.Status, bill.Subtotal, bill.TaxAmount, bill.TotalAmount, bill.PaidAmount, bill.Notes, bill.CreatedAt)
	return err
}

func (r *repository) Update(ctx context.Context, bill Bill) error {
	cmd, err := r.db.Exec(ctx, `UPDATE bills SET bill_number=$2, vendor_id=$3, issue_date=$4, due_date=$5, status=$6, subtotal=$7, tax_amount=$8, total_amount=$9, paid_amount=$10, notes=$11 WHERE id=$1`,
		bill.ID, bill.BillNumber, bill.VendorID, bill.IssueDate, bill.DueDate, bill.Status, bill.Subtotal, bill.TaxAmount, bill.TotalAmount, bill.PaidAmount, bill.Notes)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrBillNotFound
	}
	return nil
}

func (r *repository) UpdatePayment(ctx context.Context, id uuid.UUID, paid decimal.Decimal, status BillStatus) error {
	cmd, err := r.db.Exec(ctx, `UPDATE bills SET paid_amount=$2, status=$3 WHERE id=$1`, id, paid, status)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrBillNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM bills WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrBillNotFound
	}
	return nil
}
