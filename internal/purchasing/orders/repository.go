package orders

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
	// ErrOrderNotFound indicates a missing purchase order.
	ErrOrderNotFound = fmt.Errorf("%w: purchase order not found", httpx.ErrNotFound)
	// ErrDuplicateNumber indicates a PO number collision.
	ErrDuplicateNumber = fmt.Errorf("%w: po number already used", httpx.ErrConflict)
)

// Repository encapsulates DB operations for purchase orders.
type Repository interface {
	List(ctx context.Context) ([]PurchaseOrder, error)
	Get(ctx context.Context, id uuid.UUID) (PurchaseOrder, error)
	Create(ctx context.Context, order PurchaseOrder) error
	Update(ctx context.Context, order PurchaseOrder) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const orderColumns = `id, po_number, vendor_id, order_date, expected_date, status, subtotal, tax_amount, total_amount, notes, created_at`

func (r *repository) List(ctx context.Context) ([]PurchaseOrder, error) {
	rows, err := r.db.Query(ctx, `SELECT `+orderColumns+` FROM purchase_orders ORDER BY order_date DESC, po_number DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []PurchaseOrder
	for rows.Next() {
		var o PurchaseOrder
		if err := rows.Scan(&o.ID, &o.PONumber, &o.VendorID, &o.OrderDate, &o.ExpectedDate, &o.Status, &o.Subtotal, &o.TaxAmount, &o.TotalAmount, &o.Notes, &o.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (PurchaseOrder, error) {
	var o PurchaseOrder
	err := r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM purchase_orders WHERE id=$1`, id).
		Scan(&o.ID, &o.PONumber, &o.VendorID, &o.OrderDate, &o.ExpectedDate, &o.Status, &o.Subtotal, &o.TaxAmount, &o.TotalAmount, &o.Notes, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return PurchaseOrder{}, ErrOrderNotFound
		}
		return PurchaseOrder{}, err
	}
	return o, nil
}

func (r *repository) Create(ctx context.Context, order PurchaseOrder) error {
	_, err := r.db.Exec(ctx, `INSERT INTO purchase_orders (id, po_number, vendor_id, order_date, expected_date, status, subtotal, tax_amount, total_amount, notes, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		order.ID, order.PONumber, order.VendorID, order.OrderDate, order.ExpectedDate, order.Status, order.Subtotal, order.TaxAmount, order.TotalAmount, order.Notes, order.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateNumber
		}
		return err
	}
	return nil
}

func (r *repository) Update(ctx context.Context, order PurchaseOrder) error {
	cmd, err := r.db.Exec(ctx, `UPDATE purchase_orders SET vendor_id=$2, order_date=$3, expected_date=$4, status=$5, subtotal=$6, tax_amount=$7, total_amount=$8, notes=$9 WHERE id=$1`,
		order.ID, order.VendorID, order.OrderDate, order.ExpectedDate, order.Status, order.Subtotal, order.TaxAmount, order.TotalAmount, order.Notes)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM purchase_orders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	return nil
}
