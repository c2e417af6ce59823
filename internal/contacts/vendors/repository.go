package vendors

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/accountancy-cloud/accountancy-cloud/internal/platform/httpx"
)

// ErrVendorNotFound indicates a missing vendor.
var ErrVendorNotFound = fmt.Errorf("%w: vendor not found", httpx.ErrNotFound)

// Repository encapsulates DB operations for vendors.
type Repository interface {
	List(ctx context.Context) ([]Vendor, error)
	Get(ctx context.Context, id uuid.UUID) (Vendor, error)
	Create(ctx context.Context, vendor Vendor) (Vendor, error)
	Update(ctx context.Context, vendor Vendor) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const vendorColumns = `id, name, email, phone, address, city, state, zip_code, country, tax_id, payment_terms, is_active, created_at`

func scanVendor(row pgx.Row) (Vendor, error) {
	var c Vendor
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.City, &c.State, &c.ZipCode, &c.Country, &c.TaxID, &c.PaymentTerms, &c.IsActive, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Vendor{}, ErrVendorNotFound
		}
		return Vendor{}, err
	}
	return c, nil
}

func (r *repository) List(ctx context.Context) ([]Vendor, error) {
	rows, err := r.db.Query(ctx, `SELECT `+vendorColumns+` FROM vendors WHERE is_active ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Vendor
	for rows.Next() {
		var c Vendor
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.City, &c.State, &c.ZipCode, &c.Country, &c.TaxID, &c.PaymentTerms, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (Vendor, error) {
	return scanVendor(r.db.QueryRow(ctx, `SELECT `+vendorColumns+` FROM vendors WHERE id=$1`, id))
}

func (r *repository) Create(ctx context.Context, vendor Vendor) (Vendor, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO vendors (id, name, email, phone, address, city, state, zip_code, country, tax_id, payment_terms, is_active)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12) RETURNING `+vendorColumns,
		vendor.ID, vendor.Name, vendor.Email, vendor.Phone, vendor.Address, vendor.City, vendor.State, vendor.ZipCode, vendor.Country, vendor.TaxID, vendor.PaymentTerms, vendor.IsActive)
	return scanVendor(row)
}

func (r *repository) Update(ctx context.Context, vendor Vendor) error {
	cmd, err := r.db.Exec(ctx, `UPDATE vendors SET name=$2, email=$3, phone=$4, address=$5, city=$6, state=$7, zip_code=$8, country=$9, tax_id=$10, payment_terms=$11, is_active=$12 WHERE id=$1`,
		vendor.ID, vendor.Name, vendor.Email, vendor.Phone, vendor.Address, vendor.City, vendor.State, vendor.ZipCode, vendor.Country, vendor.TaxID, vendor.PaymentTerms, vendor.IsActive)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrVendorNotFound
	}
	return nil
}

func (r *repository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	cmd, err := r.db.Exec(ctx, `UPDATE vendors SET is_active=$2 WHERE id=$1`, id, active)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrVendorNotFound
	}
	return nil
}
