package clients

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/accountancy-cloud/accountancy-cloud/internal/platform/httpx"
)

// ErrClientNotFound indicates a missing client.
var ErrClientNotFound = fmt.Errorf("%w: client not found", httpx.ErrNotFound)

// Repository encapsulates DB operations for clients.
type Repository interface {
	List(ctx context.Context) ([]Client, error)
	Get(ctx context.Context, id uuid.UUID) (Client, error)
	Create(ctx context.Context, client Client) (Client, error)
	Update(ctx context.Context, client Client) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const clientColumns = `id, name, email, phone, address, city, state, zip_code, country, tax_id, payment_terms, is_active, created_at`

func scanClient(row pgx.Row) (Client, error) {
	var c Client
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.City, &c.State, &c.ZipCode, &c.Country, &c.TaxID, &c.PaymentTerms, &c.IsActive, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Client{}, ErrClientNotFound
		}
		return Client{}, err
	}
	return c, nil
}

func (r *repository) List(ctx context.Context) ([]Client, error) {
	rows, err := r.db.Query(ctx, `SELECT `+clientColumns+` FROM clients WHERE is_active ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Client
	for rows.Next() {
		var c Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.City, &c.State, &c.ZipCode, &c.Country, &c.TaxID, &c.PaymentTerms, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (Client, error) {
	return scanClient(r.db.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id=$1`, id))
}

func (r *repository) Create(ctx context.Context, client Client) (Client, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO clients (id, name, email, phone, address, city, state, zip_code, country, tax_id, payment_terms, is_active)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12) RETURNING `+clientColumns,
		client.ID, client.Name, client.Email, client.Phone, client.Address, client.City, client.State, client.ZipCode, client.Country, client.TaxID, client.PaymentTerms, client.IsActive)
	return scanClient(row)
}

func (r *repository) Update(ctx context.Context, client Client) error {
	cmd, err := r.db.Exec(ctx, `UPDATE clients SET name=$2, email=$3, phone=$4, address=$5, city=$6, state=$7, zip_code=$8, country=$9, tax_id=$10, payment_terms=$11, is_active=$12 WHERE id=$1`,
		client.ID, client.Name, client.Email, client.Phone, client.Address, client.City, client.State, client.ZipCode, client.Country, client.TaxID, client.PaymentTerms, client.IsActive)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrClientNotFound
	}
	return nil
}

func (r *repository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	cmd, err := r.db.Exec(ctx, `UPDATE clients SET is_active=$2 WHERE id=$1`, id, active)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrClientNotFound
	}
	return nil
}
