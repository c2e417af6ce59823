package journals

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/accountancy-cloud/accountancy-cloud/internal/ledger/accounts"
	"github.com/accountancy-cloud/accountancy-cloud/internal/ledger/shared"
)

// Repository encapsulates DB operations for journal entries.
type Repository interface {
	List(ctx context.Context) ([]JournalEntry, error)
	Get(ctx context.Context, id uuid.UUID) (JournalEntry, error)
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

// TxRepository exposes methods available within a posting transaction.
type TxRepository interface {
	InsertEntry(ctx context.Context, entry JournalEntry) error
	InsertLines(ctx context.Context, lines []JournalLine) error
	// LockAccounts locks the given accounts in ascending id order and
	// returns them keyed by id. Missing ids are simply absent.
	LockAccounts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]accounts.Account, error)
	ApplyBalanceChange(ctx context.Context, accountID uuid.UUID, delta decimal.Decimal) error
	GetEntryWithLines(ctx context.Context, id uuid.UUID) (JournalEntry, error)
	SetPosted(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const entryColumns = `id, entry_number, entry_date, description, reference, status, total_debit, total_credit, created_at`

func (r *repository) List(ctx context.Context) ([]JournalEntry, error) {
	rows, err := r.db.Query(ctx, `SELECT `+entryColumns+` FROM journal_entries ORDER BY entry_date DESC, entry_number DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []JournalEntry
	for rows.Next() {
		var e JournalEntry
		if err := rows.Scan(&e.ID, &e.EntryNumber, &e.EntryDate, &e.Description, &e.Reference, &e.Status, &e.TotalDebit, &e.TotalCredit, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (JournalEntry, error) {
	return getEntryWithLines(ctx, r.db, id)
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return err
	}
	wrapper := &txRepository{tx: tx}
	if err := fn(ctx, wrapper); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

type txRepository struct {
	tx pgx.Tx
}

func (r *txRepository) InsertEntry(ctx context.Context, entry JournalEntry) error {
	_, err := r.tx.Exec(ctx, `INSERT INTO journal_entries (id, entry_number, entry_date, description, reference, status, total_debit, total_credit, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		entry.ID, entry.EntryNumber, entry.EntryDate, entry.Description, entry.Reference, entry.Status, entry.TotalDebit, entry.TotalCredit, entry.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return shared.ErrDuplicateEntryNumber
		}
		return err
	}
	return nil
}

func (r *txRepository) InsertLines(ctx context.Context, lines []JournalLine) error {
	for _, line := range lines {
		if _, err := r.tx.Exec(ctx, `INSERT INTO journal_entry_line_items (id, journal_entry_id, account_id, description, debit_amount, credit_amount)
VALUES ($1,$2,$3,$4,$5,$6)`, line.ID, line.JournalEntryID, line.AccountID, line.Description, line.DebitAmount, line.CreditAmount); err != nil {
			return err
		}
	}
	return nil
}

func (r *txRepository) LockAccounts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]accounts.Account, error) {
	rows, err := r.tx.Query(ctx, `SELECT id, code, name, type, sub_type, parent_id, description, is_active, balance, created_at
FROM accounts WHERE id = ANY($1) ORDER BY id FOR UPDATE`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	locked := make(map[uuid.UUID]accounts.Account, len(ids))
	for rows.Next() {
		var a accounts.Account
		if err := rows.Scan(&a.ID, &a.Code, &a.Name, &a.Type, &a.SubType, &a.ParentID, &a.Description, &a.IsActive, &a.Balance, &a.CreatedAt); err != nil {
			return nil, err
		}
		locked[a.ID] = a
	}
	return locked, rows.Err()
}

func (r *txRepository) ApplyBalanceChange(ctx context.Context, accountID uuid.UUID, delta decimal.Decimal) error {
	cmd, err := r.tx.Exec(ctx, `UPDATE accounts SET balance = balance + $2 WHERE id=$1`, accountID, delta)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return shared.ErrAccountNotFound
	}
	return nil
}

func (r *txRepository) GetEntryWithLines(ctx context.Context, id uuid.UUID) (JournalEntry, error) {
	return getEntryWithLines(ctx, r.tx, id)
}

func (r *txRepository) SetPosted(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.tx.Exec(ctx, `UPDATE journal_entries SET status='posted' WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return shared.ErrEntryNotFound
	}
	return nil
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func getEntryWithLines(ctx context.Context, q querier, id uuid.UUID) (JournalEntry, error) {
	var e JournalEntry
	err := q.QueryRow(ctx, `SELECT `+entryColumns+` FROM journal_entries WHERE id=$1`, id).
		Scan(&e.ID, &e.EntryNumber, &e.EntryDate, &e.Description, &e.Reference, &e.Status, &e.TotalDebit, &e.TotalCredit, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return JournalEntry{}, shared.ErrEntryNotFound
		}
		return JournalEntry{}, err
	}
	rows, err := q.Query(ctx, `SELECT id, journal_entry_id, account_id, description, debit_amount, credit_amount
FROM journal_entry_line_items WHERE journal_entry_id=$1 ORDER BY id`, id)
	if err != nil {
		return JournalEntry{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var line JournalLine
		if err := rows.Scan(&line.ID, &line.JournalEntryID, &line.AccountID, &line.Description, &line.DebitAmount, &line.CreditAmount); err != nil {
			return JournalEntry{}, err
		}
		e.Lines = append(e.Lines, line)
	}
	return e, rows.Err()
}
