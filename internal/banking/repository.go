package banking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/accountancy-cloud/accountancy-cloud/internal/platform/db"
	"github.com/accountancy-cloud/accountancy-cloud/internal/platform/httpx"
)

var (
	// ErrAccountNotFound indicates a missing bank account.
	ErrAccountNotFound = fmt.Errorf("%w: bank account not found", httpx.ErrNotFound)
	// ErrTransactionNotFound indicates a missing bank transaction.
	ErrTransactionNotFound = fmt.Errorf("%w: bank transaction not found", httpx.ErrNotFound)
)

// Repository encapsulates DB operations for bank accounts and transactions.
type Repository interface {
	ListAccounts(ctx context.Context) ([]BankAccount, error)
	GetAccount(ctx context.Context, id uuid.UUID) (BankAccount, error)
	CreateAccount(ctx context.Context, account BankAccount) error
	UpdateAccount(ctx context.Context, account BankAccount) error

	// ListTransactions returns transactions, optionally narrowed to one
	// bank account.
	ListTransactions(ctx context.Context, bankAccountID *uuid.UUID) ([]Transaction, error)
	GetTransaction(ctx context.Context, id uuid.UUID) (Transaction, error)
	// CreateTransaction inserts the line and shifts the account balance by
	// delta in the same transaction.
	CreateTransaction(ctx context.Context, txn Transaction, delta decimal.Decimal) error
	MarkReconciled(ctx context.Context, id uuid.UUID, at time.Time) error
	SetMatched(ctx context.Context, id, matchedID uuid.UUID) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const accountColumns = `id, name, account_number, bank_name, account_type, balance, is_active, account_id, created_at`
const txnColumns = `id, bank_account_id, transaction_date, description, amount, type, balance, is_reconciled, reconciled_at, matched_transaction_id, imported_from, created_at`

func (r *repository) ListAccounts(ctx context.Context) ([]BankAccount, error) {
	rows, err := r.db.Query(ctx, `SELECT `+accountColumns+` FROM bank_accounts WHERE is_active ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []BankAccount
	for rows.Next() {
		var a BankAccount
		if err := rows.Scan(&a.ID, &a.Name, &a.AccountNumber, &a.BankName, &a.AccountType, &a.Balance, &a.IsActive, &a.LedgerAccount, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *repository) GetAccount(ctx context.Context, id uuid.UUID) (BankAccount, error) {
	var a BankAccount
	err := r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM bank_accounts WHERE id=$1`, id).
		Scan(&a.ID, &a.Name, &a.AccountNumber, &a.BankName, &a.AccountType, &a.Balance, &a.IsActive, &a.LedgerAccount, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return BankAccount{}, ErrAccountNotFound
		}
		return BankAccount{}, err
	}
	return a, nil
}

func (r *repository) CreateAccount(ctx context.Context, account BankAccount) error {
	_, err := r.db.Exec(ctx, `INSERT INTO bank_accounts (id, name, account_number, bank_name, account_type, balance, is_active, account_id, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		account.ID, account.Name, account.AccountNumber, account.BankName, account.AccountType, account.Balance, account.IsActive, account.LedgerAccount, account.CreatedAt)
	return err
}

func (r *repository) UpdateAccount(ctx context.Context, account BankAccount) error {
	cmd, err := r.db.Exec(ctx, `UPDATE bank_accounts SET name=$2, account_number=$3, bank_name=$4, account_type=$5, is_active=$6, account_id=$7 WHERE id=$1`,
		account.ID, account.Name, account.AccountNumber, account.BankName, account.AccountType, account.IsActive, account.LedgerAccount)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (r *repository) ListTransactions(ctx context.Context, bankAccountID *uuid.UUID) ([]Transaction, error) {
	query := `SELECT ` + txnColumns + ` FROM bank_transactions`
	var args []any
	if bankAccountID != nil {
		query += ` WHERE bank_account_id=$1`
		args = append(args, *bankAccountID)
	}
	query += ` ORDER BY transaction_date DESC, created_at DESC`
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Transaction
	for rows.Next() {
		var t Transaction
		if err := scanTransaction(rows, &t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func scanTransaction(row pgx.Row, t *Transaction) error {
	return row.Scan(&t.ID, &t.BankAccountID, &t.Date, &t.Description, &t.Amount, &t.Type, &t.Balance,
		&t.IsReconciled, &t.ReconciledAt, &t.MatchedID, &t.ImportedFrom, &t.CreatedAt)
}

func (r *repository) GetTransaction(ctx context.Context, id uuid.UUID) (Transaction, error) {
	var t Transaction
	err := scanTransaction(r.db.QueryRow(ctx, `SELECT `+txnColumns+` FROM bank_transactions WHERE id=$1`, id), &t)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Transaction{}, ErrTransactionNotFound
		}
		return Transaction{}, err
	}
	return t, nil
}

func (r *repository) CreateTransaction(ctx context.Context, txn Transaction, delta decimal.Decimal) error {
	return db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		cmd, err := tx.Exec(ctx, `UPDATE bank_accounts SET balance = balance + $2 WHERE id=$1`, txn.BankAccountID, delta)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return ErrAccountNotFound
		}
		_, err = tx.Exec(ctx, `INSERT INTO bank_transactions (id, bank_account_id, transaction_date, description, amount, type, balance, is_reconciled, imported_from, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
			txn.ID, txn.BankAccountID, txn.Date, txn.Description, txn.Amount, txn.Type, txn.Balance, txn.IsReconciled, txn.ImportedFrom, txn.CreatedAt)
		return err
	})
}

func (r *repository) MarkReconciled(ctx context.Context, id uuid.UUID, at time.Time) error {
	cmd, err := r.db.Exec(ctx, `UPDATE bank_transactions SET is_reconciled=TRUE, reconciled_at=$2 WHERE id=$1 AND NOT is_reconciled`, id, at)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		// Zero rows means the transaction is missing or a concurrent call
		// already reconciled it. Re-read to tell the two apart.
		var reconciled bool
		err := r.db.QueryRow(ctx, `SELECT is_reconciled FROM bank_transactions WHERE id=$1`, id).Scan(&reconciled)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrTransactionNotFound
		}
		if err != nil {
			return err
		}
		if reconciled {
			return ErrAlreadyReconciled
		}
		return ErrTransactionNotFound
	}
	return nil
}

func (r *repository) SetMatched(ctx context.Context, id, matchedID uuid.UUID) error {
	cmd, err := r.db.Exec(ctx, `UPDATE bank_transactions SET matched_transaction_id=$2 WHERE id=$1`, id, matchedID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrTransactionNotFound
	}
	return nil
}
