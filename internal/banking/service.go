package banking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/accountancy-cloud/accountancy-cloud/internal/platform/httpx"
)

var (
	// ErrBadAmount indicates a non-positive transaction amount.
	ErrBadAmount = fmt.Errorf("%w: transaction amount must be positive", httpx.ErrValidation)
	// ErrAlreadyReconciled indicates a second reconcile attempt.
	ErrAlreadyReconciled = fmt.Errorf("%w: transaction already reconciled", httpx.ErrConflict)
	// ErrSelfMatch indicates matching a transaction to itself.
	ErrSelfMatch = fmt.Errorf("%w: transaction cannot match itself", httpx.ErrValidation)
	// ErrMatchMismatch indicates a match whose amounts do not line up.
	ErrMatchMismatch = fmt.Errorf("%w: matched transactions must have the same amount and opposite directions", httpx.ErrValidation)
)

// Service implements bank account and reconciliation rules.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

func (s *Service) ListAccounts(ctx context.Context) ([]BankAccount, error) {
	return s.repo.ListAccounts(ctx)
}

func (s *Service) GetAccount(ctx context.Context, id uuid.UUID) (BankAccount, error) {
	return s.repo.GetAccount(ctx, id)
}

func (s *Service) CreateAccount(ctx context.Context, req CreateBankAccountRequest) (BankAccount, error) {
	account := BankAccount{
		ID:            uuid.New(),
		Name:          req.Name,
		AccountNumber: req.AccountNumber,
		BankName:      req.BankName,
		AccountType:   BankAccountType(req.AccountType),
		Balance:       req.Balance.Round(2),
		IsActive:      true,
		LedgerAccount: req.LedgerAccount,
		CreatedAt:     s.now(),
	}
	if err := s.repo.CreateAccount(ctx, account); err != nil {
		return BankAccount{}, err
	}
	return account, nil
}

func (s *Service) UpdateAccount(ctx context.Context, id uuid.UUID, req UpdateBankAccountRequest) (BankAccount, error) {
	account, err := s.repo.GetAccount(ctx, id)
	if err != nil {
		return BankAccount{}, err
	}
	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.AccountNumber != nil {
		account.AccountNumber = req.AccountNumber
	}
	if req.BankName != nil {
		account.BankName = req.BankName
	}
	if req.AccountType != nil {
		account.AccountType = BankAccountType(*req.AccountType)
	}
	if req.LedgerAccount != nil {
		account.LedgerAccount = req.LedgerAccount
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	if err := s.repo.UpdateAccount(ctx, account); err != nil {
		return BankAccount{}, err
	}
	return account, nil
}

func (s *Service) ListTransactions(ctx context.Context, bankAccountID *uuid.UUID) ([]Transaction, error) {
	return s.repo.ListTransactions(ctx, bankAccountID)
}

// CreateTransaction records a statement line and moves the account balance.
func (s *Service) CreateTransaction(ctx context.Context, req CreateTransactionRequest) (Transaction, error) {
	if !req.Amount.IsPositive() {
		return Transaction{}, ErrBadAmount
	}
	account, err := s.repo.GetAccount(ctx, req.BankAccountID)
	if err != nil {
		return Transaction{}, err
	}
	txn := Transaction{
		ID:            uuid.New(),
		BankAccountID: req.BankAccountID,
		Date:          req.Date,
		Description:   req.Description,
		Amount:        req.Amount.Round(2),
		Type:          TransactionType(req.Type),
		ImportedFrom:  req.ImportedFrom,
		CreatedAt:     s.now(),
	}
	delta := txn.Signed()
	snapshot := account.Balance.Add(delta)
	txn.Balance = &snapshot
	if err := s.repo.CreateTransaction(ctx, txn, delta); err != nil {
		return Transaction{}, err
	}
	return txn, nil
}

// Reconcile marks a transaction reconciled exactly once. A second call fails
// and leaves the original reconciledAt untouched.
func (s *Service) Reconcile(ctx context.Context, id uuid.UUID) (Transaction, error) {
	txn, err := s.repo.GetTransaction(ctx, id)
	if err != nil {
		return Transaction{}, err
	}
	if txn.IsReconciled {
		return Transaction{}, ErrAlreadyReconciled
	}
	at := s.now()
	if err := s.repo.MarkReconciled(ctx, id, at); err != nil {
		return Transaction{}, err
	}
	txn.IsReconciled = true
	txn.ReconciledAt = &at
	return txn, nil
}

// Match links two transactions that represent the same movement, for example
// a transfer out of one account and into another.
func (s *Service) Match(ctx context.Context, id, matchedID uuid.UUID) (Transaction, error) {
	if id == matchedID {
		return Transaction{}, ErrSelfMatch
	}
	txn, err := s.repo.GetTransaction(ctx, id)
	if err != nil {
		return Transaction{}, err
	}
	other, err := s.repo.GetTransaction(ctx, matchedID)
	if err != nil {
		return Transaction{}, err
	}
	if !txn.Amount.Equal(other.Amount) || txn.Type == other.Type {
		return Transaction{}, ErrMatchMismatch
	}
	if err := s.repo.SetMatched(ctx, id, matchedID); err != nil {
		return Transaction{}, err
	}
	if err := s.repo.SetMatched(ctx, matchedID, id); err != nil {
		return Transaction{}, err
	}
	txn.MatchedID = &matchedID
	return txn, nil
}
