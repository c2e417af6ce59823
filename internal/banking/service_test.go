package banking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	accounts     map[uuid.UUID]BankAccount
	transactions map[uuid.UUID]Transaction
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		accounts:     make(map[uuid.UUID]BankAccount),
		transactions: make(map[uuid.UUID]Transaction),
	}
}

func (m *memoryRepo) ListAccounts(context.Context) ([]BankAccount, error) {
	var out []BankAccount
	for _, a := range m.accounts {
		if a.IsActive {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memoryRepo) GetAccount(_ context.Context, id uuid.UUID) (BankAccount, error) {
	a, ok := m.accounts[id]
	if !ok {
		return BankAccount{}, ErrAccountNotFound
	}
	return a, nil
}

func (m *memoryRepo) CreateAccount(_ context.Context, a BankAccount) error {
	m.accounts[a.ID] = a
	return nil
}

func (m *memoryRepo) UpdateAccount(_ context.Context, a BankAccount) error {
	stored, ok := m.accounts[a.ID]
	if !ok {
		return ErrAccountNotFound
	}
	a.Balance = stored.Balance
	m.accounts[a.ID] = a
	return nil
}

func (m *memoryRepo) ListTransactions(_ context.Context, bankAccountID *uuid.UUID) ([]Transaction, error) {
	var out []Transaction
	for _, t := range m.transactions {
		if bankAccountID == nil || t.BankAccountID == *bankAccountID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memoryRepo) GetTransaction(_ context.Context, id uuid.UUID) (Transaction, error) {
	t, ok := m.transactions[id]
	if !ok {
		return Transaction{}, ErrTransactionNotFound
	}
	return t, nil
}

func (m *memoryRepo) CreateTransaction(_ context.Context, txn Transaction, delta decimal.Decimal) error {
	a, ok := m.accounts[txn.BankAccountID]
	if !ok {
		return ErrAccountNotFound
	}
	a.Balance = a.Balance.Add(delta)
	m.accounts[a.ID] = a
	m.transactions[txn.ID] = txn
	return nil
}

func (m *memoryRepo) MarkReconciled(_ context.Context, id uuid.UUID, at time.Time) error {
	t, ok := m.transactions[id]
	if !ok {
		return ErrTransactionNotFound
	}
	if t.IsReconciled {
		return ErrAlreadyReconciled
	}
	t.IsReconciled = true
	t.ReconciledAt = &at
	m.transactions[id] = t
	return nil
}

func (m *memoryRepo) SetMatched(_ context.Context, id, matchedID uuid.UUID) error {
	t, ok := m.transactions[id]
	if !ok {
		return ErrTransactionNotFound
	}
	t.MatchedID = &matchedID
	m.transactions[id] = t
	return nil
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	v, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return v
}

func seedAccount(t *testing.T, svc *Service, balance string) BankAccount {
	t.Helper()
	account, err := svc.CreateAccount(context.Background(), CreateBankAccountRequest{
		Name:        "Operating",
		AccountType: "checking",
		Balance:     dec(t, balance),
	})
	require.NoError(t, err)
	return account
}

func seedTransaction(t *testing.T, svc *Service, accountID uuid.UUID, amount, kind string) Transaction {
	t.Helper()
	txn, err := svc.CreateTransaction(context.Background(), CreateTransactionRequest{
		BankAccountID: accountID,
		Date:          time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		Description:   "Statement line",
		Amount:        dec(t, amount),
		Type:          kind,
	})
	require.NoError(t, err)
	return txn
}

func TestCreateTransactionMovesBalance(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	account := seedAccount(t, svc, "1000.00")

	txn := seedTransaction(t, svc, account.ID, "250.00", "credit")
	require.NotNil(t, txn.Balance)
	require.True(t, txn.Balance.Equal(dec(t, "1250.00")), "got %s", txn.Balance)

	seedTransaction(t, svc, account.ID, "400.00", "debit")
	stored, err := svc.GetAccount(context.Background(), account.ID)
	require.NoError(t, err)
	require.True(t, stored.Balance.Equal(dec(t, "850.00")), "got %s", stored.Balance)
}

func TestCreateTransactionRejectsNonPositiveAmount(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	account := seedAccount(t, svc, "0.00")

	_, err := svc.CreateTransaction(context.Background(), CreateTransactionRequest{
		BankAccountID: account.ID,
		Date:          time.Now(),
		Description:   "bad",
		Amount:        dec(t, "-5.00"),
		Type:          "debit",
	})
	require.ErrorIs(t, err, ErrBadAmount)
}

func TestReconcileIsExactlyOnce(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	fixed := time.Date(2025, 7, 2, 9, 0, 0, 0, time.UTC)
	svc.WithNow(func() time.Time { return fixed })
	account := seedAccount(t, svc, "100.00")
	txn := seedTransaction(t, svc, account.ID, "10.00", "debit")

	reconciled, err := svc.Reconcile(context.Background(), txn.ID)
	require.NoError(t, err)
	require.True(t, reconciled.IsReconciled)
	require.Equal(t, fixed, *reconciled.ReconciledAt)

	svc.WithNow(func() time.Time { return fixed.Add(time.Hour) })
	_, err = svc.Reconcile(context.Background(), txn.ID)
	require.ErrorIs(t, err, ErrAlreadyReconciled)

	stored, err := svc.repo.GetTransaction(context.Background(), txn.ID)
	require.NoError(t, err)
	require.Equal(t, fixed, *stored.ReconciledAt, "second attempt must not move reconciledAt")
}

// staleReadRepo serves GetTransaction from a snapshot taken before another
// caller's writes landed, the way a second request races a first.
type staleReadRepo struct {
	*memoryRepo
	stale map[uuid.UUID]Transaction
}

func (s *staleReadRepo) GetTransaction(ctx context.Context, id uuid.UUID) (Transaction, error) {
	if t, ok := s.stale[id]; ok {
		return t, nil
	}
	return s.memoryRepo.GetTransaction(ctx, id)
}

func TestReconcileLostRaceReportsConflict(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	account := seedAccount(t, svc, "100.00")
	txn := seedTransaction(t, svc, account.ID, "10.00", "debit")

	stale := &staleReadRepo{memoryRepo: repo, stale: map[uuid.UUID]Transaction{txn.ID: txn}}
	raced := NewService(stale)

	_, err := svc.Reconcile(context.Background(), txn.ID)
	require.NoError(t, err)

	_, err = raced.Reconcile(context.Background(), txn.ID)
	require.ErrorIs(t, err, ErrAlreadyReconciled, "losing the race is a conflict, not a missing transaction")
}

func TestMatchLinksBothSides(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()
	a := seedAccount(t, svc, "500.00")
	b := seedAccount(t, svc, "0.00")

	out := seedTransaction(t, svc, a.ID, "200.00", "debit")
	in := seedTransaction(t, svc, b.ID, "200.00", "credit")

	matched, err := svc.Match(ctx, out.ID, in.ID)
	require.NoError(t, err)
	require.Equal(t, in.ID, *matched.MatchedID)

	other, err := repo.GetTransaction(ctx, in.ID)
	require.NoError(t, err)
	require.Equal(t, out.ID, *other.MatchedID)
}

func TestMatchRejectsBadPairs(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()
	a := seedAccount(t, svc, "500.00")

	out := seedTransaction(t, svc, a.ID, "200.00", "debit")
	sameDir := seedTransaction(t, svc, a.ID, "200.00", "debit")
	wrongAmount := seedTransaction(t, svc, a.ID, "150.00", "credit")

	_, err := svc.Match(ctx, out.ID, out.ID)
	require.ErrorIs(t, err, ErrSelfMatch)

	_, err = svc.Match(ctx, out.ID, sameDir.ID)
	require.ErrorIs(t, err, ErrMatchMismatch)

	_, err = svc.Match(ctx, out.ID, wrongAmount.ID)
	require.ErrorIs(t, err, ErrMatchMismatch)

	_, err = svc.Match(ctx, out.ID, uuid.New())
	require.ErrorIs(t, err, ErrTransactionNotFound)
}
