package accounts

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/accountancy-cloud/accountancy-cloud/internal/ledger/shared"
)

type memoryRepo struct {
	accounts map[uuid.UUID]Account
	postings map[uuid.UUID][]posting
}

type posting struct {
	date   time.Time
	debit  decimal.Decimal
	credit decimal.Decimal
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		accounts: make(map[uuid.UUID]Account),
		postings: make(map[uuid.UUID][]posting),
	}
}

func (m *memoryRepo) List(context.Context) ([]Account, error) {
	var out []Account
	for _, a := range m.accounts {
		if a.IsActive {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memoryRepo) Get(_ context.Context, id uuid.UUID) (Account, error) {
	a, ok := m.accounts[id]
	if !ok {
		return Account{}, shared.ErrAccountNotFound
	}
	return a, nil
}

func (m *memoryRepo) Create(_ context.Context, a Account) (Account, error) {
	for _, existing := range m.accounts {
		if existing.Code == a.Code {
			return Account{}, shared.ErrDuplicateAccountCode
		}
	}
	a.CreatedAt = time.Now()
	m.accounts[a.ID] = a
	return a, nil
}

func (m *memoryRepo) Update(_ context.Context, a Account) error {
	stored, ok := m.accounts[a.ID]
	if !ok {
		return shared.ErrAccountNotFound
	}
	for id, existing := range m.accounts {
		if id != a.ID && existing.Code == a.Code {
			return shared.ErrDuplicateAccountCode
		}
	}
	a.CreatedAt = stored.CreatedAt
	a.Balance = stored.Balance
	m.accounts[a.ID] = a
	return nil
}

func (m *memoryRepo) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	a, ok := m.accounts[id]
	if !ok {
		return shared.ErrAccountNotFound
	}
	a.IsActive = active
	m.accounts[id] = a
	return nil
}

func (m *memoryRepo) ListChildren(_ context.Context, parentID uuid.UUID) ([]Account, error) {
	var out []Account
	for _, a := range m.accounts {
		if a.ParentID != nil && *a.ParentID == parentID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memoryRepo) HasPostings(_ context.Context, id uuid.UUID) (bool, error) {
	return len(m.postings[id]) > 0, nil
}

func (m *memoryRepo) SumPostedLines(_ context.Context, id uuid.UUID, asOf time.Time) (decimal.Decimal, decimal.Decimal, error) {
	debit, credit := decimal.Zero, decimal.Zero
	for _, p := range m.postings[id] {
		if p.date.After(asOf) {
			continue
		}
		debit = debit.Add(p.debit)
		credit = credit.Add(p.credit)
	}
	return debit, credit, nil
}

func mustDec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestCreateRejectsDuplicateCode(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), CreateAccountRequest{Code: "1000", Name: "Cash", Type: "asset"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateAccountRequest{Code: "1000", Name: "Petty Cash", Type: "asset"})
	require.ErrorIs(t, err, shared.ErrDuplicateAccountCode)
}

func TestCreateRejectsMissingParent(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	missing := uuid.New()
	_, err := svc.Create(context.Background(), CreateAccountRequest{Code: "1100", Name: "AR", Type: "asset", ParentID: &missing})
	require.ErrorIs(t, err, shared.ErrAccountNotFound)
}

func TestUpdateRejectsParentCycle(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	root, err := svc.Create(ctx, CreateAccountRequest{Code: "1000", Name: "Assets", Type: "asset"})
	require.NoError(t, err)
	child, err := svc.Create(ctx, CreateAccountRequest{Code: "1100", Name: "Current Assets", Type: "asset", ParentID: &root.ID})
	require.NoError(t, err)
	grandchild, err := svc.Create(ctx, CreateAccountRequest{Code: "1110", Name: "Cash", Type: "asset", ParentID: &child.ID})
	require.NoError(t, err)

	_, err = svc.Update(ctx, root.ID, UpdateAccountRequest{ParentID: &grandchild.ID})
	require.ErrorIs(t, err, shared.ErrAccountCycle)

	_, err = svc.Update(ctx, root.ID, UpdateAccountRequest{ParentID: &root.ID})
	require.ErrorIs(t, err, shared.ErrAccountCycle)
}

func TestUpdateTypeImmutableOncePosted(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	acct, err := svc.Create(ctx, CreateAccountRequest{Code: "4000", Name: "Sales", Type: "revenue"})
	require.NoError(t, err)
	repo.postings[acct.ID] = []posting{{date: time.Now(), credit: mustDec(t, "100.00")}}

	liability := "liability"
	_, err = svc.Update(ctx, acct.ID, UpdateAccountRequest{Type: &liability})
	require.ErrorIs(t, err, shared.ErrTypeImmutable)

	// Renames stay allowed.
	name := "Sales Revenue"
	updated, err := svc.Update(ctx, acct.ID, UpdateAccountRequest{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "Sales Revenue", updated.Name)
}

func TestBalanceAsOfUsesNormalSide(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	cash, err := svc.Create(ctx, CreateAccountRequest{Code: "1110", Name: "Cash", Type: "asset"})
	require.NoError(t, err)
	sales, err := svc.Create(ctx, CreateAccountRequest{Code: "4000", Name: "Sales", Type: "revenue"})
	require.NoError(t, err)

	jan := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)
	repo.postings[cash.ID] = []posting{
		{date: jan, debit: mustDec(t, "500.00")},
		{date: feb, debit: mustDec(t, "250.00")},
	}
	repo.postings[sales.ID] = []posting{
		{date: jan, credit: mustDec(t, "500.00")},
		{date: feb, credit: mustDec(t, "250.00")},
	}

	cutoff := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	got, err := svc.Balance(ctx, cash.ID, &cutoff, false)
	require.NoError(t, err)
	require.True(t, got.Equal(mustDec(t, "500.00")), "got %s", got)

	got, err = svc.Balance(ctx, sales.ID, &cutoff, false)
	require.NoError(t, err)
	require.True(t, got.Equal(mustDec(t, "500.00")), "got %s", got)
}

func TestBalanceRollsUpSubtree(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	parent, err := svc.Create(ctx, CreateAccountRequest{Code: "1100", Name: "Current Assets", Type: "asset"})
	require.NoError(t, err)
	childA, err := svc.Create(ctx, CreateAccountRequest{Code: "1110", Name: "Cash", Type: "asset", ParentID: &parent.ID})
	require.NoError(t, err)
	childB, err := svc.Create(ctx, CreateAccountRequest{Code: "1120", Name: "AR", Type: "asset", ParentID: &parent.ID})
	require.NoError(t, err)

	setBalance := func(id uuid.UUID, v string) {
		a := repo.accounts[id]
		a.Balance = mustDec(t, v)
		repo.accounts[id] = a
	}
	setBalance(parent.ID, "0.00")
	setBalance(childA.ID, "120.50")
	setBalance(childB.ID, "79.50")

	got, err := svc.Balance(ctx, parent.ID, nil, true)
	require.NoError(t, err)
	require.True(t, got.Equal(mustDec(t, "200.00")), "got %s", got)

	got, err = svc.Balance(ctx, parent.ID, nil, false)
	require.NoError(t, err)
	require.True(t, got.IsZero())
}

func TestDeactivateKeepsAccountRow(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	acct, err := svc.Create(ctx, CreateAccountRequest{Code: "5000", Name: "Rent", Type: "expense"})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(ctx, acct.ID))

	stored, err := svc.Get(ctx, acct.ID)
	require.NoError(t, err)
	require.False(t, stored.IsActive)

	active, err := svc.List(ctx)
	require.NoError(t, err)
	require.Empty(t, active)
}
