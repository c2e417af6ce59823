package expenses

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	internalShared "github.com/accountancy-cloud/accountancy-cloud/internal/shared"
)

type memoryRepo struct {
	claims  map[uuid.UUID]ExpenseClaim
	numbers map[string]bool
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{claims: make(map[uuid.UUID]ExpenseClaim), numbers: make(map[string]bool)}
}

func (m *memoryRepo) List(context.Context) ([]ExpenseClaim, error) {
	var out []ExpenseClaim
	for _, c := range m.claims {
		out = append(out, c)
	}
	return out, nil
}

func (m *memoryRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]ExpenseClaim, error) {
	var out []ExpenseClaim
	for _, c := range m.claims {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memoryRepo) Get(_ context.Context, id uuid.UUID) (ExpenseClaim, error) {
	c, ok := m.claims[id]
	if !ok {
		return ExpenseClaim{}, ErrClaimNotFound
	}
	return c, nil
}

func (m *memoryRepo) Create(_ context.Context, c ExpenseClaim) error {
	if m.numbers[c.ClaimNumber] {
		return ErrDuplicateNumber
	}
	m.numbers[c.ClaimNumber] = true
	m.claims[c.ID] = c
	return nil
}

func (m *memoryRepo) Update(_ context.Context, c ExpenseClaim) error {
	if _, ok := m.claims[c.ID]; !ok {
		return ErrClaimNotFound
	}
	m.claims[c.ID] = c
	return nil
}

type trailRecorder struct {
	logs []internalShared.ApprovalLog
}

func (t *trailRecorder) Record(_ context.Context, log internalShared.ApprovalLog) error {
	t.logs = append(t.logs, log)
	return nil
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	v, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return v
}

func sampleClaim(t *testing.T) CreateClaimRequest {
	return CreateClaimRequest{
		ClaimNumber: "EC-001",
		UserID:      uuid.New(),
		Description: "Client lunch",
		Amount:      dec(t, "48.90"),
		ExpenseDate: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateStartsSubmitted(t *testing.T) {
	trail := &trailRecorder{}
	svc := NewService(newMemoryRepo(), trail, nil)

	claim, err := svc.Create(context.Background(), sampleClaim(t))
	require.NoError(t, err)
	require.Equal(t, StatusSubmitted, claim.Status)
	require.Nil(t, claim.ApprovedBy)
	require.Len(t, trail.logs, 1)
	require.Equal(t, internalShared.ApprovalSubmit, trail.logs[0].Action)
}

func TestCreateRejectsNonPositiveAmount(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil, nil)
	req := sampleClaim(t)
	req.Amount = decimal.Zero

	_, err := svc.Create(context.Background(), req)
	require.ErrorIs(t, err, ErrBadAmount)
}

func TestApproveStampsApprover(t *testing.T) {
	trail := &trailRecorder{}
	repo := newMemoryRepo()
	svc := NewService(repo, trail, nil)
	ctx := context.Background()
	approver := uuid.New()

	claim, err := svc.Create(ctx, sampleClaim(t))
	require.NoError(t, err)

	approved, err := svc.Approve(ctx, claim.ID, approver, "ok")
	require.NoError(t, err)
	require.Equal(t, StatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	require.Equal(t, approver, *approved.ApprovedBy)
	require.NotNil(t, approved.ApprovedAt)
	require.Equal(t, internalShared.ApprovalApprove, trail.logs[len(trail.logs)-1].Action)
}

func TestStateMachineForbidsBadTransitions(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()
	actor := uuid.New()

	claim, err := svc.Create(ctx, sampleClaim(t))
	require.NoError(t, err)

	// Paying a submitted claim skips approval.
	_, err = svc.Pay(ctx, claim.ID, actor, "")
	require.ErrorIs(t, err, ErrInvalidState)
	stored, _ := svc.Get(ctx, claim.ID)
	require.Equal(t, StatusSubmitted, stored.Status, "failed decision must not mutate the claim")

	_, err = svc.Reject(ctx, claim.ID, actor, "missing receipt")
	require.NoError(t, err)

	// Rejected is terminal.
	_, err = svc.Approve(ctx, claim.ID, actor, "")
	require.ErrorIs(t, err, ErrInvalidState)
	_, err = svc.Pay(ctx, claim.ID, actor, "")
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestApprovedClaimCanOnlyBePaid(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()
	actor := uuid.New()

	claim, err := svc.Create(ctx, sampleClaim(t))
	require.NoError(t, err)
	_, err = svc.Approve(ctx, claim.ID, actor, "")
	require.NoError(t, err)

	_, err = svc.Reject(ctx, claim.ID, actor, "")
	require.ErrorIs(t, err, ErrInvalidState)

	paid, err := svc.Pay(ctx, claim.ID, actor, "")
	require.NoError(t, err)
	require.Equal(t, StatusPaid, paid.Status)

	_, err = svc.Pay(ctx, claim.ID, actor, "")
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestUpdateOnlyWhileSubmitted(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	claim, err := svc.Create(ctx, sampleClaim(t))
	require.NoError(t, err)

	amount := dec(t, "52.00")
	updated, err := svc.Update(ctx, claim.ID, UpdateClaimRequest{Amount: &amount})
	require.NoError(t, err)
	require.True(t, updated.Amount.Equal(amount))

	_, err = svc.Approve(ctx, claim.ID, uuid.New(), "")
	require.NoError(t, err)

	_, err = svc.Update(ctx, claim.ID, UpdateClaimRequest{Amount: &amount})
	require.ErrorIs(t, err, ErrNotEditable)
}
