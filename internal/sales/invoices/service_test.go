package invoices

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	invoices map[uuid.UUID]Invoice
	numbers  map[string]bool
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{invoices: make(map[uuid.UUID]Invoice), numbers: make(map[string]bool)}
}

func (m *memoryRepo) List(context.Context) ([]Invoice, error) {
	var out []Invoice
	for _, inv := range m.invoices {
		out = append(out, inv)
	}
	return out, nil
}

func (m *memoryRepo) ListByClient(_ context.Context, clientID uuid.UUID) ([]Invoice, error) {
	var out []Invoice
	for _, inv := range m.invoices {
		if inv.ClientID == clientID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (m *memoryRepo) Get(_ context.Context, id uuid.UUID) (Invoice, error) {
	inv, ok := m.invoices[id]
	if !ok {
		return Invoice{}, ErrInvoiceNotFound
	}
	return inv, nil
}

func (m *memoryRepo) Create(_ context.Context, inv Invoice) error {
	if m.numbers[inv.InvoiceNumber] {
		return ErrDuplicateNumber
	}
	m.numbers[inv.InvoiceNumber] = true
	m.invoices[inv.ID] = inv
	return nil
}

func (m *memoryRepo) Update(_ context.Context, inv Invoice) error {
	if _, ok := m.invoices[inv.ID]; !ok {
		return ErrInvoiceNotFound
	}
	m.invoices[inv.ID] = inv
	return nil
}

func (m *memoryRepo) UpdatePayment(_ context.Context, id uuid.UUID, paid decimal.Decimal, status InvoiceStatus) error {
	inv, ok := m.invoices[id]
	if !ok {
		return ErrInvoiceNotFound
	}
	inv.PaidAmount = paid
	inv.Status = status
	m.invoices[id] = inv
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.invoices[id]; !ok {
		return ErrInvoiceNotFound
	}
	delete(m.invoices, id)
	return nil
}

func d(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	v, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return v
}

func sampleRequest(t *testing.T) CreateInvoiceRequest {
	return CreateInvoiceRequest{
		InvoiceNumber: "INV-001",
		ClientID:      uuid.New(),
		IssueDate:     time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		TaxRate:       d(t, "0.10"),
		Lines: []LineItemInput{
			{Description: "Consulting", Quantity: d(t, "2"), Rate: d(t, "50.00")},
			{Description: "Materials", Quantity: d(t, "1"), Rate: d(t, "25.00")},
		},
	}
}

func TestCreateComputesTotals(t *testing.T) {
	svc := NewService(newMemoryRepo())

	inv, err := svc.Create(context.Background(), sampleRequest(t))
	require.NoError(t, err)
	require.Equal(t, StatusDraft, inv.Status)
	require.True(t, inv.Subtotal.Equal(d(t, "125.00")), "got %s", inv.Subtotal)
	require.True(t, inv.TaxAmount.Equal(d(t, "12.50")))
	require.True(t, inv.TotalAmount.Equal(d(t, "137.50")))
	require.Len(t, inv.Lines, 2)
	require.True(t, inv.Lines[0].Amount.Equal(d(t, "100.00")))
	require.True(t, inv.Lines[1].Amount.Equal(d(t, "25.00")))
}

func TestCreateIgnoresClientSuppliedAmounts(t *testing.T) {
	svc := NewService(newMemoryRepo())
	req := sampleRequest(t)
	// The input DTO has no amount field at all, so a tampered rate still
	// yields amount = quantity * rate.
	req.Lines = []LineItemInput{
		{Description: "Consulting", Quantity: d(t, "3"), Rate: d(t, "33.335")},
		{Description: "Other", Quantity: d(t, "1"), Rate: d(t, "0.00")},
	}
	req.TaxRate = decimal.Zero

	inv, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	require.True(t, inv.Lines[0].Amount.Equal(d(t, "100.01")), "got %s", inv.Lines[0].Amount)
	require.True(t, inv.Subtotal.Equal(d(t, "100.01")))
}

func TestCreateRejectsBadLines(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	req := sampleRequest(t)
	req.Lines = nil
	_, err := svc.Create(ctx, req)
	require.ErrorIs(t, err, ErrNoLines)

	req = sampleRequest(t)
	req.Lines[0].Quantity = decimal.Zero
	_, err = svc.Create(ctx, req)
	require.ErrorIs(t, err, ErrBadLine)

	req = sampleRequest(t)
	req.Lines[0].Rate = d(t, "-1.00")
	_, err = svc.Create(ctx, req)
	require.ErrorIs(t, err, ErrBadLine)
}

func TestCreateRejectsDuplicateNumber(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, sampleRequest(t))
	require.NoError(t, err)
	_, err = svc.Create(ctx, sampleRequest(t))
	require.ErrorIs(t, err, ErrDuplicateNumber)
}

func TestRecordPaymentLifecycle(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	inv, err := svc.Create(ctx, sampleRequest(t))
	require.NoError(t, err)

	inv, err = svc.RecordPayment(ctx, inv.ID, d(t, "100.00"))
	require.NoError(t, err)
	require.True(t, inv.PaidAmount.Equal(d(t, "100.00")))
	require.Equal(t, StatusDraft, inv.Status, "partial payment must not flip status")

	_, err = svc.RecordPayment(ctx, inv.ID, d(t, "50.00"))
	require.ErrorIs(t, err, ErrOverpayment)

	inv, err = svc.RecordPayment(ctx, inv.ID, d(t, "37.50"))
	require.NoError(t, err)
	require.Equal(t, StatusPaid, inv.Status)
	require.True(t, inv.PaidAmount.Equal(inv.TotalAmount))

	_, err = svc.RecordPayment(ctx, inv.ID, d(t, "0.00"))
	require.ErrorIs(t, err, ErrBadPayment)
}

func TestRecordPaymentRejectsCancelled(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	inv, err := svc.Create(ctx, sampleRequest(t))
	require.NoError(t, err)
	cancelled := string(StatusCancelled)
	_, err = svc.Update(ctx, inv.ID, UpdateInvoiceRequest{Status: &cancelled})
	require.NoError(t, err)

	_, err = svc.RecordPayment(ctx, inv.ID, d(t, "10.00"))
	require.ErrorIs(t, err, ErrCancelled)
}

func TestUpdateRepricesReplacedLines(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	inv, err := svc.Create(ctx, sampleRequest(t))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, inv.ID, UpdateInvoiceRequest{
		Lines: []LineItemInput{{Description: "Flat fee", Quantity: d(t, "1"), Rate: d(t, "200.00")}},
	})
	require.NoError(t, err)
	require.True(t, updated.Subtotal.Equal(d(t, "200.00")))
	// Tax rate carries over from the original 10%.
	require.True(t, updated.TaxAmount.Equal(d(t, "20.00")), "got %s", updated.TaxAmount)
	require.True(t, updated.TotalAmount.Equal(d(t, "220.00")))
	require.Len(t, updated.Lines, 1)
}
