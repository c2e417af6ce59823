package invoices

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/accountancy-cloud/accountancy-cloud/internal/platform/httpx"
)

var (
	// ErrNoLines indicates an invoice without line items.
	ErrNoLines = fmt.Errorf("%w: invoice requires at least one line item", httpx.ErrValidation)
	// ErrBadLine indicates a non-positive quantity or negative rate.
	ErrBadLine = fmt.Errorf("%w: quantity must be positive and rate non-negative", httpx.ErrValidation)
	// ErrOverpayment indicates a payment pushing paid above total.
	ErrOverpayment = fmt.Errorf("%w: payment exceeds amount outstanding", httpx.ErrValidation)
	// ErrBadPayment indicates a non-positive payment amount.
	ErrBadPayment = fmt.Errorf("%w: payment amount must be positive", httpx.ErrValidation)
	// ErrCancelled indicates an operation on a cancelled invoice.
	ErrCancelled = fmt.Errorf("%w: invoice is cancelled", httpx.ErrValidation)
)

// Service implements invoice business rules.
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

func (s *Service) List(ctx context.Context) ([]Invoice, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByClient(ctx context.Context, clientID uuid.UUID) ([]Invoice, error) {
	return s.repo.ListByClient(ctx, clientID)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (Invoice, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateInvoiceRequest) (Invoice, error) {
	invoice := Invoice{
		ID:            uuid.New(),
		InvoiceNumber: req.InvoiceNumber,
		ClientID:      req.ClientID,
		IssueDate:     req.IssueDate,
		DueDate:       req.DueDate,
		Status:        StatusDraft,
		PaidAmount:    decimal.Zero,
		Notes:         req.Notes,
		Terms:         req.Terms,
		CreatedAt:     s.now(),
	}
	if err := s.price(&invoice, req.Lines, req.TaxRate); err != nil {
		return Invoice{}, err
	}
	if err := s.repo.Create(ctx, invoice); err != nil {
		return Invoice{}, err
	}
	return invoice, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateInvoiceRequest) (Invoice, error) {
	invoice, err := s.repo.Get(ctx, id)
	if err != nil {
		return Invoice{}, err
	}
	if req.ClientID != nil {
		invoice.ClientID = *req.ClientID
	}
	if req.IssueDate != nil {
		invoice.IssueDate = *req.IssueDate
	}
	if req.DueDate != nil {
		invoice.DueDate = *req.DueDate
	}
	if req.Status != nil {
		invoice.Status = InvoiceStatus(*req.Status)
	}
	if req.Notes != nil {
		invoice.Notes = req.Notes
	}
	if req.Terms != nil {
		invoice.Terms = req.Terms
	}
	if req.Lines != nil {
		taxRate := impliedTaxRate(invoice)
		if req.TaxRate != nil {
			taxRate = *req.TaxRate
		}
		if err := s.price(&invoice, req.Lines, taxRate); err != nil {
			return Invoice{}, err
		}
	} else if req.TaxRate != nil {
		invoice.TaxAmount = invoice.Subtotal.Mul(*req.TaxRate).Round(2)
		invoice.TotalAmount = invoice.Subtotal.Add(invoice.TaxAmount)
	}
	if err := s.repo.Update(ctx, invoice); err != nil {
		return Invoice{}, err
	}
	return invoice, nil
}

// RecordPayment adds a payment to the invoice, flipping it to paid when the
// outstanding amount reaches zero.
func (s *Service) RecordPayment(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (Invoice, error) {
	if !amount.IsPositive() {
		return Invoice{}, ErrBadPayment
	}
	invoice, err := s.repo.Get(ctx, id)
	if err != nil {
		return Invoice{}, err
	}
	if invoice.Status == StatusCancelled {
		return Invoice{}, ErrCancelled
	}
	paid := invoice.PaidAmount.Add(amount.Round(2))
	if paid.GreaterThan(invoice.TotalAmount) {
		return Invoice{}, ErrOverpayment
	}
	status := invoice.Status
	if paid.Equal(invoice.TotalAmount) {
		status = StatusPaid
	}
	if err := s.repo.UpdatePayment(ctx, id, paid, status); err != nil {
		return Invoice{}, err
	}
	invoice.PaidAmount = paid
	invoice.Status = status
	return invoice, nil
}

// Delete removes an invoice together with its line items.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// price rebuilds the line set and derives subtotal, tax, and total. Line
// amounts are always recomputed from quantity and rate.
func (s *Service) price(invoice *Invoice, lines []LineItemInput, taxRate decimal.Decimal) error {
	if len(lines) == 0 {
		return ErrNoLines
	}
	if taxRate.IsNegative() {
		return fmt.Errorf("%w: tax rate must not be negative", httpx.ErrValidation)
	}
	invoice.Lines = invoice.Lines[:0]
	subtotal := decimal.Zero
	for _, in := range lines {
		if !in.Quantity.IsPositive() || in.Rate.IsNegative() {
			return ErrBadLine
		}
		amount := in.Quantity.Mul(in.Rate).Round(2)
		invoice.Lines = append(invoice.Lines, LineItem{
			ID:          uuid.New(),
			InvoiceID:   invoice.ID,
			Description: in.Description,
			Quantity:    in.Quantity,
			Rate:        in.Rate,
			Amount:      amount,
			AccountID:   in.AccountID,
		})
		subtotal = subtotal.Add(amount)
	}
	invoice.Subtotal = subtotal
	invoice.TaxAmount = subtotal.Mul(taxRate).Round(2)
	invoice.TotalAmount = subtotal.Add(invoice.TaxAmount)
	return nil
}

func impliedTaxRate(invoice Invoice) decimal.Decimal {
	if invoice.Subtotal.IsZero() {
		return decimal.Zero
	}
	return invoice.TaxAmount.Div(invoice.Subtotal)
}
