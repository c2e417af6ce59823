package bills

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/accountancy-cloud/accountancy-cloud/internal/platform/httpx"
)

var (
	// ErrBadAmounts indicates negative subtotal or tax.
	ErrBadAmounts = fmt.Errorf("%w: subtotal and tax must not be negative", httpx.ErrValidation)
	// ErrOverpayment indicates a payment pushing paid above total.
	ErrOverpayment = fmt.Errorf("%w: payment exceeds amount outstanding", httpx.ErrValidation)
	// ErrBadPayment indicates a non-positive payment amount.
	ErrBadPayment = fmt.Errorf("%w: payment amount must be positive", httpx.ErrValidation)
)

// Service implements vendor bill business rules.
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

func (s *Service) List(ctx context.Context) ([]Bill, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]Bill, error) {
	return s.repo.ListByVendor(ctx, vendorID)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (Bill, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateBillRequest) (Bill, error) {
	if req.Subtotal.IsNegative() || req.TaxAmount.IsNegative() {
		return Bill{}, ErrBadAmounts
	}
	subtotal := req.Subtotal.Round(2)
	tax := req.TaxAmount.Round(2)
	bill := Bill{
		ID:          uuid.New(),
		BillNumber:  req.BillNumber,
		VendorID:    req.VendorID,
		IssueDate:   req.IssueDate,
		DueDate:     req.DueDate,
		Status:      StatusPending,
		Subtotal:    subtotal,
		TaxAmount:   tax,
		TotalAmount: subtotal.Add(tax),
		PaidAmount:  decimal.Zero,
		Notes:       req.Notes,
		CreatedAt:   s.now(),
	}
	if err := s.repo.Create(ctx, bill); err != nil {
		return Bill{}, err
	}
	return bill, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateBillRequest) (Bill, error) {
	bill, err := s.repo.Get(ctx, id)
	if err != nil {
		return Bill{}, err
	}
	if req.BillNumber != nil {
		bill.BillNumber = req.BillNumber
	}
	if req.VendorID != nil {
		bill.VendorID = *req.VendorID
	}
	if req.IssueDate != nil {
		bill.IssueDate = *req.IssueDate
	}
	if req.DueDate != nil {
		bill.DueDate = *req.DueDate
	}
	if req.Status != nil {
		bill.Status = BillStatus(*req.Status)
	}
	if req.Notes != nil {
		bill.Notes = req.Notes
	}
	if req.Subtotal != nil || req.TaxAmount != nil {
		if req.Subtotal != nil {
			bill.Subtotal = req.Subtotal.Round(2)
		}
		if req.TaxAmount != nil {
			bill.TaxAmount = req.TaxAmount.Round(2)
		}
		if bill.Subtotal.IsNegative() || bill.TaxAmount.IsNegative() {
			return Bill{}, ErrBadAmounts
		}
		bill.TotalAmount = bill.Subtotal.Add(bill.TaxAmount)
	}
	if err := s.repo.Update(ctx, bill); err != nil {
		return Bill{}, err
	}
	return bill, nil
}

// RecordPayment adds a payment to the bill, flipping it to paid when the
// outstanding amount reaches zero.
func (s *Service) RecordPayment(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (Bill, error) {
	if !amount.IsPositive() {
		return Bill{}, ErrBadPayment
	}
	bill, err := s.repo.Get(ctx, id)
	if err != nil {
		return Bill{}, err
	}
	paid := bill.PaidAmount.Add(amount.Round(2))
	if paid.GreaterThan(bill.TotalAmount) {
		return Bill{}, ErrOverpayment
	}
	status := bill.Status
	if paid.Equal(bill.TotalAmount) {
		status = StatusPaid
	}
	if err := s.repo.UpdatePayment(ctx, id, paid, status); err != nil {
		return Bill{}, err
	}
	bill.PaidAmount = paid
	bill.Status = status
	return bill, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
