package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/accountancy-cloud/accountancy-cloud/internal/platform/httpx"
)

var (
	// ErrBadAmounts indicates negative subtotal or tax.
	ErrBadAmounts = fmt.Errorf("%w: subtotal and tax must not be negative", httpx.ErrValidation)
	// ErrClosedOrder indicates a change to a received or cancelled order.
	ErrClosedOrder = fmt.Errorf("%w: purchase order is no longer open", httpx.ErrValidation)
)

// Service implements purchase order business rules.
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

func (s *Service) List(ctx context.Context) ([]PurchaseOrder, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (PurchaseOrder, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateOrderRequest) (PurchaseOrder, error) {
	if req.Subtotal.IsNegative() || req.TaxAmount.IsNegative() {
		return PurchaseOrder{}, ErrBadAmounts
	}
	subtotal := req.Subtotal.Round(2)
	tax := req.TaxAmount.Round(2)
	order := PurchaseOrder{
		ID:           uuid.New(),
		PONumber:     req.PONumber,
		VendorID:     req.VendorID,
		OrderDate:    req.OrderDate,
		ExpectedDate: req.ExpectedDate,
		Status:       StatusPending,
		Subtotal:     subtotal,
		TaxAmount:    tax,
		TotalAmount:  subtotal.Add(tax),
		Notes:        req.Notes,
		CreatedAt:    s.now(),
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return PurchaseOrder{}, err
	}
	return order, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateOrderRequest) (PurchaseOrder, error) {
	order, err := s.repo.Get(ctx, id)
	if err != nil {
		return PurchaseOrder{}, err
	}
	// Received and cancelled orders only accept note edits.
	if order.Status != StatusPending && (req.Status != nil || req.Subtotal != nil || req.TaxAmount != nil || req.VendorID != nil) {
		return PurchaseOrder{}, ErrClosedOrder
	}
	if req.VendorID != nil {
		order.VendorID = *req.VendorID
	}
	if req.OrderDate != nil {
		order.OrderDate = *req.OrderDate
	}
	if req.ExpectedDate != nil {
		order.ExpectedDate = req.ExpectedDate
	}
	if req.Status != nil {
		order.Status = OrderStatus(*req.Status)
	}
	if req.Notes != nil {
		order.Notes = req.Notes
	}
	if req.Subtotal != nil || req.TaxAmount != nil {
		if req.Subtotal != nil {
			order.Subtotal = req.Subtotal.Round(2)
		}
		if req.TaxAmount != nil {
			order.TaxAmount = req.TaxAmount.Round(2)
		}
		if order.Subtotal.IsNegative() || order.TaxAmount.IsNegative() {
			return PurchaseOrder{}, ErrBadAmounts
		}
		order.TotalAmount = order.Subtotal.Add(order.TaxAmount)
	}
	if err := s.repo.Update(ctx, order); err != nil {
		return PurchaseOrder{}, err
	}
	return order, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
