package vendors

import (
	"context"

	"github.com/google/uuid"
)

const defaultPaymentTerms = 30

// Service implements vendor business rules.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Vendor, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (Vendor, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateVendorRequest) (Vendor, error) {
	terms := defaultPaymentTerms
	if req.PaymentTerms != nil {
		terms = *req.PaymentTerms
	}
	vendor := Vendor{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		Country:      req.Country,
		TaxID:        req.TaxID,
		PaymentTerms: terms,
		IsActive:     true,
	}
	return s.repo.Create(ctx, vendor)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateVendorRequest) (Vendor, error) {
	vendor, err := s.repo.Get(ctx, id)
	if err != nil {
		return Vendor{}, err
	}
	if req.Name != nil {
		vendor.Name = *req.Name
	}
	if req.Email != nil {
		vendor.Email = req.Email
	}
	if req.Phone != nil {
		vendor.Phone = req.Phone
	}
	if req.Address != nil {
		vendor.Address = req.Address
	}
	if req.City != nil {
		vendor.City = req.City
	}
	if req.State != nil {
		vendor.State = req.State
	}
	if req.ZipCode != nil {
		vendor.ZipCode = req.ZipCode
	}
	if req.Country != nil {
		vendor.Country = req.Country
	}
	if req.TaxID != nil {
		vendor.TaxID = req.TaxID
	}
	if req.PaymentTerms != nil {
		vendor.PaymentTerms = *req.PaymentTerms
	}
	if req.IsActive != nil {
		vendor.IsActive = *req.IsActive
	}
	if err := s.repo.Update(ctx, vendor); err != nil {
		return Vendor{}, err
	}
	return vendor, nil
}

// Deactivate soft-deletes a vendor. Bills referencing it stay intact.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo.SetActive(ctx, id, false)
}
