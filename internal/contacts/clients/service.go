package clients

import (
	"context"

	"github.com/google/uuid"
)

const defaultPaymentTerms = 30

// Service implements client business rules.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Client, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (Client, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateClientRequest) (Client, error) {
	terms := defaultPaymentTerms
	if req.PaymentTerms != nil {
		terms = *req.PaymentTerms
	}
	client := Client{
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
	return s.repo.Create(ctx, client)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateClientRequest) (Client, error) {
	client, err := s.repo.Get(ctx, id)
	if err != nil {
		return Client{}, err
	}
	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Email != nil {
		client.Email = req.Email
	}
	if req.Phone != nil {
		client.Phone = req.Phone
	}
	if req.Address != nil {
		client.Address = req.Address
	}
	if req.City != nil {
		client.City = req.City
	}
	if req.State != nil {
		client.State = req.State
	}
	if req.ZipCode != nil {
		client.ZipCode = req.ZipCode
	}
	if req.Country != nil {
		client.Country = req.Country
	}
	if req.TaxID != nil {
		client.TaxID = req.TaxID
	}
	if req.PaymentTerms != nil {
		client.PaymentTerms = *req.PaymentTerms
	}
	if req.IsActive != nil {
		client.IsActive = *req.IsActive
	}
	if err := s.repo.Update(ctx, client); err != nil {
		return Client{}, err
	}
	return client, nil
}

// Deactivate soft-deletes a client. Invoices referencing it stay intact.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo.SetActive(ctx, id, false)
}
