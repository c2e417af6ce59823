package accounts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/accountancy-cloud/accountancy-cloud/internal/ledger/shared"
)

// Service implements chart-of-accounts business rules.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Account, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (Account, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateAccountRequest) (Account, error) {
	if req.ParentID != nil {
		if _, err := s.repo.Get(ctx, *req.ParentID); err != nil {
			return Account{}, fmt.Errorf("parent: %w", err)
		}
	}
	account := Account{
		ID:          uuid.New(),
		Code:        req.Code,
		Name:        req.Name,
		Type:        AccountType(req.Type),
		SubType:     req.SubType,
		ParentID:    req.ParentID,
		Description: req.Description,
		IsActive:    true,
		Balance:     decimal.Zero,
	}
	return s.repo.Create(ctx, account)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateAccountRequest) (Account, error) {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return Account{}, err
	}
	if req.Type != nil && AccountType(*req.Type) != account.Type {
		referenced, err := s.repo.HasPostings(ctx, id)
		if err != nil {
			return Account{}, err
		}
		if referenced {
			return Account{}, shared.ErrTypeImmutable
		}
		account.Type = AccountType(*req.Type)
	}
	if req.ParentID != nil {
		if err := s.checkParent(ctx, id, *req.ParentID); err != nil {
			return Account{}, err
		}
		account.ParentID = req.ParentID
	}
	if req.Code != nil {
		account.Code = *req.Code
	}
	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.SubType != nil {
		account.SubType = req.SubType
	}
	if req.Description != nil {
		account.Description = req.Description
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	if err := s.repo.Update(ctx, account); err != nil {
		return Account{}, err
	}
	return s.repo.Get(ctx, id)
}

// Deactivate soft-deletes an account. History referencing it stays intact.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo.SetActive(ctx, id, false)
}

// checkParent walks the ancestor chain from the proposed parent and rejects
// self-links and cycles.
func (s *Service) checkParent(ctx context.Context, id, parentID uuid.UUID) error {
	cursor := parentID
	for {
		if cursor == id {
			return shared.ErrAccountCycle
		}
		parent, err := s.repo.Get(ctx, cursor)
		if err != nil {
			return fmt.Errorf("parent: %w", err)
		}
		if parent.ParentID == nil {
			return nil
		}
		cursor = *parent.ParentID
	}
}

// Balance returns an account balance, optionally recomputed as of a date and
// optionally rolled up over the account's subtree. Each node contributes
// according to its own normal-balance side.
func (s *Service) Balance(ctx context.Context, id uuid.UUID, asOf *time.Time, withChildren bool) (decimal.Decimal, error) {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}
	total, err := s.nodeBalance(ctx, account, asOf)
	if err != nil {
		return decimal.Zero, err
	}
	if !withChildren {
		return total, nil
	}
	queue := []uuid.UUID{id}
	for len(queue) > 0 {
		children, err := s.repo.ListChildren(ctx, queue[0])
		if err != nil {
			return decimal.Zero, err
		}
		queue = queue[1:]
		for _, child := range children {
			value, err := s.nodeBalance(ctx, child, asOf)
			if err != nil {
				return decimal.Zero, err
			}
			total = total.Add(value)
			queue = append(queue, child.ID)
		}
	}
	return total, nil
}

func (s *Service) nodeBalance(ctx context.Context, account Account, asOf *time.Time) (decimal.Decimal, error) {
	if asOf == nil {
		return account.Balance, nil
	}
	debit, credit, err := s.repo.SumPostedLines(ctx, account.ID, *asOf)
	if err != nil {
		return decimal.Zero, err
	}
	return account.Type.BalanceEffect(debit, credit), nil
}
