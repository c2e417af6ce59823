package expenses

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/accountancy-cloud/accountancy-cloud/internal/platform/httpx"
	internalShared "github.com/accountancy-cloud/accountancy-cloud/internal/shared"
)

var (
	// ErrBadAmount indicates a non-positive claim amount.
	ErrBadAmount = fmt.Errorf("%w: claim amount must be positive", httpx.ErrValidation)
	// ErrInvalidState indicates a decision the state machine forbids.
	ErrInvalidState = fmt.Errorf("%w: claim state does not allow this action", httpx.ErrValidation)
	// ErrNotEditable indicates an edit on a decided claim.
	ErrNotEditable = fmt.Errorf("%w: only submitted claims can be edited", httpx.ErrValidation)
)

// ApprovalPort records the approval trail for claims.
type ApprovalPort interface {
	Record(ctx context.Context, log internalShared.ApprovalLog) error
}

// AuditPort records claim mutations.
type AuditPort interface {
	Record(ctx context.Context, log internalShared.AuditLog) error
}

// Service implements the expense claim state machine.
type Service struct {
	repo      Repository
	approvals ApprovalPort
	audit     AuditPort
	now       func() time.Time
}

func NewService(repo Repository, approvals ApprovalPort, audit AuditPort) *Service {
	return &Service{repo: repo, approvals: approvals, audit: audit, now: time.Now}
}

func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

func (s *Service) List(ctx context.Context) ([]ExpenseClaim, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) ([]ExpenseClaim, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (ExpenseClaim, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateClaimRequest) (ExpenseClaim, error) {
	if !req.Amount.IsPositive() {
		return ExpenseClaim{}, ErrBadAmount
	}
	claim := ExpenseClaim{
		ID:          uuid.New(),
		ClaimNumber: req.ClaimNumber,
		UserID:      req.UserID,
		Description: req.Description,
		Amount:      req.Amount.Round(2),
		ExpenseDate: req.ExpenseDate,
		Status:      StatusSubmitted,
		Category:    req.Category,
		AccountID:   req.AccountID,
		ReceiptURL:  req.ReceiptURL,
		Notes:       req.Notes,
		CreatedAt:   s.now(),
	}
	if err := s.repo.Create(ctx, claim); err != nil {
		return ExpenseClaim{}, err
	}
	s.recordApproval(ctx, claim, req.UserID, internalShared.ApprovalSubmit, "")
	return claim, nil
}

// Update edits claim details while the claim is still awaiting a decision.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateClaimRequest) (ExpenseClaim, error) {
	claim, err := s.repo.Get(ctx, id)
	if err != nil {
		return ExpenseClaim{}, err
	}
	if claim.Status != StatusSubmitted {
		return ExpenseClaim{}, ErrNotEditable
	}
	if req.Description != nil {
		claim.Description = *req.Description
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return ExpenseClaim{}, ErrBadAmount
		}
		claim.Amount = req.Amount.Round(2)
	}
	if req.ExpenseDate != nil {
		claim.ExpenseDate = *req.ExpenseDate
	}
	if req.Category != nil {
		claim.Category = req.Category
	}
	if req.AccountID != nil {
		claim.AccountID = req.AccountID
	}
	if req.ReceiptURL != nil {
		claim.ReceiptURL = req.ReceiptURL
	}
	if req.Notes != nil {
		claim.Notes = req.Notes
	}
	if err := s.repo.Update(ctx, claim); err != nil {
		return ExpenseClaim{}, err
	}
	return claim, nil
}

// Approve moves a submitted claim to approved and stamps the approver.
func (s *Service) Approve(ctx context.Context, id uuid.UUID, actorID uuid.UUID, note string) (ExpenseClaim, error) {
	return s.decide(ctx, id, StatusApproved, actorID, note, internalShared.ApprovalApprove)
}

// Reject moves a submitted claim to rejected.
func (s *Service) Reject(ctx context.Context, id uuid.UUID, actorID uuid.UUID, note string) (ExpenseClaim, error) {
	return s.decide(ctx, id, StatusRejected, actorID, note, internalShared.ApprovalReject)
}

// Pay moves an approved claim to paid.
func (s *Service) Pay(ctx context.Context, id uuid.UUID, actorID uuid.UUID, note string) (ExpenseClaim, error) {
	return s.decide(ctx, id, StatusPaid, actorID, note, internalShared.ApprovalPay)
}

func (s *Service) decide(ctx context.Context, id uuid.UUID, next ClaimStatus, actorID uuid.UUID, note string, action internalShared.ApprovalAction) (ExpenseClaim, error) {
	claim, err := s.repo.Get(ctx, id)
	if err != nil {
		return ExpenseClaim{}, err
	}
	if !claim.Status.CanTransition(next) {
		return ExpenseClaim{}, ErrInvalidState
	}
	claim.Status = next
	if next == StatusApproved {
		at := s.now()
		claim.ApprovedBy = &actorID
		claim.ApprovedAt = &at
	}
	if err := s.repo.Update(ctx, claim); err != nil {
		return ExpenseClaim{}, err
	}
	s.recordApproval(ctx, claim, actorID, action, note)
	if s.audit != nil {
		_ = s.audit.Record(ctx, internalShared.AuditLog{
			ActorID:  actorID.String(),
			Action:   "expense_claim." + string(action),
			Entity:   "expense_claim",
			EntityID: claim.ID.String(),
			Meta:     map[string]any{"claimNumber": claim.ClaimNumber, "status": string(next)},
			At:       s.now(),
		})
	}
	return claim, nil
}

func (s *Service) recordApproval(ctx context.Context, claim ExpenseClaim, actorID uuid.UUID, action internalShared.ApprovalAction, note string) {
	if s.approvals == nil {
		return
	}
	_ = s.approvals.Record(ctx, internalShared.ApprovalLog{
		Module:  "expenses",
		RefID:   claim.ID,
		ActorID: actorID,
		Action:  action,
		Note:    note,
		At:      s.now(),
	})
}
