package expenses

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateClaimRequest carries a new expense claim. Claims always start in the
// submitted state.
type CreateClaimRequest struct {
	ClaimNumber string          `json:"claimNumber" validate:"required,max=50"`
	UserID      uuid.UUID       `json:"userId" validate:"required"`
	Description string          `json:"description" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate time.Time       `json:"expenseDate" validate:"required"`
	Category    *string         `json:"category,omitempty" validate:"omitempty,max=100"`
	AccountID   *uuid.UUID      `json:"accountId,omitempty"`
	ReceiptURL  *string         `json:"receiptUrl,omitempty" validate:"omitempty,url"`
	Notes       *string         `json:"notes,omitempty"`
}

// UpdateClaimRequest carries a partial update of claim details. Status moves
// only through the decision endpoints.
type UpdateClaimRequest struct {
	Description *string          `json:"description,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	ExpenseDate *time.Time       `json:"expenseDate,omitempty"`
	Category    *string          `json:"category,omitempty" validate:"omitempty,max=100"`
	AccountID   *uuid.UUID       `json:"accountId,omitempty"`
	ReceiptURL  *string          `json:"receiptUrl,omitempty" validate:"omitempty,url"`
	Notes       *string          `json:"notes,omitempty"`
}

// DecisionRequest carries the actor and note for approve/reject/pay calls.
type DecisionRequest struct {
	ActorID uuid.UUID `json:"actorId" validate:"required"`
	Note    string    `json:"note,omitempty"`
}
