package expenses

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClaimStatus enumerates expense claim lifecycle states.
type ClaimStatus string

const (
	StatusSubmitted ClaimStatus = "submitted"
	StatusApproved  ClaimStatus = "approved"
	StatusRejected  ClaimStatus = "rejected"
	StatusPaid      ClaimStatus = "paid"
)

// CanTransition reports whether the claim may move from s to next. Submitted
// claims can be approved or rejected; only approved claims can be paid.
func (s ClaimStatus) CanTransition(next ClaimStatus) bool {
	switch s {
	case StatusSubmitted:
		return next == StatusApproved || next == StatusRejected
	case StatusApproved:
		return next == StatusPaid
	}
	return false
}

// ExpenseClaim is an employee expense awaiting approval and payout.
type ExpenseClaim struct {
	ID          uuid.UUID       `json:"id"`
	ClaimNumber string          `json:"claimNumber"`
	UserID      uuid.UUID       `json:"userId"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate time.Time       `json:"expenseDate"`
	Status      ClaimStatus     `json:"status"`
	Category    *string         `json:"category,omitempty"`
	AccountID   *uuid.UUID      `json:"accountId,omitempty"`
	ReceiptURL  *string         `json:"receiptUrl,omitempty"`
	Notes       *string         `json:"notes,omitempty"`
	ApprovedBy  *uuid.UUID      `json:"approvedBy,omitempty"`
	ApprovedAt  *time.Time      `json:"approvedAt,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}
