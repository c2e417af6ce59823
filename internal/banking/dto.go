package banking

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateBankAccountRequest carries a new bank account.
type CreateBankAccountRequest struct {
	Name          string          `json:"name" validate:"required,max=200"`
	AccountNumber *string         `json:"accountNumber,omitempty" validate:"omitempty,max=50"`
	BankName      *string         `json:"bankName,omitempty" validate:"omitempty,max=200"`
	AccountType   string          `json:"accountType" validate:"required,oneof=checking savings credit_card"`
	Balance       decimal.Decimal `json:"balance"`
	LedgerAccount *uuid.UUID      `json:"accountId,omitempty"`
}

// UpdateBankAccountRequest carries a partial update. Nil fields are untouched.
type UpdateBankAccountRequest struct {
	Name          *string    `json:"name,omitempty" validate:"omitempty,max=200"`
	AccountNumber *string    `json:"accountNumber,omitempty" validate:"omitempty,max=50"`
	BankName      *string    `json:"bankName,omitempty" validate:"omitempty,max=200"`
	AccountType   *string    `json:"accountType,omitempty" validate:"omitempty,oneof=checking savings credit_card"`
	LedgerAccount *uuid.UUID `json:"accountId,omitempty"`
	IsActive      *bool      `json:"isActive,omitempty"`
}

// CreateTransactionRequest carries a new statement line.
type CreateTransactionRequest struct {
	BankAccountID uuid.UUID       `json:"bankAccountId" validate:"required"`
	Date          time.Time       `json:"transactionDate" validate:"required"`
	Description   string          `json:"description" validate:"required"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type" validate:"required,oneof=debit credit"`
	ImportedFrom  *string         `json:"importedFrom,omitempty" validate:"omitempty,oneof=csv api manual"`
}

// MatchRequest links a transaction to its counterpart.
type MatchRequest struct {
	MatchedTransactionID uuid.UUID `json:"matchedTransactionId" validate:"required"`
}
