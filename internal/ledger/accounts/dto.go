package accounts

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest carries fields for a new chart-of-accounts node.
type CreateAccountRequest struct {
	Code        string     `json:"code" validate:"required,max=50"`
	Name        string     `json:"name" validate:"required,max=200"`
	Type        string     `json:"type" validate:"required,oneof=asset liability equity revenue expense"`
	SubType     *string    `json:"subType,omitempty" validate:"omitempty,max=100"`
	ParentID    *uuid.UUID `json:"parentId,omitempty"`
	Description *string    `json:"description,omitempty"`
}

// UpdateAccountRequest carries a partial update. Nil fields are untouched.
type UpdateAccountRequest struct {
	Code        *string    `json:"code,omitempty" validate:"omitempty,max=50"`
	Name        *string    `json:"name,omitempty" validate:"omitempty,max=200"`
	Type        *string    `json:"type,omitempty" validate:"omitempty,oneof=asset liability equity revenue expense"`
	SubType     *string    `json:"subType,omitempty" validate:"omitempty,max=100"`
	ParentID    *uuid.UUID `json:"parentId,omitempty"`
	Description *string    `json:"description,omitempty"`
	IsActive    *bool      `json:"isActive,omitempty"`
}

// BalanceResponse is the payload for the account balance endpoint.
type BalanceResponse struct {
	AccountID uuid.UUID       `json:"accountId"`
	Balance   decimal.Decimal `json:"balance"`
}
