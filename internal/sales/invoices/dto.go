package invoices

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItemInput is one requested invoice line. Amount is ignored on input.
type LineItemInput struct {
	Description string          `json:"description" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	AccountID   *uuid.UUID      `json:"accountId,omitempty"`
}

// CreateInvoiceRequest carries a new invoice with its lines.
type CreateInvoiceRequest struct {
	InvoiceNumber string          `json:"invoiceNumber" validate:"required,max=50"`
	ClientID      uuid.UUID       `json:"clientId" validate:"required"`
	IssueDate     time.Time       `json:"issueDate" validate:"required"`
	DueDate       time.Time       `json:"dueDate" validate:"required"`
	TaxRate       decimal.Decimal `json:"taxRate"`
	Notes         *string         `json:"notes,omitempty"`
	Terms         *string         `json:"terms,omitempty"`
	Lines         []LineItemInput `json:"lineItems" validate:"required,min=1"`
}

// UpdateInvoiceRequest carries a partial update. Replacing lines rebuilds the
// whole set and reprices the invoice.
type UpdateInvoiceRequest struct {
	ClientID  *uuid.UUID       `json:"clientId,omitempty"`
	IssueDate *time.Time       `json:"issueDate,omitempty"`
	DueDate   *time.Time       `json:"dueDate,omitempty"`
	Status    *string          `json:"status,omitempty" validate:"omitempty,oneof=draft sent paid overdue cancelled"`
	TaxRate   *decimal.Decimal `json:"taxRate,omitempty"`
	Notes     *string          `json:"notes,omitempty"`
	Terms     *string          `json:"terms,omitempty"`
	Lines     []LineItemInput  `json:"lineItems,omitempty"`
}

// PaymentRequest records a payment against an invoice.
type PaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}
