package invoices

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus enumerates invoice lifecycle states.
type InvoiceStatus string

const (
	StatusDraft     InvoiceStatus = "draft"
	StatusSent      InvoiceStatus = "sent"
	StatusPaid      InvoiceStatus = "paid"
	StatusOverdue   InvoiceStatus = "overdue"
	StatusCancelled InvoiceStatus = "cancelled"
)

// Valid reports whether s is a known invoice status.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid, StatusOverdue, StatusCancelled:
		return true
	}
	return false
}

// Invoice is a sales invoice with its owned line items.
type Invoice struct {
	ID            uuid.UUID       `json:"id"`
	InvoiceNumber string          `json:"invoiceNumber"`
	ClientID      uuid.UUID       `json:"clientId"`
	IssueDate     time.Time       `json:"issueDate"`
	DueDate       time.Time       `json:"dueDate"`
	Status        InvoiceStatus   `json:"status"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxAmount     decimal.Decimal `json:"taxAmount"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	PaidAmount    decimal.Decimal `json:"paidAmount"`
	Notes         *string         `json:"notes,omitempty"`
	Terms         *string         `json:"terms,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	Lines         []LineItem      `json:"lineItems,omitempty"`
}

// LineItem is one invoice line. Amount is always quantity times rate,
// recomputed on the server.
type LineItem struct {
	ID          uuid.UUID       `json:"id"`
	InvoiceID   uuid.UUID       `json:"invoiceId"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
	AccountID   *uuid.UUID      `json:"accountId,omitempty"`
}
