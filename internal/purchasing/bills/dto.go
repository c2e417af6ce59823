package bills

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateBillRequest carries a new vendor bill. TotalAmount is always derived
// as subtotal plus tax on the server.
type CreateBillRequest struct {
	BillNumber *string         `json:"billNumber,omitempty" validate:"omitempty,max=50"`
	VendorID   uuid.UUID       `json:"vendorId" validate:"required"`
	IssueDate  time.Time       `json:"issueDate" validate:"required"`
	DueDate    time.Time       `json:"dueDate" validate:"required"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	TaxAmount  decimal.Decimal `json:"taxAmount"`
	Notes      *string         `json:"notes,omitempty"`
}

// UpdateBillRequest carries a partial update. Nil fields are untouched.
type UpdateBillRequest struct {
	BillNumber *string          `json:"billNumber,omitempty" validate:"omitempty,max=50"`
	VendorID   *uuid.UUID       `json:"vendorId,omitempty"`
	IssueDate  *time.Time       `json:"issueDate,omitempty"`
	DueDate    *time.Time       `json:"dueDate,omitempty"`
	Status     *string          `json:"status,omitempty" validate:"omitempty,oneof=pending paid overdue"`
	Subtotal   *decimal.Decimal `json:"subtotal,omitempty"`
	TaxAmount  *decimal.Decimal `json:"taxAmount,omitempty"`
	Notes      *string          `json:"notes,omitempty"`
}

// PaymentRequest records a payment against a bill.
type PaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}
