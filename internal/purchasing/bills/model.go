package bills

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillStatus enumerates bill lifecycle states.
type BillStatus string

const (
	StatusPending BillStatus = "pending"
	StatusPaid    BillStatus = "paid"
	StatusOverdue BillStatus = "overdue"
)

// Valid reports whether s is a known bill status.
func (s BillStatus) Valid() bool {
	return s == StatusPending || s == StatusPaid || s == StatusOverdue
}

// Bill is a vendor bill (accounts payable).
type Bill struct {
	ID          uuid.UUID       `json:"id"`
	BillNumber  *string         `json:"billNumber,omitempty"`
	VendorID    uuid.UUID       `json:"vendorId"`
	IssueDate   time.Time       `json:"issueDate"`
	DueDate     time.Time       `json:"dueDate"`
	Status      BillStatus      `json:"status"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	TaxAmount   decimal.Decimal `json:"taxAmount"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	PaidAmount  decimal.Decimal `json:"paidAmount"`
	Notes       *string         `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}
