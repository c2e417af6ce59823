package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus enumerates purchase order lifecycle states.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusReceived  OrderStatus = "received"
	StatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is a known purchase order status.
func (s OrderStatus) Valid() bool {
	return s == StatusPending || s == StatusReceived || s == StatusCancelled
}

// PurchaseOrder is an order placed with a vendor.
type PurchaseOrder struct {
	ID           uuid.UUID       `json:"id"`
	PONumber     string          `json:"poNumber"`
	VendorID     uuid.UUID       `json:"vendorId"`
	OrderDate    time.Time       `json:"orderDate"`
	ExpectedDate *time.Time      `json:"expectedDate,omitempty"`
	Status       OrderStatus     `json:"status"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	TaxAmount    decimal.Decimal `json:"taxAmount"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	Notes        *string         `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}
