package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest carries a new purchase order. TotalAmount is derived as
// subtotal plus tax on the server.
type CreateOrderRequest struct {
	PONumber     string          `json:"poNumber" validate:"required,max=50"`
	VendorID     uuid.UUID       `json:"vendorId" validate:"required"`
	OrderDate    time.Time       `json:"orderDate" validate:"required"`
	ExpectedDate *time.Time      `json:"expectedDate,omitempty"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	TaxAmount    decimal.Decimal `json:"taxAmount"`
	Notes        *string         `json:"notes,omitempty"`
}

// UpdateOrderRequest carries a partial update. Nil fields are untouched.
type UpdateOrderRequest struct {
	VendorID     *uuid.UUID       `json:"vendorId,omitempty"`
	OrderDate    *time.Time       `json:"orderDate,omitempty"`
	ExpectedDate *time.Time       `json:"expectedDate,omitempty"`
	Status       *string          `json:"status,omitempty" validate:"omitempty,oneof=pending received cancelled"`
	Subtotal     *decimal.Decimal `json:"subtotal,omitempty"`
	TaxAmount    *decimal.Decimal `json:"taxAmount,omitempty"`
	Notes        *string          `json:"notes,omitempty"`
}
