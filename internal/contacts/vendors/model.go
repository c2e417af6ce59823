package vendors

import (
	"time"

	"github.com/google/uuid"
)

// Vendor is a supplier the business buys from.
type Vendor struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        *string   `json:"email,omitempty"`
	Phone        *string   `json:"phone,omitempty"`
	Address      *string   `json:"address,omitempty"`
	City         *string   `json:"city,omitempty"`
	State        *string   `json:"state,omitempty"`
	ZipCode      *string   `json:"zipCode,omitempty"`
	Country      *string   `json:"country,omitempty"`
	TaxID        *string   `json:"taxId,omitempty"`
	PaymentTerms int       `json:"paymentTerms"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}
