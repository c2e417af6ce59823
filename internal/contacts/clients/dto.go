package clients

// CreateClientRequest carries fields for a new client.
type CreateClientRequest struct {
	Name         string  `json:"name" validate:"required,max=200"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone        *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Address      *string `json:"address,omitempty"`
	City         *string `json:"city,omitempty"`
	State        *string `json:"state,omitempty"`
	ZipCode      *string `json:"zipCode,omitempty"`
	Country      *string `json:"country,omitempty"`
	TaxID        *string `json:"taxId,omitempty"`
	PaymentTerms *int    `json:"paymentTerms,omitempty" validate:"omitempty,min=0,max=365"`
}

// UpdateClientRequest carries a partial update. Nil fields are untouched.
type UpdateClientRequest struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,max=200"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone        *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Address      *string `json:"address,omitempty"`
	City         *string `json:"city,omitempty"`
	State        *string `json:"state,omitempty"`
	ZipCode      *string `json:"zipCode,omitempty"`
	Country      *string `json:"country,omitempty"`
	TaxID        *string `json:"taxId,omitempty"`
	PaymentTerms *int    `json:"paymentTerms,omitempty" validate:"omitempty,min=0,max=365"`
	IsActive     *bool   `json:"isActive,omitempty"`
}
