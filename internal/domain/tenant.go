package domain

import "time"

// Tenant is an applicant. Its identifier is issued by an external identity
// system and is opaque to this service.
type Tenant struct {
	ID          string
	Name        string
	Email       string
	PhoneNumber string
	CreatedAt   time.Time
}

// NewTenant creates a tenant profile for an externally issued identity.
func NewTenant(id, name, email, phoneNumber string) Tenant {
	return Tenant{
		ID:          id,
		Name:        name,
		Email:       email,
		PhoneNumber: phoneNumber,
		CreatedAt:   time.Now().UTC(),
	}
}
