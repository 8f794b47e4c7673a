package domain

import "time"

// Location is the geocoded address of a property. Coordinates come from an
// upstream geocoding collaborator and carry no meaning for lifecycle logic.
type Location struct {
	Address    string
	City       string
	State      string
	PostalCode string
	Latitude   float64
	Longitude  float64
}

// Property is a rental unit listed by a manager. Its tenant membership set
// lives in the store and is mutated only by the lease-issuance transaction.
type Property struct {
	ID              string
	Name            string
	Location        Location
	PricePerMonth   float64
	SecurityDeposit float64
	ManagerID       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewProperty creates a property listing.
func NewProperty(id, name string, loc Location, pricePerMonth, securityDeposit float64, managerID string) Property {
	now := time.Now().UTC()
	return Property{
		ID:              id,
		Name:            name,
		Location:        loc,
		PricePerMonth:   pricePerMonth,
		SecurityDeposit: securityDeposit,
		ManagerID:       managerID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
