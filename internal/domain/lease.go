package domain

import "time"

// Lease is a tenancy agreement. It is created exclusively inside the
// lease-issuance transaction and never mutated afterwards.
type Lease struct {
	ID         string
	StartDate  time.Time
	EndDate    time.Time
	Rent       float64
	Deposit    float64
	PropertyID string
	TenantID   string
	CreatedAt  time.Time
}

// NewLease issues a fixed one-year lease starting at the given instant,
// copying the property's current price and deposit.
func NewLease(id string, property Property, tenantID string, start time.Time) Lease {
	start = start.UTC()
	return Lease{
		ID:         id,
		StartDate:  start,
		EndDate:    start.AddDate(1, 0, 0),
		Rent:       property.PricePerMonth,
		Deposit:    property.SecurityDeposit,
		PropertyID: property.ID,
		TenantID:   tenantID,
		CreatedAt:  start,
	}
}

// Active reports whether the lease is still in effect at the given instant.
func (l Lease) Active(now time.Time) bool {
	return !l.EndDate.Before(now)
}

// NextPaymentDate returns the smallest date of the form start + k calendar
// months (k >= 0) that is strictly after now. It is a pure function of its
// inputs.
func NextPaymentDate(start, now time.Time) time.Time {
	d := start
	for !d.After(now) {
		d = d.AddDate(0, 1, 0)
	}
	return d
}
