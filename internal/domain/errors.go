package domain

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for simple conditions without extra context.
var (
	ErrPropertyNotFound     = errors.New("property not found")
	ErrTenantNotFound       = errors.New("tenant not found")
	ErrApplicationNotFound  = errors.New("application not found")
	ErrLeaseNotFound        = errors.New("lease not found")
	ErrCannotModifyApproved = errors.New("approved application cannot be modified")
	ErrTxTimeout            = errors.New("transaction timed out")
)

// MissingFieldError is returned when a required submission field is absent.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// InvalidEmailError is returned when a contact email does not parse as a
// local@domain.tld address.
type InvalidEmailError struct {
	Email string
}

func (e *InvalidEmailError) Error() string {
	return fmt.Sprintf("%q is not a valid email address", e.Email)
}

// InvalidStatusError is returned when a status string is not a member of the
// status enum. Matching is case-sensitive.
type InvalidStatusError struct {
	Value string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("status %q is not one of Pending, Approved, Denied", e.Value)
}

// DuplicateApplicationError is returned when a (tenant, property) pair
// already has an application in the Pending or Approved status class.
type DuplicateApplicationError struct {
	TenantID   string
	PropertyID string
	Status     Status
}

func (e *DuplicateApplicationError) Error() string {
	return fmt.Sprintf("tenant %s already has a %s application for property %s",
		e.TenantID, e.Status, e.PropertyID)
}

// LeaseExistsError is returned when an application already holds a lease.
type LeaseExistsError struct {
	ApplicationID string
	LeaseID       string
}

func (e *LeaseExistsError) Error() string {
	return fmt.Sprintf("application %s already holds lease %s", e.ApplicationID, e.LeaseID)
}

// ActiveLeaseError is returned when the tenant already holds a live lease on
// the property.
type ActiveLeaseError struct {
	TenantID   string
	PropertyID string
	EndDate    time.Time
}

func (e *ActiveLeaseError) Error() string {
	return fmt.Sprintf("tenant %s already holds an active lease on property %s until %s",
		e.TenantID, e.PropertyID, e.EndDate.Format("2006-01-02"))
}

// TransitionError is returned when a status transition is not allowed.
type TransitionError struct {
	Event   Event
	Current Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("event %q is not valid from status %q", e.Event, e.Current)
}
