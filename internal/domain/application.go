package domain

import "time"

// Status represents the lifecycle state of a rental application.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusDenied   Status = "Denied"
)

// Event represents an action that moves an application through its lifecycle.
type Event string

const (
	EventSubmit  Event = "submit"
	EventApprove Event = "approve"
	EventDeny    Event = "deny"
	EventReopen  Event = "reopen"
)

// Transition defines a valid status change: an event moves an application
// from Src to Dst.
type Transition struct {
	Event Event
	Src   Status
	Dst   Status
}

// Transitions defines all valid status changes in the application lifecycle.
// Approved has no outgoing edges: once approved, an application is terminal.
// This is domain knowledge consumed by the FSM adapter.
var Transitions = []Transition{
	{Event: EventApprove, Src: StatusPending, Dst: StatusApproved},
	{Event: EventApprove, Src: StatusDenied, Dst: StatusApproved},
	{Event: EventDeny, Src: StatusPending, Dst: StatusDenied},
	{Event: EventReopen, Src: StatusDenied, Dst: StatusPending},
}

// EventForStatus maps a requested target status onto the lifecycle event
// that produces it.
func EventForStatus(target Status) Event {
	switch target {
	case StatusApproved:
		return EventApprove
	case StatusDenied:
		return EventDeny
	default:
		return EventReopen
	}
}

// ApplicantProfile holds the optional extended fields captured at submission:
// address history, employment, income, household composition, and background
// disclosures. Absent fields stay nil or false; they are never re-validated
// after submission.
type ApplicantProfile struct {
	CurrentAddress  *string
	YearsAtAddress  *float64
	ReasonForMoving *string
	EmployerName    *string
	YearsEmployed   *float64
	MonthlyIncome   *float64
	Occupants       *int
	HasPets         bool
	HasBankruptcy   bool
	HasEviction     bool
	HasRefusedRent  bool
	HasFelony       bool
}

// Application represents one tenant's request to rent one property.
// LeaseID is nil until the application is approved; a non-nil LeaseID
// implies an Approved status.
type Application struct {
	ID              string
	PropertyID      string
	TenantID        string
	Status          Status
	ApplicationDate time.Time
	Name            string
	Email           string
	PhoneNumber     string
	Profile         ApplicantProfile
	LeaseID         *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Submission is the payload accepted when a tenant applies for a property.
// ApplicationDate is optional; it defaults to the submission time.
type Submission struct {
	PropertyID      string
	TenantID        string
	Name            string
	Email           string
	PhoneNumber     string
	ApplicationDate *time.Time
	Profile         ApplicantProfile
}

// NewApplication creates a pending application with no lease attached.
// Lease existence is solely a function of approval, never of submission.
func NewApplication(id string, sub Submission) Application {
	now := time.Now().UTC()
	date := now
	if sub.ApplicationDate != nil {
		date = sub.ApplicationDate.UTC()
	}
	return Application{
		ID:              id,
		PropertyID:      sub.PropertyID,
		TenantID:        sub.TenantID,
		Status:          StatusPending,
		ApplicationDate: date,
		Name:            sub.Name,
		Email:           sub.Email,
		PhoneNumber:     sub.PhoneNumber,
		Profile:         sub.Profile,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// ApplicationDetail is an application joined with its property, tenant and
// resolved lease for presentation. NextPaymentDate is derived from the lease
// start date, never stored.
type ApplicationDetail struct {
	Application
	Property        Property
	Tenant          Tenant
	Lease           *Lease
	NextPaymentDate *time.Time
}
