package domain

import (
	"context"
	"time"
)

// PropertyRepository defines the persistence contract for properties.
type PropertyRepository interface {
	Create(ctx context.Context, p Property) error
	GetByID(ctx context.Context, id string) (Property, error)
	List(ctx context.Context, filter PropertyFilter) ([]Property, error)
}

// PropertyFilter holds optional criteria for listing properties.
type PropertyFilter struct {
	ManagerID string
	Limit     int
	Offset    int
}

// TenantRepository defines the persistence contract for tenant profiles.
// Upsert is idempotent because identity lives in an upstream system.
type TenantRepository interface {
	Upsert(ctx context.Context, t Tenant) error
	GetByID(ctx context.Context, id string) (Tenant, error)
}

// ApplicationRepository defines the persistence contract for applications
// and their leases. Approve must execute as a single atomic transaction.
type ApplicationRepository interface {
	Create(ctx context.Context, a Application) error
	GetByID(ctx context.Context, id string) (Application, error)
	GetDetail(ctx context.Context, id string) (ApplicationDetail, error)
	List(ctx context.Context, filter ApplicationFilter) ([]ApplicationDetail, error)
	FindActive(ctx context.Context, tenantID, propertyID string) ([]Application, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	Approve(ctx context.Context, a Application, lease Lease) error
	ActiveLease(ctx context.Context, tenantID, propertyID string, now time.Time) (Lease, error)
	LatestLease(ctx context.Context, tenantID, propertyID string) (Lease, error)
}

// ApplicationFilter selects applications submitted by a tenant or against
// properties managed by a manager. Exactly one selector should be set.
type ApplicationFilter struct {
	TenantID  string
	ManagerID string
}

// TransitionValidator validates status transitions against the lifecycle
// state machine.
type TransitionValidator interface {
	Apply(ctx context.Context, current Status, event Event) (Status, error)
}

// EventPublisher defines the contract for emitting application lifecycle
// events.
type EventPublisher interface {
	Publish(ctx context.Context, event Event, a Application) error
}
