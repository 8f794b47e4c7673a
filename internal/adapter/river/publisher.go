package river

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/riverqueue/river"

	"github.com/hearthside/leaseiq/internal/domain"
)

// Compile-time check: Publisher implements domain.EventPublisher.
var _ domain.EventPublisher = (*Publisher)(nil)

// EventJobArgs carries the data needed to process a domain event asynchronously.
// River serializes this as JSON into its job queue table. It includes a snapshot
// of the application at the time the event was published, so the worker never
// needs to query the database.
type EventJobArgs struct {
	Event         string  `json:"event"`
	ApplicationID string  `json:"application_id"`
	PropertyID    string  `json:"property_id"`
	TenantID      string  `json:"tenant_id"`
	Status        string  `json:"status"`
	LeaseID       *string `json:"lease_id,omitempty"`
}

// Kind returns the unique job type identifier used by River's job routing.
func (EventJobArgs) Kind() string { return "application.event" }

// Client is the River client type parameterized for SQLite (*sql.Tx).
type Client = river.Client[*sql.Tx]

// Publisher implements domain.EventPublisher by enqueuing River jobs.
type Publisher struct {
	client *Client
}

// NewPublisher creates a publisher backed by the given River client.
func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

// Publish enqueues a domain event as an async job in River.
func (p *Publisher) Publish(ctx context.Context, event domain.Event, a domain.Application) error {
	_, err := p.client.Insert(ctx, EventJobArgs{
		Event:         string(event),
		ApplicationID: a.ID,
		PropertyID:    a.PropertyID,
		TenantID:      a.TenantID,
		Status:        string(a.Status),
		LeaseID:       a.LeaseID,
	}, nil)
	if err != nil {
		return fmt.Errorf("enqueuing event job: %w", err)
	}
	return nil
}
