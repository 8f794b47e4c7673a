package river

import (
	"context"
	"log/slog"

	"github.com/riverqueue/river"
)

// EventWorker processes application event jobs from the River queue.
// For now it logs the event; future versions will dispatch to
// applicant notifications or manager-facing webhooks.
type EventWorker struct {
	river.WorkerDefaults[EventJobArgs]
}

// Work processes a single event job.
func (w *EventWorker) Work(ctx context.Context, job *river.Job[EventJobArgs]) error {
	slog.InfoContext(ctx, "processing application event",
		"event", job.Args.Event,
		"application_id", job.Args.ApplicationID,
		"property_id", job.Args.PropertyID,
		"tenant_id", job.Args.TenantID,
		"status", job.Args.Status,
		"job_id", job.ID,
		"attempt", job.Attempt,
	)
	return nil
}
