package otel

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/hearthside/leaseiq/internal/domain"
)

const tracerName = "github.com/hearthside/leaseiq/internal/adapter/otel"

// TracingRepository wraps a domain.ApplicationRepository with OpenTelemetry
// tracing. Each method creates a span with semantic attributes and records
// errors.
type TracingRepository struct {
	next   domain.ApplicationRepository
	tracer trace.Tracer
}

// Compile-time check: TracingRepository implements domain.ApplicationRepository.
var _ domain.ApplicationRepository = (*TracingRepository)(nil)

// NewTracingRepository creates a tracing decorator around the given repository.
func NewTracingRepository(next domain.ApplicationRepository) *TracingRepository {
	return &TracingRepository{
		next:   next,
		tracer: otel.Tracer(tracerName),
	}
}

func (r *TracingRepository) Create(ctx context.Context, a domain.Application) error {
	ctx, span := r.tracer.Start(ctx, "ApplicationRepository.Create",
		trace.WithAttributes(
			attribute.String("application.id", a.ID),
			attribute.String("property.id", a.PropertyID),
			attribute.String("tenant.id", a.TenantID),
		),
	)
	defer span.End()

	err := r.next.Create(ctx, a)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (r *TracingRepository) GetByID(ctx context.Context, id string) (domain.Application, error) {
	ctx, span := r.tracer.Start(ctx, "ApplicationRepository.GetByID",
		trace.WithAttributes(attribute.String("application.id", id)),
	)
	defer span.End()

	a, err := r.next.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return a, err
}

func (r *TracingRepository) GetDetail(ctx context.Context, id string) (domain.ApplicationDetail, error) {
	ctx, span := r.tracer.Start(ctx, "ApplicationRepository.GetDetail",
		trace.WithAttributes(attribute.String("application.id", id)),
	)
	defer span.End()

	detail, err := r.next.GetDetail(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return detail, err
}

func (r *TracingRepository) List(ctx context.Context, filter domain.ApplicationFilter) ([]domain.ApplicationDetail, error) {
	ctx, span := r.tracer.Start(ctx, "ApplicationRepository.List")
	defer span.End()

	if filter.TenantID != "" {
		span.SetAttributes(attribute.String("filter.tenant_id", filter.TenantID))
	}
	if filter.ManagerID != "" {
		span.SetAttributes(attribute.String("filter.manager_id", filter.ManagerID))
	}

	details, err := r.next.List(ctx, filter)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.Int("result.count", len(details)))
	}
	return details, err
}

func (r *TracingRepository) FindActive(ctx context.Context, tenantID, propertyID string) ([]domain.Application, error) {
	ctx, span := r.tracer.Start(ctx, "ApplicationRepository.FindActive",
		trace.WithAttributes(
			attribute.String("tenant.id", tenantID),
			attribute.String("property.id", propertyID),
		),
	)
	defer span.End()

	active, err := r.next.FindActive(ctx, tenantID, propertyID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.Int("result.count", len(active)))
	}
	return active, err
}

func (r *TracingRepository) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	ctx, span := r.tracer.Start(ctx, "ApplicationRepository.UpdateStatus",
		trace.WithAttributes(
			attribute.String("application.id", id),
			attribute.String("application.status", string(status)),
		),
	)
	defer span.End()

	err := r.next.UpdateStatus(ctx, id, status)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (r *TracingRepository) Approve(ctx context.Context, a domain.Application, lease domain.Lease) error {
	ctx, span := r.tracer.Start(ctx, "ApplicationRepository.Approve",
		trace.WithAttributes(
			attribute.String("application.id", a.ID),
			attribute.String("property.id", a.PropertyID),
			attribute.String("tenant.id", a.TenantID),
			attribute.String("lease.id", lease.ID),
		),
	)
	defer span.End()

	err := r.next.Approve(ctx, a, lease)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (r *TracingRepository) ActiveLease(ctx context.Context, tenantID, propertyID string, now time.Time) (domain.Lease, error) {
	ctx, span := r.tracer.Start(ctx, "ApplicationRepository.ActiveLease",
		trace.WithAttributes(
			attribute.String("tenant.id", tenantID),
			attribute.String("property.id", propertyID),
		),
	)
	defer span.End()

	lease, err := r.next.ActiveLease(ctx, tenantID, propertyID, now)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return lease, err
}

func (r *TracingRepository) LatestLease(ctx context.Context, tenantID, propertyID string) (domain.Lease, error) {
	ctx, span := r.tracer.Start(ctx, "ApplicationRepository.LatestLease",
		trace.WithAttributes(
			attribute.String("tenant.id", tenantID),
			attribute.String("property.id", propertyID),
		),
	)
	defer span.End()

	lease, err := r.next.LatestLease(ctx, tenantID, propertyID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return lease, err
}
