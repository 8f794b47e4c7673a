package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hearthside/leaseiq/internal/domain"
)

// ApplicationService orchestrates the application-to-lease workflow:
// submission, status transitions, and the read-side projection.
type ApplicationService struct {
	apps       domain.ApplicationRepository
	properties domain.PropertyRepository
	tenants    domain.TenantRepository
	publisher  domain.EventPublisher
	validator  domain.TransitionValidator
}

// NewApplicationService creates a service with the given adapters.
func NewApplicationService(
	apps domain.ApplicationRepository,
	properties domain.PropertyRepository,
	tenants domain.TenantRepository,
	publisher domain.EventPublisher,
	validator domain.TransitionValidator,
) *ApplicationService {
	return &ApplicationService{
		apps:       apps,
		properties: properties,
		tenants:    tenants,
		publisher:  publisher,
		validator:  validator,
	}
}

// Submit validates a submission, checks that the property and tenant exist,
// blocks duplicates still in the Pending or Approved class, and creates a
// pending application. No lease is ever created here.
func (s *ApplicationService) Submit(ctx context.Context, sub domain.Submission) (domain.ApplicationDetail, error) {
	if err := domain.ValidateSubmission(sub); err != nil {
		return domain.ApplicationDetail{}, err
	}

	if _, err := s.properties.GetByID(ctx, sub.PropertyID); err != nil {
		return domain.ApplicationDetail{}, err
	}
	if _, err := s.tenants.GetByID(ctx, sub.TenantID); err != nil {
		return domain.ApplicationDetail{}, err
	}

	if err := s.checkDuplicate(ctx, sub.TenantID, sub.PropertyID); err != nil {
		return domain.ApplicationDetail{}, err
	}

	appl := domain.NewApplication(uuid.NewString(), sub)

	if err := s.apps.Create(ctx, appl); err != nil {
		return domain.ApplicationDetail{}, err
	}

	if err := s.publisher.Publish(ctx, domain.EventSubmit, appl); err != nil {
		return domain.ApplicationDetail{}, fmt.Errorf("publishing submission event: %w", err)
	}

	return s.apps.GetDetail(ctx, appl.ID)
}

// checkDuplicate blocks resubmission while a prior application for the same
// (tenant, property) pair is still Pending or Approved. Denied applications
// never block, which keeps the re-apply-after-denial path open.
func (s *ApplicationService) checkDuplicate(ctx context.Context, tenantID, propertyID string) error {
	active, err := s.apps.FindActive(ctx, tenantID, propertyID)
	if err != nil {
		return fmt.Errorf("checking for duplicate applications: %w", err)
	}

	for _, a := range active {
		if a.Status == domain.StatusApproved {
			return &domain.DuplicateApplicationError{
				TenantID:   tenantID,
				PropertyID: propertyID,
				Status:     domain.StatusApproved,
			}
		}
	}
	if len(active) > 0 {
		return &domain.DuplicateApplicationError{
			TenantID:   tenantID,
			PropertyID: propertyID,
			Status:     domain.StatusPending,
		}
	}

	return nil
}

// Get returns an application joined with its property, tenant and lease.
func (s *ApplicationService) Get(ctx context.Context, id string) (domain.ApplicationDetail, error) {
	detail, err := s.apps.GetDetail(ctx, id)
	if err != nil {
		return domain.ApplicationDetail{}, err
	}
	s.derivePayment(&detail)
	return detail, nil
}

// UpdateStatus applies a status transition. Denials and re-openings are a
// single-field write; approval runs the atomic lease-issuance transaction.
// Guards run in order and each short-circuits before any write.
func (s *ApplicationService) UpdateStatus(ctx context.Context, id, rawStatus string) (domain.ApplicationDetail, error) {
	target, err := domain.ParseStatus(rawStatus)
	if err != nil {
		return domain.ApplicationDetail{}, err
	}

	appl, err := s.apps.GetByID(ctx, id)
	if err != nil {
		return domain.ApplicationDetail{}, err
	}

	if appl.Status == domain.StatusApproved && target != domain.StatusApproved {
		return domain.ApplicationDetail{}, domain.ErrCannotModifyApproved
	}
	if appl.LeaseID != nil && target == domain.StatusApproved {
		return domain.ApplicationDetail{}, &domain.LeaseExistsError{
			ApplicationID: appl.ID,
			LeaseID:       *appl.LeaseID,
		}
	}

	event := domain.EventForStatus(target)
	if _, err := s.validator.Apply(ctx, appl.Status, event); err != nil {
		return domain.ApplicationDetail{}, err
	}

	if target == domain.StatusApproved {
		err = s.approve(ctx, appl)
	} else {
		err = s.apps.UpdateStatus(ctx, id, target)
	}
	if err != nil {
		return domain.ApplicationDetail{}, err
	}

	detail, err := s.apps.GetDetail(ctx, id)
	if err != nil {
		return domain.ApplicationDetail{}, err
	}
	s.derivePayment(&detail)

	if err := s.publisher.Publish(ctx, event, detail.Application); err != nil {
		return domain.ApplicationDetail{}, fmt.Errorf("publishing event %q: %w", event, err)
	}

	return detail, nil
}

// approve issues the lease. The property is re-read for its current price
// and deposit, the active-lease guard runs, and the store commits lease
// creation, membership linkage, approval, and auto-denial of competing
// pending applications as one transaction.
func (s *ApplicationService) approve(ctx context.Context, appl domain.Application) error {
	property, err := s.properties.GetByID(ctx, appl.PropertyID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	lease, err := s.apps.ActiveLease(ctx, appl.TenantID, appl.PropertyID, now)
	switch {
	case err == nil:
		return &domain.ActiveLeaseError{
			TenantID:   appl.TenantID,
			PropertyID: appl.PropertyID,
			EndDate:    lease.EndDate,
		}
	case !errors.Is(err, domain.ErrLeaseNotFound):
		return fmt.Errorf("checking active lease: %w", err)
	}

	return s.apps.Approve(ctx, appl, domain.NewLease(uuid.NewString(), property, appl.TenantID, now))
}

// List returns application views submitted by a tenant or against properties
// managed by a manager. Each view resolves the most recent lease for its
// (tenant, property) pair as a display convenience; the authoritative lease
// link stays on the application itself.
func (s *ApplicationService) List(ctx context.Context, filter domain.ApplicationFilter) ([]domain.ApplicationDetail, error) {
	details, err := s.apps.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	for i := range details {
		lease, err := s.apps.LatestLease(ctx, details[i].TenantID, details[i].PropertyID)
		if errors.Is(err, domain.ErrLeaseNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("resolving lease for application %s: %w", details[i].ID, err)
		}
		details[i].Lease = &lease
		s.derivePayment(&details[i])
	}

	return details, nil
}

// derivePayment computes the next payment date from the resolved lease.
func (s *ApplicationService) derivePayment(detail *domain.ApplicationDetail) {
	if detail.Lease == nil {
		return
	}
	next := domain.NextPaymentDate(detail.Lease.StartDate, time.Now().UTC())
	detail.NextPaymentDate = &next
}
