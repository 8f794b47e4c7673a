package app

import (
	"context"
	"fmt"

	"github.com/hearthside/leaseiq/internal/domain"
)

// TenantService manages tenant profiles keyed by externally issued ids.
type TenantService struct {
	repo domain.TenantRepository
}

// NewTenantService creates a service backed by the given repository.
func NewTenantService(repo domain.TenantRepository) *TenantService {
	return &TenantService{repo: repo}
}

// Register stores or refreshes a tenant profile. The operation is idempotent:
// identity lives upstream, so repeated registration overwrites the profile.
func (s *TenantService) Register(ctx context.Context, id, name, email, phoneNumber string) (domain.Tenant, error) {
	tenant := domain.NewTenant(id, name, email, phoneNumber)

	if err := s.repo.Upsert(ctx, tenant); err != nil {
		return domain.Tenant{}, fmt.Errorf("registering tenant: %w", err)
	}

	return tenant, nil
}

// GetByID returns a tenant profile by its identity id.
func (s *TenantService) GetByID(ctx context.Context, id string) (domain.Tenant, error) {
	return s.repo.GetByID(ctx, id)
}
