package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hearthside/leaseiq/internal/domain"
)

// PropertyService manages property listings.
type PropertyService struct {
	repo domain.PropertyRepository
}

// NewPropertyService creates a service backed by the given repository.
func NewPropertyService(repo domain.PropertyRepository) *PropertyService {
	return &PropertyService{repo: repo}
}

// Create lists a new property under a manager.
func (s *PropertyService) Create(ctx context.Context, name string, loc domain.Location, pricePerMonth, securityDeposit float64, managerID string) (domain.Property, error) {
	property := domain.NewProperty(uuid.NewString(), name, loc, pricePerMonth, securityDeposit, managerID)

	if err := s.repo.Create(ctx, property); err != nil {
		return domain.Property{}, fmt.Errorf("creating property: %w", err)
	}

	return property, nil
}

// GetByID returns a property by its unique identifier.
func (s *PropertyService) GetByID(ctx context.Context, id string) (domain.Property, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns properties matching the given filter.
func (s *PropertyService) List(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error) {
	return s.repo.List(ctx, filter)
}
