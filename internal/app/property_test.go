package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/hearthside/leaseiq/internal/app"
	"github.com/hearthside/leaseiq/internal/domain"
)

func TestPropertyService_Create(t *testing.T) {
	repo := newMockProperties()
	svc := app.NewPropertyService(repo)

	property, err := svc.Create(context.Background(), "Maple Court 2B",
		domain.Location{Address: "12 Maple Ct", City: "Springfield", State: "IL", PostalCode: "62701"},
		1450, 2900, "m-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if property.ID == "" {
		t.Error("ID should not be empty")
	}
	if property.PricePerMonth != 1450 {
		t.Errorf("PricePerMonth = %v, want %v", property.PricePerMonth, 1450.0)
	}

	stored, err := svc.GetByID(context.Background(), property.ID)
	if err != nil {
		t.Fatalf("property not found after create: %v", err)
	}
	if stored.ManagerID != "m-1" {
		t.Errorf("ManagerID = %q, want %q", stored.ManagerID, "m-1")
	}
}

func TestPropertyService_GetByID_NotFound(t *testing.T) {
	svc := app.NewPropertyService(newMockProperties())

	_, err := svc.GetByID(context.Background(), "nonexistent")
	if !errors.Is(err, domain.ErrPropertyNotFound) {
		t.Errorf("expected ErrPropertyNotFound, got %v", err)
	}
}

func TestTenantService_RegisterIsIdempotent(t *testing.T) {
	repo := newMockTenants()
	svc := app.NewTenantService(repo)

	if _, err := svc.Register(context.Background(), "T1", "Ada", "ada@example.com", "555-0100"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), "T1", "Ada L.", "ada@example.com", "555-0101"); err != nil {
		t.Fatalf("second register failed: %v", err)
	}

	tenant, err := svc.GetByID(context.Background(), "T1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if tenant.Name != "Ada L." {
		t.Errorf("Name = %q, want the refreshed profile %q", tenant.Name, "Ada L.")
	}
	if tenant.PhoneNumber != "555-0101" {
		t.Errorf("PhoneNumber = %q, want %q", tenant.PhoneNumber, "555-0101")
	}
}

func TestTenantService_GetByID_NotFound(t *testing.T) {
	svc := app.NewTenantService(newMockTenants())

	_, err := svc.GetByID(context.Background(), "nonexistent")
	if !errors.Is(err, domain.ErrTenantNotFound) {
		t.Errorf("expected ErrTenantNotFound, got %v", err)
	}
}
