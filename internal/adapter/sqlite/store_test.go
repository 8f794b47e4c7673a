package sqlite_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/hearthside/leaseiq/internal/adapter/sqlite"
	"github.com/hearthside/leaseiq/internal/domain"
)

// newTestStore creates an in-memory SQLite store for testing.
func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func seedProperty(t *testing.T, store *sqlite.Store, id, managerID string) domain.Property {
	t.Helper()
	p := domain.NewProperty(id, "Unit "+id, domain.Location{
		Address: "12 Maple Ct", City: "Springfield", State: "IL", PostalCode: "62701",
		Latitude: 39.78, Longitude: -89.65,
	}, 1450, 2900, managerID)
	if err := store.Properties().Create(context.Background(), p); err != nil {
		t.Fatalf("seeding property %s: %v", id, err)
	}
	return p
}

func seedTenant(t *testing.T, store *sqlite.Store, id string) domain.Tenant {
	t.Helper()
	tenant := domain.NewTenant(id, "Tenant "+id, id+"@example.com", "555-0100")
	if err := store.Tenants().Upsert(context.Background(), tenant); err != nil {
		t.Fatalf("seeding tenant %s: %v", id, err)
	}
	return tenant
}

// --- Properties ---

func TestPropertyCreate_And_GetByID(t *testing.T) {
	store := newTestStore(t)
	seedProperty(t, store, "p-1", "m-1")

	got, err := store.Properties().GetByID(context.Background(), "p-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}

	if got.Name != "Unit p-1" {
		t.Errorf("Name = %q, want %q", got.Name, "Unit p-1")
	}
	if got.Location.City != "Springfield" {
		t.Errorf("City = %q, want %q", got.Location.City, "Springfield")
	}
	if got.Location.Latitude != 39.78 {
		t.Errorf("Latitude = %v, want %v", got.Location.Latitude, 39.78)
	}
	if got.PricePerMonth != 1450 {
		t.Errorf("PricePerMonth = %v, want %v", got.PricePerMonth, 1450.0)
	}
	if got.SecurityDeposit != 2900 {
		t.Errorf("SecurityDeposit = %v, want %v", got.SecurityDeposit, 2900.0)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should not be zero")
	}
}

func TestPropertyGetByID_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Properties().GetByID(context.Background(), "nonexistent")
	if !errors.Is(err, domain.ErrPropertyNotFound) {
		t.Errorf("expected ErrPropertyNotFound, got %v", err)
	}
}

func TestPropertyList_FilterByManager(t *testing.T) {
	store := newTestStore(t)
	seedProperty(t, store, "p-1", "m-1")
	seedProperty(t, store, "p-2", "m-1")
	seedProperty(t, store, "p-3", "m-2")

	properties, err := store.Properties().List(context.Background(), domain.PropertyFilter{ManagerID: "m-1"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(properties) != 2 {
		t.Errorf("got %d properties, want 2", len(properties))
	}
}

func TestPropertyList_Pagination(t *testing.T) {
	store := newTestStore(t)
	for i := range 5 {
		seedProperty(t, store, fmt.Sprintf("p-%d", i), "m-1")
	}

	properties, err := store.Properties().List(context.Background(), domain.PropertyFilter{Limit: 2, Offset: 1})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(properties) != 2 {
		t.Errorf("got %d properties, want 2", len(properties))
	}
}

// --- Tenants ---

func TestTenantUpsert_And_GetByID(t *testing.T) {
	store := newTestStore(t)
	seedTenant(t, store, "T1")

	got, err := store.Tenants().GetByID(context.Background(), "T1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Email != "T1@example.com" {
		t.Errorf("Email = %q, want %q", got.Email, "T1@example.com")
	}
}

func TestTenantUpsert_RefreshesProfile(t *testing.T) {
	store := newTestStore(t)
	seedTenant(t, store, "T1")

	refreshed := domain.NewTenant("T1", "Renamed", "new@example.com", "555-0199")
	if err := store.Tenants().Upsert(context.Background(), refreshed); err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}

	got, err := store.Tenants().GetByID(context.Background(), "T1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Renamed" {
		t.Errorf("Name = %q, want %q", got.Name, "Renamed")
	}
	if got.PhoneNumber != "555-0199" {
		t.Errorf("PhoneNumber = %q, want %q", got.PhoneNumber, "555-0199")
	}
}

func TestTenantGetByID_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Tenants().GetByID(context.Background(), "nonexistent")
	if !errors.Is(err, domain.ErrTenantNotFound) {
		t.Errorf("expected ErrTenantNotFound, got %v", err)
	}
}

// --- Transaction bounds ---

func TestTx_ConnectionWaitTimesOut(t *testing.T) {
	store := newTestStore(t)
	property := seedProperty(t, store, "p-1", "m-1")
	seedTenant(t, store, "T1")
	appl := newApplication("a-1", "p-1", "T1")
	mustCreateApplication(t, store, appl)

	// Hold the store's only connection so the transaction never gets one.
	conn, err := store.DB().Conn(context.Background())
	if err != nil {
		t.Fatalf("holding connection: %v", err)
	}
	defer conn.Close()

	store.SetTxTimeouts(50*time.Millisecond, time.Second)

	lease := domain.NewLease("l-1", property, "T1", time.Now().UTC())
	err = store.Applications().Approve(context.Background(), appl, lease)
	if !errors.Is(err, domain.ErrTxTimeout) {
		t.Fatalf("expected ErrTxTimeout, got %v", err)
	}

	// Nothing committed: no lease, application untouched.
	conn.Close()
	if n := countRows(t, store, "leases"); n != 0 {
		t.Errorf("leases = %d, want 0", n)
	}
	got, err := store.Applications().GetByID(context.Background(), "a-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != domain.StatusPending {
		t.Errorf("Status = %q, want %q", got.Status, domain.StatusPending)
	}
	if got.LeaseID != nil {
		t.Error("LeaseID should stay nil")
	}
}

func TestTx_CallerDeadlineIsNotAStoreTimeout(t *testing.T) {
	store := newTestStore(t)
	property := seedProperty(t, store, "p-1", "m-1")
	seedTenant(t, store, "T1")
	appl := newApplication("a-1", "p-1", "T1")
	mustCreateApplication(t, store, appl)

	// An expired caller context must surface as the caller's own deadline,
	// not as the store-side timeout.
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	lease := domain.NewLease("l-1", property, "T1", time.Now().UTC())
	err := store.Applications().Approve(ctx, appl, lease)
	if errors.Is(err, domain.ErrTxTimeout) {
		t.Fatalf("caller deadline mapped to store timeout: %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}
}
