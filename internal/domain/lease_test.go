package domain_test

import (
	"testing"
	"time"

	"github.com/hearthside/leaseiq/internal/domain"
)

func TestNewLease(t *testing.T) {
	property := domain.NewProperty("p-1", "Maple Court 2B", domain.Location{
		Address: "12 Maple Ct", City: "Springfield", State: "IL", PostalCode: "62701",
	}, 1450, 2900, "m-1")

	start := time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC)
	lease := domain.NewLease("l-1", property, "T1", start)

	if !lease.StartDate.Equal(start) {
		t.Errorf("StartDate = %v, want %v", lease.StartDate, start)
	}
	want := start.AddDate(1, 0, 0)
	if !lease.EndDate.Equal(want) {
		t.Errorf("EndDate = %v, want %v", lease.EndDate, want)
	}
	if lease.Rent != 1450 {
		t.Errorf("Rent = %v, want %v", lease.Rent, 1450.0)
	}
	if lease.Deposit != 2900 {
		t.Errorf("Deposit = %v, want %v", lease.Deposit, 2900.0)
	}
	if lease.PropertyID != "p-1" || lease.TenantID != "T1" {
		t.Errorf("references = (%q, %q), want (%q, %q)", lease.PropertyID, lease.TenantID, "p-1", "T1")
	}
}

func TestLease_Active(t *testing.T) {
	lease := domain.Lease{EndDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)}

	if !lease.Active(time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC)) {
		t.Error("lease should be active before its end date")
	}
	if !lease.Active(lease.EndDate) {
		t.Error("lease should be active on its end date")
	}
	if lease.Active(time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)) {
		t.Error("lease should be inactive after its end date")
	}
}

func TestNextPaymentDate(t *testing.T) {
	start := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "mid first month",
			now:  time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC),
			want: time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "several months in",
			now:  time.Date(2026, 4, 16, 0, 0, 0, 0, time.UTC),
			want: time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "on a payment date advances to the next",
			now:  time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
			want: time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "start in the future returns start",
			now:  time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
			want: start,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := domain.NextPaymentDate(start, tc.now)
			if !got.Equal(tc.want) {
				t.Errorf("NextPaymentDate(%v, %v) = %v, want %v", start, tc.now, got, tc.want)
			}
		})
	}
}

func TestNextPaymentDate_Deterministic(t *testing.T) {
	start := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)

	first := domain.NextPaymentDate(start, now)
	second := domain.NextPaymentDate(start, now)

	if !first.Equal(second) {
		t.Errorf("NextPaymentDate not deterministic: %v vs %v", first, second)
	}
	if !first.After(now) {
		t.Errorf("NextPaymentDate = %v, want strictly after %v", first, now)
	}
}
