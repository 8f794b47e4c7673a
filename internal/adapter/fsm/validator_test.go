package fsm_test

import (
	"context"
	"errors"
	"testing"

	adapter "github.com/hearthside/leaseiq/internal/adapter/fsm"
	"github.com/hearthside/leaseiq/internal/domain"
)

func TestValidator_AllTransitions(t *testing.T) {
	v := adapter.New()
	ctx := context.Background()

	for _, tr := range domain.Transitions {
		dst, err := v.Apply(ctx, tr.Src, tr.Event)
		if err != nil {
			t.Errorf("Apply(%q, %q) unexpected error: %v", tr.Src, tr.Event, err)
			continue
		}
		if dst != tr.Dst {
			t.Errorf("Apply(%q, %q) = %q, want %q", tr.Src, tr.Event, dst, tr.Dst)
		}
	}
}

func TestValidator_InvalidTransition(t *testing.T) {
	v := adapter.New()
	ctx := context.Background()

	// Can't reopen a pending application.
	_, err := v.Apply(ctx, domain.StatusPending, domain.EventReopen)
	var trErr *domain.TransitionError
	if !errors.As(err, &trErr) {
		t.Fatalf("expected TransitionError, got %v", err)
	}
	if trErr.Event != domain.EventReopen {
		t.Errorf("event = %q, want %q", trErr.Event, domain.EventReopen)
	}
	if trErr.Current != domain.StatusPending {
		t.Errorf("current = %q, want %q", trErr.Current, domain.StatusPending)
	}
}

func TestValidator_ApprovedIsTerminal(t *testing.T) {
	v := adapter.New()
	ctx := context.Background()

	for _, event := range []domain.Event{domain.EventApprove, domain.EventDeny, domain.EventReopen} {
		_, err := v.Apply(ctx, domain.StatusApproved, event)
		var trErr *domain.TransitionError
		if !errors.As(err, &trErr) {
			t.Errorf("Apply(Approved, %q): expected TransitionError, got %v", event, err)
		}
	}
}

func TestValidator_FullLifecycle(t *testing.T) {
	v := adapter.New()
	ctx := context.Background()

	steps := []struct {
		from  domain.Status
		event domain.Event
		want  domain.Status
	}{
		{domain.StatusPending, domain.EventDeny, domain.StatusDenied},
		{domain.StatusDenied, domain.EventReopen, domain.StatusPending},
		{domain.StatusPending, domain.EventApprove, domain.StatusApproved},
	}

	for _, step := range steps {
		got, err := v.Apply(ctx, step.from, step.event)
		if err != nil {
			t.Fatalf("Apply(%q, %q) error: %v", step.from, step.event, err)
		}
		if got != step.want {
			t.Errorf("Apply(%q, %q) = %q, want %q", step.from, step.event, got, step.want)
		}
	}
}

func TestValidator_ApproveFromDenied(t *testing.T) {
	v := adapter.New()
	ctx := context.Background()

	// Approve is valid from both "Pending" and "Denied".
	got, err := v.Apply(ctx, domain.StatusDenied, domain.EventApprove)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != domain.StatusApproved {
		t.Errorf("got %q, want %q", got, domain.StatusApproved)
	}
}
