package appointment

import (
	"testing"
	"time"

	"github.com/igenda-app/igenda-api/internal/httperr"
	"github.com/igenda-app/igenda-api/internal/models"
)

func TestConfirm_FromScheduled(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	ap := &models.Appointment{Status: string(StatusScheduled)}

	if err := Confirm(ap, now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ap.Status != string(StatusConfirmed) {
		t.Fatalf("expected status confirmed, got %s", ap.Status)
	}
	if ap.ConfirmedAt == nil || !ap.ConfirmedAt.Equal(now) {
		t.Fatalf("expected confirmed_at = %s, got %v", now, ap.ConfirmedAt)
	}
}

func TestConfirm_AlreadyConfirmed(t *testing.T) {
	now := time.Now()
	ap := &models.Appointment{Status: string(StatusConfirmed)}

	err := Confirm(ap, now)
	if !httperr.IsBusiness(err, httperr.CodeInvalidTransition) {
		t.Fatalf("expected invalid_transition, got %v", err)
	}
}

func TestCancel_FromScheduledAndConfirmed(t *testing.T) {
	now := time.Now()

	for _, from := range []Status{StatusScheduled, StatusConfirmed} {
		ap := &models.Appointment{Status: string(from)}
		if err := Cancel(ap, now); err != nil {
			t.Fatalf("cancel from %s: unexpected error: %v", from, err)
		}
		if ap.Status != string(StatusCanceled) {
			t.Fatalf("cancel from %s: expected canceled, got %s", from, ap.Status)
		}
		if ap.CancelledAt == nil {
			t.Fatalf("cancel from %s: expected cancelled_at set", from)
		}
	}
}

func TestMarkNoShow_FromScheduledAndConfirmed(t *testing.T) {
	now := time.Now()

	for _, from := range []Status{StatusScheduled, StatusConfirmed} {
		ap := &models.Appointment{Status: string(from)}
		if err := MarkNoShow(ap, now); err != nil {
			t.Fatalf("no-show from %s: unexpected error: %v", from, err)
		}
		if ap.Status != string(StatusNoShow) {
			t.Fatalf("no-show from %s: expected no_show, got %s", from, ap.Status)
		}
	}
}

func TestTerminalStates_RejectAllTransitions(t *testing.T) {
	now := time.Now()

	for _, terminal := range []Status{StatusCanceled, StatusNoShow} {
		for name, action := range map[string]func(*models.Appointment, time.Time) error{
			"confirm": Confirm,
			"cancel":  Cancel,
			"no_show": MarkNoShow,
		} {
			ap := &models.Appointment{Status: string(terminal)}
			err := action(ap, now)
			if !httperr.IsBusiness(err, httperr.CodeInvalidTransition) {
				t.Fatalf("%s from %s: expected invalid_transition, got %v", name, terminal, err)
			}
			if ap.Status != string(terminal) {
				t.Fatalf("%s from %s: status mutated to %s", name, terminal, ap.Status)
			}
		}
	}
}
