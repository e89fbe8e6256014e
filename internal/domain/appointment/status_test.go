package appointment

import (
	"testing"
	"time"

	"github.com/sehatsetu/sehatsetu-api/internal/httperr"
	"github.com/sehatsetu/sehatsetu-api/internal/models"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusPending, StatusAccepted, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusCanceled, true},
		{StatusPending, StatusCompleted, false},
		{StatusAccepted, StatusCompleted, true},
		{StatusAccepted, StatusCanceled, true},
		{StatusAccepted, StatusRejected, false},
		{StatusRejected, StatusAccepted, false},
		{StatusCompleted, StatusCanceled, false},
		{StatusCanceled, StatusPending, false},
	}

	for _, tc := range cases {
		err := CanTransition(tc.from, tc.to)
		if tc.ok && err != nil {
			t.Errorf("%s -> %s: unexpected error %v", tc.from, tc.to, err)
		}
		if !tc.ok && !httperr.IsBusiness(err, "invalid_state") {
			t.Errorf("%s -> %s: expected invalid_state, got %v", tc.from, tc.to, err)
		}
	}
}

func TestTerminalStatuses(t *testing.T) {
	for _, s := range []Status{StatusRejected, StatusCompleted, StatusCanceled} {
		if !s.IsTerminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	if StatusPending.IsTerminal() || StatusAccepted.IsTerminal() {
		t.Error("pending and accepted must not be terminal")
	}
}

func TestParseStatus(t *testing.T) {
	if _, err := ParseStatus("accepted"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseStatus("approved"); !httperr.IsBusiness(err, "invalid_status") {
		t.Fatalf("expected invalid_status, got %v", err)
	}
}

func TestTransitionStampsTimes(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	ap := &models.Appointment{Status: string(StatusPending)}

	if err := Transition(ap, StatusAccepted, now); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if ap.DecidedAt == nil || !ap.DecidedAt.Equal(now) {
		t.Fatal("expected DecidedAt to be set")
	}

	if err := CompleteWithPrescription(ap, 42, now.Add(time.Hour)); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if ap.Status != string(StatusCompleted) || ap.PrescriptionID == nil || *ap.PrescriptionID != 42 {
		t.Fatalf("unexpected appointment after completion: %+v", ap)
	}
}

func TestCompleteWithPrescriptionRequiresAccepted(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusPending)}
	err := CompleteWithPrescription(ap, 1, time.Now())
	if !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("expected invalid_state, got %v", err)
	}
	if ap.PrescriptionID != nil {
		t.Fatal("prescription must not be linked on failure")
	}
}
