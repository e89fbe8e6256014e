package prescription

import (
	"testing"
	"time"

	"github.com/sehatsetu/sehatsetu-api/internal/httperr"
	"github.com/sehatsetu/sehatsetu-api/internal/models"
)

func TestAdvanceOneStepAtATime(t *testing.T) {
	now := time.Now()
	p := &models.Prescription{Status: string(StatusPending)}

	if err := Advance(p, StatusDispensed, "", now); !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("skipping ready_for_pickup should fail, got %v", err)
	}

	if err := Advance(p, StatusReadyForPickup, "  packed  ", now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.PharmacyNotes != "packed" {
		t.Fatalf("expected trimmed notes, got %q", p.PharmacyNotes)
	}

	if err := Advance(p, StatusDispensed, "", now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.DispensedAt == nil {
		t.Fatal("expected DispensedAt to be set")
	}
	if p.PharmacyNotes != "packed" {
		t.Fatal("empty notes must not overwrite existing notes")
	}
}

func TestDispensedIsImmutable(t *testing.T) {
	p := &models.Prescription{Status: string(StatusDispensed)}
	for _, to := range []Status{StatusPending, StatusReadyForPickup, StatusDispensed} {
		if err := Advance(p, to, "late note", time.Now()); !httperr.IsBusiness(err, "prescription_dispensed") {
			t.Errorf("advance to %s: expected prescription_dispensed, got %v", to, err)
		}
	}
	if p.PharmacyNotes != "" {
		t.Fatal("notes changed on a dispensed prescription")
	}
}

func TestNormalizeLines(t *testing.T) {
	if _, err := NormalizeLines(nil); !httperr.IsBusiness(err, "no_medicines") {
		t.Fatalf("expected no_medicines, got %v", err)
	}

	_, err := NormalizeLines([]models.MedicineLine{{Name: "Paracetamol", Dosage: "500mg"}})
	if !httperr.IsBusiness(err, "invalid_medicine") {
		t.Fatalf("missing duration should fail, got %v", err)
	}

	lines, err := NormalizeLines([]models.MedicineLine{
		{Name: " Amoxicillin ", Dosage: "250mg", Duration: "5 days", Quantity: 0},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lines[0].Name != "Amoxicillin" || lines[0].Quantity != 1 {
		t.Fatalf("unexpected normalized line: %+v", lines[0])
	}
}
