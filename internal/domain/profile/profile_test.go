package profile

import (
	"testing"

	"github.com/sehatsetu/sehatsetu-api/internal/httperr"
	"github.com/sehatsetu/sehatsetu-api/internal/models"
)

func ptr[T any](v T) *T { return &v }

func TestApplyDoctor(t *testing.T) {
	p := &models.DoctorProfile{User: models.User{Name: "Dr. Old"}}

	err := ApplyDoctor(p, DoctorChanges{
		Name:          ptr(" Dr. Mehta "),
		Services:      []string{"ECG", " ", "Consultation"},
		SetServices:   true,
		Timings:       []models.Timing{{Day: "Mon", Time: "10-1"}, {}},
		SetTimings:    true,
		FirstVisitFee: ptr(500.0),
		Latitude:      ptr(19.07),
		Longitude:     ptr(72.87),
		SetLocation:   true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.User.Name != "Dr. Mehta" {
		t.Errorf("unexpected name %q", p.User.Name)
	}
	if len(p.Services) != 2 || len(p.Timings) != 1 {
		t.Errorf("expected blank entries dropped, got %v %v", p.Services, p.Timings)
	}
	if p.ConsultationFee.FirstVisit != 500 {
		t.Errorf("unexpected fee %v", p.ConsultationFee)
	}
	if p.Latitude == nil || *p.Latitude != 19.07 {
		t.Error("expected latitude to be set")
	}

	if err := ApplyDoctor(p, DoctorChanges{SetLocation: true}); err != nil {
		t.Fatalf("clearing location: %v", err)
	}
	if p.Latitude != nil || p.Longitude != nil {
		t.Error("expected location cleared")
	}
}

func TestApplyDoctorRejects(t *testing.T) {
	cases := map[string]struct {
		ch   DoctorChanges
		code string
	}{
		"blank name":   {DoctorChanges{Name: ptr("  ")}, "invalid_name"},
		"negative fee": {DoctorChanges{FollowUpFee: ptr(-1.0)}, "invalid_fee"},
		"bad latitude": {DoctorChanges{Latitude: ptr(91.0), Longitude: ptr(10.0), SetLocation: true}, "invalid_coordinates"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := ApplyDoctor(&models.DoctorProfile{}, tc.ch)
			if !httperr.IsBusiness(err, tc.code) {
				t.Fatalf("expected %s, got %v", tc.code, err)
			}
		})
	}
}

func TestApplyPharmacy(t *testing.T) {
	ph := &models.Pharmacy{Name: "Old"}
	if err := ApplyPharmacy(ph, PharmacyChanges{Name: ptr("City Meds"), Address: ptr(" MG Road ")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ph.Name != "City Meds" || ph.Address != "MG Road" {
		t.Errorf("unexpected pharmacy %+v", ph)
	}
	if err := ApplyPharmacy(ph, PharmacyChanges{Name: ptr("")}); !httperr.IsBusiness(err, "invalid_name") {
		t.Fatalf("expected invalid_name, got %v", err)
	}
}

func TestUniqueIDs(t *testing.T) {
	got := UniqueIDs([]uint{3, 0, 1, 3, 2, 1})
	want := []uint{3, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
