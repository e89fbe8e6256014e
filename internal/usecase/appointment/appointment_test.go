package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/sehatsetu/sehatsetu-api/internal/audit"
	"github.com/sehatsetu/sehatsetu-api/internal/cache"
	"github.com/sehatsetu/sehatsetu-api/internal/domain"
	appointment "github.com/sehatsetu/sehatsetu-api/internal/domain/appointment"
	"github.com/sehatsetu/sehatsetu-api/internal/httperr"
	"github.com/sehatsetu/sehatsetu-api/internal/models"
)

type fakeRepo struct {
	apps    map[uint]*models.Appointment
	updates int
}

func (f *fakeRepo) ListForDoctor(_ context.Context, doctorID uint) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.apps {
		if ap.DoctorID == doctorID {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetForDoctor(_ context.Context, id, doctorID uint) (*models.Appointment, error) {
	ap, ok := f.apps[id]
	if !ok || ap.DoctorID != doctorID {
		return nil, domain.ErrNotFound
	}
	cp := *ap
	return &cp, nil
}

func (f *fakeRepo) Update(_ context.Context, ap *models.Appointment) error {
	f.updates++
	cp := *ap
	f.apps[ap.ID] = &cp
	return nil
}

func (f *fakeRepo) ListHistory(context.Context, uint) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeRepo) CountByStatus(context.Context, uint) (map[appointment.Status]int64, error) {
	return nil, nil
}

func (f *fakeRepo) CountScheduledBetween(context.Context, uint, time.Time, time.Time) (int64, error) {
	return 0, nil
}

type nopSink struct{}

func (nopSink) Log(context.Context, audit.Event) error { return nil }

func newDispatcher(t *testing.T) *audit.Dispatcher {
	d := audit.NewDispatcher(nopSink{}, zerolog.Nop())
	t.Cleanup(d.Close)
	return d
}

func TestSortPendingFirst(t *testing.T) {
	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	apps := []models.Appointment{
		{ID: 1, Status: "accepted", AppointmentDate: base},
		{ID: 2, Status: "pending", AppointmentDate: base.Add(2 * time.Hour)},
		{ID: 3, Status: "rejected", AppointmentDate: base.Add(-time.Hour)},
		{ID: 4, Status: "pending", AppointmentDate: base.Add(time.Hour)},
	}

	SortPendingFirst(apps)

	want := []uint{4, 2, 3, 1}
	for i, id := range want {
		if apps[i].ID != id {
			t.Fatalf("position %d: expected %d, got %d", i, id, apps[i].ID)
		}
	}
}

func TestUpdateAppointmentStatus(t *testing.T) {
	repo := &fakeRepo{apps: map[uint]*models.Appointment{
		1: {ID: 1, DoctorID: 7, PatientID: 9, Status: "pending"},
	}}
	mem := cache.NewMemory()
	_ = mem.Set(context.Background(), cache.DoctorStatsKey(7), map[string]int{"pendingRequests": 1}, time.Minute)

	uc := NewUpdateAppointmentStatus(repo, mem, newDispatcher(t), "Asia/Kolkata")

	ap, err := uc.Execute(context.Background(), 7, 1, "accepted")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ap.Status != "accepted" || ap.DecidedAt == nil {
		t.Fatalf("unexpected appointment %+v", ap)
	}
	if repo.apps[1].Status != "accepted" {
		t.Fatal("expected status persisted")
	}

	var stale map[string]int
	if ok, _ := mem.Get(context.Background(), cache.DoctorStatsKey(7), &stale); ok {
		t.Error("expected doctor stats to be invalidated")
	}
}

func TestUpdateAppointmentStatusErrors(t *testing.T) {
	repo := &fakeRepo{apps: map[uint]*models.Appointment{
		1: {ID: 1, DoctorID: 7, Status: "rejected"},
	}}
	uc := NewUpdateAppointmentStatus(repo, cache.NewMemory(), newDispatcher(t), "UTC")

	cases := []struct {
		name     string
		doctorID uint
		id       uint
		status   string
		code     string
	}{
		{"unknown status", 7, 1, "approved", "invalid_status"},
		{"other doctor", 8, 1, "accepted", "appointment_not_found"},
		{"missing", 7, 99, "accepted", "appointment_not_found"},
		{"terminal", 7, 1, "accepted", "invalid_state"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tc.doctorID, tc.id, tc.status)
			if !httperr.IsBusiness(err, tc.code) {
				t.Fatalf("expected %s, got %v", tc.code, err)
			}
		})
	}

	if repo.updates != 0 {
		t.Fatalf("no update expected on failure, got %d", repo.updates)
	}
}
