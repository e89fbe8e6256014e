package stats

import (
	"context"
	"testing"
	"time"

	"github.com/sehatsetu/sehatsetu-api/internal/cache"
	"github.com/sehatsetu/sehatsetu-api/internal/domain/appointment"
	"github.com/sehatsetu/sehatsetu-api/internal/domain/stock"
	"github.com/sehatsetu/sehatsetu-api/internal/models"
)

type fakeAppointments struct {
	appointment.Repository
	counts     map[appointment.Status]int64
	start, end time.Time
	countCalls int
	scheduled  int64
}

func (f *fakeAppointments) CountByStatus(context.Context, uint) (map[appointment.Status]int64, error) {
	f.countCalls++
	return f.counts, nil
}

func (f *fakeAppointments) CountScheduledBetween(_ context.Context, _ uint, start, end time.Time) (int64, error) {
	f.start, f.end = start, end
	return f.scheduled, nil
}

func TestDoctorStats(t *testing.T) {
	repo := &fakeAppointments{
		counts: map[appointment.Status]int64{
			appointment.StatusPending:  3,
			appointment.StatusAccepted: 2,
			appointment.StatusRejected: 9,
		},
		scheduled: 4,
	}

	uc := NewGetDoctorStats(repo, cache.NewMemory(), time.Minute, "Asia/Kolkata")
	uc.now = func() time.Time { return time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC) }

	got, err := uc.Execute(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TodaysAppointments != 4 || got.PendingRequests != 3 || got.AcceptedAppointments != 2 {
		t.Fatalf("unexpected stats %+v", got)
	}

	// 20:00 UTC is already 2 June in Kolkata.
	if got := repo.start.Format("2006-01-02 15:04"); got != "2026-06-02 00:00" {
		t.Errorf("unexpected day start %s", got)
	}
	if repo.end.Sub(repo.start) != 24*time.Hour {
		t.Errorf("expected a one day window")
	}

	if _, err := uc.Execute(context.Background(), 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.countCalls != 1 {
		t.Errorf("expected second call to be served from cache, got %d repository calls", repo.countCalls)
	}
}

type fakeStock struct {
	stock.Repository
	total, out int64
}

func (f *fakeStock) CountSummary(context.Context, uint) (int64, int64, error) {
	return f.total, f.out, nil
}

type fakePrescriptions struct {
	pending int64
}

func (f *fakePrescriptions) CreateForAppointment(context.Context, *models.Prescription, *models.Appointment) error {
	return nil
}
func (f *fakePrescriptions) ExistsForAppointment(context.Context, uint) (bool, error) { return false, nil }
func (f *fakePrescriptions) GetForDoctor(context.Context, uint, uint) (*models.Prescription, error) {
	return nil, nil
}
func (f *fakePrescriptions) GetForPharmacy(context.Context, uint, uint) (*models.Prescription, error) {
	return nil, nil
}
func (f *fakePrescriptions) ListForPharmacy(context.Context, uint) ([]models.Prescription, error) {
	return nil, nil
}
func (f *fakePrescriptions) Update(context.Context, *models.Prescription) error { return nil }
func (f *fakePrescriptions) CountPendingForPharmacy(context.Context, uint) (int64, error) {
	return f.pending, nil
}

func TestPharmacyStats(t *testing.T) {
	uc := NewGetPharmacyStats(&fakeStock{total: 40, out: 3}, &fakePrescriptions{pending: 5}, cache.NewMemory(), time.Minute)

	got, err := uc.Execute(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TotalMedicines != 40 || got.OutOfStock != 3 || got.PendingPrescriptions != 5 {
		t.Fatalf("unexpected stats %+v", got)
	}
}
