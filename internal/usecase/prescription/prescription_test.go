package prescription

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/sehatsetu/sehatsetu-api/internal/audit"
	"github.com/sehatsetu/sehatsetu-api/internal/cache"
	"github.com/sehatsetu/sehatsetu-api/internal/domain"
	"github.com/sehatsetu/sehatsetu-api/internal/domain/appointment"
	"github.com/sehatsetu/sehatsetu-api/internal/httperr"
	"github.com/sehatsetu/sehatsetu-api/internal/models"
)

type fakeAppointments struct {
	apps map[uint]*models.Appointment
}

func (f *fakeAppointments) ListForDoctor(context.Context, uint) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointments) GetForDoctor(_ context.Context, id, doctorID uint) (*models.Appointment, error) {
	ap, ok := f.apps[id]
	if !ok || ap.DoctorID != doctorID {
		return nil, domain.ErrNotFound
	}
	cp := *ap
	return &cp, nil
}

func (f *fakeAppointments) Update(context.Context, *models.Appointment) error { return nil }

func (f *fakeAppointments) ListHistory(context.Context, uint) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointments) CountByStatus(context.Context, uint) (map[appointment.Status]int64, error) {
	return nil, nil
}

func (f *fakeAppointments) CountScheduledBetween(context.Context, uint, time.Time, time.Time) (int64, error) {
	return 0, nil
}

type fakePrescriptions struct {
	items        map[uint]*models.Prescription
	appointments *fakeAppointments
	nextID       uint
}

func (f *fakePrescriptions) CreateForAppointment(_ context.Context, p *models.Prescription, ap *models.Appointment) error {
	f.nextID++
	p.ID = f.nextID
	p.CreatedAt = time.Now()
	if err := appointment.CompleteWithPrescription(ap, p.ID, p.CreatedAt); err != nil {
		return err
	}
	f.items[p.ID] = p
	f.appointments.apps[ap.ID] = ap
	return nil
}

func (f *fakePrescriptions) ExistsForAppointment(_ context.Context, appointmentID uint) (bool, error) {
	for _, p := range f.items {
		if p.AppointmentID == appointmentID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePrescriptions) GetForDoctor(_ context.Context, id, doctorID uint) (*models.Prescription, error) {
	p, ok := f.items[id]
	if !ok || p.DoctorID != doctorID {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (f *fakePrescriptions) GetForPharmacy(_ context.Context, id, pharmacyID uint) (*models.Prescription, error) {
	p, ok := f.items[id]
	if !ok || p.PharmacyID != pharmacyID {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePrescriptions) ListForPharmacy(context.Context, uint) ([]models.Prescription, error) {
	return nil, nil
}

func (f *fakePrescriptions) Update(_ context.Context, p *models.Prescription) error {
	cp := *p
	f.items[p.ID] = &cp
	return nil
}

func (f *fakePrescriptions) CountPendingForPharmacy(context.Context, uint) (int64, error) {
	return 0, nil
}

type fakeDirectory struct {
	profiles   map[uint]*models.DoctorProfile
	pharmacies map[uint]*models.Pharmacy
}

func (f *fakeDirectory) GetDoctorProfile(_ context.Context, doctorID uint) (*models.DoctorProfile, error) {
	if p, ok := f.profiles[doctorID]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeDirectory) GetPharmacy(_ context.Context, id uint) (*models.Pharmacy, error) {
	if ph, ok := f.pharmacies[id]; ok {
		return ph, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeDirectory) GetPharmacyByOwner(_ context.Context, ownerID uint) (*models.Pharmacy, error) {
	for _, ph := range f.pharmacies {
		if ph.OwnerID == ownerID {
			return ph, nil
		}
	}
	return nil, domain.ErrNotFound
}

type nopSink struct{}

func (nopSink) Log(context.Context, audit.Event) error { return nil }

type fixture struct {
	appointments  *fakeAppointments
	prescriptions *fakePrescriptions
	directory     *fakeDirectory
	create        *CreatePrescription
	update        *UpdateStatus
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	apps := &fakeAppointments{apps: map[uint]*models.Appointment{
		1: {ID: 1, DoctorID: 7, PatientID: 9, Status: "accepted"},
		2: {ID: 2, DoctorID: 7, PatientID: 9, Status: "pending"},
	}}
	rxs := &fakePrescriptions{items: map[uint]*models.Prescription{}, appointments: apps}
	linked := models.Pharmacy{ID: 3, OwnerID: 30, Name: "City Meds"}
	dir := &fakeDirectory{
		profiles: map[uint]*models.DoctorProfile{
			7: {UserID: 7, LinkedPharmacies: []models.Pharmacy{linked}},
		},
		pharmacies: map[uint]*models.Pharmacy{
			3: &linked,
			4: {ID: 4, OwnerID: 40, Name: "Elsewhere"},
		},
	}

	d := audit.NewDispatcher(nopSink{}, zerolog.Nop())
	t.Cleanup(d.Close)
	mem := cache.NewMemory()

	return &fixture{
		appointments:  apps,
		prescriptions: rxs,
		directory:     dir,
		create:        NewCreatePrescription(rxs, apps, dir, mem, d),
		update:        NewUpdateStatus(rxs, mem, d, "Asia/Kolkata"),
	}
}

func validInput() CreateInput {
	return CreateInput{
		AppointmentID: 1,
		PatientID:     9,
		PharmacyID:    3,
		Medicines: []models.MedicineLine{
			{Name: " Amoxicillin 500mg ", Dosage: "1 cap", Frequency: "TDS", Duration: "5 days"},
		},
		Notes: " after food ",
	}
}

func TestCreatePrescriptionCompletesAppointment(t *testing.T) {
	f := newFixture(t)

	p, err := f.create.Execute(context.Background(), 7, validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Status != "pending" || p.Notes != "after food" {
		t.Errorf("unexpected prescription %+v", p)
	}
	if p.Medicines[0].Name != "Amoxicillin 500mg" || p.Medicines[0].Quantity != 1 {
		t.Errorf("expected normalized line, got %+v", p.Medicines[0])
	}

	ap := f.appointments.apps[1]
	if ap.Status != "completed" || ap.PrescriptionID == nil || *ap.PrescriptionID != p.ID {
		t.Fatalf("expected appointment completed and linked, got %+v", ap)
	}

	if _, err := f.create.Execute(context.Background(), 7, validInput()); !httperr.IsBusiness(err, "prescription_exists") {
		t.Fatalf("expected prescription_exists on second attempt, got %v", err)
	}
}

func TestCreatePrescriptionRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CreateInput)
		code   string
	}{
		{"no medicines", func(in *CreateInput) { in.Medicines = nil }, "no_medicines"},
		{"missing dosage", func(in *CreateInput) { in.Medicines[0].Dosage = " " }, "invalid_medicine"},
		{"unknown appointment", func(in *CreateInput) { in.AppointmentID = 99 }, "appointment_not_found"},
		{"pending appointment", func(in *CreateInput) { in.AppointmentID = 2 }, "appointment_not_accepted"},
		{"other patient", func(in *CreateInput) { in.PatientID = 10 }, "patient_mismatch"},
		{"unknown pharmacy", func(in *CreateInput) { in.PharmacyID = 99 }, "pharmacy_not_found"},
		{"unlinked pharmacy", func(in *CreateInput) { in.PharmacyID = 4 }, "pharmacy_not_linked"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			in := validInput()
			tc.mutate(&in)

			_, err := f.create.Execute(context.Background(), 7, in)
			if !httperr.IsBusiness(err, tc.code) {
				t.Fatalf("expected %s, got %v", tc.code, err)
			}
			if len(f.prescriptions.items) != 0 {
				t.Fatal("nothing should be stored on failure")
			}
		})
	}
}

func TestUpdateStatusStepsForward(t *testing.T) {
	f := newFixture(t)
	p, err := f.create.Execute(context.Background(), 7, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	ctx := context.Background()

	if _, err := f.update.Execute(ctx, 30, 3, p.ID, "dispensed", ""); !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("expected skipping a step to fail, got %v", err)
	}

	got, err := f.update.Execute(ctx, 30, 3, p.ID, "ready_for_pickup", "Packed at counter 2")
	if err != nil {
		t.Fatalf("ready: %v", err)
	}
	if got.PharmacyNotes != "Packed at counter 2" {
		t.Errorf("unexpected notes %q", got.PharmacyNotes)
	}

	got, err = f.update.Execute(ctx, 30, 3, p.ID, "dispensed", "")
	if err != nil {
		t.Fatalf("dispense: %v", err)
	}
	if got.DispensedAt == nil || got.PharmacyNotes != "Packed at counter 2" {
		t.Errorf("unexpected dispensed prescription %+v", got)
	}

	if _, err := f.update.Execute(ctx, 30, 3, p.ID, "ready_for_pickup", "again"); !httperr.IsBusiness(err, "prescription_dispensed") {
		t.Fatalf("expected dispensed prescriptions to be immutable, got %v", err)
	}

	if _, err := f.update.Execute(ctx, 40, 4, p.ID, "ready_for_pickup", ""); !httperr.IsBusiness(err, "prescription_not_found") {
		t.Fatalf("expected other pharmacies to be rejected, got %v", err)
	}
}

func TestRenderPDF(t *testing.T) {
	dob := time.Date(1990, 4, 2, 0, 0, 0, 0, time.UTC)
	p := &models.Prescription{
		ID:        12,
		Doctor:    models.User{Name: "Dr. Iyer", Specialization: "General Medicine"},
		Patient:   models.User{Name: "Ravi Kumar", Gender: "male", DateOfBirth: &dob},
		Pharmacy:  models.Pharmacy{Name: "City Meds", Address: "MG Road"},
		Medicines: []models.MedicineLine{{Name: "Paracetamol", Dosage: "500mg", Frequency: "BD", Duration: "3 days", Quantity: 6}},
		Notes:     "Hydrate well",
		CreatedAt: time.Now(),
	}

	var buf bytes.Buffer
	if err := RenderPDF(&buf, p, time.UTC); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatal("expected PDF header")
	}
}
