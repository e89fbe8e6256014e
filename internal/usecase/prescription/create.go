package prescription

import (
	"context"
	"errors"
	"strings"

	"github.com/sehatsetu/sehatsetu-api/internal/audit"
	"github.com/sehatsetu/sehatsetu-api/internal/cache"
	"github.com/sehatsetu/sehatsetu-api/internal/domain"
	"github.com/sehatsetu/sehatsetu-api/internal/domain/appointment"
	rx "github.com/sehatsetu/sehatsetu-api/internal/domain/prescription"
	"github.com/sehatsetu/sehatsetu-api/internal/httperr"
	"github.com/sehatsetu/sehatsetu-api/internal/models"
)

type CreateInput struct {
	AppointmentID uint
	PatientID     uint
	PharmacyID    uint
	Medicines     []models.MedicineLine
	Notes         string
}

type CreatePrescription struct {
	repo         rx.Repository
	appointments appointment.Repository
	directory    rx.Directory
	cache        cache.Cache
	audit        *audit.Dispatcher
}

func NewCreatePrescription(
	repo rx.Repository,
	appointments appointment.Repository,
	directory rx.Directory,
	c cache.Cache,
	audit *audit.Dispatcher,
) *CreatePrescription {
	return &CreatePrescription{
		repo:         repo,
		appointments: appointments,
		directory:    directory,
		cache:        c,
		audit:        audit,
	}
}

// Execute issues a prescription for an accepted appointment and completes it.
func (uc *CreatePrescription) Execute(
	ctx context.Context,
	doctorID uint,
	in CreateInput,
) (*models.Prescription, error) {

	lines, err := rx.NormalizeLines(in.Medicines)
	if err != nil {
		return nil, err
	}

	ap, err := uc.appointments.GetForDoctor(ctx, in.AppointmentID, doctorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, err
	}

	if ap.Status != string(appointment.StatusAccepted) {
		if ap.PrescriptionID != nil {
			return nil, httperr.ErrBusiness("prescription_exists")
		}
		return nil, httperr.ErrBusiness("appointment_not_accepted")
	}
	if in.PatientID != 0 && in.PatientID != ap.PatientID {
		return nil, httperr.ErrBusiness("patient_mismatch")
	}

	exists, err := uc.repo.ExistsForAppointment(ctx, ap.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, httperr.ErrBusiness("prescription_exists")
	}

	if _, err := uc.directory.GetPharmacy(ctx, in.PharmacyID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("pharmacy_not_found")
		}
		return nil, err
	}

	profile, err := uc.directory.GetDoctorProfile(ctx, doctorID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if profile == nil || !profile.IsLinkedTo(in.PharmacyID) {
		return nil, httperr.ErrBusiness("pharmacy_not_linked")
	}

	p := &models.Prescription{
		AppointmentID: ap.ID,
		DoctorID:      doctorID,
		PatientID:     ap.PatientID,
		PharmacyID:    in.PharmacyID,
		Medicines:     lines,
		Notes:         strings.TrimSpace(in.Notes),
		Status:        string(rx.InitialStatus()),
	}

	if err := uc.repo.CreateForAppointment(ctx, p, ap); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, httperr.ErrBusiness("prescription_exists")
		}
		return nil, err
	}

	_ = uc.cache.Delete(ctx,
		cache.DoctorStatsKey(doctorID),
		cache.PharmacyStatsKey(in.PharmacyID),
	)

	uc.audit.Dispatch(audit.Event{
		ActorID:  doctorID,
		Role:     models.RoleDoctor,
		Action:   "prescription_created",
		Entity:   "prescription",
		EntityID: &p.ID,
		Metadata: map[string]any{
			"appointmentId": ap.ID,
			"pharmacyId":    in.PharmacyID,
			"medicines":     len(lines),
		},
	})

	return p, nil
}
