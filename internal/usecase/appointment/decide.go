package appointment

import (
	"context"
	"errors"

	"github.com/sehatsetu/sehatsetu-api/internal/audit"
	"github.com/sehatsetu/sehatsetu-api/internal/cache"
	"github.com/sehatsetu/sehatsetu-api/internal/domain"
	appointment "github.com/sehatsetu/sehatsetu-api/internal/domain/appointment"
	"github.com/sehatsetu/sehatsetu-api/internal/httperr"
	"github.com/sehatsetu/sehatsetu-api/internal/models"
	"github.com/sehatsetu/sehatsetu-api/internal/timezone"
)

type UpdateAppointmentStatus struct {
	repo     appointment.Repository
	cache    cache.Cache
	audit    *audit.Dispatcher
	timezone string
}

func NewUpdateAppointmentStatus(
	repo appointment.Repository,
	c cache.Cache,
	audit *audit.Dispatcher,
	tz string,
) *UpdateAppointmentStatus {
	return &UpdateAppointmentStatus{
		repo:     repo,
		cache:    c,
		audit:    audit,
		timezone: tz,
	}
}

func (uc *UpdateAppointmentStatus) Execute(
	ctx context.Context,
	doctorID uint,
	appointmentID uint,
	status string,
) (*models.Appointment, error) {

	next, err := appointment.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetForDoctor(ctx, appointmentID, doctorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, err
	}

	from := ap.Status
	if err := appointment.Transition(ap, next, timezone.NowIn(uc.timezone)); err != nil {
		return nil, err
	}

	if err := uc.repo.Update(ctx, ap); err != nil {
		return nil, err
	}

	_ = uc.cache.Delete(ctx, cache.DoctorStatsKey(doctorID))

	uc.audit.Dispatch(audit.Event{
		ActorID:  doctorID,
		Role:     models.RoleDoctor,
		Action:   "appointment_" + string(next),
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]string{"from": from, "to": string(next)},
	})

	return ap, nil
}
