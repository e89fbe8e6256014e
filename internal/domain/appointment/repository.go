package appointment

import (
	"context"
	"time"

	"github.com/sehatsetu/sehatsetu-api/internal/models"
)

type Repository interface {
	// Patient is preloaded on every returned appointment.
	ListForDoctor(
		ctx context.Context,
		doctorID uint,
	) ([]models.Appointment, error)

	GetForDoctor(
		ctx context.Context,
		appointmentID uint,
		doctorID uint,
	) (*models.Appointment, error)

	Update(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// ListHistory returns completed appointments that carry a prescription.
	ListHistory(
		ctx context.Context,
		doctorID uint,
	) ([]models.Appointment, error)

	CountByStatus(
		ctx context.Context,
		doctorID uint,
	) (map[Status]int64, error)

	// CountScheduledBetween counts pending and accepted appointments in [start, end).
	CountScheduledBetween(
		ctx context.Context,
		doctorID uint,
		start time.Time,
		end time.Time,
	) (int64, error)
}
