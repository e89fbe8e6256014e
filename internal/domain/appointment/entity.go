package appointment

import (
	"time"

	"github.com/sehatsetu/sehatsetu-api/internal/models"
)

// Transition moves ap to next and stamps the matching timestamp.
func Transition(ap *models.Appointment, next Status, now time.Time) error {
	if err := CanTransition(Status(ap.Status), next); err != nil {
		return err
	}

	switch next {
	case StatusAccepted, StatusRejected:
		ap.DecidedAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	case StatusCanceled:
		ap.CanceledAt = &now
	}

	ap.Status = string(next)
	return nil
}

// CompleteWithPrescription closes an accepted appointment once its prescription exists.
func CompleteWithPrescription(ap *models.Appointment, prescriptionID uint, now time.Time) error {
	if err := Transition(ap, StatusCompleted, now); err != nil {
		return err
	}
	ap.PrescriptionID = &prescriptionID
	return nil
}
