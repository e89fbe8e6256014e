package dto

import (
	"time"

	"github.com/sehatsetu/sehatsetu-api/internal/models"
)

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type AppointmentDTO struct {
	ID              uint      `json:"_id"`
	Patient         PersonRef `json:"patientId"`
	AppointmentDate time.Time `json:"appointmentDate"`
	AppointmentTime string    `json:"appointmentTime"`
	Reason          string    `json:"reason"`
	Status          string    `json:"status"`
	PrescriptionID  *uint     `json:"prescriptionId,omitempty"`
}

// ToAppointment renders the clock time in loc, the clinic's timezone.
func ToAppointment(ap models.Appointment, loc *time.Location) AppointmentDTO {
	return AppointmentDTO{
		ID:              ap.ID,
		Patient:         PersonRef{ID: ap.Patient.ID, Name: ap.Patient.Name},
		AppointmentDate: ap.AppointmentDate,
		AppointmentTime: ap.AppointmentDate.In(loc).Format("15:04"),
		Reason:          ap.Reason,
		Status:          ap.Status,
		PrescriptionID:  ap.PrescriptionID,
	}
}

func ToAppointments(apps []models.Appointment, loc *time.Location) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(apps))
	for _, ap := range apps {
		out = append(out, ToAppointment(ap, loc))
	}
	return out
}

type HistoryItemDTO struct {
	ID              uint      `json:"_id"`
	AppointmentDate time.Time `json:"appointmentDate"`
	Patient         PersonRef `json:"patientId"`
	PrescriptionID  uint      `json:"prescriptionId"`
}

func ToHistory(apps []models.Appointment) []HistoryItemDTO {
	out := make([]HistoryItemDTO, 0, len(apps))
	for _, ap := range apps {
		item := HistoryItemDTO{
			ID:              ap.ID,
			AppointmentDate: ap.AppointmentDate,
			Patient:         PersonRef{ID: ap.Patient.ID, Name: ap.Patient.Name},
		}
		if ap.PrescriptionID != nil {
			item.PrescriptionID = *ap.PrescriptionID
		}
		out = append(out, item)
	}
	return out
}
