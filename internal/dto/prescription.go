package dto

import (
	"time"

	"github.com/sehatsetu/sehatsetu-api/internal/models"
)

type CreatePrescriptionRequest struct {
	AppointmentID ID                    `json:"appointmentId" binding:"required"`
	PatientID     ID                    `json:"patientId"`
	PharmacyID    ID                    `json:"pharmacyId" binding:"required"`
	Medicines     []models.MedicineLine `json:"medicines"`
	Notes         string                `json:"notes"`
}

type UpdatePrescriptionStatusRequest struct {
	Status        string `json:"status" binding:"required"`
	PharmacyNotes string `json:"pharmacyNotes"`
}

type PatientRef struct {
	ID          uint       `json:"_id"`
	Name        string     `json:"name"`
	Gender      string     `json:"gender,omitempty"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	Phone       string     `json:"phone,omitempty"`
}

type PharmacyRef struct {
	ID      uint   `json:"_id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

type DoctorRef struct {
	ID             uint   `json:"_id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
}

// DoctorPrescriptionDTO is the doctor's view: the patient and the fulfilling pharmacy.
type DoctorPrescriptionDTO struct {
	ID            uint                  `json:"_id"`
	AppointmentID uint                  `json:"appointmentId"`
	Patient       PatientRef            `json:"patientId"`
	Pharmacy      PharmacyRef           `json:"pharmacyId"`
	Medicines     []models.MedicineLine `json:"medicines"`
	Notes         string                `json:"notes"`
	PharmacyNotes string                `json:"pharmacyNotes,omitempty"`
	Status        string                `json:"status"`
	CreatedAt     time.Time             `json:"createdAt"`
	DispensedAt   *time.Time            `json:"dispensedAt,omitempty"`
}

func ToDoctorPrescription(p *models.Prescription) DoctorPrescriptionDTO {
	return DoctorPrescriptionDTO{
		ID:            p.ID,
		AppointmentID: p.AppointmentID,
		Patient: PatientRef{
			ID:          p.Patient.ID,
			Name:        p.Patient.Name,
			Gender:      p.Patient.Gender,
			DateOfBirth: p.Patient.DateOfBirth,
			Phone:       p.Patient.Phone,
		},
		Pharmacy: PharmacyRef{
			ID:      p.Pharmacy.ID,
			Name:    p.Pharmacy.Name,
			Address: p.Pharmacy.Address,
		},
		Medicines:     p.Medicines,
		Notes:         p.Notes,
		PharmacyNotes: p.PharmacyNotes,
		Status:        p.Status,
		CreatedAt:     p.CreatedAt,
		DispensedAt:   p.DispensedAt,
	}
}

// PharmacyPrescriptionDTO is the pharmacy's queue entry: who prescribed it and for whom.
type PharmacyPrescriptionDTO struct {
	ID            uint                  `json:"_id"`
	Patient       PersonRef             `json:"patientId"`
	Doctor        DoctorRef             `json:"doctorId"`
	Medicines     []models.MedicineLine `json:"medicines"`
	Notes         string                `json:"notes"`
	PharmacyNotes string                `json:"pharmacyNotes"`
	Status        string                `json:"status"`
	CreatedAt     time.Time             `json:"createdAt"`
	DispensedAt   *time.Time            `json:"dispensedAt,omitempty"`
}

func ToPharmacyPrescription(p *models.Prescription) PharmacyPrescriptionDTO {
	return PharmacyPrescriptionDTO{
		ID:      p.ID,
		Patient: PersonRef{ID: p.Patient.ID, Name: p.Patient.Name},
		Doctor: DoctorRef{
			ID:             p.Doctor.ID,
			Name:           p.Doctor.Name,
			Specialization: p.Doctor.Specialization,
		},
		Medicines:     p.Medicines,
		Notes:         p.Notes,
		PharmacyNotes: p.PharmacyNotes,
		Status:        p.Status,
		CreatedAt:     p.CreatedAt,
		DispensedAt:   p.DispensedAt,
	}
}

func ToPharmacyPrescriptions(list []models.Prescription) []PharmacyPrescriptionDTO {
	out := make([]PharmacyPrescriptionDTO, 0, len(list))
	for i := range list {
		out = append(out, ToPharmacyPrescription(&list[i]))
	}
	return out
}
