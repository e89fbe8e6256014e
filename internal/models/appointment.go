package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"_id"`

	DoctorID uint `gorm:"index;not null" json:"doctorId"`
	Doctor   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	PatientID uint `gorm:"index;not null" json:"-"`
	Patient   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	AppointmentDate time.Time `gorm:"index;not null" json:"appointmentDate"`
	Reason          string    `gorm:"size:255" json:"reason"`

	Status string `gorm:"size:20;default:'pending';index" json:"status"`

	PrescriptionID *uint `json:"prescriptionId,omitempty"`

	DecidedAt   *time.Time `json:"decidedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CanceledAt  *time.Time `json:"canceledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
