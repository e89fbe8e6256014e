package models

import "time"

type MedicineLine struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	Duration  string `json:"duration"`
	Quantity  int    `json:"quantity"`
}

type Prescription struct {
	ID uint `gorm:"primaryKey" json:"_id"`

	AppointmentID uint `gorm:"uniqueIndex;not null" json:"appointmentId"`

	DoctorID uint `gorm:"index;not null" json:"-"`
	Doctor   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	PatientID uint `gorm:"index;not null" json:"-"`
	Patient   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	PharmacyID uint     `gorm:"index;not null" json:"-"`
	Pharmacy   Pharmacy `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	Medicines []MedicineLine `gorm:"serializer:json;type:jsonb;not null" json:"medicines"`

	Notes         string `gorm:"type:text" json:"notes"`
	PharmacyNotes string `gorm:"type:text" json:"pharmacyNotes,omitempty"`

	Status      string     `gorm:"size:20;default:'pending';index" json:"status"`
	DispensedAt *time.Time `json:"dispensedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
