package models

import "time"

type Timing struct {
	Day  string `json:"day"`
	Time string `json:"time"`
}

type ConsultationFee struct {
	FirstVisit float64 `json:"firstVisit"`
	FollowUp   float64 `json:"followUp"`
}

type DoctorProfile struct {
	ID     uint `gorm:"primaryKey" json:"_id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"-"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ProfilePictureURL string   `gorm:"size:512" json:"profilePictureUrl"`
	Phone             string   `gorm:"size:20" json:"phone"`
	About             string   `gorm:"type:text" json:"about"`
	Services          []string `gorm:"serializer:json;type:jsonb" json:"services"`
	Timings           []Timing `gorm:"serializer:json;type:jsonb" json:"timings"`

	ConsultationFee ConsultationFee `gorm:"embedded;embeddedPrefix:fee_" json:"consultationFee"`

	Latitude  *float64 `json:"-"`
	Longitude *float64 `json:"-"`

	LinkedPharmacies []Pharmacy `gorm:"many2many:doctor_linked_pharmacies;" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *DoctorProfile) LinkedPharmacyIDs() []uint {
	ids := make([]uint, 0, len(p.LinkedPharmacies))
	for _, ph := range p.LinkedPharmacies {
		ids = append(ids, ph.ID)
	}
	return ids
}

func (p *DoctorProfile) IsLinkedTo(pharmacyID uint) bool {
	for _, ph := range p.LinkedPharmacies {
		if ph.ID == pharmacyID {
			return true
		}
	}
	return false
}
