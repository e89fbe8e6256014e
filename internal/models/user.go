package models

import "time"

const (
	RoleDoctor   = "doctor"
	RolePharmacy = "pharmacy"
	RolePatient  = "patient"
)

// User mirrors an identity-provider account inside the service.
type User struct {
	ID          uint   `gorm:"primaryKey" json:"_id"`
	IdentityUID string `gorm:"size:128;uniqueIndex;not null" json:"-"`

	Name           string     `gorm:"size:100;not null" json:"name"`
	Email          string     `gorm:"size:100;index" json:"email"`
	Role           string     `gorm:"size:20;default:'patient';index" json:"role"`
	Specialization string     `gorm:"size:100" json:"specialization,omitempty"`
	Gender         string     `gorm:"size:20" json:"gender,omitempty"`
	DateOfBirth    *time.Time `json:"dateOfBirth,omitempty"`
	Phone          string     `gorm:"size:20" json:"phone,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func IsValidRole(role string) bool {
	switch role {
	case RoleDoctor, RolePharmacy, RolePatient:
		return true
	}
	return false
}
