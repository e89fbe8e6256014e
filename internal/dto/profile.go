package dto

import (
	"github.com/sehatsetu/sehatsetu-api/internal/domain/profile"
	"github.com/sehatsetu/sehatsetu-api/internal/models"
)

type SyncRequest struct {
	Name           string `json:"name"`
	Role           string `json:"role"`
	Specialization string `json:"specialization"`
}

type UserDTO struct {
	ID             uint   `json:"_id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	Specialization string `json:"specialization,omitempty"`
}

func ToUser(u *models.User) UserDTO {
	return UserDTO{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Role:           u.Role,
		Specialization: u.Specialization,
	}
}

type FeeRequest struct {
	FirstVisit *float64 `json:"firstVisit"`
	FollowUp   *float64 `json:"followUp"`
}

type UpdateDoctorProfileRequest struct {
	Name              *string          `json:"name"`
	Specialization    *string          `json:"specialization"`
	ProfilePictureURL *string          `json:"profilePictureUrl"`
	Phone             *string          `json:"phone"`
	About             *string          `json:"about"`
	Services          *[]string        `json:"services"`
	Timings           *[]models.Timing `json:"timings"`
	ConsultationFee   *FeeRequest      `json:"consultationFee"`
	Latitude          OptionalFloat    `json:"latitude"`
	Longitude         OptionalFloat    `json:"longitude"`
	LinkedPharmacies  *[]ID            `json:"linkedPharmacies"`
}

func (r UpdateDoctorProfileRequest) Changes() profile.DoctorChanges {
	ch := profile.DoctorChanges{
		Name:              r.Name,
		Specialization:    r.Specialization,
		ProfilePictureURL: r.ProfilePictureURL,
		Phone:             r.Phone,
		About:             r.About,
	}
	if r.Services != nil {
		ch.Services, ch.SetServices = *r.Services, true
	}
	if r.Timings != nil {
		ch.Timings, ch.SetTimings = *r.Timings, true
	}
	if r.ConsultationFee != nil {
		ch.FirstVisitFee = r.ConsultationFee.FirstVisit
		ch.FollowUpFee = r.ConsultationFee.FollowUp
	}
	if r.Latitude.Set || r.Longitude.Set {
		ch.Latitude, ch.Longitude, ch.SetLocation = r.Latitude.Value, r.Longitude.Value, true
	}
	if r.LinkedPharmacies != nil {
		ch.LinkedPharmacies, ch.SetLinked = IDs(*r.LinkedPharmacies), true
	}
	return ch
}

type DoctorProfileDTO struct {
	ID                uint                   `json:"_id"`
	UserID            uint                   `json:"userId"`
	Name              string                 `json:"name"`
	Email             string                 `json:"email"`
	Specialization    string                 `json:"specialization"`
	ProfilePictureURL string                 `json:"profilePictureUrl"`
	Phone             string                 `json:"phone"`
	About             string                 `json:"about"`
	Services          []string               `json:"services"`
	Timings           []models.Timing        `json:"timings"`
	ConsultationFee   models.ConsultationFee `json:"consultationFee"`
	Location          *models.GeoPoint       `json:"location,omitempty"`
	LinkedPharmacies  []uint                 `json:"linkedPharmacies"`
}

func ToDoctorProfile(p *models.DoctorProfile) DoctorProfileDTO {
	out := DoctorProfileDTO{
		ID:                p.ID,
		UserID:            p.UserID,
		Name:              p.User.Name,
		Email:             p.User.Email,
		Specialization:    p.User.Specialization,
		ProfilePictureURL: p.ProfilePictureURL,
		Phone:             p.Phone,
		About:             p.About,
		Services:          p.Services,
		Timings:           p.Timings,
		ConsultationFee:   p.ConsultationFee,
		Location:          models.PointFrom(p.Latitude, p.Longitude),
		LinkedPharmacies:  p.LinkedPharmacyIDs(),
	}
	if out.Services == nil {
		out.Services = []string{}
	}
	if out.Timings == nil {
		out.Timings = []models.Timing{}
	}
	return out
}

type PharmacyProfileRequest struct {
	Name      *string       `json:"name"`
	Address   *string       `json:"address"`
	Phone     *string       `json:"phone"`
	Latitude  OptionalFloat `json:"latitude"`
	Longitude OptionalFloat `json:"longitude"`
}

func (r PharmacyProfileRequest) Changes() profile.PharmacyChanges {
	ch := profile.PharmacyChanges{
		Name:    r.Name,
		Address: r.Address,
		Phone:   r.Phone,
	}
	if r.Latitude.Set || r.Longitude.Set {
		ch.Latitude, ch.Longitude, ch.SetLocation = r.Latitude.Value, r.Longitude.Value, true
	}
	return ch
}

type PharmacyProfileDTO struct {
	ID       uint             `json:"_id"`
	Owner    PersonRef        `json:"ownerId"`
	Name     string           `json:"name"`
	Address  string           `json:"address"`
	Phone    string           `json:"phone"`
	Location *models.GeoPoint `json:"location,omitempty"`
}

func ToPharmacyProfile(ph *models.Pharmacy) PharmacyProfileDTO {
	return PharmacyProfileDTO{
		ID:       ph.ID,
		Owner:    PersonRef{ID: ph.OwnerID, Name: ph.Owner.Name},
		Name:     ph.Name,
		Address:  ph.Address,
		Phone:    ph.Phone,
		Location: models.PointFrom(ph.Latitude, ph.Longitude),
	}
}

type PharmacyListItemDTO struct {
	ID      uint   `json:"_id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

func ToPharmacyList(list []models.Pharmacy) []PharmacyListItemDTO {
	out := make([]PharmacyListItemDTO, 0, len(list))
	for _, ph := range list {
		out = append(out, PharmacyListItemDTO{ID: ph.ID, Name: ph.Name, Address: ph.Address})
	}
	return out
}
