package profile

import (
	"context"
	"strings"

	"github.com/sehatsetu/sehatsetu-api/internal/httperr"
	"github.com/sehatsetu/sehatsetu-api/internal/models"
	"github.com/sehatsetu/sehatsetu-api/internal/validators"
)

type Repository interface {
	// GetDoctorProfile preloads User and LinkedPharmacies.
	GetDoctorProfile(ctx context.Context, doctorID uint) (*models.DoctorProfile, error)

	// SaveDoctorProfile upserts the profile, replaces its linked pharmacies and
	// persists the doctor's name and specialization.
	SaveDoctorProfile(ctx context.Context, p *models.DoctorProfile, linked []uint) error

	GetPharmacyByOwner(ctx context.Context, ownerID uint) (*models.Pharmacy, error)
	CreatePharmacy(ctx context.Context, ph *models.Pharmacy) error
	SavePharmacy(ctx context.Context, ph *models.Pharmacy) error

	ListPharmacies(ctx context.Context) ([]models.Pharmacy, error)
	CountPharmacies(ctx context.Context, ids []uint) (int64, error)
}

// DoctorChanges is a partial update; nil fields are left untouched.
type DoctorChanges struct {
	Name              *string
	Specialization    *string
	ProfilePictureURL *string
	Phone             *string
	About             *string
	Services          []string
	Timings           []models.Timing
	FirstVisitFee     *float64
	FollowUpFee       *float64
	Latitude          *float64
	Longitude         *float64
	LinkedPharmacies  []uint
	SetLocation       bool
	SetServices       bool
	SetTimings        bool
	SetLinked         bool
}

func ApplyDoctor(p *models.DoctorProfile, ch DoctorChanges) error {
	if ch.Name != nil {
		name := strings.TrimSpace(*ch.Name)
		if name == "" {
			return httperr.ErrBusiness("invalid_name")
		}
		p.User.Name = name
	}
	if ch.Specialization != nil {
		p.User.Specialization = strings.TrimSpace(*ch.Specialization)
	}
	if ch.ProfilePictureURL != nil {
		p.ProfilePictureURL = strings.TrimSpace(*ch.ProfilePictureURL)
	}
	if ch.Phone != nil {
		p.Phone = strings.TrimSpace(*ch.Phone)
	}
	if ch.About != nil {
		p.About = strings.TrimSpace(*ch.About)
	}
	if ch.SetServices {
		p.Services = cleanList(ch.Services)
	}
	if ch.SetTimings {
		timings := make([]models.Timing, 0, len(ch.Timings))
		for _, t := range ch.Timings {
			t.Day = strings.TrimSpace(t.Day)
			t.Time = strings.TrimSpace(t.Time)
			if t.Day == "" && t.Time == "" {
				continue
			}
			timings = append(timings, t)
		}
		p.Timings = timings
	}
	if ch.FirstVisitFee != nil {
		if *ch.FirstVisitFee < 0 {
			return httperr.ErrBusiness("invalid_fee")
		}
		p.ConsultationFee.FirstVisit = *ch.FirstVisitFee
	}
	if ch.FollowUpFee != nil {
		if *ch.FollowUpFee < 0 {
			return httperr.ErrBusiness("invalid_fee")
		}
		p.ConsultationFee.FollowUp = *ch.FollowUpFee
	}
	if ch.SetLocation {
		lat, lng := validators.ZeroAsUnset(ch.Latitude), validators.ZeroAsUnset(ch.Longitude)
		if err := validators.Coordinates(lat, lng); err != nil {
			return err
		}
		p.Latitude, p.Longitude = lat, lng
	}
	return nil
}

// PharmacyChanges is a partial update; nil fields are left untouched.
type PharmacyChanges struct {
	Name        *string
	Address     *string
	Phone       *string
	Latitude    *float64
	Longitude   *float64
	SetLocation bool
}

func ApplyPharmacy(ph *models.Pharmacy, ch PharmacyChanges) error {
	if ch.Name != nil {
		name := strings.TrimSpace(*ch.Name)
		if name == "" {
			return httperr.ErrBusiness("invalid_name")
		}
		ph.Name = name
	}
	if ch.Address != nil {
		ph.Address = strings.TrimSpace(*ch.Address)
	}
	if ch.Phone != nil {
		ph.Phone = strings.TrimSpace(*ch.Phone)
	}
	if ch.SetLocation {
		lat, lng := validators.ZeroAsUnset(ch.Latitude), validators.ZeroAsUnset(ch.Longitude)
		if err := validators.Coordinates(lat, lng); err != nil {
			return err
		}
		ph.Latitude, ph.Longitude = lat, lng
	}
	return nil
}

// UniqueIDs drops zeros and duplicates, keeping first-seen order.
func UniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
