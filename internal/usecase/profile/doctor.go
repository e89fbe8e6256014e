package profile

import (
	"context"
	"errors"

	"github.com/sehatsetu/sehatsetu-api/internal/audit"
	"github.com/sehatsetu/sehatsetu-api/internal/domain"
	"github.com/sehatsetu/sehatsetu-api/internal/domain/account"
	"github.com/sehatsetu/sehatsetu-api/internal/domain/profile"
	"github.com/sehatsetu/sehatsetu-api/internal/httperr"
	"github.com/sehatsetu/sehatsetu-api/internal/models"
)

type DoctorProfiles struct {
	repo  profile.Repository
	users account.Repository
	audit *audit.Dispatcher
}

func NewDoctorProfiles(
	repo profile.Repository,
	users account.Repository,
	audit *audit.Dispatcher,
) *DoctorProfiles {
	return &DoctorProfiles{
		repo:  repo,
		users: users,
		audit: audit,
	}
}

// Get returns the stored profile, or an empty one bound to the doctor when
// none has been saved yet.
func (uc *DoctorProfiles) Get(
	ctx context.Context,
	doctorID uint,
) (*models.DoctorProfile, error) {

	p, err := uc.repo.GetDoctorProfile(ctx, doctorID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	u, err := uc.users.Get(ctx, doctorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("user_not_found")
		}
		return nil, err
	}

	return &models.DoctorProfile{
		UserID:   u.ID,
		User:     *u,
		Services: []string{},
		Timings:  []models.Timing{},
	}, nil
}

func (uc *DoctorProfiles) Update(
	ctx context.Context,
	doctorID uint,
	ch profile.DoctorChanges,
) (*models.DoctorProfile, error) {

	p, err := uc.Get(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	if err := profile.ApplyDoctor(p, ch); err != nil {
		return nil, err
	}

	var linked []uint
	if ch.SetLinked {
		linked = profile.UniqueIDs(ch.LinkedPharmacies)
		n, err := uc.repo.CountPharmacies(ctx, linked)
		if err != nil {
			return nil, err
		}
		if int(n) != len(linked) {
			return nil, httperr.ErrBusiness("pharmacy_not_found")
		}
	}

	if err := uc.repo.SaveDoctorProfile(ctx, p, linked); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  doctorID,
		Role:     models.RoleDoctor,
		Action:   "doctor_profile_updated",
		Entity:   "doctor_profile",
		EntityID: &p.ID,
	})

	return p, nil
}
