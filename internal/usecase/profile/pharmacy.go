package profile

import (
	"context"
	"errors"

	"github.com/sehatsetu/sehatsetu-api/internal/audit"
	"github.com/sehatsetu/sehatsetu-api/internal/domain"
	"github.com/sehatsetu/sehatsetu-api/internal/domain/profile"
	"github.com/sehatsetu/sehatsetu-api/internal/httperr"
	"github.com/sehatsetu/sehatsetu-api/internal/models"
)

type PharmacyProfiles struct {
	repo  profile.Repository
	audit *audit.Dispatcher
}

func NewPharmacyProfiles(repo profile.Repository, audit *audit.Dispatcher) *PharmacyProfiles {
	return &PharmacyProfiles{repo: repo, audit: audit}
}

func (uc *PharmacyProfiles) Get(
	ctx context.Context,
	ownerID uint,
) (*models.Pharmacy, error) {

	ph, err := uc.repo.GetPharmacyByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("profile_not_found")
		}
		return nil, err
	}
	return ph, nil
}

func (uc *PharmacyProfiles) Exists(ctx context.Context, ownerID uint) (bool, error) {
	_, err := uc.repo.GetPharmacyByOwner(ctx, ownerID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	return false, err
}

// Create registers the one pharmacy an owner account may have.
func (uc *PharmacyProfiles) Create(
	ctx context.Context,
	ownerID uint,
	ch profile.PharmacyChanges,
) (*models.Pharmacy, error) {

	if ch.Name == nil {
		return nil, httperr.ErrBusiness("invalid_name")
	}

	ph := &models.Pharmacy{OwnerID: ownerID}
	if err := profile.ApplyPharmacy(ph, ch); err != nil {
		return nil, err
	}

	if err := uc.repo.CreatePharmacy(ctx, ph); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, httperr.ErrBusiness("profile_exists")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  ownerID,
		Role:     models.RolePharmacy,
		Action:   "pharmacy_registered",
		Entity:   "pharmacy",
		EntityID: &ph.ID,
	})

	return ph, nil
}

func (uc *PharmacyProfiles) Update(
	ctx context.Context,
	ownerID uint,
	ch profile.PharmacyChanges,
) (*models.Pharmacy, error) {

	ph, err := uc.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if err := profile.ApplyPharmacy(ph, ch); err != nil {
		return nil, err
	}

	if err := uc.repo.SavePharmacy(ctx, ph); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  ownerID,
		Role:     models.RolePharmacy,
		Action:   "pharmacy_updated",
		Entity:   "pharmacy",
		EntityID: &ph.ID,
	})

	return ph, nil
}

func (uc *PharmacyProfiles) List(ctx context.Context) ([]models.Pharmacy, error) {
	return uc.repo.ListPharmacies(ctx)
}
