package prescription

import (
	"context"
	"errors"

	"github.com/sehatsetu/sehatsetu-api/internal/audit"
	"github.com/sehatsetu/sehatsetu-api/internal/cache"
	"github.com/sehatsetu/sehatsetu-api/internal/domain"
	rx "github.com/sehatsetu/sehatsetu-api/internal/domain/prescription"
	"github.com/sehatsetu/sehatsetu-api/internal/httperr"
	"github.com/sehatsetu/sehatsetu-api/internal/models"
	"github.com/sehatsetu/sehatsetu-api/internal/timezone"
)

type UpdateStatus struct {
	repo     rx.Repository
	cache    cache.Cache
	audit    *audit.Dispatcher
	timezone string
}

func NewUpdateStatus(
	repo rx.Repository,
	c cache.Cache,
	audit *audit.Dispatcher,
	tz string,
) *UpdateStatus {
	return &UpdateStatus{
		repo:     repo,
		cache:    c,
		audit:    audit,
		timezone: tz,
	}
}

func (uc *UpdateStatus) Execute(
	ctx context.Context,
	actorID uint,
	pharmacyID uint,
	prescriptionID uint,
	status string,
	pharmacyNotes string,
) (*models.Prescription, error) {

	to, err := rx.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	p, err := uc.repo.GetForPharmacy(ctx, prescriptionID, pharmacyID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("prescription_not_found")
		}
		return nil, err
	}

	from := p.Status
	if err := rx.Advance(p, to, pharmacyNotes, timezone.NowIn(uc.timezone)); err != nil {
		return nil, err
	}

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	_ = uc.cache.Delete(ctx, cache.PharmacyStatsKey(pharmacyID))

	uc.audit.Dispatch(audit.Event{
		ActorID:  actorID,
		Role:     models.RolePharmacy,
		Action:   "prescription_" + string(to),
		Entity:   "prescription",
		EntityID: &p.ID,
		Metadata: map[string]string{"from": from, "to": string(to)},
	})

	return p, nil
}
