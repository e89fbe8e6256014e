package account

import (
	"context"
	"errors"

	"github.com/sehatsetu/sehatsetu-api/internal/audit"
	"github.com/sehatsetu/sehatsetu-api/internal/domain"
	"github.com/sehatsetu/sehatsetu-api/internal/domain/account"
	"github.com/sehatsetu/sehatsetu-api/internal/models"
)

type SyncInput struct {
	UID            string
	Email          string
	Name           string
	Role           string
	Specialization string
}

type SyncUser struct {
	repo  account.Repository
	audit *audit.Dispatcher
}

func NewSyncUser(repo account.Repository, audit *audit.Dispatcher) *SyncUser {
	return &SyncUser{repo: repo, audit: audit}
}

// Execute returns the local user for an identity, creating it on first sight.
// The reported bool is true when the user was created by this call.
func (uc *SyncUser) Execute(
	ctx context.Context,
	in SyncInput,
) (*models.User, bool, error) {

	u, err := uc.repo.FindByIdentity(ctx, in.UID)
	if err == nil {
		return u, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, err
	}

	u = account.NewUser(in.UID, in.Email, in.Name, in.Role, in.Specialization)
	if err := uc.repo.Create(ctx, u); err != nil {
		// A concurrent sync for the same identity won the insert.
		if errors.Is(err, domain.ErrDuplicate) {
			existing, ferr := uc.repo.FindByIdentity(ctx, in.UID)
			return existing, false, ferr
		}
		return nil, false, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  u.ID,
		Role:     u.Role,
		Action:   "user_registered",
		Entity:   "user",
		EntityID: &u.ID,
	})

	return u, true, nil
}
