package account

import (
	"context"
	"strings"

	"github.com/sehatsetu/sehatsetu-api/internal/models"
)

type Repository interface {
	// FindByIdentity returns domain.ErrNotFound for unknown UIDs.
	FindByIdentity(ctx context.Context, uid string) (*models.User, error)
	Get(ctx context.Context, userID uint) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
}

// NewUser builds the local record for a first sync. The requested role is only
// honoured here; unknown or missing roles fall back to patient.
func NewUser(uid, email, name, role, specialization string) *models.User {
	role = strings.ToLower(strings.TrimSpace(role))
	if !models.IsValidRole(role) {
		role = models.RolePatient
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = strings.TrimSpace(email)
	}

	u := &models.User{
		IdentityUID: uid,
		Email:       strings.TrimSpace(email),
		Name:        name,
		Role:        role,
	}
	if role == models.RoleDoctor {
		u.Specialization = strings.TrimSpace(specialization)
	}
	return u
}
