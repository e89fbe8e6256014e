package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sehatsetu/sehatsetu-api/internal/domain"
	"github.com/sehatsetu/sehatsetu-api/internal/httperr"
	"github.com/sehatsetu/sehatsetu-api/internal/models"
)

type PharmacyLookup interface {
	GetPharmacyByOwner(ctx context.Context, ownerID uint) (*models.Pharmacy, error)
}

// RequirePharmacy scopes the request to the caller's pharmacy. Owners without
// a registered pharmacy get profile_not_found so the client can route them to
// onboarding.
func RequirePharmacy(lookup PharmacyLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID := c.GetUint(ContextUserID)

		ph, err := lookup.GetPharmacyByOwner(c.Request.Context(), ownerID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				httperr.Abort(c, http.StatusNotFound, "profile_not_found", "Profile not found.")
				return
			}
			httperr.Abort(c, http.StatusInternalServerError, "internal_error", "Something went wrong. Please try again.")
			return
		}

		c.Set(ContextPharmacyID, ph.ID)
		c.Next()
	}
}
