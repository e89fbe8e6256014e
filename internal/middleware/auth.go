package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sehatsetu/sehatsetu-api/internal/domain"
	"github.com/sehatsetu/sehatsetu-api/internal/domain/account"
	"github.com/sehatsetu/sehatsetu-api/internal/httperr"
	"github.com/sehatsetu/sehatsetu-api/internal/identity"
)

const (
	ContextClaims     = "identityClaims"
	ContextUserID     = "userID"
	ContextUserRole   = "userRole"
	ContextPharmacyID = "pharmacyID"
)

type TokenVerifier interface {
	Verify(token string) (*identity.Claims, error)
}

// AuthMiddleware verifies the bearer token and stores its claims.
func AuthMiddleware(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Abort(c, http.StatusUnauthorized, "missing_authorization_header", "Authorization header is required.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_authorization_header", "Expected a bearer token.")
			return
		}

		claims, err := v.Verify(strings.TrimSpace(parts[1]))
		if err != nil {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token", "Your session has expired. Please sign in again.")
			return
		}

		c.Set(ContextClaims, claims)
		c.Next()
	}
}

// LoadUser resolves the synced local user for the verified identity.
func LoadUser(users account.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := c.MustGet(ContextClaims).(*identity.Claims)

		u, err := users.FindByIdentity(c.Request.Context(), claims.Subject)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				httperr.Abort(c, http.StatusUnauthorized, "user_not_found", "Account not synced. Please sign in again.")
				return
			}
			httperr.Abort(c, http.StatusInternalServerError, "internal_error", "Something went wrong. Please try again.")
			return
		}

		c.Set(ContextUserID, u.ID)
		c.Set(ContextUserRole, u.Role)
		c.Next()
	}
}

func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextUserRole)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		httperr.Abort(c, http.StatusForbidden, "forbidden_role", "Your role cannot access this resource.")
	}
}
