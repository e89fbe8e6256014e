package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sehatsetu/sehatsetu-api/internal/dto"
	"github.com/sehatsetu/sehatsetu-api/internal/httperr"
	"github.com/sehatsetu/sehatsetu-api/internal/identity"
	"github.com/sehatsetu/sehatsetu-api/internal/middleware"
	"github.com/sehatsetu/sehatsetu-api/internal/usecase/account"
)

type AuthHandler struct {
	sync *account.SyncUser
	log  zerolog.Logger
}

func NewAuthHandler(sync *account.SyncUser, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{sync: sync, log: log}
}

// Sync is called right after sign-in and sign-up. It only needs a verified
// token, the local user may not exist yet.
func (h *AuthHandler) Sync(c *gin.Context) {
	claims := c.MustGet(middleware.ContextClaims).(*identity.Claims)

	var req dto.SyncRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.BadRequest(c, "invalid_request", "Invalid request body.")
			return
		}
	}

	name := req.Name
	if name == "" {
		name = claims.Name
	}

	u, created, err := h.sync.Execute(c.Request.Context(), account.SyncInput{
		UID:            claims.Subject,
		Email:          claims.Email,
		Name:           name,
		Role:           req.Role,
		Specialization: req.Specialization,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, dto.ToUser(u))
}
