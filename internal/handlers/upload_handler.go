package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sehatsetu/sehatsetu-api/internal/httperr"
	"github.com/sehatsetu/sehatsetu-api/internal/httpresp"
	"github.com/sehatsetu/sehatsetu-api/internal/imaging"
	"github.com/sehatsetu/sehatsetu-api/internal/storage"
)

type UploadHandler struct {
	store    storage.ObjectStore
	maxBytes int64
	log      zerolog.Logger
}

func NewUploadHandler(store storage.ObjectStore, maxBytes int64, log zerolog.Logger) *UploadHandler {
	return &UploadHandler{store: store, maxBytes: maxBytes, log: log}
}

// ProfilePicture stores a downscaled WebP copy and returns its public URL.
func (h *UploadHandler) ProfilePicture(c *gin.Context) {
	file, ok := readUpload(c, "file", h.maxBytes, imageTypes)
	if !ok {
		return
	}
	if file == nil {
		httperr.BadRequest(c, "missing_file", "Choose an image to upload.")
		return
	}

	webp, err := imaging.ToWebP(file.Data, imaging.DefaultMaxSide, 82)
	if err != nil {
		if errors.Is(err, imaging.ErrUnsupported) {
			httperr.WriteBusiness(c, "invalid_image")
			return
		}
		httperr.Respond(c, h.log, err)
		return
	}

	url, err := h.store.Put(c.Request.Context(), "profile-pictures", "webp", "image/webp", webp)
	if err != nil {
		if errors.Is(err, storage.ErrNotConfigured) {
			httperr.WriteBusiness(c, "storage_unavailable")
			return
		}
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, gin.H{"secure_url": url})
}
