package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sehatsetu/sehatsetu-api/internal/httperr"
	"github.com/sehatsetu/sehatsetu-api/internal/middleware"
)

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return 0, false
	}
	return uint(id), true
}

func currentUser(c *gin.Context) uint {
	return c.MustGet(middleware.ContextUserID).(uint)
}

func currentPharmacy(c *gin.Context) uint {
	return c.MustGet(middleware.ContextPharmacyID).(uint)
}

type upload struct {
	Data     []byte
	MimeType string
	Name     string
}

// readUpload reads a multipart file field, sniffing its type from content
// rather than trusting the client header.
func readUpload(c *gin.Context, field string, maxBytes int64, allowed map[string]bool) (*upload, bool) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, true
		}
		httperr.BadRequest(c, "invalid_request", "Could not read the uploaded form.")
		return nil, false
	}

	if fh.Size > maxBytes {
		httperr.WriteBusiness(c, "file_too_large")
		return nil, false
	}

	data, err := readAll(fh, maxBytes)
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Could not read the uploaded file.")
		return nil, false
	}

	mt := http.DetectContentType(data)
	if !allowed[mt] {
		httperr.WriteBusiness(c, "unsupported_file_type")
		return nil, false
	}

	return &upload{Data: data, MimeType: mt, Name: fh.Filename}, true
}

func readAll(fh *multipart.FileHeader, maxBytes int64) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, maxBytes))
}

var (
	documentTypes = map[string]bool{
		"image/jpeg":      true,
		"image/png":       true,
		"image/webp":      true,
		"application/pdf": true,
	}
	imageTypes = map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/webp": true,
	}
)
