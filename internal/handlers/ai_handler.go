package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sehatsetu/sehatsetu-api/internal/ai"
	"github.com/sehatsetu/sehatsetu-api/internal/audit"
	"github.com/sehatsetu/sehatsetu-api/internal/httperr"
	"github.com/sehatsetu/sehatsetu-api/internal/httpresp"
	"github.com/sehatsetu/sehatsetu-api/internal/middleware"
	"github.com/sehatsetu/sehatsetu-api/internal/models"
)

type Assistant interface {
	Chat(ctx context.Context, message string, att *ai.Attachment) (string, error)
	ExtractMedicines(ctx context.Context, att ai.Attachment) ([]models.MedicineLine, error)
}

type AIHandler struct {
	assistant Assistant
	audit     *audit.Dispatcher
	maxBytes  int64
	log       zerolog.Logger
}

func NewAIHandler(assistant Assistant, audit *audit.Dispatcher, maxBytes int64, log zerolog.Logger) *AIHandler {
	return &AIHandler{
		assistant: assistant,
		audit:     audit,
		maxBytes:  maxBytes,
		log:       log,
	}
}

func (h *AIHandler) Chat(c *gin.Context) {
	message := strings.TrimSpace(c.PostForm("message"))

	file, ok := readUpload(c, "file", h.maxBytes, documentTypes)
	if !ok {
		return
	}
	if message == "" && file == nil {
		httperr.BadRequest(c, "empty_message", "Type a question or attach a report.")
		return
	}

	var att *ai.Attachment
	if file != nil {
		att = &ai.Attachment{MimeType: file.MimeType, Data: file.Data}
	}

	reply, err := h.assistant.Chat(c.Request.Context(), message, att)
	if err != nil {
		h.respondAI(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  currentUser(c),
		Role:     c.GetString(middleware.ContextUserRole),
		Action:   "ai_chat",
		Entity:   "assistant",
		Metadata: map[string]bool{"attachment": att != nil},
	})

	httpresp.OK(c, gin.H{"reply": reply})
}

// Digitize transcribes a prescription photo or PDF into editable lines.
func (h *AIHandler) Digitize(c *gin.Context) {
	file, ok := readUpload(c, "file", h.maxBytes, documentTypes)
	if !ok {
		return
	}
	if file == nil {
		httperr.BadRequest(c, "missing_file", "Upload a prescription image.")
		return
	}

	lines, err := h.assistant.ExtractMedicines(c.Request.Context(), ai.Attachment{
		MimeType: file.MimeType,
		Data:     file.Data,
	})
	if err != nil {
		h.respondAI(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  currentUser(c),
		Role:     c.GetString(middleware.ContextUserRole),
		Action:   "prescription_digitized",
		Entity:   "assistant",
		Metadata: map[string]int{"lines": len(lines)},
	})

	httpresp.OK(c, lines)
}

func (h *AIHandler) respondAI(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ai.ErrMalformed):
		h.log.Warn().Err(err).Msg("ai returned malformed output")
		httperr.WriteBusiness(c, "extraction_failed")
	case errors.Is(err, ai.ErrUnavailable):
		h.log.Error().Err(err).Msg("ai request failed")
		httperr.WriteBusiness(c, "ai_unavailable")
	default:
		httperr.Respond(c, h.log, err)
	}
}
