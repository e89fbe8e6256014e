package client

import (
	"context"

	"github.com/sehatsetu/sehatsetu-api/internal/models"
)

// Ask sends a clinical question, optionally with a report attached.
func (c *Client) Ask(ctx context.Context, message string, file *FilePart) (string, error) {
	var out struct {
		Reply string `json:"reply"`
	}
	if err := c.upload(ctx, "/api/ai/chat", map[string]string{"message": message}, file, &out); err != nil {
		return "", err
	}
	return out.Reply, nil
}

// Digitize extracts medicine lines from a prescription image or PDF.
func (c *Client) Digitize(ctx context.Context, file FilePart) ([]models.MedicineLine, error) {
	var out []models.MedicineLine
	if err := c.upload(ctx, "/api/ai/digitize", nil, &file, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UploadProfilePicture returns the public URL of the stored image.
func (c *Client) UploadProfilePicture(ctx context.Context, file FilePart) (string, error) {
	var out struct {
		SecureURL string `json:"secure_url"`
	}
	if err := c.upload(ctx, "/api/uploads/profile-picture", nil, &file, &out); err != nil {
		return "", err
	}
	return out.SecureURL, nil
}

const offlineReply = "Network error. The assistant is unreachable."

// Converse records the question and the reply in log. A failed request is
// recorded as an offline notice and its error returned.
func (c *Client) Converse(ctx context.Context, log *ChatLog, message string, file *FilePart) (string, error) {
	if err := log.Append(ChatMessage{Role: RoleUser, Content: message, HasAttachment: file != nil}); err != nil {
		return "", err
	}

	reply, err := c.Ask(ctx, message, file)
	if err != nil {
		if logErr := log.Append(ChatMessage{Role: RoleAI, Content: offlineReply}); logErr != nil {
			return "", logErr
		}
		return "", err
	}

	if err := log.Append(ChatMessage{Role: RoleAI, Content: reply}); err != nil {
		return reply, err
	}
	return reply, nil
}
