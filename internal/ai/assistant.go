package ai

import (
	"context"
	"strings"
)

const clinicalSystemPrompt = `You are a clinical decision support assistant for licensed doctors using SehatSetu.
Answer concisely in Markdown. Cover drug interactions, differential diagnoses, treatment protocols
and report summaries when asked. Flag red-flag findings first. State uncertainty plainly and never
present an answer as a final diagnosis.`

// Chat answers a doctor's question, optionally about an attached report or image.
func (c *Client) Chat(ctx context.Context, message string, att *Attachment) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" && att != nil {
		message = "Summarize the attached medical report highlighting abnormalities."
	}

	reply, err := c.generate(ctx, generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: clinicalSystemPrompt}}},
		Contents:          []content{userContent(message, att)},
		GenerationConfig:  generationConfig{Temperature: 0.3},
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}
