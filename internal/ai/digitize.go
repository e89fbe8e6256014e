package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/sehatsetu/sehatsetu-api/internal/models"
)

const digitizePrompt = `Read this handwritten or printed prescription. Return ONLY a JSON array.
Each element must be an object with the string fields "name", "dosage", "frequency", "duration"
and the integer field "quantity" (number of units to dispense; use 1 when unclear).
Use "" for anything you cannot read. Do not include patient details.`

// ExtractMedicines asks the model to transcribe a prescription image into lines.
func (c *Client) ExtractMedicines(ctx context.Context, att Attachment) ([]models.MedicineLine, error) {
	text, err := c.generate(ctx, generateRequest{
		Contents: []content{userContent(digitizePrompt, &att)},
		GenerationConfig: generationConfig{
			Temperature:      0,
			ResponseMimeType: "application/json",
		},
	})
	if err != nil {
		return nil, err
	}
	return ParseMedicineLines(text)
}

// flexInt accepts 2, "2" and "2 strips".
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = 0
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		fields := strings.Fields(s)
		if len(fields) == 0 {
			*f = 0
			return nil
		}
		n, err := strconv.Atoi(fields[0])
		if err != nil {
			*f = 0
			return nil
		}
		*f = flexInt(n)
		return nil
	}

	var n float64
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexInt(int(n))
	return nil
}

type rawLine struct {
	Name      string  `json:"name"`
	Dosage    string  `json:"dosage"`
	Frequency string  `json:"frequency"`
	Duration  string  `json:"duration"`
	Quantity  flexInt `json:"quantity"`
}

// ParseMedicineLines accepts a bare JSON array, an object with a "medicines"
// array, and either wrapped in a Markdown code fence.
func ParseMedicineLines(text string) ([]models.MedicineLine, error) {
	text = stripFence(text)

	var raw []rawLine
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		var wrapped struct {
			Medicines *[]rawLine `json:"medicines"`
		}
		if err2 := json.Unmarshal([]byte(text), &wrapped); err2 != nil || wrapped.Medicines == nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		raw = *wrapped.Medicines
	}

	out := make([]models.MedicineLine, 0, len(raw))
	for _, r := range raw {
		line := models.MedicineLine{
			Name:      strings.TrimSpace(r.Name),
			Dosage:    strings.TrimSpace(r.Dosage),
			Frequency: strings.TrimSpace(r.Frequency),
			Duration:  strings.TrimSpace(r.Duration),
			Quantity:  int(r.Quantity),
		}
		if line.Name == "" {
			continue
		}
		if line.Quantity < 1 {
			line.Quantity = 1
		}
		out = append(out, line)
	}
	return out, nil
}

func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
