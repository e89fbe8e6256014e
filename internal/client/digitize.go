package client

import (
	"context"
	"errors"
	"strings"

	"github.com/sehatsetu/sehatsetu-api/internal/domain/stock"
	"github.com/sehatsetu/sehatsetu-api/internal/models"
)

var ErrRowOutOfRange = errors.New("row out of range")

// Session walks a paper prescription through extraction, review and commit.
// It is single-use per order: Commit clears the rows whether it succeeds or
// fails, so a failed order has to be entered again.
type Session struct {
	client *Client
	rows   []models.MedicineLine
	manual bool
}

func (c *Client) NewSession() *Session {
	return &Session{client: c}
}

// Extract replaces the rows with what the recognition service read from the
// file. When the service cannot produce a usable list the session switches
// to manual entry with one blank row and the error is returned.
func (s *Session) Extract(ctx context.Context, file FilePart) error {
	lines, err := s.client.Digitize(ctx, file)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return err
		}
		s.manual = true
		s.rows = []models.MedicineLine{{Quantity: 1}}
		return err
	}

	s.manual = false
	s.rows = lines
	return nil
}

// Manual reports whether extraction failed and rows must be typed in.
func (s *Session) Manual() bool {
	return s.manual
}

func (s *Session) Rows() []models.MedicineLine {
	out := make([]models.MedicineLine, len(s.rows))
	copy(out, s.rows)
	return out
}

// AddRow appends a blank row and returns its index.
func (s *Session) AddRow() int {
	s.rows = append(s.rows, models.MedicineLine{Quantity: 1})
	return len(s.rows) - 1
}

func (s *Session) EditRow(i int, line models.MedicineLine) error {
	if i < 0 || i >= len(s.rows) {
		return ErrRowOutOfRange
	}
	s.rows[i] = line
	return nil
}

func (s *Session) RemoveRow(i int) error {
	if i < 0 || i >= len(s.rows) {
		return ErrRowOutOfRange
	}
	s.rows = append(s.rows[:i], s.rows[i+1:]...)
	return nil
}

// Commit submits the reviewed rows as an offline order. Rows without a name
// are dropped first. The per-line verdicts come from the server as-is.
func (s *Session) Commit(ctx context.Context) (*stock.Summary, error) {
	lines := make([]models.MedicineLine, 0, len(s.rows))
	for _, r := range s.rows {
		if strings.TrimSpace(r.Name) == "" {
			continue
		}
		lines = append(lines, r)
	}

	s.rows = nil
	s.manual = false

	return s.client.ProcessOfflineOrder(ctx, lines)
}
