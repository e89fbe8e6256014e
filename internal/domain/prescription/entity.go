package prescription

import (
	"strings"
	"time"

	"github.com/sehatsetu/sehatsetu-api/internal/httperr"
	"github.com/sehatsetu/sehatsetu-api/internal/models"
)

// Advance applies a pharmacy status update. Notes are kept when the new value is empty.
func Advance(p *models.Prescription, to Status, pharmacyNotes string, now time.Time) error {
	if err := CanAdvance(Status(p.Status), to); err != nil {
		return err
	}

	p.Status = string(to)
	if strings.TrimSpace(pharmacyNotes) != "" {
		p.PharmacyNotes = strings.TrimSpace(pharmacyNotes)
	}
	if to == StatusDispensed {
		p.DispensedAt = &now
	}
	return nil
}

// NormalizeLines trims every field and enforces a minimum quantity of one.
// Name, dosage and duration are mandatory on a doctor-issued prescription.
func NormalizeLines(lines []models.MedicineLine) ([]models.MedicineLine, error) {
	if len(lines) == 0 {
		return nil, httperr.ErrBusiness("no_medicines")
	}

	out := make([]models.MedicineLine, 0, len(lines))
	for _, l := range lines {
		l.Name = strings.TrimSpace(l.Name)
		l.Dosage = strings.TrimSpace(l.Dosage)
		l.Frequency = strings.TrimSpace(l.Frequency)
		l.Duration = strings.TrimSpace(l.Duration)

		if l.Name == "" || l.Dosage == "" || l.Duration == "" {
			return nil, httperr.ErrBusiness("invalid_medicine")
		}
		if l.Quantity < 1 {
			l.Quantity = 1
		}
		out = append(out, l)
	}
	return out, nil
}
