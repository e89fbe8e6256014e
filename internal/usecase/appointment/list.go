package appointment

import (
	"context"
	"sort"

	domain "github.com/sehatsetu/sehatsetu-api/internal/domain/appointment"
	"github.com/sehatsetu/sehatsetu-api/internal/models"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// Execute returns the doctor's appointments with pending requests first,
// each bucket ordered by appointment date.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	doctorID uint,
) ([]models.Appointment, error) {

	apps, err := uc.repo.ListForDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	SortPendingFirst(apps)
	return apps, nil
}

func SortPendingFirst(apps []models.Appointment) {
	sort.SliceStable(apps, func(i, j int) bool {
		pi := apps[i].Status == string(domain.StatusPending)
		pj := apps[j].Status == string(domain.StatusPending)
		if pi != pj {
			return pi
		}
		return apps[i].AppointmentDate.Before(apps[j].AppointmentDate)
	})
}
