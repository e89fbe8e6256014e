package appointment

import (
	"context"

	domain "github.com/sehatsetu/sehatsetu-api/internal/domain/appointment"
	"github.com/sehatsetu/sehatsetu-api/internal/models"
)

type ListHistory struct {
	repo domain.Repository
}

func NewListHistory(repo domain.Repository) *ListHistory {
	return &ListHistory{repo: repo}
}

func (uc *ListHistory) Execute(
	ctx context.Context,
	doctorID uint,
) ([]models.Appointment, error) {
	return uc.repo.ListHistory(ctx, doctorID)
}
