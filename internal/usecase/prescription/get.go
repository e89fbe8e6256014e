package prescription

import (
	"context"
	"errors"

	"github.com/sehatsetu/sehatsetu-api/internal/domain"
	rx "github.com/sehatsetu/sehatsetu-api/internal/domain/prescription"
	"github.com/sehatsetu/sehatsetu-api/internal/httperr"
	"github.com/sehatsetu/sehatsetu-api/internal/models"
)

type GetPrescription struct {
	repo rx.Repository
}

func NewGetPrescription(repo rx.Repository) *GetPrescription {
	return &GetPrescription{repo: repo}
}

func (uc *GetPrescription) Execute(
	ctx context.Context,
	doctorID uint,
	prescriptionID uint,
) (*models.Prescription, error) {

	p, err := uc.repo.GetForDoctor(ctx, prescriptionID, doctorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("prescription_not_found")
		}
		return nil, err
	}
	return p, nil
}

type ListForPharmacy struct {
	repo rx.Repository
}

func NewListForPharmacy(repo rx.Repository) *ListForPharmacy {
	return &ListForPharmacy{repo: repo}
}

func (uc *ListForPharmacy) Execute(
	ctx context.Context,
	pharmacyID uint,
) ([]models.Prescription, error) {
	return uc.repo.ListForPharmacy(ctx, pharmacyID)
}
