package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sehatsetu/sehatsetu-api/internal/domain/prescription"
	"github.com/sehatsetu/sehatsetu-api/internal/models"
)

// DirectoryGormRepository answers profile lookups shared by several use cases.
type DirectoryGormRepository struct {
	db *gorm.DB
}

func NewDirectoryGormRepository(db *gorm.DB) *DirectoryGormRepository {
	return &DirectoryGormRepository{db: db}
}

func (r *DirectoryGormRepository) GetDoctorProfile(
	ctx context.Context,
	doctorID uint,
) (*models.DoctorProfile, error) {

	var profile models.DoctorProfile
	if err := r.db.WithContext(ctx).
		Preload("LinkedPharmacies").
		Where("user_id = ?", doctorID).
		First(&profile).Error; err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

func (r *DirectoryGormRepository) GetPharmacy(
	ctx context.Context,
	pharmacyID uint,
) (*models.Pharmacy, error) {

	var ph models.Pharmacy
	if err := r.db.WithContext(ctx).First(&ph, pharmacyID).Error; err != nil {
		return nil, translate(err)
	}
	return &ph, nil
}

func (r *DirectoryGormRepository) GetPharmacyByOwner(
	ctx context.Context,
	ownerID uint,
) (*models.Pharmacy, error) {

	var ph models.Pharmacy
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		First(&ph).Error; err != nil {
		return nil, translate(err)
	}
	return &ph, nil
}

// Compile-time check
var _ prescription.Directory = (*DirectoryGormRepository)(nil)
