package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sehatsetu/sehatsetu-api/internal/domain/profile"
	"github.com/sehatsetu/sehatsetu-api/internal/models"
)

type ProfileGormRepository struct {
	db *gorm.DB
}

func NewProfileGormRepository(db *gorm.DB) *ProfileGormRepository {
	return &ProfileGormRepository{db: db}
}

func (r *ProfileGormRepository) GetDoctorProfile(
	ctx context.Context,
	doctorID uint,
) (*models.DoctorProfile, error) {

	var p models.DoctorProfile
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("LinkedPharmacies").
		Where("user_id = ?", doctorID).
		First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *ProfileGormRepository) SaveDoctorProfile(
	ctx context.Context,
	p *models.DoctorProfile,
	linked []uint,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).
			Where("id = ?", p.UserID).
			Updates(map[string]any{
				"name":           p.User.Name,
				"specialization": p.User.Specialization,
			}).Error; err != nil {
			return err
		}

		if err := tx.Omit("User", "LinkedPharmacies").Save(p).Error; err != nil {
			return translate(err)
		}

		if linked == nil {
			return nil
		}

		var pharmacies []models.Pharmacy
		if len(linked) > 0 {
			if err := tx.Where("id IN ?", linked).Find(&pharmacies).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(p).Association("LinkedPharmacies").Replace(pharmacies); err != nil {
			return err
		}
		p.LinkedPharmacies = pharmacies
		return nil
	})
}

func (r *ProfileGormRepository) GetPharmacyByOwner(
	ctx context.Context,
	ownerID uint,
) (*models.Pharmacy, error) {

	var ph models.Pharmacy
	if err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("owner_id = ?", ownerID).
		First(&ph).Error; err != nil {
		return nil, translate(err)
	}
	return &ph, nil
}

func (r *ProfileGormRepository) CreatePharmacy(
	ctx context.Context,
	ph *models.Pharmacy,
) error {
	return translate(r.db.WithContext(ctx).Omit("Owner").Create(ph).Error)
}

func (r *ProfileGormRepository) SavePharmacy(
	ctx context.Context,
	ph *models.Pharmacy,
) error {
	return translate(r.db.WithContext(ctx).Omit("Owner").Save(ph).Error)
}

func (r *ProfileGormRepository) ListPharmacies(
	ctx context.Context,
) ([]models.Pharmacy, error) {

	var list []models.Pharmacy
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *ProfileGormRepository) CountPharmacies(
	ctx context.Context,
	ids []uint,
) (int64, error) {

	if len(ids) == 0 {
		return 0, nil
	}

	var n int64
	if err := r.db.WithContext(ctx).
		Model(&models.Pharmacy{}).
		Where("id IN ?", ids).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// Compile-time check
var _ profile.Repository = (*ProfileGormRepository)(nil)
