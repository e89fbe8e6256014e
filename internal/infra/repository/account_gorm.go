package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sehatsetu/sehatsetu-api/internal/domain/account"
	"github.com/sehatsetu/sehatsetu-api/internal/models"
)

type AccountGormRepository struct {
	db *gorm.DB
}

func NewAccountGormRepository(db *gorm.DB) *AccountGormRepository {
	return &AccountGormRepository{db: db}
}

func (r *AccountGormRepository) FindByIdentity(
	ctx context.Context,
	uid string,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).
		Where("identity_uid = ?", uid).
		First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *AccountGormRepository) Get(
	ctx context.Context,
	userID uint,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).First(&u, userID).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *AccountGormRepository) Create(
	ctx context.Context,
	u *models.User,
) error {
	return translate(r.db.WithContext(ctx).Create(u).Error)
}

// Compile-time check
var _ account.Repository = (*AccountGormRepository)(nil)
