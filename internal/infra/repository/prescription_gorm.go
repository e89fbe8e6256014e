package repository

import (
	"context"

	"gorm.io/gorm"

	appointment "github.com/sehatsetu/sehatsetu-api/internal/domain/appointment"
	domain "github.com/sehatsetu/sehatsetu-api/internal/domain/prescription"
	"github.com/sehatsetu/sehatsetu-api/internal/models"
)

type PrescriptionGormRepository struct {
	db *gorm.DB
}

func NewPrescriptionGormRepository(db *gorm.DB) *PrescriptionGormRepository {
	return &PrescriptionGormRepository{db: db}
}

func (r *PrescriptionGormRepository) CreateForAppointment(
	ctx context.Context,
	p *models.Prescription,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Doctor", "Patient", "Pharmacy").Create(p).Error; err != nil {
			return translate(err)
		}

		if err := appointment.CompleteWithPrescription(ap, p.ID, p.CreatedAt); err != nil {
			return err
		}
		return tx.Omit("Patient", "Doctor").Save(ap).Error
	})
}

func (r *PrescriptionGormRepository) ExistsForAppointment(
	ctx context.Context,
	appointmentID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Prescription{}).
		Where("appointment_id = ?", appointmentID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PrescriptionGormRepository) GetForDoctor(
	ctx context.Context,
	prescriptionID uint,
	doctorID uint,
) (*models.Prescription, error) {

	var p models.Prescription
	if err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Pharmacy").
		Preload("Doctor").
		Where("id = ? AND doctor_id = ?", prescriptionID, doctorID).
		First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *PrescriptionGormRepository) GetForPharmacy(
	ctx context.Context,
	prescriptionID uint,
	pharmacyID uint,
) (*models.Prescription, error) {

	var p models.Prescription
	if err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor").
		Where("id = ? AND pharmacy_id = ?", prescriptionID, pharmacyID).
		First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *PrescriptionGormRepository) ListForPharmacy(
	ctx context.Context,
	pharmacyID uint,
) ([]models.Prescription, error) {

	var out []models.Prescription
	if err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor").
		Where("pharmacy_id = ?", pharmacyID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PrescriptionGormRepository) Update(
	ctx context.Context,
	p *models.Prescription,
) error {
	return r.db.WithContext(ctx).Omit("Doctor", "Patient", "Pharmacy").Save(p).Error
}

func (r *PrescriptionGormRepository) CountPendingForPharmacy(
	ctx context.Context,
	pharmacyID uint,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Prescription{}).
		Where("pharmacy_id = ? AND status = ?", pharmacyID, string(domain.StatusPending)).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Compile-time check
var _ domain.Repository = (*PrescriptionGormRepository)(nil)
