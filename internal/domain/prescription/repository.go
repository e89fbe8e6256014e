package prescription

import (
	"context"

	"github.com/sehatsetu/sehatsetu-api/internal/models"
)

type Repository interface {
	// CreateForAppointment stores p and completes ap in the same transaction.
	CreateForAppointment(
		ctx context.Context,
		p *models.Prescription,
		ap *models.Appointment,
	) error

	ExistsForAppointment(
		ctx context.Context,
		appointmentID uint,
	) (bool, error)

	// GetForDoctor preloads Patient and Pharmacy.
	GetForDoctor(
		ctx context.Context,
		prescriptionID uint,
		doctorID uint,
	) (*models.Prescription, error)

	GetForPharmacy(
		ctx context.Context,
		prescriptionID uint,
		pharmacyID uint,
	) (*models.Prescription, error)

	// ListForPharmacy preloads Patient and Doctor, newest first.
	ListForPharmacy(
		ctx context.Context,
		pharmacyID uint,
	) ([]models.Prescription, error)

	Update(
		ctx context.Context,
		p *models.Prescription,
	) error

	CountPendingForPharmacy(
		ctx context.Context,
		pharmacyID uint,
	) (int64, error)
}

// Directory resolves the doctor and pharmacy side of a prescription.
type Directory interface {
	GetDoctorProfile(
		ctx context.Context,
		doctorID uint,
	) (*models.DoctorProfile, error)

	GetPharmacy(
		ctx context.Context,
		pharmacyID uint,
	) (*models.Pharmacy, error)

	GetPharmacyByOwner(
		ctx context.Context,
		ownerID uint,
	) (*models.Pharmacy, error)
}
