package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/sehatsetu/sehatsetu-api/internal/domain/appointment"
	"github.com/sehatsetu/sehatsetu-api/internal/models"
)

// Insert persists a fixture set in one transaction. Every doctor is linked to
// every seeded pharmacy.
func Insert(ctx context.Context, db *gorm.DB, fx *Fixtures, log zerolog.Logger) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := createUsers(tx, fx.Doctors); err != nil {
			return fmt.Errorf("doctors: %w", err)
		}
		if err := createUsers(tx, fx.Patients); err != nil {
			return fmt.Errorf("patients: %w", err)
		}
		if err := createUsers(tx, fx.Owners); err != nil {
			return fmt.Errorf("pharmacy owners: %w", err)
		}
		log.Info().
			Int("doctors", len(fx.Doctors)).
			Int("patients", len(fx.Patients)).
			Int("owners", len(fx.Owners)).
			Msg("users seeded")

		for i := range fx.Pharmacies {
			fx.Pharmacies[i].OwnerID = fx.Owners[i].ID
			if err := tx.Omit("Owner").Create(&fx.Pharmacies[i]).Error; err != nil {
				return fmt.Errorf("pharmacy %d: %w", i, err)
			}

			for j := range fx.Stock[i] {
				fx.Stock[i][j].PharmacyID = fx.Pharmacies[i].ID
			}
			if len(fx.Stock[i]) > 0 {
				if err := tx.Create(&fx.Stock[i]).Error; err != nil {
					return fmt.Errorf("stock for pharmacy %d: %w", i, err)
				}
			}
		}
		log.Info().Int("pharmacies", len(fx.Pharmacies)).Msg("pharmacies seeded")

		for i := range fx.Profiles {
			fx.Profiles[i].UserID = fx.Doctors[i].ID
			if err := tx.Omit("User", "LinkedPharmacies").Create(&fx.Profiles[i]).Error; err != nil {
				return fmt.Errorf("doctor profile %d: %w", i, err)
			}
			if len(fx.Pharmacies) > 0 {
				if err := tx.Model(&fx.Profiles[i]).
					Association("LinkedPharmacies").
					Replace(fx.Pharmacies); err != nil {
					return fmt.Errorf("link pharmacies %d: %w", i, err)
				}
			}
		}

		var apps []models.Appointment
		for _, v := range fx.Visits {
			ap := models.Appointment{
				DoctorID:        fx.Doctors[v.Doctor].ID,
				PatientID:       fx.Patients[v.Patient].ID,
				AppointmentDate: v.At,
				Reason:          v.Reason,
				Status:          string(v.Status),
			}
			if v.Status != appointment.StatusPending {
				decided := v.At.Add(-24 * time.Hour)
				ap.DecidedAt = &decided
			}
			if v.Status == appointment.StatusCanceled {
				ap.CanceledAt = ap.DecidedAt
			}
			apps = append(apps, ap)
		}
		if len(apps) > 0 {
			if err := tx.Omit("Doctor", "Patient").Create(&apps).Error; err != nil {
				return fmt.Errorf("appointments: %w", err)
			}
		}
		log.Info().Int("appointments", len(apps)).Msg("appointments seeded")

		return nil
	})
}

func createUsers(tx *gorm.DB, users []models.User) error {
	if len(users) == 0 {
		return nil
	}
	return tx.Create(&users).Error
}
