package seed

import (
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/sehatsetu/sehatsetu-api/internal/domain/appointment"
	"github.com/sehatsetu/sehatsetu-api/internal/domain/stock"
	"github.com/sehatsetu/sehatsetu-api/internal/models"
)

var specializations = []string{
	"General Medicine",
	"Cardiology",
	"Dermatology",
	"Pediatrics",
	"Orthopedics",
	"ENT",
	"Gynecology",
	"Psychiatry",
}

var medicines = []string{
	"Paracetamol 500mg",
	"Amoxicillin 250mg",
	"Azithromycin 500mg",
	"Cetirizine 10mg",
	"Metformin 500mg",
	"Amlodipine 5mg",
	"Pantoprazole 40mg",
	"Ibuprofen 400mg",
	"ORS Sachet",
	"Vitamin D3 60K",
	"Montelukast 10mg",
	"Atorvastatin 10mg",
}

var reasons = []string{
	"Fever and body ache",
	"Follow-up visit",
	"Persistent cough",
	"Skin rash",
	"Blood pressure review",
	"Knee pain",
	"Routine check-up",
}

// Options sizes a fixture set.
type Options struct {
	Seed         uint64
	Doctors      int
	Patients     int
	Pharmacies   int
	Appointments int
}

// Fixtures is a generated, not yet persisted data set. Users carry stable
// identity UIDs (seed-doctor-1, seed-patient-3, ...) so dev tokens can be
// minted for them.
type Fixtures struct {
	Doctors    []models.User
	Patients   []models.User
	Owners     []models.User
	Pharmacies []models.Pharmacy
	Profiles   []models.DoctorProfile
	Stock      [][]models.StockItem
	Visits     []Visit
}

// Visit references users by index into Fixtures.Doctors and Fixtures.Patients.
type Visit struct {
	Doctor  int
	Patient int
	At      time.Time
	Reason  string
	Status  appointment.Status
}

func Generate(opts Options, now time.Time) *Fixtures {
	f := gofakeit.New(opts.Seed)
	fx := &Fixtures{}

	for i := 1; i <= opts.Doctors; i++ {
		spec := specializations[f.Number(0, len(specializations)-1)]
		fx.Doctors = append(fx.Doctors, fakeUser(f, "doctor", i, models.RoleDoctor, spec))

		lat, lng := f.Float64Range(8, 30), f.Float64Range(70, 90)
		fx.Profiles = append(fx.Profiles, models.DoctorProfile{
			Phone:    f.Phone(),
			About:    fmt.Sprintf("%s practitioner with %d years of experience.", spec, f.Number(2, 30)),
			Services: []string{"Consultation", spec},
			Timings: []models.Timing{
				{Day: "Mon-Fri", Time: "09:00 - 13:00"},
				{Day: "Sat", Time: "10:00 - 12:00"},
			},
			ConsultationFee: models.ConsultationFee{
				FirstVisit: float64(f.Number(3, 10) * 100),
				FollowUp:   float64(f.Number(1, 3) * 100),
			},
			Latitude:  &lat,
			Longitude: &lng,
		})
	}

	for i := 1; i <= opts.Patients; i++ {
		fx.Patients = append(fx.Patients, fakeUser(f, "patient", i, models.RolePatient, ""))
	}

	for i := 1; i <= opts.Pharmacies; i++ {
		fx.Owners = append(fx.Owners, fakeUser(f, "pharmacy", i, models.RolePharmacy, ""))

		lat, lng := f.Float64Range(8, 30), f.Float64Range(70, 90)
		fx.Pharmacies = append(fx.Pharmacies, models.Pharmacy{
			Name:      f.LastName() + " Medicals",
			Address:   fmt.Sprintf("%s, %s", f.Street(), f.City()),
			Phone:     f.Phone(),
			Latitude:  &lat,
			Longitude: &lng,
		})

		var items []models.StockItem
		for _, name := range medicines {
			if f.Number(0, 3) == 0 {
				continue
			}
			price := float64(f.Number(10, 500))
			qty := f.Number(0, 120)
			if f.Number(0, 5) == 0 {
				qty = 0
			}
			item, _ := stock.NewItem(0, name, qty, &price)
			items = append(items, *item)
		}
		fx.Stock = append(fx.Stock, items)
	}

	if len(fx.Doctors) == 0 || len(fx.Patients) == 0 {
		return fx
	}

	statuses := []appointment.Status{
		appointment.StatusPending,
		appointment.StatusPending,
		appointment.StatusAccepted,
		appointment.StatusRejected,
		appointment.StatusCanceled,
	}
	for i := 0; i < opts.Appointments; i++ {
		at := now.Add(time.Duration(f.Number(-72, 240)) * time.Hour).Truncate(30 * time.Minute)
		fx.Visits = append(fx.Visits, Visit{
			Doctor:  f.Number(0, len(fx.Doctors)-1),
			Patient: f.Number(0, len(fx.Patients)-1),
			At:      at,
			Reason:  reasons[f.Number(0, len(reasons)-1)],
			Status:  statuses[f.Number(0, len(statuses)-1)],
		})
	}

	return fx
}

// IdentityUID is the subject a dev token must carry to act as the nth seeded user of a kind.
func IdentityUID(kind string, n int) string {
	return fmt.Sprintf("seed-%s-%d", kind, n)
}

func fakeUser(f *gofakeit.Faker, kind string, n int, role, specialization string) models.User {
	first, last := f.FirstName(), f.LastName()
	name := first + " " + last
	if role == models.RoleDoctor {
		name = "Dr. " + name
	}
	return models.User{
		IdentityUID:    IdentityUID(kind, n),
		Name:           name,
		Email:          strings.ToLower(fmt.Sprintf("%s.%s.%d@example.com", first, last, n)),
		Role:           role,
		Specialization: specialization,
		Gender:         f.Gender(),
		Phone:          f.Phone(),
	}
}
