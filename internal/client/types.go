package client

import (
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/sehatsetu/sehatsetu-api/internal/models"
)

type User struct {
	ID             uint   `json:"_id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	Specialization string `json:"specialization,omitempty"`
}

type PersonRef struct {
	ID   uint   `json:"_id"`
	Name string `json:"name"`
}

type Appointment struct {
	ID              uint      `json:"_id"`
	Patient         PersonRef `json:"patientId"`
	AppointmentDate time.Time `json:"appointmentDate"`
	AppointmentTime string    `json:"appointmentTime"`
	Reason          string    `json:"reason"`
	Status          string    `json:"status"`
	PrescriptionID  *uint     `json:"prescriptionId,omitempty"`
}

// PrescriptionLink is the prescription-writing route for this appointment,
// pre-filled with its patient. Only accepted appointments have one.
func (a Appointment) PrescriptionLink() (string, bool) {
	if a.Status != "accepted" {
		return "", false
	}
	q := url.Values{}
	q.Set("appointmentId", strconv.FormatUint(uint64(a.ID), 10))
	q.Set("patientId", strconv.FormatUint(uint64(a.Patient.ID), 10))
	q.Set("patientName", a.Patient.Name)
	return "/doctor/prescription?" + q.Encode(), true
}

// SortPendingFirst moves pending appointments ahead of the rest, keeping the
// relative order inside each bucket.
func SortPendingFirst(apps []Appointment) {
	sort.SliceStable(apps, func(i, j int) bool {
		return apps[i].Status == "pending" && apps[j].Status != "pending"
	})
}

type HistoryItem struct {
	ID              uint      `json:"_id"`
	AppointmentDate time.Time `json:"appointmentDate"`
	Patient         PersonRef `json:"patientId"`
	PrescriptionID  uint      `json:"prescriptionId"`
}

type PatientRef struct {
	ID          uint       `json:"_id"`
	Name        string     `json:"name"`
	Gender      string     `json:"gender,omitempty"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	Phone       string     `json:"phone,omitempty"`
}

type PharmacyRef struct {
	ID      uint   `json:"_id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

type DoctorRef struct {
	ID             uint   `json:"_id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
}

type Prescription struct {
	ID            uint                  `json:"_id"`
	AppointmentID uint                  `json:"appointmentId"`
	Patient       PatientRef            `json:"patientId"`
	Pharmacy      PharmacyRef           `json:"pharmacyId"`
	Medicines     []models.MedicineLine `json:"medicines"`
	Notes         string                `json:"notes"`
	PharmacyNotes string                `json:"pharmacyNotes,omitempty"`
	Status        string                `json:"status"`
	CreatedAt     time.Time             `json:"createdAt"`
	DispensedAt   *time.Time            `json:"dispensedAt,omitempty"`
}

type IncomingPrescription struct {
	ID            uint                  `json:"_id"`
	Patient       PersonRef             `json:"patientId"`
	Doctor        DoctorRef             `json:"doctorId"`
	Medicines     []models.MedicineLine `json:"medicines"`
	Notes         string                `json:"notes"`
	PharmacyNotes string                `json:"pharmacyNotes"`
	Status        string                `json:"status"`
	CreatedAt     time.Time             `json:"createdAt"`
	DispensedAt   *time.Time            `json:"dispensedAt,omitempty"`
}

type NewPrescription struct {
	AppointmentID uint                  `json:"appointmentId"`
	PatientID     uint                  `json:"patientId"`
	PharmacyID    uint                  `json:"pharmacyId"`
	Medicines     []models.MedicineLine `json:"medicines"`
	Notes         string                `json:"notes"`
}

type DoctorStats struct {
	TodaysAppointments   int64 `json:"todaysAppointments"`
	PendingRequests      int64 `json:"pendingRequests"`
	AcceptedAppointments int64 `json:"acceptedAppointments"`
}

type PharmacyStats struct {
	TotalMedicines       int64 `json:"totalMedicines"`
	PendingPrescriptions int64 `json:"pendingPrescriptions"`
	OutOfStock           int64 `json:"outOfStock"`
}

type StockItem struct {
	ID           uint      `json:"_id"`
	PharmacyID   uint      `json:"pharmacyId"`
	MedicineName string    `json:"medicineName"`
	Quantity     int       `json:"quantity"`
	Price        *float64  `json:"price,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type StockInput struct {
	MedicineName string   `json:"medicineName"`
	Quantity     int      `json:"quantity"`
	Price        *float64 `json:"price,omitempty"`
}

type StockPatch struct {
	MedicineName *string  `json:"medicineName,omitempty"`
	Quantity     *int     `json:"quantity,omitempty"`
	Price        *float64 `json:"price,omitempty"`
}

// StepQuantity applies a +/- button press to a quantity field. The result is
// never below zero.
func StepQuantity(current, delta int) int {
	if n := current + delta; n > 0 {
		return n
	}
	return 0
}

type OfflineOrderLine struct {
	Name        string `json:"name"`
	Requested   int    `json:"requested"`
	StockItemID *uint  `json:"stockItemId,omitempty"`
	Status      string `json:"status"`
	Remaining   *int   `json:"remaining,omitempty"`
}

type OfflineOrder struct {
	ID               uint               `json:"_id"`
	SoldCount        int                `json:"soldCount"`
	UnavailableCount int                `json:"unavailableCount"`
	Lines            []OfflineOrderLine `json:"lines"`
	CreatedAt        time.Time          `json:"createdAt"`
}

type GeoPoint struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

type DoctorProfile struct {
	ID                uint                   `json:"_id"`
	UserID            uint                   `json:"userId"`
	Name              string                 `json:"name"`
	Email             string                 `json:"email"`
	Specialization    string                 `json:"specialization"`
	ProfilePictureURL string                 `json:"profilePictureUrl"`
	Phone             string                 `json:"phone"`
	About             string                 `json:"about"`
	Services          []string               `json:"services"`
	Timings           []models.Timing        `json:"timings"`
	ConsultationFee   models.ConsultationFee `json:"consultationFee"`
	Location          *GeoPoint              `json:"location,omitempty"`
	LinkedPharmacies  []uint                 `json:"linkedPharmacies"`
}

// DoctorProfileUpdate sends only the non-nil fields. A Latitude/Longitude of
// zero clears the stored location.
type DoctorProfileUpdate struct {
	Name              *string          `json:"name,omitempty"`
	Specialization    *string          `json:"specialization,omitempty"`
	ProfilePictureURL *string          `json:"profilePictureUrl,omitempty"`
	Phone             *string          `json:"phone,omitempty"`
	About             *string          `json:"about,omitempty"`
	Services          *[]string        `json:"services,omitempty"`
	Timings           *[]models.Timing `json:"timings,omitempty"`
	ConsultationFee   *FeeUpdate       `json:"consultationFee,omitempty"`
	Latitude          *float64         `json:"latitude,omitempty"`
	Longitude         *float64         `json:"longitude,omitempty"`
	LinkedPharmacies  *[]uint          `json:"linkedPharmacies,omitempty"`
}

type FeeUpdate struct {
	FirstVisit *float64 `json:"firstVisit,omitempty"`
	FollowUp   *float64 `json:"followUp,omitempty"`
}

type PharmacyProfile struct {
	ID       uint      `json:"_id"`
	Owner    PersonRef `json:"ownerId"`
	Name     string    `json:"name"`
	Address  string    `json:"address"`
	Phone    string    `json:"phone"`
	Location *GeoPoint `json:"location,omitempty"`
}

type PharmacyProfileInput struct {
	Name      *string  `json:"name,omitempty"`
	Address   *string  `json:"address,omitempty"`
	Phone     *string  `json:"phone,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

type PharmacyListItem struct {
	ID      uint   `json:"_id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

type AuditLog struct {
	ID        uint      `json:"_id"`
	Role      string    `json:"role"`
	Action    string    `json:"action"`
	Entity    string    `json:"entity"`
	EntityID  *uint     `json:"entityId,omitempty"`
	Metadata  string    `json:"metadata,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Page[T any] struct {
	Data  []T   `json:"data"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

type list[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}
