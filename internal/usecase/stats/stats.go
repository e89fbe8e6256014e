package stats

import (
	"context"
	"time"

	"github.com/sehatsetu/sehatsetu-api/internal/cache"
	"github.com/sehatsetu/sehatsetu-api/internal/domain/appointment"
	rx "github.com/sehatsetu/sehatsetu-api/internal/domain/prescription"
	"github.com/sehatsetu/sehatsetu-api/internal/domain/stock"
	"github.com/sehatsetu/sehatsetu-api/internal/timezone"
)

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

type GetDoctorStats struct {
	repo     appointment.Repository
	cache    cache.Cache
	ttl      time.Duration
	timezone string
	now      func() time.Time
}

func NewGetDoctorStats(
	repo appointment.Repository,
	c cache.Cache,
	ttl time.Duration,
	tz string,
) *GetDoctorStats {
	return &GetDoctorStats{
		repo:     repo,
		cache:    c,
		ttl:      ttl,
		timezone: tz,
		now:      time.Now,
	}
}

// Execute counts today's schedule in the clinic timezone alongside pending and
// accepted totals.
func (uc *GetDoctorStats) Execute(
	ctx context.Context,
	doctorID uint,
) (*DoctorStats, error) {

	key := cache.DoctorStatsKey(doctorID)

	var out DoctorStats
	if ok, err := uc.cache.Get(ctx, key, &out); err == nil && ok {
		return &out, nil
	}

	counts, err := uc.repo.CountByStatus(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	start, end := timezone.DayBounds(uc.now().In(timezone.Location(uc.timezone)))
	today, err := uc.repo.CountScheduledBetween(ctx, doctorID, start, end)
	if err != nil {
		return nil, err
	}

	out = DoctorStats{
		TodaysAppointments:   today,
		PendingRequests:      counts[appointment.StatusPending],
		AcceptedAppointments: counts[appointment.StatusAccepted],
	}

	_ = uc.cache.Set(ctx, key, out, uc.ttl)
	return &out, nil
}

type GetPharmacyStats struct {
	stock         stock.Repository
	prescriptions rx.Repository
	cache         cache.Cache
	ttl           time.Duration
}

func NewGetPharmacyStats(
	stockRepo stock.Repository,
	prescriptions rx.Repository,
	c cache.Cache,
	ttl time.Duration,
) *GetPharmacyStats {
	return &GetPharmacyStats{
		stock:         stockRepo,
		prescriptions: prescriptions,
		cache:         c,
		ttl:           ttl,
	}
}

func (uc *GetPharmacyStats) Execute(
	ctx context.Context,
	pharmacyID uint,
) (*PharmacyStats, error) {

	key := cache.PharmacyStatsKey(pharmacyID)

	var out PharmacyStats
	if ok, err := uc.cache.Get(ctx, key, &out); err == nil && ok {
		return &out, nil
	}

	total, outOfStock, err := uc.stock.CountSummary(ctx, pharmacyID)
	if err != nil {
		return nil, err
	}

	pending, err := uc.prescriptions.CountPendingForPharmacy(ctx, pharmacyID)
	if err != nil {
		return nil, err
	}

	out = PharmacyStats{
		TotalMedicines:       total,
		PendingPrescriptions: pending,
		OutOfStock:           outOfStock,
	}

	_ = uc.cache.Set(ctx, key, out, uc.ttl)
	return &out, nil
}
