package stock

import (
	"context"

	"github.com/sehatsetu/sehatsetu-api/internal/audit"
	"github.com/sehatsetu/sehatsetu-api/internal/cache"
	"github.com/sehatsetu/sehatsetu-api/internal/domain/stock"
	"github.com/sehatsetu/sehatsetu-api/internal/httperr"
	"github.com/sehatsetu/sehatsetu-api/internal/models"
)

type ProcessOfflineOrder struct {
	repo  stock.Repository
	cache cache.Cache
	audit *audit.Dispatcher
}

func NewProcessOfflineOrder(
	repo stock.Repository,
	c cache.Cache,
	audit *audit.Dispatcher,
) *ProcessOfflineOrder {
	return &ProcessOfflineOrder{
		repo:  repo,
		cache: c,
		audit: audit,
	}
}

// Execute reconciles a reviewed walk-in order against the pharmacy's stock.
func (uc *ProcessOfflineOrder) Execute(
	ctx context.Context,
	actorID uint,
	pharmacyID uint,
	lines []models.MedicineLine,
) (*stock.Summary, error) {

	lines = stock.OrderLines(lines)
	if len(lines) == 0 {
		return nil, httperr.ErrBusiness("no_medicines")
	}

	order, results, err := uc.repo.ProcessOfflineOrder(ctx, pharmacyID, lines)
	if err != nil {
		return nil, err
	}

	summary := stock.Summarize(order.ID, results)

	if summary.SoldCount > 0 {
		_ = uc.cache.Delete(ctx, cache.StockKey(pharmacyID), cache.PharmacyStatsKey(pharmacyID))
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actorID,
		Role:     models.RolePharmacy,
		Action:   "offline_order_processed",
		Entity:   "offline_order",
		EntityID: &order.ID,
		Metadata: map[string]int{
			"sold":        summary.SoldCount,
			"unavailable": summary.UnavailableCount,
		},
	})

	return &summary, nil
}
