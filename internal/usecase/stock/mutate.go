package stock

import (
	"context"
	"errors"

	"github.com/sehatsetu/sehatsetu-api/internal/audit"
	"github.com/sehatsetu/sehatsetu-api/internal/cache"
	"github.com/sehatsetu/sehatsetu-api/internal/domain"
	"github.com/sehatsetu/sehatsetu-api/internal/domain/stock"
	"github.com/sehatsetu/sehatsetu-api/internal/httperr"
	"github.com/sehatsetu/sehatsetu-api/internal/models"
)

// Inventory groups the stock mutations of a pharmacy.
type Inventory struct {
	repo  stock.Repository
	cache cache.Cache
	audit *audit.Dispatcher
}

func NewInventory(
	repo stock.Repository,
	c cache.Cache,
	audit *audit.Dispatcher,
) *Inventory {
	return &Inventory{
		repo:  repo,
		cache: c,
		audit: audit,
	}
}

type UpdateInput struct {
	MedicineName *string
	Quantity     *int
	Price        *float64
}

func (uc *Inventory) Add(
	ctx context.Context,
	actorID uint,
	pharmacyID uint,
	name string,
	quantity int,
	price *float64,
) (*models.StockItem, error) {

	item, err := stock.NewItem(pharmacyID, name, quantity, price)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.Create(ctx, item); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, httperr.ErrBusiness("stock_item_exists")
		}
		return nil, err
	}

	uc.changed(ctx, actorID, pharmacyID, "stock_added", item, map[string]any{
		"medicineName": item.MedicineName,
		"quantity":     item.Quantity,
	})
	return item, nil
}

func (uc *Inventory) Update(
	ctx context.Context,
	actorID uint,
	pharmacyID uint,
	itemID uint,
	in UpdateInput,
) (*models.StockItem, error) {

	if in.Price != nil && *in.Price < 0 {
		return nil, httperr.ErrBusiness("invalid_quantity")
	}

	var before int
	item, err := uc.repo.Modify(ctx, pharmacyID, itemID, func(item *models.StockItem) ([]string, error) {
		before = item.Quantity

		var columns []string
		if in.MedicineName != nil {
			if err := stock.Rename(item, *in.MedicineName); err != nil {
				return nil, err
			}
			columns = append(columns, "medicine_name", "name_key")
		}
		if in.Quantity != nil {
			if err := stock.SetQuantity(item, *in.Quantity); err != nil {
				return nil, err
			}
			columns = append(columns, "quantity")
		}
		if in.Price != nil {
			item.Price = in.Price
			columns = append(columns, "price")
		}
		return columns, nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, httperr.ErrBusiness("stock_item_exists")
		}
		return nil, notFound(err)
	}

	uc.changed(ctx, actorID, pharmacyID, "stock_updated", item, map[string]any{
		"from": before,
		"to":   item.Quantity,
	})
	return item, nil
}

// Adjust applies a relative change to the current quantity; the result is
// clamped at zero.
func (uc *Inventory) Adjust(
	ctx context.Context,
	actorID uint,
	pharmacyID uint,
	itemID uint,
	delta int,
) (*models.StockItem, error) {

	var before int
	item, err := uc.repo.Modify(ctx, pharmacyID, itemID, func(item *models.StockItem) ([]string, error) {
		before = item.Quantity
		stock.Adjust(item, delta)
		return []string{"quantity"}, nil
	})
	if err != nil {
		return nil, notFound(err)
	}

	uc.changed(ctx, actorID, pharmacyID, "stock_adjusted", item, map[string]any{
		"delta": delta,
		"from":  before,
		"to":    item.Quantity,
	})
	return item, nil
}

func (uc *Inventory) Delete(
	ctx context.Context,
	actorID uint,
	pharmacyID uint,
	itemID uint,
) error {

	if err := uc.repo.Delete(ctx, pharmacyID, itemID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return httperr.ErrBusiness("stock_item_not_found")
		}
		return err
	}

	uc.changed(ctx, actorID, pharmacyID, "stock_deleted", &models.StockItem{ID: itemID}, nil)
	return nil
}

func notFound(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.ErrBusiness("stock_item_not_found")
	}
	return err
}

func (uc *Inventory) changed(
	ctx context.Context,
	actorID uint,
	pharmacyID uint,
	action string,
	item *models.StockItem,
	meta map[string]any,
) {
	_ = uc.cache.Delete(ctx, cache.StockKey(pharmacyID), cache.PharmacyStatsKey(pharmacyID))

	id := item.ID
	ev := audit.Event{
		ActorID:  actorID,
		Role:     models.RolePharmacy,
		Action:   action,
		Entity:   "stock_item",
		EntityID: &id,
	}
	if meta != nil {
		ev.Metadata = meta
	}
	uc.audit.Dispatch(ev)
}
