package stock

import (
	"context"
	"errors"
	"time"

	"github.com/sehatsetu/sehatsetu-api/internal/cache"
	"github.com/sehatsetu/sehatsetu-api/internal/domain"
	rx "github.com/sehatsetu/sehatsetu-api/internal/domain/prescription"
	"github.com/sehatsetu/sehatsetu-api/internal/domain/stock"
	"github.com/sehatsetu/sehatsetu-api/internal/httperr"
	"github.com/sehatsetu/sehatsetu-api/internal/models"
)

type ListStock struct {
	repo  stock.Repository
	cache cache.Cache
	ttl   time.Duration
}

func NewListStock(repo stock.Repository, c cache.Cache, ttl time.Duration) *ListStock {
	return &ListStock{repo: repo, cache: c, ttl: ttl}
}

func (uc *ListStock) Execute(
	ctx context.Context,
	pharmacyID uint,
) ([]models.StockItem, error) {

	key := cache.StockKey(pharmacyID)

	var items []models.StockItem
	if ok, err := uc.cache.Get(ctx, key, &items); err == nil && ok {
		return items, nil
	}

	items, err := uc.repo.List(ctx, pharmacyID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.StockItem{}
	}

	_ = uc.cache.Set(ctx, key, items, uc.ttl)
	return items, nil
}

// ListLinkedStock is the doctor's read-only view of a linked pharmacy's stock.
type ListLinkedStock struct {
	list      *ListStock
	directory rx.Directory
}

func NewListLinkedStock(list *ListStock, directory rx.Directory) *ListLinkedStock {
	return &ListLinkedStock{list: list, directory: directory}
}

func (uc *ListLinkedStock) Execute(
	ctx context.Context,
	doctorID uint,
	pharmacyID uint,
) ([]models.StockItem, error) {

	if _, err := uc.directory.GetPharmacy(ctx, pharmacyID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("pharmacy_not_found")
		}
		return nil, err
	}

	profile, err := uc.directory.GetDoctorProfile(ctx, doctorID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if profile == nil || !profile.IsLinkedTo(pharmacyID) {
		return nil, httperr.ErrBusiness("pharmacy_not_linked")
	}

	return uc.list.Execute(ctx, pharmacyID)
}

type ListOrders struct {
	repo stock.Repository
}

func NewListOrders(repo stock.Repository) *ListOrders {
	return &ListOrders{repo: repo}
}

func (uc *ListOrders) Execute(
	ctx context.Context,
	pharmacyID uint,
	limit int,
) ([]models.OfflineOrder, error) {

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return uc.repo.ListOrders(ctx, pharmacyID, limit)
}
