package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sehatsetu/sehatsetu-api/internal/domain"
	"github.com/sehatsetu/sehatsetu-api/internal/domain/stock"
	"github.com/sehatsetu/sehatsetu-api/internal/models"
)

type StockGormRepository struct {
	db *gorm.DB
}

func NewStockGormRepository(db *gorm.DB) *StockGormRepository {
	return &StockGormRepository{db: db}
}

func (r *StockGormRepository) List(
	ctx context.Context,
	pharmacyID uint,
) ([]models.StockItem, error) {

	var items []models.StockItem
	if err := r.db.WithContext(ctx).
		Where("pharmacy_id = ?", pharmacyID).
		Order("medicine_name ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *StockGormRepository) Create(
	ctx context.Context,
	item *models.StockItem,
) error {
	return translate(r.db.WithContext(ctx).Create(item).Error)
}

func (r *StockGormRepository) Modify(
	ctx context.Context,
	pharmacyID uint,
	itemID uint,
	fn func(item *models.StockItem) ([]string, error),
) (*models.StockItem, error) {

	var item models.StockItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND pharmacy_id = ?", itemID, pharmacyID).
			First(&item).Error; err != nil {
			return translate(err)
		}

		columns, err := fn(&item)
		if err != nil {
			return err
		}
		if len(columns) == 0 {
			return nil
		}

		return translate(tx.Model(&item).Select(columns).Updates(&item).Error)
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *StockGormRepository) Delete(
	ctx context.Context,
	pharmacyID uint,
	itemID uint,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ? AND pharmacy_id = ?", itemID, pharmacyID).
		Delete(&models.StockItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *StockGormRepository) CountSummary(
	ctx context.Context,
	pharmacyID uint,
) (int64, int64, error) {

	var row struct {
		Total      int64
		OutOfStock int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.StockItem{}).
		Select("COUNT(*) AS total, COUNT(*) FILTER (WHERE quantity = 0) AS out_of_stock").
		Where("pharmacy_id = ?", pharmacyID).
		Scan(&row).Error; err != nil {
		return 0, 0, err
	}
	return row.Total, row.OutOfStock, nil
}

func (r *StockGormRepository) ProcessOfflineOrder(
	ctx context.Context,
	pharmacyID uint,
	lines []models.MedicineLine,
) (*models.OfflineOrder, []stock.LineResult, error) {

	var (
		order   *models.OfflineOrder
		results []stock.LineResult
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var items []models.StockItem
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("pharmacy_id = ?", pharmacyID).
			Find(&items).Error; err != nil {
			return err
		}

		var touched []*models.StockItem
		results, touched = stock.Reconcile(lines, items)

		for _, item := range touched {
			if err := tx.Model(item).Update("quantity", item.Quantity).Error; err != nil {
				return err
			}
		}

		order = stock.OrderFromResults(pharmacyID, results)
		return tx.Create(order).Error
	})
	if err != nil {
		return nil, nil, err
	}

	return order, results, nil
}

func (r *StockGormRepository) ListOrders(
	ctx context.Context,
	pharmacyID uint,
	limit int,
) ([]models.OfflineOrder, error) {

	var orders []models.OfflineOrder
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("pharmacy_id = ?", pharmacyID).
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Compile-time check
var _ stock.Repository = (*StockGormRepository)(nil)
