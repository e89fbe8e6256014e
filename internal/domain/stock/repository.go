package stock

import (
	"context"

	"github.com/sehatsetu/sehatsetu-api/internal/models"
)

type Repository interface {
	List(ctx context.Context, pharmacyID uint) ([]models.StockItem, error)

	// Create returns domain.ErrDuplicate when the pharmacy already stocks the name.
	Create(ctx context.Context, item *models.StockItem) error

	// Modify locks the item against concurrent orders, applies fn to the
	// current row and writes back only the columns fn reports as changed.
	Modify(
		ctx context.Context,
		pharmacyID uint,
		itemID uint,
		fn func(item *models.StockItem) (columns []string, err error),
	) (*models.StockItem, error)
	Delete(ctx context.Context, pharmacyID, itemID uint) error

	CountSummary(ctx context.Context, pharmacyID uint) (total int64, outOfStock int64, err error)

	// ProcessOfflineOrder locks the pharmacy's stock, reconciles lines against it,
	// persists the new quantities and the order record atomically.
	ProcessOfflineOrder(
		ctx context.Context,
		pharmacyID uint,
		lines []models.MedicineLine,
	) (*models.OfflineOrder, []LineResult, error)

	ListOrders(ctx context.Context, pharmacyID uint, limit int) ([]models.OfflineOrder, error)
}

// OrderFromResults builds the persisted record for a reconciled order.
func OrderFromResults(pharmacyID uint, results []LineResult) *models.OfflineOrder {
	order := &models.OfflineOrder{PharmacyID: pharmacyID}
	for _, r := range results {
		if r.Status == LineSold {
			order.SoldCount++
		} else {
			order.UnavailableCount++
		}
		order.Lines = append(order.Lines, models.OfflineOrderLine{
			Name:        r.Name,
			Requested:   r.Requested,
			StockItemID: r.StockItemID,
			Status:      string(r.Status),
			Remaining:   r.Remaining,
		})
	}
	return order
}
