package stock

import (
	"strings"

	"github.com/sehatsetu/sehatsetu-api/internal/httperr"
	"github.com/sehatsetu/sehatsetu-api/internal/models"
)

// NameKey is the matching key for a medicine name: trimmed, inner whitespace
// collapsed, lower-cased.
func NameKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

func NewItem(pharmacyID uint, name string, quantity int, price *float64) (*models.StockItem, error) {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return nil, httperr.ErrBusiness("invalid_medicine_name")
	}
	if quantity < 0 {
		return nil, httperr.ErrBusiness("invalid_quantity")
	}
	if price != nil && *price < 0 {
		return nil, httperr.ErrBusiness("invalid_quantity")
	}

	return &models.StockItem{
		PharmacyID:   pharmacyID,
		MedicineName: name,
		NameKey:      NameKey(name),
		Quantity:     quantity,
		Price:        price,
	}, nil
}

func Rename(item *models.StockItem, name string) error {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return httperr.ErrBusiness("invalid_medicine_name")
	}
	item.MedicineName = name
	item.NameKey = NameKey(name)
	return nil
}

func SetQuantity(item *models.StockItem, quantity int) error {
	if quantity < 0 {
		return httperr.ErrBusiness("invalid_quantity")
	}
	item.Quantity = quantity
	return nil
}

// Adjust applies a relative change and clamps the result at zero.
func Adjust(item *models.StockItem, delta int) {
	item.Quantity = ClampedQuantity(item.Quantity, delta)
}

func ClampedQuantity(current, delta int) int {
	if q := current + delta; q > 0 {
		return q
	}
	return 0
}
