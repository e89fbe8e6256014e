package stock

import (
	"strings"

	"github.com/sehatsetu/sehatsetu-api/internal/models"
)

type LineStatus string

const (
	LineSold       LineStatus = "Sold"
	LineOutOfStock LineStatus = "Out of Stock"
	LineNotFound   LineStatus = "Not Found"
)

type LineResult struct {
	Name        string     `json:"name"`
	Requested   int        `json:"requested"`
	Status      LineStatus `json:"status"`
	StockItemID *uint      `json:"stockItemId,omitempty"`
	Remaining   *int       `json:"remaining,omitempty"`
}

type Summary struct {
	OrderID          uint         `json:"orderId"`
	Message          string       `json:"message"`
	SoldCount        int          `json:"soldCount"`
	UnavailableCount int          `json:"unavailableCount"`
	Details          []LineResult `json:"details"`
}

// OrderLines drops rows without a name and raises quantities below one to one.
func OrderLines(lines []models.MedicineLine) []models.MedicineLine {
	out := make([]models.MedicineLine, 0, len(lines))
	for _, l := range lines {
		l.Name = strings.TrimSpace(l.Name)
		if l.Name == "" {
			continue
		}
		if l.Quantity < 1 {
			l.Quantity = 1
		}
		out = append(out, l)
	}
	return out
}

// Reconcile matches each line against stock by NameKey and decrements the
// matched item when it covers the full request. A line is never partially
// filled. Items in stock are mutated in place; the returned slice lists the
// items whose quantity changed, each once.
func Reconcile(lines []models.MedicineLine, stock []models.StockItem) ([]LineResult, []*models.StockItem) {
	byKey := make(map[string]*models.StockItem, len(stock))
	for i := range stock {
		byKey[stock[i].NameKey] = &stock[i]
	}

	results := make([]LineResult, 0, len(lines))
	var touched []*models.StockItem
	seen := make(map[uint]bool)

	for _, l := range lines {
		res := LineResult{Name: l.Name, Requested: l.Quantity}

		item, ok := byKey[NameKey(l.Name)]
		switch {
		case !ok:
			res.Status = LineNotFound
		case item.Quantity < l.Quantity:
			res.Status = LineOutOfStock
			res.StockItemID = &item.ID
		default:
			item.Quantity -= l.Quantity
			res.Status = LineSold
			res.StockItemID = &item.ID
			remaining := item.Quantity
			res.Remaining = &remaining

			if !seen[item.ID] {
				seen[item.ID] = true
				touched = append(touched, item)
			}
		}

		results = append(results, res)
	}

	return results, touched
}

func Summarize(orderID uint, results []LineResult) Summary {
	s := Summary{OrderID: orderID, Details: results}
	for _, r := range results {
		if r.Status == LineSold {
			s.SoldCount++
		} else {
			s.UnavailableCount++
		}
	}

	switch {
	case s.UnavailableCount == 0:
		s.Message = "Sale complete"
	case s.SoldCount == 0:
		s.Message = "No items could be sold"
	default:
		s.Message = "Partial sale"
	}
	return s
}
