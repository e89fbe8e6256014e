package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sehatsetu/sehatsetu-api/internal/domain/stock"
	"github.com/sehatsetu/sehatsetu-api/internal/models"
)

func (c *Client) PharmacyStats(ctx context.Context) (*PharmacyStats, error) {
	var out PharmacyStats
	if err := c.query(ctx, KeyPharmacyStats, "/api/pharmacy/stats", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ====== STOCK ======

func (c *Client) Stock(ctx context.Context) ([]StockItem, error) {
	var out []StockItem
	if err := c.query(ctx, KeyStockItems, "/api/pharmacy/stock", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddStock(ctx context.Context, in StockInput) (*StockItem, error) {
	var out StockItem
	if err := c.mutate(ctx, http.MethodPost, "/api/pharmacy/stock", in, &out, stockKeys...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateStock(ctx context.Context, id uint, in StockPatch) (*StockItem, error) {
	var out StockItem
	path := fmt.Sprintf("/api/pharmacy/stock/%d", id)
	if err := c.mutate(ctx, http.MethodPut, path, in, &out, stockKeys...); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdjustStock applies a relative change; the server clamps at zero.
func (c *Client) AdjustStock(ctx context.Context, id uint, delta int) (*StockItem, error) {
	var out StockItem
	path := fmt.Sprintf("/api/pharmacy/stock/%d/adjust", id)
	if err := c.mutate(ctx, http.MethodPatch, path, map[string]int{"delta": delta}, &out, stockKeys...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteStock(ctx context.Context, id uint) error {
	return c.mutate(ctx, http.MethodDelete, fmt.Sprintf("/api/pharmacy/stock/%d", id), nil, nil, stockKeys...)
}

var stockKeys = []string{KeyStockItems, KeyPharmacyStats}

// ====== ORDERS ======

func (c *Client) ProcessOfflineOrder(ctx context.Context, lines []models.MedicineLine) (*stock.Summary, error) {
	var out stock.Summary
	err := c.mutate(ctx, http.MethodPost, "/api/pharmacy/process-offline-order",
		map[string]any{"medicines": lines},
		&out,
		KeyStockItems, KeyPharmacyStats, KeyOfflineOrders,
	)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) OfflineOrders(ctx context.Context, limit int) ([]OfflineOrder, error) {
	var out list[OfflineOrder]
	key := fmt.Sprintf("%s:%d", KeyOfflineOrders, limit)
	if err := c.query(ctx, key, fmt.Sprintf("/api/pharmacy/orders?limit=%d", limit), &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// ====== PRESCRIPTIONS ======

func (c *Client) IncomingPrescriptions(ctx context.Context) ([]IncomingPrescription, error) {
	var out []IncomingPrescription
	if err := c.query(ctx, KeyIncomingPrescriptions, "/api/pharmacy/prescriptions", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdatePrescriptionStatus(ctx context.Context, id uint, status, notes string) (*IncomingPrescription, error) {
	var out IncomingPrescription
	err := c.mutate(ctx, http.MethodPut,
		fmt.Sprintf("/api/pharmacy/prescriptions/%d", id),
		map[string]string{"status": status, "pharmacyNotes": notes},
		&out,
		KeyIncomingPrescriptions, KeyPharmacyStats,
	)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ====== PROFILE ======

func (c *Client) HasPharmacyProfile(ctx context.Context) (bool, error) {
	var out struct {
		HasProfile bool `json:"hasProfile"`
	}
	if err := c.query(ctx, KeyPharmacyProfileStatus, "/api/pharmacy/profile/status", &out); err != nil {
		return false, err
	}
	return out.HasProfile, nil
}

func (c *Client) CreatePharmacyProfile(ctx context.Context, in PharmacyProfileInput) (*PharmacyProfile, error) {
	var out PharmacyProfile
	err := c.mutate(ctx, http.MethodPost, "/api/pharmacy/profile", in, &out,
		KeyPharmacyProfileStatus, KeyPharmacyProfile, KeyAllPharmacies,
	)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PharmacyProfile(ctx context.Context) (*PharmacyProfile, error) {
	var out PharmacyProfile
	if err := c.query(ctx, KeyPharmacyProfile, "/api/pharmacy/profile", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePharmacyProfile(ctx context.Context, in PharmacyProfileInput) (*PharmacyProfile, error) {
	var out PharmacyProfile
	err := c.mutate(ctx, http.MethodPut, "/api/pharmacy/profile", in, &out,
		KeyPharmacyProfile, KeyAllPharmacies,
	)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
