package dto

import "github.com/sehatsetu/sehatsetu-api/internal/models"

type CreateStockRequest struct {
	MedicineName string   `json:"medicineName" binding:"required"`
	Quantity     int      `json:"quantity"`
	Price        *float64 `json:"price"`
}

type UpdateStockRequest struct {
	MedicineName *string  `json:"medicineName"`
	Quantity     *int     `json:"quantity"`
	Price        *float64 `json:"price"`
}

type AdjustStockRequest struct {
	Delta int `json:"delta"`
}

type OfflineOrderRequest struct {
	Medicines []models.MedicineLine `json:"medicines"`
}
