package models

import "time"

type StockItem struct {
	ID         uint `gorm:"primaryKey" json:"_id"`
	PharmacyID uint `gorm:"uniqueIndex:idx_stock_pharmacy_name;not null" json:"pharmacyId"`

	MedicineName string `gorm:"size:150;not null" json:"medicineName"`
	// NameKey is the trimmed, lower-cased medicine name used for matching.
	NameKey string `gorm:"size:150;uniqueIndex:idx_stock_pharmacy_name;not null" json:"-"`

	Quantity int      `gorm:"not null;default:0;check:quantity >= 0" json:"quantity"`
	Price    *float64 `json:"price,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
