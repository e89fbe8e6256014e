package models

import "time"

// OfflineOrder records a walk-in sale reconciled against stock.
type OfflineOrder struct {
	ID         uint `gorm:"primaryKey" json:"_id"`
	PharmacyID uint `gorm:"index;not null" json:"pharmacyId"`

	SoldCount        int `json:"soldCount"`
	UnavailableCount int `json:"unavailableCount"`

	Lines []OfflineOrderLine `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"lines"`

	CreatedAt time.Time `json:"createdAt"`
}

type OfflineOrderLine struct {
	ID             uint `gorm:"primaryKey" json:"-"`
	OfflineOrderID uint `gorm:"index;not null" json:"-"`

	Name        string `gorm:"size:150" json:"name"`
	Requested   int    `json:"requested"`
	StockItemID *uint  `json:"stockItemId,omitempty"`
	Status      string `gorm:"size:20" json:"status"`
	Remaining   *int   `json:"remaining,omitempty"`
}
