package models

import "time"

type Pharmacy struct {
	ID      uint `gorm:"primaryKey" json:"_id"`
	OwnerID uint `gorm:"uniqueIndex;not null" json:"-"`
	Owner   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name    string `gorm:"size:150;not null" json:"name"`
	Address string `gorm:"size:255" json:"address"`
	Phone   string `gorm:"size:20" json:"phone"`

	Latitude  *float64 `json:"-"`
	Longitude *float64 `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GeoPoint is the GeoJSON shape the web client reads coordinates from.
type GeoPoint struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

func PointFrom(lat, lng *float64) *GeoPoint {
	if lat == nil || lng == nil {
		return nil
	}
	return &GeoPoint{Type: "Point", Coordinates: [2]float64{*lng, *lat}}
}
