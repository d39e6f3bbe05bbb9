package models

import (
	"gorm.io/gorm"
)

// Route is static reference data: a fixed service path with an ordered set
// of stops and a flat per-seat base price. The trip core only reads routes;
// creation and upkeep belong to the admin surface.
type Route struct {
	gorm.Model

	Name            string  `json:"name" binding:"required"`
	OriginName      string  `json:"origin_name"`
	OriginLat       float64 `json:"origin_lat"`
	OriginLon       float64 `json:"origin_lon"`
	DestinationName string  `json:"destination_name"`
	DestinationLat  float64 `json:"destination_lat"`
	DestinationLon  float64 `json:"destination_lon"`
	BasePriceCents  int64   `json:"base_price_cents" gorm:"not null;default:0"`
	Currency        string  `json:"currency" gorm:"size:3;not null;default:'PEN'"`
	IsActive        bool    `json:"is_active" gorm:"not null;default:true"`

	// Full path stored as WKB (LINESTRING, SRID 4326); GeoJSON at the API.
	Geometry []byte `json:"-" gorm:"type:bytea"`

	Stops []RouteStop `gorm:"foreignKey:RouteID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"stops,omitempty"`
}
