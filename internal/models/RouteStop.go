package models

import (
	"gorm.io/gorm"
)

// RouteStop is a boarding or alighting point along a route.
// Seq indicates position along the path.
type RouteStop struct {
	gorm.Model

	Name     string  `json:"name" binding:"required"`
	Seq      int     `json:"seq" binding:"required"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	IsActive bool    `json:"is_active" gorm:"not null;default:true"`

	RouteID uint `json:"route_id" gorm:"index"`
}
