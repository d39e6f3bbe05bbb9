package models

import (
	"gorm.io/gorm"
)

type Vehicle struct {
	gorm.Model
	Plate     string `json:"plate" gorm:"uniqueIndex"`
	Capacity  int    `json:"capacity"`
	DriverID  uint   `json:"driver_id" gorm:"index"` // owning driver user
	InService bool   `json:"in_service" gorm:"default:true"`
}
