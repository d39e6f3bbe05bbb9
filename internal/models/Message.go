package models

import (
	"gorm.io/gorm"
)

// Message is a note between a trip's passenger and driver. Delivery is
// poll-based; the core only stores and lists.
type Message struct {
	gorm.Model
	TripID   uint   `json:"trip_id" gorm:"index;not null"`
	SenderID uint   `json:"sender_id" gorm:"not null"`
	Body     string `json:"body" gorm:"not null"`
}
