package models

import (
	"time"

	"gorm.io/gorm"
)

// ShiftStatus is persisted as a string; only two values exist.
type ShiftStatus string

const (
	ShiftOpen   ShiftStatus = "open"
	ShiftClosed ShiftStatus = "closed"
)

// Shift is one driver's active service window on one route with one
// (optional) vehicle. AvailableSeats is the live seat counter: debited when
// a trip is accepted, credited when an accepted trip is cancelled.
//
// The partial unique index backs the one-open-shift-per-driver invariant at
// the store level; the service check in front of it exists to produce a
// friendly conflict instead of a raw constraint violation.
type Shift struct {
	gorm.Model
	PublicID string `json:"public_id" gorm:"size:36;uniqueIndex"`

	DriverID  uint  `json:"driver_id" gorm:"not null;uniqueIndex:ux_shifts_driver_open,where:status = 'open'"`
	RouteID   uint  `json:"route_id" gorm:"index;not null"`
	VehicleID *uint `json:"vehicle_id"`

	Status         ShiftStatus `json:"status" gorm:"type:varchar(8);index;not null;default:'open'"`
	TotalSeats     int         `json:"total_seats" gorm:"not null"`
	AvailableSeats int         `json:"available_seats" gorm:"not null"`

	StartsAt time.Time  `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
}
