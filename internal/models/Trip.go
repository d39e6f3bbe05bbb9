package models

import (
	"time"

	"gorm.io/gorm"
)

// TripStatus is the trip lifecycle state, persisted as a string.
// Legal transitions live in the trips package; nothing else mutates Status.
type TripStatus string

const (
	TripRequested TripStatus = "requested"
	TripAccepted  TripStatus = "accepted"
	TripRejected  TripStatus = "rejected"
	TripOnboard   TripStatus = "onboard"
	TripCompleted TripStatus = "completed"
	TripCancelled TripStatus = "cancelled"
)

// ParseTripStatus validates a status string from a query filter.
func ParseTripStatus(s string) (TripStatus, bool) {
	switch TripStatus(s) {
	case TripRequested, TripAccepted, TripRejected, TripOnboard, TripCompleted, TripCancelled:
		return TripStatus(s), true
	}
	return "", false
}

type PaymentMethod string

const (
	PayCash PaymentMethod = "cash"
	PayYape PaymentMethod = "yape"
	PayPlin PaymentMethod = "plin"
)

func (p PaymentMethod) Valid() bool {
	switch p {
	case PayCash, PayYape, PayPlin:
		return true
	}
	return false
}

// Trip is one passenger's request for transport on a route, bound to a
// shift once matched. Trips are never deleted; terminal states stay around
// for history.
type Trip struct {
	gorm.Model
	PublicID string `json:"public_id" gorm:"size:36;uniqueIndex"`

	RouteID     uint  `json:"route_id" gorm:"index;not null"`
	ShiftID     *uint `json:"shift_id" gorm:"index"`
	PassengerID uint  `json:"passenger_id" gorm:"index;not null"`
	DriverID    *uint `json:"driver_id" gorm:"index"`

	PickupStopID  *uint  `json:"pickup_stop_id"`
	DropoffStopID *uint  `json:"dropoff_stop_id"`
	PickupNote    string `json:"pickup_note"`

	SeatsRequested int           `json:"seats_requested" gorm:"not null;default:1"`
	Status         TripStatus    `json:"status" gorm:"type:varchar(16);index;not null;default:'requested'"`
	PaymentMethod  PaymentMethod `json:"payment_method" gorm:"type:varchar(8);not null;default:'cash'"`
	PriceCents     int64         `json:"price_cents" gorm:"not null;default:0"`
	Currency       string        `json:"currency" gorm:"size:3;not null;default:'PEN'"`

	AcceptedAt  *time.Time `json:"accepted_at"`
	OnboardedAt *time.Time `json:"onboarded_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
}
