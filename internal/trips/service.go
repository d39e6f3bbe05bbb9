// Package trips implements trip allocation and the trip lifecycle. Every
// transition that touches a shift's seat counter runs inside one store
// transaction with the trip and shift rows locked, so concurrent accepts
// and cancels against the same shift serialize.
package trips

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"combi_rides/internal/apperr"
	"combi_rides/internal/models"
	"combi_rides/internal/store"
)

type Service struct {
	store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{store: st}
}

type RequestInput struct {
	RouteID        uint
	PickupStopID   *uint
	DropoffStopID  *uint
	PickupNote     string
	SeatsRequested int
	PaymentMethod  models.PaymentMethod
}

// Request matches a passenger's trip request to the oldest open shift on the
// route with enough free seats (first-fit, insertion-order tie-break) and
// creates the trip in requested state. Seats are not debited here: the match
// is advisory capacity, and the hard check happens under lock at accept
// time. When no shift fits, the request is rejected outright — no queueing.
func (s *Service) Request(ctx context.Context, passengerID uint, in RequestInput) (*models.Trip, error) {
	if in.SeatsRequested < 1 {
		return nil, apperr.Validation("seats_requested must be at least 1")
	}
	if !in.PaymentMethod.Valid() {
		return nil, apperr.Validation("invalid payment_method %q", in.PaymentMethod)
	}
	if in.PickupStopID != nil && in.DropoffStopID != nil && *in.PickupStopID == *in.DropoffStopID {
		return nil, apperr.Validation("pickup_stop_id and dropoff_stop_id must be different")
	}

	var trip *models.Trip
	err := s.store.Atomically(ctx, func(tx store.Store) error {
		route, err := tx.ActiveRouteByID(ctx, in.RouteID)
		if err != nil {
			return err
		}
		if route == nil {
			return apperr.NotFound("route %d not found or inactive", in.RouteID)
		}

		for _, stopID := range []*uint{in.PickupStopID, in.DropoffStopID} {
			if stopID == nil {
				continue
			}
			stop, err := tx.StopOnRoute(ctx, in.RouteID, *stopID)
			if err != nil {
				return err
			}
			if stop == nil {
				return apperr.NotFound("stop %d does not belong to route %d", *stopID, in.RouteID)
			}
		}

		shift, err := tx.OldestOpenShiftWithSeats(ctx, in.RouteID, in.SeatsRequested)
		if err != nil {
			return err
		}
		if shift == nil {
			return apperr.Capacity("no open shift on route %d with %d free seats", in.RouteID, in.SeatsRequested)
		}

		trip = &models.Trip{
			PublicID:       uuid.NewString(),
			RouteID:        in.RouteID,
			ShiftID:        &shift.ID,
			PassengerID:    passengerID,
			PickupStopID:   in.PickupStopID,
			DropoffStopID:  in.DropoffStopID,
			PickupNote:     strings.TrimSpace(in.PickupNote),
			SeatsRequested: in.SeatsRequested,
			Status:         models.TripRequested,
			PaymentMethod:  in.PaymentMethod,
			PriceCents:     route.BasePriceCents * int64(in.SeatsRequested),
			Currency:       route.Currency,
		}
		return tx.CreateTrip(ctx, trip)
	})
	if err != nil {
		return nil, err
	}
	return trip, nil
}

// Accept moves a requested trip to accepted and debits the seats from the
// accepting driver's open shift, both in one transaction. The capacity check
// runs here, under the shift row lock, never against a value read earlier.
// The trip is re-pointed to the acceptor's shift when the allocator had
// matched a different one.
func (s *Service) Accept(ctx context.Context, driverID, tripID uint) (*models.Trip, error) {
	var trip *models.Trip
	err := s.store.Atomically(ctx, func(tx store.Store) error {
		t, err := tx.TripForUpdate(ctx, tripID)
		if err != nil {
			return err
		}
		if t == nil {
			return apperr.NotFound("trip %d not found", tripID)
		}

		shift, err := tx.OpenShiftByDriverForUpdate(ctx, driverID)
		if err != nil {
			return err
		}
		if shift == nil {
			return apperr.NotFound("driver %d has no open shift", driverID)
		}
		if shift.RouteID != t.RouteID {
			return apperr.State("trip %s is on route %d, driver's open shift serves route %d",
				t.PublicID, t.RouteID, shift.RouteID)
		}
		if t.Status != models.TripRequested {
			return apperr.State("trip %s cannot be accepted from status %s", t.PublicID, t.Status)
		}
		if shift.AvailableSeats < t.SeatsRequested {
			return apperr.Capacity("shift %s has %d free seats, trip needs %d",
				shift.PublicID, shift.AvailableSeats, t.SeatsRequested)
		}

		if err := ApplyTransition(t, models.TripAccepted, time.Now()); err != nil {
			return err
		}
		t.DriverID = &driverID
		t.ShiftID = &shift.ID
		shift.AvailableSeats -= t.SeatsRequested

		if err := tx.SaveShift(ctx, shift); err != nil {
			return err
		}
		if err := tx.SaveTrip(ctx, t); err != nil {
			return err
		}
		trip = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return trip, nil
}

// Reject declines a requested trip. Only a driver holding an open shift on
// the trip's route may reject it — the same gate that put the trip in that
// driver's pending list. No seat accounting happens.
func (s *Service) Reject(ctx context.Context, driverID, tripID uint) (*models.Trip, error) {
	var trip *models.Trip
	err := s.store.Atomically(ctx, func(tx store.Store) error {
		t, err := tx.TripForUpdate(ctx, tripID)
		if err != nil {
			return err
		}
		if t == nil {
			return apperr.NotFound("trip %d not found", tripID)
		}

		shift, err := tx.OpenShiftByDriver(ctx, driverID)
		if err != nil {
			return err
		}
		if shift == nil {
			return apperr.NotFound("driver %d has no open shift", driverID)
		}
		if shift.RouteID != t.RouteID {
			return apperr.Authorization("trip %s is not on driver %d's route", t.PublicID, driverID)
		}

		if err := ApplyTransition(t, models.TripRejected, time.Now()); err != nil {
			return err
		}
		if err := tx.SaveTrip(ctx, t); err != nil {
			return err
		}
		trip = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return trip, nil
}

// Onboard marks an accepted trip's passenger as on the vehicle.
func (s *Service) Onboard(ctx context.Context, driverID, tripID uint) (*models.Trip, error) {
	return s.driverTransition(ctx, driverID, tripID, models.TripOnboard)
}

// Complete finishes a trip from accepted or onboard. Seats stay debited;
// they return to the pool only when the shift closes.
func (s *Service) Complete(ctx context.Context, driverID, tripID uint) (*models.Trip, error) {
	return s.driverTransition(ctx, driverID, tripID, models.TripCompleted)
}

// driverTransition covers the transitions only the trip's own driver may
// perform, with no seat side effects.
func (s *Service) driverTransition(ctx context.Context, driverID, tripID uint, to models.TripStatus) (*models.Trip, error) {
	var trip *models.Trip
	err := s.store.Atomically(ctx, func(tx store.Store) error {
		t, err := tx.TripForUpdate(ctx, tripID)
		if err != nil {
			return err
		}
		if t == nil {
			return apperr.NotFound("trip %d not found", tripID)
		}
		if t.DriverID == nil || *t.DriverID != driverID {
			return apperr.Authorization("trip %s is not assigned to driver %d", t.PublicID, driverID)
		}
		if err := ApplyTransition(t, to, time.Now()); err != nil {
			return err
		}
		if err := tx.SaveTrip(ctx, t); err != nil {
			return err
		}
		trip = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return trip, nil
}

// Cancel lets the passenger abort a requested or accepted trip. When the
// trip had been accepted, the seats debited at accept time are credited
// back to the shift in the same transaction.
func (s *Service) Cancel(ctx context.Context, passengerID, tripID uint) (*models.Trip, error) {
	var trip *models.Trip
	err := s.store.Atomically(ctx, func(tx store.Store) error {
		t, err := tx.TripForUpdate(ctx, tripID)
		if err != nil {
			return err
		}
		if t == nil {
			return apperr.NotFound("trip %d not found", tripID)
		}
		if t.PassengerID != passengerID {
			return apperr.Authorization("trip %s does not belong to passenger %d", t.PublicID, passengerID)
		}

		wasAccepted := t.Status == models.TripAccepted
		if err := ApplyTransition(t, models.TripCancelled, time.Now()); err != nil {
			return err
		}

		if wasAccepted && t.ShiftID != nil {
			shift, err := tx.ShiftForUpdate(ctx, *t.ShiftID)
			if err != nil {
				return err
			}
			if shift != nil {
				shift.AvailableSeats += t.SeatsRequested
				if err := tx.SaveShift(ctx, shift); err != nil {
					return err
				}
			}
		}

		if err := tx.SaveTrip(ctx, t); err != nil {
			return err
		}
		trip = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return trip, nil
}

// Get returns a single trip, visible only to its passenger, its driver, or
// an admin.
func (s *Service) Get(ctx context.Context, userID uint, role models.Role, tripID uint) (*models.Trip, error) {
	t, err := s.store.TripByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperr.NotFound("trip %d not found", tripID)
	}
	if !canSeeTrip(t, userID, role) {
		return nil, apperr.Authorization("trip %s is not visible to user %d", t.PublicID, userID)
	}
	return t, nil
}

func canSeeTrip(t *models.Trip, userID uint, role models.Role) bool {
	if role == models.RoleAdmin {
		return true
	}
	if t.PassengerID == userID {
		return true
	}
	return t.DriverID != nil && *t.DriverID == userID
}

// History lists the caller's trips newest first, as passenger or as driver
// depending on their role, optionally filtered by status.
func (s *Service) History(ctx context.Context, userID uint, role models.Role, status *models.TripStatus) ([]models.Trip, error) {
	f := store.TripFilter{Status: status}
	if role == models.RoleDriver {
		f.DriverID = &userID
	} else {
		f.PassengerID = &userID
	}
	return s.store.ListTrips(ctx, f)
}

// PendingRequests lists requested trips on the route of the driver's open
// shift, oldest first, optionally limited to those created at or after
// since.
func (s *Service) PendingRequests(ctx context.Context, driverID uint, since *time.Time) ([]models.Trip, error) {
	shift, err := s.store.OpenShiftByDriver(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, apperr.NotFound("driver %d has no open shift", driverID)
	}
	return s.store.PendingTripsOnRoute(ctx, shift.RouteID, since)
}

// SendMessage stores a note on the trip; only the trip's passenger or
// driver may write.
func (s *Service) SendMessage(ctx context.Context, userID, tripID uint, body string) (*models.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperr.Validation("message body is empty")
	}
	t, err := s.store.TripByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperr.NotFound("trip %d not found", tripID)
	}
	if !isParticipant(t, userID) {
		return nil, apperr.Authorization("user %d is not a participant of trip %s", userID, t.PublicID)
	}
	msg := &models.Message{TripID: tripID, SenderID: userID, Body: body}
	if err := s.store.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// Messages lists a trip's messages in send order, participants only.
func (s *Service) Messages(ctx context.Context, userID, tripID uint) ([]models.Message, error) {
	t, err := s.store.TripByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperr.NotFound("trip %d not found", tripID)
	}
	if !isParticipant(t, userID) {
		return nil, apperr.Authorization("user %d is not a participant of trip %s", userID, t.PublicID)
	}
	return s.store.MessagesForTrip(ctx, tripID)
}

func isParticipant(t *models.Trip, userID uint) bool {
	if t.PassengerID == userID {
		return true
	}
	return t.DriverID != nil && *t.DriverID == userID
}
