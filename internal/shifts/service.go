// Package shifts owns the lifecycle of a driver's service window and its
// seat counter. Seat debits and credits themselves happen in the trips
// package, inside the same transactions that move trip state.
package shifts

import (
	"context"
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

type OpenInput struct {
	RouteID    uint
	VehicleID  *uint
	TotalSeats int
}

// Open starts a new shift for the driver. A driver holds at most one open
// shift; the store's partial unique index backs this check up against
// concurrent opens.
func (s *Service) Open(ctx context.Context, driverID uint, in OpenInput) (*models.Shift, error) {
	if in.TotalSeats < 1 {
		return nil, apperr.Validation("total_seats must be at least 1")
	}

	var shift *models.Shift
	err := s.store.Atomically(ctx, func(tx store.Store) error {
		route, err := tx.ActiveRouteByID(ctx, in.RouteID)
		if err != nil {
			return err
		}
		if route == nil {
			return apperr.NotFound("route %d not found or inactive", in.RouteID)
		}

		existing, err := tx.OpenShiftByDriver(ctx, driverID)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperr.Conflict("driver %d already has an open shift (%s)", driverID, existing.PublicID)
		}

		if in.VehicleID != nil {
			vehicle, err := tx.VehicleOwnedBy(ctx, *in.VehicleID, driverID)
			if err != nil {
				return err
			}
			if vehicle == nil {
				return apperr.NotFound("vehicle %d not found for driver %d", *in.VehicleID, driverID)
			}
		}

		shift = &models.Shift{
			PublicID:       uuid.NewString(),
			DriverID:       driverID,
			RouteID:        in.RouteID,
			VehicleID:      in.VehicleID,
			Status:         models.ShiftOpen,
			TotalSeats:     in.TotalSeats,
			AvailableSeats: in.TotalSeats,
			StartsAt:       time.Now(),
		}
		return tx.CreateShift(ctx, shift)
	})
	if err != nil {
		return nil, err
	}
	return shift, nil
}

// Close ends the driver's open shift. Trips already bound to the shift keep
// their reference; the shift just stops receiving allocations. Closing an
// already-closed (or foreign) shift is a not-found, matching the read that
// backs it.
func (s *Service) Close(ctx context.Context, driverID, shiftID uint) (*models.Shift, error) {
	var shift *models.Shift
	err := s.store.Atomically(ctx, func(tx store.Store) error {
		sh, err := tx.ShiftForUpdate(ctx, shiftID)
		if err != nil {
			return err
		}
		if sh == nil || sh.DriverID != driverID || sh.Status != models.ShiftOpen {
			return apperr.NotFound("no open shift %d for driver %d", shiftID, driverID)
		}
		now := time.Now()
		sh.Status = models.ShiftClosed
		sh.EndsAt = &now
		if err := tx.SaveShift(ctx, sh); err != nil {
			return err
		}
		shift = sh
		return nil
	})
	if err != nil {
		return nil, err
	}
	return shift, nil
}

// GetOpen returns the driver's open shift, or (nil, nil) when there is none.
func (s *Service) GetOpen(ctx context.Context, driverID uint) (*models.Shift, error) {
	return s.store.OpenShiftByDriver(ctx, driverID)
}
