package store

import (
	"context"
	"time"

	"combi_rides/internal/models"
)

// TripFilter narrows a trip history listing. Exactly one of PassengerID or
// DriverID is normally set, depending on the caller's role.
type TripFilter struct {
	PassengerID *uint
	DriverID    *uint
	Status      *models.TripStatus
}

// Store is the persistence boundary for the trip core. Single-row reads
// return (nil, nil) when the row is absent; callers attach the domain
// meaning (not found vs. capacity vs. conflict).
//
// ForUpdate reads are only meaningful inside Atomically: they take row-level
// locks held until the surrounding transaction commits, which is what
// serializes two accepts racing for the same shift.
type Store interface {
	Atomically(ctx context.Context, fn func(Store) error) error

	// Routes (reference data).
	CreateRoute(ctx context.Context, r *models.Route) error
	ActiveRouteByID(ctx context.Context, id uint) (*models.Route, error)
	RouteWithStops(ctx context.Context, id uint) (*models.Route, error)
	ListRoutes(ctx context.Context) ([]models.Route, error)
	StopOnRoute(ctx context.Context, routeID, stopID uint) (*models.RouteStop, error)

	// Users.
	CreateUser(ctx context.Context, u *models.User) error
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id uint) (*models.User, error)

	// Vehicles.
	CreateVehicle(ctx context.Context, v *models.Vehicle) error
	VehiclesByDriver(ctx context.Context, driverID uint) ([]models.Vehicle, error)
	VehicleOwnedBy(ctx context.Context, id, driverID uint) (*models.Vehicle, error)

	// Shifts.
	CreateShift(ctx context.Context, s *models.Shift) error
	SaveShift(ctx context.Context, s *models.Shift) error
	OpenShiftByDriver(ctx context.Context, driverID uint) (*models.Shift, error)
	OpenShiftByDriverForUpdate(ctx context.Context, driverID uint) (*models.Shift, error)
	ShiftForUpdate(ctx context.Context, id uint) (*models.Shift, error)
	OldestOpenShiftWithSeats(ctx context.Context, routeID uint, seats int) (*models.Shift, error)

	// Trips.
	CreateTrip(ctx context.Context, t *models.Trip) error
	SaveTrip(ctx context.Context, t *models.Trip) error
	TripByID(ctx context.Context, id uint) (*models.Trip, error)
	TripForUpdate(ctx context.Context, id uint) (*models.Trip, error)
	ListTrips(ctx context.Context, f TripFilter) ([]models.Trip, error)
	PendingTripsOnRoute(ctx context.Context, routeID uint, since *time.Time) ([]models.Trip, error)

	// Trip messages.
	CreateMessage(ctx context.Context, m *models.Message) error
	MessagesForTrip(ctx context.Context, tripID uint) ([]models.Message, error)
}
