package store

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"combi_rides/internal/apperr"
	"combi_rides/internal/models"
)

// GormStore runs against Postgres. Inside Atomically every method operates
// on the transaction handle, so ForUpdate reads take real row locks.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Atomically(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func (s *GormStore) h(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// isUniqueViolation matches both gorm's translated error and the raw pq
// code, depending on which driver path produced it.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func firstOrNil[T any](err error, v *T) (*T, error) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperr.Internal(err, "store read failed")
	}
	return v, nil
}

// --- routes ---

func (s *GormStore) CreateRoute(ctx context.Context, r *models.Route) error {
	if err := s.h(ctx).Create(r).Error; err != nil {
		return apperr.Internal(err, "create route")
	}
	return nil
}

func (s *GormStore) ActiveRouteByID(ctx context.Context, id uint) (*models.Route, error) {
	var r models.Route
	err := s.h(ctx).Where("id = ? AND is_active = ?", id, true).First(&r).Error
	return firstOrNil(err, &r)
}

func (s *GormStore) RouteWithStops(ctx context.Context, id uint) (*models.Route, error) {
	var r models.Route
	err := s.h(ctx).
		Preload("Stops", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("seq ASC")
		}).
		Where("id = ? AND is_active = ?", id, true).
		First(&r).Error
	return firstOrNil(err, &r)
}

func (s *GormStore) ListRoutes(ctx context.Context) ([]models.Route, error) {
	var routes []models.Route
	if err := s.h(ctx).Where("is_active = ?", true).Order("name ASC").Find(&routes).Error; err != nil {
		return nil, apperr.Internal(err, "list routes")
	}
	return routes, nil
}

func (s *GormStore) StopOnRoute(ctx context.Context, routeID, stopID uint) (*models.RouteStop, error) {
	var st models.RouteStop
	err := s.h(ctx).Where("id = ? AND route_id = ? AND is_active = ?", stopID, routeID, true).First(&st).Error
	return firstOrNil(err, &st)
}

// --- users ---

func (s *GormStore) CreateUser(ctx context.Context, u *models.User) error {
	if err := s.h(ctx).Create(u).Error; err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflict("email already in use")
		}
		return apperr.Internal(err, "create user")
	}
	return nil
}

func (s *GormStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.h(ctx).Where("email = ?", email).First(&u).Error
	return firstOrNil(err, &u)
}

func (s *GormStore) UserByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	err := s.h(ctx).Where("id = ?", id).First(&u).Error
	return firstOrNil(err, &u)
}

// --- vehicles ---

func (s *GormStore) CreateVehicle(ctx context.Context, v *models.Vehicle) error {
	if err := s.h(ctx).Create(v).Error; err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflict("vehicle plate already registered")
		}
		return apperr.Internal(err, "create vehicle")
	}
	return nil
}

func (s *GormStore) VehiclesByDriver(ctx context.Context, driverID uint) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	if err := s.h(ctx).Where("driver_id = ?", driverID).Find(&vehicles).Error; err != nil {
		return nil, apperr.Internal(err, "list vehicles")
	}
	return vehicles, nil
}

func (s *GormStore) VehicleOwnedBy(ctx context.Context, id, driverID uint) (*models.Vehicle, error) {
	var v models.Vehicle
	err := s.h(ctx).Where("id = ? AND driver_id = ?", id, driverID).First(&v).Error
	return firstOrNil(err, &v)
}

// --- shifts ---

func (s *GormStore) CreateShift(ctx context.Context, sh *models.Shift) error {
	if err := s.h(ctx).Create(sh).Error; err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflict("driver already has an open shift")
		}
		return apperr.Internal(err, "create shift")
	}
	return nil
}

func (s *GormStore) SaveShift(ctx context.Context, sh *models.Shift) error {
	if err := s.h(ctx).Save(sh).Error; err != nil {
		return apperr.Internal(err, "save shift")
	}
	return nil
}

func (s *GormStore) OpenShiftByDriver(ctx context.Context, driverID uint) (*models.Shift, error) {
	var sh models.Shift
	err := s.h(ctx).Where("driver_id = ? AND status = ?", driverID, models.ShiftOpen).First(&sh).Error
	return firstOrNil(err, &sh)
}

func (s *GormStore) OpenShiftByDriverForUpdate(ctx context.Context, driverID uint) (*models.Shift, error) {
	var sh models.Shift
	err := s.h(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("driver_id = ? AND status = ?", driverID, models.ShiftOpen).
		First(&sh).Error
	return firstOrNil(err, &sh)
}

func (s *GormStore) ShiftForUpdate(ctx context.Context, id uint) (*models.Shift, error) {
	var sh models.Shift
	err := s.h(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&sh).Error
	return firstOrNil(err, &sh)
}

func (s *GormStore) OldestOpenShiftWithSeats(ctx context.Context, routeID uint, seats int) (*models.Shift, error) {
	var sh models.Shift
	err := s.h(ctx).
		Where("route_id = ? AND status = ? AND available_seats >= ?", routeID, models.ShiftOpen, seats).
		Order("created_at ASC, id ASC").
		First(&sh).Error
	return firstOrNil(err, &sh)
}

// --- trips ---

func (s *GormStore) CreateTrip(ctx context.Context, t *models.Trip) error {
	if err := s.h(ctx).Create(t).Error; err != nil {
		return apperr.Internal(err, "create trip")
	}
	return nil
}

func (s *GormStore) SaveTrip(ctx context.Context, t *models.Trip) error {
	if err := s.h(ctx).Save(t).Error; err != nil {
		return apperr.Internal(err, "save trip")
	}
	return nil
}

func (s *GormStore) TripByID(ctx context.Context, id uint) (*models.Trip, error) {
	var t models.Trip
	err := s.h(ctx).Where("id = ?", id).First(&t).Error
	return firstOrNil(err, &t)
}

func (s *GormStore) TripForUpdate(ctx context.Context, id uint) (*models.Trip, error) {
	var t models.Trip
	err := s.h(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&t).Error
	return firstOrNil(err, &t)
}

func (s *GormStore) ListTrips(ctx context.Context, f TripFilter) ([]models.Trip, error) {
	q := s.h(ctx).Model(&models.Trip{})
	if f.PassengerID != nil {
		q = q.Where("passenger_id = ?", *f.PassengerID)
	}
	if f.DriverID != nil {
		q = q.Where("driver_id = ?", *f.DriverID)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	var trips []models.Trip
	if err := q.Order("created_at DESC, id DESC").Find(&trips).Error; err != nil {
		return nil, apperr.Internal(err, "list trips")
	}
	return trips, nil
}

func (s *GormStore) PendingTripsOnRoute(ctx context.Context, routeID uint, since *time.Time) ([]models.Trip, error) {
	q := s.h(ctx).Where("route_id = ? AND status = ?", routeID, models.TripRequested)
	if since != nil {
		q = q.Where("created_at >= ?", *since)
	}
	var trips []models.Trip
	if err := q.Order("created_at ASC, id ASC").Find(&trips).Error; err != nil {
		return nil, apperr.Internal(err, "list pending trips")
	}
	return trips, nil
}

// --- messages ---

func (s *GormStore) CreateMessage(ctx context.Context, m *models.Message) error {
	if err := s.h(ctx).Create(m).Error; err != nil {
		return apperr.Internal(err, "create message")
	}
	return nil
}

func (s *GormStore) MessagesForTrip(ctx context.Context, tripID uint) ([]models.Message, error) {
	var msgs []models.Message
	if err := s.h(ctx).Where("trip_id = ?", tripID).Order("created_at ASC, id ASC").Find(&msgs).Error; err != nil {
		return nil, apperr.Internal(err, "list messages")
	}
	return msgs, nil
}
