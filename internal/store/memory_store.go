package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"combi_rides/internal/apperr"
	"combi_rides/internal/models"
)

// MemoryStore keeps everything in maps behind one mutex. Atomically holds
// the mutex for the whole callback and restores a snapshot if it fails, so
// transactions are fully serialized — the same guarantee the Postgres store
// gets from row locks, which is what the concurrency tests lean on.
type MemoryStore struct {
	mu   *sync.Mutex
	data *memData
	inTx bool
}

type memData struct {
	nextID   uint
	users    map[uint]models.User
	routes   map[uint]models.Route
	stops    map[uint]models.RouteStop
	vehicles map[uint]models.Vehicle
	shifts   map[uint]models.Shift
	trips    map[uint]models.Trip
	messages map[uint]models.Message
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		mu: &sync.Mutex{},
		data: &memData{
			users:    make(map[uint]models.User),
			routes:   make(map[uint]models.Route),
			stops:    make(map[uint]models.RouteStop),
			vehicles: make(map[uint]models.Vehicle),
			shifts:   make(map[uint]models.Shift),
			trips:    make(map[uint]models.Trip),
			messages: make(map[uint]models.Message),
		},
	}
}

func (d *memData) clone() *memData {
	c := &memData{
		nextID:   d.nextID,
		users:    make(map[uint]models.User, len(d.users)),
		routes:   make(map[uint]models.Route, len(d.routes)),
		stops:    make(map[uint]models.RouteStop, len(d.stops)),
		vehicles: make(map[uint]models.Vehicle, len(d.vehicles)),
		shifts:   make(map[uint]models.Shift, len(d.shifts)),
		trips:    make(map[uint]models.Trip, len(d.trips)),
		messages: make(map[uint]models.Message, len(d.messages)),
	}
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.routes {
		c.routes[k] = v
	}
	for k, v := range d.stops {
		c.stops[k] = v
	}
	for k, v := range d.vehicles {
		c.vehicles[k] = v
	}
	for k, v := range d.shifts {
		c.shifts[k] = v
	}
	for k, v := range d.trips {
		c.trips[k] = v
	}
	for k, v := range d.messages {
		c.messages[k] = v
	}
	return c
}

func (s *MemoryStore) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *MemoryStore) Atomically(ctx context.Context, fn func(Store) error) error {
	if s.inTx {
		return fn(s)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.data.clone()
	tx := &MemoryStore{mu: s.mu, data: s.data, inTx: true}
	if err := fn(tx); err != nil {
		*s.data = *snap
		return err
	}
	return nil
}

func (s *MemoryStore) allocID() uint {
	s.data.nextID++
	return s.data.nextID
}

// --- routes ---

func (s *MemoryStore) CreateRoute(ctx context.Context, r *models.Route) error {
	defer s.lock()()
	r.ID = s.allocID()
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	for i := range r.Stops {
		r.Stops[i].ID = s.allocID()
		r.Stops[i].RouteID = r.ID
		r.Stops[i].CreatedAt = r.CreatedAt
		s.data.stops[r.Stops[i].ID] = r.Stops[i]
	}
	s.data.routes[r.ID] = *r
	return nil
}

func (s *MemoryStore) ActiveRouteByID(ctx context.Context, id uint) (*models.Route, error) {
	defer s.lock()()
	r, ok := s.data.routes[id]
	if !ok || !r.IsActive {
		return nil, nil
	}
	r.Stops = nil
	return &r, nil
}

func (s *MemoryStore) RouteWithStops(ctx context.Context, id uint) (*models.Route, error) {
	defer s.lock()()
	r, ok := s.data.routes[id]
	if !ok || !r.IsActive {
		return nil, nil
	}
	var stops []models.RouteStop
	for _, st := range s.data.stops {
		if st.RouteID == id && st.IsActive {
			stops = append(stops, st)
		}
	}
	sort.Slice(stops, func(i, j int) bool { return stops[i].Seq < stops[j].Seq })
	r.Stops = stops
	return &r, nil
}

func (s *MemoryStore) ListRoutes(ctx context.Context) ([]models.Route, error) {
	defer s.lock()()
	var routes []models.Route
	for _, r := range s.data.routes {
		if r.IsActive {
			r.Stops = nil
			routes = append(routes, r)
		}
	}
	sort.Slice(routes, func(i, j int) bool { return routes[i].Name < routes[j].Name })
	return routes, nil
}

func (s *MemoryStore) StopOnRoute(ctx context.Context, routeID, stopID uint) (*models.RouteStop, error) {
	defer s.lock()()
	st, ok := s.data.stops[stopID]
	if !ok || st.RouteID != routeID || !st.IsActive {
		return nil, nil
	}
	return &st, nil
}

// --- users ---

func (s *MemoryStore) CreateUser(ctx context.Context, u *models.User) error {
	defer s.lock()()
	for _, existing := range s.data.users {
		if existing.Email == u.Email {
			return apperr.Conflict("email already in use")
		}
	}
	u.ID = s.allocID()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	s.data.users[u.ID] = *u
	return nil
}

func (s *MemoryStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	defer s.lock()()
	for _, u := range s.data.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) UserByID(ctx context.Context, id uint) (*models.User, error) {
	defer s.lock()()
	u, ok := s.data.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// --- vehicles ---

func (s *MemoryStore) CreateVehicle(ctx context.Context, v *models.Vehicle) error {
	defer s.lock()()
	for _, existing := range s.data.vehicles {
		if existing.Plate == v.Plate {
			return apperr.Conflict("vehicle plate already registered")
		}
	}
	v.ID = s.allocID()
	v.CreatedAt = time.Now()
	v.UpdatedAt = v.CreatedAt
	s.data.vehicles[v.ID] = *v
	return nil
}

func (s *MemoryStore) VehiclesByDriver(ctx context.Context, driverID uint) ([]models.Vehicle, error) {
	defer s.lock()()
	var vehicles []models.Vehicle
	for _, v := range s.data.vehicles {
		if v.DriverID == driverID {
			vehicles = append(vehicles, v)
		}
	}
	sort.Slice(vehicles, func(i, j int) bool { return vehicles[i].ID < vehicles[j].ID })
	return vehicles, nil
}

func (s *MemoryStore) VehicleOwnedBy(ctx context.Context, id, driverID uint) (*models.Vehicle, error) {
	defer s.lock()()
	v, ok := s.data.vehicles[id]
	if !ok || v.DriverID != driverID {
		return nil, nil
	}
	return &v, nil
}

// --- shifts ---

func (s *MemoryStore) CreateShift(ctx context.Context, sh *models.Shift) error {
	defer s.lock()()
	for _, existing := range s.data.shifts {
		if existing.DriverID == sh.DriverID && existing.Status == models.ShiftOpen {
			return apperr.Conflict("driver already has an open shift")
		}
	}
	sh.ID = s.allocID()
	sh.CreatedAt = time.Now()
	sh.UpdatedAt = sh.CreatedAt
	s.data.shifts[sh.ID] = *sh
	return nil
}

func (s *MemoryStore) SaveShift(ctx context.Context, sh *models.Shift) error {
	defer s.lock()()
	sh.UpdatedAt = time.Now()
	s.data.shifts[sh.ID] = *sh
	return nil
}

func (s *MemoryStore) OpenShiftByDriver(ctx context.Context, driverID uint) (*models.Shift, error) {
	defer s.lock()()
	for _, sh := range s.data.shifts {
		if sh.DriverID == driverID && sh.Status == models.ShiftOpen {
			sh := sh
			return &sh, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) OpenShiftByDriverForUpdate(ctx context.Context, driverID uint) (*models.Shift, error) {
	return s.OpenShiftByDriver(ctx, driverID)
}

func (s *MemoryStore) ShiftForUpdate(ctx context.Context, id uint) (*models.Shift, error) {
	defer s.lock()()
	sh, ok := s.data.shifts[id]
	if !ok {
		return nil, nil
	}
	return &sh, nil
}

func (s *MemoryStore) OldestOpenShiftWithSeats(ctx context.Context, routeID uint, seats int) (*models.Shift, error) {
	defer s.lock()()
	var best *models.Shift
	for id := range s.data.shifts {
		sh := s.data.shifts[id]
		if sh.RouteID != routeID || sh.Status != models.ShiftOpen || sh.AvailableSeats < seats {
			continue
		}
		if best == nil || sh.CreatedAt.Before(best.CreatedAt) ||
			(sh.CreatedAt.Equal(best.CreatedAt) && sh.ID < best.ID) {
			c := sh
			best = &c
		}
	}
	return best, nil
}

// --- trips ---

func (s *MemoryStore) CreateTrip(ctx context.Context, t *models.Trip) error {
	defer s.lock()()
	t.ID = s.allocID()
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	s.data.trips[t.ID] = *t
	return nil
}

func (s *MemoryStore) SaveTrip(ctx context.Context, t *models.Trip) error {
	defer s.lock()()
	t.UpdatedAt = time.Now()
	s.data.trips[t.ID] = *t
	return nil
}

func (s *MemoryStore) TripByID(ctx context.Context, id uint) (*models.Trip, error) {
	defer s.lock()()
	t, ok := s.data.trips[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (s *MemoryStore) TripForUpdate(ctx context.Context, id uint) (*models.Trip, error) {
	return s.TripByID(ctx, id)
}

func (s *MemoryStore) ListTrips(ctx context.Context, f TripFilter) ([]models.Trip, error) {
	defer s.lock()()
	var trips []models.Trip
	for _, t := range s.data.trips {
		if f.PassengerID != nil && t.PassengerID != *f.PassengerID {
			continue
		}
		if f.DriverID != nil && (t.DriverID == nil || *t.DriverID != *f.DriverID) {
			continue
		}
		if f.Status != nil && t.Status != *f.Status {
			continue
		}
		trips = append(trips, t)
	}
	sort.Slice(trips, func(i, j int) bool {
		if !trips[i].CreatedAt.Equal(trips[j].CreatedAt) {
			return trips[i].CreatedAt.After(trips[j].CreatedAt)
		}
		return trips[i].ID > trips[j].ID
	})
	return trips, nil
}

func (s *MemoryStore) PendingTripsOnRoute(ctx context.Context, routeID uint, since *time.Time) ([]models.Trip, error) {
	defer s.lock()()
	var trips []models.Trip
	for _, t := range s.data.trips {
		if t.RouteID != routeID || t.Status != models.TripRequested {
			continue
		}
		if since != nil && t.CreatedAt.Before(*since) {
			continue
		}
		trips = append(trips, t)
	}
	sort.Slice(trips, func(i, j int) bool {
		if !trips[i].CreatedAt.Equal(trips[j].CreatedAt) {
			return trips[i].CreatedAt.Before(trips[j].CreatedAt)
		}
		return trips[i].ID < trips[j].ID
	})
	return trips, nil
}

// --- messages ---

func (s *MemoryStore) CreateMessage(ctx context.Context, m *models.Message) error {
	defer s.lock()()
	m.ID = s.allocID()
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt
	s.data.messages[m.ID] = *m
	return nil
}

func (s *MemoryStore) MessagesForTrip(ctx context.Context, tripID uint) ([]models.Message, error) {
	defer s.lock()()
	var msgs []models.Message
	for _, m := range s.data.messages {
		if m.TripID == tripID {
			msgs = append(msgs, m)
		}
	}
	sort.Slice(msgs, func(i, j int) bool { return msgs[i].ID < msgs[j].ID })
	return msgs, nil
}
