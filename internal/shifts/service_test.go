package shifts

import (
	"context"
	"testing"

	"combi_rides/internal/apperr"
	"combi_rides/internal/models"
	"combi_rides/internal/store"
)

const driverID uint = 11

func seedRoute(t *testing.T, st *store.MemoryStore) *models.Route {
	t.Helper()
	route := &models.Route{Name: "Lima Centro – Callao", BasePriceCents: 250, Currency: "PEN", IsActive: true}
	if err := st.CreateRoute(context.Background(), route); err != nil {
		t.Fatalf("seed route: %v", err)
	}
	return route
}

func TestOpenShift(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewService(st)
	route := seedRoute(t, st)
	ctx := context.Background()

	sh, err := svc.Open(ctx, driverID, OpenInput{RouteID: route.ID, TotalSeats: 4})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if sh.Status != models.ShiftOpen {
		t.Fatalf("expected open, got %s", sh.Status)
	}
	if sh.TotalSeats != 4 || sh.AvailableSeats != 4 {
		t.Fatalf("expected available initialized to total, got %d/%d", sh.AvailableSeats, sh.TotalSeats)
	}
	if sh.PublicID == "" {
		t.Fatalf("expected public id assigned")
	}
	if sh.StartsAt.IsZero() {
		t.Fatalf("expected starts_at set")
	}
}

func TestOpenShiftValidation(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewService(st)
	route := seedRoute(t, st)
	ctx := context.Background()

	_, err := svc.Open(ctx, driverID, OpenInput{RouteID: route.ID, TotalSeats: 0})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	_, err = svc.Open(ctx, driverID, OpenInput{RouteID: 999, TotalSeats: 4})
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected not-found for unknown route, got %v", err)
	}

	inactive := &models.Route{Name: "retired", IsActive: false}
	if err := st.CreateRoute(ctx, inactive); err != nil {
		t.Fatalf("seed: %v", err)
	}
	_, err = svc.Open(ctx, driverID, OpenInput{RouteID: inactive.ID, TotalSeats: 4})
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected not-found for inactive route, got %v", err)
	}
}

func TestOpenShiftConflict(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewService(st)
	route := seedRoute(t, st)
	ctx := context.Background()

	if _, err := svc.Open(ctx, driverID, OpenInput{RouteID: route.ID, TotalSeats: 4}); err != nil {
		t.Fatalf("open: %v", err)
	}
	_, err := svc.Open(ctx, driverID, OpenInput{RouteID: route.ID, TotalSeats: 2})
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}

	// a different driver is unaffected
	if _, err := svc.Open(ctx, driverID+1, OpenInput{RouteID: route.ID, TotalSeats: 2}); err != nil {
		t.Fatalf("open for second driver: %v", err)
	}
}

func TestOpenShiftVehicleOwnership(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewService(st)
	route := seedRoute(t, st)
	ctx := context.Background()

	mine := &models.Vehicle{Plate: "ABC-123", Capacity: 12, DriverID: driverID, InService: true}
	foreign := &models.Vehicle{Plate: "XYZ-999", Capacity: 12, DriverID: driverID + 1, InService: true}
	if err := st.CreateVehicle(ctx, mine); err != nil {
		t.Fatalf("seed vehicle: %v", err)
	}
	if err := st.CreateVehicle(ctx, foreign); err != nil {
		t.Fatalf("seed vehicle: %v", err)
	}

	_, err := svc.Open(ctx, driverID, OpenInput{RouteID: route.ID, VehicleID: &foreign.ID, TotalSeats: 4})
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected not-found for foreign vehicle, got %v", err)
	}

	sh, err := svc.Open(ctx, driverID, OpenInput{RouteID: route.ID, VehicleID: &mine.ID, TotalSeats: 4})
	if err != nil {
		t.Fatalf("open with own vehicle: %v", err)
	}
	if sh.VehicleID == nil || *sh.VehicleID != mine.ID {
		t.Fatalf("expected vehicle bound to shift")
	}
}

func TestCloseShift(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewService(st)
	route := seedRoute(t, st)
	ctx := context.Background()

	sh, err := svc.Open(ctx, driverID, OpenInput{RouteID: route.ID, TotalSeats: 4})
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	closed, err := svc.Close(ctx, driverID, sh.ID)
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if closed.Status != models.ShiftClosed || closed.EndsAt == nil {
		t.Fatalf("expected closed with ends_at")
	}

	// closing again is a not-found, and nothing changes
	_, err = svc.Close(ctx, driverID, sh.ID)
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected not-found on double close, got %v", err)
	}

	// the driver can open a new shift afterwards
	if _, err := svc.Open(ctx, driverID, OpenInput{RouteID: route.ID, TotalSeats: 2}); err != nil {
		t.Fatalf("reopen after close: %v", err)
	}
}

func TestCloseForeignShift(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewService(st)
	route := seedRoute(t, st)
	ctx := context.Background()

	sh, err := svc.Open(ctx, driverID, OpenInput{RouteID: route.ID, TotalSeats: 4})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	_, err = svc.Close(ctx, driverID+1, sh.ID)
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected not-found for foreign close, got %v", err)
	}
}

func TestGetOpen(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewService(st)
	route := seedRoute(t, st)
	ctx := context.Background()

	sh, err := svc.GetOpen(ctx, driverID)
	if err != nil {
		t.Fatalf("get open: %v", err)
	}
	if sh != nil {
		t.Fatalf("expected no open shift")
	}

	opened, err := svc.Open(ctx, driverID, OpenInput{RouteID: route.ID, TotalSeats: 4})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	sh, err = svc.GetOpen(ctx, driverID)
	if err != nil {
		t.Fatalf("get open: %v", err)
	}
	if sh == nil || sh.ID != opened.ID {
		t.Fatalf("expected the opened shift back")
	}
}
