package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"combi_rides/internal/controllers"
	"combi_rides/internal/middleware"
	"combi_rides/internal/models"
	"combi_rides/internal/shifts"
	"combi_rides/internal/store"
	"combi_rides/internal/trips"
)

var testSecret = []byte("test-secret")

func testRouter(t *testing.T) (*gin.Engine, *store.MemoryStore, *models.Route) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.NewMemoryStore()
	route := &models.Route{Name: "Lima Centro – Callao", BasePriceCents: 250, Currency: "PEN", IsActive: true}
	if err := st.CreateRoute(context.Background(), route); err != nil {
		t.Fatalf("seed route: %v", err)
	}

	set := &controllers.Set{
		Auth:     controllers.NewAuthController(st, testSecret),
		Shifts:   controllers.NewShiftController(shifts.NewService(st)),
		Trips:    controllers.NewTripController(trips.NewService(st)),
		Routes:   controllers.NewRouteController(st),
		Vehicles: controllers.NewVehicleController(st),
	}
	return SetupRouter(set, testSecret), st, route
}

func doJSON(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// Role gates must reject before the handler runs: a passenger token on a
// driver-only route gets a 403 and leaves no state behind.
func TestDriverRoutesRejectPassengerToken(t *testing.T) {
	r, st, route := testRouter(t)

	passenger, err := middleware.GenerateToken(testSecret, 7, models.RolePassenger)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	body := `{"route_id": 1, "total_seats": 4}`

	w := doJSON(r, http.MethodPost, "/driver/shifts", passenger, body)
	if w.Code != http.StatusForbidden {
		t.Fatalf("passenger on /driver/shifts: expected 403, got %d (%s)", w.Code, w.Body.String())
	}
	sh, err := st.OpenShiftByDriver(context.Background(), 7)
	if err != nil {
		t.Fatalf("read shift: %v", err)
	}
	if sh != nil {
		t.Fatalf("forbidden request must not create a shift")
	}

	// the same token still works where the role matches
	driver, err := middleware.GenerateToken(testSecret, 8, models.RoleDriver)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	w = doJSON(r, http.MethodPost, "/driver/shifts", driver, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("driver on /driver/shifts: expected 201, got %d (%s)", w.Code, w.Body.String())
	}
	sh, err = st.OpenShiftByDriver(context.Background(), 8)
	if err != nil {
		t.Fatalf("read shift: %v", err)
	}
	if sh == nil || sh.RouteID != route.ID {
		t.Fatalf("expected driver's shift on route %d", route.ID)
	}
}

func TestAdminRoutesRejectDriverToken(t *testing.T) {
	r, _, _ := testRouter(t)

	driver, err := middleware.GenerateToken(testSecret, 8, models.RoleDriver)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	body := `{"name": "Nueva Ruta", "origin_name": "A", "destination_name": "B"}`

	w := doJSON(r, http.MethodPost, "/admin/routes", driver, body)
	if w.Code != http.StatusForbidden {
		t.Fatalf("driver on /admin/routes: expected 403, got %d (%s)", w.Code, w.Body.String())
	}
}
