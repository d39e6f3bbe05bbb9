package main

import (
	"log"
	"net/http"

	"combi_rides/internal/config"
	"combi_rides/internal/controllers"
	"combi_rides/internal/logger"
	"combi_rides/internal/middleware"
	"combi_rides/internal/routes"
	"combi_rides/internal/shifts"
	"combi_rides/internal/store"
	"combi_rides/internal/trips"
)

func main() {
	cfg := config.Load()

	// Structured logging to a rotating file
	logger.Setup(cfg.LogFile)

	// Connect to the database; the handle is owned here and injected down.
	db, err := config.OpenDB(cfg)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to access sql.DB: %v", err)
	}
	defer sqlDB.Close()

	st := store.NewGormStore(db)
	secret := []byte(cfg.JWTSecret)

	shiftSvc := shifts.NewService(st)
	tripSvc := trips.NewService(st)

	set := &controllers.Set{
		Auth:     controllers.NewAuthController(st, secret),
		Shifts:   controllers.NewShiftController(shiftSvc),
		Trips:    controllers.NewTripController(tripSvc),
		Routes:   controllers.NewRouteController(st),
		Vehicles: controllers.NewVehicleController(st),
	}

	r := routes.SetupRouter(set, secret)

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	log.Printf("🚀 Server running at %s", cfg.HTTPAddr)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, handler))
}
