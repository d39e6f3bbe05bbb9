// Seeds a local database with a demo admin, driver, passenger and one route
// with stops, so the API is usable right after first boot.
package main

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"combi_rides/internal/config"
	"combi_rides/internal/models"
)

func main() {
	cfg := config.Load()

	db, err := config.OpenDB(cfg)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}

	seedUser(db, "Admin", "admin@combi.local", "admin123", models.RoleAdmin)
	seedUser(db, "Demo Driver", "driver@combi.local", "driver123", models.RoleDriver)
	seedUser(db, "Demo Passenger", "passenger@combi.local", "passenger123", models.RolePassenger)
	seedRoute(db)

	log.Println("seed complete")
}

func seedUser(db *gorm.DB, name, email, password string, role models.Role) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password for %s: %v", email, err)
	}
	user := models.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     role,
		IsActive: true,
	}
	if err := db.Where("email = ?", email).FirstOrCreate(&user).Error; err != nil {
		log.Fatalf("seed user %s: %v", email, err)
	}
	log.Printf("user %s (%s) id=%d", email, role, user.ID)
}

func seedRoute(db *gorm.DB) {
	route := models.Route{
		Name:            "Lima Centro – Callao",
		OriginName:      "Plaza San Martín",
		OriginLat:       -12.0514,
		OriginLon:       -77.0358,
		DestinationName: "Callao Plaza",
		DestinationLat:  -12.0566,
		DestinationLon:  -77.1181,
		BasePriceCents:  250,
		Currency:        "PEN",
		IsActive:        true,
		Stops: []models.RouteStop{
			{Name: "Plaza San Martín", Seq: 1, Lat: -12.0514, Lon: -77.0358, IsActive: true},
			{Name: "Av. Colonial / Universitaria", Seq: 2, Lat: -12.0505, Lon: -77.0789, IsActive: true},
			{Name: "Callao Plaza", Seq: 3, Lat: -12.0566, Lon: -77.1181, IsActive: true},
		},
	}
	if err := db.Where("name = ?", route.Name).FirstOrCreate(&route).Error; err != nil {
		log.Fatalf("seed route: %v", err)
	}
	log.Printf("route %q id=%d", route.Name, route.ID)
}
