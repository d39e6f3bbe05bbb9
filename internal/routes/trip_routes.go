package routes

import (
	"github.com/gin-gonic/gin"

	"combi_rides/internal/controllers"
	"combi_rides/internal/middleware"
	"combi_rides/internal/models"
)

func TripRoutes(r *gin.Engine, h *controllers.Set, secret []byte) {
	trips := r.Group("/trips")
	trips.Use(middleware.RequireAuth(secret))
	{
		trips.GET("", h.Trips.ListMyTrips)
		trips.GET("/:id", h.Trips.GetTrip)
		trips.POST("/:id/messages", h.Trips.SendMessage)
		trips.GET("/:id/messages", h.Trips.ListMessages)
	}

	// lifecycle transitions are role-gated per actor
	driver := r.Group("/trips")
	driver.Use(middleware.RequireRole(secret, models.RoleDriver))
	{
		driver.POST("/:id/accept", h.Trips.AcceptTrip)
		driver.POST("/:id/reject", h.Trips.RejectTrip)
		driver.POST("/:id/onboard", h.Trips.OnboardTrip)
		driver.POST("/:id/complete", h.Trips.CompleteTrip)
	}

	passenger := r.Group("/trips")
	passenger.Use(middleware.RequireRole(secret, models.RolePassenger))
	{
		passenger.POST("/:id/cancel", h.Trips.CancelTrip)
	}
}
