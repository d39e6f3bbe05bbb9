package routes

import (
	"github.com/gin-gonic/gin"

	"combi_rides/internal/controllers"
	"combi_rides/internal/middleware"
	"combi_rides/internal/models"
)

func PassengerRoutes(r *gin.Engine, h *controllers.Set, secret []byte) {
	passenger := r.Group("/passenger")
	passenger.Use(middleware.RequireRole(secret, models.RolePassenger))
	{
		passenger.POST("/trips", h.Trips.RequestTrip)
	}
}
