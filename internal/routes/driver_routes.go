package routes

import (
	"github.com/gin-gonic/gin"

	"combi_rides/internal/controllers"
	"combi_rides/internal/middleware"
	"combi_rides/internal/models"
)

func DriverRoutes(r *gin.Engine, h *controllers.Set, secret []byte) {
	driver := r.Group("/driver")
	driver.Use(middleware.RequireRole(secret, models.RoleDriver))
	{
		driver.POST("/shifts", h.Shifts.OpenShift)
		driver.POST("/shifts/:id/close", h.Shifts.CloseShift)
		driver.GET("/shifts/open", h.Shifts.GetOpenShift)
		driver.GET("/requests", h.Trips.ListPendingRequests)
		driver.POST("/vehicles", h.Vehicles.CreateVehicle)
		driver.GET("/vehicles", h.Vehicles.GetMyVehicles)
	}
}
