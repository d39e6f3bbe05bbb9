package routes

import (
	"github.com/gin-gonic/gin"

	"combi_rides/internal/controllers"
	"combi_rides/internal/middleware"
	"combi_rides/internal/models"
)

func AdminRoutes(r *gin.Engine, h *controllers.Set, secret []byte) {
	admin := r.Group("/admin")
	admin.Use(middleware.RequireRole(secret, models.RoleAdmin))
	{
		admin.POST("/routes", h.Routes.CreateRoute)
	}
}
