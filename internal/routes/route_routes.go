package routes

import (
	"github.com/gin-gonic/gin"

	"combi_rides/internal/controllers"
	"combi_rides/internal/middleware"
)

func RouteRoutes(r *gin.Engine, h *controllers.Set, secret []byte) {
	routes := r.Group("/routes")
	routes.Use(middleware.RequireAuth(secret))
	{
		routes.GET("", h.Routes.ListRoutes)
		routes.GET("/:id", h.Routes.GetRoute)
	}
}
