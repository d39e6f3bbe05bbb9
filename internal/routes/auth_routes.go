package routes

import (
	"github.com/gin-gonic/gin"

	"combi_rides/internal/controllers"
)

func AuthRoutes(r *gin.Engine, h *controllers.Set) {
	auth := r.Group("/auth")
	{
		auth.POST("/signup", h.Auth.Signup)
		auth.POST("/login", h.Auth.Login)
	}
}
