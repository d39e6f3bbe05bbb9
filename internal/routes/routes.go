package routes

import (
	"net/http"

	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"combi_rides/internal/controllers"
)

// SetupRouter wires every route group onto one engine. The controller set
// and JWT secret come in from main; nothing here reaches for globals.
func SetupRouter(h *controllers.Set, secret []byte) *gin.Engine {
	r := gin.New()

	// Recovery and request logging middleware
	r.Use(gin.Recovery())
	r.Use(ginlog.SetLogger())

	AuthRoutes(r, h)
	DriverRoutes(r, h, secret)
	PassengerRoutes(r, h, secret)
	TripRoutes(r, h, secret)
	RouteRoutes(r, h, secret)
	AdminRoutes(r, h, secret)

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
