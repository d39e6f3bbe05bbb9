package controllers

import (
	"encoding/binary"
	"net/http"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"combi_rides/internal/apperr"
	"combi_rides/internal/models"
	"combi_rides/internal/store"

	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"
)

type RouteController struct {
	Store store.Store
}

func NewRouteController(st store.Store) *RouteController {
	return &RouteController{Store: st}
}

// routeResponse mirrors models.Route with Geometry as a GeoJSON string.
type routeResponse struct {
	models.Route
	Geometry string `json:"geometry,omitempty"`
}

func toRouteResponse(route models.Route) routeResponse {
	jsonGeom, err := convertWKBToGeoJSON(route.Geometry)
	if err != nil {
		logrus.WithError(err).WithField("route_id", route.ID).Warn("stored geometry is not valid WKB")
	}
	return routeResponse{Route: route, Geometry: jsonGeom}
}

// parseAndConvertGeometry parses a GeoJSON string into a geom.T and returns WKB bytes
func parseAndConvertGeometry(raw string) ([]byte, error) {
	if raw == "" {
		return nil, nil
	}
	var g geom.T
	if err := gjson.Unmarshal([]byte(raw), &g); err != nil {
		return nil, err
	}
	return wkb.Marshal(g, binary.LittleEndian)
}

// convertWKBToGeoJSON converts WKB bytes into a GeoJSON string
func convertWKBToGeoJSON(wkbBytes []byte) (string, error) {
	if len(wkbBytes) == 0 {
		return "", nil
	}
	g, err := wkb.Unmarshal(wkbBytes)
	if err != nil {
		return "", err
	}
	b, err := gjson.Marshal(g)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

type createRouteInput struct {
	Name            string  `json:"name" binding:"required"`
	OriginName      string  `json:"origin_name" binding:"required"`
	OriginLat       float64 `json:"origin_lat"`
	OriginLon       float64 `json:"origin_lon"`
	DestinationName string  `json:"destination_name" binding:"required"`
	DestinationLat  float64 `json:"destination_lat"`
	DestinationLon  float64 `json:"destination_lon"`
	BasePriceCents  int64   `json:"base_price_cents"`
	Currency        string  `json:"currency"`
	Geometry        string  `json:"geometry"` // optional GeoJSON LineString
	Stops           []struct {
		Name string  `json:"name" binding:"required"`
		Seq  int     `json:"seq"`
		Lat  float64 `json:"lat"`
		Lon  float64 `json:"lon"`
	} `json:"stops"`
}

// CreateRoute registers a new route with its ordered stops. Admin only.
func (rc *RouteController) CreateRoute(c *gin.Context) {
	var input createRouteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("CreateRoute: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if input.BasePriceCents < 0 {
		respondError(c, apperr.Validation("base_price_cents must not be negative"))
		return
	}

	wkbGeom, err := parseAndConvertGeometry(input.Geometry)
	if err != nil {
		respondError(c, apperr.Validation("geometry is not valid GeoJSON"))
		return
	}

	currency := input.Currency
	if currency == "" {
		currency = "PEN"
	}

	route := models.Route{
		Name:            input.Name,
		OriginName:      input.OriginName,
		OriginLat:       input.OriginLat,
		OriginLon:       input.OriginLon,
		DestinationName: input.DestinationName,
		DestinationLat:  input.DestinationLat,
		DestinationLon:  input.DestinationLon,
		BasePriceCents:  input.BasePriceCents,
		Currency:        currency,
		IsActive:        true,
		Geometry:        wkbGeom,
	}
	for _, st := range input.Stops {
		route.Stops = append(route.Stops, models.RouteStop{
			Name:     st.Name,
			Seq:      st.Seq,
			Lat:      st.Lat,
			Lon:      st.Lon,
			IsActive: true,
		})
	}

	if err := rc.Store.CreateRoute(c.Request.Context(), &route); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"route": toRouteResponse(route)})
}

// ListRoutes returns all active routes.
func (rc *RouteController) ListRoutes(c *gin.Context) {
	routes, err := rc.Store.ListRoutes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]routeResponse, 0, len(routes))
	for _, r := range routes {
		out = append(out, toRouteResponse(r))
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}

// GetRoute returns one active route with its stops in path order.
func (rc *RouteController) GetRoute(c *gin.Context) {
	routeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	route, err := rc.Store.RouteWithStops(c.Request.Context(), routeID)
	if err != nil {
		respondError(c, err)
		return
	}
	if route == nil {
		respondError(c, apperr.NotFound("route %d not found or inactive", routeID))
		return
	}

	c.JSON(http.StatusOK, gin.H{"route": toRouteResponse(*route)})
}
