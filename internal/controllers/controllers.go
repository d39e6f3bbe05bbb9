package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"combi_rides/internal/apperr"
)

// Set bundles the controllers so route registration takes one handle.
type Set struct {
	Auth     *AuthController
	Shifts   *ShiftController
	Trips    *TripController
	Routes   *RouteController
	Vehicles *VehicleController
}

// respondError translates the error taxonomy into HTTP statuses. Unclassified
// errors are logged with their cause and surfaced as a generic 500 — store
// errors never reach the client verbatim.
func respondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)

	var status int
	switch kind {
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindValidation:
		status = http.StatusBadRequest
	case apperr.KindAuthorization:
		status = http.StatusForbidden
	case apperr.KindConflict, apperr.KindCapacity, apperr.KindState:
		status = http.StatusConflict
	default:
		logrus.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		status = http.StatusInternalServerError
	}

	c.JSON(status, gin.H{"error": apperr.Message(err), "kind": kind.String()})
}

// parseIDParam reads a numeric URL parameter, responding 400 on garbage.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " format."})
		return 0, false
	}
	return uint(id), true
}
