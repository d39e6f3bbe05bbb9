package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"combi_rides/internal/middleware"
	"combi_rides/internal/observability"
	"combi_rides/internal/shifts"
)

type ShiftController struct {
	Shifts *shifts.Service
}

func NewShiftController(svc *shifts.Service) *ShiftController {
	return &ShiftController{Shifts: svc}
}

type openShiftInput struct {
	RouteID    uint  `json:"route_id" binding:"required"`
	VehicleID  *uint `json:"vehicle_id"`
	TotalSeats int   `json:"total_seats" binding:"required"`
}

// OpenShift starts the authenticated driver's shift on a route.
func (sc *ShiftController) OpenShift(c *gin.Context) {
	p, _ := middleware.CurrentPrincipal(c)

	var input openShiftInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	shift, err := sc.Shifts.Open(c.Request.Context(), p.UserID, shifts.OpenInput{
		RouteID:    input.RouteID,
		VehicleID:  input.VehicleID,
		TotalSeats: input.TotalSeats,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	observability.ShiftsOpened.Inc()
	c.JSON(http.StatusCreated, gin.H{"shift": shift})
}

// CloseShift ends the driver's shift identified in the URL.
func (sc *ShiftController) CloseShift(c *gin.Context) {
	p, _ := middleware.CurrentPrincipal(c)

	shiftID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	shift, err := sc.Shifts.Close(c.Request.Context(), p.UserID, shiftID)
	if err != nil {
		respondError(c, err)
		return
	}

	observability.ShiftsClosed.Inc()
	c.JSON(http.StatusOK, gin.H{"shift": shift})
}

// GetOpenShift returns the driver's currently open shift, if any.
func (sc *ShiftController) GetOpenShift(c *gin.Context) {
	p, _ := middleware.CurrentPrincipal(c)

	shift, err := sc.Shifts.GetOpen(c.Request.Context(), p.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	if shift == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No open shift"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"shift": shift})
}
