package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"combi_rides/internal/apperr"
	"combi_rides/internal/middleware"
	"combi_rides/internal/models"
	"combi_rides/internal/store"
)

type VehicleController struct {
	Store store.Store
}

func NewVehicleController(st store.Store) *VehicleController {
	return &VehicleController{Store: st}
}

// CreateVehicle registers a vehicle for the authenticated driver.
func (vc *VehicleController) CreateVehicle(c *gin.Context) {
	p, _ := middleware.CurrentPrincipal(c)

	var input struct {
		Plate    string `json:"plate" binding:"required"`
		Capacity int    `json:"capacity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle input: " + err.Error()})
		return
	}
	if input.Capacity < 1 {
		respondError(c, apperr.Validation("capacity must be at least 1"))
		return
	}

	vehicle := models.Vehicle{
		Plate:     input.Plate,
		Capacity:  input.Capacity,
		DriverID:  p.UserID,
		InService: true,
	}
	if err := vc.Store.CreateVehicle(c.Request.Context(), &vehicle); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"vehicle": vehicle})
}

// GetMyVehicles lists the driver's registered vehicles.
func (vc *VehicleController) GetMyVehicles(c *gin.Context) {
	p, _ := middleware.CurrentPrincipal(c)

	vehicles, err := vc.Store.VehiclesByDriver(c.Request.Context(), p.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"vehicles": vehicles})
}
