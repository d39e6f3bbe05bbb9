package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"combi_rides/internal/apperr"
	"combi_rides/internal/middleware"
	"combi_rides/internal/models"
	"combi_rides/internal/observability"
	"combi_rides/internal/trips"
)

type TripController struct {
	Trips *trips.Service
}

func NewTripController(svc *trips.Service) *TripController {
	return &TripController{Trips: svc}
}

type requestTripInput struct {
	RouteID        uint   `json:"route_id" binding:"required"`
	PickupStopID   *uint  `json:"pickup_stop_id"`
	DropoffStopID  *uint  `json:"dropoff_stop_id"`
	PickupNote     string `json:"pickup_note"`
	SeatsRequested int    `json:"seats_requested" binding:"required"`
	PaymentMethod  string `json:"payment_method" binding:"required"`
}

// RequestTrip submits a passenger's trip request.
func (tc *TripController) RequestTrip(c *gin.Context) {
	p, _ := middleware.CurrentPrincipal(c)

	var input requestTripInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	trip, err := tc.Trips.Request(c.Request.Context(), p.UserID, trips.RequestInput{
		RouteID:        input.RouteID,
		PickupStopID:   input.PickupStopID,
		DropoffStopID:  input.DropoffStopID,
		PickupNote:     input.PickupNote,
		SeatsRequested: input.SeatsRequested,
		PaymentMethod:  models.PaymentMethod(input.PaymentMethod),
	})
	if err != nil {
		if apperr.KindOf(err) == apperr.KindCapacity {
			observability.CapacityRejections.Inc()
		}
		respondError(c, err)
		return
	}

	observability.TripsRequested.Inc()
	c.JSON(http.StatusCreated, gin.H{"trip": trip})
}

// AcceptTrip debits the driver's shift and binds the trip to them.
func (tc *TripController) AcceptTrip(c *gin.Context) {
	p, _ := middleware.CurrentPrincipal(c)
	tripID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	trip, err := tc.Trips.Accept(c.Request.Context(), p.UserID, tripID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindCapacity {
			observability.CapacityRejections.Inc()
		}
		respondError(c, err)
		return
	}

	observability.TripsAccepted.Inc()
	c.JSON(http.StatusOK, gin.H{"trip": trip})
}

func (tc *TripController) RejectTrip(c *gin.Context) {
	tc.driverTransition(c, tc.Trips.Reject)
}

func (tc *TripController) OnboardTrip(c *gin.Context) {
	tc.driverTransition(c, tc.Trips.Onboard)
}

func (tc *TripController) CompleteTrip(c *gin.Context) {
	tc.driverTransition(c, tc.Trips.Complete)
}

func (tc *TripController) driverTransition(c *gin.Context, fn func(ctx context.Context, driverID, tripID uint) (*models.Trip, error)) {
	p, _ := middleware.CurrentPrincipal(c)
	tripID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	trip, err := fn(c.Request.Context(), p.UserID, tripID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"trip": trip})
}

// CancelTrip lets the passenger abort their trip; seats return to the shift
// when the trip had been accepted.
func (tc *TripController) CancelTrip(c *gin.Context) {
	p, _ := middleware.CurrentPrincipal(c)
	tripID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	trip, err := tc.Trips.Cancel(c.Request.Context(), p.UserID, tripID)
	if err != nil {
		respondError(c, err)
		return
	}

	observability.TripsCancelled.Inc()
	c.JSON(http.StatusOK, gin.H{"trip": trip})
}

// GetTrip returns one trip; visibility is passenger/driver/admin only.
func (tc *TripController) GetTrip(c *gin.Context) {
	p, _ := middleware.CurrentPrincipal(c)
	tripID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	trip, err := tc.Trips.Get(c.Request.Context(), p.UserID, p.Role, tripID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"trip": trip})
}

// ListMyTrips returns the caller's trip history, newest first.
func (tc *TripController) ListMyTrips(c *gin.Context) {
	p, _ := middleware.CurrentPrincipal(c)

	var status *models.TripStatus
	if raw := c.Query("status"); raw != "" {
		parsed, ok := models.ParseTripStatus(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status filter"})
			return
		}
		status = &parsed
	}

	list, err := tc.Trips.History(c.Request.Context(), p.UserID, p.Role, status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"trips": list})
}

// ListPendingRequests returns requested trips on the route of the driver's
// open shift, oldest first.
func (tc *TripController) ListPendingRequests(c *gin.Context) {
	p, _ := middleware.CurrentPrincipal(c)

	var since *time.Time
	if raw := c.Query("since"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "since must be RFC3339"})
			return
		}
		since = &t
	}

	list, err := tc.Trips.PendingRequests(c.Request.Context(), p.UserID, since)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"trips": list})
}

type sendMessageInput struct {
	Body string `json:"body" binding:"required"`
}

// SendMessage posts a note on the trip, participants only.
func (tc *TripController) SendMessage(c *gin.Context) {
	p, _ := middleware.CurrentPrincipal(c)
	tripID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input sendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	msg, err := tc.Trips.SendMessage(c.Request.Context(), p.UserID, tripID, input.Body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

// ListMessages returns the trip's messages in send order.
func (tc *TripController) ListMessages(c *gin.Context) {
	p, _ := middleware.CurrentPrincipal(c)
	tripID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	msgs, err := tc.Trips.Messages(c.Request.Context(), p.UserID, tripID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}
