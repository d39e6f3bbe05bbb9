package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TripsRequested     = promauto.NewCounter(prometheus.CounterOpts{Namespace: "combi_rides", Name: "trips_requested_total", Help: "Trip requests that matched a shift"})
	TripsAccepted      = promauto.NewCounter(prometheus.CounterOpts{Namespace: "combi_rides", Name: "trips_accepted_total", Help: "Trips accepted by a driver"})
	TripsCancelled     = promauto.NewCounter(prometheus.CounterOpts{Namespace: "combi_rides", Name: "trips_cancelled_total", Help: "Trips cancelled by their passenger"})
	CapacityRejections = promauto.NewCounter(prometheus.CounterOpts{Namespace: "combi_rides", Name: "capacity_rejections_total", Help: "Requests and accepts refused for lack of free seats"})
	ShiftsOpened       = promauto.NewCounter(prometheus.CounterOpts{Namespace: "combi_rides", Name: "shifts_opened_total", Help: "Shifts opened by drivers"})
	ShiftsClosed       = promauto.NewCounter(prometheus.CounterOpts{Namespace: "combi_rides", Name: "shifts_closed_total", Help: "Shifts closed by drivers"})
)
