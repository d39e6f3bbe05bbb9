package trips

import (
	"time"

	"combi_rides/internal/apperr"
	"combi_rides/internal/models"
)

// allowTransition is the full trip lifecycle as a directed graph. Terminal
// states map to nothing. Self-transitions are not allowed: a repeated accept
// or cancel is a stale request and must surface as an error, not a no-op.
var allowTransition = map[models.TripStatus][]models.TripStatus{
	models.TripRequested: {models.TripAccepted, models.TripRejected, models.TripCancelled},
	models.TripAccepted:  {models.TripOnboard, models.TripCancelled, models.TripCompleted},
	models.TripOnboard:   {models.TripCompleted},
	models.TripRejected:  {},
	models.TripCompleted: {},
	models.TripCancelled: {},
}

// CanTransition reports whether from -> to is a legal trip status change.
func CanTransition(from, to models.TripStatus) bool {
	for _, s := range allowTransition[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ApplyTransition moves the trip to the target status and stamps the
// matching timestamp. Callers perform seat accounting and ownership checks;
// this only guards the graph.
func ApplyTransition(t *models.Trip, to models.TripStatus, now time.Time) error {
	if !CanTransition(t.Status, to) {
		return apperr.State("trip %s cannot go from %s to %s", t.PublicID, t.Status, to)
	}
	t.Status = to
	switch to {
	case models.TripAccepted:
		t.AcceptedAt = &now
	case models.TripOnboard:
		t.OnboardedAt = &now
	case models.TripCompleted:
		t.CompletedAt = &now
	case models.TripCancelled:
		t.CancelledAt = &now
	}
	return nil
}
