package trips

import (
	"testing"
	"time"

	"combi_rides/internal/apperr"
	"combi_rides/internal/models"
)

func TestCanTransition(t *testing.T) {
	legal := [][2]models.TripStatus{
		{models.TripRequested, models.TripAccepted},
		{models.TripRequested, models.TripRejected},
		{models.TripRequested, models.TripCancelled},
		{models.TripAccepted, models.TripOnboard},
		{models.TripAccepted, models.TripCancelled},
		{models.TripAccepted, models.TripCompleted},
		{models.TripOnboard, models.TripCompleted},
	}
	for _, tc := range legal {
		if !CanTransition(tc[0], tc[1]) {
			t.Errorf("expected %s -> %s allowed", tc[0], tc[1])
		}
	}

	illegal := [][2]models.TripStatus{
		{models.TripRequested, models.TripOnboard},
		{models.TripRequested, models.TripCompleted},
		{models.TripOnboard, models.TripCancelled},
		{models.TripOnboard, models.TripRejected},
		{models.TripCompleted, models.TripRequested},
		{models.TripCancelled, models.TripAccepted},
		{models.TripRejected, models.TripAccepted},
		{models.TripAccepted, models.TripAccepted}, // repeats are stale, not no-ops
	}
	for _, tc := range illegal {
		if CanTransition(tc[0], tc[1]) {
			t.Errorf("expected %s -> %s forbidden", tc[0], tc[1])
		}
	}
}

func TestApplyTransitionStampsTimes(t *testing.T) {
	now := time.Now()
	trip := &models.Trip{PublicID: "t-1", Status: models.TripRequested}

	if err := ApplyTransition(trip, models.TripAccepted, now); err != nil {
		t.Fatalf("ApplyTransition: %v", err)
	}
	if trip.Status != models.TripAccepted {
		t.Fatalf("expected accepted, got %s", trip.Status)
	}
	if trip.AcceptedAt == nil || !trip.AcceptedAt.Equal(now) {
		t.Fatalf("expected accepted_at stamped")
	}

	later := now.Add(time.Minute)
	if err := ApplyTransition(trip, models.TripOnboard, later); err != nil {
		t.Fatalf("ApplyTransition: %v", err)
	}
	if trip.OnboardedAt == nil || !trip.OnboardedAt.Equal(later) {
		t.Fatalf("expected onboarded_at stamped")
	}

	if err := ApplyTransition(trip, models.TripCompleted, later); err != nil {
		t.Fatalf("ApplyTransition: %v", err)
	}
	if trip.CompletedAt == nil {
		t.Fatalf("expected completed_at stamped")
	}
}

func TestApplyTransitionRejectsShortcut(t *testing.T) {
	trip := &models.Trip{PublicID: "t-2", Status: models.TripRequested}
	err := ApplyTransition(trip, models.TripOnboard, time.Now())
	if err == nil {
		t.Fatalf("expected requested -> onboard to fail")
	}
	if apperr.KindOf(err) != apperr.KindState {
		t.Fatalf("expected state error, got %v", err)
	}
	if trip.Status != models.TripRequested {
		t.Fatalf("failed transition must not mutate status, got %s", trip.Status)
	}
}
