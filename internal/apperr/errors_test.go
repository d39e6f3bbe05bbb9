package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	if KindOf(Capacity("full")) != KindCapacity {
		t.Fatalf("expected capacity kind")
	}
	if KindOf(errors.New("plain")) != KindInternal {
		t.Fatalf("unclassified errors are internal")
	}

	// classification survives wrapping
	wrapped := fmt.Errorf("request trip: %w", NotFound("route 7 not found"))
	if KindOf(wrapped) != KindNotFound {
		t.Fatalf("expected not-found through wrap, got %s", KindOf(wrapped))
	}
}

func TestMessageHidesInternalCause(t *testing.T) {
	cause := errors.New("pq: connection refused")
	err := Internal(cause, "store read failed")

	if Message(err) != "internal error" {
		t.Fatalf("internal cause leaked: %q", Message(err))
	}
	if !errors.Is(err, cause) {
		t.Fatalf("cause must stay reachable for logging")
	}

	if Message(Conflict("driver 3 already has an open shift")) != "driver 3 already has an open shift" {
		t.Fatalf("classified message should pass through")
	}
}
