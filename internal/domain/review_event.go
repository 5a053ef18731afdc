package domain

import (
	"errors"
	"time"
)

// ErrMissingEventTime is returned when a review event has no timestamp.
var ErrMissingEventTime = errors.New("review event timestamp is required")

// ReviewEvent carries the raw signals of a single review attempt. It is
// ephemeral: the engine consumes it to produce a new ReviewState and the
// session log archives it, but the scheduler never stores events itself.
type ReviewEvent struct {
	Accuracy   float64   `json:"accuracy"`    // Fraction correct, 0-1
	ResponseMs float64   `json:"response_ms"` // Response latency in milliseconds
	Difficulty int       `json:"difficulty"`  // Subjective difficulty, 1-5
	Modality   Modality  `json:"modality"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Validate rejects structurally impossible events. Out-of-range numeric
// signals are clamped by the quality estimator rather than rejected.
func (e *ReviewEvent) Validate() error {
	if e.OccurredAt.IsZero() {
		return ErrMissingEventTime
	}
	return nil
}
