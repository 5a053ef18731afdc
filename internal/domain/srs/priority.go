package srs

import (
	"math"
	"time"

	"github.com/lexikon-app/lexikon-api/internal/domain"
)

// Priority score boundaries.
const (
	MinPriority = 1
	MaxPriority = 10
)

// ComputePriority ranks an item's review urgency on a 1-10 scale.
//
// Starting from a base of 5:
//
//   - up to +3 scaled by days overdue (+0.5 per day), where overdue is
//     days since the last review beyond the current interval
//   - +3 when mastery is below 30, else +2 when below 50 (the bonuses are
//     mutually exclusive; the low-mastery one takes precedence)
//   - +1 when lifetime accuracy is below 0.6 (a never-reviewed item
//     counts as zero accuracy and gets the bonus)
//   - -1 when mastery exceeds params.MasteryThreshold
//
// The result is rounded and clamped to [1,10]. Increasing overdue days
// never lowers the score; mastery past the threshold never raises it.
func ComputePriority(state *domain.ReviewState, now time.Time, params *Params) int {
	priority := 5.0

	priority += math.Min(3, daysOverdue(state, now)*0.5)

	if state.MasteryLevel < 30 {
		priority += 3
	} else if state.MasteryLevel < 50 {
		priority += 2
	}

	if state.Accuracy() < 0.6 {
		priority++
	}

	if state.MasteryLevel > params.MasteryThreshold {
		priority--
	}

	return clampInt(int(math.Round(priority)), MinPriority, MaxPriority)
}

// daysOverdue returns how many days past its interval an item has gone
// unreviewed, never negative. Items that were never reviewed fall back to
// the scheduled next-review date instead of the last-review anchor.
func daysOverdue(state *domain.ReviewState, now time.Time) float64 {
	if state.LastReviewedAt.IsZero() {
		if state.NextReviewAt.IsZero() {
			return 0
		}
		return math.Max(0, now.Sub(state.NextReviewAt).Hours()/24)
	}

	sinceLast := now.Sub(state.LastReviewedAt).Hours() / 24
	return math.Max(0, sinceLast-float64(state.IntervalDays))
}
