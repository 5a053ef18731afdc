package srs

import (
	"math"
	"time"

	"github.com/lexikon-app/lexikon-api/internal/domain"
)

// calculateNewEaseFactor applies the SM-2 ease adjustment for a quality
// score:
//
//	EF' = EF + (0.1 - (5-q)*(0.08 + (5-q)*0.02))
//
// clamped to [params.MinEaseFactor, params.MaxEaseFactor]. Quality 4
// leaves the ease factor unchanged; lower scores shrink it, a perfect 5
// grows it by 0.1.
func calculateNewEaseFactor(currentEF float64, quality int, params *Params) float64 {
	q := float64(quality)
	newEF := currentEF + (0.1 - (5-q)*(0.08+(5-q)*0.02))
	return clampFloat(newEF, params.MinEaseFactor, params.MaxEaseFactor)
}

// calculateNextState computes the full post-review state. The order of
// operations is fixed for reproducibility:
//
//  1. Update the ease factor. The NEW ease factor feeds interval growth.
//  2. Failure (quality < 3) resets repetitions to 0 and interval to 1 day.
//     Success increments repetitions; the interval ladder is 1 day, then
//     6 days, then interval*EF rounded.
//  3. Apply personalization: the caller-supplied multiplier, and when the
//     event's accuracy is known, an additional accuracy nudge of
//     (1 + weight*(accuracy-0.5)). Batch recomputes without an event skip
//     the nudge and personalization reduces to the multiplier alone.
//  4. Clamp the interval to [1, params.MaxIntervalDays].
//  5. Next review is now + interval days.
//
// The input state is never mutated; a new copy is returned.
func calculateNextState(
	state *domain.ReviewState,
	quality int,
	accuracy float64,
	hasAccuracy bool,
	personalization float64,
	now time.Time,
	params *Params,
) *domain.ReviewState {
	quality = clampInt(quality, MinQuality, MaxQuality)

	next := *state

	next.EaseFactor = calculateNewEaseFactor(state.EaseFactor, quality, params)

	if quality < PassingQuality {
		next.Repetitions = 0
		next.IntervalDays = 1
	} else {
		next.Repetitions = state.Repetitions + 1
		switch next.Repetitions {
		case 1:
			next.IntervalDays = 1
		case 2:
			next.IntervalDays = 6
		default:
			next.IntervalDays = int(math.Round(float64(state.IntervalDays) * next.EaseFactor))
		}
	}

	factor := clampFloat(personalization, params.MinPersonalization, params.MaxPersonalization)
	if hasAccuracy {
		factor *= 1 + params.PersonalizationWeight*(clampFloat(accuracy, 0, 1)-0.5)
	}
	next.IntervalDays = int(math.Round(float64(next.IntervalDays) * factor))

	next.IntervalDays = clampInt(next.IntervalDays, 1, params.MaxIntervalDays)

	next.ReviewCount = state.ReviewCount + 1
	if quality >= PassingQuality {
		next.CorrectAnswers = state.CorrectAnswers + 1
	}

	next.LastReviewedAt = now
	next.NextReviewAt = now.AddDate(0, 0, next.IntervalDays)
	next.UpdatedAt = now

	return &next
}
