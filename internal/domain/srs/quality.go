package srs

import (
	"math"

	"github.com/lexikon-app/lexikon-api/internal/domain"
)

// Quality score boundaries following the SM-2 convention: scores below
// PassingQuality are failures, scores at or above are successes.
const (
	MinQuality     = 0
	MaxQuality     = 5
	PassingQuality = 3
)

// EstimateQuality converts a review attempt's raw signals into a
// normalized 0-5 quality score.
//
// The score is a weighted sum of three normalized components:
//
//	accuracy:   the event's accuracy fraction, weight 0.6
//	speed:      max(0, 1 - latency/(2*optimal)), weight 0.2
//	difficulty: (6 - difficulty)/5, weight 0.2
//
// scaled by 5, rounded, and clamped to [0,5]. Malformed inputs (negative
// latency, out-of-range difficulty) are clamped at the boundary, never
// rejected.
func EstimateQuality(event *domain.ReviewEvent, params *Params) int {
	accuracy := clampFloat(event.Accuracy, 0, 1)

	latency := event.ResponseMs
	if latency < 0 {
		latency = 0
	}
	speed := math.Max(0, 1-latency/(2*params.OptimalResponseMs))

	difficulty := float64(clampInt(event.Difficulty, 1, 5))
	difficultyScore := (6 - difficulty) / 5

	weighted := accuracy*params.AccuracyWeight +
		speed*params.SpeedWeight +
		difficultyScore*params.DifficultyWeight

	return clampInt(int(math.Round(weighted*5)), MinQuality, MaxQuality)
}
