package srs

import (
	"testing"
	"time"

	"github.com/lexikon-app/lexikon-api/internal/domain"
)

func TestEstimateQuality(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	testCases := []struct {
		name       string
		accuracy   float64
		responseMs float64
		difficulty int
		expected   int
	}{
		{
			name:       "perfect fast easy answer scores 5",
			accuracy:   1.0,
			responseMs: 0,
			difficulty: 1,
			expected:   5,
		},
		{
			name:       "wrong slow hard answer scores 0",
			accuracy:   0,
			responseMs: 60000,
			difficulty: 5,
			expected:   0, // only the difficulty term contributes 0.2*0.2*5 = 0.2
		},
		{
			name:       "typical good answer",
			accuracy:   0.8,
			responseMs: 3000,
			difficulty: 3,
			expected:   4, // 0.48 + 0.1 + 0.12 = 0.7 -> 3.5 rounds to 4
		},
		{
			name:       "correct but slow and hard",
			accuracy:   1.0,
			responseMs: 6000,
			difficulty: 5,
			expected:   3, // 0.6 + 0 + 0.04 = 0.64 -> 3.2 rounds to 3
		},
		{
			name:       "negative latency clamps to full speed score",
			accuracy:   1.0,
			responseMs: -500,
			difficulty: 1,
			expected:   5,
		},
		{
			name:       "accuracy above 1 is clamped",
			accuracy:   3.0,
			responseMs: 0,
			difficulty: 1,
			expected:   5,
		},
		{
			name:       "difficulty out of range is clamped",
			accuracy:   1.0,
			responseMs: 0,
			difficulty: 99,
			expected:   4, // difficulty clamps to 5: 0.6 + 0.2 + 0.04 = 0.84 -> 4.2
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			event := &domain.ReviewEvent{
				Accuracy:   tc.accuracy,
				ResponseMs: tc.responseMs,
				Difficulty: tc.difficulty,
				OccurredAt: now,
			}

			quality := EstimateQuality(event, params)

			if quality != tc.expected {
				t.Errorf("Expected quality %d, got %d", tc.expected, quality)
			}
			if quality < MinQuality || quality > MaxQuality {
				t.Errorf("Quality %d outside [%d,%d]", quality, MinQuality, MaxQuality)
			}
		})
	}
}

func TestEstimateQualitySpeedDecay(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	// The speed score must decay to zero at twice the optimal latency and
	// never go negative beyond it.
	atLimit := &domain.ReviewEvent{Accuracy: 1, ResponseMs: 2 * params.OptimalResponseMs, Difficulty: 1}
	pastLimit := &domain.ReviewEvent{Accuracy: 1, ResponseMs: 10 * params.OptimalResponseMs, Difficulty: 1}

	if got, want := EstimateQuality(atLimit, params), EstimateQuality(pastLimit, params); got != want {
		t.Errorf("Speed score should floor at zero: at-limit %d, past-limit %d", got, want)
	}
}
