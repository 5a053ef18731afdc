package srs

import (
	"testing"
	"time"

	"github.com/lexikon-app/lexikon-api/internal/domain"
)

// evenHistory builds n sessions with the given accuracy, spaced exactly
// one day apart ending at the anchor date.
func evenHistory(n int, accuracy float64) []domain.ReviewSession {
	anchor := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	history := make([]domain.ReviewSession, n)
	for i := range history {
		history[i] = domain.ReviewSession{
			Accuracy:   accuracy,
			ReviewedAt: anchor.AddDate(0, 0, i-n),
		}
	}
	return history
}

func TestEstimateMastery(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	testCases := []struct {
		name     string
		state    *domain.ReviewState
		history  []domain.ReviewSession
		expected int
	}{
		{
			name:     "fresh item scores zero",
			state:    &domain.ReviewState{},
			history:  nil,
			expected: 0,
		},
		{
			name: "perfect steady learner near the top",
			state: &domain.ReviewState{
				ReviewCount:    10,
				CorrectAnswers: 10,
				Repetitions:    10,
			},
			history:  evenHistory(5, 1.0),
			expected: 100, // 40 + 30 + 20 + 20
		},
		{
			name: "decent accuracy with even habits",
			state: &domain.ReviewState{
				ReviewCount:    10,
				CorrectAnswers: 8,
				Repetitions:    5,
			},
			history:  evenHistory(5, 1.0),
			expected: 92, // 32 + 30 + 20 + 10
		},
		{
			name: "no consistency bonus below three sessions",
			state: &domain.ReviewState{
				ReviewCount:    2,
				CorrectAnswers: 2,
				Repetitions:    2,
			},
			history:  evenHistory(2, 1.0),
			expected: 74, // 40 + 30 + 0 + 4
		},
		{
			name: "difficulty adjustments scale the total",
			state: &domain.ReviewState{
				ReviewCount:           10,
				CorrectAnswers:        5,
				Repetitions:           0,
				DifficultyAdjustments: 2,
			},
			history:  nil,
			expected: 24, // (0.5*40) * 1.2
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := EstimateMastery(tc.state, tc.history, params)

			if got != tc.expected {
				t.Errorf("Expected mastery %d, got %d", tc.expected, got)
			}
			if got < 0 || got > 100 {
				t.Errorf("Mastery %d outside [0,100]", got)
			}
		})
	}
}

func TestEstimateMasteryRecentWindow(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	// Only the last five sessions count toward the recent term: old
	// failures must not drag the score once recent accuracy recovers.
	state := &domain.ReviewState{ReviewCount: 20, CorrectAnswers: 10}

	history := append(evenHistory(10, 0.0), evenHistory(5, 1.0)...)
	for i := range history {
		// Re-space timestamps so the combined slice stays ordered.
		history[i].ReviewedAt = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC).AddDate(0, 0, i)
	}

	recovered := EstimateMastery(state, history, params)
	struggling := EstimateMastery(state, evenHistory(5, 0.0), params)

	if recovered <= struggling {
		t.Errorf(
			"Recent recovery should outscore recent failures: recovered %d, struggling %d",
			recovered, struggling,
		)
	}
}

func TestConsistencyBonus(t *testing.T) {
	t.Parallel()

	even := evenHistory(6, 1.0)
	if got := consistencyBonus(even); got != 20 {
		t.Errorf("Evenly spaced sessions should earn the full bonus, got %v", got)
	}

	// Wildly uneven gaps: 1 day then 29 days, repeated.
	anchor := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	uneven := make([]domain.ReviewSession, 0, 6)
	day := 0
	for i := 0; i < 6; i++ {
		uneven = append(uneven, domain.ReviewSession{ReviewedAt: anchor.AddDate(0, 0, day)})
		if i%2 == 0 {
			day++
		} else {
			day += 29
		}
	}

	if got := consistencyBonus(uneven); got >= 20 {
		t.Errorf("Uneven sessions should lose bonus, got %v", got)
	}

	if got := consistencyBonus(evenHistory(2, 1.0)); got != 0 {
		t.Errorf("Fewer than three sessions should earn nothing, got %v", got)
	}
}
