package srs

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lexikon-app/lexikon-api/internal/domain"
)

func TestOptimalNotificationTime(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	testCases := []struct {
		name          string
		stats         *domain.UserStats
		expectedHour  int
	}{
		{
			name:         "no history defaults to morning",
			stats:        nil,
			expectedHour: 9,
		},
		{
			name:         "fresh stats default to morning",
			stats:        &domain.UserStats{LastStudyHour: -1},
			expectedHour: 9,
		},
		{
			name:         "morning studier keeps their hour",
			stats:        &domain.UserStats{TotalReviews: 10, LastStudyHour: 7},
			expectedHour: 7,
		},
		{
			name:         "afternoon studier moves to default morning slot",
			stats:        &domain.UserStats{TotalReviews: 10, LastStudyHour: 14},
			expectedHour: 9,
		},
		{
			name:         "evening studier gets the evening slot",
			stats:        &domain.UserStats{TotalReviews: 10, LastStudyHour: 20},
			expectedHour: 19,
		},
		{
			name:         "night owl gets the evening slot",
			stats:        &domain.UserStats{TotalReviews: 10, LastStudyHour: 2},
			expectedHour: 19,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			hour, minute := OptimalNotificationTime(tc.stats, params)

			if hour != tc.expectedHour || minute != 0 {
				t.Errorf("Expected %02d:00, got %02d:%02d", tc.expectedHour, hour, minute)
			}
		})
	}
}

func TestRecommendFrequency(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	testCases := []struct {
		name          string
		tier          domain.NotificationTier
		queueSize     int
		expectedCount int
	}{
		{name: "low tier normal queue", tier: domain.NotificationTierLow, queueSize: 10, expectedCount: 1},
		{name: "medium tier normal queue", tier: domain.NotificationTierMedium, queueSize: 10, expectedCount: 2},
		{name: "high tier normal queue", tier: domain.NotificationTierHigh, queueSize: 10, expectedCount: 3},
		{name: "huge queue adds one", tier: domain.NotificationTierMedium, queueSize: 50, expectedCount: 3},
		{name: "tiny queue removes one", tier: domain.NotificationTierMedium, queueSize: 2, expectedCount: 1},
		{name: "low tier tiny queue floors at one", tier: domain.NotificationTierLow, queueSize: 0, expectedCount: 1},
		{name: "high tier huge queue caps at four", tier: domain.NotificationTierHigh, queueSize: 100, expectedCount: 4},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			count, interval := RecommendFrequency(tc.tier, tc.queueSize, params)

			if count != tc.expectedCount {
				t.Errorf("Expected count %d, got %d", tc.expectedCount, count)
			}
			if interval < 3 {
				t.Errorf("Interval %d below the 3 hour floor", interval)
			}
			if count > 1 && interval > 14 {
				t.Errorf("Interval %d cannot spread %d notifications over a day", interval, count)
			}
		})
	}
}

func TestIsAppropriateTime(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	at := func(hour int) time.Time { return day.Add(time.Duration(hour) * time.Hour) }

	t.Run("default window wraps midnight", func(t *testing.T) {
		params := NewDefaultParams() // quiet 22:00-08:00

		quiet := []int{22, 23, 0, 3, 7}
		for _, h := range quiet {
			if IsAppropriateTime(at(h), params) {
				t.Errorf("Hour %02d should be quiet", h)
			}
		}

		loud := []int{8, 12, 18, 21}
		for _, h := range loud {
			if !IsAppropriateTime(at(h), params) {
				t.Errorf("Hour %02d should be appropriate", h)
			}
		}
	})

	t.Run("same-day window", func(t *testing.T) {
		params := NewParams(ParamsConfig{QuietHourStart: 13, QuietHourEnd: 15})

		if IsAppropriateTime(at(14), params) {
			t.Error("Hour 14 should be quiet")
		}
		if !IsAppropriateTime(at(16), params) {
			t.Error("Hour 16 should be appropriate")
		}
		if !IsAppropriateTime(at(12), params) {
			t.Error("Hour 12 should be appropriate")
		}
	})
}

func TestAdviseNotification(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	queue := []QueueItem{
		{WordID: uuid.New(), Priority: 8, NextReviewAt: now.AddDate(0, 0, -2)}, // overdue
		{WordID: uuid.New(), Priority: 6, NextReviewAt: now.Add(-time.Hour)},   // due today
		{WordID: uuid.New(), Priority: 5, NextReviewAt: now.Add(-2 * time.Hour)},
	}
	stats := &domain.UserStats{
		TotalReviews:  40,
		CurrentStreak: 6,
		LastStudyHour: 8,
	}

	advice := AdviseNotification(queue, stats, domain.NotificationTierMedium, now, params)

	if advice.Payload.DueCount != 3 {
		t.Errorf("Expected due count 3, got %d", advice.Payload.DueCount)
	}
	if advice.Payload.OverdueCount != 1 {
		t.Errorf("Expected overdue count 1, got %d", advice.Payload.OverdueCount)
	}
	if advice.Payload.Streak != 6 {
		t.Errorf("Expected streak 6, got %d", advice.Payload.Streak)
	}
	if advice.Hour != 8 {
		t.Errorf("Expected morning hour 8, got %d", advice.Hour)
	}
	if !advice.AppropriateNow {
		t.Error("Noon should be an appropriate time")
	}
	if !strings.Contains(advice.Body, "overdue") {
		t.Errorf("Body should mention overdue items: %q", advice.Body)
	}
	if !strings.Contains(advice.Body, "6-day streak") {
		t.Errorf("Body should mention the streak: %q", advice.Body)
	}
}

func TestAdviseNotificationEmptyQueue(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Date(2024, 3, 10, 23, 30, 0, 0, time.UTC)

	advice := AdviseNotification(nil, nil, domain.NotificationTierLow, now, params)

	if advice.Payload.DueCount != 0 || advice.Payload.OverdueCount != 0 {
		t.Errorf("Expected empty payload, got %+v", advice.Payload)
	}
	if advice.AppropriateNow {
		t.Error("Late night must not be an appropriate time")
	}
	if advice.DailyCount != 1 {
		t.Errorf("Expected daily count floor of 1, got %d", advice.DailyCount)
	}
	if !strings.Contains(advice.Title, "caught up") {
		t.Errorf("Empty queue title should celebrate: %q", advice.Title)
	}
}
