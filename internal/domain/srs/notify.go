package srs

import (
	"fmt"
	"time"

	"github.com/lexikon-app/lexikon-api/internal/domain"
)

// NotificationAdvice is the advisor's full output for one user: when to
// notify, how often, what to say, and whether right now is an acceptable
// moment. The advisor only decides content and timing; delivery is an
// external concern.
type NotificationAdvice struct {
	Hour           int                 `json:"hour"`
	Minute         int                 `json:"minute"`
	DailyCount     int                 `json:"daily_count"`
	IntervalHours  int                 `json:"interval_hours"`
	Title          string              `json:"title"`
	Body           string              `json:"body"`
	Payload        NotificationPayload `json:"payload"`
	AppropriateNow bool                `json:"appropriate_now"`
}

// NotificationPayload is the structured data attached to a notification.
type NotificationPayload struct {
	DueCount     int `json:"due_count"`
	OverdueCount int `json:"overdue_count"`
	Streak       int `json:"streak"`
}

// AdviseNotification combines the advisor's individual heuristics over a
// queue snapshot and the user's study statistics.
func AdviseNotification(
	queue []QueueItem,
	stats *domain.UserStats,
	tier domain.NotificationTier,
	now time.Time,
	params *Params,
) *NotificationAdvice {
	hour, minute := OptimalNotificationTime(stats, params)

	count, interval := RecommendFrequency(tier, len(queue), params)

	overdue := 0
	for _, item := range queue {
		if daysBetween(item.NextReviewAt, now) > 0 {
			overdue++
		}
	}

	title, body := notificationText(len(queue), overdue, stats)

	return &NotificationAdvice{
		Hour:          hour,
		Minute:        minute,
		DailyCount:    count,
		IntervalHours: interval,
		Title:         title,
		Body:          body,
		Payload: NotificationPayload{
			DueCount:     len(queue),
			OverdueCount: overdue,
			Streak:       streakOf(stats),
		},
		AppropriateNow: IsAppropriateTime(now, params),
	}
}

// OptimalNotificationTime suggests the time of day to notify based on when
// the user last studied: morning studiers (05-11) are pinged at the same
// hour, afternoon studiers (12-17) the next morning at the default hour,
// and evening or night studiers at the evening hour. Users without any
// history get the default hour.
func OptimalNotificationTime(stats *domain.UserStats, params *Params) (hour, minute int) {
	if stats == nil || !stats.HasHistory() {
		return params.DefaultNotifyHour, 0
	}

	switch h := stats.LastStudyHour; {
	case h >= 5 && h < 12:
		return h, 0
	case h >= 12 && h < 18:
		return params.DefaultNotifyHour, 0
	default:
		return params.EveningNotifyHour, 0
	}
}

// RecommendFrequency converts a user's notification tier and current queue
// size into a daily notification count and spacing. A queue past twice
// the daily cap adds one notification; a nearly empty queue removes one.
// The count is bounded to [1,4] and notifications are spread across a
// 14-hour waking window with at least 3 hours between them.
func RecommendFrequency(
	tier domain.NotificationTier,
	queueSize int,
	params *Params,
) (dailyCount, intervalHours int) {
	switch tier {
	case domain.NotificationTierLow:
		dailyCount = 1
	case domain.NotificationTierHigh:
		dailyCount = 3
	default:
		dailyCount = 2
	}

	if queueSize > 2*params.DailyReviewCap {
		dailyCount++
	} else if queueSize < 5 {
		dailyCount--
	}
	dailyCount = clampInt(dailyCount, 1, 4)

	intervalHours = 14 / dailyCount
	if intervalHours < 3 {
		intervalHours = 3
	}
	return dailyCount, intervalHours
}

// IsAppropriateTime reports whether t falls outside the configured quiet
// hours. Quiet windows may wrap midnight (e.g. 22:00-08:00).
func IsAppropriateTime(t time.Time, params *Params) bool {
	hour := t.Hour()
	start, end := params.QuietHourStart, params.QuietHourEnd

	if start == end {
		// Degenerate config: no quiet window.
		return true
	}

	if start < end {
		// Quiet window within a single day.
		return hour < start || hour >= end
	}

	// Window wraps midnight.
	return hour >= end && hour < start
}

// notificationText builds the user-facing title and body for a reminder.
func notificationText(due, overdue int, stats *domain.UserStats) (title, body string) {
	switch {
	case due == 0:
		title = "All caught up!"
		body = "No words waiting for review. Add new vocabulary to keep growing."
	case overdue > 0:
		title = fmt.Sprintf("%d words need attention", due)
		body = fmt.Sprintf("%d of them are overdue. A quick session now keeps them fresh.", overdue)
	default:
		title = fmt.Sprintf("%d words ready for review", due)
		body = "Your daily review is ready. It only takes a few minutes."
	}

	if streak := streakOf(stats); streak > 1 && due > 0 {
		body += fmt.Sprintf(" Keep your %d-day streak going!", streak)
	}
	return title, body
}

func streakOf(stats *domain.UserStats) int {
	if stats == nil {
		return 0
	}
	return stats.CurrentStreak
}
