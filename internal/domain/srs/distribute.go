package srs

import (
	"sort"
	"time"

	"github.com/lexikon-app/lexikon-api/internal/domain"
)

// DistributeLoad caps the number of reviews scheduled per calendar day,
// postponing the overflow to subsequent days.
//
// Entries are grouped by scheduled date. For a day exceeding maxPerDay,
// the entries are ordered by priority descending (ties broken by creation
// time, earlier first), the top maxPerDay stay untouched, and each
// postponed entry at index i within the overflow is moved forward by
// floor(i/maxPerDay)+1 days with its priority reduced by one, floored at
// 1. Days are processed in ascending order so postponed work is folded
// into later days before those are checked against the cap.
//
// The input is never mutated; modified entries are copies. The returned
// list has exactly as many entries as the input and no output day exceeds
// maxPerDay.
func DistributeLoad(schedules []*domain.ReviewSchedule, maxPerDay int) []*domain.ReviewSchedule {
	if maxPerDay <= 0 || len(schedules) == 0 {
		return schedules
	}

	byDay := make(map[time.Time][]*domain.ReviewSchedule)
	for _, s := range schedules {
		day := s.ScheduledAt.UTC().Truncate(24 * time.Hour)
		byDay[day] = append(byDay[day], s)
	}

	days := make([]time.Time, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	for i := 0; i < len(days); i++ {
		day := days[i]
		group := byDay[day]
		if len(group) <= maxPerDay {
			continue
		}

		sort.SliceStable(group, func(a, b int) bool {
			if group[a].Priority != group[b].Priority {
				return group[a].Priority > group[b].Priority
			}
			return group[a].CreatedAt.Before(group[b].CreatedAt)
		})

		byDay[day] = group[:maxPerDay]

		for j, overflow := range group[maxPerDay:] {
			target := day.AddDate(0, 0, j/maxPerDay+1)

			moved := *overflow
			moved.ScheduledAt = target
			if moved.Priority > MinPriority {
				moved.Priority--
			}

			if _, seen := byDay[target]; !seen {
				days = append(days, target)
			}
			byDay[target] = append(byDay[target], &moved)
		}

		// Newly created days are always later than the current one, so
		// re-sorting the unprocessed tail keeps ascending order.
		rest := days[i+1:]
		sort.Slice(rest, func(a, b int) bool { return rest[a].Before(rest[b]) })
	}

	result := make([]*domain.ReviewSchedule, 0, len(schedules))
	for _, day := range days {
		result = append(result, byDay[day]...)
	}
	return result
}
