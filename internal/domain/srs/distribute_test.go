package srs

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lexikon-app/lexikon-api/internal/domain"
)

func scheduleOn(day time.Time, priority int, createdOffset time.Duration) *domain.ReviewSchedule {
	return &domain.ReviewSchedule{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		WordID:      uuid.New(),
		ScheduledAt: day,
		Priority:    priority,
		ReviewType:  domain.ReviewTypeSpacedRepetition,
		CreatedAt:   day.Add(-24*time.Hour + createdOffset),
	}
}

func groupByDay(schedules []*domain.ReviewSchedule) map[time.Time][]*domain.ReviewSchedule {
	byDay := make(map[time.Time][]*domain.ReviewSchedule)
	for _, s := range schedules {
		day := s.ScheduledAt.UTC().Truncate(24 * time.Hour)
		byDay[day] = append(byDay[day], s)
	}
	return byDay
}

func TestDistributeLoadOverflow(t *testing.T) {
	t.Parallel()
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	// 40 schedules on one day with cap 20: exactly 20 stay, the postponed
	// 20 move to the next day with priority reduced by one.
	schedules := make([]*domain.ReviewSchedule, 0, 40)
	for i := 0; i < 40; i++ {
		schedules = append(schedules, scheduleOn(day, 1+i%10, time.Duration(i)*time.Minute))
	}

	result := DistributeLoad(schedules, 20)

	if len(result) != 40 {
		t.Fatalf("Expected 40 entries conserved, got %d", len(result))
	}

	byDay := groupByDay(result)
	if got := len(byDay[day]); got != 20 {
		t.Errorf("Expected 20 entries on the original day, got %d", got)
	}
	if got := len(byDay[day.AddDate(0, 0, 1)]); got != 20 {
		t.Errorf("Expected 20 entries postponed to the next day, got %d", got)
	}

	original := make(map[uuid.UUID]int, len(schedules))
	for _, s := range schedules {
		original[s.ID] = s.Priority
	}
	for _, s := range byDay[day.AddDate(0, 0, 1)] {
		want := original[s.ID] - 1
		if want < 1 {
			want = 1
		}
		if s.Priority != want {
			t.Errorf("Postponed entry priority %d, want %d", s.Priority, want)
		}
	}
	for _, s := range byDay[day] {
		if s.Priority != original[s.ID] {
			t.Errorf("Entry under the cap must not change priority")
		}
	}
}

func TestDistributeLoadKeepsHighestPriorities(t *testing.T) {
	t.Parallel()
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	schedules := make([]*domain.ReviewSchedule, 0, 6)
	for i, p := range []int{9, 3, 7, 5, 8, 2} {
		schedules = append(schedules, scheduleOn(day, p, time.Duration(i)*time.Minute))
	}

	result := DistributeLoad(schedules, 3)

	byDay := groupByDay(result)
	kept := byDay[day]
	if len(kept) != 3 {
		t.Fatalf("Expected 3 entries kept, got %d", len(kept))
	}
	for _, s := range kept {
		if s.Priority < 7 {
			t.Errorf("Low priority %d kept while higher priorities were postponed", s.Priority)
		}
	}
}

func TestDistributeLoadSpreadsAcrossDays(t *testing.T) {
	t.Parallel()
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	// 50 on one day, cap 15: 15 stay, then the 35 postponed spread in
	// groups of at most 15 over the following days.
	schedules := make([]*domain.ReviewSchedule, 0, 50)
	for i := 0; i < 50; i++ {
		schedules = append(schedules, scheduleOn(day, 5, time.Duration(i)*time.Minute))
	}

	result := DistributeLoad(schedules, 15)

	if len(result) != 50 {
		t.Fatalf("Expected 50 entries conserved, got %d", len(result))
	}
	for d, group := range groupByDay(result) {
		if len(group) > 15 {
			t.Errorf("Day %v exceeds cap with %d entries", d, len(group))
		}
	}
}

func TestDistributeLoadCascades(t *testing.T) {
	t.Parallel()
	day1 := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	// Day one overflows into day two, which then overflows itself: the
	// cap must hold for every output day, not just the first.
	schedules := make([]*domain.ReviewSchedule, 0, 43)
	for i := 0; i < 25; i++ {
		schedules = append(schedules, scheduleOn(day1, 5, time.Duration(i)*time.Minute))
	}
	for i := 0; i < 18; i++ {
		schedules = append(schedules, scheduleOn(day2, 5, time.Duration(i)*time.Minute))
	}

	result := DistributeLoad(schedules, 20)

	if len(result) != 43 {
		t.Fatalf("Expected 43 entries conserved, got %d", len(result))
	}
	for d, group := range groupByDay(result) {
		if len(group) > 20 {
			t.Errorf("Day %v exceeds cap with %d entries", d, len(group))
		}
	}
	for _, s := range result {
		if s.Priority < MinPriority || s.Priority > MaxPriority {
			t.Errorf("Priority %d out of bounds", s.Priority)
		}
	}
}

func TestDistributeLoadUnderCapUntouched(t *testing.T) {
	t.Parallel()
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	schedules := []*domain.ReviewSchedule{
		scheduleOn(day, 5, 0),
		scheduleOn(day, 7, time.Minute),
		scheduleOn(day.AddDate(0, 0, 1), 3, 0),
	}

	result := DistributeLoad(schedules, 20)

	if len(result) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(result))
	}
	byID := make(map[uuid.UUID]*domain.ReviewSchedule)
	for _, s := range result {
		byID[s.ID] = s
	}
	for _, s := range schedules {
		got := byID[s.ID]
		if got == nil {
			t.Fatalf("Entry %v missing from output", s.ID)
		}
		if !got.ScheduledAt.Equal(s.ScheduledAt) || got.Priority != s.Priority {
			t.Errorf("Under-cap entry was modified: %+v vs %+v", got, s)
		}
	}
}
