package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lexikon-app/lexikon-api/internal/domain"
)

// Common errors
var (
	ErrNilRebuilder = errors.New("schedule rebuilder cannot be nil")
	ErrNilLogger    = errors.New("logger cannot be nil")
	ErrEmptyUserID  = errors.New("user ID cannot be empty")
)

// ScheduleRebuilder is the slice of the scheduler service the rebuild
// task needs.
type ScheduleRebuilder interface {
	RebuildSchedule(
		ctx context.Context,
		userID uuid.UUID,
		maxPerDay int,
		now time.Time,
	) ([]*domain.ReviewSchedule, error)
}

// scheduleRebuildPayload is the serialized task data.
type scheduleRebuildPayload struct {
	UserID uuid.UUID `json:"user_id"`
}

// ScheduleRebuildTask implements the Task interface for rebuilding one
// user's forward review plan.
type ScheduleRebuildTask struct {
	id        uuid.UUID
	userID    uuid.UUID
	rebuilder ScheduleRebuilder
	logger    *slog.Logger
	status    TaskStatus
}

// NewScheduleRebuildTask creates a schedule rebuild task for the given user.
func NewScheduleRebuildTask(
	userID uuid.UUID,
	rebuilder ScheduleRebuilder,
	logger *slog.Logger,
) (*ScheduleRebuildTask, error) {
	if rebuilder == nil {
		return nil, ErrNilRebuilder
	}
	if logger == nil {
		return nil, ErrNilLogger
	}
	if userID == uuid.Nil {
		return nil, ErrEmptyUserID
	}

	return &ScheduleRebuildTask{
		id:        uuid.New(),
		userID:    userID,
		rebuilder: rebuilder,
		logger: logger.With(
			slog.String("task_type", TaskTypeScheduleRebuild),
			slog.String("user_id", userID.String())),
		status: TaskStatusPending,
	}, nil
}

// ID returns the task's unique identifier
func (t *ScheduleRebuildTask) ID() uuid.UUID {
	return t.id
}

// Type returns the task type identifier
func (t *ScheduleRebuildTask) Type() string {
	return TaskTypeScheduleRebuild
}

// Payload returns the serialized task data.
func (t *ScheduleRebuildTask) Payload() []byte {
	payload := scheduleRebuildPayload{UserID: t.userID}
	data, err := json.Marshal(payload)
	if err != nil {
		// Marshaling a struct of plain values cannot fail at runtime.
		t.logger.Error("failed to marshal payload", slog.String("error", err.Error()))
		return nil
	}
	return data
}

// Status returns the current task status
func (t *ScheduleRebuildTask) Status() TaskStatus {
	return t.status
}

// Execute rebuilds the user's schedule with the engine's default daily cap.
func (t *ScheduleRebuildTask) Execute(ctx context.Context) error {
	t.status = TaskStatusProcessing

	entries, err := t.rebuilder.RebuildSchedule(ctx, t.userID, 0, time.Now().UTC())
	if err != nil {
		t.status = TaskStatusFailed
		return fmt.Errorf("failed to rebuild schedule: %w", err)
	}

	t.status = TaskStatusCompleted
	t.logger.Debug("schedule rebuilt", slog.Int("entries", len(entries)))
	return nil
}
