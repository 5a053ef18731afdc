package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lexikon-app/lexikon-api/internal/events"
)

// ScheduleRebuildEventHandler turns schedule rebuild request events into
// queued tasks. It is registered on the event emitter at startup so
// services can request rebuilds without importing this package.
type ScheduleRebuildEventHandler struct {
	rebuilder ScheduleRebuilder
	queue     TaskQueueWriter
	logger    *slog.Logger
}

// NewScheduleRebuildEventHandler creates a handler that enqueues rebuild
// tasks onto the given queue.
func NewScheduleRebuildEventHandler(
	rebuilder ScheduleRebuilder,
	queue TaskQueueWriter,
	logger *slog.Logger,
) *ScheduleRebuildEventHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &ScheduleRebuildEventHandler{
		rebuilder: rebuilder,
		queue:     queue,
		logger:    logger.With(slog.String("component", "schedule_rebuild_event_handler")),
	}
}

// HandleEvent creates and enqueues a rebuild task for the user named in
// the event payload. Events of other types are ignored. A full queue is
// not an error worth failing the emit for: the next review or an explicit
// rebalance will regenerate the plan anyway.
func (h *ScheduleRebuildEventHandler) HandleEvent(
	ctx context.Context,
	event *events.TaskRequestEvent,
) error {
	if event.Type != TaskTypeScheduleRebuild {
		return nil
	}

	var payload scheduleRebuildPayload
	if err := event.UnmarshalPayload(&payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	if payload.UserID == uuid.Nil {
		return ErrEmptyUserID
	}

	rebuildTask, err := NewScheduleRebuildTask(payload.UserID, h.rebuilder, h.logger)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	if err := h.queue.Enqueue(rebuildTask); err != nil {
		if errors.Is(err, ErrQueueFull) {
			h.logger.Warn("dropping schedule rebuild, queue is full",
				slog.String("user_id", payload.UserID.String()))
			return nil
		}
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	h.logger.Debug("schedule rebuild enqueued",
		slog.String("task_id", rebuildTask.ID().String()),
		slog.String("user_id", payload.UserID.String()))
	return nil
}

// NewScheduleRebuildEvent builds the event a service emits to request a
// rebuild of the given user's plan.
func NewScheduleRebuildEvent(userID uuid.UUID) (*events.TaskRequestEvent, error) {
	return events.NewTaskRequestEvent(TaskTypeScheduleRebuild, scheduleRebuildPayload{UserID: userID})
}

var _ events.EventHandler = (*ScheduleRebuildEventHandler)(nil)
