package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lexikon-app/lexikon-api/internal/domain"
)

// ScheduleStore defines the interface for review schedule persistence.
// Schedules are the forward-looking plan produced by the scheduler service;
// they are replaced wholesale when a user's plan is rebalanced.
type ScheduleStore interface {
	// Create saves a new review schedule entry.
	// It handles domain validation internally.
	Create(ctx context.Context, schedule *domain.ReviewSchedule) error

	// CreateBatch saves a set of schedule entries in one statement.
	// An empty slice is a no-op.
	CreateBatch(ctx context.Context, schedules []*domain.ReviewSchedule) error

	// GetByID retrieves a schedule entry by its unique ID.
	// Returns ErrScheduleNotFound if the entry does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ReviewSchedule, error)

	// ListByUser retrieves a user's schedule entries between the two times,
	// ordered by scheduled time ascending then priority descending.
	ListByUser(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*domain.ReviewSchedule, error)

	// DeleteByUser removes all of a user's schedule entries scheduled at or
	// after the given time. Used before writing a rebalanced plan.
	DeleteByUser(ctx context.Context, userID uuid.UUID, from time.Time) error

	// WithTx returns a new ScheduleStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) ScheduleStore
}
