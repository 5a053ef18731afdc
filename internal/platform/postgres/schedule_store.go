package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lexikon-app/lexikon-api/internal/domain"
	"github.com/lexikon-app/lexikon-api/internal/platform/logger"
	"github.com/lexikon-app/lexikon-api/internal/store"
)

// PostgresScheduleStore implements the store.ScheduleStore interface
// using a PostgreSQL database as the storage backend.
type PostgresScheduleStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresScheduleStore creates a new PostgreSQL implementation of the
// ScheduleStore interface. If logger is nil, the process default is used.
func NewPostgresScheduleStore(db store.DBTX, logger *slog.Logger) *PostgresScheduleStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresScheduleStore{
		db:     db,
		logger: logger.With(slog.String("component", "schedule_store")),
	}
}

// Ensure PostgresScheduleStore implements store.ScheduleStore interface
var _ store.ScheduleStore = (*PostgresScheduleStore)(nil)

// Create implements store.ScheduleStore.Create
func (s *PostgresScheduleStore) Create(ctx context.Context, schedule *domain.ReviewSchedule) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := schedule.Validate(); err != nil {
		log.Warn("schedule validation failed during create",
			slog.String("error", err.Error()),
			slog.String("schedule_id", schedule.ID.String()))
		return err
	}

	query := `
		INSERT INTO review_schedules (id, user_id, word_id, scheduled_at, priority, review_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		schedule.ID,
		schedule.UserID,
		schedule.WordID,
		schedule.ScheduledAt,
		schedule.Priority,
		schedule.ReviewType,
		schedule.CreatedAt,
	)

	if err != nil {
		log.Error("failed to create review schedule",
			slog.String("error", err.Error()),
			slog.String("schedule_id", schedule.ID.String()))
		return MapError(err)
	}

	log.Debug("review schedule created",
		slog.String("schedule_id", schedule.ID.String()),
		slog.String("user_id", schedule.UserID.String()))
	return nil
}

// CreateBatch implements store.ScheduleStore.CreateBatch
// All entries are written with a single multi-row INSERT.
func (s *PostgresScheduleStore) CreateBatch(ctx context.Context, schedules []*domain.ReviewSchedule) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(schedules) == 0 {
		return nil
	}

	for _, schedule := range schedules {
		if err := schedule.Validate(); err != nil {
			log.Warn("schedule validation failed during batch create",
				slog.String("error", err.Error()),
				slog.String("schedule_id", schedule.ID.String()))
			return err
		}
	}

	var sb strings.Builder
	sb.WriteString(`
		INSERT INTO review_schedules (id, user_id, word_id, scheduled_at, priority, review_type, created_at)
		VALUES `)

	args := make([]any, 0, len(schedules)*7)
	for i, schedule := range schedules {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 7
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7)
		args = append(args,
			schedule.ID,
			schedule.UserID,
			schedule.WordID,
			schedule.ScheduledAt,
			schedule.Priority,
			schedule.ReviewType,
			schedule.CreatedAt,
		)
	}

	_, err := s.db.ExecContext(ctx, sb.String(), args...)
	if err != nil {
		log.Error("failed to batch create review schedules",
			slog.String("error", err.Error()),
			slog.Int("count", len(schedules)))
		return MapError(err)
	}

	log.Info("review schedules batch created",
		slog.String("user_id", schedules[0].UserID.String()),
		slog.Int("count", len(schedules)))
	return nil
}

// GetByID implements store.ScheduleStore.GetByID
// Returns store.ErrScheduleNotFound if the entry does not exist.
func (s *PostgresScheduleStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.ReviewSchedule, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, word_id, scheduled_at, priority, review_type, created_at
		FROM review_schedules
		WHERE id = $1
	`

	var schedule domain.ReviewSchedule
	var reviewType string

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&schedule.ID,
		&schedule.UserID,
		&schedule.WordID,
		&schedule.ScheduledAt,
		&schedule.Priority,
		&reviewType,
		&schedule.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("schedule not found", slog.String("schedule_id", id.String()))
			return nil, store.ErrScheduleNotFound
		}
		log.Error("failed to get schedule by ID",
			slog.String("error", err.Error()),
			slog.String("schedule_id", id.String()))
		return nil, err
	}

	schedule.ReviewType = domain.ReviewType(reviewType)
	return &schedule, nil
}

// ListByUser implements store.ScheduleStore.ListByUser
func (s *PostgresScheduleStore) ListByUser(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*domain.ReviewSchedule, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, word_id, scheduled_at, priority, review_type, created_at
		FROM review_schedules
		WHERE user_id = $1 AND scheduled_at >= $2 AND scheduled_at < $3
		ORDER BY scheduled_at, priority DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		log.Error("failed to query schedules by user",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	schedules := []*domain.ReviewSchedule{}
	for rows.Next() {
		var schedule domain.ReviewSchedule
		var reviewType string

		err := rows.Scan(
			&schedule.ID,
			&schedule.UserID,
			&schedule.WordID,
			&schedule.ScheduledAt,
			&schedule.Priority,
			&reviewType,
			&schedule.CreatedAt,
		)
		if err != nil {
			log.Error("failed to scan schedule row",
				slog.String("error", err.Error()))
			return nil, err
		}

		schedule.ReviewType = domain.ReviewType(reviewType)
		schedules = append(schedules, &schedule)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	return schedules, nil
}

// DeleteByUser implements store.ScheduleStore.DeleteByUser
// Deleting zero rows is not an error: a fresh user simply has no plan yet.
func (s *PostgresScheduleStore) DeleteByUser(ctx context.Context, userID uuid.UUID, from time.Time) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(
		ctx,
		`DELETE FROM review_schedules WHERE user_id = $1 AND scheduled_at >= $2`,
		userID,
		from,
	)
	if err != nil {
		log.Error("failed to delete schedules by user",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return MapError(err)
	}

	if deleted, err := result.RowsAffected(); err == nil {
		log.Debug("deleted schedules for user",
			slog.String("user_id", userID.String()),
			slog.Int64("count", deleted))
	}
	return nil
}

// WithTx implements store.ScheduleStore.WithTx
func (s *PostgresScheduleStore) WithTx(tx *sql.Tx) store.ScheduleStore {
	return &PostgresScheduleStore{
		db:     tx,
		logger: s.logger,
	}
}
