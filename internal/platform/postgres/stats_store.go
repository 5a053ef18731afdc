package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/lexikon-app/lexikon-api/internal/domain"
	"github.com/lexikon-app/lexikon-api/internal/platform/logger"
	"github.com/lexikon-app/lexikon-api/internal/store"
)

// PostgresStatsStore implements the store.StatsStore interface
// using a PostgreSQL database as the storage backend.
type PostgresStatsStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresStatsStore creates a new PostgreSQL implementation of the
// StatsStore interface. If logger is nil, the process default is used.
func NewPostgresStatsStore(db store.DBTX, logger *slog.Logger) *PostgresStatsStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresStatsStore{
		db:     db,
		logger: logger.With(slog.String("component", "stats_store")),
	}
}

// Ensure PostgresStatsStore implements store.StatsStore interface
var _ store.StatsStore = (*PostgresStatsStore)(nil)

// Get implements store.StatsStore.Get
func (s *PostgresStatsStore) Get(ctx context.Context, userID uuid.UUID) (*domain.UserStats, error) {
	return s.get(ctx, userID, false)
}

// GetForUpdate implements store.StatsStore.GetForUpdate
// It acquires a row-level lock with SELECT FOR UPDATE, so it must run
// inside a transaction.
func (s *PostgresStatsStore) GetForUpdate(ctx context.Context, userID uuid.UUID) (*domain.UserStats, error) {
	return s.get(ctx, userID, true)
}

func (s *PostgresStatsStore) get(ctx context.Context, userID uuid.UUID, forUpdate bool) (*domain.UserStats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT user_id, total_reviews, correct_reviews, avg_response_ms,
			preferred_modality, current_streak, last_study_hour,
			last_studied_at, updated_at
		FROM user_stats
		WHERE user_id = $1
	`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var stats domain.UserStats
	var modality string
	var lastStudied sql.NullTime

	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&stats.UserID,
		&stats.TotalReviews,
		&stats.CorrectReviews,
		&stats.AvgResponseMs,
		&modality,
		&stats.CurrentStreak,
		&stats.LastStudyHour,
		&lastStudied,
		&stats.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user stats not found",
				slog.String("user_id", userID.String()))
			return nil, store.ErrNotFound
		}
		log.Error("failed to get user stats",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}

	stats.PreferredModality = domain.Modality(modality)
	if lastStudied.Valid {
		stats.LastStudiedAt = lastStudied.Time
	}
	return &stats, nil
}

// Upsert implements store.StatsStore.Upsert
func (s *PostgresStatsStore) Upsert(ctx context.Context, stats *domain.UserStats) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO user_stats (
			user_id, total_reviews, correct_reviews, avg_response_ms,
			preferred_modality, current_streak, last_study_hour,
			last_studied_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id) DO UPDATE SET
			total_reviews = EXCLUDED.total_reviews,
			correct_reviews = EXCLUDED.correct_reviews,
			avg_response_ms = EXCLUDED.avg_response_ms,
			preferred_modality = EXCLUDED.preferred_modality,
			current_streak = EXCLUDED.current_streak,
			last_study_hour = EXCLUDED.last_study_hour,
			last_studied_at = EXCLUDED.last_studied_at,
			updated_at = EXCLUDED.updated_at
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		stats.UserID,
		stats.TotalReviews,
		stats.CorrectReviews,
		stats.AvgResponseMs,
		stats.PreferredModality,
		stats.CurrentStreak,
		stats.LastStudyHour,
		nullableTime(stats.LastStudiedAt),
		stats.UpdatedAt,
	)

	if err != nil {
		log.Error("failed to upsert user stats",
			slog.String("error", err.Error()),
			slog.String("user_id", stats.UserID.String()))
		return MapError(err)
	}

	log.Debug("user stats upserted",
		slog.String("user_id", stats.UserID.String()),
		slog.Int("total_reviews", stats.TotalReviews))
	return nil
}

// WithTx implements store.StatsStore.WithTx
func (s *PostgresStatsStore) WithTx(tx *sql.Tx) store.StatsStore {
	return &PostgresStatsStore{
		db:     tx,
		logger: s.logger,
	}
}
