package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lexikon-app/lexikon-api/internal/domain"
	"github.com/lexikon-app/lexikon-api/internal/events"
	"github.com/lexikon-app/lexikon-api/internal/store"
)

// Hand-rolled store mocks with function fields. Tests set only the
// functions the code under test is expected to call; anything else
// panics with a nil function call, which is the point.

type mockUserStore struct {
	createFn     func(ctx context.Context, user *domain.User) error
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	getByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	updateFn     func(ctx context.Context, user *domain.User) error
	deleteFn     func(ctx context.Context, id uuid.UUID) error
}

func (m *mockUserStore) Create(ctx context.Context, user *domain.User) error {
	return m.createFn(ctx, user)
}

func (m *mockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.getByEmailFn(ctx, email)
}

func (m *mockUserStore) Update(ctx context.Context, user *domain.User) error {
	return m.updateFn(ctx, user)
}

func (m *mockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

func (m *mockUserStore) WithTx(tx *sql.Tx) store.UserStore { return m }

type mockWordStore struct {
	createFn     func(ctx context.Context, word *domain.Word) error
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.Word, error)
	listByUserFn func(ctx context.Context, userID uuid.UUID) ([]*domain.Word, error)
	updateFn     func(ctx context.Context, word *domain.Word) error
	deleteFn     func(ctx context.Context, id uuid.UUID) error
}

func (m *mockWordStore) Create(ctx context.Context, word *domain.Word) error {
	return m.createFn(ctx, word)
}

func (m *mockWordStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockWordStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Word, error) {
	return m.listByUserFn(ctx, userID)
}

func (m *mockWordStore) Update(ctx context.Context, word *domain.Word) error {
	return m.updateFn(ctx, word)
}

func (m *mockWordStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

func (m *mockWordStore) WithTx(tx *sql.Tx) store.WordStore { return m }

type mockReviewStateStore struct {
	createFn       func(ctx context.Context, state *domain.ReviewState) error
	getFn          func(ctx context.Context, userID, wordID uuid.UUID) (*domain.ReviewState, error)
	getForUpdateFn func(ctx context.Context, userID, wordID uuid.UUID) (*domain.ReviewState, error)
	listDueFn      func(ctx context.Context, userID uuid.UUID, dueBefore time.Time) ([]*domain.ReviewState, error)
	listByUserFn   func(ctx context.Context, userID uuid.UUID) ([]*domain.ReviewState, error)
	updateFn       func(ctx context.Context, state *domain.ReviewState) error
	deleteFn       func(ctx context.Context, userID, wordID uuid.UUID) error
}

func (m *mockReviewStateStore) Create(ctx context.Context, state *domain.ReviewState) error {
	return m.createFn(ctx, state)
}

func (m *mockReviewStateStore) Get(ctx context.Context, userID, wordID uuid.UUID) (*domain.ReviewState, error) {
	return m.getFn(ctx, userID, wordID)
}

func (m *mockReviewStateStore) GetForUpdate(ctx context.Context, userID, wordID uuid.UUID) (*domain.ReviewState, error) {
	return m.getForUpdateFn(ctx, userID, wordID)
}

func (m *mockReviewStateStore) ListDue(ctx context.Context, userID uuid.UUID, dueBefore time.Time) ([]*domain.ReviewState, error) {
	return m.listDueFn(ctx, userID, dueBefore)
}

func (m *mockReviewStateStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.ReviewState, error) {
	return m.listByUserFn(ctx, userID)
}

func (m *mockReviewStateStore) Update(ctx context.Context, state *domain.ReviewState) error {
	return m.updateFn(ctx, state)
}

func (m *mockReviewStateStore) Delete(ctx context.Context, userID, wordID uuid.UUID) error {
	return m.deleteFn(ctx, userID, wordID)
}

func (m *mockReviewStateStore) WithTx(tx *sql.Tx) store.ReviewStateStore { return m }

type mockSessionStore struct {
	createFn     func(ctx context.Context, session *domain.ReviewSession) error
	listByWordFn func(ctx context.Context, userID, wordID uuid.UUID, limit int) ([]domain.ReviewSession, error)
	listByUserFn func(ctx context.Context, userID uuid.UUID) ([]domain.ReviewSession, error)
}

func (m *mockSessionStore) Create(ctx context.Context, session *domain.ReviewSession) error {
	return m.createFn(ctx, session)
}

func (m *mockSessionStore) ListByWord(ctx context.Context, userID, wordID uuid.UUID, limit int) ([]domain.ReviewSession, error) {
	return m.listByWordFn(ctx, userID, wordID, limit)
}

func (m *mockSessionStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.ReviewSession, error) {
	return m.listByUserFn(ctx, userID)
}

func (m *mockSessionStore) WithTx(tx *sql.Tx) store.SessionStore { return m }

type mockScheduleStore struct {
	createFn       func(ctx context.Context, schedule *domain.ReviewSchedule) error
	createBatchFn  func(ctx context.Context, schedules []*domain.ReviewSchedule) error
	getByIDFn      func(ctx context.Context, id uuid.UUID) (*domain.ReviewSchedule, error)
	listByUserFn   func(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*domain.ReviewSchedule, error)
	deleteByUserFn func(ctx context.Context, userID uuid.UUID, from time.Time) error
}

func (m *mockScheduleStore) Create(ctx context.Context, schedule *domain.ReviewSchedule) error {
	return m.createFn(ctx, schedule)
}

func (m *mockScheduleStore) CreateBatch(ctx context.Context, schedules []*domain.ReviewSchedule) error {
	return m.createBatchFn(ctx, schedules)
}

func (m *mockScheduleStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.ReviewSchedule, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockScheduleStore) ListByUser(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*domain.ReviewSchedule, error) {
	return m.listByUserFn(ctx, userID, from, to)
}

func (m *mockScheduleStore) DeleteByUser(ctx context.Context, userID uuid.UUID, from time.Time) error {
	return m.deleteByUserFn(ctx, userID, from)
}

func (m *mockScheduleStore) WithTx(tx *sql.Tx) store.ScheduleStore { return m }

type mockStatsStore struct {
	getFn          func(ctx context.Context, userID uuid.UUID) (*domain.UserStats, error)
	getForUpdateFn func(ctx context.Context, userID uuid.UUID) (*domain.UserStats, error)
	upsertFn       func(ctx context.Context, stats *domain.UserStats) error
}

func (m *mockStatsStore) Get(ctx context.Context, userID uuid.UUID) (*domain.UserStats, error) {
	return m.getFn(ctx, userID)
}

func (m *mockStatsStore) GetForUpdate(ctx context.Context, userID uuid.UUID) (*domain.UserStats, error) {
	return m.getForUpdateFn(ctx, userID)
}

func (m *mockStatsStore) Upsert(ctx context.Context, stats *domain.UserStats) error {
	return m.upsertFn(ctx, stats)
}

func (m *mockStatsStore) WithTx(tx *sql.Tx) store.StatsStore { return m }

type mockPasswordVerifier struct {
	compareFn func(hashedPassword, password string) error
}

func (m *mockPasswordVerifier) Compare(hashedPassword, password string) error {
	return m.compareFn(hashedPassword, password)
}

type mockPasswordHasher struct {
	hashFn func(password string) (string, error)
}

func (m *mockPasswordHasher) Hash(password string) (string, error) {
	if m.hashFn == nil {
		return "hashed:" + password, nil
	}
	return m.hashFn(password)
}

type mockEmitter struct {
	events []*events.TaskRequestEvent
}

func (m *mockEmitter) EmitEvent(ctx context.Context, event *events.TaskRequestEvent) error {
	m.events = append(m.events, event)
	return nil
}
