package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lexikon-app/lexikon-api/internal/api/shared"
	"github.com/lexikon-app/lexikon-api/internal/domain"
	"github.com/lexikon-app/lexikon-api/internal/domain/srs"
	"github.com/lexikon-app/lexikon-api/internal/service"
	"github.com/lexikon-app/lexikon-api/internal/service/auth"
)

// Function-field mocks for the service interfaces the handlers depend on.
// Unset fields panic, which surfaces unexpected calls as test failures.

type mockUserService struct {
	getUserFn           func(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	createUserFn        func(ctx context.Context, email, password string) (*domain.User, error)
	authenticateFn      func(ctx context.Context, email, password string) (*domain.User, error)
	updatePreferencesFn func(ctx context.Context, userID uuid.UUID, tier domain.NotificationTier, modality domain.Modality) (*domain.User, error)
	deleteUserFn        func(ctx context.Context, userID uuid.UUID) error
}

func (m *mockUserService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return m.getUserFn(ctx, userID)
}

func (m *mockUserService) CreateUser(ctx context.Context, email, password string) (*domain.User, error) {
	return m.createUserFn(ctx, email, password)
}

func (m *mockUserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	return m.authenticateFn(ctx, email, password)
}

func (m *mockUserService) UpdatePreferences(
	ctx context.Context,
	userID uuid.UUID,
	tier domain.NotificationTier,
	modality domain.Modality,
) (*domain.User, error) {
	return m.updatePreferencesFn(ctx, userID, tier, modality)
}

func (m *mockUserService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	return m.deleteUserFn(ctx, userID)
}

type mockWordService struct {
	createWordFn func(ctx context.Context, userID uuid.UUID, term, translation, notes string) (*domain.Word, error)
	getWordFn    func(ctx context.Context, userID, wordID uuid.UUID) (*domain.Word, error)
	listWordsFn  func(ctx context.Context, userID uuid.UUID) ([]*domain.Word, error)
	updateWordFn func(ctx context.Context, userID, wordID uuid.UUID, term, translation, notes string) (*domain.Word, error)
	deleteWordFn func(ctx context.Context, userID, wordID uuid.UUID) error
}

func (m *mockWordService) CreateWord(
	ctx context.Context,
	userID uuid.UUID,
	term, translation, notes string,
) (*domain.Word, error) {
	return m.createWordFn(ctx, userID, term, translation, notes)
}

func (m *mockWordService) GetWord(ctx context.Context, userID, wordID uuid.UUID) (*domain.Word, error) {
	return m.getWordFn(ctx, userID, wordID)
}

func (m *mockWordService) ListWords(ctx context.Context, userID uuid.UUID) ([]*domain.Word, error) {
	return m.listWordsFn(ctx, userID)
}

func (m *mockWordService) UpdateWord(
	ctx context.Context,
	userID, wordID uuid.UUID,
	term, translation, notes string,
) (*domain.Word, error) {
	return m.updateWordFn(ctx, userID, wordID, term, translation, notes)
}

func (m *mockWordService) DeleteWord(ctx context.Context, userID, wordID uuid.UUID) error {
	return m.deleteWordFn(ctx, userID, wordID)
}

type mockReviewService struct {
	submitReviewFn func(ctx context.Context, userID, wordID uuid.UUID, event *domain.ReviewEvent) (*service.ReviewResult, error)
	getQueueFn     func(ctx context.Context, userID uuid.UUID, limit int, includeOverdue bool, now time.Time) ([]srs.QueueItem, error)
	nextWordFn     func(ctx context.Context, userID uuid.UUID, now time.Time) (*srs.QueueItem, error)
	postponeWordFn func(ctx context.Context, userID, wordID uuid.UUID, days int, now time.Time) (*domain.ReviewState, error)
}

func (m *mockReviewService) SubmitReview(
	ctx context.Context,
	userID, wordID uuid.UUID,
	event *domain.ReviewEvent,
) (*service.ReviewResult, error) {
	return m.submitReviewFn(ctx, userID, wordID, event)
}

func (m *mockReviewService) GetQueue(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
	includeOverdue bool,
	now time.Time,
) ([]srs.QueueItem, error) {
	return m.getQueueFn(ctx, userID, limit, includeOverdue, now)
}

func (m *mockReviewService) NextWord(ctx context.Context, userID uuid.UUID, now time.Time) (*srs.QueueItem, error) {
	return m.nextWordFn(ctx, userID, now)
}

func (m *mockReviewService) PostponeWord(
	ctx context.Context,
	userID, wordID uuid.UUID,
	days int,
	now time.Time,
) (*domain.ReviewState, error) {
	return m.postponeWordFn(ctx, userID, wordID, days, now)
}

type mockSchedulerService struct {
	rebuildScheduleFn func(ctx context.Context, userID uuid.UUID, maxPerDay int, now time.Time) ([]*domain.ReviewSchedule, error)
	getScheduleFn     func(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*domain.ReviewSchedule, error)
}

func (m *mockSchedulerService) RebuildSchedule(
	ctx context.Context,
	userID uuid.UUID,
	maxPerDay int,
	now time.Time,
) ([]*domain.ReviewSchedule, error) {
	return m.rebuildScheduleFn(ctx, userID, maxPerDay, now)
}

func (m *mockSchedulerService) GetSchedule(
	ctx context.Context,
	userID uuid.UUID,
	from, to time.Time,
) ([]*domain.ReviewSchedule, error) {
	return m.getScheduleFn(ctx, userID, from, to)
}

type mockNotificationService struct {
	adviseFn func(ctx context.Context, userID uuid.UUID, now time.Time) (*srs.NotificationAdvice, error)
}

func (m *mockNotificationService) Advise(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
) (*srs.NotificationAdvice, error) {
	return m.adviseFn(ctx, userID, now)
}

type mockJWTService struct {
	generateTokenFn        func(ctx context.Context, userID uuid.UUID) (string, error)
	validateTokenFn        func(ctx context.Context, tokenString string) (*auth.Claims, error)
	generateRefreshFn      func(ctx context.Context, userID uuid.UUID) (string, error)
	validateRefreshTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)
}

func (m *mockJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.generateTokenFn != nil {
		return m.generateTokenFn(ctx, userID)
	}
	return "access-token", nil
}

func (m *mockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	return m.validateTokenFn(ctx, tokenString)
}

func (m *mockJWTService) GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.generateRefreshFn != nil {
		return m.generateRefreshFn(ctx, userID)
	}
	return "refresh-token", nil
}

func (m *mockJWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	return m.validateRefreshTokenFn(ctx, tokenString)
}

// withUserID stamps the authenticated user onto the request context the
// way the auth middleware does.
func withUserID(r *http.Request, userID uuid.UUID) *http.Request {
	ctx := context.WithValue(r.Context(), shared.UserIDContextKey, userID)
	return r.WithContext(ctx)
}

// serveRoute mounts the handler on a chi router so URL parameters resolve,
// then records the response.
func serveRoute(method, pattern string, handlerFn http.HandlerFunc, r *http.Request) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.MethodFunc(method, pattern, handlerFn)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)
	return rec
}
