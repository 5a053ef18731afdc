package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/lexikon-app/lexikon-api/internal/api/shared"
	"github.com/lexikon-app/lexikon-api/internal/domain"
	"github.com/lexikon-app/lexikon-api/internal/platform/logger"
	"github.com/lexikon-app/lexikon-api/internal/service"
)

// defaultQueueLimit bounds GET /reviews/queue when the deployment does
// not configure scheduler.queue_limit.
const defaultQueueLimit = 20

// ReviewHandler handles review submission and queue API requests.
type ReviewHandler struct {
	reviewService service.ReviewService
	queueLimit    int
	logger        *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler with the given dependencies.
// queueLimit is the default and maximum size of a requested review queue;
// values <= 0 fall back to defaultQueueLimit.
func NewReviewHandler(reviewService service.ReviewService, queueLimit int, logger *slog.Logger) *ReviewHandler {
	if queueLimit <= 0 {
		queueLimit = defaultQueueLimit
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ReviewHandler{
		reviewService: reviewService,
		queueLimit:    queueLimit,
		logger:        logger.With(slog.String("component", "review_handler")),
	}
}

// GetNextWord handles GET /reviews/next requests. Responds with 204 when
// nothing is due.
func (h *ReviewHandler) GetNextWord(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	item, err := h.reviewService.NextWord(r.Context(), userID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, service.ErrNothingDue) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, item)
}

// GetQueue handles GET /reviews/queue requests. Accepts optional query
// parameters: limit (positive integer) and include_overdue (boolean,
// default true).
func (h *ReviewHandler) GetQueue(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	limit := h.queueLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		if parsed > h.queueLimit {
			parsed = h.queueLimit
		}
		limit = parsed
	}

	includeOverdue := true
	if raw := r.URL.Query().Get("include_overdue"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid include_overdue parameter")
			return
		}
		includeOverdue = parsed
	}

	queue, err := h.reviewService.GetQueue(r.Context(), userID, limit, includeOverdue, time.Now().UTC())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, queue)
}

// SubmitReview handles POST /words/{id}/review requests.
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, wordID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req SubmitReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	modality := domain.Modality(req.Modality)
	if modality == "" {
		modality = domain.ModalityFlashcard
	}

	event := &domain.ReviewEvent{
		Accuracy:   req.Accuracy,
		ResponseMs: req.ResponseMs,
		Difficulty: req.Difficulty,
		Modality:   modality,
		OccurredAt: time.Now().UTC(),
	}

	result, err := h.reviewService.SubmitReview(r.Context(), userID, wordID, event)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("review submitted",
		slog.String("user_id", userID.String()),
		slog.String("word_id", wordID.String()),
		slog.Int("quality", result.Quality))
	shared.RespondWithJSON(w, r, http.StatusOK, SubmitReviewResponse{
		State:      stateToResponse(result.State),
		Quality:    result.Quality,
		ReviewType: string(result.ReviewType),
	})
}

// PostponeWord handles POST /words/{id}/postpone requests.
func (h *ReviewHandler) PostponeWord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, wordID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req PostponeRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	state, err := h.reviewService.PostponeWord(r.Context(), userID, wordID, req.Days, time.Now().UTC())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("review postponed",
		slog.String("user_id", userID.String()),
		slog.String("word_id", wordID.String()),
		slog.Int("days", req.Days))
	shared.RespondWithJSON(w, r, http.StatusOK, stateToResponse(state))
}
