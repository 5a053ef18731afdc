package api

import (
	"log/slog"
	"net/http"

	"github.com/lexikon-app/lexikon-api/internal/api/shared"
	"github.com/lexikon-app/lexikon-api/internal/platform/logger"
	"github.com/lexikon-app/lexikon-api/internal/service"
)

// WordHandler handles vocabulary management API requests.
type WordHandler struct {
	wordService service.WordService
	logger      *slog.Logger
}

// NewWordHandler creates a new WordHandler with the given dependencies.
func NewWordHandler(wordService service.WordService, logger *slog.Logger) *WordHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &WordHandler{
		wordService: wordService,
		logger:      logger.With(slog.String("component", "word_handler")),
	}
}

// CreateWord handles POST /words requests. The new word starts with a
// fresh memory state so it enters the review queue immediately.
func (h *WordHandler) CreateWord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req WordRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	word, err := h.wordService.CreateWord(r.Context(), userID, req.Term, req.Translation, req.Notes)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("word created",
		slog.String("user_id", userID.String()),
		slog.String("word_id", word.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, wordToResponse(word))
}

// GetWord handles GET /words/{id} requests.
func (h *WordHandler) GetWord(w http.ResponseWriter, r *http.Request) {
	userID, wordID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	word, err := h.wordService.GetWord(r.Context(), userID, wordID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, wordToResponse(word))
}

// ListWords handles GET /words requests.
func (h *WordHandler) ListWords(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	words, err := h.wordService.ListWords(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	responses := make([]WordResponse, 0, len(words))
	for _, word := range words {
		responses = append(responses, wordToResponse(word))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// UpdateWord handles PUT /words/{id} requests.
func (h *WordHandler) UpdateWord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, wordID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req WordRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	word, err := h.wordService.UpdateWord(r.Context(), userID, wordID, req.Term, req.Translation, req.Notes)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("word updated",
		slog.String("user_id", userID.String()),
		slog.String("word_id", wordID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, wordToResponse(word))
}

// DeleteWord handles DELETE /words/{id} requests. The word's memory
// state, sessions and schedule entries go with it.
func (h *WordHandler) DeleteWord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, wordID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.wordService.DeleteWord(r.Context(), userID, wordID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("word deleted",
		slog.String("user_id", userID.String()),
		slog.String("word_id", wordID.String()))
	w.WriteHeader(http.StatusNoContent)
}
