package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/lexikon-app/lexikon-api/internal/api/shared"
	"github.com/lexikon-app/lexikon-api/internal/platform/logger"
	"github.com/lexikon-app/lexikon-api/internal/service"
)

// scheduleDefaultWindowDays bounds GET /schedule when no explicit range
// is given.
const scheduleDefaultWindowDays = 14

// ScheduleHandler handles review planning API requests.
type ScheduleHandler struct {
	schedulerService service.SchedulerService
	logger           *slog.Logger
}

// NewScheduleHandler creates a new ScheduleHandler with the given dependencies.
func NewScheduleHandler(schedulerService service.SchedulerService, logger *slog.Logger) *ScheduleHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &ScheduleHandler{
		schedulerService: schedulerService,
		logger:           logger.With(slog.String("component", "schedule_handler")),
	}
}

// RebuildSchedule handles POST /schedule/rebalance requests. It replaces
// the user's forward plan from today onward.
func (h *ScheduleHandler) RebuildSchedule(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req RebalanceRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	entries, err := h.schedulerService.RebuildSchedule(r.Context(), userID, req.MaxPerDay, time.Now().UTC())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	responses := make([]ScheduleResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, scheduleToResponse(entry))
	}

	log.Info("schedule rebuilt",
		slog.String("user_id", userID.String()),
		slog.Int("entries", len(responses)))
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// GetSchedule handles GET /schedule requests. Accepts optional from/to
// query parameters in RFC 3339 format; the default window starts today
// and spans two weeks.
func (h *ScheduleHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	now := time.Now().UTC()
	from := now.Truncate(24 * time.Hour)
	to := from.AddDate(0, 0, scheduleDefaultWindowDays)

	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid from parameter")
			return
		}
		from = parsed
		to = from.AddDate(0, 0, scheduleDefaultWindowDays)
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid to parameter")
			return
		}
		to = parsed
	}
	if !to.After(from) {
		shared.RespondWithError(w, r, http.StatusBadRequest, "to must be after from")
		return
	}

	entries, err := h.schedulerService.GetSchedule(r.Context(), userID, from, to)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	responses := make([]ScheduleResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, scheduleToResponse(entry))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}
