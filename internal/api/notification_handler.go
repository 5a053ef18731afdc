package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/lexikon-app/lexikon-api/internal/api/shared"
	"github.com/lexikon-app/lexikon-api/internal/service"
)

// NotificationHandler handles notification advice API requests.
type NotificationHandler struct {
	notificationService service.NotificationService
	logger              *slog.Logger
}

// NewNotificationHandler creates a new NotificationHandler with the given
// dependencies.
func NewNotificationHandler(
	notificationService service.NotificationService,
	logger *slog.Logger,
) *NotificationHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &NotificationHandler{
		notificationService: notificationService,
		logger:              logger.With(slog.String("component", "notification_handler")),
	}
}

// GetAdvice handles GET /notifications/advice requests. The response tells
// a client when and how often to nudge the user, and whether a nudge is
// appropriate right now.
func (h *NotificationHandler) GetAdvice(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	advice, err := h.notificationService.Advise(r.Context(), userID, time.Now().UTC())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, advice)
}
