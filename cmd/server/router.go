package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/lexikon-app/lexikon-api/internal/api"
	apimiddleware "github.com/lexikon-app/lexikon-api/internal/api/middleware"
)

// setupRouter configures the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.userService, app.jwtService, app.logger)
	userHandler := api.NewUserHandler(app.userService, app.logger)
	wordHandler := api.NewWordHandler(app.wordService, app.logger)
	reviewHandler := api.NewReviewHandler(app.reviewService, app.config.Scheduler.QueueLimit, app.logger)
	scheduleHandler := api.NewScheduleHandler(app.schedulerService, app.logger)
	notificationHandler := api.NewNotificationHandler(app.notificationService, app.logger)

	authMiddleware := apimiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Public authentication endpoints
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Profile and preferences
			r.Get("/users/me", userHandler.GetProfile)
			r.Patch("/users/me/preferences", userHandler.UpdatePreferences)
			r.Delete("/users/me", userHandler.DeleteAccount)

			// Vocabulary management
			r.Post("/words", wordHandler.CreateWord)
			r.Get("/words", wordHandler.ListWords)
			r.Get("/words/{id}", wordHandler.GetWord)
			r.Put("/words/{id}", wordHandler.UpdateWord)
			r.Delete("/words/{id}", wordHandler.DeleteWord)

			// Reviewing
			r.Get("/reviews/next", reviewHandler.GetNextWord)
			r.Get("/reviews/queue", reviewHandler.GetQueue)
			r.Post("/words/{id}/review", reviewHandler.SubmitReview)
			r.Post("/words/{id}/postpone", reviewHandler.PostponeWord)

			// Planning
			r.Get("/schedule", scheduleHandler.GetSchedule)
			r.Post("/schedule/rebalance", scheduleHandler.RebuildSchedule)

			// Notifications
			r.Get("/notifications/advice", notificationHandler.GetAdvice)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
