package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/lexikon-app/lexikon-api/internal/config"
	"github.com/lexikon-app/lexikon-api/internal/domain/srs"
	"github.com/lexikon-app/lexikon-api/internal/events"
	"github.com/lexikon-app/lexikon-api/internal/platform/postgres"
	"github.com/lexikon-app/lexikon-api/internal/service"
	"github.com/lexikon-app/lexikon-api/internal/service/auth"
	"github.com/lexikon-app/lexikon-api/internal/store"
	"github.com/lexikon-app/lexikon-api/internal/task"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	userStore     store.UserStore
	wordStore     store.WordStore
	stateStore    store.ReviewStateStore
	sessionStore  store.SessionStore
	scheduleStore store.ScheduleStore
	statsStore    store.StatsStore

	// Services
	jwtService          auth.JWTService
	passwordHasher      *auth.BcryptHasher
	engine              srs.Service
	userService         service.UserService
	wordService         service.WordService
	reviewService       service.ReviewService
	schedulerService    service.SchedulerService
	notificationService service.NotificationService

	// Background work
	eventEmitter *events.InMemoryEventEmitter
	taskQueue    *task.TaskQueue
	workerPool   *task.WorkerPool
}

// newApplication creates an application instance with all dependencies
// initialized. It accepts the core dependencies that must be established
// before wiring: configuration, logger and database connection.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordHasher = auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.wordStore = postgres.NewPostgresWordStore(db, logger)
	app.stateStore = postgres.NewPostgresReviewStateStore(db, logger)
	app.sessionStore = postgres.NewPostgresSessionStore(db, logger)
	app.scheduleStore = postgres.NewPostgresScheduleStore(db, logger)
	app.statsStore = postgres.NewPostgresStatsStore(db, logger)

	app.engine = srs.NewServiceWithParams(srs.NewParams(srs.ParamsConfig{
		MaxIntervalDays:     cfg.Scheduler.MaxIntervalDays,
		MasteryThreshold:    cfg.Scheduler.MasteryThreshold,
		DifficultyThreshold: cfg.Scheduler.DifficultyThreshold,
		DailyReviewCap:      cfg.Scheduler.DailyReviewCap,
		QuietHourStart:      cfg.Scheduler.QuietHourStart,
		QuietHourEnd:        cfg.Scheduler.QuietHourEnd,
	}))

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)

	app.userService = service.NewUserService(app.userStore, app.passwordHasher, app.passwordHasher, db, logger)
	app.wordService = service.NewWordService(app.wordStore, app.stateStore, db, logger)
	app.reviewService = service.NewReviewService(
		app.wordStore,
		app.stateStore,
		app.sessionStore,
		app.statsStore,
		app.engine,
		app.eventEmitter,
		db,
		logger,
	)
	app.schedulerService = service.NewSchedulerService(
		app.stateStore,
		app.sessionStore,
		app.scheduleStore,
		app.engine,
		cfg.Scheduler.HorizonDays,
		db,
		logger,
	)
	app.notificationService = service.NewNotificationService(
		app.userStore,
		app.statsStore,
		app.reviewService,
		app.engine,
		logger,
	)

	app.setupBackgroundWork()

	logger.Info("application initialized")
	return app, nil
}

// setupBackgroundWork wires the task queue, worker pool and the event
// handler that turns schedule rebuild requests into queued work.
func (app *application) setupBackgroundWork() {
	queueSize := app.config.Task.QueueSize
	if queueSize <= 0 {
		queueSize = 100
	}

	app.taskQueue = task.NewTaskQueue(queueSize, app.logger)
	app.workerPool = task.NewWorkerPool(app.taskQueue, task.WorkerPoolConfig{
		WorkerCount: app.config.Task.WorkerCount,
	}, app.logger)

	rebuildHandler := task.NewScheduleRebuildEventHandler(
		app.schedulerService,
		app.taskQueue,
		app.logger,
	)
	app.eventEmitter.RegisterHandler(rebuildHandler)

	app.workerPool.Start()
}

// Run starts the HTTP server and blocks until shutdown.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.taskQueue != nil {
		app.taskQueue.Close()
	}
	if app.workerPool != nil {
		app.workerPool.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
