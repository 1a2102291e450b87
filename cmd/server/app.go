package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/taskhub/taskhub-api/internal/config"
	"github.com/taskhub/taskhub-api/internal/notifier"
	"github.com/taskhub/taskhub-api/internal/platform/memory"
	"github.com/taskhub/taskhub-api/internal/platform/postgres"
	"github.com/taskhub/taskhub-api/internal/service"
	"github.com/taskhub/taskhub-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is nil when the memory driver is selected.
	db *sql.DB

	taskStore   store.TaskStore
	taskService service.TaskService
	hub         *notifier.Hub
}

// newApplication creates a new application instance with all dependencies
// initialized. Storage is selected by the configured database driver:
// postgres opens a connection pool and applies pending migrations, memory
// keeps everything in process.
func newApplication(ctx context.Context, cfg *config.Config, appLogger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: appLogger,
	}

	switch cfg.Database.Driver {
	case "postgres":
		db, err := setupAppDatabase(ctx, cfg, appLogger)
		if err != nil {
			return nil, fmt.Errorf("failed to set up database: %w", err)
		}
		app.db = db

		if err := runMigrations(db, appLogger); err != nil {
			app.cleanup()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}

		app.taskStore = postgres.NewPostgresTaskStore(db, appLogger)
	case "memory":
		appLogger.Warn("Using in-memory task store, data will not survive restarts")
		app.taskStore = memory.NewMemoryTaskStore()
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}

	taskService, err := service.NewTaskService(app.taskStore, appLogger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}
	app.taskService = taskService

	app.hub = notifier.NewHub(notifier.HubConfig{
		SendBuffer: cfg.Notifier.SendBuffer,
	}, appLogger)

	appLogger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.hub != nil {
		app.hub.Close()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
