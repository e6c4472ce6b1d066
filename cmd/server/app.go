package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskrank-api/internal/config"
	"github.com/phrazzld/taskrank-api/internal/domain/priority"
	"github.com/phrazzld/taskrank-api/internal/service"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	scorer          priority.Service
	analysisService service.AnalysisService
}

// newApplication creates a new application instance with all dependencies initialized.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	app := &application{
		config: cfg,
		logger: logger,
		scorer: priority.NewDefaultService(),
	}

	var err error
	app.analysisService, err = service.NewAnalysisService(app.scorer, service.NewScoringConfig(cfg.Scoring), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create analysis service: %w", err)
	}

	logger.Info("Application initialized successfully",
		"default_strategy", cfg.Scoring.DefaultStrategy)
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
// The service is stateless, so there is nothing to release beyond logging.
func (app *application) cleanup() {
	app.logger.Info("Application shutdown completed")
}
