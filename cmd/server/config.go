package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/phrazzld/taskrank-api/internal/config"
)

// ConfigFileEnv names an optional config file to load instead of ./config.yaml.
const ConfigFileEnv = "TASKRANK_CONFIG_FILE"

// loadAppConfig loads the application configuration from environment variables or config file.
// Returns the loaded config and any loading error.
func loadAppConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path := os.Getenv(ConfigFileEnv); path != "" {
		cfg, err = config.LoadFromFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Log basic configuration details after successful loading
	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)
	slog.Debug("Scoring configuration",
		"default_strategy", cfg.Scoring.DefaultStrategy,
		"suggest_limit", cfg.Scoring.SuggestLimit)

	return cfg, nil
}
