package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	Scoring ScoringConfig `mapstructure:"scoring" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gte=1"`
}

// ShutdownTimeout returns the graceful shutdown timeout as a duration.
func (s ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(s.ShutdownTimeoutSeconds) * time.Second
}

// ScoringConfig contains the defaults used when a request does not choose
// its own strategy or weights.
type ScoringConfig struct {
	DefaultStrategy string        `mapstructure:"default_strategy" validate:"required,oneof=fastest impact deadline smart_balance"`
	SuggestLimit    int           `mapstructure:"suggest_limit" validate:"gte=1"`
	Weights         WeightsConfig `mapstructure:"weights"`
}

// WeightsConfig holds the smart balance weights.
type WeightsConfig struct {
	Urgency      float64 `mapstructure:"urgency" validate:"gte=0"`
	Importance   float64 `mapstructure:"importance" validate:"gte=0"`
	Effort       float64 `mapstructure:"effort" validate:"gte=0"`
	Dependencies float64 `mapstructure:"dependencies" validate:"gte=0"`
}
