// Package main implements the entry point for the taskrank API server,
// which ranks user-defined tasks by priority and rejects task sets with
// circular dependencies.
package main

import (
	"context"
	"fmt"
	"log"
)

// main is the entry point for the taskrank-api server.
// It loads configuration, sets up logging, wires the analysis service and
// starts the HTTP server.
func main() {
	if err := run(context.Background()); err != nil {
		log.Fatalf("Failed to run application: %v", err)
	}
}

// run holds the core initialization logic so it can return errors instead of exiting.
func run(ctx context.Context) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	l, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}

	app, err := newApplication(cfg, l)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
