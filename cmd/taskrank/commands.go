package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/phrazzld/taskrank-api/internal/config"
	"github.com/phrazzld/taskrank-api/internal/domain"
	"github.com/phrazzld/taskrank-api/internal/domain/priority"
	"github.com/phrazzld/taskrank-api/internal/platform/logger"
	"github.com/phrazzld/taskrank-api/internal/service"
	"github.com/phrazzld/taskrank-api/internal/taskfile"
	"github.com/spf13/cobra"
)

// errCycleFound makes the cycles command exit non-zero after printing its report.
var errCycleFound = errors.New("circular dependencies found")

// --- Command Execution Logic ---

func runAnalyzeCommand(cmd *cobra.Command, args []string) error {
	svc, tasks, err := prepare()
	if err != nil {
		return err
	}

	ranked, err := svc.Analyze(cmd.Context(), tasks, analyzeOptions(cmd))
	if err != nil {
		return err
	}
	return writeScored(cmd.OutOrStdout(), outputFormat, ranked)
}

func runSuggestCommand(cmd *cobra.Command, args []string) error {
	svc, tasks, err := prepare()
	if err != nil {
		return err
	}

	suggested, err := svc.Suggest(cmd.Context(), tasks)
	if err != nil {
		return err
	}
	return writeScored(cmd.OutOrStdout(), outputFormat, suggested)
}

func runExplainCommand(cmd *cobra.Command, args []string) error {
	svc, tasks, err := prepare()
	if err != nil {
		return err
	}

	explained, err := svc.Explain(cmd.Context(), tasks, analyzeOptions(cmd))
	if err != nil {
		return err
	}
	return writeExplained(cmd.OutOrStdout(), outputFormat, explained)
}

func runCyclesCommand(cmd *cobra.Command, args []string) error {
	svc, tasks, err := prepare()
	if err != nil {
		return err
	}

	report := svc.CheckCycles(cmd.Context(), tasks)
	if err := writeCycles(cmd.OutOrStdout(), outputFormat, report); err != nil {
		return err
	}
	if report.HasCycle {
		return errCycleFound
	}
	return nil
}

// prepare loads configuration and the task file and builds the analysis service.
func prepare() (service.AnalysisService, []domain.Task, error) {
	if _, err := parseOutputFormat(outputFormat); err != nil {
		return nil, nil, err
	}

	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	level, _ := logger.ParseLevel(cfg.Server.LogLevel)
	log := logger.New(os.Stderr, level)

	svc, err := service.NewAnalysisService(priority.NewDefaultService(), service.NewScoringConfig(cfg.Scoring), log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create analysis service: %w", err)
	}

	tasks, err := taskfile.Load(filePath)
	if err != nil {
		return nil, nil, err
	}
	log.Debug("task file loaded", slog.String("path", filePath), slog.Int("task_count", len(tasks)))

	return svc, tasks, nil
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromFile(configPath)
	}
	return config.Load()
}

// analyzeOptions collects the strategy and only the weight flags the user set.
func analyzeOptions(cmd *cobra.Command) service.AnalyzeOptions {
	opts := service.AnalyzeOptions{Strategy: strategyName}

	flags := cmd.Flags()
	if flags.Changed("weight-urgency") {
		opts.Weights.Urgency = &weightUrgency
	}
	if flags.Changed("weight-importance") {
		opts.Weights.Importance = &weightImportance
	}
	if flags.Changed("weight-effort") {
		opts.Weights.Effort = &weightEffort
	}
	if flags.Changed("weight-dependencies") {
		opts.Weights.Dependencies = &weightDependencies
	}
	return opts
}
