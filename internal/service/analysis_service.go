package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskrank-api/internal/config"
	"github.com/phrazzld/taskrank-api/internal/domain"
	"github.com/phrazzld/taskrank-api/internal/domain/depgraph"
	"github.com/phrazzld/taskrank-api/internal/domain/priority"
	"github.com/phrazzld/taskrank-api/internal/platform/logger"
)

// DefaultSuggestLimit is the number of tasks returned by Suggest unless configured otherwise.
const DefaultSuggestLimit = 3

// ScoringConfig holds the scoring defaults applied when a request does not
// override them.
type ScoringConfig struct {
	DefaultStrategy priority.Strategy
	Weights         priority.Weights
	SuggestLimit    int
}

// DefaultScoringConfig returns smart balance, the default weights and a suggest limit of 3.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		DefaultStrategy: priority.DefaultStrategy,
		Weights:         priority.DefaultWeights(),
		SuggestLimit:    DefaultSuggestLimit,
	}
}

// NewScoringConfig converts loaded configuration into service defaults.
func NewScoringConfig(cfg config.ScoringConfig) ScoringConfig {
	return ScoringConfig{
		DefaultStrategy: priority.Strategy(cfg.DefaultStrategy),
		SuggestLimit:    cfg.SuggestLimit,
		Weights: priority.Weights{
			Urgency:      cfg.Weights.Urgency,
			Importance:   cfg.Weights.Importance,
			Effort:       cfg.Weights.Effort,
			Dependencies: cfg.Weights.Dependencies,
		},
	}
}

// AnalyzeOptions carries the per-request scoring choices.
type AnalyzeOptions struct {
	// Strategy names the scoring strategy. Empty selects the configured
	// default; unknown names fall back to smart balance.
	Strategy string

	// Weights partially overrides the configured weights.
	Weights priority.WeightsConfig
}

// ExplainedTask is a ranked task together with its individual sub-scores.
type ExplainedTask struct {
	domain.ScoredTask `yaml:",inline"`
	Factors           priority.Factors `json:"factors" yaml:"factors"`
}

// AnalysisService provides task ranking operations. Every operation first
// checks the tasks for circular dependencies and fails as a unit with a
// *CycleError when one is found.
type AnalysisService interface {
	// Analyze ranks all tasks using the requested strategy and weights.
	Analyze(ctx context.Context, tasks []domain.Task, opts AnalyzeOptions) ([]domain.ScoredTask, error)

	// Suggest ranks tasks with the smart balance strategy and returns at
	// most the configured number of top tasks.
	Suggest(ctx context.Context, tasks []domain.Task) ([]domain.ScoredTask, error)

	// Explain ranks all tasks like Analyze and attaches the sub-scores of each.
	Explain(ctx context.Context, tasks []domain.Task, opts AnalyzeOptions) ([]ExplainedTask, error)

	// CheckCycles reports the dependency cycle in tasks, if any, without ranking.
	CheckCycles(ctx context.Context, tasks []domain.Task) depgraph.CycleReport
}

// analysisServiceImpl implements the AnalysisService interface
type analysisServiceImpl struct {
	scorer priority.Service
	config ScoringConfig
	logger *slog.Logger
}

// NewAnalysisService creates a new AnalysisService.
// It returns an error if any required dependency is missing or the scoring
// configuration is unusable.
func NewAnalysisService(
	scorer priority.Service,
	config ScoringConfig,
	logger *slog.Logger,
) (AnalysisService, error) {
	if scorer == nil {
		return nil, fmt.Errorf("scorer cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if !config.DefaultStrategy.IsValid() {
		return nil, fmt.Errorf("invalid default strategy %q", config.DefaultStrategy)
	}
	if config.SuggestLimit < 1 {
		return nil, fmt.Errorf("suggest limit must be at least 1, got %d", config.SuggestLimit)
	}

	return &analysisServiceImpl{
		scorer: scorer,
		config: config,
		logger: logger.With(slog.String("component", "analysis_service")),
	}, nil
}

// Analyze implements AnalysisService.Analyze
func (s *analysisServiceImpl) Analyze(
	ctx context.Context,
	tasks []domain.Task,
	opts AnalyzeOptions,
) ([]domain.ScoredTask, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.rejectCycles(ctx, tasks); err != nil {
		return nil, err
	}

	strategy, weights := s.resolve(opts)
	ranked := s.scorer.Rank(tasks, strategy, weights)

	log.Debug("tasks analyzed",
		slog.Int("task_count", len(tasks)),
		slog.String("strategy", string(strategy)))

	return ranked, nil
}

// Suggest implements AnalysisService.Suggest
func (s *analysisServiceImpl) Suggest(ctx context.Context, tasks []domain.Task) ([]domain.ScoredTask, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.rejectCycles(ctx, tasks); err != nil {
		return nil, err
	}

	ranked := s.scorer.Rank(tasks, priority.StrategySmartBalance, s.config.Weights)
	if len(ranked) > s.config.SuggestLimit {
		ranked = ranked[:s.config.SuggestLimit]
	}

	log.Debug("tasks suggested",
		slog.Int("task_count", len(tasks)),
		slog.Int("suggested_count", len(ranked)))

	return ranked, nil
}

// Explain implements AnalysisService.Explain
func (s *analysisServiceImpl) Explain(
	ctx context.Context,
	tasks []domain.Task,
	opts AnalyzeOptions,
) ([]ExplainedTask, error) {
	ranked, err := s.Analyze(ctx, tasks, opts)
	if err != nil {
		return nil, err
	}

	all := domain.NewTaskCollection(tasks)
	explained := make([]ExplainedTask, 0, len(ranked))
	for _, st := range ranked {
		explained = append(explained, ExplainedTask{
			ScoredTask: st,
			Factors:    s.scorer.Breakdown(st.Task, all),
		})
	}

	return explained, nil
}

// CheckCycles implements AnalysisService.CheckCycles
func (s *analysisServiceImpl) CheckCycles(ctx context.Context, tasks []domain.Task) depgraph.CycleReport {
	return depgraph.DetectCycles(tasks)
}

// rejectCycles returns a *CycleError when tasks contain a dependency cycle.
func (s *analysisServiceImpl) rejectCycles(ctx context.Context, tasks []domain.Task) error {
	report := depgraph.DetectCycles(tasks)
	if !report.HasCycle {
		return nil
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("rejecting tasks with circular dependencies",
		slog.Int("task_count", len(tasks)),
		slog.Any("cycle", report.CycleNodes))

	return &CycleError{Nodes: report.CycleNodes}
}

// resolve applies request options on top of the configured defaults.
func (s *analysisServiceImpl) resolve(opts AnalyzeOptions) (priority.Strategy, priority.Weights) {
	strategy := s.config.DefaultStrategy
	if opts.Strategy != "" {
		strategy = priority.ParseStrategy(opts.Strategy)
	}
	return strategy, priority.NewWeights(s.config.Weights, opts.Weights)
}

// IsCycleError reports whether err is a circular dependency rejection and
// returns the offending cycle.
func IsCycleError(err error) ([]string, bool) {
	var cycleErr *CycleError
	if errors.As(err, &cycleErr) {
		return cycleErr.Nodes, true
	}
	return nil, false
}
