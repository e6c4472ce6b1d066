package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/taskrank-api/internal/api/shared"
	"github.com/phrazzld/taskrank-api/internal/domain"
	"github.com/phrazzld/taskrank-api/internal/platform/logger"
	"github.com/phrazzld/taskrank-api/internal/service"
)

// TaskHandler handles task analysis HTTP requests
type TaskHandler struct {
	analysisService service.AnalysisService
	logger          *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(analysisService service.AnalysisService, logger *slog.Logger) *TaskHandler {
	if analysisService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("analysisService cannot be nil for TaskHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		analysisService: analysisService,
		logger:          logger.With(slog.String("component", "task_handler")),
	}
}

// AnalyzeTasks handles POST /tasks/analyze requests.
// It ranks every submitted task with the requested strategy and weights.
func (h *TaskHandler) AnalyzeTasks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req AnalyzeRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	tasks, err := decodeTasks(req.Tasks)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	ranked, err := h.analysisService.Analyze(r.Context(), tasks, req.options())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Debug("analyze request completed", slog.Int("task_count", len(ranked)))
	shared.RespondWithJSON(w, r, http.StatusOK, TasksResponse{Tasks: ranked})
}

// SuggestTasks handles POST /tasks/suggest requests.
// It returns the top tasks under the smart balance strategy.
func (h *TaskHandler) SuggestTasks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req SuggestRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	tasks, err := decodeTasks(req.Tasks)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	suggested, err := h.analysisService.Suggest(r.Context(), tasks)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Debug("suggest request completed",
		slog.Int("task_count", len(tasks)),
		slog.Int("suggested_count", len(suggested)))
	shared.RespondWithJSON(w, r, http.StatusOK, TasksResponse{Tasks: suggested})
}

// ExplainTasks handles POST /tasks/explain requests.
// It ranks like AnalyzeTasks and attaches each task's sub-scores.
func (h *TaskHandler) ExplainTasks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req AnalyzeRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	tasks, err := decodeTasks(req.Tasks)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	explained, err := h.analysisService.Explain(r.Context(), tasks, req.options())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Debug("explain request completed", slog.Int("task_count", len(explained)))
	shared.RespondWithJSON(w, r, http.StatusOK, ExplainResponse{Tasks: explained})
}

// decodeTasks decodes and validates every raw task. It reports the failures
// of all tasks at once rather than stopping at the first.
func decodeTasks(raw []json.RawMessage) ([]domain.Task, error) {
	tasks := make([]domain.Task, 0, len(raw))
	var details []string

	for i, msg := range raw {
		task, problems := decodeTask(msg)
		for _, p := range problems {
			details = append(details, fmt.Sprintf("Task %d: %s", i, p))
		}
		if len(problems) == 0 {
			tasks = append(tasks, task)
		}
	}

	if len(details) > 0 {
		return nil, &TaskValidationError{Details: details}
	}
	return tasks, nil
}

func decodeTask(msg json.RawMessage) (domain.Task, []string) {
	var req TaskRequest
	if err := json.Unmarshal(msg, &req); err != nil {
		return domain.Task{}, []string{describeDecodeError(err)}
	}

	req.Title = strings.TrimSpace(req.Title)
	if err := shared.ValidateRequest(&req); err != nil {
		return domain.Task{}, describeValidationError(err)
	}

	return req.toDomain(), nil
}
