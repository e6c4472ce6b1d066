package api

import (
	"encoding/json"
	"strings"

	"github.com/phrazzld/taskrank-api/internal/domain"
	"github.com/phrazzld/taskrank-api/internal/domain/priority"
	"github.com/phrazzld/taskrank-api/internal/service"
)

// TaskRequest is the wire form of a single task. Pointer fields let
// validation tell a missing value apart from a zero one.
type TaskRequest struct {
	ID             string       `json:"id"`
	Title          string       `json:"title"           validate:"required"`
	DueDate        *domain.Date `json:"due_date"        validate:"required"`
	EstimatedHours *float64     `json:"estimated_hours" validate:"required,gt=0"`
	Importance     *int         `json:"importance"      validate:"required,min=1,max=10"`
	Dependencies   []string     `json:"dependencies"    validate:"omitempty,dive,required"`
}

// toDomain converts a validated request into a domain task.
func (t TaskRequest) toDomain() domain.Task {
	deps := make([]string, len(t.Dependencies))
	copy(deps, t.Dependencies)

	return domain.Task{
		ID:             t.ID,
		Title:          strings.TrimSpace(t.Title),
		DueDate:        t.DueDate,
		EstimatedHours: t.EstimatedHours,
		Importance:     t.Importance,
		Dependencies:   deps,
	}
}

// AnalyzeRequest defines the payload for the analyze and explain endpoints.
// Tasks are kept raw so each one can be decoded and reported on separately.
type AnalyzeRequest struct {
	Tasks    []json.RawMessage       `json:"tasks"`
	Strategy string                  `json:"strategy"`
	Weights  *priority.WeightsConfig `json:"weights"`
}

// options converts the request's scoring choices for the service layer.
func (r AnalyzeRequest) options() service.AnalyzeOptions {
	opts := service.AnalyzeOptions{Strategy: r.Strategy}
	if r.Weights != nil {
		opts.Weights = *r.Weights
	}
	return opts
}

// SuggestRequest defines the payload for the suggest endpoint.
type SuggestRequest struct {
	Tasks []json.RawMessage `json:"tasks"`
}

// TasksResponse is the successful response for analyze and suggest.
type TasksResponse struct {
	Tasks []domain.ScoredTask `json:"tasks"`
}

// ExplainResponse is the successful response for explain.
type ExplainResponse struct {
	Tasks []service.ExplainedTask `json:"tasks"`
}

// ValidationErrorResponse lists every per-task validation failure of a request.
type ValidationErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details"`
	TraceID string   `json:"trace_id,omitempty"`
}

// CycleErrorResponse reports the dependency cycle that rejected a request.
type CycleErrorResponse struct {
	Error        string   `json:"error"`
	HasCycle     bool     `json:"has_cycle"`
	CycleDetails []string `json:"cycle_details"`
	TraceID      string   `json:"trace_id,omitempty"`
}
