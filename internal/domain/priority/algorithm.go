package priority

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/phrazzld/taskrank-api/internal/domain"
)

// Score bounds shared by every sub-score and the final score.
const (
	MinScore = 0.0
	MaxScore = 100.0
)

// Factors holds the sub-scores computed for one task. Every factor is
// computed regardless of strategy so explanations stay consistent.
type Factors struct {
	Urgency         float64 `json:"urgency"          yaml:"urgency"`
	Importance      float64 `json:"importance"       yaml:"importance"`
	Effort          float64 `json:"effort"           yaml:"effort"`
	Dependents      float64 `json:"dependents"       yaml:"dependents"`
	DependentsCount int     `json:"dependents_count" yaml:"dependents_count"`

	urgencyText    string
	effortText     string
	dependentsText string
}

// computeFactors evaluates all sub-scores of task relative to today.
func computeFactors(task domain.Task, all domain.TaskCollection, today domain.Date) Factors {
	urgency, urgencyText := urgencyScore(task.DueDate, today)
	effort, effortText := effortScore(task.HoursOrDefault())
	count := all.Dependents(task.ID)
	dependents, dependentsText := dependentsScore(count)

	return Factors{
		Urgency:         urgency,
		Importance:      importanceScore(task.ImportanceOrDefault()),
		Effort:          effort,
		Dependents:      dependents,
		DependentsCount: count,
		urgencyText:     urgencyText,
		effortText:      effortText,
		dependentsText:  dependentsText,
	}
}

// urgencyScore rates how pressing a due date is.
//
// Parameters:
//   - due: the task's due date, nil when the task has none
//   - today: the date scoring is performed on
//
// Returns:
//   - a score in [10, 100] (50 when there is no due date)
//   - the matching explanation fragment
//
// Algorithm behavior:
//   - past due by d days: min(100, 80 + d)
//   - due today: 70
//   - due in 1-3 days: 60 + (3 - d) * 5
//   - due in 4-7 days: 40 + (7 - d) * 3
//   - due later: max(10, 30 - d/7) using integer division
func urgencyScore(due *domain.Date, today domain.Date) (float64, string) {
	if due == nil {
		return 50, "Neutral urgency"
	}

	days := today.DaysUntil(*due)
	switch {
	case days < 0:
		overdue := -days
		return math.Min(100, float64(80+overdue)), fmt.Sprintf("Task is %d days past due", overdue)
	case days == 0:
		return 70, "Task is due today"
	case days <= 3:
		return float64(60 + (3-days)*5), fmt.Sprintf("Task is due in %d days", days)
	case days <= 7:
		return float64(40 + (7-days)*3), fmt.Sprintf("Task is due in %d days", days)
	default:
		return math.Max(10, float64(30-days/7)), fmt.Sprintf("Task is due in %d days", days)
	}
}

// effortScore favours short tasks: 100 - hours*10, clamped to [10, 100].
func effortScore(hours float64) (float64, string) {
	score := clamp(100-hours*10, 10, 100)
	return score, fmt.Sprintf("Task requires %s hours of effort", formatHours(hours))
}

// dependentsScore rewards tasks that unblock others: 20 points per dependent, capped at 100.
func dependentsScore(count int) (float64, string) {
	return math.Min(100, float64(count*20)), fmt.Sprintf("Task blocks %d other tasks", count)
}

// importanceScore scales the 1-10 importance rating onto the 0-100 range.
func importanceScore(importance int) float64 {
	return float64(importance * 10)
}

// combine selects or blends factors into the final score for the strategy
// and builds the explanation. The score is clamped to [MinScore, MaxScore].
func combine(f Factors, importance int, strategy Strategy, w Weights) (float64, string) {
	var score float64
	parts := []string{strategy.label()}

	switch strategy {
	case StrategyFastest:
		score = f.Effort
		parts = append(parts, f.effortText)
	case StrategyImpact:
		score = f.Importance
		parts = append(parts, fmt.Sprintf("Task importance level: %d/10", importance))
	case StrategyDeadline:
		score = f.Urgency
		parts = append(parts, f.urgencyText)
	default:
		score = f.Urgency*w.Urgency +
			f.Importance*w.Importance +
			f.Effort*w.Effort +
			f.Dependents*w.Dependencies
		parts = append(parts, f.urgencyText, f.effortText, f.dependentsText)
	}

	return clamp(score, MinScore, MaxScore), strings.Join(parts, "; ")
}

// roundScore keeps two decimal places.
func roundScore(score float64) float64 {
	return math.Round(score*100) / 100
}

// clamp limits value to [lo, hi]. NaN is mapped to lo.
func clamp(value, lo, hi float64) float64 {
	if math.IsNaN(value) || value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

func formatHours(hours float64) string {
	return strconv.FormatFloat(hours, 'f', -1, 64)
}
