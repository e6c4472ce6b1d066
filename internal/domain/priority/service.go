package priority

import (
	"sort"
	"time"

	"github.com/phrazzld/taskrank-api/internal/domain"
)

// Service defines the priority scoring operations.
type Service interface {
	// Score computes the 0-100 score and explanation for task. all is the
	// full collection and is only used to count the task's dependents.
	Score(task domain.Task, all domain.TaskCollection, strategy Strategy, weights Weights) (float64, string)

	// Breakdown returns the individual sub-scores of task.
	Breakdown(task domain.Task, all domain.TaskCollection) Factors

	// Rank scores every task and returns them sorted by score, highest
	// first. Tasks with equal scores keep their input order.
	Rank(tasks []domain.Task, strategy Strategy, weights Weights) []domain.ScoredTask
}

// Clock returns the current time.
type Clock func() time.Time

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	now Clock
}

// NewDefaultService creates a scorer that reads "today" from the system clock.
func NewDefaultService() Service {
	return &defaultService{now: time.Now}
}

// NewServiceWithClock creates a scorer that reads "today" from now.
// A nil clock falls back to time.Now.
func NewServiceWithClock(now Clock) Service {
	if now == nil {
		now = time.Now
	}
	return &defaultService{now: now}
}

// Score implements the Service interface
func (s *defaultService) Score(
	task domain.Task,
	all domain.TaskCollection,
	strategy Strategy,
	weights Weights,
) (float64, string) {
	return s.score(task, all, ParseStrategy(string(strategy)), weights, s.today())
}

// Breakdown implements the Service interface
func (s *defaultService) Breakdown(task domain.Task, all domain.TaskCollection) Factors {
	return computeFactors(task, all, s.today())
}

// Rank implements the Service interface
func (s *defaultService) Rank(tasks []domain.Task, strategy Strategy, weights Weights) []domain.ScoredTask {
	strategy = ParseStrategy(string(strategy))
	today := s.today()
	all := domain.NewTaskCollection(tasks)

	scored := make([]domain.ScoredTask, 0, len(tasks))
	for _, task := range tasks {
		score, explanation := s.score(task, all, strategy, weights, today)
		scored = append(scored, domain.ScoredTask{
			Task:          task.Clone(),
			PriorityScore: roundScore(score),
			Explanation:   explanation,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].PriorityScore > scored[j].PriorityScore
	})

	return scored
}

func (s *defaultService) score(
	task domain.Task,
	all domain.TaskCollection,
	strategy Strategy,
	weights Weights,
	today domain.Date,
) (float64, string) {
	factors := computeFactors(task, all, today)
	return combine(factors, task.ImportanceOrDefault(), strategy, weights)
}

func (s *defaultService) today() domain.Date {
	return domain.DateOf(s.now())
}
