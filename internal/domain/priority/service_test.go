package priority

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/taskrank-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2025, time.June, 15, 9, 30, 0, 0, time.UTC)
}

func newTask(id string, dueOffset *int, hours float64, importance int, deps ...string) domain.Task {
	task := domain.Task{
		ID:             id,
		Title:          "Task " + id,
		EstimatedHours: domain.Float64Ptr(hours),
		Importance:     domain.IntPtr(importance),
		Dependencies:   deps,
	}
	if dueOffset != nil {
		task.DueDate = domain.DatePtr(fixedToday.AddDays(*dueOffset))
	}
	return task
}

func TestNewServiceWithClock_NilFallsBackToSystemClock(t *testing.T) {
	t.Parallel()

	svc := NewServiceWithClock(nil)
	due := domain.DateOf(time.Now())
	score, explanation := svc.Score(domain.Task{DueDate: &due}, nil, StrategyDeadline, DefaultWeights())

	assert.Equal(t, 70.0, score)
	assert.Contains(t, explanation, "due today")
}

func TestService_Score(t *testing.T) {
	t.Parallel()

	svc := NewServiceWithClock(fixedClock)

	t.Run("smart balance with defaults for missing fields", func(t *testing.T) {
		task := domain.Task{ID: "a", Title: "bare"}
		score, explanation := svc.Score(task, domain.NewTaskCollection([]domain.Task{task}), StrategySmartBalance, DefaultWeights())

		// urgency 50*0.3 + importance 10*0.3 + effort 90*0.2 + dependents 0
		assert.InDelta(t, 36.0, score, 1e-9)
		assert.Equal(t,
			"Balanced priority calculation (Smart Balance strategy); Neutral urgency; "+
				"Task requires 1 hours of effort; Task blocks 0 other tasks",
			explanation)
	})

	t.Run("unknown strategy falls back to smart balance", func(t *testing.T) {
		task := newTask("a", nil, 3, 5)
		score, explanation := svc.Score(task, nil, Strategy("whatever"), DefaultWeights())

		assert.InDelta(t, 44.0, score, 1e-9)
		assert.True(t, strings.HasPrefix(explanation, "Balanced priority calculation"))
	})

	t.Run("only smart balance consults weights", func(t *testing.T) {
		task := newTask("a", intp(2), 3, 5)
		zero := Weights{}
		for _, s := range []Strategy{StrategyFastest, StrategyImpact, StrategyDeadline} {
			withDefaults, _ := svc.Score(task, nil, s, DefaultWeights())
			withZero, _ := svc.Score(task, nil, s, zero)
			assert.Equal(t, withDefaults, withZero, "strategy %s", s)
		}

		balanced, _ := svc.Score(task, nil, StrategySmartBalance, zero)
		assert.Equal(t, 0.0, balanced)
	})

	t.Run("impact strategy explanation", func(t *testing.T) {
		score, explanation := svc.Score(newTask("a", nil, 3, 8), nil, StrategyImpact, DefaultWeights())
		assert.Equal(t, 80.0, score)
		assert.Contains(t, explanation, "Task importance level: 8/10")
	})

	t.Run("dependents count comes from the collection", func(t *testing.T) {
		target := newTask("t", nil, 1, 1)
		all := domain.NewTaskCollection([]domain.Task{
			target,
			newTask("a", nil, 1, 1, "t"),
			newTask("b", nil, 1, 1, "t"),
		})

		_, explanation := svc.Score(target, all, StrategySmartBalance, DefaultWeights())
		assert.Contains(t, explanation, "Task blocks 2 other tasks")
	})
}

func TestService_Breakdown(t *testing.T) {
	t.Parallel()

	svc := NewServiceWithClock(fixedClock)
	target := newTask("t", intp(-2), 3, 6)
	all := domain.NewTaskCollection([]domain.Task{
		target,
		newTask("a", nil, 1, 1, "t"),
		newTask("b", nil, 1, 1, "t", "a"),
	})

	f := svc.Breakdown(target, all)

	assert.Equal(t, 82.0, f.Urgency)
	assert.Equal(t, 60.0, f.Importance)
	assert.Equal(t, 70.0, f.Effort)
	assert.Equal(t, 40.0, f.Dependents)
	assert.Equal(t, 2, f.DependentsCount)
}

func TestService_Rank(t *testing.T) {
	t.Parallel()

	svc := NewServiceWithClock(fixedClock)

	t.Run("output is a sorted permutation of the input", func(t *testing.T) {
		tasks := []domain.Task{
			newTask("task1", intp(3), 2, 9),
			newTask("task2", intp(20), 5, 5),
			newTask("task3", intp(8), 1, 7, "task1"),
			newTask("task4", intp(-4), 8, 2),
			{Title: "no id"},
		}

		ranked := svc.Rank(tasks, StrategySmartBalance, DefaultWeights())

		require.Len(t, ranked, len(tasks))
		seen := make(map[string]int)
		for i, st := range ranked {
			seen[st.Title]++
			assert.GreaterOrEqual(t, st.PriorityScore, MinScore)
			assert.LessOrEqual(t, st.PriorityScore, MaxScore)
			assert.NotEmpty(t, st.Explanation)
			if i > 0 {
				assert.GreaterOrEqual(t, ranked[i-1].PriorityScore, st.PriorityScore)
			}
		}
		for _, task := range tasks {
			assert.Equal(t, 1, seen[task.Title], "task %q should appear exactly once", task.Title)
		}
	})

	t.Run("fastest ranks a 1 hour task above a 5 hour task", func(t *testing.T) {
		tasks := []domain.Task{
			newTask("slow", intp(5), 5, 5),
			newTask("quick", intp(5), 1, 5),
		}

		ranked := svc.Rank(tasks, StrategyFastest, DefaultWeights())

		require.Len(t, ranked, 2)
		assert.Equal(t, "quick", ranked[0].ID)
		assert.Equal(t, 90.0, ranked[0].PriorityScore)
		assert.Equal(t, "slow", ranked[1].ID)
		assert.Equal(t, 50.0, ranked[1].PriorityScore)
	})

	t.Run("deadline ranks past due above future due", func(t *testing.T) {
		tasks := []domain.Task{
			newTask("future", intp(10), 3, 5),
			newTask("past", intp(-2), 3, 5),
		}

		ranked := svc.Rank(tasks, StrategyDeadline, DefaultWeights())

		require.Len(t, ranked, 2)
		assert.Equal(t, "past", ranked[0].ID)
		assert.Greater(t, ranked[0].PriorityScore, ranked[1].PriorityScore)
		assert.Contains(t, strings.ToLower(ranked[0].Explanation), "past due")
	})

	t.Run("ties keep input order", func(t *testing.T) {
		var tasks []domain.Task
		for i := 0; i < 10; i++ {
			tasks = append(tasks, newTask(fmt.Sprintf("t%d", i), nil, 2, 5))
		}
		tasks = append(tasks, newTask("top", nil, 2, 10))

		ranked := svc.Rank(tasks, StrategyImpact, DefaultWeights())

		require.Len(t, ranked, 11)
		assert.Equal(t, "top", ranked[0].ID)
		for i := 1; i < len(ranked); i++ {
			assert.Equal(t, fmt.Sprintf("t%d", i-1), ranked[i].ID)
		}
	})

	t.Run("scores are rounded to two decimals", func(t *testing.T) {
		third := 1.0 / 3
		w := Weights{Urgency: third, Importance: third, Effort: third, Dependencies: 0}

		ranked := svc.Rank([]domain.Task{newTask("a", nil, 1, 1)}, StrategySmartBalance, w)

		// (50 + 10 + 90) / 3 = 50
		assert.Equal(t, 50.0, ranked[0].PriorityScore)

		ranked = svc.Rank([]domain.Task{newTask("b", nil, 2, 1)}, StrategySmartBalance, w)
		// (50 + 10 + 80) / 3 = 46.666...
		assert.Equal(t, 46.67, ranked[0].PriorityScore)
	})

	t.Run("does not share dependency slices with input", func(t *testing.T) {
		tasks := []domain.Task{newTask("a", nil, 1, 1, "b"), newTask("b", nil, 1, 1)}

		ranked := svc.Rank(tasks, StrategySmartBalance, DefaultWeights())
		for i := range ranked {
			if ranked[i].ID == "a" {
				ranked[i].Dependencies[0] = "mutated"
			}
		}

		assert.Equal(t, "b", tasks[0].Dependencies[0])
	})

	t.Run("empty input", func(t *testing.T) {
		ranked := svc.Rank(nil, StrategySmartBalance, DefaultWeights())
		assert.NotNil(t, ranked)
		assert.Empty(t, ranked)
	})
}

func TestDefaultService_UsesCurrentDate(t *testing.T) {
	t.Parallel()

	svc := NewDefaultService()
	today := domain.DateOf(time.Now())
	tasks := []domain.Task{
		{ID: "future", Title: "future", DueDate: domain.DatePtr(today.AddDays(10)),
			EstimatedHours: domain.Float64Ptr(3), Importance: domain.IntPtr(5)},
		{ID: "past", Title: "past", DueDate: domain.DatePtr(today.AddDays(-2)),
			EstimatedHours: domain.Float64Ptr(3), Importance: domain.IntPtr(5)},
	}

	ranked := svc.Rank(tasks, StrategyDeadline, DefaultWeights())

	require.Len(t, ranked, 2)
	assert.Equal(t, "past", ranked[0].ID)
	assert.Contains(t, ranked[0].Explanation, "past due")
}
