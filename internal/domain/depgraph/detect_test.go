package depgraph

import (
	"fmt"
	"testing"

	"github.com/phrazzld/taskrank-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func task(id string, deps ...string) domain.Task {
	return domain.Task{ID: id, Title: "Task " + id, Dependencies: deps}
}

// assertClosedWalk checks that nodes form a cycle over the tasks' edges.
func assertClosedWalk(t *testing.T, tasks []domain.Task, nodes []string) {
	t.Helper()

	require.GreaterOrEqual(t, len(nodes), 2)
	assert.Equal(t, nodes[0], nodes[len(nodes)-1], "cycle must be closed")

	byID := make(map[string]domain.Task)
	for _, tk := range tasks {
		byID[tk.ID] = tk
	}
	for i := 0; i+1 < len(nodes); i++ {
		from, ok := byID[nodes[i]]
		require.True(t, ok, "unknown node %q", nodes[i])
		assert.True(t, from.DependsOn(nodes[i+1]), "missing edge %s -> %s", nodes[i], nodes[i+1])
	}
}

func TestDetectCycles_ThreeNodeCycle(t *testing.T) {
	t.Parallel()

	tasks := []domain.Task{
		task("taskA", "taskB"),
		task("taskB", "taskC"),
		task("taskC", "taskA"),
	}

	report := DetectCycles(tasks)

	require.True(t, report.HasCycle)
	assert.Len(t, report.CycleNodes, 4)
	assert.ElementsMatch(t, []string{"taskA", "taskB", "taskC"}, report.CycleNodes[:3])
	assertClosedWalk(t, tasks, report.CycleNodes)
}

func TestDetectCycles_NoCycle(t *testing.T) {
	t.Parallel()

	tasks := []domain.Task{
		task("taskX"),
		task("taskY", "taskX"),
	}

	report := DetectCycles(tasks)

	assert.False(t, report.HasCycle)
	assert.NotNil(t, report.CycleNodes)
	assert.Empty(t, report.CycleNodes)
}

func TestDetectCycles(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		tasks     []domain.Task
		hasCycle  bool
		wantNodes []string
	}{
		{
			name:     "empty input",
			tasks:    nil,
			hasCycle: false,
		},
		{
			name:      "self dependency",
			tasks:     []domain.Task{task("a", "a")},
			hasCycle:  true,
			wantNodes: []string{"a", "a"},
		},
		{
			name:      "two node cycle",
			tasks:     []domain.Task{task("a", "b"), task("b", "a")},
			hasCycle:  true,
			wantNodes: []string{"a", "b", "a"},
		},
		{
			name:     "diamond is acyclic",
			tasks:    []domain.Task{task("a", "b", "c"), task("b", "d"), task("c", "d"), task("d")},
			hasCycle: false,
		},
		{
			name:     "dangling dependencies are ignored",
			tasks:    []domain.Task{task("a", "ghost"), task("b", "a", "phantom")},
			hasCycle: false,
		},
		{
			name: "tasks without id take no part",
			tasks: []domain.Task{
				{Title: "anonymous", Dependencies: []string{"a"}},
				task("a", ""),
			},
			hasCycle: false,
		},
		{
			name: "cycle reached through an acyclic prefix",
			tasks: []domain.Task{
				task("root", "x"),
				task("x", "y"),
				task("y", "z"),
				task("z", "x"),
			},
			hasCycle:  true,
			wantNodes: []string{"x", "y", "z", "x"},
		},
		{
			name: "cycle in a later component",
			tasks: []domain.Task{
				task("a", "b"),
				task("b"),
				task("c", "d"),
				task("d", "c"),
			},
			hasCycle:  true,
			wantNodes: []string{"c", "d", "c"},
		},
		{
			name: "forward edge to finished node is not a cycle",
			tasks: []domain.Task{
				task("a", "b", "c"),
				task("b", "c"),
				task("c"),
			},
			hasCycle: false,
		},
		{
			name: "duplicate ids merge their edges",
			tasks: []domain.Task{
				task("a", "b"),
				task("b"),
				task("b", "a"),
			},
			hasCycle:  true,
			wantNodes: []string{"a", "b", "a"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			report := DetectCycles(tc.tasks)

			assert.Equal(t, tc.hasCycle, report.HasCycle)
			if !tc.hasCycle {
				assert.Empty(t, report.CycleNodes)
				return
			}
			assertClosedWalk(t, tc.tasks, report.CycleNodes)
			if tc.wantNodes != nil {
				assert.Equal(t, tc.wantNodes, report.CycleNodes)
			}
		})
	}
}

func TestDetectCycles_MultipleCyclesReportsOne(t *testing.T) {
	t.Parallel()

	tasks := []domain.Task{
		task("a", "b"), task("b", "a"),
		task("c", "d"), task("d", "e"), task("e", "c"),
	}

	report := DetectCycles(tasks)

	require.True(t, report.HasCycle)
	assertClosedWalk(t, tasks, report.CycleNodes)
}

func TestDetectCycles_DeepChainDoesNotRecurse(t *testing.T) {
	t.Parallel()

	const depth = 200000
	tasks := make([]domain.Task, depth)
	for i := 0; i < depth; i++ {
		var deps []string
		if i+1 < depth {
			deps = []string{fmt.Sprintf("n%d", i+1)}
		}
		tasks[i] = task(fmt.Sprintf("n%d", i), deps...)
	}

	assert.False(t, DetectCycles(tasks).HasCycle)

	tasks[depth-1].Dependencies = []string{"n0"}
	report := DetectCycles(tasks)
	require.True(t, report.HasCycle)
	assert.Len(t, report.CycleNodes, depth+1)
	assert.Equal(t, "n0", report.CycleNodes[0])
}
