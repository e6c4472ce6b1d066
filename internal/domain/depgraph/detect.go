package depgraph

import (
	"github.com/phrazzld/taskrank-api/internal/domain"
)

// CycleReport is the result of DetectCycles.
type CycleReport struct {
	HasCycle bool `json:"has_cycle" yaml:"has_cycle"`

	// CycleNodes is a closed walk: consecutive IDs are joined by a dependency
	// edge and the first ID is repeated at the end. Empty when HasCycle is false.
	CycleNodes []string `json:"cycle_details" yaml:"cycle_details"`
}

// graph is an index-based adjacency list over task IDs.
type graph struct {
	ids   []string
	edges [][]int
}

// buildGraph creates one node per distinct task ID and an edge task -> dep
// for every dependency that names a known task. Dangling dependencies are
// dropped. Tasks without an ID contribute nothing.
func buildGraph(tasks []domain.Task) *graph {
	g := &graph{}
	index := make(map[string]int, len(tasks))
	for _, t := range tasks {
		if t.ID == "" {
			continue
		}
		if _, ok := index[t.ID]; !ok {
			index[t.ID] = len(g.ids)
			g.ids = append(g.ids, t.ID)
		}
	}

	g.edges = make([][]int, len(g.ids))
	for _, t := range tasks {
		if t.ID == "" {
			continue
		}
		from := index[t.ID]
		for _, dep := range t.Dependencies {
			if to, ok := index[dep]; ok {
				g.edges[from] = append(g.edges[from], to)
			}
		}
	}
	return g
}

const (
	white = iota // not yet visited
	gray         // on the current DFS path
	black        // fully explored
)

// DetectCycles reports whether the dependency graph of tasks contains a
// directed cycle and, if so, returns the first one found.
//
// The search is an iterative depth-first traversal using an explicit stack
// and parent indices, so deep dependency chains cannot exhaust the call
// stack. Runs in O(V+E).
func DetectCycles(tasks []domain.Task) CycleReport {
	g := buildGraph(tasks)
	n := len(g.ids)

	color := make([]uint8, n)
	parent := make([]int, n)
	next := make([]int, n) // next edge to explore per node
	stack := make([]int, 0, n)

	for start := 0; start < n; start++ {
		if color[start] != white {
			continue
		}

		color[start] = gray
		parent[start] = -1
		stack = append(stack[:0], start)

		for len(stack) > 0 {
			u := stack[len(stack)-1]
			if next[u] == len(g.edges[u]) {
				color[u] = black
				stack = stack[:len(stack)-1]
				continue
			}

			v := g.edges[u][next[u]]
			next[u]++

			switch color[v] {
			case white:
				color[v] = gray
				parent[v] = u
				stack = append(stack, v)
			case gray:
				return CycleReport{HasCycle: true, CycleNodes: g.cycle(parent, u, v)}
			}
		}
	}

	return CycleReport{HasCycle: false, CycleNodes: []string{}}
}

// cycle rebuilds the closed walk for the back-edge u -> v, where v is an
// ancestor of u (or u itself) on the current path: [v, ..., u, v].
func (g *graph) cycle(parent []int, u, v int) []string {
	var rev []int
	for cur := u; cur != v; cur = parent[cur] {
		rev = append(rev, cur)
	}

	out := make([]string, 0, len(rev)+2)
	out = append(out, g.ids[v])
	for i := len(rev) - 1; i >= 0; i-- {
		out = append(out, g.ids[rev[i]])
	}
	return append(out, g.ids[v])
}
