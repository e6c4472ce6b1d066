package domain

// Defaults applied to optional task fields.
const (
	DefaultEstimatedHours = 1.0
	DefaultImportance     = 1
)

// Task is a user-defined unit of work submitted for ranking.
// Tasks are immutable for the duration of a scoring run.
type Task struct {
	// ID is optional. Tasks without an ID are still scored but cannot be
	// depended upon and take no part in cycle detection.
	ID string `json:"id,omitempty" yaml:"id,omitempty"`

	// Title is for display only and plays no role in scoring.
	Title string `json:"title" yaml:"title"`

	DueDate        *Date    `json:"due_date,omitempty"        yaml:"due_date,omitempty"`
	EstimatedHours *float64 `json:"estimated_hours,omitempty" yaml:"estimated_hours,omitempty"`
	Importance     *int     `json:"importance,omitempty"      yaml:"importance,omitempty"`

	// Dependencies lists the IDs of tasks this task depends on.
	Dependencies []string `json:"dependencies" yaml:"dependencies,omitempty"`
}

// HoursOrDefault returns the estimated hours, or DefaultEstimatedHours when unset.
func (t Task) HoursOrDefault() float64 {
	if t.EstimatedHours == nil {
		return DefaultEstimatedHours
	}
	return *t.EstimatedHours
}

// ImportanceOrDefault returns the importance, or DefaultImportance when unset.
func (t Task) ImportanceOrDefault() int {
	if t.Importance == nil {
		return DefaultImportance
	}
	return *t.Importance
}

// DependsOn reports whether id appears in the task's dependency list.
// An empty id never matches.
func (t Task) DependsOn(id string) bool {
	if id == "" {
		return false
	}
	for _, dep := range t.Dependencies {
		if dep == id {
			return true
		}
	}
	return false
}

// Clone returns a copy of the task that shares no slices with the original.
func (t Task) Clone() Task {
	c := t
	c.Dependencies = make([]string, len(t.Dependencies))
	copy(c.Dependencies, t.Dependencies)
	return c
}

// TaskCollection indexes the tasks of one request by ID.
// When IDs are duplicated the last task wins.
type TaskCollection map[string]Task

// NewTaskCollection indexes tasks by ID, skipping tasks without one.
func NewTaskCollection(tasks []Task) TaskCollection {
	c := make(TaskCollection, len(tasks))
	for _, t := range tasks {
		if t.ID == "" {
			continue
		}
		c[t.ID] = t
	}
	return c
}

// Dependents counts the tasks in the collection that list id as a dependency.
func (c TaskCollection) Dependents(id string) int {
	if id == "" {
		return 0
	}
	count := 0
	for _, t := range c {
		if t.DependsOn(id) {
			count++
		}
	}
	return count
}

// ScoredTask is a Task annotated with its computed priority.
type ScoredTask struct {
	Task `yaml:",inline"`

	// PriorityScore lies in [0, 100] and is rounded to two decimal places.
	PriorityScore float64 `json:"priority_score" yaml:"priority_score"`
	Explanation   string  `json:"explanation"    yaml:"explanation"`
}

// Float64Ptr returns a pointer to v.
func Float64Ptr(v float64) *float64 { return &v }

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }

// DatePtr returns a pointer to d.
func DatePtr(d Date) *Date { return &d }
