// Package priority implements the task priority scorer: per-task urgency,
// effort, importance and dependents sub-scores combined under a selectable
// strategy into a 0-100 score with a human-readable explanation, and a
// stable descending ranking of a task list.
//
// All functions are pure over caller-owned data. The only ambient input is
// the current date, read from the service's clock once per call.
package priority
