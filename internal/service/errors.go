package service

import (
	"errors"
	"fmt"
	"strings"
)

// Common service errors - sentinel errors used across service implementations.
// Callers use errors.Is/errors.As to check for specific error conditions and
// the API layer maps them to HTTP status codes.
var (
	// ErrCircularDependency indicates the submitted tasks depend on each other
	// in a cycle. The whole batch is rejected.
	// API layer should map this to HTTP 400 Bad Request.
	ErrCircularDependency = errors.New("circular dependencies detected")
)

// CycleError carries the cycle that caused an analysis to be rejected.
type CycleError struct {
	// Nodes is a closed walk of task IDs; the first ID is repeated at the end.
	Nodes []string
}

// Error implements the error interface for CycleError.
func (e *CycleError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCircularDependency, strings.Join(e.Nodes, " -> "))
}

// Unwrap returns ErrCircularDependency to support errors.Is.
func (e *CycleError) Unwrap() error {
	return ErrCircularDependency
}
