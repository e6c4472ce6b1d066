// Package service provides the application-level orchestration of task
// analysis: dependency-cycle checking followed by priority ranking, with the
// configured scoring defaults applied. It sits between the HTTP/CLI adapters
// and the pure domain packages.
package service
