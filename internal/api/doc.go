// Package api handles incoming HTTP requests, request validation, and
// response formatting. It acts as an adapter between external clients and
// the analysis service, translating HTTP concerns to ranking operations and
// ranking failures back to status codes and error bodies.
package api
