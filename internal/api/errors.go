package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/taskrank-api/internal/api/shared"
	"github.com/phrazzld/taskrank-api/internal/domain"
	"github.com/phrazzld/taskrank-api/internal/platform/logger"
	"github.com/phrazzld/taskrank-api/internal/service"
)

// ErrInvalidJSON is returned when the request body cannot be decoded.
var ErrInvalidJSON = fmt.Errorf("%w: malformed JSON request body", domain.ErrInvalidFormat)

// Client-facing messages.
const (
	msgInvalidJSON      = "Invalid JSON"
	msgValidationFailed = "Validation failed"
	msgCircular         = "Circular dependencies detected"
	msgUnexpected       = "An unexpected error occurred"
)

// TaskValidationError collects the validation failures of every task in a
// request. Each detail is prefixed with the task's position, e.g. "Task 2: ...".
type TaskValidationError struct {
	Details []string
}

// Error implements the error interface.
func (e *TaskValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Details, "; ")
}

// Unwrap makes the error match domain.ErrValidation.
func (e *TaskValidationError) Unwrap() error {
	return domain.ErrValidation
}

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, service.ErrCircularDependency),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrInvalidFormat):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	switch {
	case err == nil:
		return msgUnexpected
	case errors.Is(err, service.ErrCircularDependency):
		return msgCircular
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidDate):
		return msgValidationFailed
	case errors.Is(err, domain.ErrInvalidFormat):
		return msgInvalidJSON
	default:
		return msgUnexpected
	}
}

// HandleAPIError writes the response for err. Cycle and task validation
// errors get their dedicated bodies; everything else a sanitized message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	traceID := shared.GetTraceID(r.Context())

	if nodes, ok := service.IsCycleError(err); ok {
		logger.FromContext(r.Context()).Debug("rejecting request with circular dependencies",
			slog.Any("cycle", nodes))
		shared.RespondWithJSON(w, r, http.StatusBadRequest, CycleErrorResponse{
			Error:        msgCircular,
			HasCycle:     true,
			CycleDetails: nodes,
			TraceID:      traceID,
		})
		return
	}

	var validationErr *TaskValidationError
	if errors.As(err, &validationErr) {
		logger.FromContext(r.Context()).Debug("rejecting request with invalid tasks",
			slog.Int("error_count", len(validationErr.Details)))
		shared.RespondWithJSON(w, r, http.StatusBadRequest, ValidationErrorResponse{
			Error:   msgValidationFailed,
			Details: validationErr.Details,
			TraceID: traceID,
		})
		return
	}

	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}

// describeDecodeError turns a per-task JSON decoding failure into a client message.
func describeDecodeError(err error) string {
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, domain.ErrInvalidDate):
		return "due_date: must be a valid date in YYYY-MM-DD format"
	case errors.As(err, &typeErr):
		if typeErr.Field == "" {
			return "must be a JSON object"
		}
		return fmt.Sprintf("%s: must be %s", typeErr.Field, jsonTypeName(typeErr.Type))
	default:
		return "malformed task"
	}
}

func jsonTypeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.String:
		return "a string"
	case reflect.Slice, reflect.Array:
		return "a list"
	default:
		return "an object"
	}
}

// describeValidationError returns one message per failed field.
func describeValidationError(err error) []string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{"invalid task"}
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, fmt.Sprintf("%s: %s", fe.Field(), getValidationTagMessage(fe)))
	}
	return messages
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	default:
		return "invalid value"
	}
}
