package errs

import (
	"fmt"
	"strings"
)

// FieldError is a single field-level validation failure. Field errors are
// folded into one message before they reach the client.
type FieldError struct {
	Field string
	Error string
}

// HTTPError is the only error type that is rendered to clients.
//
// Code is a machine-friendly label used in logs and traces
// (e.g. "BAD_REQUEST", "TASK_ALREADY_EXISTS"); it is not serialized.
type HTTPError struct {
	Code    string
	Message string
	Status  int
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError, regardless of status.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of e with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:    e.Code,
		Message: message,
		Status:  e.Status,
	}
}

// Response is the wire form of an HTTPError.
func (e *HTTPError) Response() ErrorResponse {
	return ErrorResponse{Success: false, Error: e.Message}
}

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// MakeUpperCaseWithUnderscores turns "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}

// JoinFieldErrors renders field errors as "name is required; email must be ...".
func JoinFieldErrors(fieldErrors []FieldError) string {
	parts := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		parts = append(parts, fmt.Sprintf("%s %s", fe.Field, fe.Error))
	}
	return strings.Join(parts, "; ")
}
