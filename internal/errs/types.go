package errs

import (
	"net/http"
)

func newHTTPError(status int, message string) *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(status)),
		Message: message,
		Status:  status,
	}
}

// NewUnauthorizedError creates a 401 Unauthorized HTTPError.
func NewUnauthorizedError(message string) *HTTPError {
	return newHTTPError(http.StatusUnauthorized, message)
}

// NewForbiddenError creates a 403 Forbidden HTTPError (CORS or referer rejection).
func NewForbiddenError(message string) *HTTPError {
	return newHTTPError(http.StatusForbidden, message)
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
// code overrides the default "BAD_REQUEST" label when non-nil.
func NewBadRequestError(message string, code *string) *HTTPError {
	err := newHTTPError(http.StatusBadRequest, message)
	if code != nil {
		err.Code = *code
	}
	return err
}

// NewConflictError reports a duplicate resource with status 400.
func NewConflictError(message string, code string) *HTTPError {
	return NewBadRequestError(message, &code)
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string, code *string) *HTTPError {
	err := newHTTPError(http.StatusNotFound, message)
	if code != nil {
		err.Code = *code
	}
	return err
}

// NewInternalServerError creates a 500. message must stay generic: it is
// shown to the client while the underlying error is only logged.
func NewInternalServerError(message string) *HTTPError {
	if message == "" {
		message = http.StatusText(http.StatusInternalServerError)
	}
	return newHTTPError(http.StatusInternalServerError, message)
}

// ValidationError converts field errors into a 400.
func ValidationError(fieldErrors []FieldError) *HTTPError {
	if len(fieldErrors) == 0 {
		return NewBadRequestError("Validation failed", nil)
	}
	return NewBadRequestError("Validation failed: "+JoinFieldErrors(fieldErrors), nil)
}
