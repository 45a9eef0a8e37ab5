package errs

import (
	"fmt"
	"net/http"
	"strings"
)

func newHTTPError(status int, message string, override bool) *HTTPError {
	return &HTTPError{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(status)),
		Message:  message,
		Status:   status,
		Override: override,
	}
}

// NewUnauthorizedError creates a 401 Unauthorized HTTPError.
//
// override tells the error handler whether the message may be shown as-is
// in production.
func NewUnauthorizedError(message string, override bool) *HTTPError {
	return newHTTPError(http.StatusUnauthorized, message, override)
}

// NewForbiddenError creates a 403 Forbidden HTTPError.
func NewForbiddenError(message string, override bool) *HTTPError {
	return newHTTPError(http.StatusForbidden, message, override)
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// code overrides the default "BAD_REQUEST" when non-nil, errors carries
// field-level issues and action an optional client instruction.
func NewBadRequestError(message string, override bool, code *string, errors []FieldError, action *Action) *HTTPError {
	err := newHTTPError(http.StatusBadRequest, message, override)
	if code != nil {
		err.Code = *code
	}
	err.Errors = errors
	err.Action = action

	return err
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	err := newHTTPError(http.StatusNotFound, message, override)
	if code != nil {
		err.Code = *code
	}

	return err
}

// NewConflictError creates a 409 Conflict HTTPError, used for uniqueness
// violations such as a duplicate email at sign-up.
func NewConflictError(message string, override bool, code *string) *HTTPError {
	err := newHTTPError(http.StatusConflict, message, override)
	if code != nil {
		err.Code = *code
	}

	return err
}

// NewTooManyRequestsError creates a 429 Too Many Requests HTTPError.
func NewTooManyRequestsError(message string) *HTTPError {
	return newHTTPError(http.StatusTooManyRequests, message, true)
}

// NewInternalServerError creates a generic 500. The message is always the
// status text so internals never leak to clients.
func NewInternalServerError() *HTTPError {
	return newHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError), false)
}

// ResourceNotFound is the 404 returned by every ownership check. The same
// error is used whether the row is missing or belongs to someone else.
func ResourceNotFound(resource, id string) *HTTPError {
	return NewNotFoundError(fmt.Sprintf("%s not found", resource), true, nil).
		WithDetails(fmt.Sprintf("%s %s", strings.ToLower(resource), id))
}
