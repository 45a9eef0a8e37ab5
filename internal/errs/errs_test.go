package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsSetStatusAndCode(t *testing.T) {
	custom := "BUDGET_ALREADY_EXISTS"

	cases := []struct {
		name   string
		err    *HTTPError
		status int
		code   string
	}{
		{"unauthorized", NewUnauthorizedError("nope", false), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", NewForbiddenError("nope", false), http.StatusForbidden, "FORBIDDEN"},
		{"bad request", NewBadRequestError("bad", false, nil, nil, nil), http.StatusBadRequest, "BAD_REQUEST"},
		{"not found", NewNotFoundError("missing", false, nil), http.StatusNotFound, "NOT_FOUND"},
		{"conflict custom code", NewConflictError("dup", true, &custom), http.StatusConflict, custom},
		{"too many requests", NewTooManyRequestsError("slow down"), http.StatusTooManyRequests, "TOO_MANY_REQUESTS"},
		{"internal", NewInternalServerError(), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.status, tc.err.Status)
			assert.Equal(t, tc.code, tc.err.Code)
		})
	}
}

func TestInternalServerErrorHidesMessage(t *testing.T) {
	err := NewInternalServerError()
	assert.Equal(t, "Internal Server Error", err.Message)
	assert.False(t, err.Override)
}

func TestResourceNotFound(t *testing.T) {
	err := ResourceNotFound("Budget", "42")

	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.Equal(t, "Budget not found", err.Message)
	assert.Equal(t, []string{"budget 42"}, err.Details)
}

func TestWithDetailsDoesNotMutateOriginal(t *testing.T) {
	base := NewNotFoundError("missing", false, nil)
	withDetails := base.WithDetails("a", "b")

	assert.Empty(t, base.Details)
	assert.Equal(t, []string{"a", "b"}, withDetails.Details)
}

func TestErrorsAsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", NewConflictError("dup", true, nil))

	var httpErr *HTTPError
	require.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, http.StatusConflict, httpErr.Status)
	assert.True(t, errors.Is(wrapped, &HTTPError{}))
}

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "NOT_FOUND", MakeUpperCaseWithUnderscores("not found"))
}
