package errs

import "strings"

// FieldError represents a single validation issue tied to a request field.
//
//	{ "field": "email", "error": "must be a valid email address" }
type FieldError struct {
	// Field is the json name of the offending field (e.g. "email").
	Field string `json:"field"`

	// Error is the human-readable reason.
	Error string `json:"error"`
}

// ActionType is a string-based enum describing what the client should do.
type ActionType string

const (
	// ActionTypeRedirect tells the client it should redirect somewhere.
	// Usually "Value" holds the URL or route.
	ActionTypeRedirect ActionType = "redirect"
)

// Action describes an optional "what the client should do next" instruction,
// e.g. redirecting to the sign-in page after a 401.
type Action struct {
	Type    ActionType `json:"type"`
	Message string     `json:"message"`
	Value   string     `json:"value"`
}

// HTTPError is the domain error type returned by services and handlers.
//
// It satisfies `error` and carries everything the global error handler needs
// to build the error envelope:
//   - Code: machine-friendly error code (e.g. "NOT_FOUND", "BUDGET_ALREADY_EXISTS").
//   - Message: human-friendly message.
//   - Status: HTTP status code.
//   - Override: the message is safe to show to clients even in production.
//   - Errors: field-level validation issues.
//   - Details: contextual detail strings (which resource, which id).
//   - Action: optional client instruction.
type HTTPError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Status   int    `json:"status"`
	Override bool   `json:"override"`

	Errors  []FieldError `json:"errors"`
	Details []string     `json:"details"`

	Action *Action `json:"action"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError. It does not compare
// codes or statuses; use errors.As and inspect Status for that.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)

	return ok
}

// WithMessage returns a copy of this HTTPError with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:     e.Code,
		Message:  message,
		Status:   e.Status,
		Override: e.Override,
		Errors:   e.Errors,
		Details:  e.Details,
		Action:   e.Action,
	}
}

// WithDetails returns a copy of this HTTPError with details appended.
func (e *HTTPError) WithDetails(details ...string) *HTTPError {
	cp := e.WithMessage(e.Message)
	cp.Details = append(append([]string{}, e.Details...), details...)
	return cp
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}

// ErrorDetails is the "details" member of the error envelope.
type ErrorDetails struct {
	Issues  []FieldError `json:"issues"`
	Context []string     `json:"context,omitempty"`
	Method  string       `json:"method"`
	URL     string       `json:"url"`
	Stack   string       `json:"stack,omitempty"`
	Action  *Action      `json:"action,omitempty"`
}

// ErrorResponse is the body written for every failed request:
//
//	{ "error": "NOT_FOUND", "message": "Budget not found", "details": { ... } }
type ErrorResponse struct {
	Error   string       `json:"error"`
	Message string       `json:"message"`
	Details ErrorDetails `json:"details"`
}
