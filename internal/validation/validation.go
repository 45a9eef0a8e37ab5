// Package validation binds request payloads and turns validation failures
// into 400 responses with per-field issues.
//
// Struct tag rules run through go-playground/validator; rules a tag cannot
// express (a non-negative decimal, for instance) are reported as
// CustomValidationErrors by the payload itself.
package validation

// Validatable is implemented by every request payload.
type Validatable interface {
	Validate() error
}

// CustomValidationError is a single field issue raised outside struct tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors satisfies error so payloads can return it from Validate.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}
