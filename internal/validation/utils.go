package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/deppfellow/finance-api/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

const validationFailed = "Validation failed"

// BindAndValidate fills payload from the path and the JSON body, then runs
// its Validate method. Both binding and validation failures come back as a
// 400 *errs.HTTPError.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		var bindErr *echo.HTTPError
		if errors.As(err, &bindErr) {
			return errs.NewBadRequestError(fmt.Sprint(bindErr.Message), true, nil, nil, nil)
		}
		return errs.NewBadRequestError("Invalid request payload", true, nil, nil, nil)
	}

	if err := payload.Validate(); err != nil {
		return errs.NewBadRequestError(validationFailed, true, nil, fieldErrors(err), nil)
	}

	return nil
}

func fieldErrors(err error) []errs.FieldError {
	var custom CustomValidationErrors
	if errors.As(err, &custom) {
		issues := make([]errs.FieldError, 0, len(custom))
		for _, e := range custom {
			issues = append(issues, errs.FieldError{Field: e.Field, Error: e.Message})
		}
		return issues
	}

	var tagged validator.ValidationErrors
	if !errors.As(err, &tagged) {
		return []errs.FieldError{{Field: "request", Error: err.Error()}}
	}

	issues := make([]errs.FieldError, 0, len(tagged))
	for _, fe := range tagged {
		issues = append(issues, errs.FieldError{
			Field: strings.ToLower(fe.Field()),
			Error: describe(fe),
		})
	}
	return issues
}

// describe renders a failed tag rule as a short phrase about the field.
func describe(fe validator.FieldError) string {
	isText := fe.Type().Kind() == reflect.String ||
		(fe.Type().Kind() == reflect.Ptr && fe.Type().Elem().Kind() == reflect.String)

	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if isText {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if isText {
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		}
		return fmt.Sprintf("must not exceed %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "email":
		return "must be a valid email address"
	case "uuid":
		return "must be a valid UUID"
	}

	if fe.Param() != "" {
		return fmt.Sprintf("failed %s=%s", fe.Tag(), fe.Param())
	}
	return "failed " + fe.Tag()
}
