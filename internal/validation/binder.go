package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// StrictBinder binds path parameters, then decodes a JSON body rejecting any
// field the payload does not declare. Payloads keep ids and parent ids out of
// their JSON shape, so a body carrying "user_id" or "budget_id" fails here.
type StrictBinder struct {
	echo.DefaultBinder
}

// Bind implements echo.Binder.
func (b *StrictBinder) Bind(i interface{}, c echo.Context) error {
	if err := b.BindPathParams(c, i); err != nil {
		return err
	}

	req := c.Request()
	if req.ContentLength == 0 || req.Method == http.MethodGet || req.Method == http.MethodDelete {
		return nil
	}

	ctype := req.Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(ctype, echo.MIMEApplicationJSON) {
		return echo.NewHTTPError(http.StatusUnsupportedMediaType, "content type must be application/json")
	}

	dec := json.NewDecoder(req.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(i); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}

		var typeErr *json.UnmarshalTypeError
		var syntaxErr *json.SyntaxError
		switch {
		case errors.As(err, &typeErr):
			return echo.NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("field %s must be of type %s", typeErr.Field, typeErr.Type)).SetInternal(err)
		case errors.As(err, &syntaxErr):
			return echo.NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset)).SetInternal(err)
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
			return echo.NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("field %s is not allowed", field)).SetInternal(err)
		default:
			return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
		}
	}

	return nil
}
