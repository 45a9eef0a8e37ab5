package financetest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/finance-api/internal/config"
	"github.com/deppfellow/finance-api/internal/errs"
	"github.com/deppfellow/finance-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

// Server returns an application container without PostgreSQL, Redis or
// job workers; the rate limiter and the cache fail open without them.
func Server(cfg *config.Config) *server.Server {
	return &server.Server{Config: cfg, Logger: Logger()}
}

// Envelope decodes both the success and the error envelope.
type Envelope struct {
	Data    json.RawMessage   `json:"data"`
	Message string            `json:"message"`
	Error   string            `json:"error"`
	Details errs.ErrorDetails `json:"details"`
}

// Request sends a request to h. body is sent verbatim when it is a string
// and JSON-encoded otherwise; a nil body sends nothing.
func Request(t testing.TB, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	case []byte:
		reader = bytes.NewReader(b)
	default:
		encoded, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// Decode parses the response envelope.
func Decode(t testing.TB, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()

	var envelope Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope), rec.Body.String())
	return envelope
}

// Data parses the data member of a success envelope into T.
func Data[T any](t testing.TB, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var data T
	require.NoError(t, json.Unmarshal(Decode(t, rec).Data, &data), rec.Body.String())
	return data
}
