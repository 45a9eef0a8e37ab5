package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/finance-api/internal/errs"
	"github.com/deppfellow/finance-api/internal/financetest"
	"github.com/deppfellow/finance-api/internal/server"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T) *server.Server {
	t.Helper()
	return financetest.Server(financetest.Config(t))
}

// serveError runs a handler returning err through the global error handler.
func serveError(t *testing.T, s *server.Server, err error) (int, errs.ErrorResponse) {
	t.Helper()

	e := echo.New()
	e.HTTPErrorHandler = NewGlobalMiddlewares(s).GlobalErrorHandler
	e.GET("/boom", func(c echo.Context) error { return err })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom?x=1", nil))

	var body errs.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return rec.Code, body
}

func TestGlobalErrorHandler(t *testing.T) {
	s := testServer(t)

	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{
			name:    "domain error",
			err:     errs.ResourceNotFound("Budget", "42"),
			status:  http.StatusNotFound,
			code:    "NOT_FOUND",
			message: "Budget not found",
		},
		{
			name:    "missing row",
			err:     fmt.Errorf("table:budget_categories: %w", pgx.ErrNoRows),
			status:  http.StatusNotFound,
			code:    "NOT_FOUND",
			message: "Budget Category not found",
		},
		{
			name:   "unique violation",
			err:    &pgconn.PgError{Code: "23505", TableName: "users", ConstraintName: "users_email_key"},
			status: http.StatusConflict,
			code:   "USER_ALREADY_EXISTS",
		},
		{
			name:   "foreign key violation",
			err:    &pgconn.PgError{Code: "23503", TableName: "transactions", ConstraintName: "transactions_item_id_fkey"},
			status: http.StatusBadRequest,
			code:   "TRANSACTION_NOT_FOUND",
		},
		{
			name:    "echo error",
			err:     echo.ErrMethodNotAllowed,
			status:  http.StatusMethodNotAllowed,
			code:    "METHOD_NOT_ALLOWED",
			message: "Method not allowed",
		},
		{
			name:    "unknown error",
			err:     fmt.Errorf("something broke"),
			status:  http.StatusInternalServerError,
			code:    "INTERNAL_SERVER_ERROR",
			message: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := serveError(t, s, tt.err)

			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, body.Error)
			if tt.message != "" {
				assert.Equal(t, tt.message, body.Message)
			}
			assert.Equal(t, http.MethodGet, body.Details.Method)
			assert.Equal(t, "/boom?x=1", body.Details.URL)
			assert.NotNil(t, body.Details.Issues)
			assert.NotEmpty(t, body.Details.Stack)
		})
	}
}

func TestGlobalErrorHandlerInProduction(t *testing.T) {
	s := testServer(t)
	s.Config.Primary.Env = "production"

	status, body := serveError(t, s, errs.NewBadRequestError("raw database detail", false, nil, nil, nil))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Bad Request", body.Message)
	assert.Empty(t, body.Details.Stack)

	_, body = serveError(t, s, errs.ResourceNotFound("Item", "7"))
	assert.Equal(t, "Item not found", body.Message)
	assert.Equal(t, []string{"item 7"}, body.Details.Context)
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"Bearer ", "", false},
		{"Basic abc", "", false},
		{"abc", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		token, ok := bearerToken(tt.header)
		assert.Equal(t, tt.ok, ok, tt.header)
		assert.Equal(t, tt.token, token, tt.header)
	}
}

func TestRequireAuthLocal(t *testing.T) {
	env := financetest.NewEnv(t, nil)
	s := financetest.Server(env.Config)

	e := echo.New()
	e.HTTPErrorHandler = NewGlobalMiddlewares(s).GlobalErrorHandler

	var reached bool
	e.GET("/me", func(c echo.Context) error {
		reached = true
		return c.String(http.StatusOK, GetUserID(c))
	}, NewAuthMiddleware(s, env.Services.Auth).RequireAuth)

	token, _, err := env.Services.Auth.IssueToken("user-1")
	require.NoError(t, err)

	rec := financetest.Request(t, e, http.MethodGet, "/me", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", rec.Body.String())

	reached = false
	rec = financetest.Request(t, e, http.MethodGet, "/me", "forged", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestRequestIDReusesIncomingHeader(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())
	e.GET("/", func(c echo.Context) error { return c.String(http.StatusOK, GetRequestID(c)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Body.String())
	assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))
}

func TestRequestIDReplacesMalformedHeader(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())
	e.GET("/", func(c echo.Context) error { return c.String(http.StatusOK, GetRequestID(c)) })

	for _, incoming := range []string{"has space", strings.Repeat("a", maxRequestIDLength+1)} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, incoming)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		_, err := uuid.Parse(rec.Body.String())
		assert.NoError(t, err, incoming)
	}
}

func TestLoggerFallbacks(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	assert.NotNil(t, GetLogger(c))
	assert.Empty(t, GetUserID(c))
}
