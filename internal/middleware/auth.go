package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/clerk/clerk-sdk-go/v2"
	clerkhttp "github.com/clerk/clerk-sdk-go/v2/http"
	"github.com/deppfellow/finance-api/internal/config"
	"github.com/deppfellow/finance-api/internal/errs"
	"github.com/deppfellow/finance-api/internal/server"
	"github.com/deppfellow/finance-api/internal/service"
	"github.com/labstack/echo/v4"
)

var errUnauthorized = errs.NewUnauthorizedError("Unauthorized", true)

// AuthMiddleware resolves the caller before any handler runs. With the
// clerk provider the Clerk session token is verified; with the local
// provider the token must have been issued by AuthService.
type AuthMiddleware struct {
	server *server.Server
	auth   *service.AuthService
}

func NewAuthMiddleware(s *server.Server, auth *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
		auth:   auth,
	}
}

// RequireAuth stores the caller's id under UserIDKey or answers 401.
func (a *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	if a.auth.Provider() == config.AuthProviderClerk {
		return a.requireClerkSession(next)
	}
	return a.requireLocalToken(next)
}

func (a *AuthMiddleware) requireLocalToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return errUnauthorized
		}

		userID, err := a.auth.VerifyToken(token)
		if err != nil {
			GetLogger(c).Debug().Err(err).Msg("rejected bearer token")
			return errUnauthorized
		}

		authenticate(c, userID)
		return next(c)
	}
}

func (a *AuthMiddleware) requireClerkSession(next echo.HandlerFunc) echo.HandlerFunc {
	return echo.WrapMiddleware(
		clerkhttp.WithHeaderAuthorization(
			clerkhttp.AuthorizationFailureHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeUnauthorized(w, r)
			}))))(
		func(c echo.Context) error {
			claims, ok := clerk.SessionClaimsFromContext(c.Request().Context())
			if !ok || claims.Subject == "" {
				GetLogger(c).Warn().Msg("could not get session claims from context")
				return errUnauthorized
			}

			authenticate(c, claims.Subject)
			return next(c)
		})
}

// authenticate records the caller and adds it to the request logger.
func authenticate(c echo.Context, userID string) {
	c.Set(UserIDKey, userID)

	l := GetLogger(c).With().Str("user_id", userID).Logger()
	setLogger(c, &l)
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}

// writeUnauthorized answers outside echo, so the envelope is written by hand.
func writeUnauthorized(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	w.WriteHeader(http.StatusUnauthorized)

	_ = json.NewEncoder(w).Encode(errs.ErrorResponse{
		Error:   errUnauthorized.Code,
		Message: errUnauthorized.Message,
		Details: errs.ErrorDetails{
			Issues: []errs.FieldError{},
			Method: r.Method,
			URL:    r.URL.RequestURI(),
		},
	})
}
