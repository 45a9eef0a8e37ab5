// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"github.com/deppfellow/finance-api/internal/config"
	"github.com/deppfellow/finance-api/internal/handler"
	"github.com/deppfellow/finance-api/internal/middleware"
	"github.com/deppfellow/finance-api/internal/server"
	"github.com/deppfellow/finance-api/internal/service"
	"github.com/deppfellow/finance-api/internal/validation"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the echo instance with every middleware and route.
func NewRouter(s *server.Server, h *handler.Handlers, services *service.Services) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s, services)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler
	router.Binder = &validation.StrictBinder{}

	router.Use(
		middlewares.Global.BodyLimit(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.RateLimit.Limit(),
	)

	registerSystemRoutes(router, h)

	webhooks := router.Group("/api/webhooks")
	webhooks.POST("/clerk", h.Webhook.HandleClerk)

	v1 := router.Group("/api/v1")
	if services.Auth.Provider() == config.AuthProviderLocal {
		registerAuthRoutes(v1, h)
	}

	protected := v1.Group("", middlewares.Auth.RequireAuth)
	registerUserRoutes(protected, h)
	registerBudgetRoutes(protected, h)

	return router
}
