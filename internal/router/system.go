package router

import (
	"github.com/deppfellow/finance-api/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers the endpoints monitors and load balancers use.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/healthz", h.Health.Live)
	r.GET("/status", h.Health.CheckHealth)
}
