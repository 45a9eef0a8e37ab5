package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/deppfellow/finance-api/internal/middleware"
	"github.com/labstack/echo/v4"
)

const healthCheckTimeout = 5 * time.Second

// HealthHandler serves the liveness and readiness endpoints.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(h Handler) *HealthHandler {
	return &HealthHandler{Handler: h}
}

// Live answers as long as the process serves HTTP.
func (h *HealthHandler) Live(c echo.Context) error {
	return c.JSON(http.StatusOK, Response{
		Data:    map[string]string{"status": "ok"},
		Message: "Service is alive",
	})
}

type dependencyCheck struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type healthReport struct {
	Status      string                     `json:"status"`
	Timestamp   time.Time                  `json:"timestamp"`
	Environment string                     `json:"environment"`
	Checks      map[string]dependencyCheck `json:"checks"`
}

// CheckHealth pings PostgreSQL and Redis. Either failing answers 503.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().Str("operation", "health_check").Logger()

	report := healthReport{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      map[string]dependencyCheck{},
	}

	checks := map[string]func(ctx context.Context) error{
		"database": func(ctx context.Context) error {
			if h.server.DB == nil {
				return errNotConfigured
			}
			return h.server.DB.Pool.Ping(ctx)
		},
		"redis": func(ctx context.Context) error {
			if h.server.Redis == nil {
				return errNotConfigured
			}
			return h.server.Redis.Ping(ctx).Err()
		},
	}

	for name, check := range checks {
		result := h.runCheck(c.Request().Context(), name, check)
		report.Checks[name] = result

		if result.Status != "healthy" {
			report.Status = "unhealthy"
			logger.Error().Str("check", name).Str("error", result.Error).Msg("health check failed")
		}
	}

	if report.Status != "healthy" {
		h.server.LoggerService.RecordCustomEvent("HealthCheckError", map[string]interface{}{
			"check_type":        "overall",
			"operation":         "health_check",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, Response{Data: report, Message: "Service is unhealthy"})
	}

	logger.Debug().Dur("total_duration", time.Since(start)).Msg("health check passed")

	return c.JSON(http.StatusOK, Response{Data: report, Message: "Service is healthy"})
}

func (h *HealthHandler) runCheck(ctx context.Context, name string, check func(ctx context.Context) error) dependencyCheck {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	checkStart := time.Now()
	if err := check(ctx); err != nil {
		h.server.LoggerService.RecordCustomEvent("HealthCheckError", map[string]interface{}{
			"check_type":       name,
			"operation":        "health_check",
			"error_type":       name + "_unhealthy",
			"response_time_ms": time.Since(checkStart).Milliseconds(),
			"error_message":    err.Error(),
		})

		return dependencyCheck{
			Status:       "unhealthy",
			ResponseTime: time.Since(checkStart).String(),
			Error:        err.Error(),
		}
	}

	return dependencyCheck{Status: "healthy", ResponseTime: time.Since(checkStart).String()}
}
