package handler

import (
	"io"
	"net/http"

	"github.com/deppfellow/finance-api/internal/errs"
	"github.com/deppfellow/finance-api/internal/middleware"
	"github.com/deppfellow/finance-api/internal/service"
	"github.com/labstack/echo/v4"
)

// maxWebhookBody bounds a Clerk delivery.
const maxWebhookBody = 1 << 20

// WebhookHandler receives Clerk deliveries. The signature covers the raw
// body, so it is read as bytes instead of going through Handle.
type WebhookHandler struct {
	Handler
	webhookService *service.WebhookService
}

func NewWebhookHandler(h Handler, webhookService *service.WebhookService) *WebhookHandler {
	return &WebhookHandler{Handler: h, webhookService: webhookService}
}

// HandleClerk handles POST /api/webhooks/clerk.
func (h *WebhookHandler) HandleClerk(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBody))
	if err != nil {
		return errs.NewBadRequestError("Could not read webhook body", true, nil, nil, nil)
	}

	if err := h.webhookService.Verify(body, c.Request().Header); err != nil {
		middleware.GetLogger(c).Warn().Msg("rejected webhook with invalid signature")
		return err
	}

	result, err := h.webhookService.HandleClerkEvent(c.Request().Context(), body)
	if err != nil {
		return err
	}

	middleware.GetLogger(c).Info().
		Str("event", result.Event).
		Str("action", result.Action).
		Str("clerk_user_id", result.UserID).
		Msg("processed clerk webhook")

	return c.JSON(http.StatusOK, Response{Data: result, Message: "Webhook processed"})
}
