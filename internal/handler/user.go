package handler

import (
	"github.com/deppfellow/finance-api/internal/middleware"
	"github.com/deppfellow/finance-api/internal/model"
	"github.com/deppfellow/finance-api/internal/service"
	"github.com/labstack/echo/v4"
)

// UserHandler serves the caller's own account.
type UserHandler struct {
	Handler
	userService *service.UserService
}

func NewUserHandler(h Handler, userService *service.UserService) *UserHandler {
	return &UserHandler{Handler: h, userService: userService}
}

// GetUser handles GET /api/v1/user.
func (h *UserHandler) GetUser(c echo.Context, _ *model.EmptyPayload) (*model.User, error) {
	return h.userService.GetUser(c.Request().Context(), middleware.GetUserID(c))
}

// UpdateUser handles PUT /api/v1/user.
func (h *UserHandler) UpdateUser(c echo.Context, payload *model.UpdateUserPayload) (*model.User, error) {
	return h.userService.UpdateUser(c.Request().Context(), middleware.GetUserID(c), payload)
}

// DeleteUser handles DELETE /api/v1/user and removes everything the caller owns.
func (h *UserHandler) DeleteUser(c echo.Context, _ *model.EmptyPayload) (*model.User, error) {
	return h.userService.DeleteUser(c.Request().Context(), middleware.GetUserID(c))
}
