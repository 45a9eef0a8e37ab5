package handler

import (
	"github.com/deppfellow/finance-api/internal/model"
	"github.com/deppfellow/finance-api/internal/service"
	"github.com/labstack/echo/v4"
)

// AuthHandler serves local sign-up and sign-in.
type AuthHandler struct {
	Handler
	authService *service.AuthService
}

func NewAuthHandler(h Handler, authService *service.AuthService) *AuthHandler {
	return &AuthHandler{Handler: h, authService: authService}
}

// SignUp handles POST /api/v1/auth/sign-up.
func (h *AuthHandler) SignUp(c echo.Context, payload *model.SignUpPayload) (*model.Session, error) {
	return h.authService.SignUp(c.Request().Context(), payload)
}

// SignIn handles POST /api/v1/auth/sign-in.
func (h *AuthHandler) SignIn(c echo.Context, payload *model.SignInPayload) (*model.Session, error) {
	return h.authService.SignIn(c.Request().Context(), payload)
}
