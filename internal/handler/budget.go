package handler

import (
	"github.com/deppfellow/finance-api/internal/middleware"
	"github.com/deppfellow/finance-api/internal/model"
	"github.com/deppfellow/finance-api/internal/service"
	"github.com/labstack/echo/v4"
)

// BudgetHandler serves /api/v1/budgets.
type BudgetHandler struct {
	Handler
	budgetService *service.BudgetService
}

func NewBudgetHandler(h Handler, budgetService *service.BudgetService) *BudgetHandler {
	return &BudgetHandler{Handler: h, budgetService: budgetService}
}

func (h *BudgetHandler) CreateBudget(c echo.Context, payload *model.CreateBudgetPayload) (*model.Budget, error) {
	return h.budgetService.CreateBudget(c.Request().Context(), middleware.GetUserID(c), payload)
}

func (h *BudgetHandler) ListBudgets(c echo.Context, _ *model.EmptyPayload) ([]model.Budget, error) {
	return h.budgetService.ListBudgets(c.Request().Context(), middleware.GetUserID(c))
}

func (h *BudgetHandler) GetBudget(c echo.Context, path *model.BudgetPath) (*model.Budget, error) {
	return h.budgetService.GetBudget(c.Request().Context(), middleware.GetUserID(c), path.BudgetID)
}

func (h *BudgetHandler) UpdateBudget(c echo.Context, payload *model.UpdateBudgetPayload) (*model.Budget, error) {
	return h.budgetService.UpdateBudget(c.Request().Context(), middleware.GetUserID(c), payload)
}

func (h *BudgetHandler) DeleteBudget(c echo.Context, path *model.BudgetPath) (*model.Budget, error) {
	return h.budgetService.DeleteBudget(c.Request().Context(), middleware.GetUserID(c), path.BudgetID)
}
