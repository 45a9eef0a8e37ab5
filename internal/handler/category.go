package handler

import (
	"github.com/deppfellow/finance-api/internal/middleware"
	"github.com/deppfellow/finance-api/internal/model"
	"github.com/deppfellow/finance-api/internal/service"
	"github.com/labstack/echo/v4"
)

// CategoryHandler serves /api/v1/budgets/:budgetId/categories.
type CategoryHandler struct {
	Handler
	categoryService *service.CategoryService
}

func NewCategoryHandler(h Handler, categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{Handler: h, categoryService: categoryService}
}

func (h *CategoryHandler) CreateCategory(c echo.Context, payload *model.CreateCategoryPayload) (*model.Category, error) {
	return h.categoryService.CreateCategory(c.Request().Context(), middleware.GetUserID(c), payload)
}

func (h *CategoryHandler) ListCategories(c echo.Context, path *model.BudgetPath) ([]model.Category, error) {
	return h.categoryService.ListCategories(c.Request().Context(), middleware.GetUserID(c), path.BudgetID)
}

func (h *CategoryHandler) GetCategory(c echo.Context, path *model.CategoryPath) (*model.Category, error) {
	return h.categoryService.GetCategory(c.Request().Context(), middleware.GetUserID(c), path.BudgetID, path.CategoryID)
}

func (h *CategoryHandler) UpdateCategory(c echo.Context, payload *model.UpdateCategoryPayload) (*model.Category, error) {
	return h.categoryService.UpdateCategory(c.Request().Context(), middleware.GetUserID(c), payload)
}

func (h *CategoryHandler) DeleteCategory(c echo.Context, path *model.CategoryPath) (*model.Category, error) {
	return h.categoryService.DeleteCategory(c.Request().Context(), middleware.GetUserID(c), path.BudgetID, path.CategoryID)
}
