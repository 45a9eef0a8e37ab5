package handler

import (
	"github.com/deppfellow/finance-api/internal/middleware"
	"github.com/deppfellow/finance-api/internal/model"
	"github.com/deppfellow/finance-api/internal/service"
	"github.com/labstack/echo/v4"
)

// ItemHandler serves the items of a category, including the bulk delete.
type ItemHandler struct {
	Handler
	itemService *service.ItemService
}

func NewItemHandler(h Handler, itemService *service.ItemService) *ItemHandler {
	return &ItemHandler{Handler: h, itemService: itemService}
}

func (h *ItemHandler) CreateItem(c echo.Context, payload *model.CreateItemPayload) (*model.Item, error) {
	return h.itemService.CreateItem(c.Request().Context(), middleware.GetUserID(c), payload)
}

func (h *ItemHandler) ListItems(c echo.Context, path *model.CategoryPath) ([]model.Item, error) {
	return h.itemService.ListItems(c.Request().Context(), middleware.GetUserID(c), path.BudgetID, path.CategoryID)
}

func (h *ItemHandler) GetItem(c echo.Context, path *model.ItemPath) (*model.Item, error) {
	return h.itemService.GetItem(c.Request().Context(), middleware.GetUserID(c), path)
}

func (h *ItemHandler) UpdateItem(c echo.Context, payload *model.UpdateItemPayload) (*model.Item, error) {
	return h.itemService.UpdateItem(c.Request().Context(), middleware.GetUserID(c), payload)
}

func (h *ItemHandler) DeleteItem(c echo.Context, path *model.ItemPath) (*model.Item, error) {
	return h.itemService.DeleteItem(c.Request().Context(), middleware.GetUserID(c), path)
}

// DeleteItems empties the category and returns what was removed.
func (h *ItemHandler) DeleteItems(c echo.Context, path *model.CategoryPath) ([]model.Item, error) {
	return h.itemService.DeleteItems(c.Request().Context(), middleware.GetUserID(c), path.BudgetID, path.CategoryID)
}
