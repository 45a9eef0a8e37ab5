package handler

import (
	"github.com/deppfellow/finance-api/internal/middleware"
	"github.com/deppfellow/finance-api/internal/model"
	"github.com/deppfellow/finance-api/internal/service"
	"github.com/labstack/echo/v4"
)

// TransactionTypeHandler serves /api/v1/budgets/:budgetId/transaction-types.
type TransactionTypeHandler struct {
	Handler
	transactionTypeService *service.TransactionTypeService
}

func NewTransactionTypeHandler(h Handler, transactionTypeService *service.TransactionTypeService) *TransactionTypeHandler {
	return &TransactionTypeHandler{Handler: h, transactionTypeService: transactionTypeService}
}

func (h *TransactionTypeHandler) CreateTransactionType(c echo.Context, payload *model.CreateTransactionTypePayload) (*model.TransactionType, error) {
	return h.transactionTypeService.CreateTransactionType(c.Request().Context(), middleware.GetUserID(c), payload)
}

func (h *TransactionTypeHandler) ListTransactionTypes(c echo.Context, path *model.BudgetPath) ([]model.TransactionType, error) {
	return h.transactionTypeService.ListTransactionTypes(c.Request().Context(), middleware.GetUserID(c), path.BudgetID)
}

func (h *TransactionTypeHandler) GetTransactionType(c echo.Context, path *model.TransactionTypePath) (*model.TransactionType, error) {
	return h.transactionTypeService.GetTransactionType(c.Request().Context(), middleware.GetUserID(c), path.BudgetID, path.TypeID)
}

func (h *TransactionTypeHandler) UpdateTransactionType(c echo.Context, payload *model.UpdateTransactionTypePayload) (*model.TransactionType, error) {
	return h.transactionTypeService.UpdateTransactionType(c.Request().Context(), middleware.GetUserID(c), payload)
}

func (h *TransactionTypeHandler) DeleteTransactionType(c echo.Context, path *model.TransactionTypePath) (*model.TransactionType, error) {
	return h.transactionTypeService.DeleteTransactionType(c.Request().Context(), middleware.GetUserID(c), path.BudgetID, path.TypeID)
}
