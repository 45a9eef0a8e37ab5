package handler

import (
	"github.com/deppfellow/finance-api/internal/middleware"
	"github.com/deppfellow/finance-api/internal/model"
	"github.com/deppfellow/finance-api/internal/service"
	"github.com/labstack/echo/v4"
)

// TransactionHandler serves /api/v1/budgets/:budgetId/transactions.
type TransactionHandler struct {
	Handler
	transactionService *service.TransactionService
}

func NewTransactionHandler(h Handler, transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{Handler: h, transactionService: transactionService}
}

func (h *TransactionHandler) CreateTransaction(c echo.Context, payload *model.CreateTransactionPayload) (*model.Transaction, error) {
	return h.transactionService.CreateTransaction(c.Request().Context(), middleware.GetUserID(c), payload)
}

func (h *TransactionHandler) ListTransactions(c echo.Context, path *model.BudgetPath) ([]model.Transaction, error) {
	return h.transactionService.ListTransactions(c.Request().Context(), middleware.GetUserID(c), path.BudgetID)
}

func (h *TransactionHandler) GetTransaction(c echo.Context, path *model.TransactionPath) (*model.Transaction, error) {
	return h.transactionService.GetTransaction(c.Request().Context(), middleware.GetUserID(c), path.BudgetID, path.TransactionID)
}

func (h *TransactionHandler) UpdateTransaction(c echo.Context, payload *model.UpdateTransactionPayload) (*model.Transaction, error) {
	return h.transactionService.UpdateTransaction(c.Request().Context(), middleware.GetUserID(c), payload)
}

func (h *TransactionHandler) DeleteTransaction(c echo.Context, path *model.TransactionPath) (*model.Transaction, error) {
	return h.transactionService.DeleteTransaction(c.Request().Context(), middleware.GetUserID(c), path.BudgetID, path.TransactionID)
}
