package router

import (
	"net/http"

	"github.com/deppfellow/finance-api/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerAuthRoutes exposes the local provider's sign-up and sign-in.
func registerAuthRoutes(g *echo.Group, h *handler.Handlers) {
	auth := g.Group("/auth")
	auth.POST("/sign-up", handler.Handle(h.Auth.Handler, h.Auth.SignUp, http.StatusCreated, "User registered"))
	auth.POST("/sign-in", handler.Handle(h.Auth.Handler, h.Auth.SignIn, http.StatusOK, "Signed in"))
}

func registerUserRoutes(g *echo.Group, h *handler.Handlers) {
	user := g.Group("/user")
	user.GET("", handler.Handle(h.User.Handler, h.User.GetUser, http.StatusOK, "User retrieved"))
	user.PUT("", handler.Handle(h.User.Handler, h.User.UpdateUser, http.StatusOK, "User updated"))
	user.DELETE("", handler.Handle(h.User.Handler, h.User.DeleteUser, http.StatusOK, "User deleted"))
}

// registerBudgetRoutes registers budgets and everything nested under them.
func registerBudgetRoutes(g *echo.Group, h *handler.Handlers) {
	budgets := g.Group("/budgets")
	budgets.GET("", handler.Handle(h.Budget.Handler, h.Budget.ListBudgets, http.StatusOK, "Budgets retrieved"))
	budgets.POST("", handler.Handle(h.Budget.Handler, h.Budget.CreateBudget, http.StatusCreated, "Budget created"))

	budget := budgets.Group("/:budgetId")
	budget.GET("", handler.Handle(h.Budget.Handler, h.Budget.GetBudget, http.StatusOK, "Budget retrieved"))
	budget.PUT("", handler.Handle(h.Budget.Handler, h.Budget.UpdateBudget, http.StatusOK, "Budget updated"))
	budget.DELETE("", handler.Handle(h.Budget.Handler, h.Budget.DeleteBudget, http.StatusOK, "Budget deleted"))

	categories := budget.Group("/categories")
	categories.GET("", handler.Handle(h.Category.Handler, h.Category.ListCategories, http.StatusOK, "Categories retrieved"))
	categories.POST("", handler.Handle(h.Category.Handler, h.Category.CreateCategory, http.StatusCreated, "Category created"))

	category := categories.Group("/:categoryId")
	category.GET("", handler.Handle(h.Category.Handler, h.Category.GetCategory, http.StatusOK, "Category retrieved"))
	category.PUT("", handler.Handle(h.Category.Handler, h.Category.UpdateCategory, http.StatusOK, "Category updated"))
	category.DELETE("", handler.Handle(h.Category.Handler, h.Category.DeleteCategory, http.StatusOK, "Category deleted"))

	items := category.Group("/items")
	items.GET("", handler.Handle(h.Item.Handler, h.Item.ListItems, http.StatusOK, "Items retrieved"))
	items.POST("", handler.Handle(h.Item.Handler, h.Item.CreateItem, http.StatusCreated, "Item created"))
	items.DELETE("", handler.Handle(h.Item.Handler, h.Item.DeleteItems, http.StatusOK, "Items deleted"))
	items.GET("/:itemId", handler.Handle(h.Item.Handler, h.Item.GetItem, http.StatusOK, "Item retrieved"))
	items.PUT("/:itemId", handler.Handle(h.Item.Handler, h.Item.UpdateItem, http.StatusOK, "Item updated"))
	items.DELETE("/:itemId", handler.Handle(h.Item.Handler, h.Item.DeleteItem, http.StatusOK, "Item deleted"))

	transactions := budget.Group("/transactions")
	transactions.GET("", handler.Handle(h.Transaction.Handler, h.Transaction.ListTransactions, http.StatusOK, "Transactions retrieved"))
	transactions.POST("", handler.Handle(h.Transaction.Handler, h.Transaction.CreateTransaction, http.StatusCreated, "Transaction created"))
	transactions.GET("/:transactionId", handler.Handle(h.Transaction.Handler, h.Transaction.GetTransaction, http.StatusOK, "Transaction retrieved"))
	transactions.PUT("/:transactionId", handler.Handle(h.Transaction.Handler, h.Transaction.UpdateTransaction, http.StatusOK, "Transaction updated"))
	transactions.DELETE("/:transactionId", handler.Handle(h.Transaction.Handler, h.Transaction.DeleteTransaction, http.StatusOK, "Transaction deleted"))

	types := budget.Group("/transaction-types")
	types.GET("", handler.Handle(h.TransactionType.Handler, h.TransactionType.ListTransactionTypes, http.StatusOK, "Transaction types retrieved"))
	types.POST("", handler.Handle(h.TransactionType.Handler, h.TransactionType.CreateTransactionType, http.StatusCreated, "Transaction type created"))
	types.GET("/:typeId", handler.Handle(h.TransactionType.Handler, h.TransactionType.GetTransactionType, http.StatusOK, "Transaction type retrieved"))
	types.PUT("/:typeId", handler.Handle(h.TransactionType.Handler, h.TransactionType.UpdateTransactionType, http.StatusOK, "Transaction type updated"))
	types.DELETE("/:typeId", handler.Handle(h.TransactionType.Handler, h.TransactionType.DeleteTransactionType, http.StatusOK, "Transaction type deleted"))
}
