package service

import (
	"context"

	"github.com/deppfellow/finance-api/internal/model"
	"github.com/google/uuid"
)

// The repository contracts services depend on. internal/repository
// implements them against PostgreSQL; tests use an in-memory store.
// Getters report a missing row as a wrapped pgx.ErrNoRows.

// UserRepository persists accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, id, name, email string, passwordHash *string) (*model.User, error)
	UpsertUser(ctx context.Context, params model.UpsertUserParams) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateUser(ctx context.Context, id string, payload *model.UpdateUserPayload) (*model.User, error)
	DeleteUser(ctx context.Context, id string) (*model.User, error)
}

// BudgetRepository persists budgets.
type BudgetRepository interface {
	CreateBudget(ctx context.Context, userID string, payload *model.CreateBudgetPayload) (*model.Budget, error)
	GetBudgetByID(ctx context.Context, budgetID uuid.UUID) (*model.Budget, error)
	ListBudgets(ctx context.Context, userID string) ([]model.Budget, error)
	UpdateBudget(ctx context.Context, userID string, payload *model.UpdateBudgetPayload) (*model.Budget, error)
	DeleteBudget(ctx context.Context, userID string, budgetID uuid.UUID) (*model.Budget, error)
}

type CategoryRepository interface {
	CreateCategory(ctx context.Context, payload *model.CreateCategoryPayload) (*model.Category, error)
	GetCategoryByID(ctx context.Context, categoryID uuid.UUID) (*model.Category, error)
	ListCategories(ctx context.Context, budgetID uuid.UUID) ([]model.Category, error)
	UpdateCategory(ctx context.Context, payload *model.UpdateCategoryPayload) (*model.Category, error)
	DeleteCategory(ctx context.Context, budgetID, categoryID uuid.UUID) (*model.Category, error)
}

// ItemRepository persists items; DeleteItemsByCategory empties a category.
type ItemRepository interface {
	CreateItem(ctx context.Context, payload *model.CreateItemPayload) (*model.Item, error)
	GetItemByID(ctx context.Context, itemID uuid.UUID) (*model.Item, error)
	ListItems(ctx context.Context, categoryID uuid.UUID) ([]model.Item, error)
	UpdateItem(ctx context.Context, payload *model.UpdateItemPayload) (*model.Item, error)
	DeleteItem(ctx context.Context, categoryID, itemID uuid.UUID) (*model.Item, error)
	DeleteItemsByCategory(ctx context.Context, categoryID uuid.UUID) ([]model.Item, error)
}

type TransactionRepository interface {
	CreateTransaction(ctx context.Context, userID string, payload *model.CreateTransactionPayload) (*model.Transaction, error)
	GetTransactionByID(ctx context.Context, transactionID uuid.UUID) (*model.Transaction, error)
	ListTransactions(ctx context.Context, budgetID uuid.UUID) ([]model.Transaction, error)
	UpdateTransaction(ctx context.Context, payload *model.UpdateTransactionPayload) (*model.Transaction, error)
	DeleteTransaction(ctx context.Context, budgetID, transactionID uuid.UUID) (*model.Transaction, error)
}

type TransactionTypeRepository interface {
	CreateTransactionType(ctx context.Context, payload *model.CreateTransactionTypePayload) (*model.TransactionType, error)
	GetTransactionTypeByID(ctx context.Context, typeID uuid.UUID) (*model.TransactionType, error)
	ListTransactionTypes(ctx context.Context, budgetID uuid.UUID) ([]model.TransactionType, error)
	UpdateTransactionType(ctx context.Context, payload *model.UpdateTransactionTypePayload) (*model.TransactionType, error)
	DeleteTransactionType(ctx context.Context, budgetID, typeID uuid.UUID) (*model.TransactionType, error)
}

// WelcomeEnqueuer schedules the welcome email for a new account.
type WelcomeEnqueuer interface {
	EnqueueWelcomeEmail(ctx context.Context, to, name string) error
}
