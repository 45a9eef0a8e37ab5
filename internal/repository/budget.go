package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/finance-api/internal/model"
	"github.com/deppfellow/finance-api/internal/server"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const budgetColumns = `id, user_id, name, description, amount, created_at, updated_at`

// BudgetRepository stores budgets.
type BudgetRepository struct {
	server *server.Server
}

func NewBudgetRepository(s *server.Server) *BudgetRepository {
	return &BudgetRepository{server: s}
}

// CreateBudget inserts a budget owned by userID.
func (r *BudgetRepository) CreateBudget(ctx context.Context, userID string, payload *model.CreateBudgetPayload) (*model.Budget, error) {
	stmt := `
		INSERT INTO budgets (user_id, name, description, amount)
		VALUES (@user_id, @name, @description, @amount)
		RETURNING ` + budgetColumns

	budget, err := queryOne[model.Budget](ctx, r.server.DB.Pool, "budgets", stmt, pgx.NamedArgs{
		"user_id":     userID,
		"name":        payload.Name,
		"description": payload.Description,
		"amount":      payload.Amount,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create budget for user_id=%s: %w", userID, err)
	}

	return budget, nil
}

// GetBudgetByID is unscoped; callers compare UserID with the caller.
func (r *BudgetRepository) GetBudgetByID(ctx context.Context, budgetID uuid.UUID) (*model.Budget, error) {
	stmt := `SELECT ` + budgetColumns + ` FROM budgets WHERE id = @id`

	budget, err := queryOne[model.Budget](ctx, r.server.DB.Pool, "budgets", stmt, pgx.NamedArgs{"id": budgetID})
	if err != nil {
		return nil, fmt.Errorf("failed to get budget id=%s: %w", budgetID, err)
	}

	return budget, nil
}

// ListBudgets returns userID's budgets, oldest first.
func (r *BudgetRepository) ListBudgets(ctx context.Context, userID string) ([]model.Budget, error) {
	stmt := `SELECT ` + budgetColumns + ` FROM budgets WHERE user_id = @user_id ORDER BY created_at, id`

	budgets, err := queryAll[model.Budget](ctx, r.server.DB.Pool, stmt, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets for user_id=%s: %w", userID, err)
	}

	return budgets, nil
}

// UpdateBudget patches the non-nil fields of payload. The row must
// belong to userID, otherwise no row is returned.
func (r *BudgetRepository) UpdateBudget(ctx context.Context, userID string, payload *model.UpdateBudgetPayload) (*model.Budget, error) {
	stmt := `
		UPDATE budgets
		SET name = COALESCE(@name, name),
			description = COALESCE(@description, description),
			amount = COALESCE(@amount, amount)
		WHERE id = @id AND user_id = @user_id
		RETURNING ` + budgetColumns

	budget, err := queryOne[model.Budget](ctx, r.server.DB.Pool, "budgets", stmt, pgx.NamedArgs{
		"id":          payload.BudgetID,
		"user_id":     userID,
		"name":        payload.Name,
		"description": payload.Description,
		"amount":      payload.Amount,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update budget id=%s: %w", payload.BudgetID, err)
	}

	return budget, nil
}

// DeleteBudget removes the budget; the schema cascades to its categories,
// items, transaction types and transactions.
func (r *BudgetRepository) DeleteBudget(ctx context.Context, userID string, budgetID uuid.UUID) (*model.Budget, error) {
	stmt := `DELETE FROM budgets WHERE id = @id AND user_id = @user_id RETURNING ` + budgetColumns

	budget, err := queryOne[model.Budget](ctx, r.server.DB.Pool, "budgets", stmt, pgx.NamedArgs{
		"id":      budgetID,
		"user_id": userID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete budget id=%s: %w", budgetID, err)
	}

	return budget, nil
}
