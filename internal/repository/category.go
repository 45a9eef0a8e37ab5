package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/finance-api/internal/model"
	"github.com/deppfellow/finance-api/internal/server"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const categoryColumns = `id, budget_id, name, description, created_at, updated_at`

// CategoryRepository stores budget categories.
type CategoryRepository struct {
	server *server.Server
}

func NewCategoryRepository(s *server.Server) *CategoryRepository {
	return &CategoryRepository{server: s}
}

// CreateCategory inserts a category under payload.BudgetID.
func (r *CategoryRepository) CreateCategory(ctx context.Context, payload *model.CreateCategoryPayload) (*model.Category, error) {
	stmt := `
		INSERT INTO budget_categories (budget_id, name, description)
		VALUES (@budget_id, @name, @description)
		RETURNING ` + categoryColumns

	category, err := queryOne[model.Category](ctx, r.server.DB.Pool, "budget_categories", stmt, pgx.NamedArgs{
		"budget_id":   payload.BudgetID,
		"name":        payload.Name,
		"description": payload.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create category in budget_id=%s: %w", payload.BudgetID, err)
	}

	return category, nil
}

func (r *CategoryRepository) GetCategoryByID(ctx context.Context, categoryID uuid.UUID) (*model.Category, error) {
	stmt := `SELECT ` + categoryColumns + ` FROM budget_categories WHERE id = @id`

	category, err := queryOne[model.Category](ctx, r.server.DB.Pool, "budget_categories", stmt, pgx.NamedArgs{"id": categoryID})
	if err != nil {
		return nil, fmt.Errorf("failed to get category id=%s: %w", categoryID, err)
	}

	return category, nil
}

// ListCategories returns the budget's categories, oldest first.
func (r *CategoryRepository) ListCategories(ctx context.Context, budgetID uuid.UUID) ([]model.Category, error) {
	stmt := `SELECT ` + categoryColumns + ` FROM budget_categories WHERE budget_id = @budget_id ORDER BY created_at, id`

	categories, err := queryAll[model.Category](ctx, r.server.DB.Pool, stmt, pgx.NamedArgs{"budget_id": budgetID})
	if err != nil {
		return nil, fmt.Errorf("failed to list categories for budget_id=%s: %w", budgetID, err)
	}

	return categories, nil
}

// UpdateCategory patches the category only if it still belongs to
// payload.BudgetID.
func (r *CategoryRepository) UpdateCategory(ctx context.Context, payload *model.UpdateCategoryPayload) (*model.Category, error) {
	stmt := `
		UPDATE budget_categories
		SET name = COALESCE(@name, name),
			description = COALESCE(@description, description)
		WHERE id = @id AND budget_id = @budget_id
		RETURNING ` + categoryColumns

	category, err := queryOne[model.Category](ctx, r.server.DB.Pool, "budget_categories", stmt, pgx.NamedArgs{
		"id":          payload.CategoryID,
		"budget_id":   payload.BudgetID,
		"name":        payload.Name,
		"description": payload.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update category id=%s: %w", payload.CategoryID, err)
	}

	return category, nil
}

// DeleteCategory removes the category and, by cascade, its items.
func (r *CategoryRepository) DeleteCategory(ctx context.Context, budgetID, categoryID uuid.UUID) (*model.Category, error) {
	stmt := `DELETE FROM budget_categories WHERE id = @id AND budget_id = @budget_id RETURNING ` + categoryColumns

	category, err := queryOne[model.Category](ctx, r.server.DB.Pool, "budget_categories", stmt, pgx.NamedArgs{
		"id":        categoryID,
		"budget_id": budgetID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete category id=%s: %w", categoryID, err)
	}

	return category, nil
}
