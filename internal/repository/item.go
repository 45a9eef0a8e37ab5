package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/finance-api/internal/model"
	"github.com/deppfellow/finance-api/internal/server"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const itemColumns = `id, category_id, name, description, amount, created_at, updated_at`

// ItemRepository stores the planned items of a category.
type ItemRepository struct {
	server *server.Server
}

func NewItemRepository(s *server.Server) *ItemRepository {
	return &ItemRepository{server: s}
}

// CreateItem inserts an item under payload.CategoryID.
func (r *ItemRepository) CreateItem(ctx context.Context, payload *model.CreateItemPayload) (*model.Item, error) {
	stmt := `
		INSERT INTO budget_category_items (category_id, name, description, amount)
		VALUES (@category_id, @name, @description, @amount)
		RETURNING ` + itemColumns

	item, err := queryOne[model.Item](ctx, r.server.DB.Pool, "budget_category_items", stmt, pgx.NamedArgs{
		"category_id": payload.CategoryID,
		"name":        payload.Name,
		"description": payload.Description,
		"amount":      payload.Amount,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create item in category_id=%s: %w", payload.CategoryID, err)
	}

	return item, nil
}

func (r *ItemRepository) GetItemByID(ctx context.Context, itemID uuid.UUID) (*model.Item, error) {
	stmt := `SELECT ` + itemColumns + ` FROM budget_category_items WHERE id = @id`

	item, err := queryOne[model.Item](ctx, r.server.DB.Pool, "budget_category_items", stmt, pgx.NamedArgs{"id": itemID})
	if err != nil {
		return nil, fmt.Errorf("failed to get item id=%s: %w", itemID, err)
	}

	return item, nil
}

// ListItems returns the category's items, oldest first.
func (r *ItemRepository) ListItems(ctx context.Context, categoryID uuid.UUID) ([]model.Item, error) {
	stmt := `SELECT ` + itemColumns + ` FROM budget_category_items WHERE category_id = @category_id ORDER BY created_at, id`

	items, err := queryAll[model.Item](ctx, r.server.DB.Pool, stmt, pgx.NamedArgs{"category_id": categoryID})
	if err != nil {
		return nil, fmt.Errorf("failed to list items for category_id=%s: %w", categoryID, err)
	}

	return items, nil
}

// UpdateItem patches the item only if it still belongs to
// payload.CategoryID.
func (r *ItemRepository) UpdateItem(ctx context.Context, payload *model.UpdateItemPayload) (*model.Item, error) {
	stmt := `
		UPDATE budget_category_items
		SET name = COALESCE(@name, name),
			description = COALESCE(@description, description),
			amount = COALESCE(@amount, amount)
		WHERE id = @id AND category_id = @category_id
		RETURNING ` + itemColumns

	item, err := queryOne[model.Item](ctx, r.server.DB.Pool, "budget_category_items", stmt, pgx.NamedArgs{
		"id":          payload.ItemID,
		"category_id": payload.CategoryID,
		"name":        payload.Name,
		"description": payload.Description,
		"amount":      payload.Amount,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update item id=%s: %w", payload.ItemID, err)
	}

	return item, nil
}

// DeleteItem removes one item. Transactions pointing at it are removed
// by the schema.
func (r *ItemRepository) DeleteItem(ctx context.Context, categoryID, itemID uuid.UUID) (*model.Item, error) {
	stmt := `DELETE FROM budget_category_items WHERE id = @id AND category_id = @category_id RETURNING ` + itemColumns

	item, err := queryOne[model.Item](ctx, r.server.DB.Pool, "budget_category_items", stmt, pgx.NamedArgs{
		"id":          itemID,
		"category_id": categoryID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete item id=%s: %w", itemID, err)
	}

	return item, nil
}

// DeleteItemsByCategory removes every item of the category and returns them.
// An empty result is not an error here; the service decides.
func (r *ItemRepository) DeleteItemsByCategory(ctx context.Context, categoryID uuid.UUID) ([]model.Item, error) {
	stmt := `DELETE FROM budget_category_items WHERE category_id = @category_id RETURNING ` + itemColumns

	items, err := queryAll[model.Item](ctx, r.server.DB.Pool, stmt, pgx.NamedArgs{"category_id": categoryID})
	if err != nil {
		return nil, fmt.Errorf("failed to delete items for category_id=%s: %w", categoryID, err)
	}

	return items, nil
}
