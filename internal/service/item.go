package service

import (
	"context"

	"github.com/deppfellow/finance-api/internal/errs"
	"github.com/deppfellow/finance-api/internal/model"
	"github.com/google/uuid"
)

// ItemService manages the planned items of a category.
type ItemService struct {
	items  ItemRepository
	owners *ownership
}

func NewItemService(items ItemRepository, owners *ownership) *ItemService {
	return &ItemService{items: items, owners: owners}
}

// CreateItem verifies User -> Budget -> Category before inserting.
func (s *ItemService) CreateItem(ctx context.Context, userID string, payload *model.CreateItemPayload) (*model.Item, error) {
	if err := s.owners.category(userID, payload.BudgetID, payload.CategoryID).Verify(ctx); err != nil {
		return nil, err
	}

	return s.items.CreateItem(ctx, payload)
}

func (s *ItemService) ListItems(ctx context.Context, userID string, budgetID, categoryID uuid.UUID) ([]model.Item, error) {
	if err := s.owners.category(userID, budgetID, categoryID).Verify(ctx); err != nil {
		return nil, err
	}

	return s.items.ListItems(ctx, categoryID)
}

// GetItem walks User -> Budget -> Category -> Item.
func (s *ItemService) GetItem(ctx context.Context, userID string, path *model.ItemPath) (*model.Item, error) {
	if err := s.owners.item(userID, path.BudgetID, path.CategoryID, path.ItemID).Verify(ctx); err != nil {
		return nil, err
	}

	item, err := s.items.GetItemByID(ctx, path.ItemID)
	if err != nil {
		return nil, notFound(err, resourceItem, path.ItemID)
	}
	return item, nil
}

func (s *ItemService) UpdateItem(ctx context.Context, userID string, payload *model.UpdateItemPayload) (*model.Item, error) {
	if err := s.owners.item(userID, payload.BudgetID, payload.CategoryID, payload.ItemID).Verify(ctx); err != nil {
		return nil, err
	}

	item, err := s.items.UpdateItem(ctx, payload)
	if err != nil {
		return nil, notFound(err, resourceItem, payload.ItemID)
	}
	return item, nil
}

func (s *ItemService) DeleteItem(ctx context.Context, userID string, path *model.ItemPath) (*model.Item, error) {
	if err := s.owners.item(userID, path.BudgetID, path.CategoryID, path.ItemID).Verify(ctx); err != nil {
		return nil, err
	}

	item, err := s.items.DeleteItem(ctx, path.CategoryID, path.ItemID)
	if err != nil {
		return nil, notFound(err, resourceItem, path.ItemID)
	}
	return item, nil
}

// DeleteItems empties a category. A category that is already empty is a
// NotFound, not an empty success.
func (s *ItemService) DeleteItems(ctx context.Context, userID string, budgetID, categoryID uuid.UUID) ([]model.Item, error) {
	if err := s.owners.category(userID, budgetID, categoryID).Verify(ctx); err != nil {
		return nil, err
	}

	items, err := s.items.DeleteItemsByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		code := "ITEM_NOT_FOUND"
		return nil, errs.NewNotFoundError("No items found in category", true, &code).
			WithDetails("category " + categoryID.String())
	}

	return items, nil
}
