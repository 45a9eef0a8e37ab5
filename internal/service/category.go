package service

import (
	"context"

	"github.com/deppfellow/finance-api/internal/model"
	"github.com/google/uuid"
)

// CategoryService manages the categories of a budget.
type CategoryService struct {
	categories CategoryRepository
	owners     *ownership
}

func NewCategoryService(categories CategoryRepository, owners *ownership) *CategoryService {
	return &CategoryService{categories: categories, owners: owners}
}

// CreateCategory verifies User -> Budget before inserting.
func (s *CategoryService) CreateCategory(ctx context.Context, userID string, payload *model.CreateCategoryPayload) (*model.Category, error) {
	if err := s.owners.budget(userID, payload.BudgetID).Verify(ctx); err != nil {
		return nil, err
	}

	category, err := s.categories.CreateCategory(ctx, payload)
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) ListCategories(ctx context.Context, userID string, budgetID uuid.UUID) ([]model.Category, error) {
	if err := s.owners.budget(userID, budgetID).Verify(ctx); err != nil {
		return nil, err
	}

	return s.categories.ListCategories(ctx, budgetID)
}

// GetCategory returns the category when the full chain
// User -> Budget -> Category holds, and 404 otherwise.
func (s *CategoryService) GetCategory(ctx context.Context, userID string, budgetID, categoryID uuid.UUID) (*model.Category, error) {
	if err := s.owners.category(userID, budgetID, categoryID).Verify(ctx); err != nil {
		return nil, err
	}

	category, err := s.categories.GetCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, notFound(err, resourceCategory, categoryID)
	}
	return category, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, userID string, payload *model.UpdateCategoryPayload) (*model.Category, error) {
	if err := s.owners.category(userID, payload.BudgetID, payload.CategoryID).Verify(ctx); err != nil {
		return nil, err
	}

	category, err := s.categories.UpdateCategory(ctx, payload)
	if err != nil {
		return nil, notFound(err, resourceCategory, payload.CategoryID)
	}
	return category, nil
}

// DeleteCategory removes the category and its items.
func (s *CategoryService) DeleteCategory(ctx context.Context, userID string, budgetID, categoryID uuid.UUID) (*model.Category, error) {
	if err := s.owners.category(userID, budgetID, categoryID).Verify(ctx); err != nil {
		return nil, err
	}

	category, err := s.categories.DeleteCategory(ctx, budgetID, categoryID)
	if err != nil {
		return nil, notFound(err, resourceCategory, categoryID)
	}
	return category, nil
}
