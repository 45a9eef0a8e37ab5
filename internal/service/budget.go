package service

import (
	"context"

	"github.com/deppfellow/finance-api/internal/lib/cache"
	"github.com/deppfellow/finance-api/internal/model"
	"github.com/google/uuid"
)

// BudgetService manages budgets, the roots of every ownership chain.
type BudgetService struct {
	users   UserRepository
	budgets BudgetRepository
	owners  *ownership
	cache   *cache.BudgetCache
}

// NewBudgetService returns a BudgetService. budgetCache may be nil.
func NewBudgetService(users UserRepository, budgets BudgetRepository, owners *ownership, budgetCache *cache.BudgetCache) *BudgetService {
	return &BudgetService{users: users, budgets: budgets, owners: owners, cache: budgetCache}
}

// CreateBudget creates a budget for userID, who must exist.
func (s *BudgetService) CreateBudget(ctx context.Context, userID string, payload *model.CreateBudgetPayload) (*model.Budget, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, userNotFound(err, userID)
	}

	budget, err := s.budgets.CreateBudget(ctx, userID, payload)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, userID)
	return budget, nil
}

// ListBudgets serves from the Redis cache when it can. A miss is filled
// under the generation seen before the database read, so a mutation that
// lands in between is never hidden by the fill.
func (s *BudgetService) ListBudgets(ctx context.Context, userID string) ([]model.Budget, error) {
	budgets, gen, ok := s.cache.Budgets(ctx, userID)
	if ok {
		return budgets, nil
	}

	budgets, err := s.budgets.ListBudgets(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.cache.SetBudgets(ctx, userID, gen, budgets)
	return budgets, nil
}

func (s *BudgetService) GetBudget(ctx context.Context, userID string, budgetID uuid.UUID) (*model.Budget, error) {
	if err := s.owners.budget(userID, budgetID).Verify(ctx); err != nil {
		return nil, err
	}

	budget, err := s.budgets.GetBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, notFound(err, resourceBudget, budgetID)
	}
	return budget, nil
}

// UpdateBudget verifies the caller owns the budget before patching it.
func (s *BudgetService) UpdateBudget(ctx context.Context, userID string, payload *model.UpdateBudgetPayload) (*model.Budget, error) {
	if err := s.owners.budget(userID, payload.BudgetID).Verify(ctx); err != nil {
		return nil, err
	}

	budget, err := s.budgets.UpdateBudget(ctx, userID, payload)
	if err != nil {
		return nil, notFound(err, resourceBudget, payload.BudgetID)
	}

	s.cache.Invalidate(ctx, userID)
	return budget, nil
}

// DeleteBudget removes the budget with its categories, items, types and transactions.
func (s *BudgetService) DeleteBudget(ctx context.Context, userID string, budgetID uuid.UUID) (*model.Budget, error) {
	if err := s.owners.budget(userID, budgetID).Verify(ctx); err != nil {
		return nil, err
	}

	budget, err := s.budgets.DeleteBudget(ctx, userID, budgetID)
	if err != nil {
		return nil, notFound(err, resourceBudget, budgetID)
	}

	s.cache.Invalidate(ctx, userID)
	return budget, nil
}
