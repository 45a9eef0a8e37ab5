package service

import (
	"context"

	"github.com/deppfellow/finance-api/internal/model"
	"github.com/google/uuid"
)

// TransactionTypeService manages the budget-scoped transaction types.
type TransactionTypeService struct {
	types  TransactionTypeRepository
	owners *ownership
}

func NewTransactionTypeService(types TransactionTypeRepository, owners *ownership) *TransactionTypeService {
	return &TransactionTypeService{types: types, owners: owners}
}

func (s *TransactionTypeService) CreateTransactionType(ctx context.Context, userID string, payload *model.CreateTransactionTypePayload) (*model.TransactionType, error) {
	if err := s.owners.budget(userID, payload.BudgetID).Verify(ctx); err != nil {
		return nil, err
	}

	return s.types.CreateTransactionType(ctx, payload)
}

func (s *TransactionTypeService) ListTransactionTypes(ctx context.Context, userID string, budgetID uuid.UUID) ([]model.TransactionType, error) {
	if err := s.owners.budget(userID, budgetID).Verify(ctx); err != nil {
		return nil, err
	}

	return s.types.ListTransactionTypes(ctx, budgetID)
}

func (s *TransactionTypeService) GetTransactionType(ctx context.Context, userID string, budgetID, typeID uuid.UUID) (*model.TransactionType, error) {
	if err := s.owners.transactionType(userID, budgetID, typeID).Verify(ctx); err != nil {
		return nil, err
	}

	tt, err := s.types.GetTransactionTypeByID(ctx, typeID)
	if err != nil {
		return nil, notFound(err, resourceTransactionType, typeID)
	}
	return tt, nil
}

func (s *TransactionTypeService) UpdateTransactionType(ctx context.Context, userID string, payload *model.UpdateTransactionTypePayload) (*model.TransactionType, error) {
	if err := s.owners.transactionType(userID, payload.BudgetID, payload.TypeID).Verify(ctx); err != nil {
		return nil, err
	}

	tt, err := s.types.UpdateTransactionType(ctx, payload)
	if err != nil {
		return nil, notFound(err, resourceTransactionType, payload.TypeID)
	}
	return tt, nil
}

// DeleteTransactionType keeps the transactions that used the type.
func (s *TransactionTypeService) DeleteTransactionType(ctx context.Context, userID string, budgetID, typeID uuid.UUID) (*model.TransactionType, error) {
	if err := s.owners.transactionType(userID, budgetID, typeID).Verify(ctx); err != nil {
		return nil, err
	}

	tt, err := s.types.DeleteTransactionType(ctx, budgetID, typeID)
	if err != nil {
		return nil, notFound(err, resourceTransactionType, typeID)
	}
	return tt, nil
}
