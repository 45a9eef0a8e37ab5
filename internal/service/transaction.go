package service

import (
	"context"

	"github.com/deppfellow/finance-api/internal/model"
	"github.com/google/uuid"
)

// TransactionService manages the transactions of a budget.
type TransactionService struct {
	transactions TransactionRepository
	owners       *ownership
}

func NewTransactionService(transactions TransactionRepository, owners *ownership) *TransactionService {
	return &TransactionService{transactions: transactions, owners: owners}
}

// CreateTransaction verifies the budget and, when given, that the item
// and transaction type belong to the same budget.
func (s *TransactionService) CreateTransaction(ctx context.Context, userID string, payload *model.CreateTransactionPayload) (*model.Transaction, error) {
	chain := s.owners.references(
		s.owners.budget(userID, payload.BudgetID),
		payload.BudgetID, payload.ItemID, payload.TransactionTypeID,
	)
	if err := chain.Verify(ctx); err != nil {
		return nil, err
	}

	return s.transactions.CreateTransaction(ctx, userID, payload)
}

// ListTransactions returns the budget's transactions, newest first.
func (s *TransactionService) ListTransactions(ctx context.Context, userID string, budgetID uuid.UUID) ([]model.Transaction, error) {
	if err := s.owners.budget(userID, budgetID).Verify(ctx); err != nil {
		return nil, err
	}

	return s.transactions.ListTransactions(ctx, budgetID)
}

func (s *TransactionService) GetTransaction(ctx context.Context, userID string, budgetID, transactionID uuid.UUID) (*model.Transaction, error) {
	if err := s.owners.transaction(userID, budgetID, transactionID).Verify(ctx); err != nil {
		return nil, err
	}

	transaction, err := s.transactions.GetTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, notFound(err, resourceTransaction, transactionID)
	}
	return transaction, nil
}

// UpdateTransaction re-verifies any item or type the patch points at.
func (s *TransactionService) UpdateTransaction(ctx context.Context, userID string, payload *model.UpdateTransactionPayload) (*model.Transaction, error) {
	chain := s.owners.references(
		s.owners.transaction(userID, payload.BudgetID, payload.TransactionID),
		payload.BudgetID, payload.ItemID, payload.TransactionTypeID,
	)
	if err := chain.Verify(ctx); err != nil {
		return nil, err
	}

	transaction, err := s.transactions.UpdateTransaction(ctx, payload)
	if err != nil {
		return nil, notFound(err, resourceTransaction, payload.TransactionID)
	}
	return transaction, nil
}

func (s *TransactionService) DeleteTransaction(ctx context.Context, userID string, budgetID, transactionID uuid.UUID) (*model.Transaction, error) {
	if err := s.owners.transaction(userID, budgetID, transactionID).Verify(ctx); err != nil {
		return nil, err
	}

	transaction, err := s.transactions.DeleteTransaction(ctx, budgetID, transactionID)
	if err != nil {
		return nil, notFound(err, resourceTransaction, transactionID)
	}
	return transaction, nil
}
