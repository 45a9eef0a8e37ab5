package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/finance-api/internal/model"
	"github.com/deppfellow/finance-api/internal/server"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const transactionTypeColumns = `id, budget_id, label, created_at, updated_at`

// TransactionTypeRepository stores the transaction types of a budget.
type TransactionTypeRepository struct {
	server *server.Server
}

func NewTransactionTypeRepository(s *server.Server) *TransactionTypeRepository {
	return &TransactionTypeRepository{server: s}
}

func (r *TransactionTypeRepository) CreateTransactionType(ctx context.Context, payload *model.CreateTransactionTypePayload) (*model.TransactionType, error) {
	stmt := `
		INSERT INTO transaction_types (budget_id, label)
		VALUES (@budget_id, @label)
		RETURNING ` + transactionTypeColumns

	tt, err := queryOne[model.TransactionType](ctx, r.server.DB.Pool, "transaction_types", stmt, pgx.NamedArgs{
		"budget_id": payload.BudgetID,
		"label":     payload.Label,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction type in budget_id=%s: %w", payload.BudgetID, err)
	}

	return tt, nil
}

func (r *TransactionTypeRepository) GetTransactionTypeByID(ctx context.Context, typeID uuid.UUID) (*model.TransactionType, error) {
	stmt := `SELECT ` + transactionTypeColumns + ` FROM transaction_types WHERE id = @id`

	tt, err := queryOne[model.TransactionType](ctx, r.server.DB.Pool, "transaction_types", stmt, pgx.NamedArgs{"id": typeID})
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction type id=%s: %w", typeID, err)
	}

	return tt, nil
}

// ListTransactionTypes returns the budget's types ordered by label.
func (r *TransactionTypeRepository) ListTransactionTypes(ctx context.Context, budgetID uuid.UUID) ([]model.TransactionType, error) {
	stmt := `SELECT ` + transactionTypeColumns + ` FROM transaction_types WHERE budget_id = @budget_id ORDER BY label, id`

	types, err := queryAll[model.TransactionType](ctx, r.server.DB.Pool, stmt, pgx.NamedArgs{"budget_id": budgetID})
	if err != nil {
		return nil, fmt.Errorf("failed to list transaction types for budget_id=%s: %w", budgetID, err)
	}

	return types, nil
}

func (r *TransactionTypeRepository) UpdateTransactionType(ctx context.Context, payload *model.UpdateTransactionTypePayload) (*model.TransactionType, error) {
	stmt := `
		UPDATE transaction_types
		SET label = COALESCE(@label, label)
		WHERE id = @id AND budget_id = @budget_id
		RETURNING ` + transactionTypeColumns

	tt, err := queryOne[model.TransactionType](ctx, r.server.DB.Pool, "transaction_types", stmt, pgx.NamedArgs{
		"id":        payload.TypeID,
		"budget_id": payload.BudgetID,
		"label":     payload.Label,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction type id=%s: %w", payload.TypeID, err)
	}

	return tt, nil
}

// DeleteTransactionType removes the type; transactions using it keep existing
// with transaction_type_id set to NULL.
func (r *TransactionTypeRepository) DeleteTransactionType(ctx context.Context, budgetID, typeID uuid.UUID) (*model.TransactionType, error) {
	stmt := `DELETE FROM transaction_types WHERE id = @id AND budget_id = @budget_id RETURNING ` + transactionTypeColumns

	tt, err := queryOne[model.TransactionType](ctx, r.server.DB.Pool, "transaction_types", stmt, pgx.NamedArgs{
		"id":        typeID,
		"budget_id": budgetID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete transaction type id=%s: %w", typeID, err)
	}

	return tt, nil
}
