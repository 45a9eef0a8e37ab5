package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/finance-api/internal/model"
	"github.com/deppfellow/finance-api/internal/server"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const transactionColumns = `id, user_id, budget_id, item_id, transaction_type_id, amount, date, description, created_at, updated_at`

// TransactionRepository stores transactions.
type TransactionRepository struct {
	server *server.Server
}

func NewTransactionRepository(s *server.Server) *TransactionRepository {
	return &TransactionRepository{server: s}
}

// CreateTransaction inserts a transaction recorded by userID. A nil date
// defaults to now.
func (r *TransactionRepository) CreateTransaction(ctx context.Context, userID string, payload *model.CreateTransactionPayload) (*model.Transaction, error) {
	stmt := `
		INSERT INTO transactions (user_id, budget_id, item_id, transaction_type_id, amount, date, description)
		VALUES (@user_id, @budget_id, @item_id, @transaction_type_id, @amount, @date, @description)
		RETURNING ` + transactionColumns

	date := time.Now().UTC()
	if payload.Date != nil {
		date = *payload.Date
	}

	transaction, err := queryOne[model.Transaction](ctx, r.server.DB.Pool, "transactions", stmt, pgx.NamedArgs{
		"user_id":             userID,
		"budget_id":           payload.BudgetID,
		"item_id":             payload.ItemID,
		"transaction_type_id": payload.TransactionTypeID,
		"amount":              payload.Amount,
		"date":                date,
		"description":         payload.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction in budget_id=%s: %w", payload.BudgetID, err)
	}

	return transaction, nil
}

func (r *TransactionRepository) GetTransactionByID(ctx context.Context, transactionID uuid.UUID) (*model.Transaction, error) {
	stmt := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = @id`

	transaction, err := queryOne[model.Transaction](ctx, r.server.DB.Pool, "transactions", stmt, pgx.NamedArgs{"id": transactionID})
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction id=%s: %w", transactionID, err)
	}

	return transaction, nil
}

// ListTransactions returns the budget's transactions, newest first.
func (r *TransactionRepository) ListTransactions(ctx context.Context, budgetID uuid.UUID) ([]model.Transaction, error) {
	stmt := `SELECT ` + transactionColumns + ` FROM transactions WHERE budget_id = @budget_id ORDER BY date DESC, id`

	transactions, err := queryAll[model.Transaction](ctx, r.server.DB.Pool, stmt, pgx.NamedArgs{"budget_id": budgetID})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for budget_id=%s: %w", budgetID, err)
	}

	return transactions, nil
}

// UpdateTransaction patches the transaction only if it still belongs to
// payload.BudgetID.
func (r *TransactionRepository) UpdateTransaction(ctx context.Context, payload *model.UpdateTransactionPayload) (*model.Transaction, error) {
	stmt := `
		UPDATE transactions
		SET item_id = COALESCE(@item_id, item_id),
			transaction_type_id = COALESCE(@transaction_type_id, transaction_type_id),
			amount = COALESCE(@amount, amount),
			date = COALESCE(@date, date),
			description = COALESCE(@description, description)
		WHERE id = @id AND budget_id = @budget_id
		RETURNING ` + transactionColumns

	transaction, err := queryOne[model.Transaction](ctx, r.server.DB.Pool, "transactions", stmt, pgx.NamedArgs{
		"id":                  payload.TransactionID,
		"budget_id":           payload.BudgetID,
		"item_id":             payload.ItemID,
		"transaction_type_id": payload.TransactionTypeID,
		"amount":              payload.Amount,
		"date":                payload.Date,
		"description":         payload.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction id=%s: %w", payload.TransactionID, err)
	}

	return transaction, nil
}

func (r *TransactionRepository) DeleteTransaction(ctx context.Context, budgetID, transactionID uuid.UUID) (*model.Transaction, error) {
	stmt := `DELETE FROM transactions WHERE id = @id AND budget_id = @budget_id RETURNING ` + transactionColumns

	transaction, err := queryOne[model.Transaction](ctx, r.server.DB.Pool, "transactions", stmt, pgx.NamedArgs{
		"id":        transactionID,
		"budget_id": budgetID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete transaction id=%s: %w", transactionID, err)
	}

	return transaction, nil
}
