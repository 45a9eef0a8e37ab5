package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is money actually spent or received against a budget. It may
// point at a planned item and a transaction type; deleting the type leaves
// the transaction in place with a nil TransactionTypeID.
type Transaction struct {
	Base
	UserID            string          `db:"user_id" json:"user_id"`
	BudgetID          uuid.UUID       `db:"budget_id" json:"budget_id"`
	ItemID            *uuid.UUID      `db:"item_id" json:"item_id"`
	TransactionTypeID *uuid.UUID      `db:"transaction_type_id" json:"transaction_type_id"`
	Amount            decimal.Decimal `db:"amount" json:"amount"`
	Date              time.Time       `db:"date" json:"date"`
	Description       *string         `db:"description" json:"description"`
}

type CreateTransactionPayload struct {
	BudgetID          uuid.UUID        `param:"budgetId" json:"-" validate:"required"`
	ItemID            *uuid.UUID       `json:"item_id"`
	TransactionTypeID *uuid.UUID       `json:"transaction_type_id"`
	Amount            *decimal.Decimal `json:"amount" validate:"required"`
	Date              *time.Time       `json:"date"`
	Description       *string          `json:"description" validate:"omitempty,max=500"`
}

func (p *CreateTransactionPayload) Validate() error {
	return validate.Struct(p)
}

// UpdateTransactionPayload can re-point the item or type but never the
// budget or the owner.
type UpdateTransactionPayload struct {
	BudgetID          uuid.UUID        `param:"budgetId" json:"-" validate:"required"`
	TransactionID     uuid.UUID        `param:"transactionId" json:"-" validate:"required"`
	ItemID            *uuid.UUID       `json:"item_id"`
	TransactionTypeID *uuid.UUID       `json:"transaction_type_id"`
	Amount            *decimal.Decimal `json:"amount"`
	Date              *time.Time       `json:"date"`
	Description       *string          `json:"description" validate:"omitempty,max=500"`
}

func (p *UpdateTransactionPayload) Validate() error {
	return validate.Struct(p)
}

// TransactionPath addresses one transaction.
type TransactionPath struct {
	BudgetID      uuid.UUID `param:"budgetId" json:"-" validate:"required"`
	TransactionID uuid.UUID `param:"transactionId" json:"-" validate:"required"`
}

func (p *TransactionPath) Validate() error {
	return validate.Struct(p)
}
