package model

import "github.com/google/uuid"

// TransactionType labels transactions within one budget ("rent", "salary").
type TransactionType struct {
	Base
	BudgetID uuid.UUID `db:"budget_id" json:"budget_id"`
	Label    string    `db:"label" json:"label"`
}

type CreateTransactionTypePayload struct {
	BudgetID uuid.UUID `param:"budgetId" json:"-" validate:"required"`
	Label    string    `json:"label" validate:"required,min=1,max=50"`
}

func (p *CreateTransactionTypePayload) Validate() error {
	return validate.Struct(p)
}

type UpdateTransactionTypePayload struct {
	BudgetID uuid.UUID `param:"budgetId" json:"-" validate:"required"`
	TypeID   uuid.UUID `param:"typeId" json:"-" validate:"required"`
	Label    *string   `json:"label" validate:"omitempty,min=1,max=50"`
}

func (p *UpdateTransactionTypePayload) Validate() error {
	return validate.Struct(p)
}

type TransactionTypePath struct {
	BudgetID uuid.UUID `param:"budgetId" json:"-" validate:"required"`
	TypeID   uuid.UUID `param:"typeId" json:"-" validate:"required"`
}

func (p *TransactionTypePath) Validate() error {
	return validate.Struct(p)
}
