package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Budget is a spending plan owned by one user.
type Budget struct {
	Base
	UserID      string          `db:"user_id" json:"user_id"`
	Name        string          `db:"name" json:"name"`
	Description *string         `db:"description" json:"description"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
}

type CreateBudgetPayload struct {
	Name        string           `json:"name" validate:"required,min=1,max=100"`
	Description *string          `json:"description" validate:"omitempty,max=500"`
	Amount      *decimal.Decimal `json:"amount" validate:"required"`
}

func (p *CreateBudgetPayload) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}
	return nonNegative("amount", p.Amount)
}

// UpdateBudgetPayload patches the non-nil fields of a budget.
type UpdateBudgetPayload struct {
	BudgetID    uuid.UUID        `param:"budgetId" json:"-" validate:"required"`
	Name        *string          `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string          `json:"description" validate:"omitempty,max=500"`
	Amount      *decimal.Decimal `json:"amount"`
}

func (p *UpdateBudgetPayload) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}
	return nonNegative("amount", p.Amount)
}

// BudgetPath addresses a single budget.
type BudgetPath struct {
	BudgetID uuid.UUID `param:"budgetId" json:"-" validate:"required"`
}

func (p *BudgetPath) Validate() error {
	return validate.Struct(p)
}
