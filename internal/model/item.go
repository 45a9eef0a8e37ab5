package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is a planned line inside a budget category.
type Item struct {
	Base
	CategoryID  uuid.UUID       `db:"category_id" json:"category_id"`
	Name        string          `db:"name" json:"name"`
	Description *string         `db:"description" json:"description"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
}

type CreateItemPayload struct {
	BudgetID    uuid.UUID        `param:"budgetId" json:"-" validate:"required"`
	CategoryID  uuid.UUID        `param:"categoryId" json:"-" validate:"required"`
	Name        string           `json:"name" validate:"required,min=1,max=100"`
	Description *string          `json:"description" validate:"omitempty,max=500"`
	Amount      *decimal.Decimal `json:"amount" validate:"required"`
}

func (p *CreateItemPayload) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}
	return nonNegative("amount", p.Amount)
}

type UpdateItemPayload struct {
	BudgetID    uuid.UUID        `param:"budgetId" json:"-" validate:"required"`
	CategoryID  uuid.UUID        `param:"categoryId" json:"-" validate:"required"`
	ItemID      uuid.UUID        `param:"itemId" json:"-" validate:"required"`
	Name        *string          `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string          `json:"description" validate:"omitempty,max=500"`
	Amount      *decimal.Decimal `json:"amount"`
}

func (p *UpdateItemPayload) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}
	return nonNegative("amount", p.Amount)
}

// ItemPath addresses one item through its budget and category.
type ItemPath struct {
	BudgetID   uuid.UUID `param:"budgetId" json:"-" validate:"required"`
	CategoryID uuid.UUID `param:"categoryId" json:"-" validate:"required"`
	ItemID     uuid.UUID `param:"itemId" json:"-" validate:"required"`
}

func (p *ItemPath) Validate() error {
	return validate.Struct(p)
}
