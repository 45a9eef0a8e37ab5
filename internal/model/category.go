package model

import "github.com/google/uuid"

// Category groups the planned items of a budget.
type Category struct {
	Base
	BudgetID    uuid.UUID `db:"budget_id" json:"budget_id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description"`
}

type CreateCategoryPayload struct {
	BudgetID    uuid.UUID `param:"budgetId" json:"-" validate:"required"`
	Name        string    `json:"name" validate:"required,min=1,max=100"`
	Description *string   `json:"description" validate:"omitempty,max=500"`
}

func (p *CreateCategoryPayload) Validate() error {
	return validate.Struct(p)
}

type UpdateCategoryPayload struct {
	BudgetID    uuid.UUID `param:"budgetId" json:"-" validate:"required"`
	CategoryID  uuid.UUID `param:"categoryId" json:"-" validate:"required"`
	Name        *string   `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string   `json:"description" validate:"omitempty,max=500"`
}

func (p *UpdateCategoryPayload) Validate() error {
	return validate.Struct(p)
}

// CategoryPath addresses a single category, or the item collection below it.
type CategoryPath struct {
	BudgetID   uuid.UUID `param:"budgetId" json:"-" validate:"required"`
	CategoryID uuid.UUID `param:"categoryId" json:"-" validate:"required"`
}

func (p *CategoryPath) Validate() error {
	return validate.Struct(p)
}
