// Package model defines the persisted shape of every resource together with
// the request payloads that create and patch it.
//
// Each entity has three shapes: the stored row (db + json tags, scanned by
// pgx), a create payload and a partial update payload. Payloads carry path
// parameters under `param` tags and never expose ids, parent ids or
// timestamps in their JSON body.
package model

import (
	"time"

	"github.com/deppfellow/finance-api/internal/validation"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// Money goes over the wire as a JSON number.
	decimal.MarshalJSONWithoutQuotes = true
}

var validate = validator.New()

// Timestamps are maintained by the database.
type Timestamps struct {
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Base is embedded by every UUID keyed resource.
type Base struct {
	ID uuid.UUID `db:"id" json:"id"`
	Timestamps
}

// EmptyPayload is used by routes that take neither a body nor path parameters.
type EmptyPayload struct{}

func (EmptyPayload) Validate() error {
	return nil
}

func nonNegative(field string, amount *decimal.Decimal) error {
	if amount == nil || !amount.IsNegative() {
		return nil
	}
	return validation.CustomValidationErrors{
		{Field: field, Message: "must not be negative"},
	}
}
