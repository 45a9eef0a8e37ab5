package model

import (
	"encoding/json"
	"testing"

	"github.com/deppfellow/finance-api/internal/validation"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestCreateBudgetPayloadValidate(t *testing.T) {
	tests := []struct {
		name    string
		payload CreateBudgetPayload
		wantErr bool
	}{
		{"valid", CreateBudgetPayload{Name: "Groceries", Amount: amount("500")}, false},
		{"zero amount", CreateBudgetPayload{Name: "Groceries", Amount: amount("0")}, false},
		{"missing name", CreateBudgetPayload{Amount: amount("500")}, true},
		{"missing amount", CreateBudgetPayload{Name: "Groceries"}, true},
		{"negative amount", CreateBudgetPayload{Name: "Groceries", Amount: amount("-1")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNegativeAmountIsCustomValidationError(t *testing.T) {
	p := UpdateItemPayload{
		BudgetID:   uuid.New(),
		CategoryID: uuid.New(),
		ItemID:     uuid.New(),
		Amount:     amount("-10.50"),
	}

	err := p.Validate()
	require.Error(t, err)

	var custom validation.CustomValidationErrors
	require.ErrorAs(t, err, &custom)
	assert.Equal(t, "amount", custom[0].Field)
}

func TestPathPayloadsRequireIDs(t *testing.T) {
	err := (&CategoryPath{BudgetID: uuid.New()}).Validate()
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "CategoryID", verrs[0].Field())

	assert.NoError(t, (&CategoryPath{BudgetID: uuid.New(), CategoryID: uuid.New()}).Validate())
}

func TestSignUpPayloadValidate(t *testing.T) {
	assert.NoError(t, (&SignUpPayload{Name: "Ada", Email: "ada@example.com", Password: "correct-horse"}).Validate())
	assert.Error(t, (&SignUpPayload{Name: "Ada", Email: "not-an-email", Password: "correct-horse"}).Validate())
	assert.Error(t, (&SignUpPayload{Name: "Ada", Email: "ada@example.com", Password: "short"}).Validate())
}

func TestBudgetJSON(t *testing.T) {
	b := Budget{
		Base:   Base{ID: uuid.New()},
		UserID: "user_1",
		Name:   "Groceries",
		Amount: decimal.RequireFromString("500"),
	}

	raw, err := json.Marshal(b)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))

	assert.Equal(t, float64(500), out["amount"])
	assert.Equal(t, b.ID.String(), out["id"])
	assert.Contains(t, out, "created_at")
	assert.Nil(t, out["description"])
}

func TestUserJSONHidesPasswordHash(t *testing.T) {
	hash := "secret"
	raw, err := json.Marshal(User{ID: "u1", Email: "a@b.co", PasswordHash: &hash})
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret")
}
