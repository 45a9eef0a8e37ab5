package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/deppfellow/finance-api/internal/errs"
	"github.com/deppfellow/finance-api/internal/service"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookup(parents map[uuid.UUID]string) service.ParentLookup {
	return func(ctx context.Context, id uuid.UUID) (string, error) {
		parent, ok := parents[id]
		if !ok {
			return "", pgx.ErrNoRows
		}
		return parent, nil
	}
}

func requireNotFound(t *testing.T, err error, resource string) {
	t.Helper()

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, resource+" not found", httpErr.Message)
}

func TestChainVerify(t *testing.T) {
	ctx := context.Background()

	budgetID := uuid.New()
	categoryID := uuid.New()
	otherBudgetID := uuid.New()

	budgets := lookup(map[uuid.UUID]string{budgetID: "alice", otherBudgetID: "bob"})
	categories := lookup(map[uuid.UUID]string{categoryID: budgetID.String()})

	t.Run("owned chain passes", func(t *testing.T) {
		err := service.NewChain("alice").
			Then("Budget", budgetID, budgets).
			Then("Category", categoryID, categories).
			Verify(ctx)
		assert.NoError(t, err)
	})

	t.Run("foreign root hides an existing leaf", func(t *testing.T) {
		err := service.NewChain("bob").
			Then("Budget", budgetID, budgets).
			Then("Category", categoryID, categories).
			Verify(ctx)
		requireNotFound(t, err, "Budget")
	})

	t.Run("leaf under another parent", func(t *testing.T) {
		err := service.NewChain("bob").
			Then("Budget", otherBudgetID, budgets).
			Then("Category", categoryID, categories).
			Verify(ctx)
		requireNotFound(t, err, "Category")
	})

	t.Run("missing link", func(t *testing.T) {
		err := service.NewChain("alice").
			Then("Budget", uuid.New(), budgets).
			Verify(ctx)
		requireNotFound(t, err, "Budget")
	})

	t.Run("under compares against the given parent", func(t *testing.T) {
		err := service.NewChain("alice").
			Then("Budget", budgetID, budgets).
			ThenUnder("Category", categoryID, budgetID, categories).
			Verify(ctx)
		assert.NoError(t, err)

		err = service.NewChain("bob").
			Then("Budget", otherBudgetID, budgets).
			ThenUnder("Category", categoryID, otherBudgetID, categories).
			Verify(ctx)
		requireNotFound(t, err, "Category")
	})

	t.Run("lookup failures pass through", func(t *testing.T) {
		boom := errors.New("connection reset")
		err := service.NewChain("alice").
			Then("Budget", budgetID, func(context.Context, uuid.UUID) (string, error) { return "", boom }).
			Verify(ctx)
		assert.ErrorIs(t, err, boom)
	})
}
