package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/deppfellow/finance-api/internal/financetest"
	"github.com/deppfellow/finance-api/internal/lib/cache"
	"github.com/deppfellow/finance-api/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudgetCache(t *testing.T) {
	logger := zerolog.Nop()
	c := cache.NewBudgetCache(financetest.Redis(t), time.Minute, &logger)
	ctx := context.Background()

	t.Run("fill then hit", func(t *testing.T) {
		_, gen, ok := c.Budgets(ctx, "user_1")
		require.False(t, ok)
		assert.Equal(t, int64(0), gen)

		c.SetBudgets(ctx, "user_1", gen, []model.Budget{{Name: "Groceries"}})

		budgets, _, ok := c.Budgets(ctx, "user_1")
		require.True(t, ok)
		assert.Equal(t, "Groceries", budgets[0].Name)
	})

	t.Run("invalidate hides the listing", func(t *testing.T) {
		c.Invalidate(ctx, "user_1")

		_, gen, ok := c.Budgets(ctx, "user_1")
		assert.False(t, ok)
		assert.Equal(t, int64(1), gen)
	})

	t.Run("fill racing an invalidation is never served", func(t *testing.T) {
		_, before, ok := c.Budgets(ctx, "user_2")
		require.False(t, ok)

		// A mutation lands between the database read and the fill.
		c.Invalidate(ctx, "user_2")
		c.SetBudgets(ctx, "user_2", before, []model.Budget{{Name: "Stale"}})

		_, gen, ok := c.Budgets(ctx, "user_2")
		assert.False(t, ok)
		assert.Equal(t, before+1, gen)

		c.SetBudgets(ctx, "user_2", gen, []model.Budget{{Name: "Fresh"}})
		budgets, _, ok := c.Budgets(ctx, "user_2")
		require.True(t, ok)
		assert.Equal(t, "Fresh", budgets[0].Name)
	})
}
