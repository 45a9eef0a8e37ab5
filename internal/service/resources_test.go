package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/deppfellow/finance-api/internal/errs"
	"github.com/deppfellow/finance-api/internal/financetest"
	"github.com/deppfellow/finance-api/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func amount(s string) *decimal.Decimal {
	return ptr(decimal.RequireFromString(s))
}

type tree struct {
	user     string
	budget   *model.Budget
	category *model.Category
	item     *model.Item
	txType   *model.TransactionType
	txn      *model.Transaction
}

// seed creates one user owning a fully populated budget.
func seed(t *testing.T, env *financetest.Env, userID string) tree {
	t.Helper()
	ctx := context.Background()
	s := env.Services

	_, err := env.Store.CreateUser(ctx, userID, userID, userID+"@example.com", nil)
	require.NoError(t, err)

	budget, err := s.Budget.CreateBudget(ctx, userID, &model.CreateBudgetPayload{Name: "Household", Amount: amount("1500.00")})
	require.NoError(t, err)

	category, err := s.Category.CreateCategory(ctx, userID, &model.CreateCategoryPayload{BudgetID: budget.ID, Name: "Food"})
	require.NoError(t, err)

	item, err := s.Item.CreateItem(ctx, userID, &model.CreateItemPayload{BudgetID: budget.ID, CategoryID: category.ID, Name: "Groceries", Amount: amount("400")})
	require.NoError(t, err)

	txType, err := s.TransactionType.CreateTransactionType(ctx, userID, &model.CreateTransactionTypePayload{BudgetID: budget.ID, Label: "Card"})
	require.NoError(t, err)

	txn, err := s.Transaction.CreateTransaction(ctx, userID, &model.CreateTransactionPayload{
		BudgetID:          budget.ID,
		ItemID:            &item.ID,
		TransactionTypeID: &txType.ID,
		Amount:            amount("42.50"),
	})
	require.NoError(t, err)

	return tree{user: userID, budget: budget, category: category, item: item, txType: txType, txn: txn}
}

func TestOwnedResourcesAreInvisibleToOthers(t *testing.T) {
	ctx := context.Background()
	env := financetest.NewEnv(t, nil)
	s := env.Services

	alice := seed(t, env, "alice")
	bob := seed(t, env, "bob")

	_, err := s.Budget.GetBudget(ctx, bob.user, alice.budget.ID)
	requireNotFound(t, err, "Budget")

	_, err = s.Category.GetCategory(ctx, bob.user, alice.budget.ID, alice.category.ID)
	requireNotFound(t, err, "Budget")

	// Bob's budget with Alice's category id.
	_, err = s.Category.GetCategory(ctx, bob.user, bob.budget.ID, alice.category.ID)
	requireNotFound(t, err, "Category")

	_, err = s.Item.GetItem(ctx, bob.user, &model.ItemPath{BudgetID: bob.budget.ID, CategoryID: bob.category.ID, ItemID: alice.item.ID})
	requireNotFound(t, err, "Item")

	_, err = s.Transaction.GetTransaction(ctx, bob.user, bob.budget.ID, alice.txn.ID)
	requireNotFound(t, err, "Transaction")

	_, err = s.TransactionType.GetTransactionType(ctx, bob.user, bob.budget.ID, alice.txType.ID)
	requireNotFound(t, err, "TransactionType")

	_, err = s.Budget.UpdateBudget(ctx, bob.user, &model.UpdateBudgetPayload{BudgetID: alice.budget.ID, Name: ptr("mine")})
	requireNotFound(t, err, "Budget")

	_, err = s.Budget.DeleteBudget(ctx, bob.user, alice.budget.ID)
	requireNotFound(t, err, "Budget")

	_, err = s.Item.DeleteItems(ctx, bob.user, alice.budget.ID, alice.category.ID)
	requireNotFound(t, err, "Budget")

	// Nothing of Alice's was touched.
	budget, err := s.Budget.GetBudget(ctx, alice.user, alice.budget.ID)
	require.NoError(t, err)
	assert.Equal(t, "Household", budget.Name)

	items, err := s.Item.ListItems(ctx, alice.user, alice.budget.ID, alice.category.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestTransactionReferencesMustShareTheBudget(t *testing.T) {
	ctx := context.Background()
	env := financetest.NewEnv(t, nil)
	s := env.Services

	alice := seed(t, env, "alice")
	second, err := s.Budget.CreateBudget(ctx, alice.user, &model.CreateBudgetPayload{Name: "Travel", Amount: amount("0")})
	require.NoError(t, err)

	_, err = s.Transaction.CreateTransaction(ctx, alice.user, &model.CreateTransactionPayload{
		BudgetID: second.ID,
		ItemID:   &alice.item.ID,
		Amount:   amount("1"),
	})
	requireNotFound(t, err, "Item")

	_, err = s.Transaction.CreateTransaction(ctx, alice.user, &model.CreateTransactionPayload{
		BudgetID:          second.ID,
		TransactionTypeID: &alice.txType.ID,
		Amount:            amount("1"),
	})
	requireNotFound(t, err, "TransactionType")

	_, err = s.Transaction.UpdateTransaction(ctx, alice.user, &model.UpdateTransactionPayload{
		BudgetID:      alice.budget.ID,
		TransactionID: alice.txn.ID,
		ItemID:        ptr(uuid.New()),
	})
	requireNotFound(t, err, "Item")
}

func TestCreateBudgetForUnknownUser(t *testing.T) {
	env := financetest.NewEnv(t, nil)

	_, err := env.Services.Budget.CreateBudget(context.Background(), "ghost", &model.CreateBudgetPayload{Name: "x", Amount: amount("1")})
	requireNotFound(t, err, "User")
}

func TestPartialUpdates(t *testing.T) {
	ctx := context.Background()
	env := financetest.NewEnv(t, nil)
	s := env.Services
	alice := seed(t, env, "alice")

	budget, err := s.Budget.UpdateBudget(ctx, alice.user, &model.UpdateBudgetPayload{BudgetID: alice.budget.ID, Amount: amount("2000")})
	require.NoError(t, err)
	assert.Equal(t, "Household", budget.Name)
	assert.True(t, budget.Amount.Equal(decimal.RequireFromString("2000")))

	date := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	txn, err := s.Transaction.UpdateTransaction(ctx, alice.user, &model.UpdateTransactionPayload{
		BudgetID:      alice.budget.ID,
		TransactionID: alice.txn.ID,
		Date:          &date,
	})
	require.NoError(t, err)
	assert.Equal(t, date, txn.Date)
	assert.True(t, txn.Amount.Equal(decimal.RequireFromString("42.5")))
	assert.Equal(t, alice.item.ID, *txn.ItemID)

	tt, err := s.TransactionType.UpdateTransactionType(ctx, alice.user, &model.UpdateTransactionTypePayload{
		BudgetID: alice.budget.ID,
		TypeID:   alice.txType.ID,
		Label:    ptr("Cash"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Cash", tt.Label)
}

func TestDeleteItemsEmptiesCategory(t *testing.T) {
	ctx := context.Background()
	env := financetest.NewEnv(t, nil)
	s := env.Services
	alice := seed(t, env, "alice")

	_, err := s.Item.CreateItem(ctx, alice.user, &model.CreateItemPayload{BudgetID: alice.budget.ID, CategoryID: alice.category.ID, Name: "Snacks", Amount: amount("20")})
	require.NoError(t, err)

	deleted, err := s.Item.DeleteItems(ctx, alice.user, alice.budget.ID, alice.category.ID)
	require.NoError(t, err)
	assert.Len(t, deleted, 2)

	items, err := s.Item.ListItems(ctx, alice.user, alice.budget.ID, alice.category.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = s.Item.DeleteItems(ctx, alice.user, alice.budget.ID, alice.category.ID)
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "ITEM_NOT_FOUND", httpErr.Code)
}

func TestDeletesCascade(t *testing.T) {
	ctx := context.Background()
	s := func(env *financetest.Env) *financetest.Store { return env.Store }

	t.Run("transaction type delete keeps transactions", func(t *testing.T) {
		env := financetest.NewEnv(t, nil)
		alice := seed(t, env, "alice")

		_, err := env.Services.TransactionType.DeleteTransactionType(ctx, alice.user, alice.budget.ID, alice.txType.ID)
		require.NoError(t, err)

		txn, err := env.Services.Transaction.GetTransaction(ctx, alice.user, alice.budget.ID, alice.txn.ID)
		require.NoError(t, err)
		assert.Nil(t, txn.TransactionTypeID)
	})

	t.Run("category delete removes items and their transactions", func(t *testing.T) {
		env := financetest.NewEnv(t, nil)
		alice := seed(t, env, "alice")

		_, err := env.Services.Category.DeleteCategory(ctx, alice.user, alice.budget.ID, alice.category.ID)
		require.NoError(t, err)

		_, err = s(env).GetItemByID(ctx, alice.item.ID)
		assert.ErrorIs(t, err, pgx.ErrNoRows)
		_, err = s(env).GetTransactionByID(ctx, alice.txn.ID)
		assert.ErrorIs(t, err, pgx.ErrNoRows)
	})

	t.Run("user delete removes everything owned", func(t *testing.T) {
		env := financetest.NewEnv(t, nil)
		alice := seed(t, env, "alice")
		bob := seed(t, env, "bob")

		_, err := env.Services.User.DeleteUser(ctx, alice.user)
		require.NoError(t, err)

		_, err = s(env).GetBudgetByID(ctx, alice.budget.ID)
		assert.ErrorIs(t, err, pgx.ErrNoRows)
		_, err = s(env).GetTransactionTypeByID(ctx, alice.txType.ID)
		assert.ErrorIs(t, err, pgx.ErrNoRows)

		_, err = env.Services.Budget.GetBudget(ctx, bob.user, bob.budget.ID)
		assert.NoError(t, err)

		_, err = env.Services.User.GetUser(ctx, alice.user)
		requireNotFound(t, err, "User")
	})
}

func TestUpdateUserEmailConflict(t *testing.T) {
	ctx := context.Background()
	env := financetest.NewEnv(t, nil)
	seed(t, env, "alice")
	seed(t, env, "bob")

	_, err := env.Services.User.UpdateUser(ctx, "bob", &model.UpdateUserPayload{Email: ptr("alice@example.com")})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusConflict, httpErr.Status)
}

func TestUpdateUserEmailIsNormalized(t *testing.T) {
	ctx := context.Background()
	env := financetest.NewEnv(t, nil)
	seed(t, env, "alice")
	seed(t, env, "bob")

	for _, email := range []string{"ALICE@example.com", "  Alice@Example.COM "} {
		_, err := env.Services.User.UpdateUser(ctx, "bob", &model.UpdateUserPayload{Email: ptr(email)})

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr, email)
		assert.Equal(t, http.StatusConflict, httpErr.Status, email)
		assert.Equal(t, "USER_ALREADY_EXISTS", httpErr.Code, email)
	}

	updated, err := env.Services.User.UpdateUser(ctx, "bob", &model.UpdateUserPayload{Email: ptr(" Bob.New@Example.COM ")})
	require.NoError(t, err)
	assert.Equal(t, "bob.new@example.com", updated.Email)

	stored, err := env.Store.GetUserByEmail(ctx, "bob.new@example.com")
	require.NoError(t, err)
	assert.Equal(t, "bob", stored.ID)
}

func TestListTransactionsNewestFirst(t *testing.T) {
	ctx := context.Background()
	env := financetest.NewEnv(t, nil)
	alice := seed(t, env, "alice")

	old := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := env.Services.Transaction.CreateTransaction(ctx, alice.user, &model.CreateTransactionPayload{BudgetID: alice.budget.ID, Amount: amount("5"), Date: &old})
	require.NoError(t, err)

	txns, err := env.Services.Transaction.ListTransactions(ctx, alice.user, alice.budget.ID)
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, alice.txn.ID, txns[0].ID)
	assert.Equal(t, old, txns[1].Date)
}
