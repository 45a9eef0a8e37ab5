package router_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/finance-api/internal/config"
	"github.com/deppfellow/finance-api/internal/financetest"
	"github.com/deppfellow/finance-api/internal/handler"
	"github.com/deppfellow/finance-api/internal/model"
	"github.com/deppfellow/finance-api/internal/router"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type api struct {
	t   *testing.T
	e   *echo.Echo
	env *financetest.Env
}

func newAPI(t *testing.T) *api {
	t.Helper()
	return newAPIWithConfig(t, nil)
}

func newAPIWithConfig(t *testing.T, cfg *config.Config) *api {
	t.Helper()

	env := financetest.NewEnv(t, cfg)
	s := financetest.Server(env.Config)
	e := router.NewRouter(s, handler.NewHandlers(s, env.Services), env.Services)

	return &api{t: t, e: e, env: env}
}

func (a *api) do(method, path, token string, body any) (int, financetest.Envelope) {
	a.t.Helper()

	rec := financetest.Request(a.t, a.e, method, path, token, body)
	return rec.Code, financetest.Decode(a.t, rec)
}

// create posts body and decodes the created resource into T.
func create[T any](a *api, path, token string, body any) T {
	a.t.Helper()

	rec := financetest.Request(a.t, a.e, http.MethodPost, path, token, body)
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	return financetest.Data[T](a.t, rec)
}

func (a *api) signUp(email string) (string, *model.User) {
	a.t.Helper()

	session := create[model.Session](a, "/api/v1/auth/sign-up", "", map[string]string{
		"name":     "Test User",
		"email":    email,
		"password": "correct horse battery",
	})
	return session.Token, session.User
}

type fixture struct {
	token    string
	budget   model.Budget
	category model.Category
	item     model.Item
	txType   model.TransactionType
	txn      model.Transaction
}

func (f fixture) budgetPath() string {
	return "/api/v1/budgets/" + f.budget.ID.String()
}

func (f fixture) categoryPath() string {
	return f.budgetPath() + "/categories/" + f.category.ID.String()
}

func (a *api) seed(email string) fixture {
	a.t.Helper()

	f := fixture{}
	f.token, _ = a.signUp(email)

	f.budget = create[model.Budget](a, "/api/v1/budgets", f.token, map[string]any{"name": "Household", "amount": 1500})
	f.category = create[model.Category](a, f.budgetPath()+"/categories", f.token, map[string]any{"name": "Food"})
	f.item = create[model.Item](a, f.categoryPath()+"/items", f.token, map[string]any{"name": "Groceries", "amount": 400})
	f.txType = create[model.TransactionType](a, f.budgetPath()+"/transaction-types", f.token, map[string]any{"label": "Card"})
	f.txn = create[model.Transaction](a, f.budgetPath()+"/transactions", f.token, map[string]any{
		"item_id":             f.item.ID,
		"transaction_type_id": f.txType.ID,
		"amount":              "42.50",
	})
	return f
}

func TestSystemRoutes(t *testing.T) {
	a := newAPI(t)

	code, body := a.do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"status":"ok"}`, string(body.Data))

	code, body = a.do(http.MethodGet, "/status", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "Service is unhealthy", body.Message)

	code, body = a.do(http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NOT_FOUND", body.Error)
	assert.Equal(t, "/nope", body.Details.URL)
}

func TestRequestIDIsEchoed(t *testing.T) {
	a := newAPI(t)

	rec := financetest.Request(t, a.e, http.MethodGet, "/healthz", "", nil)
	_, err := uuid.Parse(rec.Header().Get("X-Request-ID"))
	assert.NoError(t, err)
}

func TestAuthIsRequired(t *testing.T) {
	a := newAPI(t)

	for _, token := range []string{"", "garbage"} {
		code, body := a.do(http.MethodGet, "/api/v1/budgets", token, nil)
		assert.Equal(t, http.StatusUnauthorized, code)
		assert.Equal(t, "UNAUTHORIZED", body.Error)
		assert.Equal(t, http.MethodGet, body.Details.Method)
	}

	// A valid token for a user that never existed is authenticated but owns nothing.
	token, _, err := a.env.Services.Auth.IssueToken("ghost")
	require.NoError(t, err)
	code, _ := a.do(http.MethodGet, "/api/v1/budgets/"+uuid.NewString(), token, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestSignUpAndSignIn(t *testing.T) {
	a := newAPI(t)

	token, user := a.signUp("ada@example.com")
	assert.NotEmpty(t, token)

	code, body := a.do(http.MethodPost, "/api/v1/auth/sign-up", "", map[string]string{
		"name": "Other", "email": "ada@example.com", "password": "another password",
	})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "USER_ALREADY_EXISTS", body.Error)

	code, body = a.do(http.MethodPost, "/api/v1/auth/sign-in", "", map[string]string{
		"email": "ada@example.com", "password": "correct horse battery",
	})
	require.Equal(t, http.StatusOK, code)

	var session model.Session
	require.NoError(t, json.Unmarshal(body.Data, &session))
	assert.Equal(t, user.ID, session.User.ID)

	code, body = a.do(http.MethodGet, "/api/v1/user", session.Token, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.NotContains(t, string(body.Data), "password")

	code, _ = a.do(http.MethodPost, "/api/v1/auth/sign-in", "", map[string]string{
		"email": "ada@example.com", "password": "wrong password",
	})
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestBudgetRoundTrip(t *testing.T) {
	a := newAPI(t)
	token, user := a.signUp("ada@example.com")

	rec := financetest.Request(t, a.e, http.MethodPost, "/api/v1/budgets", token, `{"name":"Groceries","amount":500}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var raw map[string]any
	require.NoError(t, json.Unmarshal(financetest.Decode(t, rec).Data, &raw))
	assert.Equal(t, "Groceries", raw["name"])
	assert.Equal(t, float64(500), raw["amount"])
	assert.Equal(t, user.ID, raw["user_id"])
	assert.NotEmpty(t, raw["id"])
	assert.NotEmpty(t, raw["created_at"])
	assert.NotEmpty(t, raw["updated_at"])

	budgets := financetest.Data[[]model.Budget](t, financetest.Request(t, a.e, http.MethodGet, "/api/v1/budgets", token, nil))
	require.Len(t, budgets, 1)
	assert.Equal(t, "Groceries", budgets[0].Name)
}

func TestValidationErrors(t *testing.T) {
	a := newAPI(t)
	f := a.seed("ada@example.com")

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		field  string
	}{
		{"missing amount", http.MethodPost, "/api/v1/budgets", `{"name":"x"}`, "amount"},
		{"negative amount", http.MethodPost, "/api/v1/budgets", `{"name":"x","amount":-1}`, "amount"},
		{"user_id on update", http.MethodPut, f.budgetPath(), `{"user_id":"someone-else"}`, ""},
		{"budget_id on category update", http.MethodPut, f.categoryPath(), fmt.Sprintf(`{"budget_id":%q}`, uuid.NewString()), ""},
		{"malformed json", http.MethodPost, "/api/v1/budgets", `{"name":`, ""},
		{"bad path id", http.MethodGet, "/api/v1/budgets/not-a-uuid", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := a.do(tt.method, tt.path, f.token, tt.body)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.NotEmpty(t, body.Message)
			if tt.field != "" {
				require.NotEmpty(t, body.Details.Issues)
				assert.Equal(t, tt.field, body.Details.Issues[0].Field)
			}
		})
	}

	budget := financetest.Data[model.Budget](t, financetest.Request(t, a.e, http.MethodGet, f.budgetPath(), f.token, nil))
	assert.Equal(t, f.budget.UserID, budget.UserID)
}

func TestPartialAndRepeatedUpdates(t *testing.T) {
	a := newAPI(t)
	f := a.seed("ada@example.com")

	update := map[string]any{"name": "Home"}

	first := financetest.Data[model.Budget](t, financetest.Request(t, a.e, http.MethodPut, f.budgetPath(), f.token, update))
	second := financetest.Data[model.Budget](t, financetest.Request(t, a.e, http.MethodPut, f.budgetPath(), f.token, update))

	assert.Equal(t, "Home", first.Name)
	assert.True(t, first.Amount.Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, first.Name, second.Name)
	assert.True(t, first.Amount.Equal(second.Amount))
	assert.Equal(t, first.Description, second.Description)
}

func TestForeignAncestorsAreNotFound(t *testing.T) {
	a := newAPI(t)
	alice := a.seed("alice@example.com")
	bob := a.seed("bob@example.com")

	paths := []string{
		alice.budgetPath(),
		alice.categoryPath(),
		alice.categoryPath() + "/items",
		alice.categoryPath() + "/items/" + alice.item.ID.String(),
		alice.budgetPath() + "/transactions/" + alice.txn.ID.String(),
		alice.budgetPath() + "/transaction-types/" + alice.txType.ID.String(),
		// Bob's own budget with Alice's leaves.
		bob.budgetPath() + "/categories/" + alice.category.ID.String(),
		bob.budgetPath() + "/transactions/" + alice.txn.ID.String(),
		bob.categoryPath() + "/items/" + alice.item.ID.String(),
	}

	for _, path := range paths {
		for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
			if method == http.MethodPut && path == alice.categoryPath()+"/items" {
				continue
			}

			var body any
			if method == http.MethodPut {
				body = map[string]any{}
			}

			code, env := a.do(method, path, bob.token, body)
			assert.Equal(t, http.StatusNotFound, code, "%s %s", method, path)
			assert.Equal(t, "NOT_FOUND", env.Error, "%s %s", method, path)
		}
	}

	// Alice's tree is intact.
	items := financetest.Data[[]model.Item](t, financetest.Request(t, a.e, http.MethodGet, alice.categoryPath()+"/items", alice.token, nil))
	assert.Len(t, items, 1)
}

func TestDeletingBudgetRemovesDescendants(t *testing.T) {
	a := newAPI(t)
	f := a.seed("ada@example.com")

	code, _ := a.do(http.MethodDelete, f.budgetPath(), f.token, nil)
	require.Equal(t, http.StatusOK, code)

	for _, path := range []string{
		f.budgetPath(),
		f.categoryPath(),
		f.categoryPath() + "/items/" + f.item.ID.String(),
		f.budgetPath() + "/transactions/" + f.txn.ID.String(),
	} {
		code, _ := a.do(http.MethodGet, path, f.token, nil)
		assert.Equal(t, http.StatusNotFound, code, path)
	}
}

func TestDeleteAllItems(t *testing.T) {
	a := newAPI(t)
	f := a.seed("ada@example.com")
	itemsPath := f.categoryPath() + "/items"

	rec := financetest.Request(t, a.e, http.MethodDelete, itemsPath, f.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, financetest.Data[[]model.Item](t, rec), 1)

	code, body := a.do(http.MethodDelete, itemsPath, f.token, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "ITEM_NOT_FOUND", body.Error)
}

func TestTransactionTypeDeleteKeepsTransactions(t *testing.T) {
	a := newAPI(t)
	f := a.seed("ada@example.com")

	code, _ := a.do(http.MethodDelete, f.budgetPath()+"/transaction-types/"+f.txType.ID.String(), f.token, nil)
	require.Equal(t, http.StatusOK, code)

	txn := financetest.Data[model.Transaction](t, financetest.Request(t, a.e, http.MethodGet, f.budgetPath()+"/transactions/"+f.txn.ID.String(), f.token, nil))
	assert.Nil(t, txn.TransactionTypeID)
	assert.True(t, txn.Amount.Equal(decimal.RequireFromString("42.5")))
}

func TestClerkWebhook(t *testing.T) {
	a := newAPI(t)

	payload := financetest.ClerkUserEvent(t, "user.created", "user_clerk_1", "grace@example.com", "Grace")

	t.Run("unsigned", func(t *testing.T) {
		code, body := a.do(http.MethodPost, "/api/webhooks/clerk", "", payload)
		assert.Equal(t, http.StatusUnauthorized, code)
		assert.Equal(t, "Invalid webhook signature", body.Message)
	})

	t.Run("signed", func(t *testing.T) {
		req := financetest.SignedRequest(t, "/api/webhooks/clerk", payload)
		rec := financetest.Serve(a.e, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		user, err := a.env.Store.GetUserByID(req.Context(), "user_clerk_1")
		require.NoError(t, err)
		assert.Equal(t, "grace@example.com", user.Email)
		assert.Len(t, a.env.Mailer.Sent(), 1)
	})
}

func TestClerkProviderHasNoPasswordRoutes(t *testing.T) {
	cfg := financetest.Config(t)
	cfg.Auth.Provider = config.AuthProviderClerk
	cfg.Auth.ClerkSecretKey = "sk_test_finance"

	a := newAPIWithConfig(t, cfg)
	require.Equal(t, config.AuthProviderClerk, a.env.Services.Auth.Provider())

	status, _ := a.do(http.MethodPost, "/api/v1/auth/sign-up", "", map[string]string{
		"name":     "Test User",
		"email":    "clerk@example.com",
		"password": "correct horse battery",
	})
	assert.Equal(t, http.StatusUnauthorized, status)

	_, err := a.env.Store.GetUserByEmail(context.Background(), "clerk@example.com")
	assert.Error(t, err)
}
