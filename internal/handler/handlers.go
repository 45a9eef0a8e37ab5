package handler

import (
	"errors"

	"github.com/deppfellow/finance-api/internal/server"
	"github.com/deppfellow/finance-api/internal/service"
)

var errNotConfigured = errors.New("not configured")

// Handlers groups every HTTP handler for the router.
type Handlers struct {
	Health          *HealthHandler
	Auth            *AuthHandler
	User            *UserHandler
	Budget          *BudgetHandler
	Category        *CategoryHandler
	Item            *ItemHandler
	Transaction     *TransactionHandler
	TransactionType *TransactionTypeHandler
	Webhook         *WebhookHandler
}

// NewHandlers builds every handler around the shared Handler.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	h := NewHandler(s)

	return &Handlers{
		Health:          NewHealthHandler(h),
		Auth:            NewAuthHandler(h, services.Auth),
		User:            NewUserHandler(h, services.User),
		Budget:          NewBudgetHandler(h, services.Budget),
		Category:        NewCategoryHandler(h, services.Category),
		Item:            NewItemHandler(h, services.Item),
		Transaction:     NewTransactionHandler(h, services.Transaction),
		TransactionType: NewTransactionTypeHandler(h, services.TransactionType),
		Webhook:         NewWebhookHandler(h, services.Webhook),
	}
}
