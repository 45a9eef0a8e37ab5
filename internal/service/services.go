package service

import (
	"github.com/deppfellow/finance-api/internal/config"
	"github.com/deppfellow/finance-api/internal/lib/cache"
	"github.com/deppfellow/finance-api/internal/repository"
	"github.com/deppfellow/finance-api/internal/server"
	"github.com/rs/zerolog"
)

// Services groups the business services handed to the handler layer.
type Services struct {
	Auth            *AuthService
	User            *UserService
	Budget          *BudgetService
	Category        *CategoryService
	Item            *ItemService
	Transaction     *TransactionService
	TransactionType *TransactionTypeService
	Webhook         *WebhookService
}

// Dependencies is everything the services are built from.
type Dependencies struct {
	Config *config.Config
	Logger *zerolog.Logger

	Users            UserRepository
	Budgets          BudgetRepository
	Categories       CategoryRepository
	Items            ItemRepository
	Transactions     TransactionRepository
	TransactionTypes TransactionTypeRepository

	Jobs        WelcomeEnqueuer
	BudgetCache *cache.BudgetCache
}

// NewServices wires the services to PostgreSQL, Redis and the job queue.
func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	deps := Dependencies{
		Config:           s.Config,
		Logger:           s.Logger,
		Users:            repos.User,
		Budgets:          repos.Budget,
		Categories:       repos.Category,
		Items:            repos.Item,
		Transactions:     repos.Transaction,
		TransactionTypes: repos.TransactionType,
		BudgetCache:      cache.NewBudgetCache(s.Redis, s.Config.Cache.BudgetTTL, s.Logger),
	}
	if s.Job != nil {
		deps.Jobs = s.Job
	}

	return NewServicesFromDependencies(deps)
}

// NewServicesFromDependencies builds the services from explicit
// dependencies. Tests use it with in-memory repositories.
func NewServicesFromDependencies(d Dependencies) (*Services, error) {
	auth, err := NewAuthService(&d.Config.Auth, d.Users, d.Jobs, d.Logger)
	if err != nil {
		return nil, err
	}

	webhook, err := NewWebhookService(d.Config.Auth.WebhookSecret, d.Users, d.Jobs, d.BudgetCache, d.Logger)
	if err != nil {
		return nil, err
	}

	owners := &ownership{
		budgets:          d.Budgets,
		categories:       d.Categories,
		items:            d.Items,
		transactions:     d.Transactions,
		transactionTypes: d.TransactionTypes,
	}

	return &Services{
		Auth:            auth,
		User:            NewUserService(d.Users, d.BudgetCache),
		Budget:          NewBudgetService(d.Users, d.Budgets, owners, d.BudgetCache),
		Category:        NewCategoryService(d.Categories, owners),
		Item:            NewItemService(d.Items, owners),
		Transaction:     NewTransactionService(d.Transactions, owners),
		TransactionType: NewTransactionTypeService(d.TransactionTypes, owners),
		Webhook:         webhook,
	}, nil
}
