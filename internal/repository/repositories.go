package repository

import (
	"github.com/deppfellow/finance-api/internal/server"
)

// Repositories groups every repository so services receive one value.
type Repositories struct {
	User            *UserRepository
	Budget          *BudgetRepository
	Category        *CategoryRepository
	Item            *ItemRepository
	Transaction     *TransactionRepository
	TransactionType *TransactionTypeRepository
}

// NewRepositories builds every repository on the server's pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		User:            NewUserRepository(s),
		Budget:          NewBudgetRepository(s),
		Category:        NewCategoryRepository(s),
		Item:            NewItemRepository(s),
		Transaction:     NewTransactionRepository(s),
		TransactionType: NewTransactionTypeRepository(s),
	}
}
