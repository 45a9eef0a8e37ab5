// Package financetest holds shared test helpers: an in-memory store that
// behaves like the PostgreSQL repositories (constraint errors, cascades,
// ErrNoRows), fixtures and HTTP request helpers.
package financetest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/deppfellow/finance-api/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// Store implements every repository contract of the service package.
type Store struct {
	mu  sync.Mutex
	seq int64
	now func() time.Time

	users            map[string]*model.User
	budgets          map[uuid.UUID]*model.Budget
	categories       map[uuid.UUID]*model.Category
	items            map[uuid.UUID]*model.Item
	transactions     map[uuid.UUID]*model.Transaction
	transactionTypes map[uuid.UUID]*model.TransactionType

	order map[string]int64
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		now:              time.Now,
		users:            map[string]*model.User{},
		budgets:          map[uuid.UUID]*model.Budget{},
		categories:       map[uuid.UUID]*model.Category{},
		items:            map[uuid.UUID]*model.Item{},
		transactions:     map[uuid.UUID]*model.Transaction{},
		transactionTypes: map[uuid.UUID]*model.TransactionType{},
		order:            map[string]int64{},
	}
}

func noRows(table string) error {
	return fmt.Errorf("table:%s: %w", table, pgx.ErrNoRows)
}

func foreignKey(table, constraint string) error {
	return &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23503",
		Message:        fmt.Sprintf("insert or update on table %q violates foreign key constraint %q", table, constraint),
		TableName:      table,
		ConstraintName: constraint,
	}
}

func uniqueViolation(table, constraint string) error {
	return &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23505",
		Message:        fmt.Sprintf("duplicate key value violates unique constraint %q", constraint),
		TableName:      table,
		ConstraintName: constraint,
	}
}

func (s *Store) timestamps() model.Timestamps {
	now := s.now().UTC()
	return model.Timestamps{CreatedAt: now, UpdatedAt: now}
}

func (s *Store) track(id string) {
	s.seq++
	s.order[id] = s.seq
}

func sortByOrder[T any](s *Store, rows []T, id func(T) string) []T {
	sort.Slice(rows, func(i, j int) bool {
		return s.order[id(rows[i])] < s.order[id(rows[j])]
	})
	return rows
}

func coalesce[T any](v *T, current T) T {
	if v != nil {
		return *v
	}
	return current
}

func coalescePtr[T any](v *T, current *T) *T {
	if v != nil {
		cp := *v
		return &cp
	}
	return current
}

func decimalValue(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

// users

func (s *Store) CreateUser(ctx context.Context, id, name, email string, passwordHash *string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return nil, uniqueViolation("users", "users_email_key")
		}
	}
	if _, ok := s.users[id]; ok {
		return nil, uniqueViolation("users", "users_pkey")
	}

	user := &model.User{ID: id, Name: name, Email: email, PasswordHash: passwordHash, Timestamps: s.timestamps()}
	s.users[id] = user
	s.track(id)

	cp := *user
	return &cp, nil
}

func (s *Store) UpsertUser(ctx context.Context, params model.UpsertUserParams) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == params.Email && u.ID != params.ID {
			return nil, uniqueViolation("users", "users_email_key")
		}
	}

	user, ok := s.users[params.ID]
	if !ok {
		user = &model.User{ID: params.ID, Timestamps: s.timestamps()}
		s.users[params.ID] = user
		s.track(params.ID)
	} else {
		user.UpdatedAt = s.now().UTC()
	}
	user.Name = params.Name
	user.Email = params.Email

	cp := *user
	return &cp, nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, noRows("users")
	}
	cp := *user
	return &cp, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, noRows("users")
}

func (s *Store) UpdateUser(ctx context.Context, id string, payload *model.UpdateUserPayload) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, noRows("users")
	}

	if payload.Email != nil {
		for _, u := range s.users {
			if u.Email == *payload.Email && u.ID != id {
				return nil, uniqueViolation("users", "users_email_key")
			}
		}
	}

	user.Name = coalesce(payload.Name, user.Name)
	user.Email = coalesce(payload.Email, user.Email)
	user.UpdatedAt = s.now().UTC()

	cp := *user
	return &cp, nil
}

func (s *Store) DeleteUser(ctx context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, noRows("users")
	}

	for budgetID, b := range s.budgets {
		if b.UserID == id {
			s.deleteBudget(budgetID)
		}
	}
	for txnID, t := range s.transactions {
		if t.UserID == id {
			delete(s.transactions, txnID)
		}
	}
	delete(s.users, id)

	return user, nil
}

// budgets

func (s *Store) CreateBudget(ctx context.Context, userID string, payload *model.CreateBudgetPayload) (*model.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return nil, foreignKey("budgets", "budgets_user_id_fkey")
	}

	budget := &model.Budget{
		Base:        model.Base{ID: uuid.New(), Timestamps: s.timestamps()},
		UserID:      userID,
		Name:        payload.Name,
		Description: coalescePtr(payload.Description, nil),
		Amount:      decimalValue(payload.Amount),
	}
	s.budgets[budget.ID] = budget
	s.track(budget.ID.String())

	cp := *budget
	return &cp, nil
}

func (s *Store) GetBudgetByID(ctx context.Context, budgetID uuid.UUID) (*model.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	budget, ok := s.budgets[budgetID]
	if !ok {
		return nil, noRows("budgets")
	}
	cp := *budget
	return &cp, nil
}

func (s *Store) ListBudgets(ctx context.Context, userID string) ([]model.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	budgets := []model.Budget{}
	for _, b := range s.budgets {
		if b.UserID == userID {
			budgets = append(budgets, *b)
		}
	}
	return sortByOrder(s, budgets, func(b model.Budget) string { return b.ID.String() }), nil
}

func (s *Store) UpdateBudget(ctx context.Context, userID string, payload *model.UpdateBudgetPayload) (*model.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	budget, ok := s.budgets[payload.BudgetID]
	if !ok || budget.UserID != userID {
		return nil, noRows("budgets")
	}

	budget.Name = coalesce(payload.Name, budget.Name)
	budget.Description = coalescePtr(payload.Description, budget.Description)
	budget.Amount = coalesce(payload.Amount, budget.Amount)
	budget.UpdatedAt = s.now().UTC()

	cp := *budget
	return &cp, nil
}

func (s *Store) DeleteBudget(ctx context.Context, userID string, budgetID uuid.UUID) (*model.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	budget, ok := s.budgets[budgetID]
	if !ok || budget.UserID != userID {
		return nil, noRows("budgets")
	}

	s.deleteBudget(budgetID)
	return budget, nil
}

func (s *Store) deleteBudget(budgetID uuid.UUID) {
	for categoryID, c := range s.categories {
		if c.BudgetID == budgetID {
			s.deleteCategory(categoryID)
		}
	}
	for typeID, t := range s.transactionTypes {
		if t.BudgetID == budgetID {
			s.deleteTransactionType(typeID)
		}
	}
	for txnID, t := range s.transactions {
		if t.BudgetID == budgetID {
			delete(s.transactions, txnID)
		}
	}
	delete(s.budgets, budgetID)
}

// categories

func (s *Store) CreateCategory(ctx context.Context, payload *model.CreateCategoryPayload) (*model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.budgets[payload.BudgetID]; !ok {
		return nil, foreignKey("budget_categories", "budget_categories_budget_id_fkey")
	}

	category := &model.Category{
		Base:        model.Base{ID: uuid.New(), Timestamps: s.timestamps()},
		BudgetID:    payload.BudgetID,
		Name:        payload.Name,
		Description: coalescePtr(payload.Description, nil),
	}
	s.categories[category.ID] = category
	s.track(category.ID.String())

	cp := *category
	return &cp, nil
}

func (s *Store) GetCategoryByID(ctx context.Context, categoryID uuid.UUID) (*model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	category, ok := s.categories[categoryID]
	if !ok {
		return nil, noRows("budget_categories")
	}
	cp := *category
	return &cp, nil
}

func (s *Store) ListCategories(ctx context.Context, budgetID uuid.UUID) ([]model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	categories := []model.Category{}
	for _, c := range s.categories {
		if c.BudgetID == budgetID {
			categories = append(categories, *c)
		}
	}
	return sortByOrder(s, categories, func(c model.Category) string { return c.ID.String() }), nil
}

func (s *Store) UpdateCategory(ctx context.Context, payload *model.UpdateCategoryPayload) (*model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	category, ok := s.categories[payload.CategoryID]
	if !ok || category.BudgetID != payload.BudgetID {
		return nil, noRows("budget_categories")
	}

	category.Name = coalesce(payload.Name, category.Name)
	category.Description = coalescePtr(payload.Description, category.Description)
	category.UpdatedAt = s.now().UTC()

	cp := *category
	return &cp, nil
}

func (s *Store) DeleteCategory(ctx context.Context, budgetID, categoryID uuid.UUID) (*model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	category, ok := s.categories[categoryID]
	if !ok || category.BudgetID != budgetID {
		return nil, noRows("budget_categories")
	}

	s.deleteCategory(categoryID)
	return category, nil
}

func (s *Store) deleteCategory(categoryID uuid.UUID) {
	for itemID, i := range s.items {
		if i.CategoryID == categoryID {
			s.deleteItem(itemID)
		}
	}
	delete(s.categories, categoryID)
}

// items

func (s *Store) CreateItem(ctx context.Context, payload *model.CreateItemPayload) (*model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[payload.CategoryID]; !ok {
		return nil, foreignKey("budget_category_items", "budget_category_items_category_id_fkey")
	}

	item := &model.Item{
		Base:        model.Base{ID: uuid.New(), Timestamps: s.timestamps()},
		CategoryID:  payload.CategoryID,
		Name:        payload.Name,
		Description: coalescePtr(payload.Description, nil),
		Amount:      decimalValue(payload.Amount),
	}
	s.items[item.ID] = item
	s.track(item.ID.String())

	cp := *item
	return &cp, nil
}

func (s *Store) GetItemByID(ctx context.Context, itemID uuid.UUID) (*model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[itemID]
	if !ok {
		return nil, noRows("budget_category_items")
	}
	cp := *item
	return &cp, nil
}

func (s *Store) ListItems(ctx context.Context, categoryID uuid.UUID) ([]model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := []model.Item{}
	for _, i := range s.items {
		if i.CategoryID == categoryID {
			items = append(items, *i)
		}
	}
	return sortByOrder(s, items, func(i model.Item) string { return i.ID.String() }), nil
}

func (s *Store) UpdateItem(ctx context.Context, payload *model.UpdateItemPayload) (*model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[payload.ItemID]
	if !ok || item.CategoryID != payload.CategoryID {
		return nil, noRows("budget_category_items")
	}

	item.Name = coalesce(payload.Name, item.Name)
	item.Description = coalescePtr(payload.Description, item.Description)
	item.Amount = coalesce(payload.Amount, item.Amount)
	item.UpdatedAt = s.now().UTC()

	cp := *item
	return &cp, nil
}

func (s *Store) DeleteItem(ctx context.Context, categoryID, itemID uuid.UUID) (*model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[itemID]
	if !ok || item.CategoryID != categoryID {
		return nil, noRows("budget_category_items")
	}

	s.deleteItem(itemID)
	return item, nil
}

func (s *Store) DeleteItemsByCategory(ctx context.Context, categoryID uuid.UUID) ([]model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := []model.Item{}
	for itemID, i := range s.items {
		if i.CategoryID == categoryID {
			deleted = append(deleted, *i)
			s.deleteItem(itemID)
		}
	}
	return sortByOrder(s, deleted, func(i model.Item) string { return i.ID.String() }), nil
}

func (s *Store) deleteItem(itemID uuid.UUID) {
	for txnID, t := range s.transactions {
		if t.ItemID != nil && *t.ItemID == itemID {
			delete(s.transactions, txnID)
		}
	}
	delete(s.items, itemID)
}

// transactions

func (s *Store) CreateTransaction(ctx context.Context, userID string, payload *model.CreateTransactionPayload) (*model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return nil, foreignKey("transactions", "transactions_user_id_fkey")
	}
	if _, ok := s.budgets[payload.BudgetID]; !ok {
		return nil, foreignKey("transactions", "transactions_budget_id_fkey")
	}
	if payload.ItemID != nil {
		if _, ok := s.items[*payload.ItemID]; !ok {
			return nil, foreignKey("transactions", "transactions_item_id_fkey")
		}
	}
	if payload.TransactionTypeID != nil {
		if _, ok := s.transactionTypes[*payload.TransactionTypeID]; !ok {
			return nil, foreignKey("transactions", "transactions_transaction_type_id_fkey")
		}
	}

	date := s.now().UTC()
	if payload.Date != nil {
		date = payload.Date.UTC()
	}

	txn := &model.Transaction{
		Base:              model.Base{ID: uuid.New(), Timestamps: s.timestamps()},
		UserID:            userID,
		BudgetID:          payload.BudgetID,
		ItemID:            coalescePtr(payload.ItemID, nil),
		TransactionTypeID: coalescePtr(payload.TransactionTypeID, nil),
		Amount:            decimalValue(payload.Amount),
		Date:              date,
		Description:       coalescePtr(payload.Description, nil),
	}
	s.transactions[txn.ID] = txn
	s.track(txn.ID.String())

	cp := *txn
	return &cp, nil
}

func (s *Store) GetTransactionByID(ctx context.Context, transactionID uuid.UUID) (*model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txn, ok := s.transactions[transactionID]
	if !ok {
		return nil, noRows("transactions")
	}
	cp := *txn
	return &cp, nil
}

func (s *Store) ListTransactions(ctx context.Context, budgetID uuid.UUID) ([]model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	transactions := []model.Transaction{}
	for _, t := range s.transactions {
		if t.BudgetID == budgetID {
			transactions = append(transactions, *t)
		}
	}
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Date.After(transactions[j].Date)
	})
	return transactions, nil
}

func (s *Store) UpdateTransaction(ctx context.Context, payload *model.UpdateTransactionPayload) (*model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txn, ok := s.transactions[payload.TransactionID]
	if !ok || txn.BudgetID != payload.BudgetID {
		return nil, noRows("transactions")
	}

	txn.ItemID = coalescePtr(payload.ItemID, txn.ItemID)
	txn.TransactionTypeID = coalescePtr(payload.TransactionTypeID, txn.TransactionTypeID)
	txn.Amount = coalesce(payload.Amount, txn.Amount)
	if payload.Date != nil {
		txn.Date = payload.Date.UTC()
	}
	txn.Description = coalescePtr(payload.Description, txn.Description)
	txn.UpdatedAt = s.now().UTC()

	cp := *txn
	return &cp, nil
}

func (s *Store) DeleteTransaction(ctx context.Context, budgetID, transactionID uuid.UUID) (*model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txn, ok := s.transactions[transactionID]
	if !ok || txn.BudgetID != budgetID {
		return nil, noRows("transactions")
	}

	delete(s.transactions, transactionID)
	return txn, nil
}

// transaction types

func (s *Store) CreateTransactionType(ctx context.Context, payload *model.CreateTransactionTypePayload) (*model.TransactionType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.budgets[payload.BudgetID]; !ok {
		return nil, foreignKey("transaction_types", "transaction_types_budget_id_fkey")
	}

	tt := &model.TransactionType{
		Base:     model.Base{ID: uuid.New(), Timestamps: s.timestamps()},
		BudgetID: payload.BudgetID,
		Label:    payload.Label,
	}
	s.transactionTypes[tt.ID] = tt
	s.track(tt.ID.String())

	cp := *tt
	return &cp, nil
}

func (s *Store) GetTransactionTypeByID(ctx context.Context, typeID uuid.UUID) (*model.TransactionType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tt, ok := s.transactionTypes[typeID]
	if !ok {
		return nil, noRows("transaction_types")
	}
	cp := *tt
	return &cp, nil
}

func (s *Store) ListTransactionTypes(ctx context.Context, budgetID uuid.UUID) ([]model.TransactionType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	types := []model.TransactionType{}
	for _, t := range s.transactionTypes {
		if t.BudgetID == budgetID {
			types = append(types, *t)
		}
	}
	sort.Slice(types, func(i, j int) bool {
		if types[i].Label != types[j].Label {
			return types[i].Label < types[j].Label
		}
		return types[i].ID.String() < types[j].ID.String()
	})
	return types, nil
}

func (s *Store) UpdateTransactionType(ctx context.Context, payload *model.UpdateTransactionTypePayload) (*model.TransactionType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tt, ok := s.transactionTypes[payload.TypeID]
	if !ok || tt.BudgetID != payload.BudgetID {
		return nil, noRows("transaction_types")
	}

	tt.Label = coalesce(payload.Label, tt.Label)
	tt.UpdatedAt = s.now().UTC()

	cp := *tt
	return &cp, nil
}

func (s *Store) DeleteTransactionType(ctx context.Context, budgetID, typeID uuid.UUID) (*model.TransactionType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tt, ok := s.transactionTypes[typeID]
	if !ok || tt.BudgetID != budgetID {
		return nil, noRows("transaction_types")
	}

	s.deleteTransactionType(typeID)
	return tt, nil
}

func (s *Store) deleteTransactionType(typeID uuid.UUID) {
	for _, t := range s.transactions {
		if t.TransactionTypeID != nil && *t.TransactionTypeID == typeID {
			t.TransactionTypeID = nil
		}
	}
	delete(s.transactionTypes, typeID)
}
