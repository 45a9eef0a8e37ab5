package service

import (
	"context"
	"errors"

	"github.com/deppfellow/finance-api/internal/errs"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ParentLookup returns the stored parent id of the resource with the given id.
type ParentLookup func(ctx context.Context, id uuid.UUID) (string, error)

// Link is one resource on an ownership chain. Its stored parent must equal
// the previous link's id, or Under when set.
type Link struct {
	Resource string
	ID       uuid.UUID
	Parent   ParentLookup
	Under    string
}

// Chain verifies that a caller owns a nested resource: starting from the
// caller's user id, every link's stored parent must equal the id of the link
// before it. A missing resource and a resource hanging under someone else's
// parent both fail with the same NotFound, so the existence of other
// tenants' ids is never revealed.
type Chain struct {
	owner string
	links []Link
}

// NewChain starts a chain rooted at the caller's user id.
func NewChain(owner string) *Chain {
	return &Chain{owner: owner}
}

// Then appends a link and returns the chain.
func (c *Chain) Then(resource string, id uuid.UUID, parent ParentLookup) *Chain {
	c.links = append(c.links, Link{Resource: resource, ID: id, Parent: parent})
	return c
}

// ThenUnder appends a link whose parent is parentID instead of the previous link.
func (c *Chain) ThenUnder(resource string, id, parentID uuid.UUID, parent ParentLookup) *Chain {
	c.links = append(c.links, Link{Resource: resource, ID: id, Parent: parent, Under: parentID.String()})
	return c
}

// Verify walks the chain root to leaf. Every call reads every link again.
func (c *Chain) Verify(ctx context.Context) error {
	expected := c.owner

	for _, link := range c.links {
		parent, err := link.Parent(ctx, link.ID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return errs.ResourceNotFound(link.Resource, link.ID.String())
			}
			return err
		}

		want := expected
		if link.Under != "" {
			want = link.Under
		}

		if parent != want {
			return errs.ResourceNotFound(link.Resource, link.ID.String())
		}

		expected = link.ID.String()
	}

	return nil
}

// notFound converts a missing row from a terminal statement into the
// resource's NotFound.
func notFound(err error, resource string, id uuid.UUID) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return errs.ResourceNotFound(resource, id.String())
	}
	return err
}

// Resource names used in ownership errors.
const (
	resourceUser            = "User"
	resourceBudget          = "Budget"
	resourceCategory        = "Category"
	resourceItem            = "Item"
	resourceTransaction     = "Transaction"
	resourceTransactionType = "TransactionType"
)

// ownership builds the chains for every nested resource.
type ownership struct {
	budgets          BudgetRepository
	categories       CategoryRepository
	items            ItemRepository
	transactions     TransactionRepository
	transactionTypes TransactionTypeRepository
}

func (o *ownership) budgetOwner(ctx context.Context, id uuid.UUID) (string, error) {
	budget, err := o.budgets.GetBudgetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return budget.UserID, nil
}

func (o *ownership) categoryBudget(ctx context.Context, id uuid.UUID) (string, error) {
	category, err := o.categories.GetCategoryByID(ctx, id)
	if err != nil {
		return "", err
	}
	return category.BudgetID.String(), nil
}

func (o *ownership) itemCategory(ctx context.Context, id uuid.UUID) (string, error) {
	item, err := o.items.GetItemByID(ctx, id)
	if err != nil {
		return "", err
	}
	return item.CategoryID.String(), nil
}

// itemBudget resolves the budget an item belongs to through its category.
func (o *ownership) itemBudget(ctx context.Context, id uuid.UUID) (string, error) {
	item, err := o.items.GetItemByID(ctx, id)
	if err != nil {
		return "", err
	}
	return o.categoryBudget(ctx, item.CategoryID)
}

func (o *ownership) transactionBudget(ctx context.Context, id uuid.UUID) (string, error) {
	transaction, err := o.transactions.GetTransactionByID(ctx, id)
	if err != nil {
		return "", err
	}
	return transaction.BudgetID.String(), nil
}

func (o *ownership) transactionTypeBudget(ctx context.Context, id uuid.UUID) (string, error) {
	tt, err := o.transactionTypes.GetTransactionTypeByID(ctx, id)
	if err != nil {
		return "", err
	}
	return tt.BudgetID.String(), nil
}

// User -> Budget
func (o *ownership) budget(userID string, budgetID uuid.UUID) *Chain {
	return NewChain(userID).Then(resourceBudget, budgetID, o.budgetOwner)
}

// User -> Budget -> Category
func (o *ownership) category(userID string, budgetID, categoryID uuid.UUID) *Chain {
	return o.budget(userID, budgetID).Then(resourceCategory, categoryID, o.categoryBudget)
}

// User -> Budget -> Category -> Item
func (o *ownership) item(userID string, budgetID, categoryID, itemID uuid.UUID) *Chain {
	return o.category(userID, budgetID, categoryID).Then(resourceItem, itemID, o.itemCategory)
}

// User -> Budget -> Transaction
func (o *ownership) transaction(userID string, budgetID, transactionID uuid.UUID) *Chain {
	return o.budget(userID, budgetID).Then(resourceTransaction, transactionID, o.transactionBudget)
}

// User -> Budget -> TransactionType
func (o *ownership) transactionType(userID string, budgetID, typeID uuid.UUID) *Chain {
	return o.budget(userID, budgetID).Then(resourceTransactionType, typeID, o.transactionTypeBudget)
}

// references extends chain with the item and type a transaction points at.
// Both must live in the transaction's budget.
func (o *ownership) references(chain *Chain, budgetID uuid.UUID, itemID, typeID *uuid.UUID) *Chain {
	if itemID != nil {
		chain.ThenUnder(resourceItem, *itemID, budgetID, o.itemBudget)
	}
	if typeID != nil {
		chain.ThenUnder(resourceTransactionType, *typeID, budgetID, o.transactionTypeBudget)
	}
	return chain
}
