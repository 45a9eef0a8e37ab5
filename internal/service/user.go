package service

import (
	"context"
	"errors"
	"strings"

	"github.com/deppfellow/finance-api/internal/errs"
	"github.com/deppfellow/finance-api/internal/lib/cache"
	"github.com/deppfellow/finance-api/internal/model"
	"github.com/deppfellow/finance-api/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

// emailConstraint is the unique constraint on users.email. Addresses are
// stored normalized, so it behaves case-insensitively.
const emailConstraint = "users_email_key"

// normalizeEmail is applied to every address before it is stored or looked up.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// errEmailTaken is the 409 for an address already held by another account.
func errEmailTaken() error {
	code := "USER_ALREADY_EXISTS"
	return errs.NewConflictError("A user with this email already exists", true, &code)
}

// UserService manages the caller's own account.
type UserService struct {
	users UserRepository
	cache *cache.BudgetCache
}

// NewUserService returns a UserService. budgetCache may be nil.
func NewUserService(users UserRepository, budgetCache *cache.BudgetCache) *UserService {
	return &UserService{users: users, cache: budgetCache}
}

func userNotFound(err error, userID string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return errs.ResourceNotFound(resourceUser, userID)
	}
	return err
}

// GetUser returns the caller's account.
func (s *UserService) GetUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, userNotFound(err, userID)
	}
	return user, nil
}

// UpdateUser patches the caller's name and email. The new email is
// normalized first, so another account's address in a different case is a 409.
func (s *UserService) UpdateUser(ctx context.Context, userID string, payload *model.UpdateUserPayload) (*model.User, error) {
	if payload.Email != nil {
		email := normalizeEmail(*payload.Email)
		payload = &model.UpdateUserPayload{Name: payload.Name, Email: &email}
	}

	user, err := s.users.UpdateUser(ctx, userID, payload)
	if err != nil {
		if sqlerr.IsUniqueViolation(err, emailConstraint) {
			return nil, errEmailTaken()
		}
		return nil, userNotFound(err, userID)
	}
	return user, nil
}

// DeleteUser removes the account and, by cascade, everything it owns.
func (s *UserService) DeleteUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.DeleteUser(ctx, userID)
	if err != nil {
		return nil, userNotFound(err, userID)
	}
	s.cache.Invalidate(ctx, userID)
	return user, nil
}
