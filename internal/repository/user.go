package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/finance-api/internal/model"
	"github.com/deppfellow/finance-api/internal/server"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, name, email, password_hash, created_at, updated_at`

// UserRepository stores accounts.
type UserRepository struct {
	server *server.Server
}

func NewUserRepository(s *server.Server) *UserRepository {
	return &UserRepository{server: s}
}

// CreateUser inserts a user. A duplicate email surfaces as the
// users_email_key unique violation.
func (r *UserRepository) CreateUser(ctx context.Context, id, name, email string, passwordHash *string) (*model.User, error) {
	stmt := `
		INSERT INTO users (id, name, email, password_hash)
		VALUES (@id, @name, @email, @password_hash)
		RETURNING ` + userColumns

	user, err := queryOne[model.User](ctx, r.server.DB.Pool, "users", stmt, pgx.NamedArgs{
		"id":            id,
		"name":          name,
		"email":         email,
		"password_hash": passwordHash,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user email=%s: %w", email, err)
	}

	return user, nil
}

// UpsertUser creates or refreshes an identity provider account.
func (r *UserRepository) UpsertUser(ctx context.Context, params model.UpsertUserParams) (*model.User, error) {
	stmt := `
		INSERT INTO users (id, name, email)
		VALUES (@id, @name, @email)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, email = EXCLUDED.email
		RETURNING ` + userColumns

	user, err := queryOne[model.User](ctx, r.server.DB.Pool, "users", stmt, pgx.NamedArgs{
		"id":    params.ID,
		"name":  params.Name,
		"email": params.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user id=%s: %w", params.ID, err)
	}

	return user, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	stmt := `SELECT ` + userColumns + ` FROM users WHERE id = @id`

	user, err := queryOne[model.User](ctx, r.server.DB.Pool, "users", stmt, pgx.NamedArgs{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to get user id=%s: %w", id, err)
	}

	return user, nil
}

// GetUserByEmail looks up an account by its normalized email.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	stmt := `SELECT ` + userColumns + ` FROM users WHERE email = @email`

	user, err := queryOne[model.User](ctx, r.server.DB.Pool, "users", stmt, pgx.NamedArgs{"email": email})
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// UpdateUser patches name and email. A taken email surfaces as a
// users_email_key unique violation.
func (r *UserRepository) UpdateUser(ctx context.Context, id string, payload *model.UpdateUserPayload) (*model.User, error) {
	stmt := `
		UPDATE users
		SET name = COALESCE(@name, name),
			email = COALESCE(@email, email)
		WHERE id = @id
		RETURNING ` + userColumns

	user, err := queryOne[model.User](ctx, r.server.DB.Pool, "users", stmt, pgx.NamedArgs{
		"id":    id,
		"name":  payload.Name,
		"email": payload.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update user id=%s: %w", id, err)
	}

	return user, nil
}

// DeleteUser removes the user; budgets and everything below them cascade.
func (r *UserRepository) DeleteUser(ctx context.Context, id string) (*model.User, error) {
	stmt := `DELETE FROM users WHERE id = @id RETURNING ` + userColumns

	user, err := queryOne[model.User](ctx, r.server.DB.Pool, "users", stmt, pgx.NamedArgs{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to delete user id=%s: %w", id, err)
	}

	return user, nil
}
