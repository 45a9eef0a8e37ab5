package model

import "time"

// User is an account, either synced from the identity provider or created
// by local sign-up. PasswordHash is nil for identity provider accounts.
type User struct {
	ID           string  `db:"id" json:"id"`
	Name         string  `db:"name" json:"name"`
	Email        string  `db:"email" json:"email"`
	PasswordHash *string `db:"password_hash" json:"-"`
	Timestamps
}

type SignUpPayload struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

func (p *SignUpPayload) Validate() error {
	return validate.Struct(p)
}

type SignInPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (p *SignInPayload) Validate() error {
	return validate.Struct(p)
}

type UpdateUserPayload struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=100"`
	Email *string `json:"email" validate:"omitempty,email,max=255"`
}

func (p *UpdateUserPayload) Validate() error {
	return validate.Struct(p)
}

// Session is returned by sign-up and sign-in.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user"`
}

// UpsertUserParams syncs an identity provider account into the users table.
type UpsertUserParams struct {
	ID    string
	Name  string
	Email string
}
