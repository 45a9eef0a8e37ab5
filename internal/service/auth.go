package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/deppfellow/finance-api/internal/config"
	"github.com/deppfellow/finance-api/internal/errs"
	"github.com/deppfellow/finance-api/internal/model"
	"github.com/deppfellow/finance-api/internal/sqlerr"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const tokenIssuer = "finance-api"

var errInvalidCredentials = errs.NewUnauthorizedError("Invalid email or password", true)

// AuthService issues and verifies local sessions and configures Clerk.
type AuthService struct {
	provider string
	secret   []byte
	ttl      time.Duration

	users  UserRepository
	jobs   WelcomeEnqueuer
	logger *zerolog.Logger

	now func() time.Time
}

// NewAuthService validates the signing secret and, for the clerk provider,
// sets the Clerk API key.
func NewAuthService(cfg *config.AuthConfig, users UserRepository, jobs WelcomeEnqueuer, logger *zerolog.Logger) (*AuthService, error) {
	if len(cfg.SecretKey) < 32 {
		return nil, errors.New("auth secret key must be at least 32 bytes")
	}

	if cfg.Provider == config.AuthProviderClerk {
		clerk.SetKey(cfg.ClerkSecretKey)
	}

	return &AuthService{
		provider: cfg.Provider,
		secret:   []byte(cfg.SecretKey),
		ttl:      cfg.TokenTTL,
		users:    users,
		jobs:     jobs,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// Provider returns the configured identity provider.
func (s *AuthService) Provider() string {
	return s.provider
}

// SignUp creates a local account. A taken email is reported by the database
// as a unique violation and becomes a 409.
func (s *AuthService) SignUp(ctx context.Context, payload *model.SignUpPayload) (*model.Session, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	passwordHash := string(hash)

	email := normalizeEmail(payload.Email)

	user, err := s.users.CreateUser(ctx, uuid.NewString(), strings.TrimSpace(payload.Name), email, &passwordHash)
	if err != nil {
		if sqlerr.IsUniqueViolation(err, emailConstraint) {
			return nil, errEmailTaken()
		}
		return nil, err
	}

	s.enqueueWelcome(ctx, user)

	return s.newSession(user)
}

// SignIn checks the password and issues a session. Unknown emails, accounts
// without a local password and wrong passwords share one error.
func (s *AuthService) SignIn(ctx context.Context, payload *model.SignInPayload) (*model.Session, error) {
	user, err := s.users.GetUserByEmail(ctx, normalizeEmail(payload.Email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if user.PasswordHash == nil {
		return nil, errInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(payload.Password)); err != nil {
		return nil, errInvalidCredentials
	}

	return s.newSession(user)
}

func (s *AuthService) newSession(user *model.User) (*model.Session, error) {
	token, expiresAt, err := s.IssueToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &model.Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// IssueToken signs an HS256 token for userID.
func (s *AuthService) IssueToken(userID string) (string, time.Time, error) {
	now := s.now().UTC()
	expiresAt := now.Add(s.ttl)

	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// VerifyToken returns the user id carried by a token from IssueToken.
func (s *AuthService) VerifyToken(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", err
	}

	if claims.Subject == "" {
		return "", errors.New("token has no subject")
	}

	return claims.Subject, nil
}

// enqueueWelcome never fails the request; the account already exists.
func (s *AuthService) enqueueWelcome(ctx context.Context, user *model.User) {
	if s.jobs == nil {
		return
	}

	if err := s.jobs.EnqueueWelcomeEmail(ctx, user.Email, user.Name); err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to enqueue welcome email")
	}
}
