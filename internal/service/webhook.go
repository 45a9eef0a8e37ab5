package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/deppfellow/finance-api/internal/errs"
	"github.com/deppfellow/finance-api/internal/lib/cache"
	"github.com/deppfellow/finance-api/internal/model"
	"github.com/deppfellow/finance-api/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	svix "github.com/svix/svix-webhooks/go"
)

// Clerk user lifecycle events.
const (
	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
	EventUserDeleted = "user.deleted"
)

type clerkEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// WebhookResult reports what a delivery did.
type WebhookResult struct {
	Event  string `json:"event"`
	UserID string `json:"user_id,omitempty"`
	Action string `json:"action"`
}

// WebhookService keeps the users table in sync with Clerk.
type WebhookService struct {
	verifier *svix.Webhook

	users  UserRepository
	jobs   WelcomeEnqueuer
	cache  *cache.BudgetCache
	logger *zerolog.Logger
}

// NewWebhookService verifies deliveries with secret, the "whsec_" signing
// secret of the Clerk webhook endpoint.
func NewWebhookService(secret string, users UserRepository, jobs WelcomeEnqueuer, budgetCache *cache.BudgetCache, logger *zerolog.Logger) (*WebhookService, error) {
	verifier, err := svix.NewWebhook(secret)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook secret: %w", err)
	}

	return &WebhookService{verifier: verifier, users: users, jobs: jobs, cache: budgetCache, logger: logger}, nil
}

// Verify checks the Svix signature headers of a delivery. Nothing in the
// payload is trusted before it passes.
func (s *WebhookService) Verify(payload []byte, headers http.Header) error {
	if err := s.verifier.Verify(payload, headers); err != nil {
		return errs.NewUnauthorizedError("Invalid webhook signature", true)
	}
	return nil
}

// HandleClerkEvent applies a verified delivery. Unknown event types are
// acknowledged and ignored.
func (s *WebhookService) HandleClerkEvent(ctx context.Context, payload []byte) (*WebhookResult, error) {
	var event clerkEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, errs.NewBadRequestError("Malformed webhook payload", true, nil, nil, nil)
	}

	switch event.Type {
	case EventUserCreated, EventUserUpdated:
		return s.syncUser(ctx, event)
	case EventUserDeleted:
		return s.deleteUser(ctx, event)
	default:
		s.logger.Debug().Str("event", event.Type).Msg("ignoring webhook event")
		return &WebhookResult{Event: event.Type, Action: "ignored"}, nil
	}
}

// syncUser upserts the Clerk user. An email held by a different account is
// reported as a "conflict" action rather than an error.
func (s *WebhookService) syncUser(ctx context.Context, event clerkEvent) (*WebhookResult, error) {
	var user clerk.User
	if err := json.Unmarshal(event.Data, &user); err != nil || user.ID == "" {
		return nil, errs.NewBadRequestError("Malformed user in webhook payload", true, nil, nil, nil)
	}

	email := primaryEmail(&user)
	if email == "" {
		return nil, errs.NewBadRequestError("Webhook user has no email address", true, nil, nil, nil)
	}

	stored, err := s.users.UpsertUser(ctx, model.UpsertUserParams{
		ID:    user.ID,
		Name:  displayName(&user, email),
		Email: email,
	})
	if err != nil {
		if sqlerr.IsUniqueViolation(err, emailConstraint) {
			// Retrying cannot succeed while another account holds the address,
			// so the delivery is acknowledged and left for an operator.
			s.logger.Warn().
				Str("event", event.Type).
				Str("clerk_user_id", user.ID).
				Msg("webhook user email already belongs to another account")
			return &WebhookResult{Event: event.Type, UserID: user.ID, Action: "conflict"}, nil
		}
		return nil, err
	}

	if event.Type == EventUserCreated && s.jobs != nil {
		if err := s.jobs.EnqueueWelcomeEmail(ctx, stored.Email, stored.Name); err != nil {
			s.logger.Error().Err(err).Str("user_id", stored.ID).Msg("failed to enqueue welcome email")
		}
	}

	return &WebhookResult{Event: event.Type, UserID: stored.ID, Action: "upserted"}, nil
}

// deleteUser is idempotent: a user that is already gone is acknowledged.
func (s *WebhookService) deleteUser(ctx context.Context, event clerkEvent) (*WebhookResult, error) {
	var deleted clerk.DeletedResource
	if err := json.Unmarshal(event.Data, &deleted); err != nil || deleted.ID == "" {
		return nil, errs.NewBadRequestError("Malformed user in webhook payload", true, nil, nil, nil)
	}

	action := "deleted"
	if _, err := s.users.DeleteUser(ctx, deleted.ID); err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		action = "already_deleted"
	}

	s.cache.Invalidate(ctx, deleted.ID)

	return &WebhookResult{Event: event.Type, UserID: deleted.ID, Action: action}, nil
}

func primaryEmail(user *clerk.User) string {
	var fallback string
	for _, address := range user.EmailAddresses {
		if address == nil {
			continue
		}
		if user.PrimaryEmailAddressID != nil && address.ID == *user.PrimaryEmailAddressID {
			return normalizeEmail(address.EmailAddress)
		}
		if fallback == "" {
			fallback = normalizeEmail(address.EmailAddress)
		}
	}
	return fallback
}

func displayName(user *clerk.User, email string) string {
	var parts []string
	for _, part := range []*string{user.FirstName, user.LastName} {
		if part != nil && strings.TrimSpace(*part) != "" {
			parts = append(parts, strings.TrimSpace(*part))
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}
	if user.Username != nil && *user.Username != "" {
		return *user.Username
	}
	return strings.Split(email, "@")[0]
}
