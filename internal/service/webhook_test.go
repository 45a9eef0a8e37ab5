package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/deppfellow/finance-api/internal/errs"
	"github.com/deppfellow/finance-api/internal/financetest"
	"github.com/deppfellow/finance-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookVerify(t *testing.T) {
	env := financetest.NewEnv(t, nil)
	webhook := env.Services.Webhook

	payload := financetest.ClerkUserEvent(t, service.EventUserCreated, "user_1", "ada@example.com", "Ada")
	headers := financetest.SignWebhook(t, payload)

	assert.NoError(t, webhook.Verify(payload, headers))

	tampered := append([]byte{}, payload...)
	tampered[len(tampered)-2] = ' '
	err := webhook.Verify(tampered, headers)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Status)

	assert.Error(t, webhook.Verify(payload, http.Header{}))
}

func TestNewWebhookServiceRejectsBadSecret(t *testing.T) {
	_, err := service.NewWebhookService("whsec_!!!not-base64", financetest.NewStore(), nil, nil, financetest.Logger())
	assert.Error(t, err)
}

func TestHandleClerkEvent(t *testing.T) {
	ctx := context.Background()
	env := financetest.NewEnv(t, nil)
	webhook := env.Services.Webhook

	t.Run("created upserts and sends welcome", func(t *testing.T) {
		result, err := webhook.HandleClerkEvent(ctx, financetest.ClerkUserEvent(t, service.EventUserCreated, "user_1", "ada@example.com", "Ada"))
		require.NoError(t, err)
		assert.Equal(t, &service.WebhookResult{Event: service.EventUserCreated, UserID: "user_1", Action: "upserted"}, result)

		user, err := env.Store.GetUserByID(ctx, "user_1")
		require.NoError(t, err)
		assert.Equal(t, "Ada", user.Name)
		assert.Nil(t, user.PasswordHash)
		assert.Equal(t, []financetest.WelcomeEmail{{To: "ada@example.com", Name: "Ada"}}, env.Mailer.Sent())
	})

	t.Run("updated changes the row without another email", func(t *testing.T) {
		_, err := webhook.HandleClerkEvent(ctx, financetest.ClerkUserEvent(t, service.EventUserUpdated, "user_1", "ada@new.example.com", "Augusta"))
		require.NoError(t, err)

		user, err := env.Store.GetUserByID(ctx, "user_1")
		require.NoError(t, err)
		assert.Equal(t, "Augusta", user.Name)
		assert.Equal(t, "ada@new.example.com", user.Email)
		assert.Len(t, env.Mailer.Sent(), 1)
	})

	t.Run("deleted is idempotent", func(t *testing.T) {
		payload := financetest.ClerkDeletedEvent(t, "user_1")

		result, err := webhook.HandleClerkEvent(ctx, payload)
		require.NoError(t, err)
		assert.Equal(t, "deleted", result.Action)

		result, err = webhook.HandleClerkEvent(ctx, payload)
		require.NoError(t, err)
		assert.Equal(t, "already_deleted", result.Action)
	})

	t.Run("email held by a local account is acknowledged as a conflict", func(t *testing.T) {
		_, err := env.Store.CreateUser(ctx, "local_1", "Grace", "grace@example.com", nil)
		require.NoError(t, err)

		result, err := webhook.HandleClerkEvent(ctx, financetest.ClerkUserEvent(t, service.EventUserCreated, "user_2", "Grace@Example.com", "Grace"))
		require.NoError(t, err)
		assert.Equal(t, &service.WebhookResult{Event: service.EventUserCreated, UserID: "user_2", Action: "conflict"}, result)

		_, err = env.Store.GetUserByID(ctx, "user_2")
		assert.Error(t, err)
		assert.Len(t, env.Mailer.Sent(), 1)
	})

	t.Run("unknown events are ignored", func(t *testing.T) {
		result, err := webhook.HandleClerkEvent(ctx, []byte(`{"type":"session.created","data":{}}`))
		require.NoError(t, err)
		assert.Equal(t, "ignored", result.Action)
	})

	t.Run("malformed payloads", func(t *testing.T) {
		for _, payload := range []string{
			`not json`,
			`{"type":"user.created","data":{"id":""}}`,
			`{"type":"user.created","data":{"id":"user_2","email_addresses":[]}}`,
			`{"type":"user.deleted","data":{}}`,
		} {
			_, err := webhook.HandleClerkEvent(ctx, []byte(payload))

			var httpErr *errs.HTTPError
			require.ErrorAs(t, err, &httpErr, payload)
			assert.Equal(t, http.StatusBadRequest, httpErr.Status, payload)
		}
	})
}
