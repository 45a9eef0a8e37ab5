package financetest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	svix "github.com/svix/svix-webhooks/go"
)

// SignWebhook returns the svix headers Clerk would send with payload.
func SignWebhook(t testing.TB, payload []byte) http.Header {
	t.Helper()

	wh, err := svix.NewWebhook(WebhookSecret)
	require.NoError(t, err)

	msgID := "msg_" + uuid.NewString()
	now := time.Now()

	signature, err := wh.Sign(msgID, now, payload)
	require.NoError(t, err)

	headers := http.Header{}
	headers.Set("svix-id", msgID)
	headers.Set("svix-timestamp", strconv.FormatInt(now.Unix(), 10))
	headers.Set("svix-signature", signature)
	return headers
}

// ClerkUserEvent builds a user.created/user.updated delivery body.
func ClerkUserEvent(t testing.TB, eventType, userID, email, firstName string) []byte {
	t.Helper()

	emailID := "idn_" + userID
	body, err := json.Marshal(map[string]any{
		"type":   eventType,
		"object": "event",
		"data": map[string]any{
			"id":                       userID,
			"object":                   "user",
			"first_name":               firstName,
			"last_name":                nil,
			"primary_email_address_id": emailID,
			"email_addresses": []map[string]any{
				{"id": emailID, "object": "email_address", "email_address": email},
			},
		},
	})
	require.NoError(t, err)
	return body
}

// ClerkDeletedEvent builds a user.deleted delivery body.
func ClerkDeletedEvent(t testing.TB, userID string) []byte {
	t.Helper()

	body, err := json.Marshal(map[string]any{
		"type":   "user.deleted",
		"object": "event",
		"data": map[string]any{
			"id":      userID,
			"object":  "user",
			"deleted": true,
		},
	})
	require.NoError(t, err)
	return body
}

// SignedRequest builds a POST to path carrying payload and valid svix headers.
func SignedRequest(t testing.TB, path string, payload []byte) *http.Request {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for key, values := range SignWebhook(t, payload) {
		req.Header[key] = values
	}
	return req
}

// Serve runs req through h.
func Serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
