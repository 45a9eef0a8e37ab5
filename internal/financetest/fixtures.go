package financetest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/deppfellow/finance-api/internal/config"
	"github.com/deppfellow/finance-api/internal/service"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// WebhookSecret is a valid svix signing secret for tests.
const WebhookSecret = "whsec_MfKQ9r8GKYqrTwjUPD8ILPZIo2LaLaSw"

// Config returns a validated local-provider configuration.
func Config(t testing.TB) *config.Config {
	t.Helper()

	cfg := &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			Port:               "8080",
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"http://localhost:3000"},
		},
		Database: config.DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			Password:        "postgres",
			Name:            "finance",
			SSLMode:         "disable",
			MaxOpenConns:    5,
			MaxIdleConns:    1,
			ConnMaxLifetime: 300,
			ConnMaxIdleTime: 60,
		},
		Redis: config.RedisConfig{Address: "localhost:6379"},
		Auth: config.AuthConfig{
			Provider:      config.AuthProviderLocal,
			SecretKey:     "test-secret-key-that-is-long-enough-for-hs256",
			WebhookSecret: WebhookSecret,
			TokenTTL:      time.Hour,
		},
		Integration: config.IntegrationConfig{ResendAPIKey: "re_test"},
	}

	require.NoError(t, cfg.Finalize())
	return cfg
}

// Logger discards everything.
func Logger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

// WelcomeEmail is one recorded enqueue.
type WelcomeEmail struct {
	To   string
	Name string
}

// Mailer records welcome email enqueues instead of talking to Redis.
type Mailer struct {
	mu   sync.Mutex
	sent []WelcomeEmail
	Err  error
}

func (m *Mailer) EnqueueWelcomeEmail(ctx context.Context, to, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	m.sent = append(m.sent, WelcomeEmail{To: to, Name: name})
	return nil
}

// Sent returns a copy of the recorded enqueues.
func (m *Mailer) Sent() []WelcomeEmail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]WelcomeEmail(nil), m.sent...)
}

// Env is a fully wired service layer over an in-memory store.
type Env struct {
	Config   *config.Config
	Store    *Store
	Mailer   *Mailer
	Services *service.Services
}

// NewEnv builds services from cfg, or from Config(t) when cfg is nil.
func NewEnv(t testing.TB, cfg *config.Config) *Env {
	t.Helper()

	if cfg == nil {
		cfg = Config(t)
	}

	store := NewStore()
	mailer := &Mailer{}

	services, err := service.NewServicesFromDependencies(service.Dependencies{
		Config:           cfg,
		Logger:           Logger(),
		Users:            store,
		Budgets:          store,
		Categories:       store,
		Items:            store,
		Transactions:     store,
		TransactionTypes: store,
		Jobs:             mailer,
	})
	require.NoError(t, err)

	return &Env{Config: cfg, Store: store, Mailer: mailer, Services: services}
}
