package config

import (
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()

	vars := map[string]string{
		"FINANCE_PRIMARY.ENV":                  "development",
		"FINANCE_SERVER.PORT":                  "8080",
		"FINANCE_SERVER.READ_TIMEOUT":          "30",
		"FINANCE_SERVER.WRITE_TIMEOUT":         "30",
		"FINANCE_SERVER.IDLE_TIMEOUT":          "60",
		"FINANCE_SERVER.CORS_ALLOWED_ORIGINS":  "http://localhost:3000",
		"FINANCE_DATABASE.HOST":                "localhost",
		"FINANCE_DATABASE.PORT":                "5432",
		"FINANCE_DATABASE.USER":                "postgres",
		"FINANCE_DATABASE.PASSWORD":            "p@ss:word",
		"FINANCE_DATABASE.NAME":                "finance",
		"FINANCE_DATABASE.SSL_MODE":            "disable",
		"FINANCE_DATABASE.MAX_OPEN_CONNS":      "25",
		"FINANCE_DATABASE.MAX_IDLE_CONNS":      "25",
		"FINANCE_DATABASE.CONN_MAX_LIFETIME":   "300",
		"FINANCE_DATABASE.CONN_MAX_IDLE_TIME":  "300",
		"FINANCE_REDIS.ADDRESS":                "localhost:6379",
		"FINANCE_AUTH.PROVIDER":                "local",
		"FINANCE_AUTH.SECRET_KEY":              "0123456789abcdef0123456789abcdef",
		"FINANCE_AUTH.WEBHOOK_SECRET":          "whsec_dGVzdA==",
		"FINANCE_INTEGRATION.RESEND_API_KEY":   "re_test",
		"FINANCE_RATE_LIMIT.WINDOW":            "30s",
		"FINANCE_AUTH.TOKEN_TTL":               "2h",
		"FINANCE_CACHE.BUDGET_TTL":             "1m",
		"FINANCE_RATE_LIMIT.REQUESTS":          "10",
		"FINANCE_RATE_LIMIT.ENABLED":           "true",
		"FINANCE_OBSERVABILITY.LOGGING.LEVEL":  "debug",
		"FINANCE_OBSERVABILITY.LOGGING.FORMAT": "console",
	}
	for k, v := range vars {
		t.Setenv(k, v)
	}

	t.Setenv("FINANCE_OBSERVABILITY.HEALTH_CHECKS.INTERVAL", "30s")
	t.Setenv("FINANCE_OBSERVABILITY.HEALTH_CHECKS.TIMEOUT", "5s")
}

func TestLoadConfig(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, AuthProviderLocal, cfg.Auth.Provider)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, 10, cfg.RateLimit.Requests)
	assert.True(t, cfg.RateLimit.IsEnabled())
	assert.Equal(t, time.Minute, cfg.Cache.BudgetTTL)

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "development", cfg.Observability.Environment)
	assert.Equal(t, "debug", cfg.Observability.GetLogLevel())
}

func TestRateLimitDefaultsToEnabled(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("FINANCE_RATE_LIMIT.ENABLED", "")
	os.Unsetenv("FINANCE_RATE_LIMIT.ENABLED")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg.RateLimit.Enabled)
	assert.True(t, cfg.RateLimit.IsEnabled())

	t.Setenv("FINANCE_RATE_LIMIT.ENABLED", "false")

	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.False(t, cfg.RateLimit.IsEnabled())
}

func TestLoadConfigFailsFastOnMissingSecret(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("FINANCE_AUTH.WEBHOOK_SECRET", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WebhookSecret")
}

func TestLoadConfigRequiresClerkKeyForClerkProvider(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("FINANCE_AUTH.PROVIDER", "clerk")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ClerkSecretKey")

	t.Setenv("FINANCE_AUTH.CLERK_SECRET_KEY", "sk_test_123")
	_, err = LoadConfig()
	require.NoError(t, err)
}

func TestDSNEscapesCredentials(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db",
		Port:     5432,
		User:     "app@tenant",
		Password: "p@ss:word/1",
		Name:     "finance",
		SSLMode:  "disable",
	}

	dsn := d.DSN()
	assert.Equal(t, "postgres://app%40tenant:p%40ss%3Aword%2F1@db:5432/finance?sslmode=disable", dsn)

	parsed, err := url.Parse(dsn)
	require.NoError(t, err)
	assert.Equal(t, "app@tenant", parsed.User.Username())
	password, _ := parsed.User.Password()
	assert.Equal(t, "p@ss:word/1", password)
}

func TestObservabilityValidate(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	require.NoError(t, cfg.Validate())

	cfg.Logging.Level = "verbose"
	assert.Error(t, cfg.Validate())

	cfg.Logging.Level = "info"
	cfg.Logging.SlowQueryThreshold = -time.Second
	assert.Error(t, cfg.Validate())
}

func TestGetLogLevelDefaultsByEnvironment(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	cfg.Logging.Level = ""

	cfg.Environment = "production"
	assert.Equal(t, "info", cfg.GetLogLevel())

	cfg.Environment = "development"
	assert.Equal(t, "debug", cfg.GetLogLevel())
}

func TestHasCheck(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	assert.True(t, cfg.HasCheck("database"))
	assert.False(t, cfg.HasCheck("kafka"))

	cfg.HealthChecks.Enabled = false
	assert.False(t, cfg.HasCheck("database"))
}
