// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file when
// present), loads them into structured Go types and validates that required
// values are present so the process fails fast at boot instead of at first use.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values and secrets.
//   - Provide sane defaults for optional config blocks (observability, rate limit, cache).
package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads `.env` into the process environment before
	// anything reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read using the FINANCE_ prefix. Keys are lowercased with the
	prefix removed and nested struct fields use "." as the delimiter:

	  FINANCE_SERVER.PORT        -> server.port        -> Config.Server.Port
	  FINANCE_AUTH.SECRET_KEY    -> auth.secret_key    -> Config.Auth.SecretKey
*/

// EnvPrefix is the prefix every configuration variable carries.
const EnvPrefix = "FINANCE_"

// ServiceName tags logs and traces.
const ServiceName = "finance-api"

// Config is the root configuration object for the application.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	Integration   IntegrationConfig    `koanf:"integration" validate:"required"`
	RateLimit     RateLimitConfig      `koanf:"rate_limit"`
	Cache         CacheConfig          `koanf:"cache"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime. Timeouts are seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// DSN builds a postgres URL from the connection parameters. User and
// password are escaped so characters like ':' or '@' don't break the URL.
func (d DatabaseConfig) DSN() string {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:     "/" + d.Name,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	return dsn.String()
}

// RedisConfig contains Redis connection details. Address is "host:port".
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// Auth providers.
const (
	AuthProviderClerk = "clerk"
	AuthProviderLocal = "local"
)

// AuthConfig stores authentication-related secrets.
//
// SecretKey signs tokens issued by the local provider, ClerkSecretKey talks
// to Clerk and WebhookSecret verifies signed webhook deliveries.
type AuthConfig struct {
	Provider       string        `koanf:"provider" validate:"required,oneof=clerk local"`
	SecretKey      string        `koanf:"secret_key" validate:"required,min=32"`
	ClerkSecretKey string        `koanf:"clerk_secret_key" validate:"required_if=Provider clerk"`
	WebhookSecret  string        `koanf:"webhook_secret" validate:"required"`
	TokenTTL       time.Duration `koanf:"token_ttl"`
}

// IntegrationConfig holds credentials for third-party integrations.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key" validate:"required"`
}

// RateLimitConfig controls the fixed-window limiter. Requests per Window per
// client. The limiter is on unless Enabled is explicitly false.
type RateLimitConfig struct {
	Enabled  *bool         `koanf:"enabled"`
	Requests int           `koanf:"requests" validate:"min=0"`
	Window   time.Duration `koanf:"window"`
}

// IsEnabled reports whether requests are rate limited.
func (r RateLimitConfig) IsEnabled() bool {
	return r.Enabled == nil || *r.Enabled
}

// CacheConfig controls Redis-backed response caching.
type CacheConfig struct {
	BudgetTTL time.Duration `koanf:"budget_ttl"`
}

// LoadConfig loads configuration from environment variables, validates it,
// applies defaults and returns the result. Any error is meant to stop boot.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}

	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	if err := mainConfig.Finalize(); err != nil {
		return nil, err
	}

	return mainConfig, nil
}

// Finalize validates c and fills in defaults. LoadConfig calls it; tests that
// build a Config by hand can call it too.
func (c *Config) Finalize() error {
	if c.Observability == nil {
		c.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment always follow the primary config so
	// logs and traces are labeled consistently.
	c.Observability.ServiceName = ServiceName
	c.Observability.Environment = c.Primary.Env

	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = 24 * time.Hour
	}

	if c.RateLimit.Enabled == nil {
		enabled := true
		c.RateLimit.Enabled = &enabled
	}
	if c.RateLimit.Window == 0 {
		c.RateLimit.Window = time.Minute
	}
	if c.RateLimit.Requests == 0 {
		c.RateLimit.Requests = 100
	}

	if c.Cache.BudgetTTL == 0 {
		c.Cache.BudgetTTL = 5 * time.Minute
	}

	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("invalid observability config: %w", err)
	}

	return nil
}

// IsProduction reports whether the primary environment is production.
func (c *Config) IsProduction() bool {
	return c.Primary.Env == "production"
}
