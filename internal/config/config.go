// Package config provides application configuration management.
// It loads settings from environment variables and provides defaults for
// server mode, gateway timeouts, and rate limiting.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Defaults applied when the corresponding environment variable is unset.
const (
	DefaultPort            = "8080"
	DefaultLogLevel        = "info"
	DefaultShutdownTimeout = 10 * time.Second

	DefaultGatewayTimeout    = 15 * time.Second
	DefaultGatewayMaxRetries = 2

	DefaultUserRateBurst  = 6
	DefaultUserRateRefill = 0.2 // 1 token per 5 seconds
)

// Config holds all application configuration
type Config struct {
	// Directory Service (chat platform room/user API)
	DirectoryBaseURL string `validate:"required,url"`
	DirectoryToken   string `validate:"required"`

	// Ledger Service (wallet REST API)
	LedgerBaseURL string `validate:"required,url"`
	LedgerToken   string `validate:"required"`

	// ExcludedEmails lists addresses never eligible to receive bulk tips.
	ExcludedEmails []string

	// Server Configuration
	Port            string `validate:"required,numeric"`
	LogLevel        string
	ShutdownTimeout time.Duration
	WebhookToken    string // Optional shared token checked on /webhook requests

	// Gateway HTTP client behavior
	GatewayTimeout    time.Duration
	GatewayMaxRetries int

	// Per-user command rate limiting (token bucket)
	UserRateBurst  float64
	UserRateRefill float64 // tokens per second

	// Metrics endpoint Basic Auth (empty password = no auth)
	MetricsUsername string
	MetricsPassword string

	// Sentry (optional; empty DSN disables)
	SentryDSN         string
	SentryEnvironment string
	SentrySampleRate  float64
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first, then reads from env vars.
func Load() (*Config, error) {
	// Ignore error if .env does not exist
	_ = godotenv.Load()

	cfg := &Config{
		DirectoryBaseURL: getEnv(EnvDirectoryBaseURL, ""),
		DirectoryToken:   getEnv(EnvDirectoryToken, ""),
		LedgerBaseURL:    getEnv(EnvLedgerBaseURL, ""),
		LedgerToken:      getEnv(EnvLedgerToken, ""),

		ExcludedEmails: getEnvList(EnvExcludedEmails),

		Port:            getEnv(EnvPort, DefaultPort),
		LogLevel:        getEnv(EnvLogLevel, DefaultLogLevel),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),
		WebhookToken:    getEnv(EnvWebhookToken, ""),

		GatewayTimeout:    getEnvDuration(EnvGatewayTimeout, DefaultGatewayTimeout),
		GatewayMaxRetries: getEnvInt(EnvGatewayMaxRetries, DefaultGatewayMaxRetries),

		UserRateBurst:  getEnvFloat(EnvUserRateBurst, DefaultUserRateBurst),
		UserRateRefill: getEnvFloat(EnvUserRateRefill, DefaultUserRateRefill),

		MetricsUsername: getEnv(EnvMetricsUsername, "prometheus"),
		MetricsPassword: getEnv(EnvMetricsPassword, ""),

		SentryDSN:         getEnv(EnvSentryDSN, ""),
		SentryEnvironment: getEnv(EnvSentryEnvironment, "production"),
		SentrySampleRate:  getEnvFloat(EnvSentrySampleRate, 1.0),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that required settings are present and well-formed.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// ExclusionSet returns the excluded emails as a membership set.
// The set is built once at startup and treated as immutable afterwards.
func (c *Config) ExclusionSet() map[string]struct{} {
	set := make(map[string]struct{}, len(c.ExcludedEmails))
	for _, email := range c.ExcludedEmails {
		set[email] = struct{}{}
	}
	return set
}

// getEnv returns the environment variable value or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvList returns a comma-separated environment variable as a trimmed slice.
func getEnvList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}

// getEnvInt returns the environment variable as an int or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvFloat returns the environment variable as a float64 or a default.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvDuration returns the environment variable as a duration or a default.
// Accepts Go duration strings ("30s", "1m").
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
