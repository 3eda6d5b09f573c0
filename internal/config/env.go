// Package config defines environment variable keys for configuration.
package config

//nolint:gosec // Environment variable keys are not credentials.
const (
	// Core (Required)
	EnvDirectoryBaseURL = "TIPBOT_DIRECTORY_BASE_URL"
	EnvDirectoryToken   = "TIPBOT_DIRECTORY_TOKEN"
	EnvLedgerBaseURL    = "TIPBOT_LEDGER_BASE_URL"
	EnvLedgerToken      = "TIPBOT_LEDGER_TOKEN"

	// Policy
	EnvExcludedEmails = "TIPBOT_EXCLUDED_EMAILS"

	// Server
	EnvPort            = "TIPBOT_PORT"
	EnvLogLevel        = "TIPBOT_LOG_LEVEL"
	EnvShutdownTimeout = "TIPBOT_SHUTDOWN_TIMEOUT"
	EnvWebhookToken    = "TIPBOT_WEBHOOK_TOKEN"

	// Gateways
	EnvGatewayTimeout    = "TIPBOT_GATEWAY_TIMEOUT"
	EnvGatewayMaxRetries = "TIPBOT_GATEWAY_MAX_RETRIES"

	// Rate Limits
	EnvUserRateBurst  = "TIPBOT_USER_RATE_BURST"
	EnvUserRateRefill = "TIPBOT_USER_RATE_REFILL"

	// Metrics
	EnvMetricsUsername = "TIPBOT_METRICS_USERNAME"
	EnvMetricsPassword = "TIPBOT_METRICS_PASSWORD"

	// Sentry Feature
	EnvSentryDSN         = "TIPBOT_SENTRY_DSN"
	EnvSentryEnvironment = "TIPBOT_SENTRY_ENVIRONMENT"
	EnvSentrySampleRate  = "TIPBOT_SENTRY_SAMPLE_RATE"
)
