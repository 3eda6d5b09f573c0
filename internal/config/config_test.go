package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvDirectoryBaseURL, "https://api.hipchat.example")
	t.Setenv(EnvDirectoryToken, "dir-token")
	t.Setenv(EnvLedgerBaseURL, "https://tipbot.example")
	t.Setenv(EnvLedgerToken, "ledger-token")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultGatewayTimeout, cfg.GatewayTimeout)
	assert.Equal(t, DefaultGatewayMaxRetries, cfg.GatewayMaxRetries)
	assert.Equal(t, float64(DefaultUserRateBurst), cfg.UserRateBurst)
	assert.Empty(t, cfg.ExcludedEmails)
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv(EnvDirectoryBaseURL, "")
	t.Setenv(EnvDirectoryToken, "")
	t.Setenv(EnvLedgerBaseURL, "")
	t.Setenv(EnvLedgerToken, "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_InvalidURL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(EnvLedgerBaseURL, "not a url")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_ExcludedEmails(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(EnvExcludedEmails, "bot@leafsoftwaresolutions.com, intern@leafsoftwaresolutions.com ,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"bot@leafsoftwaresolutions.com", "intern@leafsoftwaresolutions.com"},
		cfg.ExcludedEmails)

	set := cfg.ExclusionSet()
	assert.Contains(t, set, "bot@leafsoftwaresolutions.com")
	assert.NotContains(t, set, "someone@leafsoftwaresolutions.com")
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(EnvPort, "9000")
	t.Setenv(EnvGatewayTimeout, "30s")
	t.Setenv(EnvUserRateBurst, "10")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.GatewayTimeout)
	assert.Equal(t, float64(10), cfg.UserRateBurst)
}

func TestLoad_BadDurationFallsBack(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(EnvGatewayTimeout, "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultGatewayTimeout, cfg.GatewayTimeout)
}
