package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "./backups", cfg.BackupPath)
	assert.Equal(t, []string{"127.0.0.1", "::1"}, cfg.AdminIPWhitelist)
	assert.False(t, cfg.TrustProxy)
	assert.False(t, cfg.IsProduction())
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "not-a-port")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestLoadWhitelistList(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ADMIN_IP_WHITELIST", "10.0.0.0/8,203.0.113.7")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.0/8", "203.0.113.7"}, cfg.AdminIPWhitelist)
}

func TestLoadPublicEmptyWhenUnset(t *testing.T) {
	t.Setenv("PP_CLIENT_ID", "")
	t.Setenv("STRIPE_PUBLISHABLE_KEY", "pk_test_123")

	pub, err := LoadPublic()
	require.NoError(t, err)
	assert.Equal(t, "", pub.PayPalClientID)
	assert.Equal(t, "pk_test_123", pub.StripePublishableKey)
}

func TestLoadTrustProxyOptIn(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("TRUST_PROXY", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.TrustProxy)
}
