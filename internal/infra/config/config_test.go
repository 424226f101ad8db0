package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultsValidate(t *testing.T) {
	cfg := defaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, ":8080", cfg.HTTP.Address)
	require.Equal(t, "Egyptian", cfg.Prayer.DefaultMethod)
	require.Equal(t, time.Hour, cfg.Prayer.CacheTTL)
	require.False(t, cfg.Prayer.PreferAladhan)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDRESS", ":9999")
	t.Setenv("PRAYER_DEFAULT_METHOD", "ISNA")
	t.Setenv("PRAYER_CACHE_TTL", "30m")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("VALKEY_ENABLED", "1")
	t.Setenv("VALKEY_ADDR", "localhost:6379")

	cfg := defaultConfig()
	applyEnvOverrides(cfg)

	require.Equal(t, ":9999", cfg.HTTP.Address)
	require.Equal(t, "ISNA", cfg.Prayer.DefaultMethod)
	require.Equal(t, 30*time.Minute, cfg.Prayer.CacheTTL)
	require.False(t, cfg.HTTP.RateLimit.Enabled)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
	require.True(t, cfg.Valkey.Enabled)
	require.Equal(t, "localhost:6379", cfg.Valkey.Addr)
	require.NoError(t, cfg.Validate())
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := defaultConfig()
	cfg.Valkey.Enabled = true
	cfg.Valkey.Addr = " "
	require.Error(t, cfg.Validate())

	cfg = defaultConfig()
	cfg.HTTP.RateLimit.RequestsPerMinute = 0
	require.Error(t, cfg.Validate())

	cfg = defaultConfig()
	cfg.Mosque.MaxRadiusMeters = 100
	require.Error(t, cfg.Validate())
}
