package config

import (
	"flag"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "parish_records.db", cfg.DatabasePath)
	assert.Equal(t, "parish_sessions.db", cfg.SessionDBPath)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.SecureCookies)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestEnvOverlay(t *testing.T) {
	t.Setenv("PARISH_ADDR", ":9090")
	t.Setenv("PARISH_SIGNING_SECRET", "topsecret")
	t.Setenv("PARISH_SESSION_TTL", "30m")
	t.Setenv("PARISH_SECURE_COOKIES", "true")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "topsecret", cfg.SigningSecret)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.True(t, cfg.SecureCookies)
}

func TestEnvOverlayIgnoresInvalidValues(t *testing.T) {
	t.Setenv("PARISH_SESSION_TTL", "not-a-duration")
	t.Setenv("PARISH_SECURE_COOKIES", "not-a-bool")

	cfg := Load()

	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.SecureCookies)
}

func TestFlagsOverrideEnv(t *testing.T) {
	t.Setenv("PARISH_ADDR", ":9090")

	cfg := Load()

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"-addr", ":7070", "-session-ttl", "1h"}))

	assert.Equal(t, ":7070", cfg.Addr)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
}
