package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr)
	assert.Equal(t, "data/forum.db", cfg.Database.Path)
	assert.Equal(t, 24*60, cfg.Auth.SessionTTLMinutes)
	assert.Equal(t, "forum-backups", cfg.Storage.KeyPrefix)
	assert.Equal(t, 7, cfg.Storage.Keep)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("FORUM_DATABASE_PATH", "/tmp/other.db")
	t.Setenv("FORUM_AUTH_SESSIONSECRET", "s3cret")
	t.Setenv("FORUM_AUTH_SESSIONTTLMINUTES", "15")
	t.Setenv("FORUM_RATELIMIT_BURST", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/other.db", cfg.Database.Path)
	assert.Equal(t, "s3cret", cfg.Auth.SessionSecret)
	assert.Equal(t, 15, cfg.Auth.SessionTTLMinutes)
	assert.Equal(t, 3, cfg.RateLimit.Burst)
}
