package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.ServerPort)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "db", cfg.SessionStore)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, int64(5*1024*1024), cfg.UploadMaxBytes)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("APP_ENV", "production")
	t.Setenv("CORS_ORIGINS", "https://supanos.bar, https://admin.supanos.bar")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"https://supanos.bar", "https://admin.supanos.bar"}, cfg.AllowedOrigins())
}
