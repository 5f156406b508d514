package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err, "a missing signing key must be a startup error, not a silent default")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.APIPort)
	assert.Equal(t, []byte("test-secret"), cfg.JWTKey)
	assert.Equal(t, 168*time.Hour, cfg.JWTExp)
	assert.Contains(t, cfg.DBConnStr, "dbname=pressroom_db")
	assert.Empty(t, cfg.RedisAddr, "cache is off unless configured")
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "k")
	t.Setenv("JWT_EXPIRATION_HOURS", "24")
	t.Setenv("API_PORT", "9999")
	t.Setenv("DB_SSLMODE", "require")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, cfg.JWTExp)
	assert.Equal(t, "9999", cfg.APIPort)
	assert.Contains(t, cfg.DBConnStr, "sslmode=require")
}
