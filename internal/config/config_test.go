package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:4000", cfg.Server.Addr)
	assert.Equal(t, "data/aportes.db", cfg.Database.Path)
	assert.Equal(t, 60, cfg.Auth.TokenTTLMinutes)
	assert.Equal(t, "local", cfg.Storage.Backend)
	assert.Equal(t, "aportes", cfg.Storage.KeyPrefix)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("APORTES_SERVER_ADDR", "127.0.0.1:9999")
	t.Setenv("APORTES_AUTH_JWTSECRET", "supersecreto")
	t.Setenv("APORTES_STORAGE_BACKEND", "s3")
	t.Setenv("APORTES_STORAGE_BUCKET", "recibos")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9999", cfg.Server.Addr)
	assert.Equal(t, "supersecreto", cfg.Auth.JWTSecret)
	assert.Equal(t, "s3", cfg.Storage.Backend)
	assert.Equal(t, "recibos", cfg.Storage.Bucket)
}
