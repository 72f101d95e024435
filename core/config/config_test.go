package config

import (
	"os"
	"path/filepath"
	"testing"

	"cnet-api/core/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.Equal(t, "/static", cfg.Server.StaticPrefix)
	assert.Equal(t, "cnet", cfg.Auth.Issuer)
	assert.Equal(t, "cnet-api", cfg.Auth.Audience)
	assert.Equal(t, 120, cfg.Auth.TokenTTLMinutes)
	assert.Equal(t, "*", cfg.Cors.AllowOrigins)
	assert.Equal(t, "config/logging", cfg.Log.ChannelDir)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, 30, cfg.Database.QueryTimeoutSeconds)
	assert.False(t, cfg.Storage.Enabled)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("AUTH_SECRET_KEY", "0123456789abcdef0123456789abcdef")
	t.Setenv("SERVER_ENVIRONMENT", "production")
	t.Setenv("DATABASE_QUERY_TIMEOUT_SECONDS", "5")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://app.example.com")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "0123456789abcdef0123456789abcdef", cfg.Auth.SecretKey)
	assert.True(t, cfg.Server.IsProduction())
	assert.Equal(t, 5, cfg.Database.QueryTimeoutSeconds)
	assert.Equal(t, "https://app.example.com", cfg.Cors.AllowOrigins)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("AUTH_ISSUER=dotenv-issuer\n"), 0o600))
	t.Setenv("AUTH_ISSUER", "")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "dotenv-issuer", cfg.Auth.Issuer)
}

func TestValidate(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	cfg.Auth.SecretKey = ""
	cfg.Server.Environment = "qa"
	cfg.Cors.AllowOrigins = "example.com"
	cfg.Storage.Enabled = true
	cfg.Storage.Bucket = ""

	err = cfg.Validate()
	require.Error(t, err)

	var se *StartupError
	require.ErrorAs(t, err, &se)
	assert.Len(t, se.Errs, 4)
	assert.ErrorIs(t, err, ErrStartup)
	assert.ErrorIs(t, err, auth.ErrInvalidSettings)
	assert.Contains(t, err.Error(), `unknown server environment "qa"`)
	assert.Contains(t, err.Error(), "secret key is required")
}
