package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoadWithOptions_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := LoadWithOptions(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "backoffice", cfg.Database.DBName)
	assert.Equal(t, 30*time.Second, cfg.Database.StatementTimeout)
	assert.Equal(t, 60*time.Second, cfg.Database.IdleInTransactionTimeout)
	assert.Equal(t, 20*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, 24*time.Hour, cfg.Security.JWTExpiry)
	assert.Equal(t, 5, cfg.Security.LoginRateLimit)
	assert.Equal(t, 4, cfg.Tenancy.ProvisionConcurrency)
	assert.True(t, cfg.Tenancy.ReconcileOnStartup)
	assert.Equal(t, 30*time.Second, cfg.Tenancy.TenantCacheTTL)
	assert.Equal(t, "*", cfg.Server.CORSAllowOrigin)
	assert.Equal(t, "production", cfg.Environment)
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.StorageEnabled())
	assert.Equal(t, VERSION, cfg.Version)
}

func TestLoadWithOptions_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadWithOptions(LoadOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET is required")
}

func TestLoadWithOptions_ShortSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "short")

	_, err := LoadWithOptions(LoadOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 32 characters")
}

func TestLoadWithOptions_EnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("DB_STATEMENT_TIMEOUT", "5s")
	t.Setenv("DB_IDLE_IN_TX_TIMEOUT", "10s")
	t.Setenv("TENANCY_PROVISION_CONCURRENCY", "0")
	t.Setenv("STORAGE_BUCKET", "logos")
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("CORS_ALLOW_ORIGIN", "https://app.example.com")
	t.Setenv("TENANCY_CACHE_TTL", "2m")

	cfg, err := LoadWithOptions(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.Database.StatementTimeout)
	assert.Equal(t, 10*time.Second, cfg.Database.IdleInTransactionTimeout)
	assert.Equal(t, 1, cfg.Tenancy.ProvisionConcurrency)
	assert.True(t, cfg.StorageEnabled())
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "https://app.example.com", cfg.Server.CORSAllowOrigin)
	assert.Equal(t, 2*time.Minute, cfg.Tenancy.TenantCacheTTL)
}

func TestLoadWithOptions_EnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.test"), []byte("JWT_SECRET="+testSecret+"\nSERVER_PORT=9090\n"), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	cfg, err := LoadWithOptions(LoadOptions{EnvFile: ".env.test"})
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
}
