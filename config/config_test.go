package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DATABASE_DRIVER", "")
	t.Setenv("STORAGE_PATH", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.DatabaseDriver)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DefaultEvidenceSubDir, cfg.EvidenceSubDir)
	assert.Equal(t, DefaultDocumentsSubDir, cfg.DocumentsSubDir)
	assert.Equal(t, 24, cfg.JWTExpirationHours)
	assert.True(t, filepath.IsAbs(cfg.StoragePath))
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
}

func TestLoadConfig_SecretOnlyRequiredOnDemand(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DATABASE_DRIVER", "")

	// migrate and user create run without a secret
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Error(t, cfg.RequireJWTSecret())

	t.Setenv("JWT_SECRET", "s")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.NoError(t, cfg.RequireJWTSecret())
}

func TestLoadConfig_PostgresNeedsDSN(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("DATABASE_DSN", "")

	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("DATABASE_DSN", "host=localhost user=postgres dbname=portal")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.DatabaseDriver)
}

func TestLoadConfig_UnknownDriver(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("DATABASE_DRIVER", "mysql")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("DATABASE_DRIVER", "")
	t.Setenv("JWT_EXPIRATION_HOURS", "soon")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test ,")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 24, cfg.JWTExpirationHours)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	require.Len(t, cfg.Warnings, 1)
	assert.Contains(t, cfg.Warnings[0], "JWT_EXPIRATION_HOURS")
	assert.Contains(t, cfg.Warnings[0], `"soon"`)
}

func TestLoadConfig_NoWarningsForValidInt(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("DATABASE_DRIVER", "")
	t.Setenv("JWT_EXPIRATION_HOURS", "8")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.JWTExpirationHours)
	assert.Empty(t, cfg.Warnings)
}
