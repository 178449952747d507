package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("APP_ENV", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreDriverPostgres, cfg.Store.Driver)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 14, cfg.Lending.DefaultDueDays)
	assert.Equal(t, 5*time.Second, cfg.Lending.LockTTL)
	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.MinIO.Enabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("LENDING_DEFAULT_DUE_DAYS", "21")
	t.Setenv("LENDING_LOCK_TTL", "2s")
	t.Setenv("REDIS_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
	assert.Equal(t, 21, cfg.Lending.DefaultDueDays)
	assert.Equal(t, 2*time.Second, cfg.Lending.LockTTL)
	assert.True(t, cfg.Redis.Enabled)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")

	_, err := Load()
	assert.ErrorContains(t, err, "unsupported STORE_DRIVER")
}

func TestLoad_RejectsMemoryStoreInProduction(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadDatabaseConfig_InvalidPool(t *testing.T) {
	t.Setenv("DB_MAX_CONNECTIONS", "2")
	t.Setenv("DB_MIN_CONNECTIONS", "5")

	_, err := LoadDatabaseConfig()
	assert.ErrorContains(t, err, "invalid pool size")
}

func TestLoadDatabaseConfig_InvalidDuration(t *testing.T) {
	t.Setenv("DB_RETRY_DELAY", "soon")

	_, err := LoadDatabaseConfig()
	assert.ErrorContains(t, err, "DB_RETRY_DELAY")
}
