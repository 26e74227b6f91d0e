package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/fakeflight/internal/estimate"
	"github.com/dharmasatrya/fakeflight/internal/layover"
	"github.com/dharmasatrya/fakeflight/internal/timezone"
)

var keys = []string{
	"PORT", "LOG_LEVEL", "LOG_CONSOLE", "LOG_FILE", "STORE_BACKEND", "REDIS_HOST", "REDIS_PORT",
	"REDIS_TTL", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "RATE_LIMIT_IDLE_TTL", "ON_MISSING_TIMEZONE",
	"ESTIMATOR_STRATEGY", "LAYOVER_SPLIT", "RANDOM_SEED", "REFDATA_FILE", "OPTIONS_TIMEOUT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Console)
	assert.Equal(t, StoreMemory, cfg.Store.Backend)
	assert.Equal(t, 24*time.Hour, cfg.Store.RedisTTL)
	assert.Equal(t, 10.0, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 20, cfg.RateLimit.Burst)
	assert.Equal(t, 10*time.Minute, cfg.RateLimit.IdleTTL)
	assert.Equal(t, timezone.PolicyFail, cfg.Generator.MissingTimezone)
	assert.Equal(t, estimate.StrategyCoordinate, cfg.Generator.Strategy)
	assert.Equal(t, layover.SplitDistance, cfg.Generator.LayoverSplit)
	assert.Zero(t, cfg.Generator.Seed)
	assert.Equal(t, 2*time.Second, cfg.Generator.OptionsTimeout)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_CONSOLE", "no")
	t.Setenv("STORE_BACKEND", "Redis")
	t.Setenv("REDIS_TTL", "90m")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_IDLE_TTL", "30s")
	t.Setenv("ON_MISSING_TIMEZONE", "fallback_utc")
	t.Setenv("ESTIMATOR_STRATEGY", "TABLE")
	t.Setenv("LAYOVER_SPLIT", "ratio")
	t.Setenv("RANDOM_SEED", "42")
	t.Setenv("OPTIONS_TIMEOUT", "not-a-duration")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.False(t, cfg.Logging.Console)
	assert.Equal(t, StoreRedis, cfg.Store.Backend)
	assert.Equal(t, 90*time.Minute, cfg.Store.RedisTTL)
	assert.Equal(t, 2.5, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.IdleTTL)
	assert.Equal(t, timezone.PolicyFallbackUTC, cfg.Generator.MissingTimezone)
	assert.Equal(t, estimate.StrategyTable, cfg.Generator.Strategy)
	assert.Equal(t, layover.SplitRatio, cfg.Generator.LayoverSplit)
	assert.Equal(t, int64(42), cfg.Generator.Seed)
	assert.Equal(t, 2*time.Second, cfg.Generator.OptionsTimeout)
}

func TestLoadRejectsUnknownValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"ON_MISSING_TIMEZONE", "guess"},
		{"ESTIMATOR_STRATEGY", "vibes"},
		{"LAYOVER_SPLIT", "halves"},
		{"STORE_BACKEND", "postgres"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "7000")
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LOG_LEVEL=debug\nPORT=1234\n"), 0o600))
	os.Unsetenv("LOG_LEVEL")
	t.Cleanup(func() { os.Unsetenv("LOG_LEVEL") })

	LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "7000", cfg.Port)
}
