package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 12*time.Second, cfg.Fetcher.Timeout)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "alibaba.com", cfg.Market.Domain)
	assert.Empty(t, cfg.Cache.RedisAddr)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CACHE_TTL", "1h")
	t.Setenv("CACHE_REDIS_ADDR", "localhost:6379")
	t.Setenv("FETCHER_DELAY_MIN", "100ms")
	t.Setenv("FETCHER_DELAY_MAX", "500ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "localhost:6379", cfg.Cache.RedisAddr)
	assert.Equal(t, 100*time.Millisecond, cfg.Fetcher.DelayMin)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	cfg.Cache.TTL = 0
	assert.Error(t, cfg.Validate())

	cfg, _ = Load()
	cfg.Fetcher.DelayMin = time.Second
	cfg.Fetcher.DelayMax = 100 * time.Millisecond
	assert.Error(t, cfg.Validate())
}
