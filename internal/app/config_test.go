package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8081", cfg.APIBaseURL)
	assert.Equal(t, StateBackendFile, cfg.StateBackend)
	assert.Equal(t, 10, cfg.PageSize)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("API_BASE_URL", "https://warehouse.example.com")
	t.Setenv("STATE_BACKEND", "redis")
	t.Setenv("PAGE_SIZE", "25")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://warehouse.example.com", cfg.APIBaseURL)
	assert.Equal(t, StateBackendRedis, cfg.StateBackend)
	assert.Equal(t, 25, cfg.PageSize)
	assert.True(t, cfg.IsProduction())
}

func TestLoadConfigRejectsUnknownBackend(t *testing.T) {
	t.Setenv("STATE_BACKEND", "dynamo")

	_, err := LoadConfig()
	require.Error(t, err)
}
