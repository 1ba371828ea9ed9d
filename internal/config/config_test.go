package config

import (
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":3000", cfg.HTTPAddr)
	assert.Equal(t, ":3001", cfg.GRPCAddr)
	assert.Equal(t, "*", cfg.CORSOrigin)
	assert.Equal(t, 5*time.Second, cfg.CatalogReloadInterval)
	assert.Equal(t, 100, cfg.MaxDrawCount)
	assert.Equal(t, "@every 5m", cfg.StatsSchedule)
	assert.Equal(t, uint64(0), cfg.RNGSeed)
	assert.Equal(t, log.InfoLevel, cfg.LogLevel())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":8080")
	t.Setenv("GRPC_ADDR", "")
	t.Setenv("CATALOG_PATH", "/etc/gems.yaml")
	t.Setenv("CATALOG_RELOAD_INTERVAL", "30s")
	t.Setenv("RNG_SEED", "42")
	t.Setenv("MAX_DRAW_COUNT", "10")
	t.Setenv("APP_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Empty(t, cfg.GRPCAddr)
	assert.Equal(t, "/etc/gems.yaml", cfg.CatalogPath)
	assert.Equal(t, 30*time.Second, cfg.CatalogReloadInterval)
	assert.Equal(t, uint64(42), cfg.RNGSeed)
	assert.Equal(t, 10, cfg.MaxDrawCount)
	assert.Equal(t, log.DebugLevel, cfg.LogLevel())
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name, key, val string
	}{
		{"zero draw cap", "MAX_DRAW_COUNT", "0"},
		{"draw cap too large", "MAX_DRAW_COUNT", "10001"},
		{"not a number", "MAX_DRAW_COUNT", "lots"},
		{"same ports", "GRPC_ADDR", ":3000"},
		{"bad schedule", "STATS_SCHEDULE", "whenever"},
		{"bad level", "APP_LOG_LEVEL", "loud"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
