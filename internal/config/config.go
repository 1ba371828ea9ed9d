// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/xtding233/gem-gacha/internal/ledger"
)

// Config holds every runtime setting.
type Config struct {
	// --- Transport ---
	HTTPAddr   string `envconfig:"HTTP_ADDR" default:":3000"`
	GRPCAddr   string `envconfig:"GRPC_ADDR" default:":3001"` // empty disables gRPC
	CORSOrigin string `envconfig:"CORS_ORIGIN" default:"*"`

	// --- Catalog ---
	CatalogPath           string        `envconfig:"CATALOG_PATH"`
	CatalogReloadInterval time.Duration `envconfig:"CATALOG_RELOAD_INTERVAL" default:"5s"`

	// --- Gameplay ---
	RNGSeed      uint64 `envconfig:"RNG_SEED" default:"0"` // 0 uses crypto/rand
	MaxDrawCount int    `envconfig:"MAX_DRAW_COUNT" default:"100"`

	// --- Jobs ---
	StatsSchedule string `envconfig:"STATS_SCHEDULE" default:"@every 5m"`

	// --- Application ---
	AppEnv      string `envconfig:"APP_ENV" default:"development"`
	AppLogLevel string `envconfig:"APP_LOG_LEVEL" default:"info"`
}

func (c *Config) Validate() error {
	if c.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR must not be empty")
	}
	if c.HTTPAddr == c.GRPCAddr {
		return fmt.Errorf("HTTP_ADDR and GRPC_ADDR must differ")
	}
	if c.MaxDrawCount <= 0 || c.MaxDrawCount > ledger.MaxDrawCountLimit {
		return fmt.Errorf("MAX_DRAW_COUNT must be in [1, %d]", ledger.MaxDrawCountLimit)
	}
	if c.CatalogPath != "" && c.CatalogReloadInterval < 0 {
		return fmt.Errorf("CATALOG_RELOAD_INTERVAL must be >= 0")
	}
	if c.StatsSchedule != "" {
		if _, err := cron.ParseStandard(c.StatsSchedule); err != nil {
			return fmt.Errorf("STATS_SCHEDULE: %w", err)
		}
	}
	if _, err := log.ParseLevel(c.AppLogLevel); err != nil {
		return fmt.Errorf("APP_LOG_LEVEL: %w", err)
	}
	return nil
}

// LogLevel returns the parsed APP_LOG_LEVEL, falling back to info.
func (c *Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.AppLogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Load reads the environment into a Config and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
