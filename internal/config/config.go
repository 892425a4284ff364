// Package config loads engine configuration from YAML files with
// environment overrides for deployment-specific values.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// RedisConfig points at the Redis feature cache.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// PostgresConfig points at the Postgres feature store.
type PostgresConfig struct {
	DSN            string `yaml:"dsn"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// StoreConfig selects and configures the feature store backend.
type StoreConfig struct {
	// Backend is one of "memory", "redis", "postgres".
	Backend  string         `yaml:"backend"`
	Redis    RedisConfig    `yaml:"redis"`
	Postgres PostgresConfig `yaml:"postgres"`

	// Breaker wraps the backend in a circuit breaker with an in-memory
	// fallback.
	Breaker bool `yaml:"breaker"`
}

// PipelineConfig tunes the daily batch run.
type PipelineConfig struct {
	BaselineWindowDays    int     `yaml:"baseline_window_days"`
	MinHistoryDays        int     `yaml:"min_history_days"`
	SupplierShareFloorPct float64 `yaml:"supplier_share_floor_pct"`

	// WriteRatePerSec throttles store writes during batch runs; zero
	// disables throttling.
	WriteRatePerSec float64 `yaml:"write_rate_per_sec"`
	WriteBurst      int     `yaml:"write_burst"`
}

// ServerConfig configures the monitoring HTTP server.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Config is the full engine configuration.
type Config struct {
	Store    StoreConfig    `yaml:"store"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Server   ServerConfig   `yaml:"server"`

	// ContextPath and KeywordsPath locate the business context and
	// keyword rule files.
	ContextPath  string `yaml:"context_path"`
	KeywordsPath string `yaml:"keywords_path"`
}

// Default returns the development defaults used when no file is supplied.
func Default() Config {
	return Config{
		Store: StoreConfig{
			Backend: "memory",
			Redis:   RedisConfig{Addr: "localhost:6379"},
			Postgres: PostgresConfig{
				TimeoutSeconds: 5,
			},
			Breaker: true,
		},
		Pipeline: PipelineConfig{
			BaselineWindowDays:    30,
			MinHistoryDays:        10,
			SupplierShareFloorPct: 0.5,
			WriteRatePerSec:       100,
			WriteBurst:            10,
		},
		Server:       ServerConfig{Addr: ":8080"},
		ContextPath:  "config/context.yaml",
		KeywordsPath: "config/keywords.yaml",
	}
}

// Load reads the config file, layering it over the defaults and then
// applying environment overrides. An empty path yields defaults plus
// environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv layers deployment-specific environment variables over the file.
func applyEnv(cfg *Config) {
	if v := os.Getenv("RETAILPULSE_STORE_BACKEND"); v != "" {
		cfg.Store.Backend = v
	}
	if v := os.Getenv("RETAILPULSE_REDIS_ADDR"); v != "" {
		cfg.Store.Redis.Addr = v
	}
	if v := os.Getenv("RETAILPULSE_REDIS_PASSWORD"); v != "" {
		cfg.Store.Redis.Password = v
	}
	if v := os.Getenv("RETAILPULSE_REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			cfg.Store.Redis.DB = db
		}
	}
	if v := os.Getenv("RETAILPULSE_POSTGRES_DSN"); v != "" {
		cfg.Store.Postgres.DSN = v
	}
	if v := os.Getenv("RETAILPULSE_SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
}

func (c Config) validate() error {
	switch c.Store.Backend {
	case "memory", "redis", "postgres":
	default:
		return fmt.Errorf("config: unknown store backend %q", c.Store.Backend)
	}
	if c.Pipeline.BaselineWindowDays <= 0 {
		return fmt.Errorf("config: baseline_window_days must be positive, got %d", c.Pipeline.BaselineWindowDays)
	}
	if c.Pipeline.MinHistoryDays <= 0 {
		return fmt.Errorf("config: min_history_days must be positive, got %d", c.Pipeline.MinHistoryDays)
	}
	return nil
}
