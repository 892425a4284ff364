package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/retailpulse/retailpulse/internal/config"
	"github.com/retailpulse/retailpulse/internal/store"
)

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}
	return config.Load(path)
}

// buildStore opens the configured backend. The second return is non-nil only
// when the breaker wrap is active, for surfaces that report its state.
func buildStore(ctx context.Context, cfg config.Config) (store.FeatureStore, *store.BreakerStore, error) {
	var backend store.FeatureStore

	switch cfg.Store.Backend {
	case "memory":
		backend = store.NewMemoryStore()
	case "redis":
		backend = store.NewRedisStoreAddr(cfg.Store.Redis.Addr, cfg.Store.Redis.Password, cfg.Store.Redis.DB)
	case "postgres":
		timeout := time.Duration(cfg.Store.Postgres.TimeoutSeconds) * time.Second
		ps, err := store.OpenPostgresStore(ctx, cfg.Store.Postgres.DSN, timeout)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres store: %w", err)
		}
		if err := ps.EnsureSchema(ctx); err != nil {
			return nil, nil, fmt.Errorf("ensure schema: %w", err)
		}
		backend = ps
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	// Wrapping the in-memory backend would only mask programming errors.
	if cfg.Store.Breaker && cfg.Store.Backend != "memory" {
		wrapped := store.NewBreakerStore(backend)
		return wrapped, wrapped, nil
	}
	return backend, nil, nil
}
