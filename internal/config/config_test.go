package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailpulse/retailpulse/internal/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Store.Backend)
	assert.Equal(t, 30, cfg.Pipeline.BaselineWindowDays)
	assert.Equal(t, 10, cfg.Pipeline.MinHistoryDays)
	assert.True(t, cfg.Store.Breaker)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeFile(t, "config.yaml", `
store:
  backend: redis
  redis:
    addr: redis.internal:6380
    db: 2
pipeline:
  baseline_window_days: 45
  min_history_days: 14
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "redis", cfg.Store.Backend)
	assert.Equal(t, "redis.internal:6380", cfg.Store.Redis.Addr)
	assert.Equal(t, 2, cfg.Store.Redis.DB)
	assert.Equal(t, 45, cfg.Pipeline.BaselineWindowDays)
	assert.Equal(t, 14, cfg.Pipeline.MinHistoryDays)
	// Untouched sections keep their defaults.
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv("RETAILPULSE_REDIS_ADDR", "override:6379")
	t.Setenv("RETAILPULSE_STORE_BACKEND", "redis")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "redis", cfg.Store.Backend)
	assert.Equal(t, "override:6379", cfg.Store.Redis.Addr)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	path := writeFile(t, "config.yaml", "store:\n  backend: dynamodb\n")
	_, err := Load(path)
	assert.ErrorContains(t, err, "unknown store backend")
}

func TestLoadContext(t *testing.T) {
	path := writeFile(t, "context.yaml", `
stores:
  - name: Grafton St
    coordinate: {lat: 53.3424, lon: -6.2597}
categories:
  - cold_flu_medication
  - analgesics
suppliers:
  - name: MedSupply Ireland
    categories: [cold_flu_medication]
thresholds:
  days_of_supply_floor: 7
  demand_multipliers:
    health_emergency: 3.5
`)

	bc, err := LoadContext(path)
	require.NoError(t, err)
	assert.Len(t, bc.Stores, 1)
	assert.True(t, bc.StocksCategory("analgesics"))

	// Explicit values survive, gaps fill with defaults.
	assert.Equal(t, 7.0, bc.Thresholds.DaysOfSupplyFloor)
	assert.Equal(t, 3.5, bc.Thresholds.DemandMultiplier(domain.EventHealthEmergency))
	assert.Equal(t, 3.0, bc.Thresholds.Proximity.ModerateKm)
	assert.Equal(t, 5000, bc.Thresholds.Attendance.Moderate)
}

func TestLoadContextRequiresStores(t *testing.T) {
	path := writeFile(t, "context.yaml", "categories: [analgesics]\n")
	_, err := LoadContext(path)
	assert.ErrorContains(t, err, "at least one store")
}

func TestLoadKeywords(t *testing.T) {
	path := writeFile(t, "keywords.yaml", `
health_emergency:
  - keywords: [flu, cold, virus]
    category: cold_flu_medication
  - keywords: [pain, fever]
    category: analgesics
viral_trend:
  - keywords: [immune]
    category: cold_flu_medication
`)

	table, err := LoadKeywords(path)
	require.NoError(t, err)
	require.Len(t, table[domain.EventHealthEmergency], 2)
	assert.Equal(t, "cold_flu_medication", table[domain.EventHealthEmergency][0].Category)
	assert.Contains(t, table[domain.EventHealthEmergency][0].Keywords, "flu")
}

func TestLoadKeywordsRejectsUnknownEventType(t *testing.T) {
	path := writeFile(t, "keywords.yaml", "alien_invasion:\n  - keywords: [ufo]\n    category: analgesics\n")
	_, err := LoadKeywords(path)
	assert.ErrorContains(t, err, "unknown event type")
}
