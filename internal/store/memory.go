package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/retailpulse/retailpulse/internal/domain"
)

// MemoryStore is an in-process FeatureStore. It serves single-process batch
// runs and acts as the degradation target behind the circuit breaker.
type MemoryStore struct {
	mu       sync.RWMutex
	features map[string]domain.DailyFeatureSet
	baseline *domain.Baseline
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{features: make(map[string]domain.DailyFeatureSet)}
}

func (m *MemoryStore) PutFeatures(_ context.Context, fs domain.DailyFeatureSet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.features[domain.DayKey(fs.Date)] = fs
	return nil
}

func (m *MemoryStore) GetFeatures(_ context.Context, date time.Time) (*domain.DailyFeatureSet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	fs, ok := m.features[domain.DayKey(date)]
	if !ok {
		return nil, ErrNotFound
	}
	return &fs, nil
}

func (m *MemoryStore) HasFeatures(_ context.Context, date time.Time) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.features[domain.DayKey(date)]
	return ok, nil
}

func (m *MemoryStore) LatestDate(_ context.Context) (time.Time, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var latest time.Time
	found := false
	for _, fs := range m.features {
		day := domain.Day(fs.Date)
		if !found || day.After(latest) {
			latest = day
			found = true
		}
	}
	return latest, found, nil
}

func (m *MemoryStore) ListDates(_ context.Context) ([]time.Time, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	dates := make([]time.Time, 0, len(m.features))
	for _, fs := range m.features {
		dates = append(dates, domain.Day(fs.Date))
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}

func (m *MemoryStore) PutBaseline(_ context.Context, b domain.Baseline) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.baseline = &b
	return nil
}

func (m *MemoryStore) GetBaseline(_ context.Context) (*domain.Baseline, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.baseline == nil {
		return nil, ErrNotFound
	}
	b := *m.baseline
	return &b, nil
}

func (m *MemoryStore) Prune(_ context.Context, olderThan time.Time) (int, error) {
	cutoff := domain.Day(olderThan)

	m.mu.Lock()
	defer m.mu.Unlock()

	deleted := 0
	for key, fs := range m.features {
		if domain.Day(fs.Date).Before(cutoff) {
			delete(m.features, key)
			deleted++
		}
	}
	return deleted, nil
}

func (m *MemoryStore) Close() error { return nil }
