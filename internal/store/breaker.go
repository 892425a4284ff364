package store

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"

	"github.com/retailpulse/retailpulse/internal/domain"
)

// BreakerStore wraps a primary FeatureStore with a circuit breaker and an
// in-memory fallback. While the breaker is open, reads and writes land on
// the fallback so a pipeline run can finish even when the backend is down.
// Fallback data is process-local and lost on exit.
type BreakerStore struct {
	primary  FeatureStore
	fallback *MemoryStore
	breaker  *gobreaker.CircuitBreaker
}

// NewBreakerStore wraps the primary store. The breaker trips after five
// consecutive failures and probes again after thirty seconds.
func NewBreakerStore(primary FeatureStore) *BreakerStore {
	settings := gobreaker.Settings{
		Name:        "feature-store",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// A missing key is a valid answer, not a backend failure.
		IsSuccessful: func(err error) bool {
			return err == nil || err == ErrNotFound
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Feature store breaker state change")
		},
	}
	return &BreakerStore{
		primary:  primary,
		fallback: NewMemoryStore(),
		breaker:  gobreaker.NewCircuitBreaker(settings),
	}
}

func (b *BreakerStore) execute(op func() (interface{}, error), fallback func() (interface{}, error)) (interface{}, error) {
	result, err := b.breaker.Execute(op)
	if err == nil || err == ErrNotFound {
		return result, err
	}
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return fallback()
	}
	// The primary failed but the breaker is still closed. Serve the
	// fallback so the caller makes progress while failures accumulate.
	log.Debug().Err(err).Msg("Primary feature store error, using fallback")
	return fallback()
}

func (b *BreakerStore) PutFeatures(ctx context.Context, fs domain.DailyFeatureSet) error {
	_, err := b.execute(
		func() (interface{}, error) {
			if err := b.primary.PutFeatures(ctx, fs); err != nil {
				return nil, err
			}
			// Mirror successful writes so a later fallback read can
			// still see data written this process.
			return nil, b.fallback.PutFeatures(ctx, fs)
		},
		func() (interface{}, error) {
			return nil, b.fallback.PutFeatures(ctx, fs)
		},
	)
	return err
}

func (b *BreakerStore) GetFeatures(ctx context.Context, date time.Time) (*domain.DailyFeatureSet, error) {
	result, err := b.execute(
		func() (interface{}, error) { return b.primary.GetFeatures(ctx, date) },
		func() (interface{}, error) { return b.fallback.GetFeatures(ctx, date) },
	)
	if err != nil {
		return nil, err
	}
	return result.(*domain.DailyFeatureSet), nil
}

func (b *BreakerStore) HasFeatures(ctx context.Context, date time.Time) (bool, error) {
	result, err := b.execute(
		func() (interface{}, error) { return b.primary.HasFeatures(ctx, date) },
		func() (interface{}, error) { return b.fallback.HasFeatures(ctx, date) },
	)
	if err != nil {
		return false, err
	}
	return result.(bool), nil
}

type latestResult struct {
	date time.Time
	ok   bool
}

func (b *BreakerStore) LatestDate(ctx context.Context) (time.Time, bool, error) {
	result, err := b.execute(
		func() (interface{}, error) {
			date, ok, err := b.primary.LatestDate(ctx)
			return latestResult{date, ok}, err
		},
		func() (interface{}, error) {
			date, ok, err := b.fallback.LatestDate(ctx)
			return latestResult{date, ok}, err
		},
	)
	if err != nil {
		return time.Time{}, false, err
	}
	lr := result.(latestResult)
	return lr.date, lr.ok, nil
}

func (b *BreakerStore) ListDates(ctx context.Context) ([]time.Time, error) {
	result, err := b.execute(
		func() (interface{}, error) { return b.primary.ListDates(ctx) },
		func() (interface{}, error) { return b.fallback.ListDates(ctx) },
	)
	if err != nil {
		return nil, err
	}
	return result.([]time.Time), nil
}

func (b *BreakerStore) PutBaseline(ctx context.Context, bl domain.Baseline) error {
	_, err := b.execute(
		func() (interface{}, error) {
			if err := b.primary.PutBaseline(ctx, bl); err != nil {
				return nil, err
			}
			return nil, b.fallback.PutBaseline(ctx, bl)
		},
		func() (interface{}, error) {
			return nil, b.fallback.PutBaseline(ctx, bl)
		},
	)
	return err
}

func (b *BreakerStore) GetBaseline(ctx context.Context) (*domain.Baseline, error) {
	result, err := b.execute(
		func() (interface{}, error) { return b.primary.GetBaseline(ctx) },
		func() (interface{}, error) { return b.fallback.GetBaseline(ctx) },
	)
	if err != nil {
		return nil, err
	}
	return result.(*domain.Baseline), nil
}

func (b *BreakerStore) Prune(ctx context.Context, olderThan time.Time) (int, error) {
	result, err := b.execute(
		func() (interface{}, error) { return b.primary.Prune(ctx, olderThan) },
		func() (interface{}, error) { return b.fallback.Prune(ctx, olderThan) },
	)
	if err != nil {
		return 0, err
	}
	return result.(int), nil
}

// State exposes the breaker state for health reporting.
func (b *BreakerStore) State() gobreaker.State {
	return b.breaker.State()
}

func (b *BreakerStore) Close() error {
	return b.primary.Close()
}
