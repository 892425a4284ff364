// Package store provides the FeatureStore persistence abstraction keyed by
// calendar date, with a separate singleton slot for the current baseline set.
//
// Writes are idempotent and wholesale: writing a date twice replaces the
// prior value entirely, partial field updates do not exist. Pruning only
// happens when explicitly requested. Read-after-write consistency is
// guaranteed within a process; cross-process consistency is the host's
// responsibility.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/retailpulse/retailpulse/internal/domain"
)

// ErrNotFound signals a missing date key or an absent baseline.
var ErrNotFound = errors.New("feature store: not found")

// FeatureStore is the persistence contract injected into every component
// that reads or writes derived artifacts. The engine assumes nothing about
// the backend beyond this interface.
type FeatureStore interface {
	// PutFeatures stores the feature set under its date, replacing any
	// prior value wholesale.
	PutFeatures(ctx context.Context, fs domain.DailyFeatureSet) error

	// GetFeatures returns the feature set for a date or ErrNotFound.
	GetFeatures(ctx context.Context, date time.Time) (*domain.DailyFeatureSet, error)

	// HasFeatures reports whether a date is cached.
	HasFeatures(ctx context.Context, date time.Time) (bool, error)

	// LatestDate returns the most recent cached date; ok is false when the
	// store is empty.
	LatestDate(ctx context.Context) (date time.Time, ok bool, err error)

	// ListDates returns all cached dates in ascending order.
	ListDates(ctx context.Context) ([]time.Time, error)

	// PutBaseline replaces the singleton baseline set wholesale.
	PutBaseline(ctx context.Context, b domain.Baseline) error

	// GetBaseline returns the current baseline set or ErrNotFound.
	GetBaseline(ctx context.Context) (*domain.Baseline, error)

	// Prune deletes feature sets older than the cutoff date and returns
	// how many were removed. Nothing is ever pruned implicitly.
	Prune(ctx context.Context, olderThan time.Time) (int, error)

	// Close releases backend resources.
	Close() error
}
