package domain

import "time"

// BaselineStats holds the trailing-window statistics for one metric series.
// InsufficientHistory marks a window with fewer populated days than the
// configured minimum; downstream code must treat its thresholds as
// non-authoritative.
type BaselineStats struct {
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Median float64 `json:"median"`
	P25    float64 `json:"p25"`
	P75    float64 `json:"p75"`
	P95    float64 `json:"p95"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`

	PopulatedDays       int  `json:"populated_days"`
	InsufficientHistory bool `json:"insufficient_history,omitempty"`
}

// Baseline is the full set of per-dimension statistics for one reference
// date. It is always recomputed wholesale for the window, never patched.
type Baseline struct {
	ComputedThrough  time.Time `json:"computed_through"`
	WindowDays       int       `json:"window_days"`
	MinPopulatedDays int       `json:"min_populated_days"`

	TotalRevenue BaselineStats            `json:"total_revenue"`
	ByCategory   map[string]BaselineStats `json:"by_category"`
	ByLocation   map[string]BaselineStats `json:"by_location"`
}

// CategoryStats returns the baseline for a category and whether it exists.
func (b *Baseline) CategoryStats(category string) (BaselineStats, bool) {
	s, ok := b.ByCategory[category]
	return s, ok
}

// LocationStats returns the baseline for a location and whether it exists.
func (b *Baseline) LocationStats(location string) (BaselineStats, bool) {
	s, ok := b.ByLocation[location]
	return s, ok
}
