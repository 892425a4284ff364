// Package baseline computes trailing-window statistics per category and per
// location, used as the "normal" reference for anomaly scoring.
package baseline

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/retailpulse/retailpulse/internal/domain"
)

// Calculator recomputes Baselines wholesale over a trailing window. Identical
// input windows always yield identical statistics: there is no randomness and
// the arithmetic is plain IEEE.
type Calculator struct {
	windowDays       int
	minPopulatedDays int
}

// NewCalculator builds a calculator. Non-positive arguments fall back to the
// defaults (30-day window, 10 populated days minimum).
func NewCalculator(windowDays, minPopulatedDays int) *Calculator {
	if windowDays <= 0 {
		windowDays = 30
	}
	if minPopulatedDays <= 0 {
		minPopulatedDays = 10
	}
	return &Calculator{windowDays: windowDays, minPopulatedDays: minPopulatedDays}
}

// Compute derives a Baseline from the feature sets whose date falls within
// the trailing window ending at (and including) end. No-data days do not
// count as populated. A dimension with fewer populated days than the minimum
// is flagged InsufficientHistory; its thresholds are non-authoritative.
func (c *Calculator) Compute(end time.Time, features []domain.DailyFeatureSet) *domain.Baseline {
	endDay := domain.Day(end)
	startDay := endDay.AddDate(0, 0, -c.windowDays+1)

	var totalSeries []float64
	categorySeries := make(map[string][]float64)
	locationSeries := make(map[string][]float64)

	for _, fs := range features {
		day := domain.Day(fs.Date)
		if day.Before(startDay) || day.After(endDay) {
			continue
		}
		if fs.NoData {
			continue
		}
		totalSeries = append(totalSeries, fs.Totals.Revenue)
		for category, m := range fs.ByCategory {
			categorySeries[category] = append(categorySeries[category], m.Revenue)
		}
		for location, m := range fs.ByLocation {
			locationSeries[location] = append(locationSeries[location], m.Revenue)
		}
	}

	b := &domain.Baseline{
		ComputedThrough:  endDay,
		WindowDays:       c.windowDays,
		MinPopulatedDays: c.minPopulatedDays,
		TotalRevenue:     c.stats(totalSeries),
		ByCategory:       make(map[string]domain.BaselineStats, len(categorySeries)),
		ByLocation:       make(map[string]domain.BaselineStats, len(locationSeries)),
	}
	for category, series := range categorySeries {
		b.ByCategory[category] = c.stats(series)
	}
	for location, series := range locationSeries {
		b.ByLocation[location] = c.stats(series)
	}

	log.Debug().
		Str("through", domain.DayKey(endDay)).
		Int("window_days", c.windowDays).
		Int("populated_days", b.TotalRevenue.PopulatedDays).
		Bool("insufficient_history", b.TotalRevenue.InsufficientHistory).
		Msg("recomputed baseline")

	return b
}

func (c *Calculator) stats(series []float64) domain.BaselineStats {
	mean, std, median, p25, p75, p95, min, max := seriesStats(series)
	return domain.BaselineStats{
		Mean:                mean,
		Std:                 std,
		Median:              median,
		P25:                 p25,
		P75:                 p75,
		P95:                 p95,
		Min:                 min,
		Max:                 max,
		PopulatedDays:       len(series),
		InsufficientHistory: len(series) < c.minPopulatedDays,
	}
}
