// Package anomaly scores daily features against their baselines using
// z-scores and a multidimensional validation rule that suppresses
// single-dimension noise.
package anomaly

import (
	"math"

	"github.com/rs/zerolog/log"

	"github.com/retailpulse/retailpulse/internal/domain"
)

// Classification thresholds are fixed by design, not configurable per call.
const (
	criticalZ    = 3.0
	significantZ = 2.0
	minorZ       = 1.5
)

// Presentational multipliers for the surge/drought labels, derived from the
// same baseline data as the z-scores.
const (
	surgeMultiplier   = 2.0
	droughtMultiplier = 0.5
)

// ZScore returns how many standard deviations value sits from the baseline
// mean. A zero-variance history yields 0 rather than amplifying to infinity.
func ZScore(value, mean, std float64) float64 {
	if std == 0 {
		return 0
	}
	return (value - mean) / std
}

// Classify grades a z-score. Zero-variance dimensions always come out normal
// because ZScore returns 0 for them.
func Classify(z float64) domain.AnomalyClass {
	abs := math.Abs(z)
	switch {
	case abs > criticalZ:
		return domain.AnomalyCritical
	case abs > significantZ:
		return domain.AnomalySignificant
	case abs > minorZ:
		return domain.AnomalyMinor
	default:
		return domain.AnomalyNormal
	}
}

// Detector produces AnomalyFlags for one day's features.
type Detector struct{}

// NewDetector returns a detector. It is stateless; one instance serves any
// number of dates concurrently.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect scores the feature set against the baseline. Dimensions whose
// baseline has insufficient history are scored but marked non-authoritative
// and never contribute to IsTrueAnomaly; the same guard applies to the total
// revenue dimension, whose classification is forced to normal when the
// backing window is non-authoritative.
func (d *Detector) Detect(fs *domain.DailyFeatureSet, b *domain.Baseline) domain.AnomalyFlags {
	flags := domain.AnomalyFlags{
		Categories:        make(map[string]domain.DimensionAnomaly),
		Locations:         make(map[string]domain.DimensionAnomaly),
		TotalRevenueClass: domain.AnomalyNormal,
	}

	if fs.NoData || b == nil {
		flags.IsTrueAnomaly = flags.TrueAnomaly()
		return flags
	}

	z := ZScore(fs.Totals.Revenue, b.TotalRevenue.Mean, b.TotalRevenue.Std)
	flags.TotalRevenueZ = &z
	if !b.TotalRevenue.InsufficientHistory {
		flags.TotalRevenueClass = Classify(z)
		if flags.TotalRevenueClass != domain.AnomalyNormal {
			flags.HasAnomaly = true
		}
	}

	for category, m := range fs.ByCategory {
		stats, ok := b.CategoryStats(category)
		if !ok {
			continue
		}
		if dim, anomalous := scoreDimension(category, m.Revenue, stats); anomalous {
			flags.Categories[category] = dim
			if dim.Authoritative {
				flags.HasAnomaly = true
			}
		}
	}

	for location, m := range fs.ByLocation {
		stats, ok := b.LocationStats(location)
		if !ok {
			continue
		}
		if dim, anomalous := scoreDimension(location, m.Revenue, stats); anomalous {
			flags.Locations[location] = dim
			if dim.Authoritative {
				flags.HasAnomaly = true
			}
		}
	}

	flags.IsTrueAnomaly = flags.TrueAnomaly()

	if flags.HasAnomaly {
		log.Debug().
			Str("date", domain.DayKey(fs.Date)).
			Int("category_anomalies", len(flags.Categories)).
			Int("location_anomalies", len(flags.Locations)).
			Bool("is_true_anomaly", flags.IsTrueAnomaly).
			Msg("anomalies detected")
	}

	return flags
}

// scoreDimension classifies one dimension; only non-normal dimensions are
// recorded on the flags.
func scoreDimension(name string, observed float64, stats domain.BaselineStats) (domain.DimensionAnomaly, bool) {
	z := ZScore(observed, stats.Mean, stats.Std)
	class := Classify(z)
	if class == domain.AnomalyNormal {
		return domain.DimensionAnomaly{}, false
	}

	direction := "above"
	if z < 0 {
		direction = "below"
	}
	return domain.DimensionAnomaly{
		Name:          name,
		ZScore:        z,
		Class:         class,
		Observed:      observed,
		BaselineMean:  stats.Mean,
		Direction:     direction,
		Authoritative: !stats.InsufficientHistory,
	}, true
}

// SurgeResult labels an observed value against its baseline multiple.
type SurgeResult struct {
	Detected   bool    `json:"detected"`
	Multiplier float64 `json:"multiplier"`
	Observed   float64 `json:"observed"`
	Baseline   float64 `json:"baseline_mean"`
}

// DetectSurge reports whether observed is at least the surge multiple of the
// baseline mean. A zero mean never surges.
func DetectSurge(observed, baselineMean float64) SurgeResult {
	if baselineMean == 0 {
		return SurgeResult{}
	}
	mult := observed / baselineMean
	return SurgeResult{
		Detected:   mult >= surgeMultiplier,
		Multiplier: mult,
		Observed:   observed,
		Baseline:   baselineMean,
	}
}

// DetectDrought reports whether observed has fallen to half the baseline
// mean or less. A zero mean never registers a drought.
func DetectDrought(observed, baselineMean float64) SurgeResult {
	if baselineMean == 0 {
		return SurgeResult{}
	}
	mult := observed / baselineMean
	return SurgeResult{
		Detected:   mult <= droughtMultiplier,
		Multiplier: mult,
		Observed:   observed,
		Baseline:   baselineMean,
	}
}

// HighVolumeDay reports whether the observed revenue exceeds the window's
// 95th percentile.
func HighVolumeDay(observed float64, stats domain.BaselineStats) bool {
	return observed > stats.P95
}

// LowVolumeDay approximates the 10th percentile as mean − 1.28σ.
func LowVolumeDay(observed float64, stats domain.BaselineStats) bool {
	return observed < stats.Mean-1.28*stats.Std
}
