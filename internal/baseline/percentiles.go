package baseline

import (
	"math"
	"sort"
)

// interpolatePercentile computes the p-th percentile (0-100) of sorted values
// using linear interpolation between closest ranks.
func interpolatePercentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if len(sorted) == 1 {
		return sorted[0]
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}

	rank := p / 100 * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}
	frac := rank - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac
}

// seriesStats computes mean, sample standard deviation, median, percentile
// markers and extrema for one metric series. The input is copied before
// sorting; callers keep their ordering.
func seriesStats(values []float64) (mean, std, median, p25, p75, p95, min, max float64) {
	n := len(values)
	if n == 0 {
		return
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(n)

	if n > 1 {
		var sq float64
		for _, v := range values {
			d := v - mean
			sq += d * d
		}
		std = math.Sqrt(sq / float64(n-1))
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	median = interpolatePercentile(sorted, 50)
	p25 = interpolatePercentile(sorted, 25)
	p75 = interpolatePercentile(sorted, 75)
	p95 = interpolatePercentile(sorted, 95)
	min = sorted[0]
	max = sorted[n-1]
	return
}
