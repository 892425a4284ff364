package anomaly

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailpulse/retailpulse/internal/domain"
)

func TestZScore(t *testing.T) {
	assert.InDelta(t, 2.0, ZScore(120, 100, 10), 1e-9)
	assert.InDelta(t, -3.0, ZScore(70, 100, 10), 1e-9)
}

func TestZScoreZeroVarianceIsNormal(t *testing.T) {
	// A flat history must not amplify to infinity.
	assert.Equal(t, 0.0, ZScore(500, 100, 0))
	assert.Equal(t, domain.AnomalyNormal, Classify(ZScore(500, 100, 0)))
}

func TestClassifyBoundaries(t *testing.T) {
	cases := []struct {
		z    float64
		want domain.AnomalyClass
	}{
		{3.5, domain.AnomalyCritical},
		{-3.5, domain.AnomalyCritical},
		{3.0, domain.AnomalySignificant}, // thresholds are strict
		{2.2, domain.AnomalySignificant},
		{2.0, domain.AnomalyMinor},
		{1.6, domain.AnomalyMinor},
		{1.5, domain.AnomalyNormal},
		{0.0, domain.AnomalyNormal},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.z), "z=%v", tc.z)
	}
}

func testBaseline() *domain.Baseline {
	return &domain.Baseline{
		ComputedThrough:  time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		WindowDays:       30,
		MinPopulatedDays: 10,
		TotalRevenue:     domain.BaselineStats{Mean: 1000, Std: 50, PopulatedDays: 30},
		ByCategory: map[string]domain.BaselineStats{
			"cold_flu_medication": {Mean: 200, Std: 20, PopulatedDays: 30},
			"analgesics":          {Mean: 300, Std: 30, PopulatedDays: 30},
			"vitamins":            {Mean: 100, Std: 10, PopulatedDays: 4, InsufficientHistory: true},
		},
		ByLocation: map[string]domain.BaselineStats{
			"Grafton St": {Mean: 500, Std: 40, PopulatedDays: 30},
		},
	}
}

func features(total float64, byCategory map[string]float64) *domain.DailyFeatureSet {
	fs := &domain.DailyFeatureSet{
		Date:       time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Totals:     domain.DailyTotals{Revenue: total},
		ByCategory: map[string]domain.CategoryMetrics{},
		ByLocation: map[string]domain.LocationMetrics{},
	}
	for c, rev := range byCategory {
		fs.ByCategory[c] = domain.CategoryMetrics{Revenue: rev}
	}
	return fs
}

func TestDetectConfirmsMultidimensionalAnomaly(t *testing.T) {
	d := NewDetector()
	fs := features(1250, map[string]float64{
		"cold_flu_medication": 280, // z = 4.0
		"analgesics":          360, // z = 2.0, minor
	})

	flags := d.Detect(fs, testBaseline())

	require.NotNil(t, flags.TotalRevenueZ)
	assert.InDelta(t, 5.0, *flags.TotalRevenueZ, 1e-9)
	assert.Equal(t, domain.AnomalyCritical, flags.TotalRevenueClass)

	require.Contains(t, flags.Categories, "cold_flu_medication")
	assert.Equal(t, domain.AnomalyCritical, flags.Categories["cold_flu_medication"].Class)
	assert.Equal(t, "above", flags.Categories["cold_flu_medication"].Direction)

	assert.True(t, flags.HasAnomaly)
	assert.True(t, flags.IsTrueAnomaly)
}

func TestDetectSingleDimensionIsNotTrueAnomaly(t *testing.T) {
	d := NewDetector()
	fs := features(1010, map[string]float64{"analgesics": 420}) // total z 0.2, one category z 4

	flags := d.Detect(fs, testBaseline())

	assert.True(t, flags.HasAnomaly)
	assert.False(t, flags.IsTrueAnomaly)
}

func TestDetectInsufficientHistoryIsNonAuthoritative(t *testing.T) {
	d := NewDetector()
	fs := features(1000, map[string]float64{"vitamins": 400}) // z = 30 but thin history

	flags := d.Detect(fs, testBaseline())

	require.Contains(t, flags.Categories, "vitamins")
	assert.False(t, flags.Categories["vitamins"].Authoritative)
	assert.False(t, flags.HasAnomaly)
	assert.False(t, flags.IsTrueAnomaly)
}

func TestDetectNoDataDay(t *testing.T) {
	d := NewDetector()
	fs := features(0, nil)
	fs.NoData = true

	flags := d.Detect(fs, testBaseline())

	assert.Nil(t, flags.TotalRevenueZ)
	assert.False(t, flags.HasAnomaly)
	assert.False(t, flags.IsTrueAnomaly)
}

func TestDetectNilBaseline(t *testing.T) {
	d := NewDetector()
	flags := d.Detect(features(1000, nil), nil)
	assert.False(t, flags.HasAnomaly)
}

func TestDetectSurge(t *testing.T) {
	res := DetectSurge(250, 100)
	assert.True(t, res.Detected)
	assert.InDelta(t, 2.5, res.Multiplier, 1e-9)

	assert.False(t, DetectSurge(199, 100).Detected)
	assert.True(t, DetectSurge(200, 100).Detected)
	assert.False(t, DetectSurge(500, 0).Detected)
}

func TestDetectDrought(t *testing.T) {
	assert.True(t, DetectDrought(40, 100).Detected)
	assert.True(t, DetectDrought(50, 100).Detected)
	assert.False(t, DetectDrought(60, 100).Detected)
	assert.False(t, DetectDrought(0, 0).Detected)
}

func TestReport(t *testing.T) {
	d := NewDetector()
	fs := features(1250, map[string]float64{
		"cold_flu_medication": 280,
		"analgesics":          360,
	})
	flags := d.Detect(fs, testBaseline())

	out := Report(flags)
	assert.Contains(t, out, "Overall revenue: 5.0 std deviations above normal")
	assert.Contains(t, out, "cold_flu_medication")
	assert.Contains(t, out, "TRUE MULTIDIMENSIONAL ANOMALY CONFIRMED")

	assert.Equal(t, "No significant anomalies detected.", Report(domain.AnomalyFlags{}))
}
