package pipeline

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailpulse/retailpulse/internal/config"
	"github.com/retailpulse/retailpulse/internal/domain"
	"github.com/retailpulse/retailpulse/internal/store"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func tx(ts time.Time, id string, revenue float64) domain.TransactionRecord {
	return domain.TransactionRecord{
		Timestamp:     ts,
		TransactionID: id,
		Location:      "Grafton St",
		Category:      "cold_flu_medication",
		Supplier:      "MedSupply Ireland",
		Product:       "Day & Night Capsules",
		Quantity:      1,
		Revenue:       revenue,
	}
}

func testConfig() config.PipelineConfig {
	return config.PipelineConfig{
		BaselineWindowDays:    30,
		MinHistoryDays:        10,
		SupplierShareFloorPct: 0.5,
		WriteRatePerSec:       0,
	}
}

// steadyThenSpike yields one transaction per day at 100.00 from March 1st
// through the 31st, then a 500.00 day on April 1st.
func steadyThenSpike(t *testing.T) []domain.TransactionRecord {
	t.Helper()
	var records []domain.TransactionRecord
	start := day(t, "2026-03-01")
	for i := 0; i < 31; i++ {
		d := start.AddDate(0, 0, i).Add(10 * time.Hour)
		records = append(records, tx(d, fmt.Sprintf("tx-%d", i), 100.00))
	}
	records = append(records, tx(day(t, "2026-04-01").Add(10*time.Hour), "tx-spike", 500.00))
	return records
}

func TestPipelineRunEndToEnd(t *testing.T) {
	ctx := context.Background()
	fs := store.NewMemoryStore()
	p := New(fs, testConfig(), nil)

	records := steadyThenSpike(t)
	res, err := p.Run(ctx, records, nil, DatesIn(records))
	require.NoError(t, err)

	assert.Empty(t, res.Failed)
	assert.Len(t, res.Succeeded, 32)
	require.Len(t, res.TrueAnomalies, 1)
	assert.Equal(t, day(t, "2026-04-01"), res.TrueAnomalies[0])

	b, err := fs.GetBaseline(ctx)
	require.NoError(t, err)
	assert.Equal(t, day(t, "2026-04-01"), b.ComputedThrough)
	assert.False(t, b.TotalRevenue.InsufficientHistory)

	spike, err := fs.GetFeatures(ctx, day(t, "2026-04-01"))
	require.NoError(t, err)
	assert.True(t, spike.Anomalies.IsTrueAnomaly)
	assert.Equal(t, domain.AnomalyCritical, spike.Anomalies.TotalRevenueClass)
	require.NotNil(t, spike.Anomalies.TotalRevenueZ)
	assert.Greater(t, *spike.Anomalies.TotalRevenueZ, 3.0)

	steady, err := fs.GetFeatures(ctx, day(t, "2026-03-20"))
	require.NoError(t, err)
	assert.False(t, steady.Anomalies.HasAnomaly)
	assert.Equal(t, domain.AnomalyNormal, steady.Anomalies.TotalRevenueClass)
}

func TestPipelineIsolatesBadDate(t *testing.T) {
	ctx := context.Background()
	fs := store.NewMemoryStore()
	p := New(fs, testConfig(), nil)

	records := steadyThenSpike(t)
	bad := tx(day(t, "2026-03-05").Add(12*time.Hour), "tx-bad", 9.99)
	bad.Quantity = -1
	records = append(records, bad)

	res, err := p.Run(ctx, records, nil, DatesIn(records))
	require.NoError(t, err)

	require.Len(t, res.Failed, 1)
	assert.Equal(t, day(t, "2026-03-05"), res.Failed[0].Date)
	var fe *domain.FieldError
	require.ErrorAs(t, res.Failed[0], &fe)
	assert.Equal(t, "quantity", fe.Field)

	// The bad date never reaches the store; the rest of the batch does.
	ok, err := fs.HasFeatures(ctx, day(t, "2026-03-05"))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Len(t, res.Succeeded, 31)
}

func TestPipelineStoresNoDataDay(t *testing.T) {
	ctx := context.Background()
	fs := store.NewMemoryStore()
	p := New(fs, testConfig(), nil)

	records := steadyThenSpike(t)
	dates := append(DatesIn(records), day(t, "2026-04-02"))

	res, err := p.Run(ctx, records, nil, dates)
	require.NoError(t, err)
	assert.Empty(t, res.Failed)

	quiet, err := fs.GetFeatures(ctx, day(t, "2026-04-02"))
	require.NoError(t, err)
	assert.True(t, quiet.NoData)
	assert.False(t, quiet.Anomalies.HasAnomaly)
}

func TestDatesIn(t *testing.T) {
	records := []domain.TransactionRecord{
		tx(day(t, "2026-03-11").Add(9*time.Hour), "a", 1),
		tx(day(t, "2026-03-10").Add(9*time.Hour), "b", 1),
		tx(day(t, "2026-03-11").Add(15*time.Hour), "c", 1),
	}
	dates := DatesIn(records)
	require.Len(t, dates, 2)
	assert.Equal(t, day(t, "2026-03-10"), dates[0])
	assert.Equal(t, day(t, "2026-03-11"), dates[1])
}
