package store

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailpulse/retailpulse/internal/domain"
)

func TestExportCSVFlattensDimensions(t *testing.T) {
	fs := sampleFeatures(day("2026-03-10"), 4200)
	z := 3.4
	fs.Anomalies = domain.AnomalyFlags{
		TotalRevenueZ:     &z,
		TotalRevenueClass: domain.AnomalyCritical,
		Categories: map[string]domain.DimensionAnomaly{
			"cold_flu_medication": {
				Name:          "cold_flu_medication",
				ZScore:        3.4,
				Class:         domain.AnomalyCritical,
				Authoritative: true,
			},
		},
		HasAnomaly: true,
	}

	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, []domain.DailyFeatureSet{fs}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	// header + total + 1 category + 1 location
	require.Len(t, rows, 4)

	assert.Equal(t, "date", rows[0][0])

	total := rows[1]
	assert.Equal(t, "2026-03-10", total[0])
	assert.Equal(t, "total", total[1])
	assert.Equal(t, "4200.00", total[3])
	assert.Equal(t, "3.40", total[11])
	assert.Equal(t, "critical_anomaly", total[12])

	category := rows[2]
	assert.Equal(t, "category", category[1])
	assert.Equal(t, "cold_flu_medication", category[2])
	assert.Equal(t, "3.40", category[11])
}

func TestExportCSVOrdersByDate(t *testing.T) {
	sets := []domain.DailyFeatureSet{
		sampleFeatures(day("2026-03-12"), 2),
		sampleFeatures(day("2026-03-10"), 1),
	}

	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, sets))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	var dates []string
	for _, row := range rows[1:] {
		if row[1] == "total" {
			dates = append(dates, row[0])
		}
	}
	assert.Equal(t, []string{"2026-03-10", "2026-03-12"}, dates)
}
