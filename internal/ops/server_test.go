package ops

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailpulse/retailpulse/internal/domain"
	"github.com/retailpulse/retailpulse/internal/metrics"
	"github.com/retailpulse/retailpulse/internal/store"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func seededServer(t *testing.T) *Server {
	t.Helper()
	fs := store.NewMemoryStore()
	ctx := context.Background()

	set := domain.DailyFeatureSet{
		Date:       day(t, "2026-03-10"),
		Totals:     domain.DailyTotals{Revenue: 4200, Units: 310, Transactions: 48, LineItems: 52},
		ByCategory: map[string]domain.CategoryMetrics{"analgesics": {Revenue: 900, Units: 120}},
		ByLocation: map[string]domain.LocationMetrics{"Grafton St": {Revenue: 4200}},
		BySupplier: map[string]domain.SupplierMetrics{},
	}
	require.NoError(t, fs.PutFeatures(ctx, set))
	require.NoError(t, fs.PutBaseline(ctx, domain.Baseline{
		ComputedThrough: day(t, "2026-03-10"),
		WindowDays:      30,
		TotalRevenue:    domain.BaselineStats{Mean: 4000, Std: 250, PopulatedDays: 30},
	}))

	return NewServer(":0", fs, nil, metrics.New())
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	s := seededServer(t)

	rec := get(t, s, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "2026-03-10", resp.LatestDate)
	assert.Empty(t, resp.BreakerState)
}

func TestHealthReportsBreakerState(t *testing.T) {
	fs := store.NewMemoryStore()
	wrapped := store.NewBreakerStore(fs)
	s := NewServer(":0", wrapped, wrapped, metrics.New())

	rec := get(t, s, "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "closed", resp.BreakerState)
}

func TestFeaturesByDate(t *testing.T) {
	s := seededServer(t)

	rec := get(t, s, "/features/2026-03-10")
	require.Equal(t, http.StatusOK, rec.Code)

	var fs domain.DailyFeatureSet
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fs))
	assert.Equal(t, 4200.0, fs.Totals.Revenue)
}

func TestFeaturesMissingDateIs404(t *testing.T) {
	s := seededServer(t)

	rec := get(t, s, "/features/2026-03-11")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFeaturesBadDateIs400(t *testing.T) {
	s := seededServer(t)

	rec := get(t, s, "/features/tomorrow")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "YYYY-MM-DD")
}

func TestLatestFeatures(t *testing.T) {
	s := seededServer(t)

	rec := get(t, s, "/features/latest")
	require.Equal(t, http.StatusOK, rec.Code)

	var fs domain.DailyFeatureSet
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fs))
	assert.Equal(t, day(t, "2026-03-10"), fs.Date)
}

func TestLatestFeaturesEmptyStore(t *testing.T) {
	s := NewServer(":0", store.NewMemoryStore(), nil, metrics.New())

	rec := get(t, s, "/features/latest")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "empty")
}

func TestBaselineEndpoint(t *testing.T) {
	s := seededServer(t)

	rec := get(t, s, "/baseline")
	require.Equal(t, http.StatusOK, rec.Code)

	var b domain.Baseline
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	assert.Equal(t, 4000.0, b.TotalRevenue.Mean)
}

func TestMetricsEndpoint(t *testing.T) {
	s := seededServer(t)

	rec := get(t, s, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "retailpulse_dates_aggregated_total")
}

func TestUnknownRouteIs404JSON(t *testing.T) {
	s := seededServer(t)

	rec := get(t, s, "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not found")
}
