package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailpulse/retailpulse/internal/domain"
)

func TestHaversineReferenceDistances(t *testing.T) {
	// One degree of latitude along a meridian is 6371 * pi / 180 km.
	const oneDegreeKm = 111.19492664

	tests := []struct {
		name string
		a, b domain.Coordinate
		want float64
	}{
		{"one degree latitude", domain.Coordinate{Lat: 53, Lon: -6}, domain.Coordinate{Lat: 54, Lon: -6}, oneDegreeKm},
		{"one degree longitude at equator", domain.Coordinate{Lat: 0, Lon: 0}, domain.Coordinate{Lat: 0, Lon: 1}, oneDegreeKm},
		{"zero distance", domain.Coordinate{Lat: 53.3424, Lon: -6.2597}, domain.Coordinate{Lat: 53.3424, Lon: -6.2597}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, HaversineKm(tt.a, tt.b), 0.01)
		})
	}
}

func TestHaversineIsSymmetric(t *testing.T) {
	a := domain.Coordinate{Lat: 53.3314, Lon: -6.2462}
	b := domain.Coordinate{Lat: 53.3498, Lon: -6.2603}
	assert.InDelta(t, HaversineKm(a, b), HaversineKm(b, a), 1e-9)
}

func TestStoresWithinRanksByDistance(t *testing.T) {
	bc := testContext()
	// Event at the Grafton St coordinate: Grafton must rank first.
	event := domain.Coordinate{Lat: 53.3424, Lon: -6.2597}

	within := StoresWithin(bc.Stores, event, bc.Thresholds.Proximity.LowKm)
	require.NotEmpty(t, within)
	assert.Equal(t, "Grafton St", within[0].Store.Name)
	assert.InDelta(t, 0.0, within[0].DistanceKm, 0.01)

	for i := 1; i < len(within); i++ {
		assert.GreaterOrEqual(t, within[i].DistanceKm, within[i-1].DistanceKm)
	}
}

func TestStoresWithinIncludesTies(t *testing.T) {
	stores := []domain.StoreLocation{
		{Name: "East", Coordinate: domain.Coordinate{Lat: 53.0, Lon: -5.99}},
		{Name: "West", Coordinate: domain.Coordinate{Lat: 53.0, Lon: -6.01}},
	}
	event := domain.Coordinate{Lat: 53.0, Lon: -6.0}

	within := StoresWithin(stores, event, 5.0)
	require.Len(t, within, 2, "equidistant stores are both included")
	assert.InDelta(t, within[0].DistanceKm, within[1].DistanceKm, 1e-9)
}

func TestStoresWithinExcludesOutsideRadius(t *testing.T) {
	bc := testContext()
	// Cork is far outside any Dublin radius tier.
	cork := domain.Coordinate{Lat: 51.8985, Lon: -8.4756}

	within := StoresWithin(bc.Stores, cork, bc.Thresholds.Proximity.LowKm)
	assert.Empty(t, within)
}
