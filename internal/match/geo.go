package match

import (
	"math"
	"sort"

	"github.com/retailpulse/retailpulse/internal/domain"
)

const earthRadiusKm = 6371.0

// HaversineKm is the great-circle distance between two WGS84 points.
func HaversineKm(a, b domain.Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// StoreDistance pairs a store with its distance from an event coordinate.
type StoreDistance struct {
	Store      domain.StoreLocation
	DistanceKm float64
}

// StoresWithin returns every store at or inside the radius, ordered by
// ascending distance. Ties are both included; the sort is stable on the
// input order so equal distances never drop a store.
func StoresWithin(stores []domain.StoreLocation, event domain.Coordinate, radiusKm float64) []StoreDistance {
	var within []StoreDistance
	for _, s := range stores {
		d := HaversineKm(s.Coordinate, event)
		if d <= radiusKm {
			within = append(within, StoreDistance{Store: s, DistanceKm: d})
		}
	}
	sort.SliceStable(within, func(i, j int) bool {
		return within[i].DistanceKm < within[j].DistanceKm
	})
	return within
}

func storeNames(within []StoreDistance) []string {
	names := make([]string, 0, len(within))
	for _, sd := range within {
		names = append(names, sd.Store.Name)
	}
	return names
}
