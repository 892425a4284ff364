package anomaly

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/retailpulse/retailpulse/internal/domain"
)

// Report renders anomaly flags as a human-readable summary for operators.
func Report(flags domain.AnomalyFlags) string {
	if !flags.HasAnomaly {
		return "No significant anomalies detected."
	}

	var b strings.Builder
	b.WriteString("ANOMALY DETECTION REPORT\n")
	b.WriteString(strings.Repeat("=", 60) + "\n")

	if flags.TotalRevenueZ != nil && flags.TotalRevenueClass != domain.AnomalyNormal {
		z := *flags.TotalRevenueZ
		direction := "above"
		if z < 0 {
			direction = "below"
		}
		fmt.Fprintf(&b, "Overall revenue: %.1f std deviations %s normal\n", math.Abs(z), direction)
	}

	writeDimensions(&b, "CATEGORY ANOMALIES", flags.Categories)
	writeDimensions(&b, "LOCATION ANOMALIES", flags.Locations)

	if flags.IsTrueAnomaly {
		b.WriteString("\nTRUE MULTIDIMENSIONAL ANOMALY CONFIRMED\n")
	} else {
		b.WriteString("\nIsolated anomaly (not corroborated across dimensions)\n")
	}
	return b.String()
}

func writeDimensions(b *strings.Builder, header string, dims map[string]domain.DimensionAnomaly) {
	if len(dims) == 0 {
		return
	}

	sorted := make([]domain.DimensionAnomaly, 0, len(dims))
	for _, d := range dims {
		sorted = append(sorted, d)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return math.Abs(sorted[i].ZScore) > math.Abs(sorted[j].ZScore)
	})

	fmt.Fprintf(b, "\n%s:\n%s\n", header, strings.Repeat("-", 60))
	for _, d := range sorted {
		note := ""
		if !d.Authoritative {
			note = " (insufficient history)"
		}
		fmt.Fprintf(b, "  %-36s | z=%6.2f | %-20s | %.0f vs %.0f%s\n",
			d.Name, d.ZScore, d.Class, d.Observed, d.BaselineMean, note)
	}
}
