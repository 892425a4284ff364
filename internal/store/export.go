package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/retailpulse/retailpulse/internal/domain"
)

// ExportCSV flattens feature sets into one row per (date, dimension, name)
// for spreadsheet review. Dimension is "total", "category", "location" or
// "supplier"; columns that do not apply to a dimension are left empty.
func ExportCSV(w io.Writer, sets []domain.DailyFeatureSet) error {
	cw := csv.NewWriter(w)

	header := []string{
		"date", "dimension", "name",
		"revenue", "units", "transactions",
		"avg_ticket", "growth_vs_yesterday_pct", "growth_vs_last_year_pct",
		"revenue_share_pct", "vs_network_avg_pct",
		"anomaly_z", "anomaly_class", "no_data",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	sorted := make([]domain.DailyFeatureSet, len(sets))
	copy(sorted, sets)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	for _, fs := range sorted {
		day := domain.DayKey(fs.Date)

		totalRow := []string{
			day, "total", "",
			formatFloat(fs.Totals.Revenue), strconv.Itoa(fs.Totals.Units), strconv.Itoa(fs.Totals.Transactions),
			formatFloatPtr(fs.Totals.AvgTicket), "", "",
			"", "",
			formatFloatPtr(fs.Anomalies.TotalRevenueZ), string(fs.Anomalies.TotalRevenueClass), strconv.FormatBool(fs.NoData),
		}
		if err := cw.Write(totalRow); err != nil {
			return fmt.Errorf("write csv row %s: %w", day, err)
		}

		for _, name := range sortedKeys(fs.ByCategory) {
			cm := fs.ByCategory[name]
			z, class := dimensionAnomaly(fs.Anomalies.Categories, name)
			row := []string{
				day, "category", name,
				formatFloat(cm.Revenue), strconv.Itoa(cm.Units), strconv.Itoa(cm.Transactions),
				"", formatFloatPtr(cm.GrowthVsYesterday), formatFloatPtr(cm.GrowthVsLastYear),
				"", "",
				z, class, "",
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write csv row %s/%s: %w", day, name, err)
			}
		}

		for _, name := range sortedKeys(fs.ByLocation) {
			lm := fs.ByLocation[name]
			z, class := dimensionAnomaly(fs.Anomalies.Locations, name)
			row := []string{
				day, "location", name,
				formatFloat(lm.Revenue), strconv.Itoa(lm.Units), strconv.Itoa(lm.Transactions),
				formatFloatPtr(lm.AvgTicket), "", "",
				"", formatFloatPtr(lm.VsNetworkAvgPct),
				z, class, "",
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write csv row %s/%s: %w", day, name, err)
			}
		}

		for _, name := range sortedKeys(fs.BySupplier) {
			sm := fs.BySupplier[name]
			row := []string{
				day, "supplier", name,
				formatFloat(sm.Revenue), "", "",
				"", "", "",
				formatFloat(sm.RevenueSharePct), "",
				"", "", "",
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write csv row %s/%s: %w", day, name, err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func dimensionAnomaly(dims map[string]domain.DimensionAnomaly, name string) (z, class string) {
	d, ok := dims[name]
	if !ok {
		return "", ""
	}
	return formatFloat(d.ZScore), string(d.Class)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatFloatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
