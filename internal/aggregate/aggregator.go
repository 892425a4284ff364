// Package aggregate turns raw transaction and inventory records into
// per-date DailyFeatureSet artifacts.
package aggregate

import (
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/retailpulse/retailpulse/internal/domain"
)

// Config tunes the aggregation stage.
type Config struct {
	// SupplierShareFloorPct drops suppliers below this share of the day's
	// revenue from the supplier grouping.
	SupplierShareFloorPct float64 `yaml:"supplier_share_floor_pct"`
}

// DefaultConfig returns production aggregation settings.
func DefaultConfig() Config {
	return Config{SupplierShareFloorPct: 0.5}
}

// Aggregator computes one DailyFeatureSet per target date from the full
// record set. It holds only derived indexes; source records are never mutated.
type Aggregator struct {
	cfg Config

	byDay map[string][]domain.TransactionRecord

	// stockByLocation sums the latest inventory snapshot units per store.
	stockByLocation map[string]int

	// categoryRevenue caches per (day, category) revenue lookups used by
	// the growth calculations.
	categoryRevenue map[string]float64

	now func() time.Time
}

// New indexes the provided records for per-day aggregation. Inventory
// snapshots are optional; pass nil when the host has none.
func New(records []domain.TransactionRecord, snapshots []domain.InventorySnapshot, cfg Config) *Aggregator {
	a := &Aggregator{
		cfg:             cfg,
		byDay:           make(map[string][]domain.TransactionRecord),
		stockByLocation: make(map[string]int),
		categoryRevenue: make(map[string]float64),
		now:             time.Now,
	}
	for _, r := range records {
		key := domain.DayKey(r.Timestamp)
		a.byDay[key] = append(a.byDay[key], r)
	}
	for _, s := range snapshots {
		a.stockByLocation[s.Location] += s.QuantityOnHand
	}
	return a
}

// AggregateDay produces exactly one DailyFeatureSet for the target date.
// A date with no records yields a valid all-zero set flagged NoData; absence
// of sales is a legitimate business state, not an error. A malformed record
// fails the whole date fast, with the record and field named.
func (a *Aggregator) AggregateDay(date time.Time) (*domain.DailyFeatureSet, error) {
	day := domain.Day(date)
	records := a.byDay[domain.DayKey(day)]

	fs := &domain.DailyFeatureSet{
		Date:        day,
		GeneratedAt: a.now().UTC(),
		ByCategory:  make(map[string]domain.CategoryMetrics),
		ByLocation:  make(map[string]domain.LocationMetrics),
		BySupplier:  make(map[string]domain.SupplierMetrics),
	}

	if len(records) == 0 {
		fs.NoData = true
		log.Debug().Str("date", domain.DayKey(day)).Msg("no records for date, emitting no-data feature set")
		return fs, nil
	}

	for _, r := range records {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("aggregate %s: %w", domain.DayKey(day), err)
		}
	}

	fs.Totals = a.dailyTotals(records)
	fs.ByCategory = a.byCategory(records, day)
	fs.ByLocation = a.byLocation(records)
	fs.BySupplier = a.bySupplier(records, fs.Totals.Revenue)
	fs.Historical = a.historicalContext(day)

	log.Debug().
		Str("date", domain.DayKey(day)).
		Int("line_items", fs.Totals.LineItems).
		Float64("revenue", fs.Totals.Revenue).
		Msg("aggregated daily features")

	return fs, nil
}

func (a *Aggregator) dailyTotals(records []domain.TransactionRecord) domain.DailyTotals {
	totals := domain.DailyTotals{LineItems: len(records)}

	transactions := make(map[string]struct{})
	products := make(map[string]struct{})
	categories := make(map[string]struct{})

	for _, r := range records {
		totals.Revenue += r.Revenue
		totals.Units += r.Quantity
		transactions[r.TransactionID] = struct{}{}
		products[r.Product] = struct{}{}
		categories[r.Category] = struct{}{}
	}

	totals.Transactions = len(transactions)
	totals.UniqueProducts = len(products)
	totals.UniqueCategories = len(categories)

	if totals.Transactions > 0 {
		ticket := totals.Revenue / float64(totals.Transactions)
		totals.AvgTicket = &ticket
	}
	return totals
}

func (a *Aggregator) byCategory(records []domain.TransactionRecord, day time.Time) map[string]domain.CategoryMetrics {
	type bucket struct {
		revenue      float64
		units        int
		transactions map[string]struct{}
		products     map[string]struct{}
	}
	buckets := make(map[string]*bucket)

	for _, r := range records {
		b, ok := buckets[r.Category]
		if !ok {
			b = &bucket{transactions: make(map[string]struct{}), products: make(map[string]struct{})}
			buckets[r.Category] = b
		}
		b.revenue += r.Revenue
		b.units += r.Quantity
		b.transactions[r.TransactionID] = struct{}{}
		b.products[r.Product] = struct{}{}
	}

	yesterday := day.AddDate(0, 0, -1)
	lastYear := day.AddDate(-1, 0, 0)

	out := make(map[string]domain.CategoryMetrics, len(buckets))
	for category, b := range buckets {
		m := domain.CategoryMetrics{
			Revenue:        b.revenue,
			Units:          b.units,
			Transactions:   len(b.transactions),
			UniqueProducts: len(b.products),
		}
		if b.units > 0 {
			avg := b.revenue / float64(b.units)
			m.AvgPricePerUnit = &avg
		}
		m.GrowthVsYesterday = growthPct(b.revenue, a.revenueFor(category, yesterday))
		m.GrowthVsLastYear = growthPct(b.revenue, a.revenueFor(category, lastYear))
		out[category] = m
	}
	return out
}

func (a *Aggregator) byLocation(records []domain.TransactionRecord) map[string]domain.LocationMetrics {
	type bucket struct {
		revenue      float64
		units        int
		transactions map[string]struct{}
	}
	buckets := make(map[string]*bucket)

	for _, r := range records {
		b, ok := buckets[r.Location]
		if !ok {
			b = &bucket{transactions: make(map[string]struct{})}
			buckets[r.Location] = b
		}
		b.revenue += r.Revenue
		b.units += r.Quantity
		b.transactions[r.TransactionID] = struct{}{}
	}

	var totalRevenue float64
	for _, b := range buckets {
		totalRevenue += b.revenue
	}
	var networkAvg float64
	if len(buckets) > 0 {
		networkAvg = totalRevenue / float64(len(buckets))
	}

	out := make(map[string]domain.LocationMetrics, len(buckets))
	for location, b := range buckets {
		m := domain.LocationMetrics{
			Revenue:      b.revenue,
			Units:        b.units,
			Transactions: len(b.transactions),
		}
		if n := len(b.transactions); n > 0 {
			ticket := b.revenue / float64(n)
			m.AvgTicket = &ticket
		}
		if networkAvg > 0 {
			vs := (b.revenue - networkAvg) / networkAvg * 100
			m.VsNetworkAvgPct = &vs
		}
		if stock, ok := a.stockByLocation[location]; ok {
			units := stock
			m.StockUnits = &units
		}
		out[location] = m
	}
	return out
}

func (a *Aggregator) bySupplier(records []domain.TransactionRecord, totalRevenue float64) map[string]domain.SupplierMetrics {
	type bucket struct {
		revenue    float64
		products   map[string]struct{}
		categories map[string]struct{}
	}
	buckets := make(map[string]*bucket)

	for _, r := range records {
		if r.Supplier == "" {
			continue
		}
		b, ok := buckets[r.Supplier]
		if !ok {
			b = &bucket{products: make(map[string]struct{}), categories: make(map[string]struct{})}
			buckets[r.Supplier] = b
		}
		b.revenue += r.Revenue
		b.products[r.Product] = struct{}{}
		b.categories[r.Category] = struct{}{}
	}

	out := make(map[string]domain.SupplierMetrics)
	for supplier, b := range buckets {
		var share float64
		if totalRevenue > 0 {
			share = b.revenue / totalRevenue * 100
		}
		if share <= a.cfg.SupplierShareFloorPct {
			continue
		}
		out[supplier] = domain.SupplierMetrics{
			Revenue:         b.revenue,
			RevenueSharePct: share,
			ProductCount:    len(b.products),
			CategoryCount:   len(b.categories),
		}
	}
	return out
}

func (a *Aggregator) historicalContext(day time.Time) domain.HistoricalContext {
	ctx := domain.HistoricalContext{}

	if rev, ok := a.dayRevenue(day.AddDate(-1, 0, 0)); ok {
		ctx.SameDayLastYear = &rev
	}

	if avg, median, ok := a.windowStats(day, 7, nil); ok {
		ctx.SevenDayAvg = &avg
		ctx.SevenDayMedian = &median
	}
	if avg, median, ok := a.windowStats(day, 30, nil); ok {
		ctx.ThirtyDayAvg = &avg
		ctx.ThirtyDayMedian = &median
	}

	weekday := day.Weekday()
	if _, median, ok := a.windowStats(day, 56, &weekday); ok {
		ctx.WeekdayTypical = &median
	}
	return ctx
}

// windowStats computes mean and median of daily revenue over the trailing
// window (exclusive of the target day), optionally restricted to one weekday.
func (a *Aggregator) windowStats(day time.Time, days int, weekday *time.Weekday) (avg, median float64, ok bool) {
	var revenues []float64
	for i := 1; i <= days; i++ {
		d := day.AddDate(0, 0, -i)
		if weekday != nil && d.Weekday() != *weekday {
			continue
		}
		if rev, exists := a.dayRevenue(d); exists {
			revenues = append(revenues, rev)
		}
	}
	if len(revenues) == 0 {
		return 0, 0, false
	}

	var sum float64
	for _, r := range revenues {
		sum += r
	}
	sort.Float64s(revenues)

	mid := len(revenues) / 2
	if len(revenues)%2 == 0 {
		median = (revenues[mid-1] + revenues[mid]) / 2
	} else {
		median = revenues[mid]
	}
	return sum / float64(len(revenues)), median, true
}

func (a *Aggregator) dayRevenue(day time.Time) (float64, bool) {
	records, ok := a.byDay[domain.DayKey(day)]
	if !ok {
		return 0, false
	}
	var sum float64
	for _, r := range records {
		sum += r.Revenue
	}
	return sum, true
}

func (a *Aggregator) revenueFor(category string, day time.Time) float64 {
	cacheKey := category + "|" + domain.DayKey(day)
	if rev, ok := a.categoryRevenue[cacheKey]; ok {
		return rev
	}
	var sum float64
	for _, r := range a.byDay[domain.DayKey(day)] {
		if r.Category == category {
			sum += r.Revenue
		}
	}
	a.categoryRevenue[cacheKey] = sum
	return sum
}

// growthPct returns the percentage delta vs a prior value, or nil when the
// prior period had no revenue (undefined growth, not infinity).
func growthPct(current, prior float64) *float64 {
	if prior <= 0 {
		return nil
	}
	g := (current - prior) / prior * 100
	return &g
}
