package domain

import "time"

// DailyTotals aggregates a whole day across all locations and categories.
// AvgTicket is nil when the day had no transactions.
type DailyTotals struct {
	Revenue          float64  `json:"total_revenue"`
	Units            int      `json:"total_units"`
	Transactions     int      `json:"transaction_count"`
	LineItems        int      `json:"line_items"`
	UniqueProducts   int      `json:"unique_products"`
	UniqueCategories int      `json:"unique_categories"`
	AvgTicket        *float64 `json:"avg_ticket,omitempty"`
}

// CategoryMetrics is one day's activity for a single product category.
// Growth fields are percentage deltas; nil means the prior period had no
// revenue, so growth is undefined rather than infinite.
type CategoryMetrics struct {
	Revenue           float64  `json:"revenue"`
	Units             int      `json:"units"`
	Transactions      int      `json:"transactions"`
	UniqueProducts    int      `json:"unique_products"`
	AvgPricePerUnit   *float64 `json:"avg_price_per_unit,omitempty"`
	GrowthVsYesterday *float64 `json:"growth_vs_yesterday,omitempty"`
	GrowthVsLastYear  *float64 `json:"growth_vs_last_year,omitempty"`
}

// LocationMetrics is one day's activity for a single store.
// AvgTicket is nil when the store recorded no transactions.
type LocationMetrics struct {
	Revenue         float64  `json:"revenue"`
	Units           int      `json:"units"`
	Transactions    int      `json:"transactions"`
	AvgTicket       *float64 `json:"avg_ticket,omitempty"`
	VsNetworkAvgPct *float64 `json:"vs_network_avg,omitempty"`
	StockUnits      *int     `json:"current_stock_units,omitempty"`
}

// SupplierMetrics tracks a supplier's share of one day's revenue. Only
// suppliers above the aggregator's share floor are retained.
type SupplierMetrics struct {
	Revenue         float64 `json:"revenue"`
	RevenueSharePct float64 `json:"revenue_percentage"`
	ProductCount    int     `json:"product_count"`
	CategoryCount   int     `json:"category_count"`
}

// HistoricalContext situates a day against its own trailing history.
// Nil fields mean the corresponding window had no populated days.
type HistoricalContext struct {
	SevenDayAvg     *float64 `json:"seven_day_average,omitempty"`
	SevenDayMedian  *float64 `json:"seven_day_median,omitempty"`
	ThirtyDayAvg    *float64 `json:"thirty_day_average,omitempty"`
	ThirtyDayMedian *float64 `json:"thirty_day_median,omitempty"`
	WeekdayTypical  *float64 `json:"weekday_typical,omitempty"`
	SameDayLastYear *float64 `json:"same_day_last_year,omitempty"`
}

// DailyFeatureSet is the per-date derived artifact produced by the aggregator.
// It is immutable after creation: re-aggregation supersedes the whole value.
type DailyFeatureSet struct {
	Date        time.Time `json:"date"`
	GeneratedAt time.Time `json:"generated_at"`

	// NoData marks a legitimate zero-sales day (store closed); it is a
	// representable state, never an error.
	NoData bool `json:"no_data_for_date,omitempty"`

	Totals     DailyTotals                `json:"daily_totals"`
	ByCategory map[string]CategoryMetrics `json:"by_category"`
	ByLocation map[string]LocationMetrics `json:"by_location"`
	BySupplier map[string]SupplierMetrics `json:"by_supplier"`
	Historical HistoricalContext          `json:"historical_context"`
	Anomalies  AnomalyFlags               `json:"anomalies"`
}
