package domain

// StoreLocation is a geo-located store supplied by the host.
type StoreLocation struct {
	Name       string     `json:"name" yaml:"name"`
	Coordinate Coordinate `json:"coordinate" yaml:"coordinate"`
}

// Supplier binds a supplier name to the categories and products it serves.
type Supplier struct {
	Name       string   `json:"name" yaml:"name"`
	Categories []string `json:"categories" yaml:"categories"`
	Products   []string `json:"products,omitempty" yaml:"products,omitempty"`
}

// ProximityRadii are the distance tiers, in kilometres, used by geo matching.
type ProximityRadii struct {
	HighKm     float64 `json:"high_impact_km" yaml:"high_impact_km"`
	ModerateKm float64 `json:"moderate_impact_km" yaml:"moderate_impact_km"`
	LowKm      float64 `json:"low_impact_km" yaml:"low_impact_km"`
}

// AttendanceTiers grade expected crowd sizes for major events.
type AttendanceTiers struct {
	High     int `json:"high_impact" yaml:"high_impact"`
	Moderate int `json:"moderate_impact" yaml:"moderate_impact"`
	Low      int `json:"low_impact" yaml:"low_impact"`
}

// Thresholds is the configurable rule surface consumed by the matcher and
// the feature pipeline. The demand multipliers are business assumptions, not
// validated constants, which is why they live in configuration.
type Thresholds struct {
	Proximity  ProximityRadii  `json:"proximity" yaml:"proximity"`
	Attendance AttendanceTiers `json:"attendance" yaml:"attendance"`

	BaselineWindowDays int `json:"baseline_window_days" yaml:"baseline_window_days"`
	MinHistoryDays     int `json:"min_history_days" yaml:"min_history_days"`

	// DaysOfSupplyFloor is the days-of-cover under which an inventory
	// position is considered at risk.
	DaysOfSupplyFloor float64 `json:"days_of_supply_floor" yaml:"days_of_supply_floor"`

	// SupplierShareFloorPct is the minimum revenue share for a supplier
	// disruption to be actionable.
	SupplierShareFloorPct float64 `json:"supplier_share_floor_pct" yaml:"supplier_share_floor_pct"`

	// DemandMultipliers scale baseline consumption per event type when
	// estimating elevated demand. Keys are EventType strings.
	DemandMultipliers map[EventType]float64 `json:"demand_multipliers" yaml:"demand_multipliers"`
}

// DemandMultiplier returns the configured elevated-demand multiplier for an
// event type, defaulting to 2.0 when none is configured.
func (t Thresholds) DemandMultiplier(et EventType) float64 {
	if m, ok := t.DemandMultipliers[et]; ok && m > 0 {
		return m
	}
	return 2.0
}

// KeywordRule maps free-text mentions to a product category. Rules are data,
// loaded as configuration, so evaluators stay testable independently of any
// particular keyword list.
type KeywordRule struct {
	Keywords []string `json:"keywords" yaml:"keywords"`
	Category string   `json:"category" yaml:"category"`
}

// KeywordTable holds keyword rules per event type.
type KeywordTable map[EventType][]KeywordRule

// BusinessContext is the static reference data an evaluation runs against.
type BusinessContext struct {
	Stores     []StoreLocation `json:"stores" yaml:"stores"`
	Categories []string        `json:"categories" yaml:"categories"`
	Suppliers  []Supplier      `json:"suppliers" yaml:"suppliers"`
	Thresholds Thresholds      `json:"thresholds" yaml:"thresholds"`
	Keywords   KeywordTable    `json:"keywords" yaml:"keywords"`
}

// StocksCategory reports whether the catalogue carries the category.
func (c *BusinessContext) StocksCategory(category string) bool {
	for _, cat := range c.Categories {
		if cat == category {
			return true
		}
	}
	return false
}

// SupplierByName resolves a supplier from the graph.
func (c *BusinessContext) SupplierByName(name string) (Supplier, bool) {
	for _, s := range c.Suppliers {
		if s.Name == name {
			return s, true
		}
	}
	return Supplier{}, false
}

// StoreNames lists every store name in catalogue order.
func (c *BusinessContext) StoreNames() []string {
	names := make([]string, 0, len(c.Stores))
	for _, s := range c.Stores {
		names = append(names, s.Name)
	}
	return names
}

// DefaultThresholds returns the production defaults used when a host supplies
// no overrides.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Proximity: ProximityRadii{
			HighKm:     1.0,
			ModerateKm: 3.0,
			LowKm:      10.0,
		},
		Attendance: AttendanceTiers{
			High:     10000,
			Moderate: 5000,
			Low:      1000,
		},
		BaselineWindowDays:    30,
		MinHistoryDays:        10,
		DaysOfSupplyFloor:     5.0,
		SupplierShareFloorPct: 2.0,
		DemandMultipliers: map[EventType]float64{
			EventHealthEmergency: 3.0,
			EventMajorEvent:      2.0,
			EventWeatherExtreme:  2.5,
			EventViralTrend:      4.5,
		},
	}
}
