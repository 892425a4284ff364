package domain

// AnomalyClass grades how far a metric sits from its baseline.
type AnomalyClass string

const (
	AnomalyNormal      AnomalyClass = "normal"
	AnomalyMinor       AnomalyClass = "minor_anomaly"
	AnomalySignificant AnomalyClass = "significant_anomaly"
	AnomalyCritical    AnomalyClass = "critical_anomaly"
)

// AtLeast reports whether the class is as severe as min or more.
func (c AnomalyClass) AtLeast(min AnomalyClass) bool {
	return c.rank() >= min.rank()
}

func (c AnomalyClass) rank() int {
	switch c {
	case AnomalyMinor:
		return 1
	case AnomalySignificant:
		return 2
	case AnomalyCritical:
		return 3
	default:
		return 0
	}
}

// DimensionAnomaly scores one dimension (a category or a location) of one day
// against its baseline. Authoritative is false when the backing baseline had
// insufficient history; such dimensions never contribute to IsTrueAnomaly.
type DimensionAnomaly struct {
	Name          string       `json:"name"`
	ZScore        float64      `json:"z_score"`
	Class         AnomalyClass `json:"classification"`
	Observed      float64      `json:"observed"`
	BaselineMean  float64      `json:"baseline_mean"`
	Direction     string       `json:"direction"` // "above" or "below"
	Authoritative bool         `json:"authoritative"`
}

// AnomalyFlags is the anomaly classification attached to a DailyFeatureSet.
type AnomalyFlags struct {
	TotalRevenueZ     *float64     `json:"total_revenue_z,omitempty"`
	TotalRevenueClass AnomalyClass `json:"total_revenue_classification,omitempty"`

	Categories map[string]DimensionAnomaly `json:"category_anomalies,omitempty"`
	Locations  map[string]DimensionAnomaly `json:"location_anomalies,omitempty"`

	HasAnomaly bool `json:"has_anomaly"`

	// IsTrueAnomaly is always the output of TrueAnomaly(); it is never set
	// independently of the per-dimension classifications.
	IsTrueAnomaly bool `json:"is_true_anomaly"`
}

// TrueAnomaly applies the multidimensional validation rule. The anomaly is
// confirmed when either (a) two or more categories are minor or worse, or
// (b) two or more locations are minor or worse, or (c) total daily revenue is
// significant or worse and at least one category or location is minor or
// worse. Dimensions with non-authoritative baselines are excluded. The rule
// exists to suppress single-dimension noise and must not be approximated.
func (f AnomalyFlags) TrueAnomaly() bool {
	categories := countAtLeast(f.Categories, AnomalyMinor)
	locations := countAtLeast(f.Locations, AnomalyMinor)

	if categories >= 2 {
		return true
	}
	if locations >= 2 {
		return true
	}
	if f.TotalRevenueClass.AtLeast(AnomalySignificant) && categories+locations >= 1 {
		return true
	}
	return false
}

func countAtLeast(dims map[string]DimensionAnomaly, min AnomalyClass) int {
	n := 0
	for _, d := range dims {
		if d.Authoritative && d.Class.AtLeast(min) {
			n++
		}
	}
	return n
}
