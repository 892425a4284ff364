package match

import "fmt"

// DaysOfSupply is a time-to-stockout estimate: current stock divided by a
// daily consumption rate. Infinite marks a zero consumption rate, under
// which stock never depletes; it is a valid answer, not an error.
type DaysOfSupply struct {
	Days     float64 `json:"days"`
	Infinite bool    `json:"infinite,omitempty"`
}

// SupplyAtRate computes days of supply for a stock position at a daily
// consumption rate.
func SupplyAtRate(stockUnits, dailyRate float64) DaysOfSupply {
	if dailyRate == 0 {
		return DaysOfSupply{Infinite: true}
	}
	return DaysOfSupply{Days: stockUnits / dailyRate}
}

// Below reports whether the supply position is under the threshold. An
// infinite supply is never below any threshold.
func (d DaysOfSupply) Below(threshold float64) bool {
	return !d.Infinite && d.Days < threshold
}

func (d DaysOfSupply) String() string {
	if d.Infinite {
		return "infinite"
	}
	return fmt.Sprintf("%.1f", d.Days)
}
