package match

import (
	"fmt"
	"strings"

	"github.com/retailpulse/retailpulse/internal/domain"
)

// evaluateSupplyDisruption alerts when the event names a supplier from the
// graph and that supplier's latest revenue share clears the configured
// floor. Days-of-cover on the supplier's categories at the baseline rate
// drives severity.
func evaluateSupplyDisruption(e domain.DetectedEvent, bc *domain.BusinessContext, ev Evidence) domain.MatchDecision {
	conf := newConfidence()
	decision := domain.MatchDecision{
		Severity:   e.Severity,
		Urgency:    urgencyFor(domain.EventSupplyDisruption, e.Severity),
		KeyMetrics: make(map[string]float64),
	}

	supplier, found := mentionsSupplier(e, bc)
	if !found {
		decision.Reasoning = append(decision.Reasoning,
			fmt.Sprintf("no supplier from the graph (%d suppliers) named in the event", len(bc.Suppliers)))
		decision.Confidence = conf.score()
		return decision
	}
	decision.Reasoning = append(decision.Reasoning,
		fmt.Sprintf("supplier %q resolved in the supplier graph", supplier.Name))
	conf.add(0.1)

	floor := bc.Thresholds.SupplierShareFloorPct
	share := 0.0
	if ev.Latest != nil {
		if sm, ok := ev.Latest.BySupplier[supplier.Name]; ok {
			share = sm.RevenueSharePct
		}
	}
	decision.KeyMetrics["revenue_share_pct"] = share

	if share < floor {
		decision.Reasoning = append(decision.Reasoning,
			fmt.Sprintf("supplier revenue share %.2f%% below the %.2f%% floor, exposure not actionable", share, floor))
		decision.Confidence = conf.score()
		return decision
	}
	decision.Reasoning = append(decision.Reasoning,
		fmt.Sprintf("supplier revenue share %.2f%% at or above the %.2f%% floor", share, floor))
	conf.add(0.1)

	stocked := make([]string, 0, len(supplier.Categories))
	for _, c := range supplier.Categories {
		if bc.StocksCategory(c) {
			stocked = append(stocked, c)
		}
	}
	decision.AffectedCategories = stocked
	decision.AffectedLocations = bc.StoreNames()

	severity := domain.SeverityMedium
	if ev.HasInventory(stocked) {
		stock, rate := ev.inventoryPosition(stocked)
		cover := SupplyAtRate(stock, rate)
		if !cover.Infinite {
			decision.KeyMetrics["days_of_cover_baseline"] = cover.Days
		}

		floorDays := bc.Thresholds.DaysOfSupplyFloor
		switch {
		case cover.Below(floorDays):
			severity = domain.SeverityCritical
		case cover.Below(2 * floorDays):
			severity = domain.SeverityHigh
		}
		decision.Reasoning = append(decision.Reasoning,
			fmt.Sprintf("days of cover at baseline rate on %s = %s (severity floor %.0f days)",
				strings.Join(stocked, ", "), cover, floorDays))
		conf.add(0.1)
	} else {
		decision.Reasoning = append(decision.Reasoning,
			"no inventory evidence for the supplier's categories, severity held at medium")
	}

	decision.AlertNeeded = true
	decision.Severity = severity
	decision.Urgency = urgencyFor(domain.EventSupplyDisruption, severity)
	decision.Confidence = conf.score()
	return decision
}
