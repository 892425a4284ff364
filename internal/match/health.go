package match

import (
	"fmt"
	"strings"

	"github.com/retailpulse/retailpulse/internal/domain"
)

// evaluateHealthEmergency alerts when a stocked category is implicated, the
// event severity is high or critical, and days-of-supply at elevated demand
// sits below the configured floor. Without inventory evidence the supply
// condition cannot be assessed and the decision falls back to the first two
// conditions, with the gap recorded in the reasoning.
func evaluateHealthEmergency(e domain.DetectedEvent, bc *domain.BusinessContext, ev Evidence) domain.MatchDecision {
	conf := newConfidence()
	decision := domain.MatchDecision{
		Severity:   e.Severity,
		Urgency:    urgencyFor(domain.EventHealthEmergency, e.Severity),
		KeyMetrics: make(map[string]float64),
	}

	matched := matchedCategories(e, bc)
	if len(matched) == 0 {
		decision.Reasoning = append(decision.Reasoning,
			fmt.Sprintf("no stocked product category matches the event keywords (0 of %d stocked categories)", len(bc.Categories)))
		decision.Confidence = conf.score()
		return decision
	}
	decision.AffectedCategories = matched
	decision.KeyMetrics["matched_categories"] = float64(len(matched))
	decision.Reasoning = append(decision.Reasoning,
		fmt.Sprintf("stocked categories implicated (%d): %s", len(matched), strings.Join(matched, ", ")))
	conf.add(0.1)

	if !e.Severity.AtLeast(domain.SeverityHigh) {
		decision.Reasoning = append(decision.Reasoning,
			fmt.Sprintf("event severity %q below the high threshold, monitoring only", e.Severity))
		decision.Confidence = conf.score()
		return decision
	}
	decision.Reasoning = append(decision.Reasoning,
		fmt.Sprintf("high severity event: %s", e.Severity))
	conf.add(0.1)

	multiplier := bc.Thresholds.DemandMultiplier(domain.EventHealthEmergency)
	floor := bc.Thresholds.DaysOfSupplyFloor

	supplyOK := true
	if ev.HasInventory(matched) {
		stock, rate := ev.inventoryPosition(matched)
		elevated := rate * multiplier
		supply := SupplyAtRate(stock, elevated)

		decision.KeyMetrics["stock_units"] = stock
		decision.KeyMetrics["elevated_daily_consumption"] = elevated
		decision.KeyMetrics["demand_multiplier"] = multiplier
		if !supply.Infinite {
			decision.KeyMetrics["days_of_supply_elevated"] = supply.Days
		}

		if supply.Below(floor) {
			decision.Reasoning = append(decision.Reasoning,
				fmt.Sprintf("days of supply at elevated demand = %s (%.0f units at %.1fx normal rate), below %.0f-day floor",
					supply, stock, multiplier, floor))
			conf.add(0.1)
		} else {
			supplyOK = false
			decision.Reasoning = append(decision.Reasoning,
				fmt.Sprintf("days of supply at elevated demand = %s, at or above %.0f-day floor, stock position adequate",
					supply, floor))
		}
	} else {
		decision.Reasoning = append(decision.Reasoning,
			"no inventory evidence for matched categories, supply position not assessed")
		conf.add(-0.1)
	}

	if !supplyOK {
		decision.Confidence = conf.score()
		return decision
	}

	if e.Coordinate != nil {
		within := StoresWithin(bc.Stores, *e.Coordinate, bc.Thresholds.Proximity.LowKm)
		decision.AffectedLocations = storeNames(within)
		decision.Reasoning = append(decision.Reasoning,
			fmt.Sprintf("%d of %d stores within %.0f km of the event", len(within), len(bc.Stores), bc.Thresholds.Proximity.LowKm))
		if len(within) > 0 {
			conf.add(0.1)
		}
	} else {
		// Health emergencies without a point location affect the whole
		// market area.
		decision.AffectedLocations = bc.StoreNames()
		decision.Reasoning = append(decision.Reasoning,
			fmt.Sprintf("no event coordinate, treating all %d stores as in scope", len(bc.Stores)))
	}

	decision.AlertNeeded = true
	decision.Severity = domain.SeverityCritical
	decision.Urgency = urgencyFor(domain.EventHealthEmergency, decision.Severity)
	decision.Confidence = conf.score()
	return decision
}
