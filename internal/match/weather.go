package match

import (
	"fmt"
	"strings"

	"github.com/retailpulse/retailpulse/internal/domain"
)

// evaluateWeatherExtreme alerts when the event severity is high or critical
// and at least one store is exposed, either inside the wide proximity
// radius of the event coordinate or named in an affected area.
func evaluateWeatherExtreme(e domain.DetectedEvent, bc *domain.BusinessContext, ev Evidence) domain.MatchDecision {
	conf := newConfidence()
	decision := domain.MatchDecision{
		Severity:   e.Severity,
		Urgency:    urgencyFor(domain.EventWeatherExtreme, e.Severity),
		KeyMetrics: make(map[string]float64),
	}

	if !e.Severity.AtLeast(domain.SeverityHigh) {
		decision.Reasoning = append(decision.Reasoning,
			fmt.Sprintf("weather severity %q below the high threshold", e.Severity))
		decision.Confidence = conf.score()
		return decision
	}
	decision.Reasoning = append(decision.Reasoning,
		fmt.Sprintf("severe weather event: %s", e.Severity))
	conf.add(0.1)

	exposed := exposedStores(e, bc)
	if len(exposed) == 0 {
		decision.Reasoning = append(decision.Reasoning,
			fmt.Sprintf("no store inside the %.0f km radius or the affected areas", bc.Thresholds.Proximity.LowKm))
		decision.Confidence = conf.score()
		return decision
	}
	decision.AffectedLocations = exposed
	decision.KeyMetrics["exposed_stores"] = float64(len(exposed))
	decision.Reasoning = append(decision.Reasoning,
		fmt.Sprintf("%d of %d stores exposed: %s", len(exposed), len(bc.Stores), strings.Join(exposed, ", ")))
	conf.add(0.1)

	decision.AffectedCategories = matchedCategories(e, bc)

	multiplier := bc.Thresholds.DemandMultiplier(domain.EventWeatherExtreme)
	if len(decision.AffectedCategories) > 0 && ev.HasInventory(decision.AffectedCategories) {
		stock, rate := ev.inventoryPosition(decision.AffectedCategories)
		supply := SupplyAtRate(stock, rate*multiplier)
		if !supply.Infinite {
			decision.KeyMetrics["days_of_supply_elevated"] = supply.Days
		}
		decision.Reasoning = append(decision.Reasoning,
			fmt.Sprintf("days of supply on weather categories at %.1fx demand = %s", multiplier, supply))
		if supply.Below(bc.Thresholds.DaysOfSupplyFloor) {
			conf.add(0.1)
		}
	}

	decision.AlertNeeded = true
	decision.Confidence = conf.score()
	return decision
}

// exposedStores resolves which stores a weather event touches: proximity to
// the event coordinate when one exists, plus name matches against the
// event's affected areas. Both paths contribute; duplicates collapse.
func exposedStores(e domain.DetectedEvent, bc *domain.BusinessContext) []string {
	seen := make(map[string]bool)
	var exposed []string

	if e.Coordinate != nil {
		for _, sd := range StoresWithin(bc.Stores, *e.Coordinate, bc.Thresholds.Proximity.LowKm) {
			if !seen[sd.Store.Name] {
				exposed = append(exposed, sd.Store.Name)
				seen[sd.Store.Name] = true
			}
		}
	}

	for _, area := range e.AffectedAreas {
		lower := strings.ToLower(area)
		for _, s := range bc.Stores {
			name := strings.ToLower(s.Name)
			if !seen[s.Name] && (strings.Contains(name, lower) || strings.Contains(lower, name)) {
				exposed = append(exposed, s.Name)
				seen[s.Name] = true
			}
		}
	}
	return exposed
}
