package match

import (
	"fmt"

	"github.com/retailpulse/retailpulse/internal/domain"
)

// evaluateMajorEvent alerts when expected attendance reaches the moderate
// tier and at least one store sits within the moderate proximity radius of
// the event coordinate. The high tier (attendance or the tight radius)
// raises severity.
func evaluateMajorEvent(e domain.DetectedEvent, bc *domain.BusinessContext, ev Evidence) domain.MatchDecision {
	conf := newConfidence()
	decision := domain.MatchDecision{
		Severity:   e.Severity,
		Urgency:    urgencyFor(domain.EventMajorEvent, e.Severity),
		KeyMetrics: make(map[string]float64),
	}

	tiers := bc.Thresholds.Attendance
	attendance := 0
	if e.ExpectedAttendance != nil {
		attendance = *e.ExpectedAttendance
	}
	decision.KeyMetrics["expected_attendance"] = float64(attendance)

	switch {
	case attendance >= tiers.High:
		decision.Reasoning = append(decision.Reasoning,
			fmt.Sprintf("large event: %d expected attendees (high tier at %d)", attendance, tiers.High))
		conf.add(0.15)
	case attendance >= tiers.Moderate:
		decision.Reasoning = append(decision.Reasoning,
			fmt.Sprintf("medium event: %d expected attendees (moderate tier at %d)", attendance, tiers.Moderate))
		conf.add(0.1)
	default:
		decision.Reasoning = append(decision.Reasoning,
			fmt.Sprintf("small event: %d expected attendees, below moderate tier of %d", attendance, tiers.Moderate))
		decision.Confidence = conf.score()
		return decision
	}

	if e.Coordinate == nil {
		decision.Reasoning = append(decision.Reasoning,
			"no resolved event coordinate, proximity to stores cannot be established")
		decision.Confidence = conf.score()
		return decision
	}

	radii := bc.Thresholds.Proximity
	within := StoresWithin(bc.Stores, *e.Coordinate, radii.ModerateKm)
	if len(within) == 0 {
		decision.Reasoning = append(decision.Reasoning,
			fmt.Sprintf("no store within %.0f km of the event coordinate", radii.ModerateKm))
		decision.Confidence = conf.score()
		return decision
	}

	nearest := within[0]
	decision.AffectedLocations = storeNames(within)
	decision.KeyMetrics["nearest_store_km"] = nearest.DistanceKm
	decision.KeyMetrics["stores_in_radius"] = float64(len(within))
	decision.Reasoning = append(decision.Reasoning,
		fmt.Sprintf("%d stores within %.0f km, nearest %s at %.2f km",
			len(within), radii.ModerateKm, nearest.Store.Name, nearest.DistanceKm))
	conf.add(0.1)

	severity := domain.SeverityMedium
	if attendance >= tiers.High || nearest.DistanceKm <= radii.HighKm {
		severity = domain.SeverityHigh
		decision.Reasoning = append(decision.Reasoning,
			fmt.Sprintf("high impact tier: attendance %d vs %d or nearest store %.2f km vs %.0f km",
				attendance, tiers.High, nearest.DistanceKm, radii.HighKm))
	}

	decision.AffectedCategories = matchedCategories(e, bc)

	multiplier := bc.Thresholds.DemandMultiplier(domain.EventMajorEvent)
	if len(decision.AffectedCategories) > 0 && ev.HasInventory(decision.AffectedCategories) {
		stock, rate := ev.inventoryPosition(decision.AffectedCategories)
		supply := SupplyAtRate(stock, rate*multiplier)
		if !supply.Infinite {
			decision.KeyMetrics["days_of_supply_elevated"] = supply.Days
		}
		decision.Reasoning = append(decision.Reasoning,
			fmt.Sprintf("days of supply on event categories at %.1fx demand = %s", multiplier, supply))
	}

	decision.AlertNeeded = true
	decision.Severity = severity
	decision.Urgency = urgencyFor(domain.EventMajorEvent, severity)
	decision.Confidence = conf.score()
	return decision
}
