package match

import (
	"fmt"

	"github.com/retailpulse/retailpulse/internal/domain"
)

// evaluateCompetitorAction alerts when the competitor activity is at least
// medium severity and sits within the moderate radius of a store.
func evaluateCompetitorAction(e domain.DetectedEvent, bc *domain.BusinessContext, _ Evidence) domain.MatchDecision {
	conf := newConfidence()
	decision := domain.MatchDecision{
		Severity:   e.Severity,
		Urgency:    urgencyFor(domain.EventCompetitorAction, e.Severity),
		KeyMetrics: make(map[string]float64),
	}

	if !e.Severity.AtLeast(domain.SeverityMedium) {
		decision.Reasoning = append(decision.Reasoning,
			fmt.Sprintf("competitor action severity %q below the medium threshold", e.Severity))
		decision.Confidence = conf.score()
		return decision
	}
	decision.Reasoning = append(decision.Reasoning,
		fmt.Sprintf("competitor action severity: %s", e.Severity))

	if e.Coordinate == nil {
		decision.Reasoning = append(decision.Reasoning,
			"no resolved event coordinate, proximity to stores cannot be established")
		decision.Confidence = conf.score()
		return decision
	}

	radius := bc.Thresholds.Proximity.ModerateKm
	within := StoresWithin(bc.Stores, *e.Coordinate, radius)
	if len(within) == 0 {
		decision.Reasoning = append(decision.Reasoning,
			fmt.Sprintf("no store within %.0f km of the competitor location", radius))
		decision.Confidence = conf.score()
		return decision
	}

	decision.AffectedLocations = storeNames(within)
	decision.KeyMetrics["nearest_store_km"] = within[0].DistanceKm
	decision.KeyMetrics["stores_in_radius"] = float64(len(within))
	decision.Reasoning = append(decision.Reasoning,
		fmt.Sprintf("%d stores within %.0f km, nearest %s at %.2f km",
			len(within), radius, within[0].Store.Name, within[0].DistanceKm))
	conf.add(0.1)

	decision.AlertNeeded = true
	decision.Confidence = conf.score()
	return decision
}
