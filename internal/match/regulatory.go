package match

import (
	"fmt"
	"strings"

	"github.com/retailpulse/retailpulse/internal/domain"
)

// evaluateRegulatoryChange alerts when the change touches a stocked category
// and is high or critical severity; lower severities are noted only.
func evaluateRegulatoryChange(e domain.DetectedEvent, bc *domain.BusinessContext, _ Evidence) domain.MatchDecision {
	conf := newConfidence()
	decision := domain.MatchDecision{
		Severity:   e.Severity,
		Urgency:    urgencyFor(domain.EventRegulatoryChange, e.Severity),
		KeyMetrics: make(map[string]float64),
	}

	matched := matchedCategories(e, bc)
	if len(matched) == 0 {
		decision.Reasoning = append(decision.Reasoning,
			"regulatory change does not touch any stocked category")
		decision.Confidence = conf.score()
		return decision
	}
	decision.AffectedCategories = matched
	decision.KeyMetrics["matched_categories"] = float64(len(matched))
	decision.Reasoning = append(decision.Reasoning,
		fmt.Sprintf("stocked categories in scope (%d): %s", len(matched), strings.Join(matched, ", ")))
	conf.add(0.1)

	if !e.Severity.AtLeast(domain.SeverityHigh) {
		decision.Reasoning = append(decision.Reasoning,
			fmt.Sprintf("regulatory severity %q below the high threshold", e.Severity))
		decision.Confidence = conf.score()
		return decision
	}
	decision.Reasoning = append(decision.Reasoning,
		fmt.Sprintf("high severity regulatory change: %s", e.Severity))
	conf.add(0.1)

	decision.AffectedLocations = bc.StoreNames()
	decision.AlertNeeded = true
	decision.Confidence = conf.score()
	return decision
}
