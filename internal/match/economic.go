package match

import (
	"fmt"

	"github.com/retailpulse/retailpulse/internal/anomaly"
	"github.com/retailpulse/retailpulse/internal/domain"
)

// evaluateEconomicShock alerts when a critical-severity shock coincides with
// demand already falling in the cached features: total revenue at or below
// the drought multiple of its baseline mean, or a z-score of -2 or lower.
func evaluateEconomicShock(e domain.DetectedEvent, bc *domain.BusinessContext, ev Evidence) domain.MatchDecision {
	conf := newConfidence()
	decision := domain.MatchDecision{
		Severity:   e.Severity,
		Urgency:    urgencyFor(domain.EventEconomicShock, e.Severity),
		KeyMetrics: make(map[string]float64),
	}

	if e.Severity != domain.SeverityCritical {
		decision.Reasoning = append(decision.Reasoning,
			fmt.Sprintf("economic shock severity %q below critical, monitoring only", e.Severity))
		decision.Confidence = conf.score()
		return decision
	}
	decision.Reasoning = append(decision.Reasoning, "critical economic shock reported")
	conf.add(0.1)

	if ev.Latest == nil || ev.Baseline == nil {
		decision.Reasoning = append(decision.Reasoning,
			"no cached features or baseline to corroborate a demand impact")
		decision.Confidence = conf.score()
		return decision
	}

	observed := ev.Latest.Totals.Revenue
	stats := ev.Baseline.TotalRevenue

	drought := anomaly.DetectDrought(observed, stats.Mean)
	z := anomaly.ZScore(observed, stats.Mean, stats.Std)
	decision.KeyMetrics["total_revenue"] = observed
	decision.KeyMetrics["baseline_mean"] = stats.Mean
	decision.KeyMetrics["revenue_z"] = z
	if drought.Baseline != 0 {
		decision.KeyMetrics["revenue_multiple"] = drought.Multiplier
	}

	switch {
	case drought.Detected:
		decision.Reasoning = append(decision.Reasoning,
			fmt.Sprintf("revenue drought: %.0f is %.2fx of baseline mean %.0f", observed, drought.Multiplier, stats.Mean))
		conf.add(0.1)
	case z <= -2:
		decision.Reasoning = append(decision.Reasoning,
			fmt.Sprintf("revenue depressed: z = %.2f against baseline mean %.0f", z, stats.Mean))
		conf.add(0.1)
	default:
		decision.Reasoning = append(decision.Reasoning,
			fmt.Sprintf("no demand impact visible: revenue %.0f, z = %.2f", observed, z))
		decision.Confidence = conf.score()
		return decision
	}

	decision.AlertNeeded = true
	decision.AffectedLocations = bc.StoreNames()
	decision.Confidence = conf.score()
	return decision
}

// evaluateOther never alerts; unclassified events are recorded and left to
// human review.
func evaluateOther(e domain.DetectedEvent, _ *domain.BusinessContext, _ Evidence) domain.MatchDecision {
	return domain.MatchDecision{
		Severity:   e.Severity,
		Urgency:    domain.UrgencyLow,
		Confidence: 0.5,
		Reasoning: []string{
			fmt.Sprintf("event type %q has no evaluation rules, no alert generated", e.Type),
		},
	}
}
