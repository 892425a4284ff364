package match

import (
	"fmt"

	"github.com/retailpulse/retailpulse/internal/anomaly"
	"github.com/retailpulse/retailpulse/internal/domain"
)

// evaluateViralTrend alerts when the trend maps to a stocked category and is
// corroborated, either by an observed surge on that category in the latest
// cached features or by high extractor confidence in the event itself.
func evaluateViralTrend(e domain.DetectedEvent, bc *domain.BusinessContext, ev Evidence) domain.MatchDecision {
	conf := newConfidence()
	decision := domain.MatchDecision{
		Severity:   e.Severity,
		Urgency:    urgencyFor(domain.EventViralTrend, e.Severity),
		KeyMetrics: make(map[string]float64),
	}

	matched := matchedCategories(e, bc)
	if len(matched) == 0 {
		decision.Reasoning = append(decision.Reasoning,
			"trend does not map to any stocked category")
		decision.Confidence = conf.score()
		return decision
	}
	decision.AffectedCategories = matched
	decision.KeyMetrics["matched_categories"] = float64(len(matched))
	decision.Reasoning = append(decision.Reasoning,
		fmt.Sprintf("trend maps to %d stocked categories", len(matched)))
	conf.add(0.1)

	surged, surge, surgedCategory := observedSurge(matched, ev)
	corroborated := surged
	switch {
	case surged:
		decision.KeyMetrics["surge_multiple"] = surge.Multiplier
		decision.Reasoning = append(decision.Reasoning,
			fmt.Sprintf("surge observed on %s: %.0f vs baseline mean %.0f (%.1fx)",
				surgedCategory, surge.Observed, surge.Baseline, surge.Multiplier))
		conf.add(0.15)
	case e.Confidence == domain.ConfidenceHigh:
		corroborated = true
		decision.Reasoning = append(decision.Reasoning,
			"no surge in cached sales yet, corroborated by high extractor confidence")
		conf.add(0.05)
	default:
		decision.Reasoning = append(decision.Reasoning,
			fmt.Sprintf("no surge in cached sales and extractor confidence %q, not corroborated", e.Confidence))
	}

	if !corroborated {
		decision.Confidence = conf.score()
		return decision
	}

	multiplier := bc.Thresholds.DemandMultiplier(domain.EventViralTrend)
	if ev.HasInventory(matched) {
		stock, rate := ev.inventoryPosition(matched)
		supply := SupplyAtRate(stock, rate*multiplier)
		if !supply.Infinite {
			decision.KeyMetrics["days_of_supply_elevated"] = supply.Days
		}
		decision.Reasoning = append(decision.Reasoning,
			fmt.Sprintf("days of supply on trending categories at %.1fx demand = %s", multiplier, supply))
	}

	severity := domain.SeverityMedium
	if surged {
		severity = domain.SeverityHigh
	}

	decision.AlertNeeded = true
	decision.AffectedLocations = bc.StoreNames()
	decision.Severity = severity
	decision.Urgency = urgencyFor(domain.EventViralTrend, severity)
	decision.Confidence = conf.score()
	return decision
}

// observedSurge checks each matched category's latest revenue against its
// baseline mean and returns the first surge found.
func observedSurge(categories []string, ev Evidence) (bool, anomaly.SurgeResult, string) {
	if ev.Latest == nil || ev.Baseline == nil {
		return false, anomaly.SurgeResult{}, ""
	}
	for _, c := range categories {
		metrics, ok := ev.Latest.ByCategory[c]
		if !ok {
			continue
		}
		stats, ok := ev.Baseline.CategoryStats(c)
		if !ok {
			continue
		}
		if surge := anomaly.DetectSurge(metrics.Revenue, stats.Mean); surge.Detected {
			return true, surge, c
		}
	}
	return false, anomaly.SurgeResult{}, ""
}
