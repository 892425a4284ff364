package match

import "github.com/retailpulse/retailpulse/internal/domain"

// urgencyTables are the fixed severity-to-urgency lookups, one per event
// type. Evaluators read these tables; they never derive urgency ad hoc.
var urgencyTables = map[domain.EventType]map[domain.Severity]domain.Urgency{
	domain.EventHealthEmergency: {
		domain.SeverityCritical: domain.UrgencyImmediate,
		domain.SeverityHigh:     domain.UrgencyImmediate,
		domain.SeverityMedium:   domain.UrgencyWithin24h,
		domain.SeverityLow:      domain.UrgencyWithinWeek,
	},
	domain.EventMajorEvent: {
		domain.SeverityCritical: domain.UrgencyWithin24h,
		domain.SeverityHigh:     domain.UrgencyWithin24h,
		domain.SeverityMedium:   domain.UrgencyWithinWeek,
		domain.SeverityLow:      domain.UrgencyWithinWeek,
	},
	domain.EventWeatherExtreme: {
		domain.SeverityCritical: domain.UrgencyImmediate,
		domain.SeverityHigh:     domain.UrgencyWithin24h,
		domain.SeverityMedium:   domain.UrgencyWithinWeek,
		domain.SeverityLow:      domain.UrgencyWithinWeek,
	},
	domain.EventSupplyDisruption: {
		domain.SeverityCritical: domain.UrgencyWithin24h,
		domain.SeverityHigh:     domain.UrgencyWithin24h,
		domain.SeverityMedium:   domain.UrgencyWithinWeek,
		domain.SeverityLow:      domain.UrgencyWithinMonth,
	},
	domain.EventViralTrend: {
		domain.SeverityCritical: domain.UrgencyWithin24h,
		domain.SeverityHigh:     domain.UrgencyWithin24h,
		domain.SeverityMedium:   domain.UrgencyWithinWeek,
		domain.SeverityLow:      domain.UrgencyWithinWeek,
	},
	domain.EventCompetitorAction: {
		domain.SeverityCritical: domain.UrgencyWithinWeek,
		domain.SeverityHigh:     domain.UrgencyWithinWeek,
		domain.SeverityMedium:   domain.UrgencyWithinMonth,
		domain.SeverityLow:      domain.UrgencyWithinMonth,
	},
	domain.EventRegulatoryChange: {
		domain.SeverityCritical: domain.UrgencyWithinWeek,
		domain.SeverityHigh:     domain.UrgencyWithinWeek,
		domain.SeverityMedium:   domain.UrgencyWithinMonth,
		domain.SeverityLow:      domain.UrgencyWithinMonth,
	},
	domain.EventEconomicShock: {
		domain.SeverityCritical: domain.UrgencyWithinWeek,
		domain.SeverityHigh:     domain.UrgencyWithinWeek,
		domain.SeverityMedium:   domain.UrgencyWithinMonth,
		domain.SeverityLow:      domain.UrgencyWithinMonth,
	},
}

// urgencyFor looks up the fixed urgency for the pair, defaulting to low for
// unmapped combinations.
func urgencyFor(et domain.EventType, severity domain.Severity) domain.Urgency {
	if table, ok := urgencyTables[et]; ok {
		if u, ok := table[severity]; ok {
			return u
		}
	}
	return domain.UrgencyLow
}
