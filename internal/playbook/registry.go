package playbook

import "github.com/retailpulse/retailpulse/internal/domain"

// The registry is the full static catalogue. Entries are value copies on
// every Select, so callers can never mutate the catalogue.
var registry = map[domain.EventType]map[Tier]Playbook{
	domain.EventHealthEmergency: {
		TierCritical: healthEmergencyCritical,
		TierModerate: healthEmergencyModerate,
	},
	domain.EventMajorEvent: {
		TierHighImpact:     majorEventHighImpact,
		TierModerateImpact: majorEventModerateImpact,
	},
	domain.EventWeatherExtreme: {
		TierCritical: weatherExtremeCritical,
		TierModerate: weatherExtremeModerate,
	},
	domain.EventSupplyDisruption: {
		TierCritical: supplyDisruptionCritical,
		TierModerate: supplyDisruptionModerate,
	},
	domain.EventViralTrend: {
		TierCritical: viralTrendCritical,
		TierModerate: viralTrendModerate,
	},
}

var healthEmergencyCritical = Playbook{
	ID:          "health_emergency_critical",
	Name:        "Health Emergency - Critical Response",
	Description: "Immediate response to disease outbreak or health crisis affecting relevant product categories",
	Actions: []Action{
		{Priority: PriorityImmediate, Text: "Review current inventory levels for affected OTC categories (Cold & Flu, Analgesics, GIT, etc.)", Responsible: "pharmacy_manager", EstimatedTime: "15 minutes"},
		{Priority: PriorityImmediate, Text: "Calculate days-of-supply at elevated demand (2-3x normal)", Responsible: "inventory_team", EstimatedTime: "30 minutes"},
		{Priority: PriorityImmediate, Text: "Place emergency orders for products with <7 days supply at elevated demand", Responsible: "inventory_team", EstimatedTime: "1 hour"},
		{Priority: PriorityToday, Text: "Contact key suppliers to confirm stock availability and expedited delivery", Responsible: "pharmacy_manager", EstimatedTime: "1 hour"},
		{Priority: PriorityToday, Text: "Set up prominent in-store displays for relevant health products", Responsible: "all_staff", EstimatedTime: "30 minutes"},
		{Priority: PriorityToday, Text: "Brief staff on symptoms, recommended products, and customer guidance", Responsible: "pharmacy_manager", EstimatedTime: "15 minutes"},
		{Priority: PriorityThisWeek, Text: "Monitor daily sales trends and adjust orders accordingly", Responsible: "inventory_team", EstimatedTime: "ongoing"},
	},
	MonitoringMetrics: []string{
		"Daily sales by affected category",
		"Stock levels (units and days-of-supply)",
		"Supplier delivery times",
		"Customer inquiries/complaints",
		"Stockout incidents",
	},
	SuccessCriteria: []string{
		"No stockouts of critical products",
		"Maintained >5 days supply throughout crisis",
		"Positive customer feedback on product availability",
		"Sales captured vs. estimated demand >80%",
	},
	EscalationCriteria: []string{
		"Stockouts occur in any critical category",
		"Sales spike >200% vs baseline",
		"Supplier delivery delays >2 days",
	},
}

var healthEmergencyModerate = Playbook{
	ID:          "health_emergency_moderate",
	Name:        "Health Emergency - Standard Response",
	Description: "Proactive response to health alerts with adequate current inventory",
	Actions: []Action{
		{Priority: PriorityToday, Text: "Review inventory levels for potentially affected categories", Responsible: "inventory_team", EstimatedTime: "30 minutes"},
		{Priority: PriorityToday, Text: "Increase next regular order by 25-50% for relevant products", Responsible: "inventory_team", EstimatedTime: "30 minutes"},
		{Priority: PriorityThisWeek, Text: "Monitor sales trends daily for early warning signs", Responsible: "inventory_team", EstimatedTime: "15 minutes daily"},
		{Priority: PriorityThisWeek, Text: "Ensure staff awareness of potential increased demand", Responsible: "pharmacy_manager", EstimatedTime: "10 minutes"},
	},
	MonitoringMetrics: []string{
		"Daily sales by category",
		"Week-over-week growth rates",
		"Customer inquiries",
	},
	SuccessCriteria: []string{
		"Proactive inventory build-up completed",
		"No emergency orders needed",
		"Smooth handling of any demand increase",
	},
	EscalationCriteria: []string{
		"Sales spike >200% vs baseline",
		"Stockouts in any monitored category",
	},
}

var majorEventHighImpact = Playbook{
	ID:          "major_event_high_impact",
	Name:        "Major Event - High Impact Response",
	Description: "Response to large events near store locations (>10,000 attendance)",
	Actions: []Action{
		{Priority: PriorityToday, Text: "Review proximity of event to each store location", Responsible: "pharmacy_manager", EstimatedTime: "15 minutes"},
		{Priority: PriorityToday, Text: "Increase inventory for convenience items: analgesics, first aid, travel-size products", Responsible: "inventory_team", EstimatedTime: "1 hour"},
		{Priority: PriorityToday, Text: "Ensure adequate staffing for event dates (especially evening/weekend events)", Responsible: "pharmacy_manager", EstimatedTime: "30 minutes"},
		{Priority: PriorityThisWeek, Text: "Set up promotional displays for event-relevant products", Responsible: "all_staff", EstimatedTime: "1 hour"},
		{Priority: PriorityThisWeek, Text: "Extend opening hours if event is in evening/night", Responsible: "pharmacy_manager", EstimatedTime: "planning"},
		{Priority: PriorityThisWeek, Text: "Coordinate with security if expecting large crowds", Responsible: "pharmacy_manager", EstimatedTime: "30 minutes"},
	},
	MonitoringMetrics: []string{
		"Foot traffic counts",
		"Transaction volume by hour",
		"Sales lift by category",
		"Staff performance under load",
	},
	SuccessCriteria: []string{
		"No stockouts during event period",
		"Transaction processing times <5 minutes average",
		"Positive customer experience despite crowds",
		"Sales lift >20% vs. normal day",
	},
	EscalationCriteria: []string{
		"Foot traffic exceeds capacity",
		"Transaction processing times >10 minutes",
		"Stockouts of key convenience items",
	},
}

var majorEventModerateImpact = Playbook{
	ID:          "major_event_moderate_impact",
	Name:        "Major Event - Moderate Impact Response",
	Description: "Response to medium-sized events or events at moderate distance",
	Actions: []Action{
		{Priority: PriorityThisWeek, Text: "Slight increase in convenience product inventory (+15-20%)", Responsible: "inventory_team", EstimatedTime: "30 minutes"},
		{Priority: PriorityThisWeek, Text: "Ensure full staffing for event dates (no call-outs)", Responsible: "pharmacy_manager", EstimatedTime: "15 minutes"},
		{Priority: PriorityThisWeek, Text: "Monitor foot traffic and be prepared to extend hours if needed", Responsible: "all_staff", EstimatedTime: "ongoing"},
	},
	MonitoringMetrics: []string{
		"Foot traffic patterns",
		"Sales vs. baseline",
	},
	SuccessCriteria: []string{
		"Maintained stock levels",
		"Adequate staffing coverage",
		"Captured any incremental sales opportunity",
	},
	EscalationCriteria: []string{
		"Foot traffic exceeds capacity",
		"Stockouts of key convenience items",
	},
}

var weatherExtremeCritical = Playbook{
	ID:          "weather_extreme_critical",
	Name:        "Extreme Weather - Critical Response",
	Description: "Response to severe weather warnings affecting store operations and demand",
	Actions: []Action{
		{Priority: PriorityImmediate, Text: "Confirm stock of weather essentials: first aid, cold & flu, batteries, hot beverages", Responsible: "inventory_team", EstimatedTime: "30 minutes"},
		{Priority: PriorityImmediate, Text: "Confirm staff travel arrangements and adjust rotas for affected stores", Responsible: "pharmacy_manager", EstimatedTime: "30 minutes"},
		{Priority: PriorityToday, Text: "Pull forward supplier deliveries ahead of the weather window", Responsible: "inventory_team", EstimatedTime: "1 hour"},
		{Priority: PriorityThisWeek, Text: "Review opening hours against official weather warnings", Responsible: "pharmacy_manager", EstimatedTime: "planning"},
	},
	MonitoringMetrics: []string{
		"Official warning level changes",
		"Stock of weather-sensitive categories",
		"Staff availability",
	},
	SuccessCriteria: []string{
		"Stores adequately stocked before the weather window",
		"No staff safety incidents",
	},
	EscalationCriteria: []string{
		"Warning upgraded to the highest level",
		"Delivery routes closed",
	},
}

var weatherExtremeModerate = Playbook{
	ID:          "weather_extreme_moderate",
	Name:        "Extreme Weather - Standard Response",
	Description: "Proactive preparation for forecast adverse weather",
	Actions: []Action{
		{Priority: PriorityToday, Text: "Review stock of weather-sensitive categories", Responsible: "inventory_team", EstimatedTime: "30 minutes"},
		{Priority: PriorityThisWeek, Text: "Monitor forecast and adjust orders if the warning escalates", Responsible: "inventory_team", EstimatedTime: "15 minutes daily"},
	},
	MonitoringMetrics: []string{
		"Forecast changes",
		"Sales of weather-sensitive categories",
	},
	SuccessCriteria: []string{
		"No weather-driven stockouts",
	},
}

var supplyDisruptionCritical = Playbook{
	ID:          "supply_disruption_critical",
	Name:        "Supply Disruption - Critical Response",
	Description: "Response to a disruption at a supplier carrying material revenue share",
	Actions: []Action{
		{Priority: PriorityImmediate, Text: "Quantify exposure: revenue share and days-of-cover for the affected supplier's categories", Responsible: "inventory_team", EstimatedTime: "30 minutes"},
		{Priority: PriorityImmediate, Text: "Contact the supplier for a delivery outlook and confirmed order status", Responsible: "pharmacy_manager", EstimatedTime: "1 hour"},
		{Priority: PriorityToday, Text: "Identify substitute products and alternative suppliers for at-risk lines", Responsible: "inventory_team", EstimatedTime: "2 hours"},
		{Priority: PriorityThisWeek, Text: "Rebalance stock between stores to cover the thinnest positions", Responsible: "inventory_team", EstimatedTime: "ongoing"},
	},
	MonitoringMetrics: []string{
		"Days-of-cover for affected categories",
		"Supplier delivery confirmations",
		"Substitute product availability",
	},
	SuccessCriteria: []string{
		"No stockouts attributable to the disruption",
		"Substitutes in place for all at-risk lines",
	},
	EscalationCriteria: []string{
		"Days-of-cover falls below 3 days in any affected category",
		"Supplier declares force majeure",
	},
}

var supplyDisruptionModerate = Playbook{
	ID:          "supply_disruption_moderate",
	Name:        "Supply Disruption - Watch Response",
	Description: "Monitoring posture for a disruption with limited current exposure",
	Actions: []Action{
		{Priority: PriorityToday, Text: "Note the disruption against the supplier record and current cover", Responsible: "inventory_team", EstimatedTime: "15 minutes"},
		{Priority: PriorityThisWeek, Text: "Track delivery performance for the supplier daily", Responsible: "inventory_team", EstimatedTime: "10 minutes daily"},
	},
	MonitoringMetrics: []string{
		"Supplier delivery performance",
		"Stock cover on the supplier's categories",
	},
	SuccessCriteria: []string{
		"Disruption resolved without intervention",
	},
}

var viralTrendCritical = Playbook{
	ID:          "viral_trend_critical",
	Name:        "Viral Trend - Capitalize Response",
	Description: "Response to a confirmed demand surge on a trending product or category",
	Actions: []Action{
		{Priority: PriorityImmediate, Text: "Verify stock position on the trending lines across all stores", Responsible: "inventory_team", EstimatedTime: "30 minutes"},
		{Priority: PriorityImmediate, Text: "Place expedited orders sized to the observed surge multiple", Responsible: "inventory_team", EstimatedTime: "1 hour"},
		{Priority: PriorityToday, Text: "Move trending lines to high-visibility positions in store", Responsible: "all_staff", EstimatedTime: "30 minutes"},
		{Priority: PriorityThisWeek, Text: "Review the trend daily; taper orders as the surge decays", Responsible: "inventory_team", EstimatedTime: "15 minutes daily"},
	},
	MonitoringMetrics: []string{
		"Daily units of trending lines",
		"Surge multiple vs. baseline",
		"Stock cover at elevated demand",
	},
	SuccessCriteria: []string{
		"Demand captured without stockouts",
		"No overhang of excess stock after the trend",
	},
	EscalationCriteria: []string{
		"Stockout on a trending line",
		"Surge multiple exceeds 6x baseline",
	},
}

var viralTrendModerate = Playbook{
	ID:          "viral_trend_moderate",
	Name:        "Viral Trend - Watch Response",
	Description: "Monitoring posture for a trend not yet visible in sales",
	Actions: []Action{
		{Priority: PriorityToday, Text: "Flag the trending lines for daily sales review", Responsible: "inventory_team", EstimatedTime: "10 minutes"},
		{Priority: PriorityThisWeek, Text: "Prepare a contingency order in case the trend lands", Responsible: "inventory_team", EstimatedTime: "30 minutes"},
	},
	MonitoringMetrics: []string{
		"Daily units of flagged lines",
	},
	SuccessCriteria: []string{
		"Early detection if the trend converts to sales",
	},
}
