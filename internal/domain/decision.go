package domain

import "time"

// MatchDecision is the outcome of evaluating one DetectedEvent against the
// business context and cached features. AlertNeeded is strictly binary;
// Confidence is a separately computed additive score in [0,1] and can never
// flip the decision. Every reasoning string corresponds to one concrete
// evaluated condition and embeds the numeric fact that produced it.
type MatchDecision struct {
	EventType   EventType `json:"event_type"`
	AlertNeeded bool      `json:"alert_needed"`
	Confidence  float64   `json:"confidence"`
	Reasoning   []string  `json:"reasoning"`

	Severity Severity `json:"severity"`
	Urgency  Urgency  `json:"urgency"`

	AffectedCategories []string `json:"affected_categories,omitempty"`
	AffectedLocations  []string `json:"affected_locations,omitempty"`

	PlaybookID string `json:"playbook_id,omitempty"`

	// KeyMetrics records the numeric facts behind the reasoning for
	// machine consumption.
	KeyMetrics map[string]float64 `json:"key_metrics,omitempty"`
}

// BusinessAlert is the persisted envelope around a positive MatchDecision.
// The engine produces it; storage and notification belong to the host.
type BusinessAlert struct {
	ID          string    `json:"alert_id"`
	GeneratedAt time.Time `json:"generated_at"`
	EventID     string    `json:"event_id"`

	Type     EventType `json:"alert_type"`
	Severity Severity  `json:"severity"`
	Urgency  Urgency   `json:"urgency"`

	EventTitle       string     `json:"event_title"`
	EventDescription string     `json:"event_description"`
	EventDate        *time.Time `json:"event_date,omitempty"`
	EventLocation    string     `json:"event_location,omitempty"`

	AffectedCategories []string `json:"affected_categories,omitempty"`
	AffectedLocations  []string `json:"affected_locations,omitempty"`
	EstimatedImpact    string   `json:"estimated_impact"`

	Decision MatchDecision `json:"decision"`

	PlaybookName       string   `json:"playbook_name"`
	ImmediateActions   []string `json:"immediate_actions,omitempty"`
	ShortTermActions   []string `json:"short_term_actions,omitempty"`
	MonitoringPlan     []string `json:"monitoring_plan,omitempty"`
	EscalationCriteria []string `json:"escalation_criteria,omitempty"`
}

// DailyAlertReport summarizes one day's evaluations for downstream review.
type DailyAlertReport struct {
	ReportDate      time.Time `json:"report_date"`
	EventsEvaluated int       `json:"total_events_evaluated"`
	AlertsGenerated int       `json:"alerts_generated"`

	AlertsBySeverity map[Severity]int  `json:"alerts_by_severity,omitempty"`
	AlertsByType     map[EventType]int `json:"alerts_by_type,omitempty"`

	Alerts []BusinessAlert `json:"alerts"`
}

// NewDailyAlertReport builds the summary for a set of alerts.
func NewDailyAlertReport(date time.Time, evaluated int, alerts []BusinessAlert) DailyAlertReport {
	report := DailyAlertReport{
		ReportDate:       Day(date),
		EventsEvaluated:  evaluated,
		AlertsGenerated:  len(alerts),
		AlertsBySeverity: make(map[Severity]int),
		AlertsByType:     make(map[EventType]int),
		Alerts:           alerts,
	}
	for _, a := range alerts {
		report.AlertsBySeverity[a.Severity]++
		report.AlertsByType[a.Type]++
	}
	return report
}
