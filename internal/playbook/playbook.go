// Package playbook holds the static response playbooks selected per
// (event type, severity tier). Playbooks are pre-authored, never generated:
// selection is a registry lookup with a monitor-only fallback for unknown
// combinations.
package playbook

import (
	"fmt"

	"github.com/retailpulse/retailpulse/internal/domain"
)

// Priority buckets an action by when it must start.
type Priority string

const (
	PriorityImmediate Priority = "immediate"
	PriorityToday     Priority = "today"
	PriorityThisWeek  Priority = "this_week"
)

// Action is a single pre-authored response step.
type Action struct {
	Priority      Priority `json:"priority"`
	Text          string   `json:"action"`
	Responsible   string   `json:"responsible"`
	EstimatedTime string   `json:"estimated_time"`
}

// Playbook is a complete response plan for one (event type, tier) pair.
type Playbook struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`

	Actions            []Action `json:"actions"`
	MonitoringMetrics  []string `json:"monitoring_metrics"`
	SuccessCriteria    []string `json:"success_criteria"`
	EscalationCriteria []string `json:"escalation_criteria,omitempty"`
}

// Tier is the severity bucket a registry entry is keyed by. Tiers are
// coarser than event severity: each event type maps its severities onto
// the tiers its playbooks distinguish.
type Tier string

const (
	TierCritical       Tier = "critical"
	TierModerate       Tier = "moderate"
	TierHighImpact     Tier = "high_impact"
	TierModerateImpact Tier = "moderate_impact"
)

// TierFor maps an event severity to the registry tier for that event type.
func TierFor(et domain.EventType, severity domain.Severity) Tier {
	switch et {
	case domain.EventMajorEvent:
		if severity.AtLeast(domain.SeverityHigh) {
			return TierHighImpact
		}
		return TierModerateImpact
	default:
		if severity.AtLeast(domain.SeverityHigh) {
			return TierCritical
		}
		return TierModerate
	}
}

// Select returns the playbook registered for the pair, or the generic
// monitor-only playbook when the combination is unknown. It never fails.
func Select(et domain.EventType, tier Tier) Playbook {
	if byTier, ok := registry[et]; ok {
		if pb, ok := byTier[tier]; ok {
			return pb
		}
	}
	return genericPlaybook(et)
}

// SplitActions distributes a playbook into the alert envelope's three lists:
// immediate actions, short-term actions (today and this week), and the
// monitoring plan taken from the playbook's metrics.
func SplitActions(pb Playbook) (immediate, shortTerm, monitoring []string) {
	for _, a := range pb.Actions {
		text := fmt.Sprintf("%s (Est. time: %s, Owner: %s)", a.Text, a.EstimatedTime, a.Responsible)
		switch a.Priority {
		case PriorityImmediate:
			immediate = append(immediate, text)
		case PriorityToday, PriorityThisWeek:
			shortTerm = append(shortTerm, text)
		}
	}
	monitoring = append(monitoring, pb.MonitoringMetrics...)
	return immediate, shortTerm, monitoring
}

func genericPlaybook(et domain.EventType) Playbook {
	return Playbook{
		ID:          fmt.Sprintf("%s_monitor_only", et),
		Name:        fmt.Sprintf("%s - Generic Response", et),
		Description: "Generic monitor-only playbook for combinations without a dedicated plan",
		Actions: []Action{
			{Priority: PriorityToday, Text: "Assess potential business impact", Responsible: "pharmacy_manager", EstimatedTime: "30 minutes"},
			{Priority: PriorityToday, Text: "Monitor relevant metrics daily", Responsible: "inventory_team", EstimatedTime: "15 minutes daily"},
		},
		MonitoringMetrics: []string{"Sales trends", "Inventory levels"},
		SuccessCriteria:   []string{"Proactive monitoring established"},
	}
}
