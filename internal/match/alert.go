package match

import (
	"time"

	"github.com/google/uuid"

	"github.com/retailpulse/retailpulse/internal/domain"
	"github.com/retailpulse/retailpulse/internal/playbook"
)

// BuildAlert wraps a positive decision in the persisted alert envelope,
// attaching the selected playbook's action lists and escalation criteria.
func BuildAlert(e domain.DetectedEvent, decision domain.MatchDecision, generatedAt time.Time) domain.BusinessAlert {
	pb := playbook.Select(e.Type, playbook.TierFor(e.Type, decision.Severity))
	decision.PlaybookID = pb.ID

	immediate, shortTerm, monitoring := playbook.SplitActions(pb)

	impact := "moderate"
	if decision.Severity.AtLeast(domain.SeverityHigh) {
		impact = "high"
	} else if decision.Severity == domain.SeverityLow {
		impact = "low"
	}

	return domain.BusinessAlert{
		ID:          uuid.New().String(),
		GeneratedAt: generatedAt,
		EventID:     e.ID,

		Type:     e.Type,
		Severity: decision.Severity,
		Urgency:  decision.Urgency,

		EventTitle:       e.Title,
		EventDescription: e.Description,
		EventDate:        e.EventDate,
		EventLocation:    e.Location,

		AffectedCategories: decision.AffectedCategories,
		AffectedLocations:  decision.AffectedLocations,
		EstimatedImpact:    impact,

		Decision: decision,

		PlaybookName:       pb.Name,
		ImmediateActions:   immediate,
		ShortTermActions:   shortTerm,
		MonitoringPlan:     monitoring,
		EscalationCriteria: pb.EscalationCriteria,
	}
}
