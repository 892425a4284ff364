package playbook

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/retailpulse/retailpulse/internal/domain"
)

func TestSelectRegisteredPlaybook(t *testing.T) {
	pb := Select(domain.EventHealthEmergency, TierCritical)
	assert.Equal(t, "health_emergency_critical", pb.ID)
	assert.NotEmpty(t, pb.Actions)
	assert.NotEmpty(t, pb.MonitoringMetrics)
	assert.NotEmpty(t, pb.EscalationCriteria)
}

func TestSelectUnknownCombinationFallsBack(t *testing.T) {
	tests := []struct {
		name string
		et   domain.EventType
		tier Tier
	}{
		{"unknown event type", domain.EventOther, TierCritical},
		{"unknown tier for known type", domain.EventMajorEvent, TierCritical},
		{"no playbooks for type", domain.EventEconomicShock, TierModerate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pb := Select(tt.et, tt.tier)
			assert.Contains(t, pb.ID, "monitor_only")
			assert.NotEmpty(t, pb.Actions, "fallback is monitor-only, never empty")
		})
	}
}

func TestTierFor(t *testing.T) {
	assert.Equal(t, TierHighImpact, TierFor(domain.EventMajorEvent, domain.SeverityHigh))
	assert.Equal(t, TierModerateImpact, TierFor(domain.EventMajorEvent, domain.SeverityMedium))
	assert.Equal(t, TierCritical, TierFor(domain.EventHealthEmergency, domain.SeverityCritical))
	assert.Equal(t, TierCritical, TierFor(domain.EventHealthEmergency, domain.SeverityHigh))
	assert.Equal(t, TierModerate, TierFor(domain.EventHealthEmergency, domain.SeverityLow))
}

func TestSplitActions(t *testing.T) {
	pb := Select(domain.EventHealthEmergency, TierCritical)
	immediate, shortTerm, monitoring := SplitActions(pb)

	assert.Len(t, immediate, 3)
	assert.Len(t, shortTerm, 4)
	assert.Equal(t, pb.MonitoringMetrics, monitoring)

	for _, a := range immediate {
		assert.Contains(t, a, "Owner:")
		assert.Contains(t, a, "Est. time:")
	}
}
