// Package match evaluates detected external events against the business
// context and cached sales features, producing strictly binary alert
// decisions with fully auditable reasoning.
package match

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/retailpulse/retailpulse/internal/domain"
	"github.com/retailpulse/retailpulse/internal/metrics"
	"github.com/retailpulse/retailpulse/internal/store"
)

// Evaluator is one per-type decision rule: a pure function of the event,
// the business context and the evidence bundle. It reads, never writes,
// and never calls out.
type Evaluator func(e domain.DetectedEvent, bc *domain.BusinessContext, ev Evidence) domain.MatchDecision

// Matcher dispatches events to the evaluator registered for their type.
type Matcher struct {
	business   *domain.BusinessContext
	features   store.FeatureStore
	stock      map[string]int
	evaluators map[domain.EventType]Evaluator
	metrics    *metrics.Metrics
	now        func() time.Time
}

// New builds a matcher over the business context and feature store with the
// full evaluator registry.
func New(bc *domain.BusinessContext, features store.FeatureStore) *Matcher {
	return &Matcher{
		business: bc,
		features: features,
		now:      time.Now,
		evaluators: map[domain.EventType]Evaluator{
			domain.EventHealthEmergency:  evaluateHealthEmergency,
			domain.EventMajorEvent:       evaluateMajorEvent,
			domain.EventWeatherExtreme:   evaluateWeatherExtreme,
			domain.EventSupplyDisruption: evaluateSupplyDisruption,
			domain.EventCompetitorAction: evaluateCompetitorAction,
			domain.EventRegulatoryChange: evaluateRegulatoryChange,
			domain.EventViralTrend:       evaluateViralTrend,
			domain.EventEconomicShock:    evaluateEconomicShock,
			domain.EventOther:            evaluateOther,
		},
	}
}

// SetStock installs the host's latest inventory position, units on hand per
// category, as evidence for days-of-supply calculations.
func (m *Matcher) SetStock(stock map[string]int) {
	m.stock = stock
}

// SetMetrics attaches Prometheus counters for evaluated events and generated
// alerts. Without it the matcher simply does not count.
func (m *Matcher) SetMetrics(mt *metrics.Metrics) {
	m.metrics = mt
}

// Evaluate runs one event through its registered evaluator. The error return
// covers malformed events and store failures only; a negative decision is a
// valid result, not an error.
func (m *Matcher) Evaluate(ctx context.Context, e domain.DetectedEvent) (domain.MatchDecision, error) {
	if err := e.Validate(); err != nil {
		return domain.MatchDecision{}, fmt.Errorf("evaluate event: %w", err)
	}

	ev, err := loadEvidence(ctx, m.features, m.stock)
	if err != nil {
		return domain.MatchDecision{}, fmt.Errorf("load evidence: %w", err)
	}

	return m.dispatch(e, ev), nil
}

// EvaluateAll evaluates a batch of events and assembles the positive
// decisions into alerts with their playbooks attached. A failing event is
// logged and skipped; it never aborts the batch.
func (m *Matcher) EvaluateAll(ctx context.Context, date time.Time, events []domain.DetectedEvent) (domain.DailyAlertReport, error) {
	ev, err := loadEvidence(ctx, m.features, m.stock)
	if err != nil {
		return domain.DailyAlertReport{}, fmt.Errorf("load evidence: %w", err)
	}

	var alerts []domain.BusinessAlert
	for _, e := range events {
		if err := e.Validate(); err != nil {
			log.Warn().Err(err).Str("event", e.ID).Msg("skipping malformed event")
			continue
		}

		decision := m.dispatch(e, ev)
		if m.metrics != nil {
			m.metrics.EventsEvaluated.WithLabelValues(string(e.Type)).Inc()
			if decision.AlertNeeded {
				m.metrics.AlertsGenerated.WithLabelValues(string(e.Type), string(decision.Severity)).Inc()
			}
		}
		log.Info().
			Str("event", e.ID).
			Str("type", string(e.Type)).
			Bool("alert_needed", decision.AlertNeeded).
			Float64("confidence", decision.Confidence).
			Msg("event evaluated")

		if decision.AlertNeeded {
			alerts = append(alerts, BuildAlert(e, decision, m.now()))
		}
	}

	return domain.NewDailyAlertReport(date, len(events), alerts), nil
}

func (m *Matcher) dispatch(e domain.DetectedEvent, ev Evidence) domain.MatchDecision {
	evaluator, ok := m.evaluators[e.Type]
	if !ok {
		// Validate guarantees a known type; this covers a registry gap.
		return domain.MatchDecision{
			EventType: e.Type,
			Severity:  e.Severity,
			Urgency:   domain.UrgencyLow,
			Reasoning: []string{fmt.Sprintf("no evaluator registered for event type %q", e.Type)},
		}
	}

	decision := evaluator(e, m.business, ev)
	decision.EventType = e.Type
	return decision
}
