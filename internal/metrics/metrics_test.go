package metrics

import (
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findMetric(t *testing.T, families []*dto.MetricFamily, name string) *dto.MetricFamily {
	t.Helper()
	for _, f := range families {
		if f.GetName() == name {
			return f
		}
	}
	t.Fatalf("metric %s not found", name)
	return nil
}

func TestCountersAccumulate(t *testing.T) {
	m := New()

	m.DatesAggregated.Inc()
	m.DatesAggregated.Inc()
	m.TrueAnomalies.Inc()
	m.EventsEvaluated.WithLabelValues("health_emergency").Inc()
	m.AlertsGenerated.WithLabelValues("health_emergency", "critical").Inc()

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	aggregated := findMetric(t, families, "retailpulse_dates_aggregated_total")
	assert.Equal(t, 2.0, aggregated.GetMetric()[0].GetCounter().GetValue())

	alerts := findMetric(t, families, "retailpulse_alerts_generated_total")
	require.Len(t, alerts.GetMetric(), 1)
	assert.Equal(t, 1.0, alerts.GetMetric()[0].GetCounter().GetValue())

	labels := alerts.GetMetric()[0].GetLabel()
	values := map[string]string{}
	for _, l := range labels {
		values[l.GetName()] = l.GetValue()
	}
	assert.Equal(t, "health_emergency", values["event_type"])
	assert.Equal(t, "critical", values["severity"])
}

func TestIndependentRegistries(t *testing.T) {
	// Two instances must not trip duplicate registration.
	a := New()
	b := New()
	a.DatesAggregated.Inc()

	families, err := b.Registry().Gather()
	require.NoError(t, err)
	aggregated := findMetric(t, families, "retailpulse_dates_aggregated_total")
	assert.Equal(t, 0.0, aggregated.GetMetric()[0].GetCounter().GetValue())
}
