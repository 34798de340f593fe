package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineMetricsObserve(t *testing.T) {
	m := NewEngineMetrics()

	m.ObserveRisk("location", 10, 25*time.Millisecond)
	m.ObserveRisk("location", 5, 5*time.Millisecond)
	m.AddMatches("location", 7)

	families, err := m.Gather()
	require.NoError(t, err)

	values := map[string]float64{}
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			if metric.GetCounter() != nil {
				values[mf.GetName()] = metric.GetCounter().GetValue()
			}
		}
	}

	assert.Equal(t, 2.0, values["mobrisk_risk_computations_total"])
	assert.Equal(t, 15.0, values["mobrisk_instances_evaluated_total"])
	assert.Equal(t, 7.0, values["mobrisk_record_matches_total"])
}
