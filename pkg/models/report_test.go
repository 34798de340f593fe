package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRiskReportSummaries(t *testing.T) {
	report := NewRiskReport("location")
	require.NotEmpty(t, report.ReportID)
	assert.Equal(t, "location", report.Attack)

	report.Set("a", 0.25)
	report.Set("b", 1.0)
	report.Set("c", 0.5)

	assert.Equal(t, 3, report.Len())
	assert.Equal(t, 1.0, report.MaxRisk())
	assert.InDelta(t, 0.5833, report.MeanRisk(), 0.001)
	assert.Equal(t, []string{"b", "c"}, report.AtRisk(0.5))

	risk, ok := report.Risk("a")
	require.True(t, ok)
	assert.Equal(t, 0.25, risk)

	_, ok = report.Risk("z")
	assert.False(t, ok)
}

func TestRiskReportEmpty(t *testing.T) {
	report := NewRiskReport("frequency")
	assert.Equal(t, 0.0, report.MaxRisk())
	assert.Equal(t, 0.0, report.MeanRisk())
	assert.Empty(t, report.AtRisk(0))
}
