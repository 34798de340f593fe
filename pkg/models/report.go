package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// RiskReport maps each individual id in a dataset to its re-identification
// risk in [0,1]. Reports carry a unique id and a timestamp so downstream
// consumers can correlate runs.
type RiskReport struct {
	ReportID    string             `json:"report_id"`
	Attack      string             `json:"attack"`
	GeneratedAt time.Time          `json:"generated_at"`
	Risks       map[string]float64 `json:"risks"`
}

// NewRiskReport creates an empty risk report for the named attack.
func NewRiskReport(attack string) *RiskReport {
	return &RiskReport{
		ReportID:    uuid.NewString(),
		Attack:      attack,
		GeneratedAt: time.Now().UTC(),
		Risks:       make(map[string]float64),
	}
}

// Set records the risk for one individual.
func (r *RiskReport) Set(id string, risk float64) {
	r.Risks[id] = risk
}

// Risk returns the risk recorded for an individual, if present.
func (r *RiskReport) Risk(id string) (float64, bool) {
	risk, ok := r.Risks[id]
	return risk, ok
}

// Len returns the number of individuals in the report.
func (r *RiskReport) Len() int {
	return len(r.Risks)
}

// MaxRisk returns the highest risk in the report, 0 for an empty report.
func (r *RiskReport) MaxRisk() float64 {
	max := 0.0
	for _, risk := range r.Risks {
		if risk > max {
			max = risk
		}
	}
	return max
}

// MeanRisk returns the average risk across all individuals, 0 for an empty
// report.
func (r *RiskReport) MeanRisk() float64 {
	if len(r.Risks) == 0 {
		return 0
	}
	sum := 0.0
	for _, risk := range r.Risks {
		sum += risk
	}
	return sum / float64(len(r.Risks))
}

// AtRisk returns the ids of individuals whose risk is at least the given
// threshold, sorted for deterministic output.
func (r *RiskReport) AtRisk(threshold float64) []string {
	var ids []string
	for id, risk := range r.Risks {
		if risk >= threshold {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
