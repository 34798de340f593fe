package models

import (
	"github.com/golang/geo/r2"
)

// Visit is a single entry in an individual's mobility history: a location
// plus one kind-specific payload field. Only the payload field matching the
// owning record's kind is meaningful; the others stay at their zero value.
type Visit struct {
	Location r2.Point `json:"location"`
	Time     int64    `json:"time,omitempty"` // decimal-encoded timestamp, year down to second
	Freq     int64    `json:"freq,omitempty"`
	Prob     float64  `json:"prob,omitempty"`
}

// TrajectoryVisit builds a timestamped visit for a trajectory record.
func TrajectoryVisit(x, y float64, time int64) Visit {
	return Visit{Location: r2.Point{X: x, Y: y}, Time: time}
}

// FrequencyVisit builds a frequency-annotated visit for a frequency vector.
func FrequencyVisit(x, y float64, freq int64) Visit {
	return Visit{Location: r2.Point{X: x, Y: y}, Freq: freq}
}

// ProbabilityVisit builds a probability-annotated visit for a probability vector.
func ProbabilityVisit(x, y float64, prob float64) Visit {
	return Visit{Location: r2.Point{X: x, Y: y}, Prob: prob}
}

// SameLocation reports whether two visits share the exact same coordinates.
// Repeat visits to one location are legal and meaningful, so this is the only
// location equivalence the engine ever needs.
func (v Visit) SameLocation(other Visit) bool {
	return v.Location.X == other.Location.X && v.Location.Y == other.Location.Y
}
