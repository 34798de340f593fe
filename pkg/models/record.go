package models

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// RecordKind selects the payload field and ordering invariant of a record.
type RecordKind int

const (
	// KindTrajectory orders visits by ascending timestamp.
	KindTrajectory RecordKind = iota
	// KindFrequencyVector orders visits by descending visit frequency.
	KindFrequencyVector
	// KindProbabilityVector orders visits by descending visit probability.
	KindProbabilityVector
)

// String returns the string representation of the record kind.
func (k RecordKind) String() string {
	switch k {
	case KindTrajectory:
		return "trajectory"
	case KindFrequencyVector:
		return "frequency_vector"
	case KindProbabilityVector:
		return "probability_vector"
	default:
		return fmt.Sprintf("record_kind(%d)", int(k))
	}
}

// ParseRecordKind parses a record kind name as accepted on the CLI.
func ParseRecordKind(s string) (RecordKind, bool) {
	switch strings.ToLower(s) {
	case "trajectory":
		return KindTrajectory, true
	case "frequency", "frequency_vector":
		return KindFrequencyVector, true
	case "probability", "probability_vector":
		return KindProbabilityVector, true
	default:
		return 0, false
	}
}

// Record is one individual's ordered visit history. Visits are inserted one
// at a time and kept sorted by the kind's sort key; the sequence is never
// re-sorted wholesale. Records are treated as immutable once ingested.
type Record struct {
	ID     string
	Kind   RecordKind
	visits []Visit
}

// NewTrajectory creates an empty trajectory record.
func NewTrajectory(id string) *Record {
	return &Record{ID: id, Kind: KindTrajectory}
}

// NewFrequencyVector creates an empty frequency vector record.
func NewFrequencyVector(id string) *Record {
	return &Record{ID: id, Kind: KindFrequencyVector}
}

// NewProbabilityVector creates an empty probability vector record.
func NewProbabilityVector(id string) *Record {
	return &Record{ID: id, Kind: KindProbabilityVector}
}

// AddVisit inserts a visit preserving the kind's ordering invariant. The
// insertion index is found by binary search on the sort key; a new visit with
// a key equal to existing ones is placed after them, so ties keep insertion
// order. Duplicate coordinates are legal. Returns the record for chaining.
func (r *Record) AddVisit(v Visit) *Record {
	idx := sort.Search(len(r.visits), func(i int) bool {
		switch r.Kind {
		case KindFrequencyVector:
			return r.visits[i].Freq < v.Freq
		case KindProbabilityVector:
			return r.visits[i].Prob < v.Prob
		default:
			return r.visits[i].Time > v.Time
		}
	})
	r.visits = append(r.visits, Visit{})
	copy(r.visits[idx+1:], r.visits[idx:])
	r.visits[idx] = v
	return r
}

// Len returns the number of visits in the record.
func (r *Record) Len() int {
	return len(r.visits)
}

// Visit returns the i-th visit in stored order.
func (r *Record) Visit(i int) Visit {
	return r.visits[i]
}

// Visits returns the visit sequence in stored order. The returned slice is a
// view of the record's internal state and must not be mutated.
func (r *Record) Visits() []Visit {
	return r.visits
}

// FormatPayload returns the kind-specific payload field of a visit, formatted
// the way the serialization format expects it.
func (r *Record) FormatPayload(v Visit) string {
	switch r.Kind {
	case KindFrequencyVector:
		return strconv.FormatInt(v.Freq, 10)
	case KindProbabilityVector:
		return strconv.FormatFloat(v.Prob, 'g', -1, 64)
	default:
		return strconv.FormatInt(v.Time, 10)
	}
}

// String renders the record as a single dataset line:
// id,x1,y1,payload1,x2,y2,payload2,...
func (r *Record) String() string {
	var sb strings.Builder
	sb.WriteString(r.ID)
	for _, v := range r.visits {
		sb.WriteByte(',')
		sb.WriteString(strconv.FormatFloat(v.Location.X, 'g', -1, 64))
		sb.WriteByte(',')
		sb.WriteString(strconv.FormatFloat(v.Location.Y, 'g', -1, 64))
		sb.WriteByte(',')
		sb.WriteString(r.FormatPayload(v))
	}
	return sb.String()
}
