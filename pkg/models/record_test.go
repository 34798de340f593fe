package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrajectoryKeepsAscendingTime(t *testing.T) {
	record := NewTrajectory("u1")
	record.AddVisit(TrajectoryVisit(1, 1, 20200103))
	record.AddVisit(TrajectoryVisit(2, 2, 20200101))
	record.AddVisit(TrajectoryVisit(3, 3, 20200102))

	times := visitTimes(record)
	assert.Equal(t, []int64{20200101, 20200102, 20200103}, times)
}

func TestFrequencyVectorKeepsDescendingFreq(t *testing.T) {
	record := NewFrequencyVector("u1")
	record.AddVisit(FrequencyVisit(1, 1, 3))
	record.AddVisit(FrequencyVisit(2, 2, 10))
	record.AddVisit(FrequencyVisit(3, 3, 7))

	require.Equal(t, 3, record.Len())
	assert.Equal(t, int64(10), record.Visit(0).Freq)
	assert.Equal(t, int64(7), record.Visit(1).Freq)
	assert.Equal(t, int64(3), record.Visit(2).Freq)
}

func TestProbabilityVectorKeepsDescendingProb(t *testing.T) {
	record := NewProbabilityVector("u1")
	record.AddVisit(ProbabilityVisit(1, 1, 0.2))
	record.AddVisit(ProbabilityVisit(2, 2, 0.7))
	record.AddVisit(ProbabilityVisit(3, 3, 0.1))

	assert.Equal(t, 0.7, record.Visit(0).Prob)
	assert.Equal(t, 0.2, record.Visit(1).Prob)
	assert.Equal(t, 0.1, record.Visit(2).Prob)
}

func TestAddVisitTiesKeepInsertionOrder(t *testing.T) {
	record := NewFrequencyVector("u1")
	record.AddVisit(FrequencyVisit(1, 1, 5))
	record.AddVisit(FrequencyVisit(2, 2, 5))
	record.AddVisit(FrequencyVisit(3, 3, 5))

	// Equal keys stay in the order they were added.
	assert.Equal(t, 1.0, record.Visit(0).Location.X)
	assert.Equal(t, 2.0, record.Visit(1).Location.X)
	assert.Equal(t, 3.0, record.Visit(2).Location.X)

	trajectory := NewTrajectory("u2")
	trajectory.AddVisit(TrajectoryVisit(1, 1, 100))
	trajectory.AddVisit(TrajectoryVisit(2, 2, 100))
	assert.Equal(t, 1.0, trajectory.Visit(0).Location.X)
	assert.Equal(t, 2.0, trajectory.Visit(1).Location.X)
}

func TestAddVisitAllowsDuplicateCoordinates(t *testing.T) {
	record := NewTrajectory("u1")
	record.AddVisit(TrajectoryVisit(0, 0, 1))
	record.AddVisit(TrajectoryVisit(0, 0, 2))

	assert.Equal(t, 2, record.Len())
	assert.True(t, record.Visit(0).SameLocation(record.Visit(1)))
}

func TestRecordString(t *testing.T) {
	record := NewFrequencyVector("42")
	record.AddVisit(FrequencyVisit(1.5, 2.5, 10))
	record.AddVisit(FrequencyVisit(3, 4, 3))

	assert.Equal(t, "42,1.5,2.5,10,3,4,3", record.String())
}

func TestParseRecordKind(t *testing.T) {
	cases := map[string]RecordKind{
		"trajectory":         KindTrajectory,
		"frequency":          KindFrequencyVector,
		"frequency_vector":   KindFrequencyVector,
		"Probability":        KindProbabilityVector,
		"probability_vector": KindProbabilityVector,
	}
	for input, want := range cases {
		kind, ok := ParseRecordKind(input)
		require.True(t, ok, input)
		assert.Equal(t, want, kind)
	}

	_, ok := ParseRecordKind("velocity")
	assert.False(t, ok)
}

func TestDataset(t *testing.T) {
	dataset := NewDataset()
	a := NewTrajectory("a")
	b := NewTrajectory("b")
	dataset.Add(a)
	dataset.Add(b)

	assert.Equal(t, 2, dataset.Len())
	got, ok := dataset.Get("a")
	require.True(t, ok)
	assert.Same(t, a, got)

	_, ok = dataset.Get("c")
	assert.False(t, ok)
	assert.Equal(t, []*Record{a, b}, dataset.Records())
}

func visitTimes(record *Record) []int64 {
	times := make([]int64, 0, record.Len())
	for _, v := range record.Visits() {
		times = append(times, v.Time)
	}
	return times
}
