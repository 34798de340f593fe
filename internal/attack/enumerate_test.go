package attack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoprivacy/mobrisk/pkg/models"
)

func TestInstanceIteratorCount(t *testing.T) {
	record := models.NewTrajectory("u1")
	for i := 0; i < 5; i++ {
		record.AddVisit(models.TrajectoryVisit(float64(i), float64(i), int64(i)))
	}

	it := newInstanceIterator(record, 2)
	assert.Equal(t, 10, it.Count()) // C(5,2)

	seen := 0
	for it.Next() {
		assert.Len(t, it.Instance(), 2)
		seen++
	}
	assert.Equal(t, 10, seen)
}

func TestInstanceIteratorDegeneratesWhenKExceedsVisits(t *testing.T) {
	record := models.NewTrajectory("u1")
	record.AddVisit(models.TrajectoryVisit(0, 0, 1))
	record.AddVisit(models.TrajectoryVisit(1, 1, 2))

	it := newInstanceIterator(record, 10)
	require.True(t, it.Next())
	assert.Equal(t, record.Visits(), it.Instance())
	assert.False(t, it.Next())
}

func TestInstanceIteratorPreservesRelativeOrder(t *testing.T) {
	record := models.NewTrajectory("u1")
	for i := 0; i < 4; i++ {
		record.AddVisit(models.TrajectoryVisit(float64(i), float64(i), int64(i)))
	}

	it := newInstanceIterator(record, 2)
	for it.Next() {
		instance := it.Instance()
		require.Len(t, instance, 2)
		assert.Less(t, instance[0].Time, instance[1].Time,
			"instances must keep the record's visit order")
	}
}

func TestFixedIteratorYieldsOnce(t *testing.T) {
	instance := []models.Visit{models.FrequencyVisit(0, 0, 5)}
	it := newFixedIterator(instance)

	require.True(t, it.Next())
	assert.Equal(t, instance, it.Instance())
	assert.False(t, it.Next())
}
