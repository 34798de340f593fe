package attack

import (
	"gonum.org/v1/gonum/stat/combin"

	"github.com/geoprivacy/mobrisk/pkg/models"
)

// instanceSource is a lazy, finite stream of background knowledge instances.
// The slice returned by Instance is only valid until the next call to Next.
type instanceSource interface {
	Next() bool
	Instance() []models.Visit
}

// instanceIterator lazily enumerates the background knowledge instances that
// an adversary with knowledge size k could hold about one individual: every
// size-min(k, n) combination of the individual's n visits, each preserving
// the relative order the visits have in the record. Instances are produced
// one at a time because their count is C(n, min(k, n)) and grows fast in k.
type instanceIterator struct {
	visits   []models.Visit
	gen      *combin.CombinationGenerator
	indices  []int
	instance []models.Visit
}

// newInstanceIterator builds an iterator over all instances of size
// min(k, record.Len()). When k is at least the visit count, the iterator
// degenerates to a single instance equal to the full visit sequence.
func newInstanceIterator(record *models.Record, k int) *instanceIterator {
	n := record.Len()
	size := k
	if size > n {
		size = n
	}
	return &instanceIterator{
		visits:   record.Visits(),
		gen:      combin.NewCombinationGenerator(n, size),
		indices:  make([]int, size),
		instance: make([]models.Visit, size),
	}
}

// Next advances to the next instance, reporting whether one is available.
func (it *instanceIterator) Next() bool {
	return it.gen.Next()
}

// Instance returns the current instance. The returned slice is reused across
// calls to Next; callers must not retain it.
func (it *instanceIterator) Instance() []models.Visit {
	it.gen.Combination(it.indices)
	for i, idx := range it.indices {
		it.instance[i] = it.visits[idx]
	}
	return it.instance
}

// Count returns the total number of instances the iterator will produce.
func (it *instanceIterator) Count() int {
	return combin.Binomial(len(it.visits), len(it.indices))
}

// fixedIterator yields exactly one attack-defined instance. Used by variants
// that override combinatorial enumeration.
type fixedIterator struct {
	instance []models.Visit
	done     bool
}

func newFixedIterator(instance []models.Visit) *fixedIterator {
	return &fixedIterator{instance: instance}
}

func (it *fixedIterator) Next() bool {
	if it.done {
		return false
	}
	it.done = true
	return true
}

func (it *fixedIterator) Instance() []models.Visit {
	return it.instance
}
