package attack

import (
	"github.com/geoprivacy/mobrisk/pkg/models"
)

// NewFrequencyAttack builds the frequency attack on frequency vectors: the
// adversary knows k locations and roughly how often each was visited. The
// tolerance discounts the known frequencies: an instance element with
// frequency f is satisfied by any record visit at the same location with
// frequency at least f*tolerance.
func NewFrequencyAttack(k int, tolerance float64) (*Attack, error) {
	if err := validateK(k); err != nil {
		return nil, err
	}
	if err := validateTolerance(tolerance); err != nil {
		return nil, err
	}
	return newAttack(AttackFrequency, k, frequencyMatcher{tolerance: tolerance}), nil
}

// frequencyMatcher consumes instance elements in order against the record's
// descending-frequency visits. Once the record frequency drops below the
// current element's discounted frequency, no later visit can satisfy it
// either, so the match fails immediately regardless of location.
type frequencyMatcher struct {
	tolerance float64
}

func (m frequencyMatcher) Matches(record *models.Record, instance []models.Visit) bool {
	target := len(instance)
	if target == 0 {
		return true
	}
	visits := record.Visits()
	count := 0
	for i := range visits {
		elem := instance[count]
		fdiff := float64(visits[i].Freq) - float64(elem.Freq)*m.tolerance
		switch {
		case fdiff >= 0 && elem.SameLocation(visits[i]):
			count++
			if count == target {
				return true
			}
		case fdiff < 0:
			return false
		}
		if len(visits)-i-1 < target-count {
			return false
		}
	}
	return false
}
