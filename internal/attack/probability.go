package attack

import (
	"github.com/geoprivacy/mobrisk/pkg/models"
)

// NewProbabilityAttack builds the probability attack on probability vectors:
// the adversary knows k locations and the approximate probability of a visit
// to each. An instance element with probability p is satisfied by a record
// visit at the same location with probability within [p-tolerance, p+tolerance].
func NewProbabilityAttack(k int, tolerance float64) (*Attack, error) {
	if err := validateK(k); err != nil {
		return nil, err
	}
	if err := validateTolerance(tolerance); err != nil {
		return nil, err
	}
	return newAttack(AttackProbability, k, probabilityMatcher{tolerance: tolerance}), nil
}

// probabilityMatcher consumes instance elements in order against the record's
// descending-probability visits. Falling below the element's lower bound
// fails the match immediately (probabilities only decrease from here on);
// merely exceeding the upper bound does not, later visits may still fit.
type probabilityMatcher struct {
	tolerance float64
}

func (m probabilityMatcher) Matches(record *models.Record, instance []models.Visit) bool {
	target := len(instance)
	if target == 0 {
		return true
	}
	visits := record.Visits()
	count := 0
	for i := range visits {
		elem := instance[count]
		diff := visits[i].Prob - elem.Prob
		switch {
		case diff >= -m.tolerance && diff <= m.tolerance && elem.SameLocation(visits[i]):
			count++
			if count == target {
				return true
			}
		case diff < -m.tolerance:
			return false
		}
		if len(visits)-i-1 < target-count {
			return false
		}
	}
	return false
}
