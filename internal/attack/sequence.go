package attack

import (
	"github.com/geoprivacy/mobrisk/pkg/models"
)

// NewLocationSequenceAttack builds the location sequence attack: the
// adversary knows k locations and the order in which they were visited.
func NewLocationSequenceAttack(k int) (*Attack, error) {
	if err := validateK(k); err != nil {
		return nil, err
	}
	return newAttack(AttackLocationSequence, k, sequenceMatcher{}), nil
}

// sequenceMatcher scans the record's visits once in stored order and consumes
// instance elements strictly in their given order. No reordering and no
// backtracking: an instance element is consumed only when the next record
// visit shares its location.
type sequenceMatcher struct{}

func (sequenceMatcher) Matches(record *models.Record, instance []models.Visit) bool {
	target := len(instance)
	if target == 0 {
		return true
	}
	visits := record.Visits()
	count := 0
	for i := range visits {
		if instance[count].SameLocation(visits[i]) {
			count++
			if count == target {
				return true
			}
		}
		if len(visits)-i-1 < target-count {
			// Fewer record visits remain than unmatched instance elements.
			return false
		}
	}
	return false
}
