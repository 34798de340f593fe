package attack

import (
	"github.com/geoprivacy/mobrisk/pkg/errors"
	"github.com/geoprivacy/mobrisk/pkg/models"
)

// NewLocationAttack builds the location attack: the adversary knows k
// locations the individual visited, with no ordering or payload information.
func NewLocationAttack(k int) (*Attack, error) {
	if err := validateK(k); err != nil {
		return nil, err
	}
	return newAttack(AttackLocation, k, locationMatcher{}), nil
}

// locationMatcher does pure multiset matching: every instance location must
// pair one-to-one with a distinct record location, order disregarded.
type locationMatcher struct{}

func (locationMatcher) Matches(record *models.Record, instance []models.Visit) bool {
	target := len(instance)
	visits := record.Visits()
	used := make([]bool, len(visits))
	count := 0
	for j := 0; j < target; j++ {
		for i := range visits {
			if !used[i] && instance[j].SameLocation(visits[i]) {
				used[i] = true
				count++
				break
			}
		}
		if count == target {
			break
		}
		if j >= count {
			// The j-th instance element found no unused partner.
			return false
		}
	}
	return true
}

func validateK(k int) error {
	if k < 1 {
		return errors.WrapError(errors.ErrInvalidKnowledgeSize,
			errors.ErrorTypeConfiguration, errors.CodeInvalidKnowledgeSize,
			"background knowledge size must be at least 1").
			WithContext("k", k)
	}
	return nil
}

func validateTolerance(tolerance float64) error {
	if tolerance < 0 || tolerance > 1 {
		return errors.WrapError(errors.ErrInvalidTolerance,
			errors.ErrorTypeConfiguration, errors.CodeInvalidTolerance,
			"tolerance must be in [0,1]").
			WithContext("tolerance", tolerance)
	}
	return nil
}
