package attack

import (
	"github.com/geoprivacy/mobrisk/pkg/errors"
	"github.com/geoprivacy/mobrisk/pkg/models"
)

// NewVisitAttack builds the visit attack on trajectories: the adversary knows
// k visits with their timestamps, compared at the given precision level. A
// coarser precision weakens the attack.
func NewVisitAttack(k int, precision Precision) (*Attack, error) {
	if err := validateK(k); err != nil {
		return nil, err
	}
	if precision < PrecisionYear || precision > PrecisionSecond {
		return nil, errors.WrapError(errors.ErrInvalidPrecision,
			errors.ErrorTypeConfiguration, errors.CodeInvalidPrecision,
			"unrecognized precision level").
			WithContext("precision", int(precision))
	}
	return newAttack(AttackVisit, k, visitMatcher{precision: precision}), nil
}

// NewVisitAttackNamed is NewVisitAttack with the precision level given by
// name, as the CLI provides it.
func NewVisitAttackNamed(k int, precision string) (*Attack, error) {
	p, err := ParsePrecision(precision)
	if err != nil {
		return nil, err
	}
	return NewVisitAttack(k, p)
}

// visitMatcher consumes instance elements in order against the record's
// ascending-time visits. A record visit consumes the current element only if
// location and truncated timestamp both match. Once the record's truncated
// timestamp passes the element's, the element can never be matched by a later
// visit, so the match fails immediately.
type visitMatcher struct {
	precision Precision
}

func (m visitMatcher) Matches(record *models.Record, instance []models.Visit) bool {
	target := len(instance)
	if target == 0 {
		return true
	}
	visits := record.Visits()
	count := 0
	for i := range visits {
		elem := instance[count]
		tdiff := m.precision.truncate(elem.Time) - m.precision.truncate(visits[i].Time)
		switch {
		case tdiff == 0 && elem.SameLocation(visits[i]):
			count++
			if count == target {
				return true
			}
		case tdiff < 0:
			// Record time is already past the claimed timestamp.
			return false
		}
		if len(visits)-i-1 < target-count {
			return false
		}
	}
	return false
}
