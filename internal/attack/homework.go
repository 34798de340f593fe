package attack

import (
	"github.com/geoprivacy/mobrisk/pkg/errors"
	"github.com/geoprivacy/mobrisk/pkg/models"
)

// NewHomeWorkAttack builds the home/work attack on frequency vectors: the
// adversary knows the individual's two most frequent locations, a proxy for
// home and workplace. There is no combinatorial enumeration; each individual
// has exactly one instance, the two highest-ranked visits of their record.
// Individuals with fewer than two visits cannot be attacked and yield a
// computation error.
func NewHomeWorkAttack(tolerance float64) (*Attack, error) {
	if err := validateTolerance(tolerance); err != nil {
		return nil, err
	}
	a := newAttack(AttackHomeWork, 0, frequencyMatcher{tolerance: tolerance})
	a.fixedInstance = homeWorkInstance
	return a, nil
}

// homeWorkInstance picks the two most frequent visits. The record's
// descending-frequency invariant makes these the first two.
func homeWorkInstance(record *models.Record) ([]models.Visit, error) {
	if record.Len() < 2 {
		return nil, errors.WrapError(errors.ErrInsufficientVisits,
			errors.ErrorTypeComputation, errors.CodeInsufficientVisits,
			"home/work attack needs at least two visits").
			WithContext("individual_id", record.ID).
			WithContext("visits", record.Len())
	}
	return []models.Visit{record.Visit(0), record.Visit(1)}, nil
}
