package attack

import (
	"github.com/geoprivacy/mobrisk/pkg/errors"
)

// Params carries the variant-specific construction parameters an attack may
// need. K is ignored by the home/work attack; Tolerance and Precision are
// only read by the variants that use them.
type Params struct {
	K         int     `json:"k"`
	Tolerance float64 `json:"tolerance"`
	Precision string  `json:"precision"`
}

// Names lists the attacks the catalog can construct.
func Names() []string {
	return []string{
		AttackLocation,
		AttackLocationSequence,
		AttackVisit,
		AttackFrequency,
		AttackProbability,
		AttackProportion,
		AttackHomeWork,
	}
}

// ForName constructs the named attack from the given parameters. Unknown
// names and invalid parameters are configuration errors.
func ForName(name string, params Params) (*Attack, error) {
	switch name {
	case AttackLocation:
		return NewLocationAttack(params.K)
	case AttackLocationSequence:
		return NewLocationSequenceAttack(params.K)
	case AttackVisit:
		if params.Precision == "" {
			return nil, errors.NewConfigurationError(errors.CodeMissingParameter,
				"visit attack requires a precision level")
		}
		return NewVisitAttackNamed(params.K, params.Precision)
	case AttackFrequency:
		return NewFrequencyAttack(params.K, params.Tolerance)
	case AttackProbability:
		return NewProbabilityAttack(params.K, params.Tolerance)
	case AttackProportion:
		return NewProportionAttack(params.K, params.Tolerance)
	case AttackHomeWork:
		return NewHomeWorkAttack(params.Tolerance)
	default:
		return nil, errors.WrapError(errors.ErrUnknownAttack,
			errors.ErrorTypeConfiguration, errors.CodeUnknownAttack,
			"no such attack in the catalog").WithDetails(name)
	}
}
