package attack

import (
	"math"

	"github.com/geoprivacy/mobrisk/pkg/models"
)

// NewProportionAttack builds the proportion attack on frequency vectors: the
// adversary knows k locations and the ratios between their visit frequencies,
// but not the absolute counts. A ratio in the record may deviate from the
// corresponding instance ratio by at most the tolerance.
func NewProportionAttack(k int, tolerance float64) (*Attack, error) {
	if err := validateK(k); err != nil {
		return nil, err
	}
	if err := validateTolerance(tolerance); err != nil {
		return nil, err
	}
	return newAttack(AttackProportion, k, proportionMatcher{tolerance: tolerance}), nil
}

// proportionMatcher matches in two phases. Phase one consumes instance
// elements in order by location alone, collecting the matched record visits.
// Phase two checks that every matched visit's frequency ratio against the
// first matched visit stays within tolerance of the analogous instance ratio.
type proportionMatcher struct {
	tolerance float64
}

func (m proportionMatcher) Matches(record *models.Record, instance []models.Visit) bool {
	target := len(instance)
	if target == 0 {
		return true
	}
	visits := record.Visits()
	matched := make([]models.Visit, 0, target)
	for i := range visits {
		if instance[len(matched)].SameLocation(visits[i]) {
			matched = append(matched, visits[i])
			if len(matched) == target {
				break
			}
		}
		if len(visits)-i-1 < target-len(matched) {
			return false
		}
	}
	if len(matched) < target {
		return false
	}
	return m.matchProportions(matched, instance)
}

// matchProportions verifies the frequency ratios of the matched visits
// against the instance's, each relative to its most frequent element. A zero
// reference frequency leaves the ratios undefined and fails the match.
func (m proportionMatcher) matchProportions(matched, instance []models.Visit) bool {
	if matched[0].Freq == 0 || instance[0].Freq == 0 {
		return false
	}
	for i := 1; i < len(matched); i++ {
		propMatched := float64(matched[i].Freq) / float64(matched[0].Freq)
		propInstance := float64(instance[i].Freq) / float64(instance[0].Freq)
		if math.Abs(propMatched-propInstance) > m.tolerance {
			return false
		}
	}
	return true
}
