package attack

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/geoprivacy/mobrisk/internal/observability/metrics"
	"github.com/geoprivacy/mobrisk/pkg/errors"
	"github.com/geoprivacy/mobrisk/pkg/models"
)

// Attack names as used by the catalog and the CLI.
const (
	AttackLocation         = "location"
	AttackLocationSequence = "location_sequence"
	AttackVisit            = "visit"
	AttackFrequency        = "frequency"
	AttackProbability      = "probability"
	AttackProportion       = "proportion"
	AttackHomeWork         = "home_work"
)

// Matcher decides whether a dataset record is consistent with a background
// knowledge instance under one attack variant's equivalence rule. Matching
// consumes instance elements left to right against the record's visits and
// fails fast once completion is provably impossible.
//
// A Matcher call touches only the given record and instance plus local
// scratch state, so matching is safe to run concurrently.
type Matcher interface {
	Matches(record *models.Record, instance []models.Visit) bool
}

// Attack computes re-identification risk for individuals in a dataset under
// an adversary holding k visits of background knowledge. The risk of an
// individual is the maximum re-identification probability over all instances
// the adversary could hold; each probability is the fraction of matching
// dataset records that belong to the individual.
type Attack struct {
	name    string
	k       int
	matcher Matcher

	// fixedInstance, when set, replaces combinatorial enumeration with a
	// single attack-defined instance (the home/work variant).
	fixedInstance func(record *models.Record) ([]models.Visit, error)

	// instanceBudget caps the number of instances evaluated per individual.
	// Zero means unbounded. When the budget is exhausted the risk computed so
	// far is returned; it is a lower bound on the true risk.
	instanceBudget int

	logger  *logrus.Logger
	metrics *metrics.EngineMetrics
}

func newAttack(name string, k int, matcher Matcher) *Attack {
	return &Attack{
		name:    name,
		k:       k,
		matcher: matcher,
		logger:  logrus.New(),
	}
}

// Name returns the catalog name of the attack.
func (a *Attack) Name() string {
	return a.name
}

// K returns the background knowledge size of the attack.
func (a *Attack) K() int {
	return a.k
}

// Matcher returns the matching rule the attack evaluates records with.
func (a *Attack) Matcher() Matcher {
	return a.matcher
}

// WithLogger replaces the attack's logger. Returns the attack for chaining.
func (a *Attack) WithLogger(logger *logrus.Logger) *Attack {
	if logger != nil {
		a.logger = logger
	}
	return a
}

// WithMetrics attaches engine metrics. Returns the attack for chaining.
func (a *Attack) WithMetrics(m *metrics.EngineMetrics) *Attack {
	a.metrics = m
	return a
}

// WithInstanceBudget caps the number of instances evaluated per individual,
// bounding the combinatorial blow-up of large k. Zero removes the cap.
func (a *Attack) WithInstanceBudget(budget int) *Attack {
	if budget < 0 {
		budget = 0
	}
	a.instanceBudget = budget
	return a
}

// Risk computes the re-identification risk of one individual with respect to
// a dataset. The result is in [0,1]. An instance that matches no record at
// all (which a correct matcher cannot produce for an instance drawn from the
// individual's own visits) makes the probability ratio undefined and is
// surfaced as a computation error rather than coerced to a number.
func (a *Attack) Risk(ctx context.Context, dataset *models.Dataset, record *models.Record) (float64, error) {
	start := time.Now()

	instances, err := a.instances(record)
	if err != nil {
		return 0, err
	}

	risk := 0.0
	evaluated := 0
	for instances.Next() {
		if err := ctx.Err(); err != nil {
			return 0, errors.WrapError(err, errors.ErrorTypeComputation,
				errors.CodeComputationCancelled, "risk computation cancelled").
				WithContext("individual_id", record.ID)
		}
		if a.instanceBudget > 0 && evaluated >= a.instanceBudget {
			a.logger.WithFields(logrus.Fields{
				"attack":        a.name,
				"individual_id": record.ID,
				"budget":        a.instanceBudget,
			}).Warn("Instance budget exhausted, risk is a lower bound")
			break
		}
		prob, err := a.reidentificationProb(dataset, instances.Instance(), record.ID)
		if err != nil {
			return 0, err
		}
		evaluated++
		if prob > risk {
			risk = prob
		}
		// A probability of 1 cannot be improved on.
		if risk == 1 {
			break
		}
	}

	if a.metrics != nil {
		a.metrics.ObserveRisk(a.name, evaluated, time.Since(start))
	}
	a.logger.WithFields(logrus.Fields{
		"attack":        a.name,
		"individual_id": record.ID,
		"instances":     evaluated,
		"risk":          risk,
	}).Debug("Risk computed")

	return risk, nil
}

// AllRisks computes the risk of every individual in the dataset and returns
// the full report, one entry per record id.
func (a *Attack) AllRisks(ctx context.Context, dataset *models.Dataset) (*models.RiskReport, error) {
	report := models.NewRiskReport(a.name)
	for _, record := range dataset.Records() {
		risk, err := a.Risk(ctx, dataset, record)
		if err != nil {
			return nil, err
		}
		report.Set(record.ID, risk)
	}
	return report, nil
}

// instances returns the instance stream for one individual: the fixed
// attack-defined instance when the variant overrides enumeration, otherwise
// every size-min(k, n) combination of the individual's visits.
func (a *Attack) instances(record *models.Record) (instanceSource, error) {
	if a.fixedInstance == nil {
		return newInstanceIterator(record, a.k), nil
	}
	instance, err := a.fixedInstance(record)
	if err != nil {
		return nil, err
	}
	return newFixedIterator(instance), nil
}

// reidentificationProb computes the probability that the adversary
// re-identifies the individual from one instance: the number of matching
// records owned by the individual over the number of matching records
// overall. Zero matching records overall leave the ratio undefined.
func (a *Attack) reidentificationProb(dataset *models.Dataset, instance []models.Visit, individualID string) (float64, error) {
	support := 0
	owned := 0
	for _, record := range dataset.Records() {
		if !a.matcher.Matches(record, instance) {
			continue
		}
		support++
		if record.ID == individualID {
			owned++
		}
	}
	if a.metrics != nil {
		a.metrics.AddMatches(a.name, support)
	}
	if support == 0 {
		return 0, errors.WrapError(errors.ErrDegenerateAggregation,
			errors.ErrorTypeComputation, errors.CodeDegenerateAggregation,
			"no record matched the instance, probability ratio is undefined").
			WithContext("individual_id", individualID).
			WithContext("attack", a.name)
	}
	return float64(owned) / float64(support), nil
}
