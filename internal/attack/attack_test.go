package attack

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/geoprivacy/mobrisk/pkg/errors"
	"github.com/geoprivacy/mobrisk/pkg/models"
)

func twoIndividualDataset() *models.Dataset {
	dataset := models.NewDataset()
	dataset.Add(trajectory("a",
		models.TrajectoryVisit(0, 0, 20200101),
		models.TrajectoryVisit(1, 1, 20200102),
	))
	dataset.Add(trajectory("b",
		models.TrajectoryVisit(0, 0, 20200101),
	))
	return dataset
}

func TestLocationAttackRisk(t *testing.T) {
	dataset := twoIndividualDataset()
	atk, err := NewLocationAttack(1)
	require.NoError(t, err)
	atk.WithLogger(logrus.New())

	// Instance {(0,0)} matches both records (probability 1/2); instance
	// {(1,1)} matches only a (probability 1). The risk is the maximum.
	a, _ := dataset.Get("a")
	risk, err := atk.Risk(context.Background(), dataset, a)
	require.NoError(t, err)
	assert.Equal(t, 1.0, risk)

	b, _ := dataset.Get("b")
	risk, err = atk.Risk(context.Background(), dataset, b)
	require.NoError(t, err)
	assert.Equal(t, 0.5, risk)
}

func TestAllRisksCoversEveryIndividual(t *testing.T) {
	dataset := twoIndividualDataset()
	atk, err := NewLocationAttack(1)
	require.NoError(t, err)

	report, err := atk.AllRisks(context.Background(), dataset)
	require.NoError(t, err)
	require.Equal(t, 2, report.Len())

	for _, id := range []string{"a", "b"} {
		risk, ok := report.Risk(id)
		require.True(t, ok, id)
		assert.GreaterOrEqual(t, risk, 0.0)
		assert.LessOrEqual(t, risk, 1.0)
	}
	assert.Equal(t, AttackLocation, report.Attack)
}

func TestRiskUsesFullHistoryWhenKExceedsVisits(t *testing.T) {
	dataset := twoIndividualDataset()
	atk, err := NewLocationAttack(10)
	require.NoError(t, err)

	// A full-history instance always matches its own record, so the risk is
	// well defined even when k exceeds the visit count.
	a, _ := dataset.Get("a")
	risk, err := atk.Risk(context.Background(), dataset, a)
	require.NoError(t, err)
	assert.Equal(t, 1.0, risk)
}

func TestRiskHonorsCancellation(t *testing.T) {
	dataset := twoIndividualDataset()
	atk, err := NewLocationAttack(1)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a, _ := dataset.Get("a")
	_, err = atk.Risk(ctx, dataset, a)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

// neverMatcher simulates a defective matching rule so the degenerate
// aggregation path can be exercised.
type neverMatcher struct{}

func (neverMatcher) Matches(*models.Record, []models.Visit) bool { return false }

func TestRiskSurfacesDegenerateAggregation(t *testing.T) {
	dataset := twoIndividualDataset()
	atk := newAttack("broken", 1, neverMatcher{})

	a, _ := dataset.Get("a")
	_, err := atk.Risk(context.Background(), dataset, a)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrDegenerateAggregation)
}

func TestHomeWorkAttackRisk(t *testing.T) {
	dataset := models.NewDataset()
	dataset.Add(freqVector("a",
		models.FrequencyVisit(0, 0, 10),
		models.FrequencyVisit(1, 1, 5),
	))
	dataset.Add(freqVector("b",
		models.FrequencyVisit(2, 2, 10),
		models.FrequencyVisit(3, 3, 5),
	))

	atk, err := NewHomeWorkAttack(1)
	require.NoError(t, err)

	a, _ := dataset.Get("a")
	risk, err := atk.Risk(context.Background(), dataset, a)
	require.NoError(t, err)
	assert.Equal(t, 1.0, risk, "distinct home/work pairs identify uniquely")
}

func TestHomeWorkAttackNeedsTwoVisits(t *testing.T) {
	dataset := models.NewDataset()
	dataset.Add(freqVector("a", models.FrequencyVisit(0, 0, 10)))

	atk, err := NewHomeWorkAttack(0.5)
	require.NoError(t, err)

	a, _ := dataset.Get("a")
	_, err = atk.Risk(context.Background(), dataset, a)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientVisits)
}

func TestInstanceBudgetBoundsEnumeration(t *testing.T) {
	dataset := models.NewDataset()
	record := models.NewTrajectory("a")
	for i := 0; i < 10; i++ {
		record.AddVisit(models.TrajectoryVisit(float64(i), float64(i), int64(i)))
	}
	dataset.Add(record)

	atk, err := NewLocationAttack(3)
	require.NoError(t, err)
	atk.WithInstanceBudget(5)

	// Any instance identifies the only individual, so the truncated maximum
	// is still exact here; the point is that evaluation stops early.
	risk, err := atk.Risk(context.Background(), dataset, record)
	require.NoError(t, err)
	assert.Equal(t, 1.0, risk)
}

func TestConstructorValidation(t *testing.T) {
	_, err := NewLocationAttack(0)
	assert.ErrorIs(t, err, apperrors.ErrInvalidKnowledgeSize)

	_, err = NewLocationSequenceAttack(-1)
	assert.ErrorIs(t, err, apperrors.ErrInvalidKnowledgeSize)

	_, err = NewFrequencyAttack(1, 1.5)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTolerance)

	_, err = NewProbabilityAttack(1, -0.1)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTolerance)

	_, err = NewProportionAttack(1, 2)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTolerance)

	_, err = NewHomeWorkAttack(-1)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTolerance)

	_, err = NewVisitAttackNamed(1, "eon")
	assert.ErrorIs(t, err, apperrors.ErrInvalidPrecision)
}

func TestCatalogForName(t *testing.T) {
	for _, name := range Names() {
		params := Params{K: 2, Tolerance: 0.5, Precision: "day"}
		atk, err := ForName(name, params)
		require.NoError(t, err, name)
		assert.Equal(t, name, atk.Name())
	}

	_, err := ForName("teleport", Params{K: 1})
	assert.ErrorIs(t, err, apperrors.ErrUnknownAttack)

	_, err = ForName(AttackVisit, Params{K: 1})
	require.Error(t, err, "visit attack requires a precision level")
}
