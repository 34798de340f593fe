package attack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/geoprivacy/mobrisk/pkg/errors"
)

func TestPrecisionTruncate(t *testing.T) {
	const ts = int64(20200102150405) // 2020-01-02 15:04:05

	cases := []struct {
		precision Precision
		want      int64
	}{
		{PrecisionYear, 2020},
		{PrecisionMonth, 202001},
		{PrecisionDay, 20200102},
		{PrecisionHour, 2020010215},
		{PrecisionMinute, 202001021504},
		{PrecisionSecond, 20200102150405},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.precision.truncate(ts), tc.precision.String())
	}
}

func TestPrecisionTruncateShortTimestamp(t *testing.T) {
	// A day-resolution timestamp is unchanged at finer precision levels.
	assert.Equal(t, int64(20200102), PrecisionSecond.truncate(20200102))
	assert.Equal(t, int64(2020), PrecisionYear.truncate(20200102))
}

func TestParsePrecision(t *testing.T) {
	p, err := ParsePrecision("Day")
	require.NoError(t, err)
	assert.Equal(t, PrecisionDay, p)

	p, err = ParsePrecision(" second ")
	require.NoError(t, err)
	assert.Equal(t, PrecisionSecond, p)

	_, err = ParsePrecision("fortnight")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidPrecision)
}
