package attack

import (
	"strconv"
	"strings"

	"github.com/geoprivacy/mobrisk/pkg/errors"
)

// Precision is the truncation granularity applied to timestamps before
// temporal equality comparison in the visit attack. Timestamps are decimal
// encodings from year down to second (yyyyMMddHHmmss), so each level keeps a
// fixed prefix of the digit string.
type Precision int

const (
	PrecisionYear Precision = iota
	PrecisionMonth
	PrecisionDay
	PrecisionHour
	PrecisionMinute
	PrecisionSecond
)

var precisionDigits = [...]int{
	PrecisionYear:   4,
	PrecisionMonth:  6,
	PrecisionDay:    8,
	PrecisionHour:   10,
	PrecisionMinute: 12,
	PrecisionSecond: 14,
}

var precisionNames = [...]string{
	PrecisionYear:   "year",
	PrecisionMonth:  "month",
	PrecisionDay:    "day",
	PrecisionHour:   "hour",
	PrecisionMinute: "minute",
	PrecisionSecond: "second",
}

// String returns the lowercase name of the precision level.
func (p Precision) String() string {
	if p < PrecisionYear || p > PrecisionSecond {
		return "precision(" + strconv.Itoa(int(p)) + ")"
	}
	return precisionNames[p]
}

// ParsePrecision parses a precision level name. It accepts the level names in
// any case and rejects everything else with a configuration error.
func ParsePrecision(s string) (Precision, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for p, n := range precisionNames {
		if n == name {
			return Precision(p), nil
		}
	}
	return 0, errors.WrapError(errors.ErrInvalidPrecision,
		errors.ErrorTypeConfiguration, errors.CodeInvalidPrecision,
		"unrecognized precision level").WithDetails(s)
}

// truncate cuts a decimal-encoded timestamp down to the precision's prefix
// length. Timestamps shorter than the prefix are returned unchanged.
func (p Precision) truncate(t int64) int64 {
	digits := precisionDigits[p]
	s := strconv.FormatInt(t, 10)
	if len(s) <= digits {
		return t
	}
	out, _ := strconv.ParseInt(s[:digits], 10, 64)
	return out
}
