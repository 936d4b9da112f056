package listview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCompareValuesStrings(t *testing.T) {
	col := newCollator()

	assert.Negative(t, compareValues(col, "alpha", "beta"))
	assert.Positive(t, compareValues(col, "beta", "alpha"))
	assert.Zero(t, compareValues(col, "same", "same"))

	// Collation, not byte order: case differences don't dominate.
	assert.Negative(t, compareValues(col, "apple", "Banana"))
}

func TestCompareValuesISODateStrings(t *testing.T) {
	col := newCollator()

	assert.Negative(t, compareValues(col, "2024-01-01", "2024-06-01"))
	assert.Negative(t, compareValues(col, "2024-01-01T00:00:00Z", "2024-06-01T00:00:00Z"))
	assert.Zero(t, compareValues(col, "2024-01-01T00:00:00Z", "2024-01-01"))

	// Mixed layouts still compare as timestamps.
	assert.Positive(t, compareValues(col, "2024-06-01 12:00:00", "2024-06-01T00:00:00Z"))
}

func TestCompareValuesNumbers(t *testing.T) {
	col := newCollator()

	assert.Negative(t, compareValues(col, 1, 2))
	assert.Positive(t, compareValues(col, 2.5, 2))
	assert.Zero(t, compareValues(col, int64(7), 7))
	assert.Negative(t, compareValues(col, float32(1.5), 2))
}

func TestCompareValuesTimes(t *testing.T) {
	col := newCollator()
	early := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.Negative(t, compareValues(col, early, late))
	assert.Positive(t, compareValues(col, late, early))
	assert.Zero(t, compareValues(col, early, early))
}

func TestCompareValuesNils(t *testing.T) {
	col := newCollator()

	assert.Zero(t, compareValues(col, nil, nil))
	assert.Positive(t, compareValues(col, nil, "defined"))
	assert.Negative(t, compareValues(col, "defined", nil))

	var p *string
	assert.Positive(t, compareValues(col, p, "defined"))

	var pt *time.Time
	assert.Positive(t, compareValues(col, pt, time.Now()))
}

func TestCompareValuesFallback(t *testing.T) {
	col := newCollator()

	// Heterogeneous values compare by their string form.
	assert.Negative(t, compareValues(col, true, "z"))
	assert.Zero(t, compareValues(col, true, "true"))
}

func TestParseISODate(t *testing.T) {
	for _, s := range []string{
		"2024-03-15",
		"2024-03-15T10:30:00Z",
		"2024-03-15T10:30:00.123Z",
		"2024-03-15T10:30:00",
		"2024-03-15 10:30:00",
	} {
		_, ok := parseISODate(s)
		assert.True(t, ok, s)
	}

	_, ok := parseISODate("not a date")
	assert.False(t, ok)
}

func TestISODatePattern(t *testing.T) {
	assert.True(t, isoDatePattern.MatchString("2024-03-15"))
	assert.True(t, isoDatePattern.MatchString("2024-03-15T10:30:00Z"))
	assert.True(t, isoDatePattern.MatchString("2024-03-15 10:30:00"))
	assert.False(t, isoDatePattern.MatchString("PRJ-2024-001"))
	assert.False(t, isoDatePattern.MatchString("15/03/2024"))
}

func TestNormalizeUnwrapsPointers(t *testing.T) {
	s := "x"
	n := 3
	f := 1.5
	ts := time.Now()

	assert.Equal(t, "x", normalize(&s))
	assert.Equal(t, 3, normalize(&n))
	assert.Equal(t, 1.5, normalize(&f))
	assert.Equal(t, ts, normalize(&ts))

	var sp *string
	var fp *float64
	var tp *time.Time
	assert.Nil(t, normalize(sp))
	assert.Nil(t, normalize(fp))
	assert.Nil(t, normalize(tp))
	assert.Nil(t, normalize(nil))
}
