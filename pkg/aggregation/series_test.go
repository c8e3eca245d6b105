package aggregation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestSupplyDeltaExact(t *testing.T) {
	// 10 + 2 - 1 - 0.5 - 0.2 must come out exactly, not as a float
	// approximation.
	got := SupplyDelta(dec("10"), dec("2"), dec("1"), dec("0.5"), dec("0.2"))
	assert.True(t, got.Equal(dec("10.3")), "got %s", got)
}

func TestStakeDelta(t *testing.T) {
	got := StakeDelta(dec("100"), dec("40"), dec("3"))
	assert.True(t, got.Equal(dec("57")), "got %s", got)
}

func TestCumulativeSeededFold(t *testing.T) {
	points := []Point{
		{Timestamp: 1, Value: dec("5")},
		{Timestamp: 2, Value: dec("0")},
		{Timestamp: 3, Value: dec("3")},
	}

	folded := Cumulative(points, dec("100"))

	require.Len(t, folded, 3)
	assert.True(t, folded[0].Value.Equal(dec("105")))
	assert.True(t, folded[1].Value.Equal(dec("105")))
	assert.True(t, folded[2].Value.Equal(dec("108")))
	// The input stays untouched.
	assert.True(t, points[0].Value.Equal(dec("5")))
}

func TestSummarizeZeroPolicy(t *testing.T) {
	points := []Point{
		{Timestamp: 1, Value: dec("5")},
		{Timestamp: 2, Value: dec("0")},
		{Timestamp: 3, Value: dec("3")},
	}

	excl := Summarize(points, ExcludeZeroLows)
	require.NotNil(t, excl.Lowest)
	assert.Equal(t, int64(3), excl.Lowest.Timestamp)
	assert.True(t, excl.Lowest.Value.Equal(dec("3")))

	incl := Summarize(points, IncludeZeroLows)
	require.NotNil(t, incl.Lowest)
	assert.Equal(t, int64(2), incl.Lowest.Timestamp)
	assert.True(t, incl.Lowest.Value.IsZero())

	assert.Equal(t, int64(1), excl.Highest.Timestamp)
	assert.Equal(t, int64(3), excl.Current.Timestamp)
}

func TestSummarizeTiesKeepFirst(t *testing.T) {
	points := []Point{
		{Timestamp: 1, Value: dec("7")},
		{Timestamp: 2, Value: dec("7")},
		{Timestamp: 3, Value: dec("2")},
		{Timestamp: 4, Value: dec("2")},
	}

	m := Summarize(points, IncludeZeroLows)
	assert.Equal(t, int64(1), m.Highest.Timestamp)
	assert.Equal(t, int64(3), m.Lowest.Timestamp)
}

func TestSummarizeAllZerosExcluded(t *testing.T) {
	points := []Point{
		{Timestamp: 1, Value: decimal.Zero},
		{Timestamp: 2, Value: decimal.Zero},
	}

	m := Summarize(points, ExcludeZeroLows)
	// No non-zero point exists, so there is no lowest marker.
	assert.Nil(t, m.Lowest)
	require.NotNil(t, m.Highest)
	assert.Equal(t, int64(2), m.Current.Timestamp)
}

func TestSummarizeEmpty(t *testing.T) {
	m := Summarize(nil, IncludeZeroLows)
	assert.Nil(t, m.Highest)
	assert.Nil(t, m.Lowest)
	assert.Nil(t, m.Current)
}

func TestSortPointsStable(t *testing.T) {
	points := []Point{
		{Timestamp: 3, Value: dec("1")},
		{Timestamp: 1, Value: dec("2")},
		{Timestamp: 2, Value: dec("3")},
	}
	SortPoints(points)

	assert.Equal(t, int64(1), points[0].Timestamp)
	assert.Equal(t, int64(2), points[1].Timestamp)
	assert.Equal(t, int64(3), points[2].Timestamp)
}
