package aggregation

import (
	"encoding/json"
	"testing"

	models "github.com/shardeum/explorerx/pkg/db/models/explorer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const day = models.MillisPerDay

func TestTotalAccountsSeriesCumulative(t *testing.T) {
	// Three days with 5, 0 and 3 new accounts: the running total must read
	// 5, 5, 8 and the new-accounts low must skip the zero day.
	stats := []models.DailyAccountStat{
		{DayStart: 1 * day, NewAccounts: 5},
		{DayStart: 2 * day, NewAccounts: 0},
		{DayStart: 3 * day, NewAccounts: 3},
	}

	total := TotalAccountsSeries(stats)
	require.Len(t, total.Points, 3)
	assert.Equal(t, "5", total.Points[0].Value.String())
	assert.Equal(t, "5", total.Points[1].Value.String())
	assert.Equal(t, "8", total.Points[2].Value.String())

	// Days one and two tie at 5; the first occurrence is the low.
	require.NotNil(t, total.Markers.Lowest)
	assert.Equal(t, 1*day, total.Markers.Lowest.Timestamp)
	assert.Equal(t, "5", total.Markers.Lowest.Value.String())

	fresh := NewAccountsSeries(stats)
	require.NotNil(t, fresh.Markers.Lowest)
	assert.Equal(t, 3*day, fresh.Markers.Lowest.Timestamp)
	assert.Equal(t, "3", fresh.Markers.Lowest.Value.String())
}

func TestActiveAccountsSeriesIncludesZeroLow(t *testing.T) {
	stats := []models.DailyAccountStat{
		{DayStart: 1 * day, ActiveAccounts: 4},
		{DayStart: 2 * day, ActiveAccounts: 0},
	}

	series := ActiveAccountsSeries(stats)
	require.NotNil(t, series.Markers.Lowest)
	assert.Equal(t, 2*day, series.Markers.Lowest.Timestamp)
	assert.True(t, series.Markers.Lowest.Value.IsZero())
}

func TestSeriesIdenticalAcrossWireShapes(t *testing.T) {
	object := []byte(`[
		{"dateStartTime": 86400000, "newAccounts": 5},
		{"dateStartTime": 172800000, "newAccounts": 0},
		{"dateStartTime": 259200000, "newAccounts": 3}
	]`)
	array := []byte(`[[86400000, 5], [172800000, 0], [259200000, 3]]`)

	fromObject, err := models.DecodeDailyAccountStats(object, models.ShapeObject)
	require.NoError(t, err)
	fromArray, err := models.DecodeDailyAccountStats(array, models.ShapeArray)
	require.NoError(t, err)

	objectSeries := TotalAccountsSeries(fromObject)
	arraySeries := TotalAccountsSeries(fromArray)

	// Same rows in either shape must derive a bit-identical series.
	objectJSON, err := json.Marshal(objectSeries)
	require.NoError(t, err)
	arrayJSON, err := json.Marshal(arraySeries)
	require.NoError(t, err)
	assert.Equal(t, objectJSON, arrayJSON)
}

func TestSeriesSortsUnorderedInput(t *testing.T) {
	stats := []models.DailyAccountStat{
		{DayStart: 3 * day, NewAccounts: 3},
		{DayStart: 1 * day, NewAccounts: 5},
		{DayStart: 2 * day, NewAccounts: 0},
	}

	series := TotalAccountsSeries(stats)
	assert.Equal(t, "8", series.Points[2].Value.String())
	assert.Equal(t, 3*day, series.Markers.Current.Timestamp)
}

func TestTransactionsSeriesBreakdown(t *testing.T) {
	stats := []models.DailyTransactionStat{
		{DayStart: 1 * day, TotalTxs: 10, TransferTxs: 6, MessageTxs: 3, OtherTxs: 1},
	}

	series := TransactionsSeries(stats)
	require.Len(t, series.Points, 1)
	assert.Equal(t, "10", series.Points[0].Value.String())
	assert.Equal(t, "6", series.Points[0].Breakdown["transfer"].String())
	assert.Equal(t, "1", series.Points[0].Breakdown["other"].String())
}

func TestSupplySeriesSeededWithGenesis(t *testing.T) {
	cfg := Config{GenesisSupply: dec("100")}
	stats := []models.DailyCoinStat{
		{
			DayStart:       1 * day,
			Minted:         dec("10"),
			RewardRealized: dec("2"),
			TransactionFee: dec("1"),
			BurntFee:       dec("0.5"),
			PenaltyAmount:  dec("0.2"),
		},
	}

	series := SupplySeries(cfg, stats)
	require.Len(t, series.Points, 1)
	// 100 + 10.3
	assert.Equal(t, "110.3", series.Points[0].Value.String())
	assert.Equal(t, "10", series.Points[0].Breakdown["minted"].String())
}

func TestStakedSeriesFoldsFromZero(t *testing.T) {
	stats := []models.DailyCoinStat{
		{DayStart: 1 * day, Staked: dec("100"), Unstaked: dec("40"), StakePenalty: dec("3")},
		{DayStart: 2 * day, Staked: dec("10")},
	}

	series := StakedSeries(stats)
	require.Len(t, series.Points, 2)
	assert.Equal(t, "57", series.Points[0].Value.String())
	assert.Equal(t, "67", series.Points[1].Value.String())
}
