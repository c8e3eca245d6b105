package explorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayStart(t *testing.T) {
	assert.Equal(t, int64(0), DayStart(0))
	assert.Equal(t, int64(0), DayStart(86_399_999))
	assert.Equal(t, MillisPerDay, DayStart(MillisPerDay))
	assert.Equal(t, MillisPerDay, DayStart(MillisPerDay+12345))
}

func TestDecodeDailyAccountStatsBothShapes(t *testing.T) {
	object := []byte(`[
		{"dateStartTime": 86400000, "newAccounts": 5, "activeAccounts": 7, "totalAccounts": 5},
		{"dateStartTime": 172800000, "newAccounts": 0, "activeAccounts": 2, "totalAccounts": 5}
	]`)
	array := []byte(`[
		[86400000, 5, 7, 5],
		[172800000, 0, 2, 5]
	]`)

	fromObject, err := DecodeDailyAccountStats(object, ShapeObject)
	require.NoError(t, err)
	fromArray, err := DecodeDailyAccountStats(array, ShapeArray)
	require.NoError(t, err)

	assert.Equal(t, fromObject, fromArray)
	assert.Equal(t, uint64(5), fromObject[0].NewAccounts)
}

func TestDecodeDailyAccountStatsTruncatedArrayRows(t *testing.T) {
	// Older feeds emit rows without the trailing counters; missing elements
	// decode as zero.
	data := []byte(`[[86400000, 5], [172800000, 0]]`)

	out, err := DecodeDailyAccountStats(data, ShapeArray)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, uint64(5), out[0].NewAccounts)
	assert.Equal(t, uint64(0), out[0].ActiveAccounts)
	assert.Equal(t, uint64(0), out[1].NewAccounts)
}

func TestDecodeDailyCoinStatsBothShapes(t *testing.T) {
	object := []byte(`[
		{"dateStartTime": 86400000, "minted": "10", "rewardRealized": "2",
		 "transactionFee": "1", "burntFee": "0.5", "penaltyAmount": "0.2",
		 "staked": "100", "unstaked": "40", "stakePenalty": "3"}
	]`)
	array := []byte(`[[86400000, "10", "2", "1", "0.5", "0.2", "100", "40", "3"]]`)

	fromObject, err := DecodeDailyCoinStats(object, ShapeObject)
	require.NoError(t, err)
	fromArray, err := DecodeDailyCoinStats(array, ShapeArray)
	require.NoError(t, err)

	require.Len(t, fromObject, 1)
	require.Len(t, fromArray, 1)
	assert.True(t, fromObject[0].Minted.Equal(fromArray[0].Minted))
	assert.True(t, fromObject[0].BurntFee.Equal(fromArray[0].BurntFee))
	assert.Equal(t, "0.5", fromObject[0].BurntFee.String())
}

func TestDecodeDailyTransactionStatsBadPayload(t *testing.T) {
	_, err := DecodeDailyTransactionStats([]byte(`{"not":"a list"}`), ShapeObject)
	require.Error(t, err)

	_, err = DecodeDailyTransactionStats([]byte(`[["day-start-as-string", 5]]`), ShapeArray)
	require.Error(t, err)
}

func TestParseResponseShape(t *testing.T) {
	assert.Equal(t, ShapeArray, ParseResponseShape("array"))
	assert.Equal(t, ShapeObject, ParseResponseShape("object"))
	// Unknown or absent toggles fall back to the object form.
	assert.Equal(t, ShapeObject, ParseResponseShape(""))
	assert.Equal(t, ShapeObject, ParseResponseShape("csv"))
}
