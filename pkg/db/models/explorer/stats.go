package explorer

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// MillisPerDay is the day-bucket width for all daily stat rows.
const MillisPerDay int64 = 86_400_000

// DayStart truncates an epoch-millisecond timestamp to its day bucket.
func DayStart(ts int64) int64 {
	return ts - ts%MillisPerDay
}

// Daily stat rows travel in two wire shapes: the named-object form below and
// a compact positional array form. Both decode to the same struct and the
// derived series must come out identical either way; the array decoders
// tolerate missing trailing elements (zero-filled) because older feeds emit
// truncated rows.

// DailyAccountStat is one day bucket of account activity.
type DailyAccountStat struct {
	DayStart       int64  `json:"dateStartTime"`
	NewAccounts    uint64 `json:"newAccounts"`
	ActiveAccounts uint64 `json:"activeAccounts"`
	TotalAccounts  uint64 `json:"totalAccounts"`
}

// Array returns the positional wire form:
// [dateStartTime, newAccounts, activeAccounts, totalAccounts].
func (s *DailyAccountStat) Array() []any {
	return []any{s.DayStart, s.NewAccounts, s.ActiveAccounts, s.TotalAccounts}
}

// AccountStatFromArray decodes the positional wire form.
func AccountStatFromArray(arr []json.RawMessage) (DailyAccountStat, error) {
	var s DailyAccountStat
	var err error
	if s.DayStart, err = intAt(arr, 0); err != nil {
		return s, err
	}
	if s.NewAccounts, err = uintAt(arr, 1); err != nil {
		return s, err
	}
	if s.ActiveAccounts, err = uintAt(arr, 2); err != nil {
		return s, err
	}
	if s.TotalAccounts, err = uintAt(arr, 3); err != nil {
		return s, err
	}
	return s, nil
}

// DecodeDailyAccountStats decodes a full payload in either wire shape.
func DecodeDailyAccountStats(data []byte, shape ResponseShape) ([]DailyAccountStat, error) {
	if shape == ShapeObject {
		var out []DailyAccountStat
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("decode account stats: %w", err)
		}
		return out, nil
	}

	rows, err := arrayRows(data)
	if err != nil {
		return nil, fmt.Errorf("decode account stats: %w", err)
	}
	out := make([]DailyAccountStat, 0, len(rows))
	for i, row := range rows {
		s, rowErr := AccountStatFromArray(row)
		if rowErr != nil {
			return nil, fmt.Errorf("decode account stats row %d: %w", i, rowErr)
		}
		out = append(out, s)
	}
	return out, nil
}

// DailyTransactionStat is one day bucket of transaction counts. The per-type
// columns are denormalized for display and carried verbatim; they are not
// re-derivable from the total.
type DailyTransactionStat struct {
	DayStart       int64  `json:"dateStartTime"`
	TotalTxs       uint64 `json:"totalTxs"`
	TransferTxs    uint64 `json:"totalTransferTxs"`
	MessageTxs     uint64 `json:"totalMessageTxs"`
	StakeTxs       uint64 `json:"totalStakeTxs"`
	UnstakeTxs     uint64 `json:"totalUnstakeTxs"`
	NodeRewardTxs  uint64 `json:"totalNodeRewardTxs"`
	ClaimRewardTxs uint64 `json:"totalClaimRewardTxs"`
	PenaltyTxs     uint64 `json:"totalPenaltyTxs"`
	RegisterTxs    uint64 `json:"totalRegisterTxs"`
	OtherTxs       uint64 `json:"totalOtherTxs"`
}

// Array returns the positional wire form:
// [dateStartTime, totalTxs, transfer, message, stake, unstake, nodeReward,
// claimReward, penalty, register, other].
func (s *DailyTransactionStat) Array() []any {
	return []any{
		s.DayStart, s.TotalTxs,
		s.TransferTxs, s.MessageTxs, s.StakeTxs, s.UnstakeTxs,
		s.NodeRewardTxs, s.ClaimRewardTxs, s.PenaltyTxs, s.RegisterTxs,
		s.OtherTxs,
	}
}

// TransactionStatFromArray decodes the positional wire form.
func TransactionStatFromArray(arr []json.RawMessage) (DailyTransactionStat, error) {
	var s DailyTransactionStat
	var err error
	if s.DayStart, err = intAt(arr, 0); err != nil {
		return s, err
	}
	fields := []*uint64{
		&s.TotalTxs,
		&s.TransferTxs, &s.MessageTxs, &s.StakeTxs, &s.UnstakeTxs,
		&s.NodeRewardTxs, &s.ClaimRewardTxs, &s.PenaltyTxs, &s.RegisterTxs,
		&s.OtherTxs,
	}
	for i, f := range fields {
		if *f, err = uintAt(arr, i+1); err != nil {
			return s, err
		}
	}
	return s, nil
}

// DecodeDailyTransactionStats decodes a full payload in either wire shape.
func DecodeDailyTransactionStats(data []byte, shape ResponseShape) ([]DailyTransactionStat, error) {
	if shape == ShapeObject {
		var out []DailyTransactionStat
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("decode transaction stats: %w", err)
		}
		return out, nil
	}

	rows, err := arrayRows(data)
	if err != nil {
		return nil, fmt.Errorf("decode transaction stats: %w", err)
	}
	out := make([]DailyTransactionStat, 0, len(rows))
	for i, row := range rows {
		s, rowErr := TransactionStatFromArray(row)
		if rowErr != nil {
			return nil, fmt.Errorf("decode transaction stats row %d: %w", i, rowErr)
		}
		out = append(out, s)
	}
	return out, nil
}

// DailyCoinStat is one day bucket of token movement. All amounts are exact
// decimals; the supply and stake delta formulas in pkg/aggregation consume
// these fields as-is.
type DailyCoinStat struct {
	DayStart       int64           `json:"dateStartTime"`
	Minted         decimal.Decimal `json:"minted"`
	RewardRealized decimal.Decimal `json:"rewardRealized"`
	TransactionFee decimal.Decimal `json:"transactionFee"`
	BurntFee       decimal.Decimal `json:"burntFee"`
	PenaltyAmount  decimal.Decimal `json:"penaltyAmount"`
	Staked         decimal.Decimal `json:"staked"`
	Unstaked       decimal.Decimal `json:"unstaked"`
	StakePenalty   decimal.Decimal `json:"stakePenalty"`
}

// Array returns the positional wire form:
// [dateStartTime, minted, rewardRealized, transactionFee, burntFee,
// penaltyAmount, staked, unstaked, stakePenalty].
func (s *DailyCoinStat) Array() []any {
	return []any{
		s.DayStart, s.Minted, s.RewardRealized, s.TransactionFee,
		s.BurntFee, s.PenaltyAmount, s.Staked, s.Unstaked, s.StakePenalty,
	}
}

// CoinStatFromArray decodes the positional wire form.
func CoinStatFromArray(arr []json.RawMessage) (DailyCoinStat, error) {
	var s DailyCoinStat
	var err error
	if s.DayStart, err = intAt(arr, 0); err != nil {
		return s, err
	}
	fields := []*decimal.Decimal{
		&s.Minted, &s.RewardRealized, &s.TransactionFee, &s.BurntFee,
		&s.PenaltyAmount, &s.Staked, &s.Unstaked, &s.StakePenalty,
	}
	for i, f := range fields {
		if *f, err = decimalAt(arr, i+1); err != nil {
			return s, err
		}
	}
	return s, nil
}

// DecodeDailyCoinStats decodes a full payload in either wire shape.
func DecodeDailyCoinStats(data []byte, shape ResponseShape) ([]DailyCoinStat, error) {
	if shape == ShapeObject {
		var out []DailyCoinStat
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("decode coin stats: %w", err)
		}
		return out, nil
	}

	rows, err := arrayRows(data)
	if err != nil {
		return nil, fmt.Errorf("decode coin stats: %w", err)
	}
	out := make([]DailyCoinStat, 0, len(rows))
	for i, row := range rows {
		s, rowErr := CoinStatFromArray(row)
		if rowErr != nil {
			return nil, fmt.Errorf("decode coin stats row %d: %w", i, rowErr)
		}
		out = append(out, s)
	}
	return out, nil
}

func arrayRows(data []byte) ([][]json.RawMessage, error) {
	var rows [][]json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func intAt(arr []json.RawMessage, i int) (int64, error) {
	if i >= len(arr) {
		return 0, nil
	}
	var v int64
	if err := json.Unmarshal(arr[i], &v); err != nil {
		return 0, fmt.Errorf("element %d: %w", i, err)
	}
	return v, nil
}

func uintAt(arr []json.RawMessage, i int) (uint64, error) {
	if i >= len(arr) {
		return 0, nil
	}
	var v uint64
	if err := json.Unmarshal(arr[i], &v); err != nil {
		return 0, fmt.Errorf("element %d: %w", i, err)
	}
	return v, nil
}

func decimalAt(arr []json.RawMessage, i int) (decimal.Decimal, error) {
	if i >= len(arr) {
		return decimal.Zero, nil
	}
	var v decimal.Decimal
	if err := json.Unmarshal(arr[i], &v); err != nil {
		return decimal.Zero, fmt.Errorf("element %d: %w", i, err)
	}
	return v, nil
}
