package aggregation

import (
	models "github.com/shardeum/explorerx/pkg/db/models/explorer"
	"github.com/shopspring/decimal"
)

// Builders turn daily stat rows into chart series. All of them sort their
// input ascending by day first, so either wire shape of the same rows
// produces the identical series.

// NewAccountsSeries charts accounts first seen per day.
func NewAccountsSeries(stats []models.DailyAccountStat) Series {
	points := make([]Point, len(stats))
	for i, s := range stats {
		points[i] = Point{
			Timestamp: s.DayStart,
			Value:     decimal.NewFromUint64(s.NewAccounts),
		}
	}
	SortPoints(points)
	return Series{Points: points, Markers: Summarize(points, ExcludeZeroLows)}
}

// ActiveAccountsSeries charts accounts written per day. Zero is a legitimate
// minimum here, unlike the new-accounts counter.
func ActiveAccountsSeries(stats []models.DailyAccountStat) Series {
	points := make([]Point, len(stats))
	for i, s := range stats {
		points[i] = Point{
			Timestamp: s.DayStart,
			Value:     decimal.NewFromUint64(s.ActiveAccounts),
		}
	}
	SortPoints(points)
	return Series{Points: points, Markers: Summarize(points, IncludeZeroLows)}
}

// TotalAccountsSeries charts the cumulative distinct-address count, folded
// from the per-day new-accounts values.
func TotalAccountsSeries(stats []models.DailyAccountStat) Series {
	points := make([]Point, len(stats))
	for i, s := range stats {
		points[i] = Point{
			Timestamp: s.DayStart,
			Value:     decimal.NewFromUint64(s.NewAccounts),
		}
	}
	SortPoints(points)
	points = Cumulative(points, decimal.Zero)
	return Series{Points: points, Markers: Summarize(points, IncludeZeroLows)}
}

// TransactionsSeries charts transactions per day with the per-type
// breakdown carried through for the chart tooltip.
func TransactionsSeries(stats []models.DailyTransactionStat) Series {
	points := make([]Point, len(stats))
	for i, s := range stats {
		points[i] = Point{
			Timestamp: s.DayStart,
			Value:     decimal.NewFromUint64(s.TotalTxs),
			Breakdown: map[string]decimal.Decimal{
				"transfer":     decimal.NewFromUint64(s.TransferTxs),
				"message":      decimal.NewFromUint64(s.MessageTxs),
				"stake":        decimal.NewFromUint64(s.StakeTxs),
				"unstake":      decimal.NewFromUint64(s.UnstakeTxs),
				"node_reward":  decimal.NewFromUint64(s.NodeRewardTxs),
				"claim_reward": decimal.NewFromUint64(s.ClaimRewardTxs),
				"penalty":      decimal.NewFromUint64(s.PenaltyTxs),
				"register":     decimal.NewFromUint64(s.RegisterTxs),
				"other":        decimal.NewFromUint64(s.OtherTxs),
			},
		}
	}
	SortPoints(points)
	return Series{Points: points, Markers: Summarize(points, ExcludeZeroLows)}
}

// SupplySeries charts circulating supply: the per-day supply deltas folded
// over the configured genesis allocation.
func SupplySeries(cfg Config, stats []models.DailyCoinStat) Series {
	points := make([]Point, len(stats))
	for i, s := range stats {
		points[i] = Point{
			Timestamp: s.DayStart,
			Value:     SupplyDelta(s.Minted, s.RewardRealized, s.TransactionFee, s.BurntFee, s.PenaltyAmount),
			Breakdown: map[string]decimal.Decimal{
				"minted":         s.Minted,
				"rewardRealized": s.RewardRealized,
				"transactionFee": s.TransactionFee,
				"burntFee":       s.BurntFee,
				"penaltyAmount":  s.PenaltyAmount,
			},
		}
	}
	SortPoints(points)
	points = Cumulative(points, cfg.GenesisSupply)
	return Series{Points: points, Markers: Summarize(points, IncludeZeroLows)}
}

// StakedSeries charts total stake: per-day stake deltas folded from zero.
func StakedSeries(stats []models.DailyCoinStat) Series {
	points := make([]Point, len(stats))
	for i, s := range stats {
		points[i] = Point{
			Timestamp: s.DayStart,
			Value:     StakeDelta(s.Staked, s.Unstaked, s.StakePenalty),
			Breakdown: map[string]decimal.Decimal{
				"staked":       s.Staked,
				"unstaked":     s.Unstaked,
				"stakePenalty": s.StakePenalty,
			},
		}
	}
	SortPoints(points)
	points = Cumulative(points, decimal.Zero)
	return Series{Points: points, Markers: Summarize(points, IncludeZeroLows)}
}
