package aggregation

import (
	"sort"

	"github.com/shardeum/explorerx/pkg/utils"
	"github.com/shopspring/decimal"
)

// Config carries the aggregation constants explicitly; nothing in this
// package reads ambient globals.
type Config struct {
	// GenesisSupply seeds the cumulative supply fold. The chain starts with
	// a non-zero allocation, so folding from zero would understate every
	// point in the series.
	GenesisSupply decimal.Decimal
}

// ConfigFromEnv reads the aggregation constants from the environment.
func ConfigFromEnv() Config {
	supply, err := decimal.NewFromString(utils.Env("GENESIS_SUPPLY", "100000000"))
	if err != nil {
		supply = decimal.Zero
	}
	return Config{GenesisSupply: supply}
}

// Point is one chart sample: a day-start timestamp, the primary value, and
// denormalized breakdown fields carried verbatim for display. Breakdowns are
// not re-derivable from the point alone.
type Point struct {
	Timestamp int64                      `json:"timestamp"`
	Value     decimal.Decimal            `json:"value"`
	Breakdown map[string]decimal.Decimal `json:"breakdown,omitempty"`
}

// Markers are the summary callouts rendered next to a chart.
type Markers struct {
	Highest *Point `json:"highest,omitempty"`
	Lowest  *Point `json:"lowest,omitempty"`
	Current *Point `json:"current,omitempty"`
}

// Series is a complete chart payload.
type Series struct {
	Points  []Point `json:"points"`
	Markers Markers `json:"markers"`
}

// ZeroPolicy controls whether zero-valued points can become the "lowest"
// marker. Counters of new activity exclude zeros (a day with nothing new is
// not a meaningful minimum); counters of current state include them (a day
// with zero active accounts is a legitimate low). The distinction is
// per-series, not a uniform rule.
type ZeroPolicy int

const (
	ExcludeZeroLows ZeroPolicy = iota
	IncludeZeroLows
)

// SortPoints orders points ascending by timestamp, in place. Marker
// tie-breaking ("first occurrence wins") is defined against this order.
func SortPoints(points []Point) {
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Timestamp < points[j].Timestamp
	})
}

// Summarize computes the highest/lowest/current markers by linear scan over
// ascending-timestamp points. Ties keep the earliest occurrence.
func Summarize(points []Point, policy ZeroPolicy) Markers {
	if len(points) == 0 {
		return Markers{}
	}

	var highest, lowest *Point
	for i := range points {
		p := &points[i]
		if highest == nil || p.Value.GreaterThan(highest.Value) {
			highest = p
		}
		if policy == ExcludeZeroLows && p.Value.IsZero() {
			continue
		}
		if lowest == nil || p.Value.LessThan(lowest.Value) {
			lowest = p
		}
	}

	return Markers{
		Highest: highest,
		Lowest:  lowest,
		Current: &points[len(points)-1],
	}
}

// Cumulative folds a running sum over chronologically sorted points,
// starting from seed. Breakdown fields pass through verbatim.
func Cumulative(points []Point, seed decimal.Decimal) []Point {
	out := make([]Point, len(points))
	running := seed
	for i, p := range points {
		running = running.Add(p.Value)
		out[i] = Point{
			Timestamp: p.Timestamp,
			Value:     running,
			Breakdown: p.Breakdown,
		}
	}
	return out
}

// SupplyDelta is the per-day change in circulating supply:
// minted + rewardRealized - transactionFee - burntFee - penaltyAmount.
func SupplyDelta(minted, rewardRealized, transactionFee, burntFee, penaltyAmount decimal.Decimal) decimal.Decimal {
	return minted.Add(rewardRealized).Sub(transactionFee).Sub(burntFee).Sub(penaltyAmount)
}

// StakeDelta is the per-day change in total stake:
// staked - unstaked - penalty.
func StakeDelta(staked, unstaked, penalty decimal.Decimal) decimal.Decimal {
	return staked.Sub(unstaked).Sub(penalty)
}
