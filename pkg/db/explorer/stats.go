package explorer

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	models "github.com/shardeum/explorerx/pkg/db/models/explorer"
	"github.com/shardeum/explorerx/pkg/db/postgres"
)

// The daily stat tables are written by the aggregator job and read by the
// chart endpoints. Count columns default to 0 so the per-column rollup
// statements can upsert independently.

func (db *DB) initDailyAccountStats(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS daily_account_stats (
			day_start BIGINT NOT NULL,
			new_accounts BIGINT NOT NULL DEFAULT 0,
			active_accounts BIGINT NOT NULL DEFAULT 0,
			total_accounts BIGINT NOT NULL DEFAULT 0,
			PRIMARY KEY (day_start)
		);
	`
	return db.Exec(ctx, query)
}

func (db *DB) initDailyTransactionStats(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS daily_transaction_stats (
			day_start BIGINT NOT NULL,
			total_txs BIGINT NOT NULL DEFAULT 0,
			transfer_txs BIGINT NOT NULL DEFAULT 0,
			message_txs BIGINT NOT NULL DEFAULT 0,
			stake_txs BIGINT NOT NULL DEFAULT 0,
			unstake_txs BIGINT NOT NULL DEFAULT 0,
			node_reward_txs BIGINT NOT NULL DEFAULT 0,
			claim_reward_txs BIGINT NOT NULL DEFAULT 0,
			penalty_txs BIGINT NOT NULL DEFAULT 0,
			register_txs BIGINT NOT NULL DEFAULT 0,
			other_txs BIGINT NOT NULL DEFAULT 0,
			PRIMARY KEY (day_start)
		);
	`
	return db.Exec(ctx, query)
}

func (db *DB) initDailyCoinStats(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS daily_coin_stats (
			day_start BIGINT NOT NULL,
			minted NUMERIC NOT NULL DEFAULT 0,
			reward_realized NUMERIC NOT NULL DEFAULT 0,
			transaction_fee NUMERIC NOT NULL DEFAULT 0,
			burnt_fee NUMERIC NOT NULL DEFAULT 0,
			penalty_amount NUMERIC NOT NULL DEFAULT 0,
			staked NUMERIC NOT NULL DEFAULT 0,
			unstaked NUMERIC NOT NULL DEFAULT 0,
			stake_penalty NUMERIC NOT NULL DEFAULT 0,
			PRIMARY KEY (day_start)
		);
	`
	return db.Exec(ctx, query)
}

func dayRangeClause(r *models.Range, args *[]any) string {
	if r == nil {
		return ""
	}
	*args = append(*args, r.Start)
	clause := fmt.Sprintf(" WHERE day_start >= $%d", len(*args))
	*args = append(*args, r.End)
	clause += fmt.Sprintf(" AND day_start <= $%d", len(*args))
	return clause
}

// GetDailyAccountStats returns daily account stat rows ascending by day.
func (db *DB) GetDailyAccountStats(ctx context.Context, r *models.Range) ([]models.DailyAccountStat, error) {
	var args []any
	query := `
		SELECT day_start, new_accounts, active_accounts, total_accounts
		FROM daily_account_stats` + dayRangeClause(r, &args) + `
		ORDER BY day_start ASC`

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query daily account stats: %w", err)
	}
	defer rows.Close()

	var out []models.DailyAccountStat
	for rows.Next() {
		var s models.DailyAccountStat
		if err := rows.Scan(&s.DayStart, &s.NewAccounts, &s.ActiveAccounts, &s.TotalAccounts); err != nil {
			return nil, fmt.Errorf("scan daily account stats: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetDailyTransactionStats returns daily transaction stat rows ascending by day.
func (db *DB) GetDailyTransactionStats(ctx context.Context, r *models.Range) ([]models.DailyTransactionStat, error) {
	var args []any
	query := `
		SELECT day_start, total_txs, transfer_txs, message_txs, stake_txs, unstake_txs,
		       node_reward_txs, claim_reward_txs, penalty_txs, register_txs, other_txs
		FROM daily_transaction_stats` + dayRangeClause(r, &args) + `
		ORDER BY day_start ASC`

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query daily transaction stats: %w", err)
	}
	defer rows.Close()

	var out []models.DailyTransactionStat
	for rows.Next() {
		var s models.DailyTransactionStat
		if err := rows.Scan(
			&s.DayStart, &s.TotalTxs, &s.TransferTxs, &s.MessageTxs, &s.StakeTxs, &s.UnstakeTxs,
			&s.NodeRewardTxs, &s.ClaimRewardTxs, &s.PenaltyTxs, &s.RegisterTxs, &s.OtherTxs,
		); err != nil {
			return nil, fmt.Errorf("scan daily transaction stats: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetDailyCoinStats returns daily coin stat rows ascending by day.
func (db *DB) GetDailyCoinStats(ctx context.Context, r *models.Range) ([]models.DailyCoinStat, error) {
	var args []any
	query := `
		SELECT day_start, minted, reward_realized, transaction_fee, burnt_fee,
		       penalty_amount, staked, unstaked, stake_penalty
		FROM daily_coin_stats` + dayRangeClause(r, &args) + `
		ORDER BY day_start ASC`

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query daily coin stats: %w", err)
	}
	defer rows.Close()

	var out []models.DailyCoinStat
	for rows.Next() {
		var s models.DailyCoinStat
		if err := rows.Scan(
			&s.DayStart, &s.Minted, &s.RewardRealized, &s.TransactionFee, &s.BurntFee,
			&s.PenaltyAmount, &s.Staked, &s.Unstaked, &s.StakePenalty,
		); err != nil {
			return nil, fmt.Errorf("scan daily coin stats: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// The stat upserts exist for backfill: historical rollups arrive from the
// legacy feed already bucketed, keyed by day_start. Last write wins; the
// aggregator recomputes the trailing window over them anyway.

// UpsertDailyAccountStats writes day-keyed account stat rows.
func (db *DB) UpsertDailyAccountStats(ctx context.Context, exec postgres.Executor, stats []models.DailyAccountStat) error {
	if len(stats) == 0 {
		return nil
	}
	query := `
		INSERT INTO daily_account_stats (day_start, new_accounts, active_accounts, total_accounts)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (day_start) DO UPDATE SET
			new_accounts = EXCLUDED.new_accounts,
			active_accounts = EXCLUDED.active_accounts,
			total_accounts = EXCLUDED.total_accounts
	`
	batch := &pgx.Batch{}
	for _, s := range stats {
		batch.Queue(query, s.DayStart, s.NewAccounts, s.ActiveAccounts, s.TotalAccounts)
	}
	return postgres.ExecuteBatch(ctx, exec, batch)
}

// UpsertDailyTransactionStats writes day-keyed transaction stat rows.
func (db *DB) UpsertDailyTransactionStats(ctx context.Context, exec postgres.Executor, stats []models.DailyTransactionStat) error {
	if len(stats) == 0 {
		return nil
	}
	query := `
		INSERT INTO daily_transaction_stats (
			day_start, total_txs, transfer_txs, message_txs, stake_txs, unstake_txs,
			node_reward_txs, claim_reward_txs, penalty_txs, register_txs, other_txs
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (day_start) DO UPDATE SET
			total_txs = EXCLUDED.total_txs,
			transfer_txs = EXCLUDED.transfer_txs,
			message_txs = EXCLUDED.message_txs,
			stake_txs = EXCLUDED.stake_txs,
			unstake_txs = EXCLUDED.unstake_txs,
			node_reward_txs = EXCLUDED.node_reward_txs,
			claim_reward_txs = EXCLUDED.claim_reward_txs,
			penalty_txs = EXCLUDED.penalty_txs,
			register_txs = EXCLUDED.register_txs,
			other_txs = EXCLUDED.other_txs
	`
	batch := &pgx.Batch{}
	for _, s := range stats {
		batch.Queue(query,
			s.DayStart, s.TotalTxs, s.TransferTxs, s.MessageTxs, s.StakeTxs, s.UnstakeTxs,
			s.NodeRewardTxs, s.ClaimRewardTxs, s.PenaltyTxs, s.RegisterTxs, s.OtherTxs)
	}
	return postgres.ExecuteBatch(ctx, exec, batch)
}

// UpsertDailyCoinStats writes day-keyed coin stat rows.
func (db *DB) UpsertDailyCoinStats(ctx context.Context, exec postgres.Executor, stats []models.DailyCoinStat) error {
	if len(stats) == 0 {
		return nil
	}
	query := `
		INSERT INTO daily_coin_stats (
			day_start, minted, reward_realized, transaction_fee, burnt_fee,
			penalty_amount, staked, unstaked, stake_penalty
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (day_start) DO UPDATE SET
			minted = EXCLUDED.minted,
			reward_realized = EXCLUDED.reward_realized,
			transaction_fee = EXCLUDED.transaction_fee,
			burnt_fee = EXCLUDED.burnt_fee,
			penalty_amount = EXCLUDED.penalty_amount,
			staked = EXCLUDED.staked,
			unstaked = EXCLUDED.unstaked,
			stake_penalty = EXCLUDED.stake_penalty
	`
	batch := &pgx.Batch{}
	for _, s := range stats {
		batch.Queue(query,
			s.DayStart, s.Minted, s.RewardRealized, s.TransactionFee, s.BurntFee,
			s.PenaltyAmount, s.Staked, s.Unstaked, s.StakePenalty)
	}
	return postgres.ExecuteBatch(ctx, exec, batch)
}

// ComputeDailyStats recomputes every daily rollup from the given day-start
// onward. Recomputing a trailing window (rather than only the latest day)
// heals late arrivals the same rows the next run.
func (db *DB) ComputeDailyStats(ctx context.Context, since int64) error {
	if err := db.computeDailyAccountStats(ctx, since); err != nil {
		return fmt.Errorf("compute daily account stats: %w", err)
	}
	if err := db.computeDailyTransactionStats(ctx, since); err != nil {
		return fmt.Errorf("compute daily transaction stats: %w", err)
	}
	if err := db.computeDailyCoinStats(ctx, since); err != nil {
		return fmt.Errorf("compute daily coin stats: %w", err)
	}
	return nil
}

func (db *DB) computeDailyAccountStats(ctx context.Context, since int64) error {
	// New accounts bucket by first-seen day, active accounts by last-write
	// day, so they roll up in separate statements.
	newSQL := `
		INSERT INTO daily_account_stats (day_start, new_accounts)
		SELECT (created_timestamp - created_timestamp % 86400000) AS day_start,
		       count(*) AS new_accounts
		FROM accounts
		WHERE created_timestamp >= $1
		GROUP BY day_start
		ON CONFLICT (day_start) DO UPDATE SET new_accounts = EXCLUDED.new_accounts
	`
	if err := db.Exec(ctx, newSQL, since); err != nil {
		return err
	}

	activeSQL := `
		INSERT INTO daily_account_stats (day_start, active_accounts)
		SELECT (timestamp - timestamp % 86400000) AS day_start,
		       count(*) AS active_accounts
		FROM accounts
		WHERE timestamp >= $1
		GROUP BY day_start
		ON CONFLICT (day_start) DO UPDATE SET active_accounts = EXCLUDED.active_accounts
	`
	if err := db.Exec(ctx, activeSQL, since); err != nil {
		return err
	}

	totalSQL := `
		UPDATE daily_account_stats s
		SET total_accounts = (
			SELECT count(*) FROM accounts a
			WHERE a.created_timestamp < s.day_start + 86400000
		)
		WHERE s.day_start >= $1
	`
	return db.Exec(ctx, totalSQL, since)
}

func (db *DB) computeDailyTransactionStats(ctx context.Context, since int64) error {
	query := `
		INSERT INTO daily_transaction_stats (
			day_start, total_txs, transfer_txs, message_txs, stake_txs, unstake_txs,
			node_reward_txs, claim_reward_txs, penalty_txs, register_txs, other_txs
		)
		SELECT (timestamp - timestamp % 86400000) AS day_start,
		       count(*),
		       count(*) FILTER (WHERE transaction_type = 'transfer'),
		       count(*) FILTER (WHERE transaction_type = 'message'),
		       count(*) FILTER (WHERE transaction_type = 'stake'),
		       count(*) FILTER (WHERE transaction_type = 'unstake'),
		       count(*) FILTER (WHERE transaction_type = 'node_reward'),
		       count(*) FILTER (WHERE transaction_type = 'claim_reward'),
		       count(*) FILTER (WHERE transaction_type = 'penalty'),
		       count(*) FILTER (WHERE transaction_type = 'register'),
		       count(*) FILTER (WHERE transaction_type NOT IN (
		           'transfer', 'message', 'stake', 'unstake', 'node_reward',
		           'claim_reward', 'penalty', 'register'
		       ))
		FROM transactions
		WHERE timestamp >= $1
		GROUP BY day_start
		ON CONFLICT (day_start) DO UPDATE SET
			total_txs = EXCLUDED.total_txs,
			transfer_txs = EXCLUDED.transfer_txs,
			message_txs = EXCLUDED.message_txs,
			stake_txs = EXCLUDED.stake_txs,
			unstake_txs = EXCLUDED.unstake_txs,
			node_reward_txs = EXCLUDED.node_reward_txs,
			claim_reward_txs = EXCLUDED.claim_reward_txs,
			penalty_txs = EXCLUDED.penalty_txs,
			register_txs = EXCLUDED.register_txs,
			other_txs = EXCLUDED.other_txs
	`
	return db.Exec(ctx, query, since)
}

func (db *DB) computeDailyCoinStats(ctx context.Context, since int64) error {
	// Token movement sums are pulled out of the transaction payloads; NUMERIC
	// keeps the amounts exact end to end.
	query := `
		INSERT INTO daily_coin_stats (
			day_start, minted, reward_realized, transaction_fee, burnt_fee,
			penalty_amount, staked, unstaked, stake_penalty
		)
		SELECT (timestamp - timestamp % 86400000) AS day_start,
		       COALESCE(sum((data->>'amount')::numeric) FILTER (WHERE transaction_type = 'create'), 0),
		       COALESCE(sum((data->>'reward')::numeric) FILTER (WHERE transaction_type IN ('node_reward', 'claim_reward')), 0),
		       COALESCE(sum((data->>'transactionFee')::numeric), 0),
		       COALESCE(sum((data->>'burntFee')::numeric), 0),
		       COALESCE(sum((data->>'penalty')::numeric) FILTER (WHERE transaction_type = 'penalty'), 0),
		       COALESCE(sum((data->>'stake')::numeric) FILTER (WHERE transaction_type = 'stake'), 0),
		       COALESCE(sum((data->>'stake')::numeric) FILTER (WHERE transaction_type = 'unstake'), 0),
		       COALESCE(sum((data->>'penalty')::numeric) FILTER (WHERE transaction_type IN ('stake', 'unstake')), 0)
		FROM transactions
		WHERE timestamp >= $1
		GROUP BY day_start
		ON CONFLICT (day_start) DO UPDATE SET
			minted = EXCLUDED.minted,
			reward_realized = EXCLUDED.reward_realized,
			transaction_fee = EXCLUDED.transaction_fee,
			burnt_fee = EXCLUDED.burnt_fee,
			penalty_amount = EXCLUDED.penalty_amount,
			staked = EXCLUDED.staked,
			unstaked = EXCLUDED.unstaked,
			stake_penalty = EXCLUDED.stake_penalty
	`
	return db.Exec(ctx, query, since)
}
