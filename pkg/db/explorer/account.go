package explorer

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	models "github.com/shardeum/explorerx/pkg/db/models/explorer"
	"github.com/shardeum/explorerx/pkg/db/postgres"
	"go.uber.org/zap"
)

// initAccounts creates the accounts table
func (db *DB) initAccounts(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS accounts (
			account_id TEXT NOT NULL,
			data JSONB NOT NULL,
			hash TEXT NOT NULL,
			timestamp BIGINT NOT NULL,
			cycle_number BIGINT NOT NULL,
			is_global BOOLEAN NOT NULL DEFAULT FALSE,
			account_type TEXT NOT NULL,
			created_timestamp BIGINT NOT NULL,
			PRIMARY KEY (account_id)
		);

		CREATE INDEX IF NOT EXISTS idx_accounts_cycle ON accounts(cycle_number);
		CREATE INDEX IF NOT EXISTS idx_accounts_timestamp ON accounts(timestamp);
		CREATE INDEX IF NOT EXISTS idx_accounts_type ON accounts(account_type);
		CREATE INDEX IF NOT EXISTS idx_accounts_created ON accounts(created_timestamp);
	`

	return db.Exec(ctx, query)
}

// Conflict rule: mutable fields only move when the incoming timestamp is
// strictly newer (equal timestamps keep the stored row; a stale write is a
// silent no-op, not an error), while created_timestamp takes LEAST
// unconditionally so an older first sighting still lowers the recorded
// creation time even on a rejected update.
const accountUpsertSQL = `
	INSERT INTO accounts (
		account_id, data, hash, timestamp, cycle_number, is_global, account_type, created_timestamp
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (account_id) DO UPDATE SET
		data = CASE WHEN EXCLUDED.timestamp > accounts.timestamp THEN EXCLUDED.data ELSE accounts.data END,
		hash = CASE WHEN EXCLUDED.timestamp > accounts.timestamp THEN EXCLUDED.hash ELSE accounts.hash END,
		cycle_number = CASE WHEN EXCLUDED.timestamp > accounts.timestamp THEN EXCLUDED.cycle_number ELSE accounts.cycle_number END,
		is_global = CASE WHEN EXCLUDED.timestamp > accounts.timestamp THEN EXCLUDED.is_global ELSE accounts.is_global END,
		account_type = CASE WHEN EXCLUDED.timestamp > accounts.timestamp THEN EXCLUDED.account_type ELSE accounts.account_type END,
		created_timestamp = LEAST(accounts.created_timestamp, EXCLUDED.created_timestamp),
		timestamp = GREATEST(accounts.timestamp, EXCLUDED.timestamp)
`

// UpsertAccounts inserts or merges account records through the given
// executor (pool or transaction). One statement per row is queued so the
// conflict rule applies row by row, including duplicate keys within the
// same batch.
func (db *DB) UpsertAccounts(ctx context.Context, exec postgres.Executor, accounts []*models.Account) error {
	if len(accounts) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, account := range accounts {
		account.Normalize()
		batch.Queue(accountUpsertSQL,
			account.AccountID,
			account.Data,
			account.Hash,
			account.Timestamp,
			account.CycleNumber,
			account.IsGlobal,
			account.AccountType,
			account.CreatedTimestamp,
		)
	}

	return postgres.ExecuteBatch(ctx, exec, batch)
}

const accountColumns = `account_id, data, hash, timestamp, cycle_number, is_global, account_type, created_timestamp`

// QueryAccounts returns a filtered, ordered page of accounts. Rows that fail
// to scan or whose payload does not decode for their discriminator are
// logged and skipped, so a page may legitimately come back shorter than the
// requested limit.
func (db *DB) QueryAccounts(ctx context.Context, q models.AccountQuery) ([]*models.Account, error) {
	p := accountPredicate(q)
	query := `SELECT ` + accountColumns + ` FROM accounts` +
		p.where() + orderClause(q.HasRange()) + pageClause(p, q.Skip, q.Limit)

	rows, err := db.Query(ctx, query, p.args...)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Account, 0, q.Limit)
	for rows.Next() {
		var a models.Account
		if scanErr := rows.Scan(
			&a.AccountID, &a.Data, &a.Hash, &a.Timestamp,
			&a.CycleNumber, &a.IsGlobal, &a.AccountType, &a.CreatedTimestamp,
		); scanErr != nil {
			db.Logger.Warn("Skipping undecodable account row", zap.Error(scanErr))
			continue
		}
		if _, decodeErr := a.DecodePayload(); decodeErr != nil {
			db.Logger.Warn("Skipping account with malformed payload",
				zap.String("account_id", a.AccountID),
				zap.Error(decodeErr))
			continue
		}
		out = append(out, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}

	return out, nil
}

// CountAccounts returns the total row count for the same predicate
// QueryAccounts uses, so callers can compute page totals independently of
// the page fetch.
func (db *DB) CountAccounts(ctx context.Context, q models.AccountQuery) (uint64, error) {
	p := accountPredicate(q)
	query := `SELECT count(*) FROM accounts` + p.where()

	var count uint64
	if err := db.QueryRow(ctx, query, p.args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	return count, nil
}

// GetAccountByID retrieves a single account by its id.
func (db *DB) GetAccountByID(ctx context.Context, accountID string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1`

	var a models.Account
	err := db.QueryRow(ctx, query, accountID).Scan(
		&a.AccountID, &a.Data, &a.Hash, &a.Timestamp,
		&a.CycleNumber, &a.IsGlobal, &a.AccountType, &a.CreatedTimestamp,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("account %s not found", accountID)
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return &a, nil
}
