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

// initTransactions creates the transactions table. tx_from/tx_to are plain
// columns, not foreign keys: a transaction may reference an account that has
// not been ingested yet.
func (db *DB) initTransactions(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS transactions (
			tx_id TEXT NOT NULL,
			timestamp BIGINT NOT NULL,
			cycle_number BIGINT NOT NULL,
			transaction_type TEXT NOT NULL,
			tx_from TEXT NOT NULL DEFAULT '',
			tx_to TEXT,
			data JSONB NOT NULL,
			original_tx_data JSONB,
			PRIMARY KEY (tx_id)
		);

		CREATE INDEX IF NOT EXISTS idx_transactions_cycle ON transactions(cycle_number);
		CREATE INDEX IF NOT EXISTS idx_transactions_timestamp ON transactions(timestamp);
		CREATE INDEX IF NOT EXISTS idx_transactions_type ON transactions(transaction_type);
		CREATE INDEX IF NOT EXISTS idx_transactions_from ON transactions(tx_from) WHERE tx_from != '';
		CREATE INDEX IF NOT EXISTS idx_transactions_to ON transactions(tx_to) WHERE tx_to IS NOT NULL;
	`

	return db.Exec(ctx, query)
}

// Same conflict rule as accounts: strictly newer timestamps win, stale
// writes are silent no-ops.
const transactionUpsertSQL = `
	INSERT INTO transactions (
		tx_id, timestamp, cycle_number, transaction_type, tx_from, tx_to, data, original_tx_data
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (tx_id) DO UPDATE SET
		cycle_number = CASE WHEN EXCLUDED.timestamp > transactions.timestamp THEN EXCLUDED.cycle_number ELSE transactions.cycle_number END,
		transaction_type = CASE WHEN EXCLUDED.timestamp > transactions.timestamp THEN EXCLUDED.transaction_type ELSE transactions.transaction_type END,
		tx_from = CASE WHEN EXCLUDED.timestamp > transactions.timestamp THEN EXCLUDED.tx_from ELSE transactions.tx_from END,
		tx_to = CASE WHEN EXCLUDED.timestamp > transactions.timestamp THEN EXCLUDED.tx_to ELSE transactions.tx_to END,
		data = CASE WHEN EXCLUDED.timestamp > transactions.timestamp THEN EXCLUDED.data ELSE transactions.data END,
		original_tx_data = CASE WHEN EXCLUDED.timestamp > transactions.timestamp THEN EXCLUDED.original_tx_data ELSE transactions.original_tx_data END,
		timestamp = GREATEST(transactions.timestamp, EXCLUDED.timestamp)
`

// UpsertTransactions inserts or merges transaction records through the
// given executor, one statement per row.
func (db *DB) UpsertTransactions(ctx context.Context, exec postgres.Executor, txs []*models.Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, tx := range txs {
		batch.Queue(transactionUpsertSQL,
			tx.TxID,
			tx.Timestamp,
			tx.CycleNumber,
			tx.TransactionType,
			tx.TxFrom,
			tx.TxTo,
			tx.Data,
			tx.OriginalTxData,
		)
	}

	return postgres.ExecuteBatch(ctx, exec, batch)
}

const transactionColumns = `tx_id, timestamp, cycle_number, transaction_type, tx_from, tx_to, data, original_tx_data`

// QueryTransactions returns a filtered, ordered page of transactions.
// Undecodable rows are logged and skipped rather than failing the page.
func (db *DB) QueryTransactions(ctx context.Context, q models.TransactionQuery) ([]*models.Transaction, error) {
	p := transactionPredicate(q)
	query := `SELECT ` + transactionColumns + ` FROM transactions` +
		p.where() + orderClause(q.HasRange()) + pageClause(p, q.Skip, q.Limit)

	rows, err := db.Query(ctx, query, p.args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Transaction, 0, q.Limit)
	for rows.Next() {
		var tx models.Transaction
		if scanErr := rows.Scan(
			&tx.TxID, &tx.Timestamp, &tx.CycleNumber, &tx.TransactionType,
			&tx.TxFrom, &tx.TxTo, &tx.Data, &tx.OriginalTxData,
		); scanErr != nil {
			db.Logger.Warn("Skipping undecodable transaction row", zap.Error(scanErr))
			continue
		}
		out = append(out, &tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}

	return out, nil
}

// CountTransactions returns the total row count for the same predicate
// QueryTransactions uses.
func (db *DB) CountTransactions(ctx context.Context, q models.TransactionQuery) (uint64, error) {
	p := transactionPredicate(q)
	query := `SELECT count(*) FROM transactions` + p.where()

	var count uint64
	if err := db.QueryRow(ctx, query, p.args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return count, nil
}

// GetTransactionByID retrieves a single transaction by its id.
func (db *DB) GetTransactionByID(ctx context.Context, txID string) (*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE tx_id = $1`

	var tx models.Transaction
	err := db.QueryRow(ctx, query, txID).Scan(
		&tx.TxID, &tx.Timestamp, &tx.CycleNumber, &tx.TransactionType,
		&tx.TxFrom, &tx.TxTo, &tx.Data, &tx.OriginalTxData,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("transaction %s not found", txID)
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return &tx, nil
}
