package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"testing"

	explorerdb "github.com/shardeum/explorerx/pkg/db/explorer"
	models "github.com/shardeum/explorerx/pkg/db/models/explorer"
	"github.com/shardeum/explorerx/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB connects to the database named by POSTGRES_TEST_URL and resets
// the explorer tables. Tests that need it skip when the variable is unset.
func setupTestDB(ctx context.Context, t *testing.T) *explorerdb.DB {
	t.Helper()

	url := os.Getenv("POSTGRES_TEST_URL")
	if url == "" {
		t.Skip("POSTGRES_TEST_URL not set")
	}
	t.Setenv("POSTGRES_URL", url)

	logger, err := logging.New()
	require.NoError(t, err)

	db, err := explorerdb.New(ctx, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Exec(ctx, `TRUNCATE accounts, transactions, daily_account_stats, daily_transaction_stats, daily_coin_stats`))

	return db
}

func TestBulkUpsertAccountsIsolatesFailedChunk(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(ctx, t)

	logger, err := logging.New()
	require.NoError(t, err)

	loader := NewLoader(Config{ChunkSize: 3, Workers: 2}, db, logger)
	t.Cleanup(loader.Close)

	// Nine records split into three chunks. The middle chunk carries a
	// payload Postgres rejects as JSONB, so that transaction rolls back
	// while the chunks around it commit.
	var records []*models.Account
	for i := 1; i <= 9; i++ {
		records = append(records, &models.Account{
			AccountID:   fmt.Sprintf("acct-%02d", i),
			Data:        json.RawMessage(`{"balance":"1"}`),
			Timestamp:   int64(i * 1000),
			CycleNumber: uint64(i),
			AccountType: models.AccountTypeUser,
		})
	}
	records[4].Data = json.RawMessage(`{not json`)

	res := loader.BulkUpsertAccounts(ctx, records)
	assert.Equal(t, 9, res.Received)
	assert.Equal(t, 3, res.Chunks)
	assert.Equal(t, 1, res.FailedChunks)
	assert.Equal(t, 6, res.Written)

	// Every row outside the poisoned chunk is committed.
	for _, i := range []int{1, 2, 3, 7, 8, 9} {
		got, err := db.GetAccountByID(ctx, fmt.Sprintf("acct-%02d", i))
		require.NoError(t, err)
		assert.Equal(t, int64(i*1000), got.Timestamp)
	}

	// No row from the failed chunk survives, poisoned or not.
	for _, i := range []int{4, 5, 6} {
		_, err := db.GetAccountByID(ctx, fmt.Sprintf("acct-%02d", i))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	}

	// Resubmitting the chunk with the payload repaired lands its rows.
	records[4].Data = json.RawMessage(`{"balance":"1"}`)
	records[4].Hash = ""
	res = loader.BulkUpsertAccounts(ctx, records[3:6])
	assert.Equal(t, 0, res.FailedChunks)
	assert.Equal(t, 3, res.Written)

	got, err := db.GetAccountByID(ctx, "acct-05")
	require.NoError(t, err)
	assert.Equal(t, int64(5000), got.Timestamp)
}
