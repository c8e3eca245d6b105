package explorer

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	models "github.com/shardeum/explorerx/pkg/db/models/explorer"
	"github.com/shardeum/explorerx/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB connects to the database named by POSTGRES_TEST_URL and resets
// the explorer tables. Tests that need it skip when the variable is unset.
func setupTestDB(ctx context.Context, t *testing.T) *DB {
	t.Helper()

	url := os.Getenv("POSTGRES_TEST_URL")
	if url == "" {
		t.Skip("POSTGRES_TEST_URL not set")
	}
	t.Setenv("POSTGRES_URL", url)

	logger, err := logging.New()
	require.NoError(t, err)

	db, err := New(ctx, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Exec(ctx, `TRUNCATE accounts, transactions, daily_account_stats, daily_transaction_stats, daily_coin_stats`))

	return db
}

func TestUpsertAccountsConflictRule(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(ctx, t)

	fresh := &models.Account{
		AccountID:   "acct-1",
		Data:        json.RawMessage(`{"balance":"10"}`),
		Timestamp:   5000,
		CycleNumber: 10,
		AccountType: models.AccountTypeUser,
	}
	require.NoError(t, db.UpsertAccounts(ctx, db.Pool, []*models.Account{fresh}))

	got, err := db.GetAccountByID(ctx, "acct-1")
	require.NoError(t, err)
	assert.Equal(t, int64(5000), got.Timestamp)
	assert.Equal(t, int64(5000), got.CreatedTimestamp)

	// A strictly newer write replaces the mutable fields.
	newer := &models.Account{
		AccountID:   "acct-1",
		Data:        json.RawMessage(`{"balance":"20"}`),
		Timestamp:   6000,
		CycleNumber: 12,
		AccountType: models.AccountTypeUser,
	}
	require.NoError(t, db.UpsertAccounts(ctx, db.Pool, []*models.Account{newer}))

	got, err = db.GetAccountByID(ctx, "acct-1")
	require.NoError(t, err)
	assert.Equal(t, int64(6000), got.Timestamp)
	assert.Equal(t, uint64(12), got.CycleNumber)
	assert.Equal(t, int64(5000), got.CreatedTimestamp)

	// A stale write is a silent no-op for mutable fields but still lowers
	// the first-seen timestamp.
	stale := &models.Account{
		AccountID:   "acct-1",
		Data:        json.RawMessage(`{"balance":"1"}`),
		Timestamp:   3000,
		CycleNumber: 2,
		AccountType: models.AccountTypeUser,
	}
	require.NoError(t, db.UpsertAccounts(ctx, db.Pool, []*models.Account{stale}))

	got, err = db.GetAccountByID(ctx, "acct-1")
	require.NoError(t, err)
	assert.Equal(t, int64(6000), got.Timestamp)
	assert.Equal(t, uint64(12), got.CycleNumber)
	assert.JSONEq(t, `{"balance":"20"}`, string(got.Data))
	assert.Equal(t, int64(3000), got.CreatedTimestamp)
}

func TestQueryAccountsOrderingAndCount(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(ctx, t)

	var batch []*models.Account
	for i := 1; i <= 5; i++ {
		batch = append(batch, &models.Account{
			AccountID:   string(rune('a'+i-1)) + "-acct",
			Data:        json.RawMessage(`{"balance":"1"}`),
			Timestamp:   int64(i * 1000),
			CycleNumber: uint64(i),
			AccountType: models.AccountTypeUser,
		})
	}
	require.NoError(t, db.UpsertAccounts(ctx, db.Pool, batch))

	// Rangeless queries return the newest rows first.
	rows, err := db.QueryAccounts(ctx, models.AccountQuery{Limit: 2})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, uint64(5), rows[0].CycleNumber)
	assert.Equal(t, uint64(4), rows[1].CycleNumber)

	// Range scans walk history oldest-first.
	rows, err = db.QueryAccounts(ctx, models.AccountQuery{
		CycleRange: &models.Range{Start: 2, End: 4},
	})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, uint64(2), rows[0].CycleNumber)
	assert.Equal(t, uint64(4), rows[2].CycleNumber)

	// Count shares the predicate, not the page bounds.
	total, err := db.CountAccounts(ctx, models.AccountQuery{
		CycleRange: &models.Range{Start: 2, End: 4},
		Limit:      1,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(3), total)

	// Limit 0 is unbounded.
	rows, err = db.QueryAccounts(ctx, models.AccountQuery{})
	require.NoError(t, err)
	assert.Len(t, rows, 5)
}

func TestQueryTransactionsByAccount(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(ctx, t)

	to := "acct-2"
	txs := []*models.Transaction{
		{TxID: "t1", Timestamp: 1000, CycleNumber: 1, TransactionType: models.TxTypeTransfer, TxFrom: "acct-1", TxTo: &to, Data: json.RawMessage(`{}`)},
		{TxID: "t2", Timestamp: 2000, CycleNumber: 2, TransactionType: models.TxTypeTransfer, TxFrom: "acct-2", Data: json.RawMessage(`{}`)},
		{TxID: "t3", Timestamp: 3000, CycleNumber: 3, TransactionType: models.TxTypeMessage, TxFrom: "acct-3", Data: json.RawMessage(`{}`)},
	}
	require.NoError(t, db.UpsertTransactions(ctx, db.Pool, txs))

	// The account filter matches sender or receiver.
	rows, err := db.QueryTransactions(ctx, models.TransactionQuery{AccountID: "acct-2"})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	total, err := db.CountTransactions(ctx, models.TransactionQuery{AccountID: "acct-2"})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), total)

	_, err = db.GetTransactionByID(ctx, "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestComputeDailyStats(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(ctx, t)

	day1 := models.MillisPerDay
	day2 := 2 * models.MillisPerDay

	accounts := []*models.Account{
		{AccountID: "acct-1", Data: json.RawMessage(`{}`), Timestamp: day1 + 100, AccountType: models.AccountTypeUser},
		{AccountID: "acct-2", Data: json.RawMessage(`{}`), Timestamp: day1 + 200, AccountType: models.AccountTypeUser},
		{AccountID: "acct-3", Data: json.RawMessage(`{}`), Timestamp: day2 + 100, AccountType: models.AccountTypeUser},
	}
	require.NoError(t, db.UpsertAccounts(ctx, db.Pool, accounts))

	txs := []*models.Transaction{
		{TxID: "t1", Timestamp: day1 + 100, TransactionType: models.TxTypeTransfer, Data: json.RawMessage(`{"transactionFee":"0.01"}`)},
		{TxID: "t2", Timestamp: day1 + 200, TransactionType: models.TxTypeStake, Data: json.RawMessage(`{"stake":"100","transactionFee":"0.01"}`)},
		{TxID: "t3", Timestamp: day2 + 100, TransactionType: models.TxTypeToll, Data: json.RawMessage(`{"transactionFee":"0.01"}`)},
	}
	require.NoError(t, db.UpsertTransactions(ctx, db.Pool, txs))

	require.NoError(t, db.ComputeDailyStats(ctx, 0))

	accountStats, err := db.GetDailyAccountStats(ctx, nil)
	require.NoError(t, err)
	require.Len(t, accountStats, 2)
	assert.Equal(t, uint64(2), accountStats[0].NewAccounts)
	assert.Equal(t, uint64(2), accountStats[0].TotalAccounts)
	assert.Equal(t, uint64(1), accountStats[1].NewAccounts)
	assert.Equal(t, uint64(3), accountStats[1].TotalAccounts)

	txStats, err := db.GetDailyTransactionStats(ctx, nil)
	require.NoError(t, err)
	require.Len(t, txStats, 2)
	assert.Equal(t, uint64(2), txStats[0].TotalTxs)
	assert.Equal(t, uint64(1), txStats[0].TransferTxs)
	assert.Equal(t, uint64(1), txStats[0].StakeTxs)
	assert.Equal(t, uint64(1), txStats[1].OtherTxs)

	coinStats, err := db.GetDailyCoinStats(ctx, nil)
	require.NoError(t, err)
	require.Len(t, coinStats, 2)
	assert.Equal(t, "100", coinStats[0].Staked.String())
	assert.Equal(t, "0.02", coinStats[0].TransactionFee.String())
}
