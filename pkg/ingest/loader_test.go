package ingest

import (
	"encoding/json"
	"testing"

	models "github.com/shardeum/explorerx/pkg/db/models/explorer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunk(t *testing.T) {
	tests := []struct {
		name     string
		items    int
		size     int
		want     int
		lastSize int
	}{
		{name: "even split", items: 10, size: 5, want: 2, lastSize: 5},
		{name: "remainder chunk", items: 11, size: 5, want: 3, lastSize: 1},
		{name: "single short chunk", items: 3, size: 5, want: 1, lastSize: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := make([]int, tt.items)
			chunks := chunk(items, tt.size)
			require.Len(t, chunks, tt.want)
			assert.Len(t, chunks[len(chunks)-1], tt.lastSize)
		})
	}

	assert.Nil(t, chunk([]int{}, 5))
}

func TestDedupeAccountsMergesRepeatedKeys(t *testing.T) {
	records := []*models.Account{
		{AccountID: "a", Timestamp: 5000, Data: json.RawMessage(`{"balance":"1"}`)},
		{AccountID: "b", Timestamp: 1000, Data: json.RawMessage(`{"balance":"2"}`)},
		{AccountID: "a", Timestamp: 3000, Data: json.RawMessage(`{"balance":"3"}`)},
		{AccountID: "a", Timestamp: 7000, Data: json.RawMessage(`{"balance":"4"}`)},
	}

	out := dedupeAccounts(records)

	require.Len(t, out, 2)
	// First-occurrence order is preserved.
	assert.Equal(t, "a", out[0].AccountID)
	assert.Equal(t, "b", out[1].AccountID)

	// The winner is the newest delivery, the created timestamp the oldest.
	assert.Equal(t, int64(7000), out[0].Timestamp)
	assert.Equal(t, int64(3000), out[0].CreatedTimestamp)
	assert.JSONEq(t, `{"balance":"4"}`, string(out[0].Data))

	// Normalize ran: hashes are filled in.
	assert.NotEmpty(t, out[0].Hash)
	assert.NotEmpty(t, out[1].Hash)
}

func TestDedupeAccountsDoesNotMutateInput(t *testing.T) {
	first := &models.Account{AccountID: "a", Timestamp: 5000, Data: json.RawMessage(`{}`)}
	records := []*models.Account{
		first,
		{AccountID: "a", Timestamp: 9000, Data: json.RawMessage(`{}`)},
	}

	dedupeAccounts(records)
	assert.Equal(t, int64(5000), first.Timestamp)
}

func TestDedupeTransactions(t *testing.T) {
	records := []*models.Transaction{
		{TxID: "t1", Timestamp: 100, TransactionType: models.TxTypeTransfer},
		{TxID: "t1", Timestamp: 300, TransactionType: models.TxTypeStake},
		{TxID: "t2", Timestamp: 200, TransactionType: models.TxTypeMessage},
		{TxID: "t1", Timestamp: 200, TransactionType: models.TxTypePenalty},
	}

	out := dedupeTransactions(records)

	require.Len(t, out, 2)
	assert.Equal(t, "t1", out[0].TxID)
	assert.Equal(t, int64(300), out[0].Timestamp)
	assert.Equal(t, models.TxTypeStake, out[0].TransactionType)
}

func TestConfigDefaults(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 1000, cfg.ChunkSize)
	assert.Equal(t, 4, cfg.Workers)
}
