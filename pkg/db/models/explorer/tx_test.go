package explorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransactionMerge(t *testing.T) {
	to := "acct-2"
	stored := &Transaction{
		TxID:            "tx-1",
		Timestamp:       5000,
		CycleNumber:     10,
		TransactionType: TxTypeTransfer,
		TxFrom:          "acct-1",
		TxTo:            &to,
	}

	// Strictly newer timestamp replaces the row.
	newer := &Transaction{TxID: "tx-1", Timestamp: 6000, CycleNumber: 11, TransactionType: TxTypeStake, TxFrom: "acct-1"}
	out := stored.Merge(newer)
	assert.Equal(t, TxTypeStake, out.TransactionType)
	assert.Equal(t, int64(6000), out.Timestamp)

	// Equal or older timestamps keep the stored row.
	out = stored.Merge(&Transaction{TxID: "tx-1", Timestamp: 5000, TransactionType: TxTypeMessage})
	assert.Equal(t, TxTypeTransfer, out.TransactionType)

	out = stored.Merge(&Transaction{TxID: "tx-1", Timestamp: 4000, TransactionType: TxTypeMessage})
	assert.Equal(t, TxTypeTransfer, out.TransactionType)
}

func TestTransactionTypeValid(t *testing.T) {
	assert.True(t, TxTypeTransfer.Valid())
	assert.True(t, TxTypeApplyDevParameters.Valid())
	assert.False(t, TransactionType("teleport").Valid())
}
