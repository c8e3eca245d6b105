package explorer

import (
	"encoding/json"
)

// TransactionType is the closed enumeration of transaction kinds observed on
// the network. The aggregator buckets a fixed subset of these into the daily
// breakdown columns; everything else counts as "other".
type TransactionType string

const (
	TxTypeTransfer           TransactionType = "transfer"
	TxTypeMessage            TransactionType = "message"
	TxTypeToll               TransactionType = "toll"
	TxTypeFriend             TransactionType = "friend"
	TxTypeRemoveFriend       TransactionType = "remove_friend"
	TxTypeStake              TransactionType = "stake"
	TxTypeUnstake            TransactionType = "unstake"
	TxTypeNodeReward         TransactionType = "node_reward"
	TxTypeClaimReward        TransactionType = "claim_reward"
	TxTypePenalty            TransactionType = "penalty"
	TxTypeRegister           TransactionType = "register"
	TxTypeCreate             TransactionType = "create"
	TxTypeEmail              TransactionType = "email"
	TxTypeVerify             TransactionType = "verify"
	TxTypeSnapshot           TransactionType = "snapshot"
	TxTypeSnapshotClaim      TransactionType = "snapshot_claim"
	TxTypeIssue              TransactionType = "issue"
	TxTypeDevIssue           TransactionType = "dev_issue"
	TxTypeProposal           TransactionType = "proposal"
	TxTypeDevProposal        TransactionType = "dev_proposal"
	TxTypeVote               TransactionType = "vote"
	TxTypeDevVote            TransactionType = "dev_vote"
	TxTypeTally              TransactionType = "tally"
	TxTypeDevTally           TransactionType = "dev_tally"
	TxTypeApplyTally         TransactionType = "apply_tally"
	TxTypeApplyDevTally      TransactionType = "apply_dev_tally"
	TxTypeParameters         TransactionType = "parameters"
	TxTypeApplyParameters    TransactionType = "apply_parameters"
	TxTypeDevParameters      TransactionType = "dev_parameters"
	TxTypeApplyDevParameters TransactionType = "apply_dev_parameters"
	TxTypeChangeConfig       TransactionType = "change_config"
	TxTypeApplyChangeConfig  TransactionType = "apply_change_config"
	TxTypeChangeNetworkParam TransactionType = "change_network_param"
	TxTypeNetworkWindows     TransactionType = "network_windows"
	TxTypeInitNetwork        TransactionType = "init_network"
)

// TransactionTypes lists every known transaction kind.
var TransactionTypes = []TransactionType{
	TxTypeTransfer, TxTypeMessage, TxTypeToll, TxTypeFriend, TxTypeRemoveFriend,
	TxTypeStake, TxTypeUnstake, TxTypeNodeReward, TxTypeClaimReward, TxTypePenalty,
	TxTypeRegister, TxTypeCreate, TxTypeEmail, TxTypeVerify,
	TxTypeSnapshot, TxTypeSnapshotClaim,
	TxTypeIssue, TxTypeDevIssue, TxTypeProposal, TxTypeDevProposal,
	TxTypeVote, TxTypeDevVote, TxTypeTally, TxTypeDevTally,
	TxTypeApplyTally, TxTypeApplyDevTally,
	TxTypeParameters, TxTypeApplyParameters, TxTypeDevParameters, TxTypeApplyDevParameters,
	TxTypeChangeConfig, TxTypeApplyChangeConfig, TxTypeChangeNetworkParam,
	TxTypeNetworkWindows, TxTypeInitNetwork,
}

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	for _, known := range TransactionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Transaction is one row of the transactions table. TxFrom/TxTo reference
// accounts by id without a foreign key: the referenced account may not have
// been ingested yet.
type Transaction struct {
	TxID            string          `json:"txId"`
	Timestamp       int64           `json:"timestamp"`
	CycleNumber     uint64          `json:"cycleNumber"`
	TransactionType TransactionType `json:"transactionType"`
	TxFrom          string          `json:"txFrom,omitempty"`
	TxTo            *string         `json:"txTo,omitempty"`
	Data            json.RawMessage `json:"data"`
	OriginalTxData  json.RawMessage `json:"originalTxData,omitempty"`
}

// Merge applies the upsert conflict rule in memory, mirroring the SQL
// statement: strictly newer timestamps win, equal timestamps keep the stored
// record.
func (t *Transaction) Merge(incoming *Transaction) *Transaction {
	out := *t
	if incoming.Timestamp > t.Timestamp {
		out.Timestamp = incoming.Timestamp
		out.CycleNumber = incoming.CycleNumber
		out.TransactionType = incoming.TransactionType
		out.TxFrom = incoming.TxFrom
		out.TxTo = incoming.TxTo
		out.Data = incoming.Data
		out.OriginalTxData = incoming.OriginalTxData
	}
	return &out
}

// Array returns the compact positional wire form of the transaction,
// selected by the transactionResponseType=array query parameter.
func (t *Transaction) Array() []any {
	return []any{
		t.TxID,
		string(t.TransactionType),
		t.CycleNumber,
		t.Timestamp,
		t.TxFrom,
		t.TxTo,
		t.Data,
		t.OriginalTxData,
	}
}
