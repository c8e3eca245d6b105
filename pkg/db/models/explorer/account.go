package explorer

import (
	"encoding/json"
	"fmt"

	"github.com/shardeum/explorerx/pkg/utils"
	"github.com/shopspring/decimal"
)

// AccountType discriminates the polymorphic account payload.
type AccountType string

const (
	AccountTypeUser        AccountType = "UserAccount"
	AccountTypeNode        AccountType = "NodeAccount"
	AccountTypeAlias       AccountType = "AliasAccount"
	AccountTypeChat        AccountType = "ChatAccount"
	AccountTypeNetwork     AccountType = "NetworkAccount"
	AccountTypeIssue       AccountType = "IssueAccount"
	AccountTypeDevIssue    AccountType = "DevIssueAccount"
	AccountTypeProposal    AccountType = "ProposalAccount"
	AccountTypeDevProposal AccountType = "DevProposalAccount"
)

// AccountTypes lists every known discriminator value.
var AccountTypes = []AccountType{
	AccountTypeUser,
	AccountTypeNode,
	AccountTypeAlias,
	AccountTypeChat,
	AccountTypeNetwork,
	AccountTypeIssue,
	AccountTypeDevIssue,
	AccountTypeProposal,
	AccountTypeDevProposal,
}

// Valid reports whether t is one of the known account types.
func (t AccountType) Valid() bool {
	for _, known := range AccountTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Account is one row of the accounts table. Data holds the raw polymorphic
// payload; DecodePayload dispatches it on AccountType.
//
// Timestamp only ever advances (stale writes are dropped by the upsert rule),
// while CreatedTimestamp only ever decreases: it tracks the minimum timestamp
// observed for the account id, regardless of delivery order.
type Account struct {
	AccountID        string          `json:"accountId"`
	Data             json.RawMessage `json:"data"`
	Hash             string          `json:"hash"`
	Timestamp        int64           `json:"timestamp"`
	CycleNumber      uint64          `json:"cycleNumber"`
	IsGlobal         bool            `json:"isGlobal"`
	AccountType      AccountType     `json:"accountType"`
	CreatedTimestamp int64           `json:"createdTimestamp"`
}

// Normalize fills derived fields on a record fresh off the ingestion feed:
// the content hash when absent and the first-seen timestamp on new records.
func (a *Account) Normalize() {
	if a.Hash == "" && len(a.Data) > 0 {
		a.Hash = utils.HashData(a.Data)
	}
	if a.CreatedTimestamp == 0 || a.Timestamp < a.CreatedTimestamp {
		a.CreatedTimestamp = a.Timestamp
	}
}

// Merge applies the upsert conflict rule in memory: mutable fields follow the
// strictly newer timestamp (equal timestamps keep the stored record), and
// CreatedTimestamp takes the minimum even when the update itself is rejected.
// The result is independent of application order.
func (a *Account) Merge(incoming *Account) *Account {
	out := *a
	if incoming.Timestamp > a.Timestamp {
		out.Data = incoming.Data
		out.Hash = incoming.Hash
		out.Timestamp = incoming.Timestamp
		out.CycleNumber = incoming.CycleNumber
		out.IsGlobal = incoming.IsGlobal
		out.AccountType = incoming.AccountType
	}
	if incoming.CreatedTimestamp < out.CreatedTimestamp {
		out.CreatedTimestamp = incoming.CreatedTimestamp
	}
	return &out
}

// Array returns the compact positional wire form of the account, selected by
// the accountResponseType=array query parameter. Order matters: decoders on
// the other side of the API index into this slice.
func (a *Account) Array() []any {
	return []any{
		a.AccountID,
		string(a.AccountType),
		a.CycleNumber,
		a.Timestamp,
		a.CreatedTimestamp,
		a.IsGlobal,
		a.Hash,
		a.Data,
	}
}

// AccountPayload is the decoded form of Account.Data.
type AccountPayload interface {
	Kind() AccountType
}

// UserAccountPayload is an externally owned balance account.
type UserAccountPayload struct {
	Balance decimal.Decimal  `json:"balance"`
	Toll    *decimal.Decimal `json:"toll,omitempty"`
	Alias   string           `json:"alias,omitempty"`
}

func (UserAccountPayload) Kind() AccountType { return AccountTypeUser }

// NodeAccountPayload tracks validator stake state.
type NodeAccountPayload struct {
	Nominator        string          `json:"nominator"`
	StakedAmount     decimal.Decimal `json:"stake"`
	RewardAmount     decimal.Decimal `json:"reward"`
	StakeLockEndTime int64           `json:"stakeLockEndTime"`
	PenaltyAmount    decimal.Decimal `json:"penalty"`
}

func (NodeAccountPayload) Kind() AccountType { return AccountTypeNode }

// AliasAccountPayload maps a human-readable alias to an address.
type AliasAccountPayload struct {
	Address string `json:"address"`
	Alias   string `json:"alias"`
}

func (AliasAccountPayload) Kind() AccountType { return AccountTypeAlias }

// ChatAccountPayload stores the message ids exchanged between two accounts.
type ChatAccountPayload struct {
	Messages []string `json:"messages"`
}

func (ChatAccountPayload) Kind() AccountType { return AccountTypeChat }

// NetworkAccountPayload holds cluster-wide parameters; the account carrying
// it is flagged isGlobal.
type NetworkAccountPayload struct {
	Current NetworkParameters  `json:"current"`
	Next    *NetworkParameters `json:"next,omitempty"`
}

func (NetworkAccountPayload) Kind() AccountType { return AccountTypeNetwork }

// NetworkParameters is the parameter set governing fees and rewards.
type NetworkParameters struct {
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	NodeRewardAmount  decimal.Decimal `json:"nodeRewardAmount"`
	NodePenaltyAmount decimal.Decimal `json:"nodePenaltyAmount"`
	StakeRequired     decimal.Decimal `json:"stakeRequired"`
	TransactionFee    decimal.Decimal `json:"transactionFee"`
	StabilityFactor   decimal.Decimal `json:"stabilityScaleMul"`
	DefaultToll       decimal.Decimal `json:"defaultToll"`
}

// IssueAccountPayload groups the proposals of one voting window.
type IssueAccountPayload struct {
	Number    uint64   `json:"number"`
	Active    bool     `json:"active"`
	Proposals []string `json:"proposals"`
	Winner    string   `json:"winnerId,omitempty"`
}

func (IssueAccountPayload) Kind() AccountType { return AccountTypeIssue }

// DevIssueAccountPayload is the developer-fund counterpart of an issue.
type DevIssueAccountPayload struct {
	Number       uint64   `json:"number"`
	Active       bool     `json:"active"`
	DevProposals []string `json:"devProposals"`
	Winners      []string `json:"winners,omitempty"`
}

func (DevIssueAccountPayload) Kind() AccountType { return AccountTypeDevIssue }

// ProposalAccountPayload is a single parameter-change proposal.
type ProposalAccountPayload struct {
	Number     uint64            `json:"number"`
	Power      decimal.Decimal   `json:"power"`
	TotalVotes uint64            `json:"totalVotes"`
	Winner     bool              `json:"winner"`
	Parameters NetworkParameters `json:"parameters"`
}

func (ProposalAccountPayload) Kind() AccountType { return AccountTypeProposal }

// DevProposalAccountPayload is a developer-fund payment proposal.
type DevProposalAccountPayload struct {
	Number        uint64          `json:"number"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	Payee         string          `json:"payAddress"`
	TotalVotes    uint64          `json:"totalVotes"`
	ApprovedCount uint64          `json:"approve"`
	Title         string          `json:"title"`
}

func (DevProposalAccountPayload) Kind() AccountType { return AccountTypeDevProposal }

// DecodePayload decodes Data into the typed payload for the account's
// discriminator. Call sites must not assume payload shape without going
// through this dispatch.
func (a *Account) DecodePayload() (AccountPayload, error) {
	return DecodeAccountPayload(a.AccountType, a.Data)
}

// DecodeAccountPayload decodes raw payload bytes for the given account type.
func DecodeAccountPayload(t AccountType, data json.RawMessage) (AccountPayload, error) {
	decode := func(v AccountPayload) (AccountPayload, error) {
		if err := json.Unmarshal(data, v); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", t, err)
		}
		return v, nil
	}

	switch t {
	case AccountTypeUser:
		return decode(&UserAccountPayload{})
	case AccountTypeNode:
		return decode(&NodeAccountPayload{})
	case AccountTypeAlias:
		return decode(&AliasAccountPayload{})
	case AccountTypeChat:
		return decode(&ChatAccountPayload{})
	case AccountTypeNetwork:
		return decode(&NetworkAccountPayload{})
	case AccountTypeIssue:
		return decode(&IssueAccountPayload{})
	case AccountTypeDevIssue:
		return decode(&DevIssueAccountPayload{})
	case AccountTypeProposal:
		return decode(&ProposalAccountPayload{})
	case AccountTypeDevProposal:
		return decode(&DevProposalAccountPayload{})
	default:
		return nil, fmt.Errorf("unknown account type %q", t)
	}
}
