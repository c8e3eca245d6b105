package controller

import (
	"encoding/json"
	"testing"

	models "github.com/shardeum/explorerx/pkg/db/models/explorer"
	"github.com/stretchr/testify/assert"
)

func TestClassifyAccount(t *testing.T) {
	tests := []struct {
		name string
		data string
		want models.AccountType
	}{
		{name: "balance only", data: `{"balance":"10"}`, want: models.AccountTypeUser},
		{name: "chat messages", data: `{"messages":["m1","m2"]}`, want: models.AccountTypeChat},
		{name: "node nominator", data: `{"nominator":"acct-9","stake":"500"}`, want: models.AccountTypeNode},
		{name: "network parameters", data: `{"current":{"title":"initial"}}`, want: models.AccountTypeNetwork},
		{name: "alias mapping", data: `{"address":"acct-1","alias":"bob"}`, want: models.AccountTypeAlias},
		{name: "issue proposals", data: `{"number":1,"active":true,"proposals":["p1"]}`, want: models.AccountTypeIssue},
		{name: "dev issue", data: `{"number":1,"devProposals":["d1"]}`, want: models.AccountTypeDevIssue},
		{name: "dev proposal payee", data: `{"payAddress":"acct-2","totalAmount":"100"}`, want: models.AccountTypeDevProposal},
		{name: "proposal power", data: `{"power":"12","totalVotes":3}`, want: models.AccountTypeProposal},
		{name: "unparsable payload", data: `not json`, want: models.AccountTypeUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyAccount(json.RawMessage(tt.data)))
		})
	}
}
