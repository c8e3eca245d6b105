package controller

import (
	"encoding/json"

	models "github.com/shardeum/explorerx/pkg/db/models/explorer"
)

// classifyAccount infers the account type from payload shape for feed records
// that arrive without a discriminator. Older archive dumps predate the
// accountType field, so the shape is the only signal available.
func classifyAccount(data json.RawMessage) models.AccountType {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return models.AccountTypeUser
	}

	switch {
	case hasKey(probe, "messages"):
		return models.AccountTypeChat
	case hasKey(probe, "nominator"):
		return models.AccountTypeNode
	case hasKey(probe, "current"):
		return models.AccountTypeNetwork
	case hasKey(probe, "address") && hasKey(probe, "alias"):
		return models.AccountTypeAlias
	case hasKey(probe, "devProposals"):
		return models.AccountTypeDevIssue
	case hasKey(probe, "proposals"):
		return models.AccountTypeIssue
	case hasKey(probe, "payAddress"):
		return models.AccountTypeDevProposal
	case hasKey(probe, "power"):
		return models.AccountTypeProposal
	default:
		return models.AccountTypeUser
	}
}

func hasKey(probe map[string]json.RawMessage, key string) bool {
	_, ok := probe[key]
	return ok
}
