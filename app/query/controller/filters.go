package controller

import (
	"net/http"
	"net/url"
	"strconv"

	models "github.com/shardeum/explorerx/pkg/db/models/explorer"
)

// Filter parsing is deliberately permissive: a filter that does not parse,
// or a type name the schema does not know, is treated as absent rather than
// rejected. Only pagination parameters hard-fail.

func int64Param(qs url.Values, key string) (int64, bool) {
	v := qs.Get(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// rangeParam builds an inclusive range from a pair of bound parameters.
// A missing lower bound defaults to 0, a missing upper bound to MaxInt64,
// so a single bound still produces a half-open scan.
func rangeParam(qs url.Values, startKey, endKey string) *models.Range {
	start, okStart := int64Param(qs, startKey)
	end, okEnd := int64Param(qs, endKey)
	if !okStart && !okEnd {
		return nil
	}
	if !okEnd {
		end = int64(^uint64(0) >> 1)
	}
	return &models.Range{Start: start, End: end}
}

func parseAccountQuery(r *http.Request, page pageSpec) models.AccountQuery {
	qs := r.URL.Query()

	q := models.AccountQuery{
		AccountID:      qs.Get("accountId"),
		CycleRange:     rangeParam(qs, "startCycleNumber", "endCycleNumber"),
		TimestampRange: rangeParam(qs, "startTimestamp", "endTimestamp"),
		Skip:           page.Skip,
		Limit:          page.Limit,
	}

	if v := qs.Get("accountType"); v != "" {
		t := models.AccountType(v)
		if t.Valid() {
			q.Type = &t
		}
	}

	return q
}

func parseTransactionQuery(r *http.Request, page pageSpec) models.TransactionQuery {
	qs := r.URL.Query()

	q := models.TransactionQuery{
		AccountID:      qs.Get("accountId"),
		CycleRange:     rangeParam(qs, "startCycleNumber", "endCycleNumber"),
		TimestampRange: rangeParam(qs, "startTimestamp", "endTimestamp"),
		Skip:           page.Skip,
		Limit:          page.Limit,
	}

	if v := qs.Get("txType"); v != "" {
		t := models.TransactionType(v)
		if t.Valid() {
			q.Type = &t
		}
	}

	return q
}
