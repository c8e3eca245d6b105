package controller

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shardeum/explorerx/pkg/aggregation"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// HandleChart returns a precomputed chart series. Known series:
//
//	new-accounts, active-accounts, total-accounts: from daily account stats
//	transactions: from daily transaction stats, with per-type breakdown
//	supply, staked: cumulative folds over the daily coin stats
//
// Query parameters:
//   - startTimestamp/endTimestamp: inclusive range over day-start timestamps
//
// Responses are cached in Redis when a cache is configured.
func (c *Controller) HandleChart(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["series"]
	dayRange := rangeParam(r.URL.Query(), "startTimestamp", "endTimestamp")

	ctx := r.Context()

	cacheKey := fmt.Sprintf("charts:%s", name)
	if dayRange != nil {
		cacheKey = fmt.Sprintf("charts:%s:%d-%d", name, dayRange.Start, dayRange.End)
	}
	if c.App.Cache != nil {
		if payload, ok := c.App.Cache.Get(ctx, cacheKey); ok {
			writeRawJSON(w, http.StatusOK, payload)
			return
		}
	}

	var series aggregation.Series

	switch name {
	case "new-accounts", "active-accounts", "total-accounts":
		rows, err := c.App.DB.GetDailyAccountStats(ctx, dayRange)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "query failed")
			return
		}
		switch name {
		case "new-accounts":
			series = aggregation.NewAccountsSeries(rows)
		case "active-accounts":
			series = aggregation.ActiveAccountsSeries(rows)
		case "total-accounts":
			series = aggregation.TotalAccountsSeries(rows)
		}

	case "transactions":
		rows, err := c.App.DB.GetDailyTransactionStats(ctx, dayRange)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "query failed")
			return
		}
		series = aggregation.TransactionsSeries(rows)

	case "supply", "staked":
		rows, err := c.App.DB.GetDailyCoinStats(ctx, dayRange)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "query failed")
			return
		}
		if name == "supply" {
			series = aggregation.SupplySeries(c.App.AggConfig, rows)
		} else {
			series = aggregation.StakedSeries(rows)
		}

	default:
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown series %q", name))
		return
	}

	payload, err := json.Marshal(series)
	if err != nil {
		c.App.Logger.Error("Failed to encode chart series", zap.String("series", name), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "encoding failed")
		return
	}

	if c.App.Cache != nil {
		c.App.Cache.Set(ctx, cacheKey, payload, c.App.SeriesTTL)
	}

	writeRawJSON(w, http.StatusOK, payload)
}
