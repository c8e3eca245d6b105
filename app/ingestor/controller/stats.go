package controller

import (
	"io"
	"net/http"

	"github.com/jackc/pgx/v5"
	models "github.com/shardeum/explorerx/pkg/db/models/explorer"
	"github.com/gorilla/mux"
)

// HandleIngestDailyStats backfills precomputed daily rollups from the legacy
// feed. The kind path segment selects the table (accounts, transactions,
// coin); the responseType query parameter declares which wire shape the body
// uses, array-positional or named-object. Either shape decodes to the same
// rows.
func (c *Controller) HandleIngestDailyStats(w http.ResponseWriter, r *http.Request) {
	kind := mux.Vars(r)["kind"]
	shape := models.ParseResponseShape(r.URL.Query().Get("responseType"))

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxIngestBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := r.Context()
	var written int

	switch kind {
	case "accounts":
		rows, decErr := models.DecodeDailyAccountStats(body, shape)
		if decErr != nil {
			writeError(w, http.StatusBadRequest, decErr.Error())
			return
		}
		err = c.App.DB.BeginFunc(ctx, func(tx pgx.Tx) error {
			return c.App.DB.UpsertDailyAccountStats(ctx, tx, rows)
		})
		written = len(rows)

	case "transactions":
		rows, decErr := models.DecodeDailyTransactionStats(body, shape)
		if decErr != nil {
			writeError(w, http.StatusBadRequest, decErr.Error())
			return
		}
		err = c.App.DB.BeginFunc(ctx, func(tx pgx.Tx) error {
			return c.App.DB.UpsertDailyTransactionStats(ctx, tx, rows)
		})
		written = len(rows)

	case "coin":
		rows, decErr := models.DecodeDailyCoinStats(body, shape)
		if decErr != nil {
			writeError(w, http.StatusBadRequest, decErr.Error())
			return
		}
		err = c.App.DB.BeginFunc(ctx, func(tx pgx.Tx) error {
			return c.App.DB.UpsertDailyCoinStats(ctx, tx, rows)
		})
		written = len(rows)

	default:
		writeError(w, http.StatusNotFound, "unknown stats kind")
		return
	}

	if err != nil {
		writeError(w, http.StatusInternalServerError, "write failed")
		return
	}

	c.App.Count("stats."+kind+".written", uint64(written))

	writeJSON(w, http.StatusOK, map[string]int{"written": written})
}
