package controller

import (
	"net/http"
	"strings"

	models "github.com/shardeum/explorerx/pkg/db/models/explorer"
	"github.com/gorilla/mux"
)

// HandleTransactions returns paginated transaction data.
// Query parameters:
//   - accountId: matches either side of the transfer (txFrom or txTo)
//   - txType: equality filter on the transaction type
//   - startCycleNumber/endCycleNumber, startTimestamp/endTimestamp: inclusive ranges
//   - page, limit: pagination
//   - transactionResponseType: "object" (default) or "array" for positional rows
func (c *Controller) HandleTransactions(w http.ResponseWriter, r *http.Request) {
	page, err := parsePageSpec(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	q := parseTransactionQuery(r, page)
	shape := models.ParseResponseShape(r.URL.Query().Get("transactionResponseType"))

	ctx := r.Context()

	rows, err := c.App.DB.QueryTransactions(ctx, q)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}

	total, err := c.App.DB.CountTransactions(ctx, q)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}

	var data any = rows
	if shape == models.ShapeArray {
		arrays := make([][]any, len(rows))
		for i, row := range rows {
			arrays[i] = row.Array()
		}
		data = arrays
	}

	writeJSON(w, http.StatusOK, pagedResponse{
		Data:  data,
		Total: total,
		Page:  page.Page,
		Limit: page.Limit,
	})
}

// HandleTransactionByID returns a single transaction by its id.
// Returns 404 if the transaction is unknown.
func (c *Controller) HandleTransactionByID(w http.ResponseWriter, r *http.Request) {
	txID := mux.Vars(r)["id"]
	if txID == "" {
		writeError(w, http.StatusBadRequest, "missing transaction id")
		return
	}

	tx, err := c.App.DB.GetTransactionByID(r.Context(), txID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeError(w, http.StatusNotFound, err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, "query failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, tx)
}
