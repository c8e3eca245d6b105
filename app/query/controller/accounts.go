package controller

import (
	"net/http"
	"strings"

	models "github.com/shardeum/explorerx/pkg/db/models/explorer"
	"github.com/gorilla/mux"
)

// HandleAccounts returns paginated account data.
// Query parameters:
//   - accountId, accountType: equality filters
//   - startCycleNumber/endCycleNumber, startTimestamp/endTimestamp: inclusive
//     ranges; ranged queries return history oldest-first, rangeless newest-first
//   - page, limit: pagination (defaults defined in parsePageSpec)
//   - accountResponseType: "object" (default) or "array" for positional rows
func (c *Controller) HandleAccounts(w http.ResponseWriter, r *http.Request) {
	page, err := parsePageSpec(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	q := parseAccountQuery(r, page)
	shape := models.ParseResponseShape(r.URL.Query().Get("accountResponseType"))

	ctx := r.Context()

	rows, err := c.App.DB.QueryAccounts(ctx, q)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}

	total, err := c.App.DB.CountAccounts(ctx, q)
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

// HandleAccountByID returns a single account by its id.
// Returns 404 if the account is unknown.
func (c *Controller) HandleAccountByID(w http.ResponseWriter, r *http.Request) {
	accountID := mux.Vars(r)["id"]
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account id")
		return
	}

	account, err := c.App.DB.GetAccountByID(r.Context(), accountID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeError(w, http.StatusNotFound, err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, "query failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, account)
}
