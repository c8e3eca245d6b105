package controller

import (
	"net/http"

	models "github.com/shardeum/explorerx/pkg/db/models/explorer"
)

// The daily stat endpoints share one parameter set:
//   - startTimestamp/endTimestamp: inclusive range over day-start timestamps
//   - responseType: "object" (default) or "array" for positional rows
//
// Rows come back oldest day first.

func (c *Controller) HandleDailyAccountStats(w http.ResponseWriter, r *http.Request) {
	dayRange := rangeParam(r.URL.Query(), "startTimestamp", "endTimestamp")
	shape := models.ParseResponseShape(r.URL.Query().Get("responseType"))

	rows, err := c.App.DB.GetDailyAccountStats(r.Context(), dayRange)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}

	var data any = rows
	if shape == models.ShapeArray {
		arrays := make([][]any, len(rows))
		for i := range rows {
			arrays[i] = rows[i].Array()
		}
		data = arrays
	}

	writeJSON(w, http.StatusOK, map[string]any{"data": data, "total": len(rows)})
}

func (c *Controller) HandleDailyTransactionStats(w http.ResponseWriter, r *http.Request) {
	dayRange := rangeParam(r.URL.Query(), "startTimestamp", "endTimestamp")
	shape := models.ParseResponseShape(r.URL.Query().Get("responseType"))

	rows, err := c.App.DB.GetDailyTransactionStats(r.Context(), dayRange)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}

	var data any = rows
	if shape == models.ShapeArray {
		arrays := make([][]any, len(rows))
		for i := range rows {
			arrays[i] = rows[i].Array()
		}
		data = arrays
	}

	writeJSON(w, http.StatusOK, map[string]any{"data": data, "total": len(rows)})
}

func (c *Controller) HandleDailyCoinStats(w http.ResponseWriter, r *http.Request) {
	dayRange := rangeParam(r.URL.Query(), "startTimestamp", "endTimestamp")
	shape := models.ParseResponseShape(r.URL.Query().Get("responseType"))

	rows, err := c.App.DB.GetDailyCoinStats(r.Context(), dayRange)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}

	var data any = rows
	if shape == models.ShapeArray {
		arrays := make([][]any, len(rows))
		for i := range rows {
			arrays[i] = rows[i].Array()
		}
		data = arrays
	}

	writeJSON(w, http.StatusOK, map[string]any{"data": data, "total": len(rows)})
}
