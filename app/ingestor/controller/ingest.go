package controller

import (
	"encoding/json"
	"net/http"

	models "github.com/shardeum/explorerx/pkg/db/models/explorer"
)

// maxIngestBody caps a single bulk request at 64 MiB.
const maxIngestBody = 64 << 20

// HandleIngestAccounts accepts a JSON array of account feed records and bulk
// upserts them. Records without an accountType are classified from payload
// shape. The response reports per-chunk outcomes; a failed chunk rolls back
// alone and never fails the request.
func (c *Controller) HandleIngestAccounts(w http.ResponseWriter, r *http.Request) {
	var records []*models.Account
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxIngestBody))
	if err := dec.Decode(&records); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(records) == 0 {
		writeError(w, http.StatusBadRequest, "empty batch")
		return
	}

	for _, record := range records {
		if !record.AccountType.Valid() {
			record.AccountType = classifyAccount(record.Data)
		}
	}

	result := c.App.Loader.BulkUpsertAccounts(r.Context(), records)

	c.App.Count("accounts.received", uint64(result.Received))
	c.App.Count("accounts.written", uint64(result.Written))

	writeJSON(w, http.StatusOK, result)
}

// HandleIngestTransactions accepts a JSON array of transaction feed records
// and bulk upserts them.
func (c *Controller) HandleIngestTransactions(w http.ResponseWriter, r *http.Request) {
	var records []*models.Transaction
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxIngestBody))
	if err := dec.Decode(&records); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(records) == 0 {
		writeError(w, http.StatusBadRequest, "empty batch")
		return
	}

	result := c.App.Loader.BulkUpsertTransactions(r.Context(), records)

	c.App.Count("transactions.received", uint64(result.Received))
	c.App.Count("transactions.written", uint64(result.Written))

	writeJSON(w, http.StatusOK, result)
}

// HandleIngestStats returns the per-feed counters since startup.
func (c *Controller) HandleIngestStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, c.App.Snapshot())
}
