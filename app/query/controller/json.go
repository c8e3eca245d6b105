package controller

import (
	"encoding/json"
	"net/http"
)

// pagedResponse is the envelope for list endpoints. Data is either a slice
// of model objects or a slice of positional arrays, depending on the
// responseType toggle.
type pagedResponse struct {
	Data  any    `json:"data"`
	Total uint64 `json:"total"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeRawJSON writes an already-encoded JSON payload, used for cache hits.
func writeRawJSON(w http.ResponseWriter, status int, payload []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
