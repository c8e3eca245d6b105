package controller

import (
	"net/http"

	"github.com/shardeum/explorerx/app/query/types"
	"github.com/gorilla/mux"
)

type Controller struct {
	App *types.App
}

// NewController returns a new controller.
func NewController(app *types.App) *Controller {
	return &Controller{
		App: app,
	}
}

// NewRouter returns a new router with all the routes defined in this file.
func (c *Controller) NewRouter() (*mux.Router, error) {
	r := mux.NewRouter()

	r.Handle("/health", http.HandlerFunc(c.HandleHealth)).Methods("GET")

	r.HandleFunc("/accounts", c.HandleAccounts).Methods("GET")
	r.HandleFunc("/accounts/{id}", c.HandleAccountByID).Methods("GET")

	r.HandleFunc("/transactions", c.HandleTransactions).Methods("GET")
	r.HandleFunc("/transactions/{id}", c.HandleTransactionByID).Methods("GET")

	r.HandleFunc("/stats/accounts", c.HandleDailyAccountStats).Methods("GET")
	r.HandleFunc("/stats/transactions", c.HandleDailyTransactionStats).Methods("GET")
	r.HandleFunc("/stats/coin", c.HandleDailyCoinStats).Methods("GET")

	r.HandleFunc("/charts/{series}", c.HandleChart).Methods("GET")

	return r, nil
}

// WithCORS wraps a handler with permissive CORS headers.
func WithCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		} else {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Methods", http.MethodGet+", "+http.MethodPost+", "+http.MethodOptions)

		// Fast-path the preflight
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
