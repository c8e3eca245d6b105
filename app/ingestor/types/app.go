package types

import (
	"context"
	"net/http"
	"time"

	explorerdb "github.com/shardeum/explorerx/pkg/db/explorer"
	"github.com/shardeum/explorerx/pkg/ingest"
	"github.com/puzpuzpuz/xsync/v4"
	"go.uber.org/zap"
)

type App struct {
	DB     *explorerdb.DB
	Loader *ingest.Loader
	// Counters tracks received/written rows per feed since startup.
	Counters *xsync.Map[string, uint64]
	// Zap Logger
	Logger *zap.Logger
	// Server represents the HTTP server instance used to handle incoming client requests.
	Server *http.Server
}

// Count adds n to a named counter.
func (a *App) Count(key string, n uint64) {
	a.Counters.Compute(key, func(old uint64, _ bool) (uint64, xsync.ComputeOp) {
		return old + n, xsync.UpdateOp
	})
}

// Snapshot returns the current counter values.
func (a *App) Snapshot() map[string]uint64 {
	out := make(map[string]uint64)
	a.Counters.Range(func(key string, value uint64) bool {
		out[key] = value
		return true
	})
	return out
}

// Start starts the application.
func (a *App) Start(ctx context.Context) {
	go func() { _ = a.Server.ListenAndServe() }()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = a.Server.Shutdown(shutdownCtx)

	// Drain in-flight chunks before the pool goes away.
	a.Loader.Close()

	if err := a.DB.Close(); err != nil {
		a.Logger.Error("Failed to close database connection", zap.Error(err))
	}
	a.Logger.Info("Ingest service stopped")
}
