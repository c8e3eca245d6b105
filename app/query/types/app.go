package types

import (
	"context"
	"net/http"
	"time"

	"github.com/shardeum/explorerx/pkg/aggregation"
	explorerdb "github.com/shardeum/explorerx/pkg/db/explorer"
	"github.com/shardeum/explorerx/pkg/redis"
	"go.uber.org/zap"
)

type App struct {
	DB *explorerdb.DB
	// Cache is optional; nil disables series caching.
	Cache *redis.Client
	// SeriesTTL bounds how stale a cached chart series may be.
	SeriesTTL time.Duration
	AggConfig aggregation.Config
	// Zap Logger
	Logger *zap.Logger
	// Server represents the HTTP server instance used to handle incoming client requests.
	Server *http.Server
}

// Start starts the application.
func (a *App) Start(ctx context.Context) {
	go func() { _ = a.Server.ListenAndServe() }()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.DB.Close(); err != nil {
		a.Logger.Error("Failed to close database connection", zap.Error(err))
	}
	if a.Cache != nil {
		if err := a.Cache.Close(); err != nil {
			a.Logger.Error("Failed to close cache connection", zap.Error(err))
		}
	}

	_ = a.Server.Shutdown(shutdownCtx)
	a.Logger.Info("Query service stopped")
}
