package query

import (
	"context"
	"time"

	"github.com/shardeum/explorerx/app/query/types"
	"github.com/shardeum/explorerx/pkg/aggregation"
	explorerdb "github.com/shardeum/explorerx/pkg/db/explorer"
	"github.com/shardeum/explorerx/pkg/logging"
	"github.com/shardeum/explorerx/pkg/redis"
	"github.com/shardeum/explorerx/pkg/utils"
	"go.uber.org/zap"
)

// Initialize initializes the application.
func Initialize(ctx context.Context) *types.App {
	logger, err := logging.New()
	if err != nil {
		// nothing else to do here, we'll just log to stderr
		panic(err)
	}

	db, dbErr := explorerdb.New(ctx, logger)
	if dbErr != nil {
		logger.Fatal("Unable to initialize explorer database", zap.Error(dbErr))
	}

	// Series cache is optional; a miss or an absent Redis just means the
	// series gets recomputed per request.
	var cache *redis.Client
	if utils.Env("REDIS_ENABLED", "false") == "true" {
		cache, err = redis.NewClient(ctx, logger)
		if err != nil {
			logger.Warn("Failed to initialize Redis client - series caching disabled", zap.Error(err))
			cache = nil
		}
	} else {
		logger.Info("Redis disabled - series caching not available")
	}

	app := &types.App{
		DB:        db,
		Cache:     cache,
		SeriesTTL: time.Duration(utils.EnvInt("SERIES_CACHE_TTL_SECONDS", 60)) * time.Second,
		AggConfig: aggregation.ConfigFromEnv(),
		Logger:    logger,
	}

	return app
}
