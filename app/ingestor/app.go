package ingestor

import (
	"context"

	"github.com/shardeum/explorerx/app/ingestor/types"
	explorerdb "github.com/shardeum/explorerx/pkg/db/explorer"
	"github.com/shardeum/explorerx/pkg/ingest"
	"github.com/shardeum/explorerx/pkg/logging"
	"github.com/puzpuzpuz/xsync/v4"
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

	loader := ingest.NewLoader(ingest.ConfigFromEnv(), db, logger)

	return &types.App{
		DB:       db,
		Loader:   loader,
		Counters: xsync.NewMap[string, uint64](),
		Logger:   logger,
	}
}
