package explorer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shardeum/explorerx/pkg/db/postgres"
	"github.com/shardeum/explorerx/pkg/utils"
	"go.uber.org/zap"
)

// DB is the explorer storage: accounts, transactions and the daily stat
// tables derived from them.
type DB struct {
	postgres.Client
	Name string
}

// New creates and initializes the explorer database instance.
func New(ctx context.Context, logger *zap.Logger, poolConfig ...*postgres.PoolConfig) (*DB, error) {
	name := utils.Env("EXPLORER_DB", "explorer")

	client, err := postgres.New(ctx, logger.With(zap.String("db", name)), name, poolConfig...)
	if err != nil {
		return nil, err
	}

	db := &DB{
		Client: client,
		Name:   name,
	}

	if err := db.InitializeDB(ctx); err != nil {
		return nil, err
	}

	return db, nil
}

// Close terminates the underlying PostgreSQL connection
func (db *DB) Close() error {
	db.Pool.Close()
	return nil
}

// InitializeDB ensures the required database and tables exist.
// Creates all tables in parallel for efficiency.
func (db *DB) InitializeDB(ctx context.Context) error {
	initStart := time.Now()

	db.Logger.Info("Initializing explorer database", zap.String("database", db.Name))

	if err := db.CreateDbIfNotExists(ctx, db.Name); err != nil {
		return fmt.Errorf("failed to create database %s: %w", db.Name, err)
	}

	initOps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"accounts", db.initAccounts},
		{"transactions", db.initTransactions},
		{"daily_account_stats", db.initDailyAccountStats},
		{"daily_transaction_stats", db.initDailyTransactionStats},
		{"daily_coin_stats", db.initDailyCoinStats},
	}

	var wg sync.WaitGroup
	errChan := make(chan error, len(initOps))

	for _, op := range initOps {
		wg.Add(1)
		go func(name string, fn func(context.Context) error) {
			defer wg.Done()
			db.Logger.Debug("Initializing table", zap.String("table", name))
			if err := fn(ctx); err != nil {
				errChan <- fmt.Errorf("init %s: %w", name, err)
			}
		}(op.name, op.fn)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		return err
	}

	db.Logger.Info("Explorer database initialized",
		zap.String("database", db.Name),
		zap.Duration("duration", time.Since(initStart)))

	return nil
}
