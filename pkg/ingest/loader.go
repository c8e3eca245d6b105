package ingest

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/alitto/pond/v2"
	"github.com/jackc/pgx/v5"
	explorerdb "github.com/shardeum/explorerx/pkg/db/explorer"
	models "github.com/shardeum/explorerx/pkg/db/models/explorer"
	"github.com/shardeum/explorerx/pkg/utils"
	"go.uber.org/zap"
)

// Config bounds the bulk loader. ChunkSize caps rows per statement batch so
// large backfills stay bounded in memory and statement size; Workers caps
// concurrent chunk transactions.
type Config struct {
	ChunkSize int
	Workers   int
}

// DefaultConfig returns the production loader settings.
func DefaultConfig() Config {
	return Config{
		ChunkSize: 1000,
		Workers:   4,
	}
}

// ConfigFromEnv reads loader settings from the environment.
func ConfigFromEnv() Config {
	def := DefaultConfig()
	return Config{
		ChunkSize: utils.EnvInt("INGEST_CHUNK_SIZE", def.ChunkSize),
		Workers:   utils.EnvInt("INGEST_WORKERS", def.Workers),
	}
}

// Loader batches incoming feed records into bounded chunks and writes each
// chunk as its own transaction. A failed chunk rolls back atomically and is
// logged; it never aborts the rest of the batch, so callers inspect the
// returned counts rather than an error.
type Loader struct {
	cfg    Config
	db     *explorerdb.DB
	logger *zap.Logger
	pool   pond.Pool
}

// NewLoader creates a bulk loader backed by a shared worker pool.
func NewLoader(cfg Config, db *explorerdb.DB, logger *zap.Logger) *Loader {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultConfig().ChunkSize
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultConfig().Workers
	}
	return &Loader{
		cfg:    cfg,
		db:     db,
		logger: logger,
		pool:   pond.NewPool(cfg.Workers),
	}
}

// Close drains the worker pool.
func (l *Loader) Close() {
	l.pool.StopAndWait()
}

// Result reports what happened to one bulk call. Written counts rows in
// committed chunks; FailedChunks rows rolled back with their chunk.
type Result struct {
	Received     int `json:"received"`
	Written      int `json:"written"`
	Chunks       int `json:"chunks"`
	FailedChunks int `json:"failedChunks"`
}

// BulkUpsertAccounts merges duplicate keys in the input, partitions the rest
// into chunks and upserts each chunk in its own transaction. Chunk
// boundaries do not affect per-row correctness: the conflict rule is
// commutative, so any chunk interleaving converges to the same state.
func (l *Loader) BulkUpsertAccounts(ctx context.Context, records []*models.Account) Result {
	merged := dedupeAccounts(records)
	chunks := chunk(merged, l.cfg.ChunkSize)

	var written, failed atomic.Int64
	group := l.pool.NewGroupContext(ctx)
	for _, c := range chunks {
		c := c
		group.Submit(func() {
			err := l.db.BeginFunc(ctx, func(tx pgx.Tx) error {
				return l.db.UpsertAccounts(ctx, tx, c)
			})
			if err != nil {
				failed.Add(1)
				l.logger.Error("Account chunk failed",
					zap.Int("rows", len(c)),
					zap.Error(err))
				return
			}
			written.Add(int64(len(c)))
		})
	}
	l.waitGroup(ctx, group)

	return Result{
		Received:     len(records),
		Written:      int(written.Load()),
		Chunks:       len(chunks),
		FailedChunks: int(failed.Load()),
	}
}

// BulkUpsertTransactions is the transaction-side counterpart of
// BulkUpsertAccounts.
func (l *Loader) BulkUpsertTransactions(ctx context.Context, records []*models.Transaction) Result {
	merged := dedupeTransactions(records)
	chunks := chunk(merged, l.cfg.ChunkSize)

	var written, failed atomic.Int64
	group := l.pool.NewGroupContext(ctx)
	for _, c := range chunks {
		c := c
		group.Submit(func() {
			err := l.db.BeginFunc(ctx, func(tx pgx.Tx) error {
				return l.db.UpsertTransactions(ctx, tx, c)
			})
			if err != nil {
				failed.Add(1)
				l.logger.Error("Transaction chunk failed",
					zap.Int("rows", len(c)),
					zap.Error(err))
				return
			}
			written.Add(int64(len(c)))
		})
	}
	l.waitGroup(ctx, group)

	return Result{
		Received:     len(records),
		Written:      int(written.Load()),
		Chunks:       len(chunks),
		FailedChunks: int(failed.Load()),
	}
}

func (l *Loader) waitGroup(ctx context.Context, group pond.TaskGroup) {
	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, pond.ErrGroupStopped) {
		l.logger.Error("Bulk load group failed", zap.Error(err))
	}
}

// dedupeAccounts collapses repeated keys with the in-memory conflict rule,
// keeping first-occurrence order. The upsert would resolve duplicates anyway;
// pre-merging just avoids writing rows the next statement overwrites.
func dedupeAccounts(records []*models.Account) []*models.Account {
	byID := make(map[string]*models.Account, len(records))
	out := make([]*models.Account, 0, len(records))
	for _, r := range records {
		r.Normalize()
		existing, ok := byID[r.AccountID]
		if !ok {
			copied := *r
			byID[r.AccountID] = &copied
			out = append(out, &copied)
			continue
		}
		*existing = *existing.Merge(r)
	}
	return out
}

func dedupeTransactions(records []*models.Transaction) []*models.Transaction {
	byID := make(map[string]*models.Transaction, len(records))
	out := make([]*models.Transaction, 0, len(records))
	for _, r := range records {
		existing, ok := byID[r.TxID]
		if !ok {
			copied := *r
			byID[r.TxID] = &copied
			out = append(out, &copied)
			continue
		}
		*existing = *existing.Merge(r)
	}
	return out
}

func chunk[T any](items []T, size int) [][]T {
	if len(items) == 0 {
		return nil
	}
	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}
	return chunks
}
