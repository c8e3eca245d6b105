package aggregator

import (
	"context"
	"time"

	explorerdb "github.com/shardeum/explorerx/pkg/db/explorer"
	models "github.com/shardeum/explorerx/pkg/db/models/explorer"
	"github.com/shardeum/explorerx/pkg/logging"
	"github.com/shardeum/explorerx/pkg/utils"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type App struct {
	DB *explorerdb.DB

	// Cron is the scheduler that recomputes the daily rollups, according to CronSpec.
	Cron     *cron.Cron
	CronSpec string

	// WindowDays bounds how far back each run recomputes. Late-arriving rows
	// only ever land inside the trailing window, so older days are settled.
	WindowDays int

	// Zap Logger
	Logger *zap.Logger
}

// Initialize initializes the application.
func Initialize(ctx context.Context) *App {
	logger, err := logging.New()
	if err != nil {
		// nothing else to do here, we'll just log to stderr
		panic(err)
	}

	db, dbErr := explorerdb.New(ctx, logger)
	if dbErr != nil {
		logger.Fatal("Unable to initialize explorer database", zap.Error(dbErr))
	}

	app := &App{
		DB: db,
		// Every minute, at second 0
		CronSpec:   utils.Env("CRON_SPEC", "0 * * * * *"),
		WindowDays: utils.EnvInt("AGG_WINDOW_DAYS", 3),
		Logger:     logger,
	}

	if scheduleErr := app.SetupScheduler(ctx, cron.DefaultLogger, app.CronSpec); scheduleErr != nil {
		logger.Fatal("Unable to schedule aggregation", zap.Error(scheduleErr))
	}

	return app
}

// SetupScheduler sets up the cron scheduler.
func (a *App) SetupScheduler(ctx context.Context, logger cron.Logger, cronSpec string) error {
	// Seconds field, optional
	a.Cron = cron.New(cron.WithSeconds(), cron.WithChain(cron.Recover(logger)))

	_, err := a.Cron.AddFunc(cronSpec, func() {
		// keep each run bounded
		rctx, cancel := context.WithTimeout(ctx, 55*time.Second)
		defer cancel()
		if err := a.Run(rctx); err != nil {
			logger.Info("[aggregator] rollup error", "error", err)
		}
	})
	if err != nil {
		return err
	}

	return nil
}

// Run recomputes the daily rollups over the trailing window.
func (a *App) Run(ctx context.Context) error {
	since := models.DayStart(time.Now().UnixMilli()) - int64(a.WindowDays-1)*models.MillisPerDay
	return a.DB.ComputeDailyStats(ctx, since)
}

// Start runs one rollup immediately, then hands off to the scheduler and
// blocks until the context is canceled.
func (a *App) Start(ctx context.Context) {
	if err := a.Run(ctx); err != nil {
		a.Logger.Error("Initial rollup failed", zap.Error(err))
	}

	a.Cron.Start()
	a.Logger.Info("Cron started", zap.String("cronSpec", a.CronSpec))

	<-ctx.Done()

	<-a.Cron.Stop().Done()
	if err := a.DB.Close(); err != nil {
		a.Logger.Error("Failed to close database connection", zap.Error(err))
	}
	a.Logger.Info("Aggregator stopped")
}
