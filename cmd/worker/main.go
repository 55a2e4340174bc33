package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/templeflow/templeflow-ledger/internal/app"
	"github.com/templeflow/templeflow-ledger/internal/donations"
	"github.com/templeflow/templeflow-ledger/internal/donationsync"
	"github.com/templeflow/templeflow-ledger/internal/ledger"
	"github.com/templeflow/templeflow-ledger/internal/observability"
	"github.com/templeflow/templeflow-ledger/internal/platform/cache"
	"github.com/templeflow/templeflow-ledger/internal/platform/db"
	"github.com/templeflow/templeflow-ledger/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	pool, err := db.New(ctx, cfg.DonationsPGDSN)
	if err != nil {
		logger.Error("connect donations database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	metrics := observability.NewMetrics()

	snapshotter := ledger.NewRedisSnapshotter(redisClient, cfg.SnapshotKey)
	store := ledger.NewStore(snapshotter, logger)
	ledgerService := ledger.NewService(store, logger, metrics)
	syncService := donationsync.NewService(donations.NewRepository(pool), ledgerService, logger, metrics)

	cronTask, err := jobs.NewDonationSyncTask(jobs.DonationSyncPayload{Trigger: "cron"})
	if err != nil {
		logger.Error("build sync task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskTypeDonationSync, Handler: jobs.DonationSyncHandler(syncService, logger)},
		},
		Cron: []jobs.CronRegistration{
			{Spec: cfg.DonationSyncCron, Task: cronTask},
		},
	})
	if err != nil {
		logger.Error("build worker", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("worker started", slog.String("cron", cfg.DonationSyncCron))
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
