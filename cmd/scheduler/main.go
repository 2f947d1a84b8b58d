package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/app"
	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/infra"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("scheduler failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := infra.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := infra.NewPostgresPool(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()
	logger.Info("scheduler connected to postgres")

	core := app.NewCore(pool, cfg, logger)

	sched, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("create scheduler: %w", err)
	}

	// Period rollover, then finalize whatever the rollover closed.
	_, err = sched.NewJob(
		gocron.CronJob(cfg.RolloverCron, false),
		gocron.NewTask(func() {
			if _, err := core.Lifecycle.Rollover(ctx, time.Now()); err != nil {
				logger.Error("scheduled rollover failed", "error", err)
				return
			}
			if _, err := core.Finalizer.Sweep(ctx); err != nil {
				logger.Error("post-rollover finalize failed", "error", err)
			}
		}),
	)
	if err != nil {
		return fmt.Errorf("schedule rollover: %w", err)
	}

	// Safety-net sweep: picks up tournaments whose finalization failed
	// or was interrupted after the rollover.
	_, err = sched.NewJob(
		gocron.DurationJob(15*time.Minute),
		gocron.NewTask(func() {
			if _, err := core.Finalizer.Sweep(ctx); err != nil {
				logger.Error("finalize sweep failed", "error", err)
			}
		}),
	)
	if err != nil {
		return fmt.Errorf("schedule finalize sweep: %w", err)
	}

	sched.Start()
	logger.Info("scheduler started", "rollover_cron", cfg.RolloverCron)

	<-ctx.Done()
	logger.Info("scheduler shutting down")
	return sched.Shutdown()
}
