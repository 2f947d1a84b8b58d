package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/app"
	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/infra"
)

// outcomeMessage is the wire format for final game scores published by
// the upstream scores feed.
type outcomeMessage struct {
	GameID    uuid.UUID `json:"game_id"`
	HomeScore int       `json:"home_score"`
	AwayScore int       `json:"away_score"`
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("outcome consumer failed", "error", err)
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
	logger.Info("outcome-consumer connected to postgres")

	consumer := infra.NewKafkaConsumer(cfg.KafkaBrokers, cfg.OutcomeTopic, cfg.OutcomeGroupID, cfg.KafkaEnabled, logger)
	defer consumer.Close()
	if !consumer.Enabled() {
		return fmt.Errorf("kafka is disabled; the outcome consumer has nothing to do")
	}

	core := app.NewCore(pool, cfg, logger)
	logger.Info("outcome-consumer starting", "topic", cfg.OutcomeTopic, "group", cfg.OutcomeGroupID)

	for {
		msg, err := consumer.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				logger.Info("outcome-consumer shutting down")
				return nil
			}
			logger.Error("read message failed", "error", err)
			continue
		}

		var outcome outcomeMessage
		if err := json.Unmarshal(msg.Value, &outcome); err != nil {
			logger.Error("malformed outcome message",
				"offset", msg.Offset, "error", err)
			continue
		}
		if outcome.GameID == uuid.Nil || outcome.HomeScore < 0 || outcome.AwayScore < 0 {
			logger.Error("invalid outcome message",
				"offset", msg.Offset, "game_id", outcome.GameID)
			continue
		}

		// Settlement is idempotent, so a redelivered message re-runs
		// harmlessly against already-settled wagers.
		result, err := core.Settler.SettleGame(ctx, outcome.GameID, outcome.HomeScore, outcome.AwayScore)
		if err != nil {
			logger.Error("settlement failed", "game_id", outcome.GameID, "error", err)
			continue
		}
		logger.Info("outcome processed",
			"game_id", outcome.GameID,
			"settled", result.Settled, "skipped", result.Skipped)
	}
}
