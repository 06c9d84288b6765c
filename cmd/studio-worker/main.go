package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/t3mr0i/video-game-clicker-sub001/internal/cli"
	"github.com/t3mr0i/video-game-clicker-sub001/internal/config"
	"github.com/t3mr0i/video-game-clicker-sub001/internal/game"
	"github.com/t3mr0i/video-game-clicker-sub001/internal/market"
	"github.com/t3mr0i/video-game-clicker-sub001/internal/sim"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadWorkerFromEnv()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	level, _ := config.ParseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	client := cli.NewClient(cfg.APIBaseURL, cfg.APIToken)
	planner := sim.NewPlanner(market.New(cfg.MarketVolatility, cfg.Seed))

	if cfg.RunOnce {
		if err := tick(ctx, client, planner, logger); err != nil {
			logger.Error("tick failed", "err", err)
			os.Exit(1)
		}
		logger.Info("worker run-once completed")
		return
	}

	ticker := time.NewTicker(cfg.TickEvery)
	defer ticker.Stop()

	logger.Info("worker started", "tick_every", cfg.TickEvery.String(), "volatility", cfg.MarketVolatility, "seed", cfg.Seed)
	for {
		select {
		case <-ctx.Done():
			logger.Info("worker shutdown")
			return
		case <-ticker.C:
			if err := tick(ctx, client, planner, logger); err != nil {
				logger.Error("tick failed", "err", err)
			}
		}
	}
}

func tick(ctx context.Context, client *cli.Client, planner *sim.Planner, logger *slog.Logger) error {
	w, err := client.World(ctx)
	if err != nil {
		return err
	}
	if w.GameSpeed <= 0 {
		logger.Debug("game paused")
		return nil
	}
	apply := func(ctx context.Context, actions []game.Action) (game.World, error) {
		res, err := client.DispatchBatch(ctx, actions)
		return res.World, err
	}
	w, n, err := planner.Advance(ctx, w, apply)
	if err != nil {
		return err
	}
	logger.Info("tick complete", "date", w.CurrentDate.String(), "actions", n, "money", w.Money)
	return nil
}
