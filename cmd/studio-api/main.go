package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/t3mr0i/video-game-clicker-sub001/internal/api"
	"github.com/t3mr0i/video-game-clicker-sub001/internal/auth"
	"github.com/t3mr0i/video-game-clicker-sub001/internal/config"
	"github.com/t3mr0i/video-game-clicker-sub001/internal/db"
	"github.com/t3mr0i/video-game-clicker-sub001/internal/notify"
	"github.com/t3mr0i/video-game-clicker-sub001/internal/service"
	"github.com/t3mr0i/video-game-clicker-sub001/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadAPIFromEnv()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	level, _ := config.ParseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	st, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("store open failed", "store", cfg.Store, "err", err)
		os.Exit(1)
	}
	defer st.Close()

	var pub notify.Publisher = notify.Nop{}
	if cfg.NatsURL != "" {
		np, err := notify.NewNatsPublisher(cfg.NatsURL, cfg.NatsPrefix)
		if err != nil {
			logger.Error("nats connect failed", "err", err)
			os.Exit(1)
		}
		pub = np
		logger.Info("publishing events", "nats", cfg.NatsURL, "prefix", cfg.NatsPrefix)
	}
	defer pub.Close()

	svc, err := service.New(ctx, st, logger, service.WithPublisher(pub))
	if err != nil {
		logger.Error("service init failed", "err", err)
		os.Exit(1)
	}

	verifier := auth.NewTokenVerifier(cfg.APIToken)
	if !verifier.Enabled() {
		logger.Warn("STUDIO_API_TOKEN not set, api is unauthenticated")
	}

	server := api.New(cfg, logger, verifier, svc)
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("studio api listening", "addr", cfg.Addr, "store", cfg.Store, "slot", cfg.Slot)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}
}

func openStore(ctx context.Context, cfg config.APIConfig) (store.Store, error) {
	switch cfg.Store {
	case config.StoreFile:
		return store.NewFileStore(cfg.DataDir, cfg.Slot)
	case config.StoreSQLite:
		return store.OpenSQLiteStore(ctx, cfg.SQLitePath, cfg.Slot)
	case config.StorePostgres:
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		pg := store.NewPostgresStore(pool, cfg.Slot)
		if err := pg.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		return pg, nil
	default:
		return nil, fmt.Errorf("%w: %q", store.ErrUnknownStore, cfg.Store)
	}
}
