package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/stockroom-erp/stockroom-cli/internal/api"
	"github.com/stockroom-erp/stockroom-cli/internal/app"
	"github.com/stockroom-erp/stockroom-cli/internal/session"
	"github.com/stockroom-erp/stockroom-cli/internal/statestore"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	store, closeStore, err := newStateStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("open state store", slog.Any("error", err))
		os.Exit(1)
	}
	defer closeStore()

	sessions := session.NewManager(store)
	clients := api.NewSet(api.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout, sessions))

	c := newConsole(cfg, logger, store, sessions, clients)
	if err := c.run(ctx, os.Stdin, os.Stdout); err != nil {
		logger.Error("console", slog.Any("error", err))
		os.Exit(1)
	}
}

func newStateStore(ctx context.Context, cfg *app.Config, logger *slog.Logger) (statestore.Store, func(), error) {
	switch cfg.StateBackend {
	case app.StateBackendRedis:
		store, err := statestore.NewRedisStore(ctx, cfg.RedisAddr, "stockroom")
		if err != nil {
			return nil, nil, err
		}
		return store, func() {
			if err := store.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}, nil
	default:
		store, err := statestore.NewFileStore(cfg.StateDir)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}
}
