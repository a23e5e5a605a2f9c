package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/maxviazov/nba-totals/internal/config"
	"github.com/maxviazov/nba-totals/internal/logger"
	"github.com/maxviazov/nba-totals/internal/server"
)

func main() {
	path := os.Getenv("APP_CONFIG_FILE")
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config loading failed: %v", err)
	}

	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("logger initialization failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appLogger.Info().Str("upstream", cfg.Upstream.BaseURL).Int("port", cfg.App.Port).Msg("service starting")
	if err := server.New(cfg, appLogger).Run(ctx); err != nil {
		appLogger.Error().Err(err).Msg("service stopped with error")
		os.Exit(1)
	}
}
