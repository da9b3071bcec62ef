package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Adda-Baaj/khobor/internal/app"
	"github.com/Adda-Baaj/khobor/internal/config"
	"github.com/Adda-Baaj/khobor/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "proxy start failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	log.InfoObj("proxy starting", "config", cfg.Redacted())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv, err := app.NewProxyServer(cfg, log)
	if err != nil {
		log.ErrorObj("failed to initialize proxy", "error", err)
		return err
	}

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("proxy run: %w", err)
	}

	return nil
}
