package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samvad-hq/produto-client/internal/app"
	"github.com/samvad-hq/produto-client/internal/config"
	"github.com/samvad-hq/produto-client/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "produto start failed: %v\n", err)
		os.Exit(1)
	}
}

// run returns an error only for bootstrap failures. Problems during the
// demonstration itself are logged and the process exits 0.
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

	logger.InfoObj("produto client starting", "config", cfg.Redacted())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner, err := app.NewRunner(ctx, cfg, log, os.Stdout)
	if err != nil {
		logger.ErrorObj("failed to initialize runner", "error", err)
		return err
	}
	defer runner.Close()

	if err := runner.Run(ctx); err != nil {
		logger.ErrorObj("failed to query produto api", "error", err.Error())
	}
	return nil
}
