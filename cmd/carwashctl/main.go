package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sebaaaap/Dashboard-prueba1/internal/cli"
	"github.com/sebaaaap/Dashboard-prueba1/internal/config"
	"github.com/sebaaaap/Dashboard-prueba1/internal/repository"
	"github.com/sebaaaap/Dashboard-prueba1/internal/repository/factory"
	"github.com/sebaaaap/Dashboard-prueba1/pkg/logger"
)

var version = "dev"

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	baseLogger := logger.Must(logger.NewConsole(os.Getenv("LOG_LEVEL")))
	defer func() { _ = baseLogger.Sync() }()

	open := func(ctx context.Context) (repository.Store, error) {
		return factory.Open(ctx, cfg, logger.Named(baseLogger, "store"))
	}

	app := cli.NewApp(version, open, cfg.Location(), logger.Named(baseLogger, "cli"))
	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
