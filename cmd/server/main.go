// Command server exposes the outlier scanner over HTTP: POST
// /api/v1/scan triggers a directory scan, /api/v1/health answers
// probes and /metrics serves Prometheus metrics. An optional cron
// schedule re-scans the configured directory periodically.
package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"pricescan/internal/app"
	"pricescan/internal/config"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	application, err := app.NewApplication(cfg)
	if err != nil {
		slog.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		application.Logger.Error("application exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
