package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	"pricescan/internal/config"
	"pricescan/internal/infrastructure"
	custommiddleware "pricescan/internal/middleware"
	"pricescan/internal/scanner"
	handlers "pricescan/internal/transport/http"
)

// Version is the service version reported by the health endpoint.
const Version = "1.2.0"

// Application wires the scanner behind the HTTP surface and the optional
// cron schedule.
type Application struct {
	Config  *config.Config
	Router  *chi.Mux
	Server  *http.Server
	Scanner *scanner.Scanner
	Logger  *slog.Logger
	cron    *cron.Cron
}

// NewApplication creates an application instance from loaded config.
func NewApplication(cfg *config.Config) (*Application, error) {
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	app := &Application{
		Config:  cfg,
		Scanner: scanner.New(cfg.Scan, logger),
		Logger:  logger,
	}
	app.setupRouter()
	app.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.Router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	if cfg.Scan.Schedule != "" {
		if err := app.setupSchedule(cfg.Scan.Schedule); err != nil {
			return nil, err
		}
	}

	return app, nil
}

func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(custommiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(custommiddleware.StructuredLogger(a.Logger))
	r.Use(custommiddleware.Recoverer(a.Logger))

	health := handlers.NewHealthHandler(Version)
	scan := handlers.NewScanHandler(a.Scanner, a.Logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(custommiddleware.RateLimit(a.Config.Server.RateLimitRPS, a.Config.Server.RateLimitBurst))
		r.Get("/health", health.GetHealth)
		r.Post("/scan", scan.TriggerScan)
	})

	r.Handle("/metrics", promhttp.Handler())

	a.Router = r
}

// setupSchedule registers the periodic re-scan of the configured data
// directory.
func (a *Application) setupSchedule(spec string) error {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx := context.Background()
		if _, err := a.Scanner.ScanDirectory(ctx, ""); err != nil {
			a.Logger.Error("scheduled scan failed", slog.String("error", err.Error()))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid scan schedule %q: %w", spec, err)
	}
	a.cron = c
	return nil
}

// Run starts the HTTP server and the cron schedule, blocking until
// SIGINT/SIGTERM, then shuts down gracefully.
func (a *Application) Run() error {
	if a.cron != nil {
		a.cron.Start()
		a.Logger.Info("scan schedule active",
			slog.String("schedule", a.Config.Scan.Schedule))
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("server listening", slog.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		a.Logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	}

	return a.Shutdown()
}

// Shutdown stops the cron schedule and drains in-flight requests.
func (a *Application) Shutdown() error {
	if a.cron != nil {
		cronCtx := a.cron.Stop()
		select {
		case <-cronCtx.Done():
		case <-time.After(a.Config.Server.ShutdownTimeout):
			a.Logger.Warn("timed out waiting for scheduled scan to finish")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	a.Logger.Info("server stopped")
	return infrastructure.CloseLogFile()
}
