package main

import (
	"context"
	"errors"
	"net/http"
	"safesurf/internal/config"
	"safesurf/internal/orchestrator"
	"safesurf/pkg/analysisclient/safesurfapi"
	"safesurf/pkg/logger"
	"safesurf/pkg/metrics"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// setupMetrics starts the metrics listener when enabled and returns the meter
// to instrument with plus a stop function.
func setupMetrics(ctx context.Context, cfg *config.Config) (metric.Meter, func(ctx context.Context)) {
	if !cfg.Metrics.Enabled {
		return metrics.Noop(), func(context.Context) {}
	}

	p, err := metrics.NewProvider()
	if err != nil {
		logger.Fatal(ctx, "could not create metrics provider", zap.Error(err))
	}

	mux := http.NewServeMux()
	mux.Handle(cfg.Metrics.Path, p.Handler())
	server := &http.Server{
		Addr:              cfg.Metrics.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info(ctx, "starting metrics listener...", zap.String("addr", cfg.Metrics.Addr))
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start metrics listener", zap.Error(err))
			}
		}
	}()

	return p.Meter(), func(ctx context.Context) {
		logger.Info(ctx, "stopping metrics listener...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Warn(ctx, "could not stop metrics listener", zap.Error(err))
		}
		if err := p.Shutdown(ctx); err != nil {
			logger.Warn(ctx, "could not stop meter provider", zap.Error(err))
		}
	}
}

// getOrchestrator builds the analysis client and orchestrator and returns a
// cleanup function flushing metrics.
func getOrchestrator(ctx context.Context, cfg *config.Config) (orchestrator.Orchestrator, func()) {
	meter, stopMetrics := setupMetrics(ctx, cfg)

	client := safesurfapi.New(&http.Client{}, cfg.Service.BaseURL)
	o, err := orchestrator.New(client, orchestrator.NewOptions(cfg), meter)
	if err != nil {
		logger.Fatal(ctx, "could not create orchestrator", zap.Error(err))
	}

	return o, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
		defer cancel()

		stopMetrics(shutdownCtx)
	}
}
