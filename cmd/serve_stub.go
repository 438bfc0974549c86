package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"safesurf/internal/config"
	"safesurf/internal/devservice"
	"safesurf/pkg/logger"
	"safesurf/pkg/metrics"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func setupStub(ctx context.Context, cfg *config.Config) func(ctx context.Context) {
	p, err := metrics.NewProvider()
	if err != nil {
		logger.Fatal(ctx, "could not create metrics provider", zap.Error(err))
	}

	server, err := devservice.NewServer(devservice.Deps{Metrics: p}, devservice.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not create analysis stub", zap.Error(err))
	}

	go func() {
		logger.Info(ctx, "starting analysis stub...", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start analysis stub", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping analysis stub...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop analysis stub", zap.Error(err))
		}
		if err := p.Shutdown(ctx); err != nil {
			logger.Warn(ctx, "could not stop meter provider", zap.Error(err))
		}
	}
}

func serveStubCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve-stub",
		Short: "Starts a local analysis service answering from fixtures",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			stopStub := setupStub(ctx, cfg)

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopStub(shutdownCtx)
		},
	}

	return cmd
}
