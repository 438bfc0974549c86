package main

import (
	"context"
	"os"
	"os/signal"
	"safesurf/internal/config"
	"safesurf/internal/notification"
	"safesurf/pkg/logger"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func analyzeCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <url>",
		Short: "Analyses a page and shows the transient banner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			noColor, _ := cmd.Flags().GetBool("no-color")
			linger, _ := cmd.Flags().GetBool("linger")
			provenance, _ := cmd.Flags().GetBool("provenance")

			orch, cleanup := getOrchestrator(ctx, cfg)
			defer cleanup()

			surface := notification.NewTerminalSurface(os.Stdout, noColor)
			surface.ShowProvenance = provenance

			clock := clockwork.NewRealClock()
			life, err := notification.New(orch, surface, clock, notification.NewOptions(cfg))
			if err != nil {
				return err
			}
			defer life.Stop()

			select {
			case <-life.Start(ctx, args[0]):
			case <-ctx.Done():
				return nil
			}

			b, _ := life.Current()
			logger.Debug(ctx, "banner settled",
				zap.String("state", string(b.State)),
				zap.String("reason", b.Reason))

			if linger {
				// keep the process alive for the banner's display and exit transition
				wait(ctx, clock, cfg.Banner.DisplayDuration+cfg.Banner.ExitDuration)
			}

			return nil
		},
	}

	cmd.Flags().Bool("no-color", false, "Disable coloured output")
	cmd.Flags().Bool("linger", false, "Wait until the banner would be dismissed before exiting")
	cmd.Flags().Bool("provenance", false, "Show whether the score came from the service or the local heuristic")

	return cmd
}

func wait(ctx context.Context, clock clockwork.Clock, d time.Duration) {
	select {
	case <-clock.After(d):
	case <-ctx.Done():
	}
}
