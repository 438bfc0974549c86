package main

import (
	"errors"
	"fmt"
	"os"
	"safesurf/internal/config"
	"safesurf/internal/orchestrator"
	"safesurf/pkg/serrors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func reportPhishingCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report-phishing <url>",
		Short: "Reports the site of a page as phishing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			site, err := orchestrator.Site(args[0])
			if err != nil {
				return err
			}

			orch, cleanup := getOrchestrator(ctx, cfg)
			defer cleanup()

			err = orch.ReportPhishing(ctx, site)
			switch {
			case errors.Is(err, serrors.ErrUnavailable):
				color.New(color.FgYellow).Fprintf(os.Stderr, //nolint: errcheck
					"The analysis service at %s does not accept reports.\n", cfg.Service.BaseURL)
				return err
			case err != nil:
				return err
			}

			_, err = fmt.Fprintf(os.Stdout, "Reported %s as phishing.\n", site)

			return err
		},
	}

	return cmd
}
