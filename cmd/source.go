package main

import (
	"fmt"
	"os"
	"safesurf/internal/config"
	"safesurf/internal/source"
	"safesurf/pkg/domain"

	"github.com/spf13/cobra"
)

func sourceCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "source <url>",
		Short: "Fetches the page source through the analysis service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			raw, _ := cmd.Flags().GetBool("raw")

			orch, cleanup := getOrchestrator(ctx, cfg)
			defer cleanup()

			if raw {
				res := orch.Source(ctx, args[0])
				if res.Status != domain.ResultSuccess {
					return fmt.Errorf("could not fetch source: %s", res.Message)
				}
				_, err := fmt.Fprint(os.Stdout, res.HTML)

				return err
			}

			r, err := source.Inspect(ctx, orch, args[0])
			if err != nil {
				return err
			}

			return r.Write(os.Stdout)
		},
	}

	cmd.Flags().Bool("raw", false, "Print the formatted HTML instead of the summary")

	return cmd
}
