package main

import (
	"fmt"
	"os"
	"safesurf/internal/config"
	"safesurf/internal/host"
	"safesurf/internal/report"
	"safesurf/internal/source"
	"safesurf/pkg/logger"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func reportCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <url>",
		Short: "Prints the detailed report of a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			tabName, _ := cmd.Flags().GetString("tab")
			all, _ := cmd.Flags().GetBool("all")
			withSource, _ := cmd.Flags().GetBool("with-source")
			noColor, _ := cmd.Flags().GetBool("no-color")
			tooltips, _ := cmd.Flags().GetBool("tooltips")
			provenance, _ := cmd.Flags().GetBool("provenance")

			tab, err := report.ParseTab(tabName)
			if err != nil {
				return err
			}

			orch, cleanup := getOrchestrator(ctx, cfg)
			defer cleanup()

			view := report.New(orch, host.Static(args[0]), clockwork.NewRealClock())
			if err := view.SelectTab(tab); err != nil {
				return err
			}

			var (
				state   report.State
				summary source.Report
			)
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				state = view.Load(gctx)
				return nil
			})
			if withSource {
				g.Go(func() error {
					s, err := source.Inspect(gctx, orch, args[0])
					if err != nil {
						// the report stays useful without the page summary
						logger.Warn(gctx, "could not inspect page source", zap.Error(err))
						return nil
					}
					summary = s
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			opts := report.RenderOptions{
				Now:            view.Now(),
				NoColor:        noColor,
				ShowProvenance: provenance,
				Tooltips:       tooltips,
			}
			if all {
				opts.Tabs = report.Tabs
			}
			if err := report.Render(os.Stdout, state, opts); err != nil {
				return fmt.Errorf("could not render report: %w", err)
			}

			if withSource && summary.URL != "" {
				fmt.Fprintln(os.Stdout) //nolint: forbidigo
				if err := summary.Write(os.Stdout); err != nil {
					return fmt.Errorf("could not render source summary: %w", err)
				}
			}

			return nil
		},
	}

	cmd.Flags().String("tab", string(report.TabOverview), "Tab to print (overview, general, security, technical, whois)")
	cmd.Flags().Bool("all", false, "Print every tab")
	cmd.Flags().Bool("with-source", false, "Also summarise the page source")
	cmd.Flags().Bool("no-color", false, "Disable coloured output")
	cmd.Flags().Bool("tooltips", false, "Print indicator descriptions")
	cmd.Flags().Bool("provenance", false, "Show whether the score came from the service or the local heuristic")

	return cmd
}
