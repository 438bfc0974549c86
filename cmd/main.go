// Package main provides the SafeSurf CLI.
// It wires subcommands (analyze, report, source, report-phishing, serve-stub),
// loads configuration, and initializes logging.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"safesurf/internal/config"
	"safesurf/pkg/logger"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// main sets up the root Cobra command, loads configuration and logging, and
// registers subcommands before executing the CLI.
func main() {
	rootCmd := &cobra.Command{
		Use:           "safesurf",
		Short:         "Scores how trustworthy a web page is",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// there is no way to access flags before command execution in cobra.
	// configPath here is parsed using the standard flags package.
	// following line is just added to prevent errors when Cobra is parsing the flags.
	rootCmd.PersistentFlags().StringP("config", "c", "config.yml", "Config File Path")

	fs := flag.NewFlagSet("safesurf", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	configPath := fs.String("c", "config.yml", "The config file path")
	_ = fs.Parse(configArgs(os.Args[1:]))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("could not load config file: ", err)
	}

	if err := logger.Setup(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatal("could not setup logger: ", err)
	}

	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			_ = logger.Get(ctx).Sync()

			panic(p)
		}
	}()

	rootCmd.AddCommand(
		analyzeCommand(cfg),
		reportCommand(cfg),
		sourceCommand(cfg),
		reportPhishingCommand(cfg),
		serveStubCommand(cfg),
	)

	err = rootCmd.Execute()
	_ = logger.Get(ctx).Sync()
	if err != nil {
		logger.Error(ctx, "command failed", zap.Error(err))
		os.Exit(1) //nolint: gocritic
	}
}

// configArgs picks the -c/--config flag out of args so it can be read before
// cobra parses the command line.
func configArgs(args []string) []string {
	for i, a := range args {
		switch {
		case a == "-c" || a == "--config" || a == "-config":
			if i+1 < len(args) {
				return []string{"-c", args[i+1]}
			}
		case strings.HasPrefix(a, "-c="):
			return []string{a}
		case strings.HasPrefix(a, "--config="):
			return []string{"-c=" + strings.TrimPrefix(a, "--config=")}
		}
	}

	return nil
}
