package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nvandessel/walkheat/internal/config"
	"github.com/nvandessel/walkheat/internal/logging"
)

var (
	version = "0.1.0-dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "walkheat",
		Short: "Bounded random walk simulator with heatmap output",
		Long: `walkheat runs random walks that start at the origin of the integer
lattice and stop as soon as they leave a square boundary.

Every in-bounds position is counted into a heatmap. After the batch the
average walk length and the number of walks leaving through each side are
printed, and the heatmap is rendered to a PNG.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.walkheat/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: info, debug, trace")

	rootCmd.AddCommand(
		newVersionCmd(),
		newSimulateCmd(),
		newRunsCmd(),
		newConfigCmd(),
	)

	return rootCmd
}

// commandContext returns the command's context, or Background when the
// command runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadConfig resolves configuration for a command: config file, .env and
// environment, then the --log-level flag. It also builds the stderr logger.
func loadConfig(cmd *cobra.Command) (*config.WalkheatConfig, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level, _ = cmd.Flags().GetString("log-level")
	}

	return cfg, logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr()), nil
}
