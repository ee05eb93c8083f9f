package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nvandessel/walkheat/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show walkheat configuration",
		Long: `View the effective walkheat configuration.

Configuration is read from ~/.walkheat/config.yaml (or --config), then a
.env file in the working directory, then WALKHEAT_* environment variables.

Examples:
  walkheat config list                  # Show all settings as YAML
  walkheat config get simulation.walks  # Get a specific setting
  walkheat config path                  # Show the default config file path`,
	}

	cmd.AddCommand(
		newConfigListCmd(),
		newConfigGetCmd(),
		newConfigPathCmd(),
	)

	return cmd
}

func newConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configuration settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(cfg)
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}
			return enc.Close()
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			key := args[0]

			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			value, found := getConfigValue(cfg, key)
			if !found {
				return fmt.Errorf("unknown configuration key: %s", key)
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
					"key":   key,
					"value": value,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %v\n", key, value)
			return nil
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the default config file path",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), config.DefaultConfigPath())
		},
	}
}

// getConfigValue returns a configuration value by dotted key.
func getConfigValue(cfg *config.WalkheatConfig, key string) (interface{}, bool) {
	switch key {
	case "simulation.walks":
		return cfg.Simulation.Walks, true
	case "simulation.boundary":
		return cfg.Simulation.Boundary, true
	case "simulation.seed":
		return cfg.Simulation.Seed, true
	case "output.image":
		return cfg.Output.Image, true
	case "output.ascii":
		return cfg.Output.ASCII, true
	case "output.open":
		return cfg.Output.Open, true
	case "output.cell_size":
		return cfg.Output.CellSize, true
	case "store.path":
		return cfg.Store.Path, true
	case "store.record":
		return cfg.Store.Record, true
	case "logging.level":
		return cfg.Logging.Level, true
	default:
		return nil, false
	}
}
