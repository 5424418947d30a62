package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/bindgen/cmd/bindgen/commands"
	"github.com/teranos/bindgen/config"
	"github.com/teranos/bindgen/logger"
)

var rootCmd = &cobra.Command{
	Use:   "bindgen",
	Short: "bindgen - C++ to C binding generator",
	Long: `bindgen - propagates C++ template instantiations and synthesizes
C-compatible identifiers for the exported functions of C++ libraries.

Available commands:
  generate - Process the libraries of a workspace manifest
  config   - Show, validate or initialize bindgen.toml
  version  - Show build information

Examples:
  bindgen generate                         # Process bindgen.workspace.toml
  bindgen generate --library qtgui -v      # Process qtgui and its dependencies
  bindgen generate --policy all_matches    # Apply every matching instantiation
  bindgen config init                      # Write ~/.bindgen/bindgen.toml`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonLogs, _ := cmd.Flags().GetBool("json-logs")

		// A broken config file is reported by the command that needs it
		if cfg, err := config.Load(); err == nil {
			jsonLogs = jsonLogs || cfg.Log.JSON
			verbosity = max(verbosity, cfg.Log.Verbosity)
		}

		if err := logger.Initialize(jsonLogs, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "Emit logs as JSON on stderr")

	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
