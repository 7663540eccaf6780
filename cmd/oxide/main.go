// Package main implements the oxide CLI, the command-line surface over
// oxidekit-core's components; the C4 text-edit core has no subcommand.
//
// File index:
//   - main.go             - entry point, rootCmd, global flags, persistent setup
//   - cmd_version.go      - `oxide version` (C1 solver/parser)
//   - cmd_capability.go   - `oxide capability` (C2 registry/policy)
//   - cmd_tokens.go       - `oxide tokens` (C3 brand pack inheritance)
//   - cmd_patch.go        - `oxide patch` (C5 patch inspection/history)
//   - cmd_serve.go        - `oxide serve` (C6 hot-reload dev server)
//   - cmd_attest.go       - `oxide attest` (C7 attestation pipeline)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oxidekit/core/internal/config"
	"github.com/oxidekit/core/internal/logging"
)

var (
	verbose    bool
	jsonLogs   bool
	configPath string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "oxide",
	Short: "oxidekit-core command-line surface",
	Long: `oxide exposes the non-rendering core of OxideKit: version solving,
capability policy, token governance, the dev editor patch pipeline, the
hot-reload dev server, and the binary attestation pipeline.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded

		level := cfg.Logging.Level
		if verbose {
			level = "debug"
		}
		logging.Configure(logging.Config{
			Level:      level,
			JSONFormat: jsonLogs || cfg.Logging.JSONFormat,
		})
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "emit logs as JSON to stdout")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "oxide.yaml", "path to config file")

	rootCmd.AddCommand(
		versionCmd,
		capabilityCmd,
		tokensCmd,
		patchCmd,
		serveCmd,
		attestCmd,
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
