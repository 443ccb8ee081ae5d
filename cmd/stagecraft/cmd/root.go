// Package cmd contains all CLI commands for the stagecraft engine.
package cmd

import (
	"github.com/danielpatrickdp/stagecraft/internal/config"
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "stagecraft",
	Short: "Adaptive procedural difficulty engine for match-3 stages",
	Long: `stagecraft generates per-stage puzzle challenge descriptors, personalizes
them to a player's skill and learning history, and refines that
personalization from observed play outcomes.

Patterns are deterministic: the same seed, catalog, and profile snapshot
always regenerate the same stage.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "engine config file (optional)")
}

// loadConfig resolves the engine configuration for subcommands.
func loadConfig() (config.EngineConfig, error) {
	return config.Load(cfgFile)
}
