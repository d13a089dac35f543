// blocks runs and inspects the block placement puzzle engine from the terminal.
//
// Usage:
//
//	blocks list                 - List puzzle modes (or shapes with --shapes)
//	blocks simulate <mode>      - Autoplay games and report statistics
//	blocks resume <snapshot>    - Continue a saved snapshot with an autoplayer
//	blocks inspect <snapshot>   - Render a snapshot from the database or a YAML file
//	blocks snapshots            - List, delete or prune saved snapshots
//	blocks scores <mode>        - Show high scores and recent runs for a mode
//	blocks config               - Print the effective configuration
//
// Global flags:
//
//	--seed <value>        - Set RNG seed for reproducible games
//	--db <path>           - Set database path (default: ~/.blocks/blocks.db)
//	--config <path>       - Custom config YAML
//	--difficulty <name>   - Difficulty preset: easy, normal, hard, fixed
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/config"

	// Import modes to register them
	_ "github.com/vovakirdan/tui-blocks/internal/games/blocks"
)

var (
	// Global flags
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blocks",
	Short: "Blocks - an 8x8 block placement puzzle engine",
	Long: `Blocks drives an 8x8 block placement puzzle: pieces are placed on the
board, full rows and columns clear, and the game ends when no piece fits.

Available commands:
  list       - Show puzzle modes or the shape catalog
  simulate   - Autoplay games and report statistics
  resume     - Continue a saved snapshot
  inspect    - Render a snapshot
  snapshots  - Manage saved snapshots
  scores     - View high scores and recent runs
  config     - Print the effective configuration

Examples:
  blocks list
  blocks simulate classic --games 20
  blocks simulate rescue --player random --difficulty hard
  blocks inspect 5f0c2e7a-...
  blocks scores classic`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.blocks/blocks.db", "Path to the database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(snapshotsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the stderr logger from --log-level.
func newLogger() (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "blocks",
		Level:           level,
	})
	return logger, nil
}

// loadConfig loads the config and applies --difficulty.
func loadConfig() (config.BlocksConfig, error) {
	cfg, err := config.LoadBlocks(flagConfig)
	if err != nil {
		return cfg, err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplyBlocksPreset(&cfg, preset)
	return cfg, nil
}
