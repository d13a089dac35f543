package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-blocks/internal/config"
)

var flagConfigDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Prints the configuration after the search order and --difficulty are applied.

Search order: --config, ~/.blocks/configs/blocks.yaml, ./configs/blocks.yaml,
then the built-in defaults. Use --defaults to print the commented default file.

Examples:
  blocks config
  blocks config --difficulty easy
  blocks config --defaults > ~/.blocks/configs/blocks.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the built-in default config file")
}

func runConfig(cmd *cobra.Command, args []string) error {
	if flagConfigDefaults {
		fmt.Print(string(config.GetDefaultYAML()))
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot encode config: %w", err)
	}
	fmt.Print(string(data))
	return nil
}
