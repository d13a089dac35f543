package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks/core"
	"github.com/vovakirdan/tui-blocks/internal/platform/tui"
	"github.com/vovakirdan/tui-blocks/internal/registry"
)

var flagListShapes bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all puzzle modes",
	Long: `Shows the registered puzzle modes, or the shape catalog with --shapes.

Shape weights include overrides from the loaded config.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&flagListShapes, "shapes", false, "List the shape catalog instead of modes")
}

func runList(cmd *cobra.Command, args []string) error {
	if flagListShapes {
		return listShapes()
	}

	modes := registry.List()
	if len(modes) == 0 {
		fmt.Println("No modes available.")
		return nil
	}

	fmt.Println("Available modes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, m := range modes {
		if len(m.ID) > maxIDLen {
			maxIDLen = len(m.ID)
		}
	}

	fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, "ID", "Strategy", "Description")
	fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, "--", "--------", "-----------")

	for _, m := range modes {
		strategy := m.Strategy
		if strategy == "" {
			strategy = "(config)"
		}
		fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, m.ID, strategy, m.Description)
	}

	fmt.Println()
	fmt.Println("Run 'blocks simulate <id>' to autoplay a mode.")
	return nil
}

func listShapes() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	catalog, unknown, err := core.DefaultCatalog().WithWeights(cfg.Selection.Weights)
	if err != nil {
		return err
	}
	for _, name := range unknown {
		fmt.Printf("Warning: config weight for unknown shape %q ignored\n", name)
	}

	total := catalog.TotalWeight()
	styled := styledOutput()
	showShapes := terminalWidth() >= 60

	fmt.Printf("  %-12s  %-12s  %5s  %6s  %6s\n", "Shape", "Category", "Cells", "Weight", "Share")
	fmt.Printf("  %-12s  %-12s  %5s  %6s  %6s\n", "-----", "--------", "-----", "------", "-----")
	for _, s := range catalog.Shapes() {
		share := 0.0
		if total > 0 {
			share = s.Weight / total * 100
		}
		fmt.Printf("  %-12s  %-12s  %5d  %6.1f  %5.1f%%\n", s.Name, s.Category, s.Size(), s.Weight, share)
		if showShapes {
			fmt.Println(indent(tui.RenderShape(s, styled), "    "))
		}
	}
	return nil
}
