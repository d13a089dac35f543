package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks/core"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/formats"
	"github.com/vovakirdan/tui-blocks/internal/platform/tui"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

var flagSnapshotSession string

// latestArg selects the newest restorable snapshot in the database.
const latestArg = "latest"

var inspectCmd = &cobra.Command{
	Use:   "inspect <snapshot-id|file|latest>",
	Short: "Render a snapshot",
	Long: `Decodes a snapshot and renders its board and pieces.

The argument is a path to a snapshot YAML file, a snapshot ID in the
database, or "latest" for the newest snapshot that was not restored yet.
Unknown tokens in the snapshot are replaced by defaults and listed.

Examples:
  blocks inspect 5f0c2e7a-9d7b-4d7e-9a53-0c1e6f0a4b21
  blocks inspect latest --session 0b7a3c1e-2f4d-4b8e-9c6a-1d2e3f4a5b6c
  blocks inspect ./saved.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&flagSnapshotSession, "session", "", "With latest: only consider this session's snapshots")
}

// loadedSnapshot is a decoded snapshot and where it came from.
type loadedSnapshot struct {
	Snap     core.Snapshot
	ModeID   string // empty for files
	Consumed bool
	Warnings []formats.TokenWarning
	Source   string
}

// loadSnapshot reads a snapshot from a file, or from the database by ID.
// "latest" picks the newest unconsumed snapshot, limited to session if set.
func loadSnapshot(arg, session string, logger *log.Logger) (*loadedSnapshot, error) {
	if arg == latestArg {
		return loadLatestSnapshot(session, logger)
	}

	data, err := os.ReadFile(arg)
	if err == nil {
		snap, warnings, err := formats.DecodeSnapshot(data, logger)
		if err != nil {
			return nil, err
		}
		return &loadedSnapshot{Snap: snap, Warnings: warnings, Source: arg}, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("cannot read %s: %w", arg, err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	entry, err := store.SnapshotByID(arg)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, fmt.Errorf("no snapshot file or ID %q", arg)
	}
	return decodeEntry(entry, logger)
}

func loadLatestSnapshot(session string, logger *log.Logger) (*loadedSnapshot, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	entry, err := store.LatestSnapshot(session)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		if session != "" {
			return nil, fmt.Errorf("no restorable snapshot for session %s", session)
		}
		return nil, errors.New("no restorable snapshot saved")
	}
	return decodeEntry(entry, logger)
}

func decodeEntry(entry *storage.SnapshotEntry, logger *log.Logger) (*loadedSnapshot, error) {
	snap, warnings, err := formats.DecodeSnapshot(entry.Payload, logger)
	if err != nil {
		return nil, err
	}
	return &loadedSnapshot{
		Snap:     snap,
		ModeID:   entry.ModeID,
		Consumed: entry.Consumed(),
		Warnings: warnings,
		Source:   "database",
	}, nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	loaded, err := loadSnapshot(args[0], flagSnapshotSession, logger)
	if err != nil {
		return err
	}
	snap := loaded.Snap
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	styled := styledOutput()
	board := core.NewBoard()
	board.LoadMatrix(snap.Board)

	fmt.Printf("Snapshot %s (%s)\n", snap.ID, loaded.Source)
	if loaded.ModeID != "" {
		fmt.Printf("Mode:      %s\n", loaded.ModeID)
	}
	fmt.Printf("Score:     %d\n", snap.Score)
	fmt.Printf("Strategy:  %s\n", snap.Strategy)
	fmt.Printf("Capacity:  %.0f%%\n", snap.Capacity()*100)
	fmt.Printf("Created:   %s\n", snap.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("Status:    %s\n", snapshotStatus(snap.CreatedAt, loaded.Consumed, time.Now(), cfg.Snapshot.Validity()))
	fmt.Println()
	fmt.Println(tui.RenderBoard(board, styled))

	catalog := core.DefaultCatalog()
	slots := make([]core.Slot, 0, len(snap.Pieces))
	for _, id := range snap.Pieces {
		slots = append(slots, core.Slot{Shape: catalog.Lookup(id)})
	}
	if len(slots) > 0 {
		fmt.Println()
		fmt.Println("Pieces:")
		fmt.Println(tui.RenderHand(slots, styled))
		if !core.AnyPieceFits(shapesOf(slots), board) {
			fmt.Println("No piece fits this board.")
		}
	}

	if len(loaded.Warnings) > 0 {
		fmt.Println()
		fmt.Println("Replaced tokens:")
		for _, w := range loaded.Warnings {
			fmt.Printf("  %s\n", w)
		}
	}
	return nil
}

func shapesOf(slots []core.Slot) []*core.Shape {
	out := make([]*core.Shape, len(slots))
	for i, sl := range slots {
		out[i] = sl.Shape
	}
	return out
}
