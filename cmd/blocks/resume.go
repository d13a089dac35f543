package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks"
	"github.com/vovakirdan/tui-blocks/internal/platform/tui"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

var flagResumeMode string

var resumeCmd = &cobra.Command{
	Use:   "resume <snapshot-id|file|latest>",
	Short: "Continue a saved snapshot",
	Long: `Restores a snapshot into a new session and keeps playing with an autoplayer.

The board, score and strategy come from the snapshot; a fresh set of pieces
is drawn. A snapshot can only be restored once, and only within the
configured validity window (snapshot.validity_seconds). "latest" picks the
newest snapshot that was not restored yet.

Examples:
  blocks resume latest
  blocks resume latest --session 0b7a3c1e-2f4d-4b8e-9c6a-1d2e3f4a5b6c
  blocks resume 5f0c2e7a-9d7b-4d7e-9a53-0c1e6f0a4b21
  blocks resume ./saved.yaml --mode rescue --player random`,
	Args: cobra.ExactArgs(1),
	RunE: runResume,
}

func init() {
	resumeCmd.Flags().StringVar(&flagResumeMode, "mode", "", "Mode to resume in (default: the snapshot's mode, or classic)")
	resumeCmd.Flags().StringVar(&flagSnapshotSession, "session", "", "With latest: only consider this session's snapshots")
	resumeCmd.Flags().StringVar(&flagPlayer, "player", "greedy", "Autoplayer: greedy, random")
	resumeCmd.Flags().IntVar(&flagMaxMoves, "max-moves", 0, "Stop after this many moves (0 = no limit)")
	resumeCmd.Flags().BoolVar(&flagRevive, "revive", true, "Accept revives when offered")
}

func runResume(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	loaded, err := loadSnapshot(args[0], flagSnapshotSession, logger)
	if err != nil {
		return err
	}

	modeID := flagResumeMode
	if modeID == "" {
		modeID = loaded.ModeID
	}
	if modeID == "" {
		modeID = "classic"
	}

	// The store records consumed snapshots, so resume cannot run without it.
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	g, err := blocks.New(modeID, cfg,
		blocks.WithLogger(logger),
		blocks.WithSeed(flagSeed),
		blocks.WithSnapshotStore(store),
		blocks.WithResultSaver(store),
	)
	if err != nil {
		return err
	}
	if err := g.Resume(loaded.Snap); err != nil {
		return err
	}

	player, ok := blocks.NewPlayer(flagPlayer, g.Seed(), flagRevive)
	if !ok {
		return fmt.Errorf("unknown player %q (want greedy or random)", flagPlayer)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	res, err := g.Run(ctx, player, flagMaxMoves)
	if err != nil {
		return err
	}

	styled := styledOutput()
	fmt.Printf("Resumed %s in %s at %d points\n", loaded.Snap.ID, g.Title(), loaded.Snap.Score)
	fmt.Println()
	fmt.Println(tui.RenderBoard(g.Session().Board(), styled))
	fmt.Println()

	summary := fmt.Sprintf("Score:    %d\nMoves:    %d\nLines:    %d\nEnded:    %s",
		res.Score, res.Stats.Moves, res.Stats.Lines, res.EndReason)
	if res.LastSnapshotID != "" {
		summary += "\nSnapshot: " + res.LastSnapshotID
	}
	if styled {
		fmt.Println(tui.Panel("Result", summary))
	} else {
		fmt.Println(summary)
	}
	return nil
}
