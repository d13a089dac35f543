package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks/core"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

var (
	flagSnapshotsLimit int
	flagPruneOlderThan time.Duration
)

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "List saved snapshots",
	Long: `Lists the most recent snapshots saved by simulate and resume.
A snapshot is consumed once it was restored by resume or a revive.

Examples:
  blocks snapshots
  blocks snapshots --limit 50
  blocks snapshots delete <id>
  blocks snapshots prune --older-than 24h`,
	Args: cobra.NoArgs,
	RunE: runSnapshots,
}

var snapshotsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(store *storage.Store) error {
			if err := store.DeleteSnapshot(args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted %s\n", args[0])
			return nil
		})
	},
}

var snapshotsPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old snapshots",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagPruneOlderThan <= 0 {
			return fmt.Errorf("--older-than must be positive")
		}
		return withStore(func(store *storage.Store) error {
			n, err := store.PruneSnapshots(time.Now().Add(-flagPruneOlderThan))
			if err != nil {
				return err
			}
			fmt.Printf("Pruned %d snapshot(s)\n", n)
			return nil
		})
	},
}

func init() {
	snapshotsCmd.Flags().IntVar(&flagSnapshotsLimit, "limit", 20, "Number of snapshots to show")
	snapshotsPruneCmd.Flags().DurationVar(&flagPruneOlderThan, "older-than", 24*time.Hour, "Delete snapshots older than this")

	snapshotsCmd.AddCommand(snapshotsDeleteCmd)
	snapshotsCmd.AddCommand(snapshotsPruneCmd)
}

func withStore(fn func(*storage.Store) error) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

// snapshotStatus describes whether a snapshot can still be restored.
func snapshotStatus(created time.Time, consumed bool, now time.Time, validity time.Duration) string {
	switch {
	case consumed:
		return "consumed"
	case core.Snapshot{CreatedAt: created}.Expired(now, validity):
		return "expired"
	default:
		return "restorable"
	}
}

func runSnapshots(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return withStore(func(store *storage.Store) error {
		entries, err := store.RecentSnapshots(flagSnapshotsLimit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No snapshots saved yet.")
			return nil
		}

		now := time.Now()
		validity := cfg.Snapshot.Validity()
		fmt.Printf("  %-36s  %-10s  %7s  %8s  %-16s  %s\n", "ID", "Mode", "Score", "Capacity", "Created", "Status")
		fmt.Printf("  %-36s  %-10s  %7s  %8s  %-16s  %s\n", "--", "----", "-----", "--------", "-------", "------")
		for _, e := range entries {
			status := snapshotStatus(e.CreatedAt, e.Consumed(), now, validity)
			fmt.Printf("  %-36s  %-10s  %7d  %7.0f%%  %-16s  %s\n",
				e.ID, e.ModeID, e.Score, e.Capacity*100, e.CreatedAt.Local().Format("2006-01-02 15:04"), status)
		}
		return nil
	})
}
