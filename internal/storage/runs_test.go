package storage

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/core"
)

func TestStoreSaveRunResult(t *testing.T) {
	store := openTestStore(t)

	res := blocks.RunResult{
		SessionID: "run-1",
		ModeID:    "rescue",
		Strategy:  "rescue",
		Score:     1300,
		Stats: core.Stats{
			Moves:     42,
			Lines:     9,
			BestCombo: 3,
			Refills:   15,
			Revives:   1,
		},
		EndReason:      blocks.EndGameOver,
		Seed:           77,
		Duration:       1500 * time.Millisecond,
		LastSnapshotID: "snap-9",
	}
	if err := store.SaveRunResult(res); err != nil {
		t.Fatalf("SaveRunResult() failed: %v", err)
	}

	run, err := store.RunBySession("run-1")
	if err != nil {
		t.Fatalf("RunBySession() failed: %v", err)
	}
	if run == nil {
		t.Fatal("RunBySession() returned nil")
	}
	if run.Score != 1300 || run.Moves != 42 || run.Lines != 9 || run.BestCombo != 3 {
		t.Errorf("Unexpected run counters: %+v", run)
	}
	if run.Refills != 15 || run.Revives != 1 {
		t.Errorf("Unexpected refills/revives: %+v", run)
	}
	if run.EndReason != "game_over" {
		t.Errorf("EndReason = %q, expected game_over", run.EndReason)
	}
	if run.Seed != 77 {
		t.Errorf("Seed = %d, expected 77", run.Seed)
	}
	if run.Duration != 1500*time.Millisecond {
		t.Errorf("Duration = %v, expected 1.5s", run.Duration)
	}
	if run.LastSnapshotID != "snap-9" {
		t.Errorf("LastSnapshotID = %q, expected snap-9", run.LastSnapshotID)
	}

	// session_id is unique
	if err := store.SaveRunResult(res); err == nil {
		t.Error("SaveRunResult() with duplicate session should fail")
	}
}

func TestStoreRunBySessionMissing(t *testing.T) {
	store := openTestStore(t)

	run, err := store.RunBySession("nope")
	if err != nil {
		t.Fatalf("RunBySession() failed: %v", err)
	}
	if run != nil {
		t.Errorf("Expected nil run, got %+v", run)
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)

	for i, mode := range []string{"classic", "rescue", "classic"} {
		_, err := store.SaveRun(RunEntry{
			SessionID: string(rune('a' + i)),
			ModeID:    mode,
			Strategy:  "rarity",
			Score:     i * 100,
			EndReason: "game_over",
		})
		if err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	all, err := store.RecentRuns("", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(all))
	}
	if all[0].SessionID != "c" {
		t.Errorf("Expected newest run first, got %q", all[0].SessionID)
	}
	if all[0].LastSnapshotID != "" {
		t.Errorf("Expected empty snapshot id, got %q", all[0].LastSnapshotID)
	}

	classic, err := store.RecentRuns("classic", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(classic) != 2 {
		t.Errorf("Expected 2 classic runs, got %d", len(classic))
	}
}
