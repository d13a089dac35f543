package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks"
)

// RunEntry represents a finished run.
type RunEntry struct {
	ID             int64
	SessionID      string
	ModeID         string
	Strategy       string
	Score          int
	Moves          int
	Lines          int
	BestCombo      int
	Refills        int
	Revives        int
	EndReason      string // "game_over", "move_limit", "abandoned", "cancelled"
	Seed           int64
	Duration       time.Duration
	LastSnapshotID string
	CreatedAt      time.Time
}

// SaveRun records a finished run.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(run RunEntry) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO runs
		 (session_id, mode_id, strategy, score, moves, lines, best_combo, refills, revives, end_reason, seed, duration_ms, last_snapshot_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.SessionID,
		run.ModeID,
		run.Strategy,
		run.Score,
		run.Moves,
		run.Lines,
		run.BestCombo,
		run.Refills,
		run.Revives,
		run.EndReason,
		run.Seed,
		run.Duration.Milliseconds(),
		nullString(run.LastSnapshotID),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const runColumns = `id, session_id, mode_id, strategy, score, moves, lines, best_combo,
	refills, revives, end_reason, seed, duration_ms, last_snapshot_id, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (RunEntry, error) {
	var run RunEntry
	var durationMs int64
	var lastSnapshot sql.NullString
	var createdAt any

	err := row.Scan(
		&run.ID,
		&run.SessionID,
		&run.ModeID,
		&run.Strategy,
		&run.Score,
		&run.Moves,
		&run.Lines,
		&run.BestCombo,
		&run.Refills,
		&run.Revives,
		&run.EndReason,
		&run.Seed,
		&durationMs,
		&lastSnapshot,
		&createdAt,
	)
	if err != nil {
		return run, err
	}

	run.Duration = time.Duration(durationMs) * time.Millisecond
	if lastSnapshot.Valid {
		run.LastSnapshotID = lastSnapshot.String
	}
	run.CreatedAt = parseTimestamp(createdAt)
	return run, nil
}

// RunBySession retrieves a run by its session ID.
// Returns nil if the run does not exist.
func (s *Store) RunBySession(sessionID string) (*RunEntry, error) {
	run, err := scanRun(s.db.QueryRow(
		`SELECT `+runColumns+` FROM runs WHERE session_id = ?`,
		sessionID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &run, nil
}

// RecentRuns retrieves the most recent runs, optionally for one mode.
func (s *Store) RecentRuns(modeID string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE ? = '' OR mode_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		modeID, modeID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunEntry
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// SaveRunResult implements blocks.ResultSaver.
func (s *Store) SaveRunResult(res blocks.RunResult) error {
	_, err := s.SaveRun(RunEntry{
		SessionID:      res.SessionID,
		ModeID:         res.ModeID,
		Strategy:       res.Strategy,
		Score:          res.Score,
		Moves:          res.Stats.Moves,
		Lines:          res.Stats.Lines,
		BestCombo:      res.Stats.BestCombo,
		Refills:        res.Stats.Refills,
		Revives:        res.Stats.Revives,
		EndReason:      res.EndReason,
		Seed:           res.Seed,
		Duration:       res.Duration,
		LastSnapshotID: res.LastSnapshotID,
	})
	return err
}

// Ensure Store implements ResultSaver
var _ blocks.ResultSaver = (*Store)(nil)

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
