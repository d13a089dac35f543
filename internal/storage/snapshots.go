package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/core"
)

// SnapshotEntry is a persisted session snapshot.
type SnapshotEntry struct {
	ID        string
	SessionID string
	ModeID    string
	Score     int
	Capacity  float64
	Payload   []byte
	CreatedAt time.Time
	// ConsumedAt is zero while the snapshot can still be restored.
	ConsumedAt time.Time
}

// Consumed reports whether the snapshot was already restored.
func (e SnapshotEntry) Consumed() bool {
	return !e.ConsumedAt.IsZero()
}

// SaveSnapshotEntry stores a snapshot, replacing one with the same ID.
func (s *Store) SaveSnapshotEntry(e SnapshotEntry) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO snapshots
		 (id, session_id, mode_id, score, capacity, payload, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID,
		e.SessionID,
		e.ModeID,
		e.Score,
		e.Capacity,
		e.Payload,
		e.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save snapshot: %w", err)
	}
	return nil
}

// SaveSnapshot implements blocks.SnapshotStore.
func (s *Store) SaveSnapshot(rec blocks.SnapshotRecord) error {
	return s.SaveSnapshotEntry(SnapshotEntry{
		ID:        rec.ID,
		SessionID: rec.SessionID,
		ModeID:    rec.ModeID,
		Score:     rec.Score,
		Capacity:  rec.Capacity,
		Payload:   rec.Payload,
		CreatedAt: rec.CreatedAt,
	})
}

// ConsumeSnapshot implements blocks.SnapshotStore.
// The id does not need a row in snapshots, so snapshots restored from files
// are tracked too. Consumption marks outlive pruning.
func (s *Store) ConsumeSnapshot(id string, at time.Time) error {
	res, err := s.db.Exec(
		"INSERT OR IGNORE INTO consumed_snapshots (id, consumed_at) VALUES (?, ?)",
		id, at.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot consume snapshot: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot consume snapshot: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("storage: snapshot %s: %w", id, core.ErrSnapshotConsumed)
	}
	return nil
}

// Ensure Store implements SnapshotStore
var _ blocks.SnapshotStore = (*Store)(nil)

const snapshotColumns = `s.id, s.session_id, s.mode_id, s.score, s.capacity, s.payload, s.created_at, c.consumed_at`

const snapshotTables = `snapshots s LEFT JOIN consumed_snapshots c ON c.id = s.id`

func scanSnapshot(row rowScanner) (SnapshotEntry, error) {
	var e SnapshotEntry
	var createdMs int64
	var consumedMs sql.NullInt64
	if err := row.Scan(&e.ID, &e.SessionID, &e.ModeID, &e.Score, &e.Capacity, &e.Payload, &createdMs, &consumedMs); err != nil {
		return e, err
	}
	e.CreatedAt = time.UnixMilli(createdMs).UTC()
	if consumedMs.Valid {
		e.ConsumedAt = time.UnixMilli(consumedMs.Int64).UTC()
	}
	return e, nil
}

// SnapshotByID retrieves a snapshot by its ID.
// Returns nil if the snapshot does not exist.
func (s *Store) SnapshotByID(id string) (*SnapshotEntry, error) {
	e, err := scanSnapshot(s.db.QueryRow(
		`SELECT `+snapshotColumns+` FROM `+snapshotTables+` WHERE s.id = ?`,
		id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query snapshot: %w", err)
	}
	return &e, nil
}

// LatestSnapshot returns the newest snapshot that was not consumed yet,
// optionally for one session. Returns nil if there is none.
func (s *Store) LatestSnapshot(sessionID string) (*SnapshotEntry, error) {
	e, err := scanSnapshot(s.db.QueryRow(
		`SELECT `+snapshotColumns+`
		 FROM `+snapshotTables+`
		 WHERE c.id IS NULL AND (? = '' OR s.session_id = ?)
		 ORDER BY s.created_at DESC
		 LIMIT 1`,
		sessionID, sessionID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query latest snapshot: %w", err)
	}
	return &e, nil
}

// RecentSnapshots retrieves the newest snapshots first.
func (s *Store) RecentSnapshots(limit int) ([]SnapshotEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+snapshotColumns+`
		 FROM `+snapshotTables+`
		 ORDER BY s.created_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query snapshots: %w", err)
	}
	defer rows.Close()

	var entries []SnapshotEntry
	for rows.Next() {
		e, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// DeleteSnapshot removes a snapshot. Deleting a missing snapshot is not an error.
func (s *Store) DeleteSnapshot(id string) error {
	if _, err := s.db.Exec("DELETE FROM snapshots WHERE id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete snapshot: %w", err)
	}
	return nil
}

// PruneSnapshots deletes snapshots created before cutoff.
// Returns the number of rows removed.
func (s *Store) PruneSnapshots(cutoff time.Time) (int64, error) {
	res, err := s.db.Exec("DELETE FROM snapshots WHERE created_at < ?", cutoff.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prune snapshots: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count pruned snapshots: %w", err)
	}
	return n, nil
}
