package core

import "time"

// SnapshotValidity is the default window during which a snapshot can be restored.
const SnapshotValidity = 5 * time.Minute

// MaxClockSkew is how far in the future a snapshot may be stamped and still
// count as valid.
const MaxClockSkew = 5 * time.Second

// Snapshot is a detached copy of the restorable session state.
// It shares no memory with the session that produced it.
type Snapshot struct {
	ID        string
	Score     int
	Board     [BoardSize][BoardSize]Fill // [row][col]
	Pieces    []ShapeID                  // Active set at capture time
	Strategy  Strategy
	CreatedAt time.Time
}

// Expired reports whether the snapshot is older than window at now, or
// stamped more than MaxClockSkew in the future. A snapshot exactly window old
// is still valid.
func (s Snapshot) Expired(now time.Time, window time.Duration) bool {
	age := now.Sub(s.CreatedAt)
	return age > window || age < -MaxClockSkew
}

// Clone returns a deep copy.
func (s Snapshot) Clone() Snapshot {
	cp := s
	cp.Pieces = append([]ShapeID(nil), s.Pieces...)
	return cp
}

// Capacity returns the filled fraction of the captured board.
func (s Snapshot) Capacity() float64 {
	n := 0
	for _, row := range s.Board {
		for _, f := range row {
			if f != FillNone {
				n++
			}
		}
	}
	return float64(n) / float64(BoardCells)
}

// Capture takes a snapshot of the session. The session is not modified.
func Capture(sess *Session) Snapshot {
	return sess.CaptureSnapshot()
}

// Restore applies a snapshot to the session.
// See Session.RestoreSnapshot.
func Restore(snap Snapshot, sess *Session) error {
	return sess.RestoreSnapshot(snap)
}
