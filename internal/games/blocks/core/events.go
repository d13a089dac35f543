package core

// Event is a notification emitted by a Session.
type Event interface {
	event()
}

// Listener receives session events synchronously, in emission order.
type Listener func(Event)

// ScoreChangedEvent is emitted whenever the total changes.
type ScoreChangedEvent struct {
	Total int
	Delta int
}

// LinesClearedEvent is emitted after a placement that cleared lines.
type LinesClearedEvent struct {
	Rows    []int
	Columns []int
	Lines   int
	Points  int
}

// PiecesRefilledEvent is emitted when the active set is replaced.
type PiecesRefilledEvent struct {
	Shapes    []ShapeID
	Requested Strategy
	Effective Strategy
	Fallback  bool
	Reason    string
}

// GameOverEvent is emitted when no active piece fits.
type GameOverEvent struct {
	ReviveAvailable bool
	SnapshotID      string
	Score           int
}

// StateRestoredEvent is emitted after a successful restore.
type StateRestoredEvent struct {
	SnapshotID string
	Score      int
}

func (ScoreChangedEvent) event()   {}
func (LinesClearedEvent) event()   {}
func (PiecesRefilledEvent) event() {}
func (GameOverEvent) event()       {}
func (StateRestoredEvent) event()  {}
