package core

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// State is the lifecycle state of a session.
type State uint8

const (
	StateActive State = iota
	StateAwaitingRevive
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateAwaitingRevive:
		return "awaiting_revive"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Options configures a new session.
type Options struct {
	HandSize         int
	Strategy         Strategy
	Selector         SelectorParams
	Seed             int64
	Hint             Hint // Initial difficulty hint
	SnapshotValidity time.Duration
	MaxRevives       int
	Catalog          *Catalog
	Clock            func() time.Time
	NewID            func() string
	Listener         Listener
}

// DefaultOptions returns options for a standard game.
func DefaultOptions() Options {
	return Options{
		HandSize:         3,
		Strategy:         DefaultStrategy,
		Selector:         DefaultSelectorParams(),
		Seed:             time.Now().UnixNano(),
		SnapshotValidity: SnapshotValidity,
		MaxRevives:       1,
	}
}

// Slot is one position of the active piece set.
type Slot struct {
	Shape *Shape
	Used  bool
}

// MoveResult reports the effects of one accepted placement.
type MoveResult struct {
	Outcome  PlacementOutcome
	Points   int
	Score    int
	Refilled bool
	GameOver bool
}

// LinesCleared returns the number of rows plus columns cleared.
func (r MoveResult) LinesCleared() int {
	return r.Outcome.LinesCleared
}

// Stats holds per-session counters.
type Stats struct {
	Moves       int
	CellsPlaced int
	Lines       int
	BestCombo   int // Most lines cleared by one placement
	Refills     int
	Revives     int
}

// Session is one playthrough: board, score, active piece set, strategy and
// the revive state machine
//
//	active -> awaiting_revive -> active | terminated
//	active -> terminated (no revive left)
//
// A Session is not safe for concurrent use.
type Session struct {
	opts     Options
	board    *Board
	score    Score
	slots    []Slot
	strategy Strategy
	selector *Selector
	hint     Hint
	state    State

	pending     *Snapshot
	consumed    map[string]bool
	revivesLeft int
	stats       Stats
}

// NewSession starts a session with an empty board, zero score and a fresh
// active set. Unset hand size, validity window, catalog, clock and id
// generator fall back to DefaultOptions.
func NewSession(opts Options) *Session {
	def := DefaultOptions()
	if opts.HandSize <= 0 {
		opts.HandSize = def.HandSize
	}
	if opts.Strategy >= strategyCount {
		opts.Strategy = DefaultStrategy
	}
	if opts.SnapshotValidity <= 0 {
		opts.SnapshotValidity = def.SnapshotValidity
	}
	if opts.MaxRevives < 0 {
		opts.MaxRevives = 0
	}
	if opts.Catalog == nil {
		opts.Catalog = DefaultCatalog()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}

	s := &Session{
		opts:        opts,
		board:       NewBoard(),
		strategy:    opts.Strategy,
		selector:    NewSelector(opts.Catalog, opts.Selector, opts.Seed),
		consumed:    make(map[string]bool),
		revivesLeft: opts.MaxRevives,
		hint:        opts.Hint,
	}
	s.refill(opts.HandSize, opts.Strategy)
	s.checkGameOver()
	return s
}

// AttemptPlace places the first unused slot holding the shape at origin.
func (s *Session) AttemptPlace(id ShapeID, origin Cell) (MoveResult, error) {
	if err := s.requireActive(); err != nil {
		return MoveResult{}, err
	}
	for i, slot := range s.slots {
		if !slot.Used && slot.Shape.ID == id {
			return s.place(i, origin)
		}
	}
	return MoveResult{}, fmt.Errorf("%s: %w", id, ErrPieceNotInHand)
}

// PlaceSlot places the piece in the given slot at origin.
func (s *Session) PlaceSlot(slot int, origin Cell) (MoveResult, error) {
	if err := s.requireActive(); err != nil {
		return MoveResult{}, err
	}
	if slot < 0 || slot >= len(s.slots) || s.slots[slot].Used {
		return MoveResult{}, fmt.Errorf("slot %d: %w", slot, ErrPieceNotInHand)
	}
	return s.place(slot, origin)
}

func (s *Session) place(slot int, origin Cell) (MoveResult, error) {
	piece := Piece{Shape: s.slots[slot].Shape, Origin: origin}
	out, err := s.board.Place(piece, FillNone)
	if err != nil {
		return MoveResult{}, err
	}
	s.slots[slot].Used = true

	s.stats.Moves++
	s.stats.CellsPlaced += out.CellsPlaced

	res := MoveResult{Outcome: out}
	if out.LinesCleared > 0 {
		res.Points = Award(out.LinesCleared)
		s.stats.Lines += out.LinesCleared
		s.stats.BestCombo = max(s.stats.BestCombo, out.LinesCleared)
		s.emit(LinesClearedEvent{
			Rows:    out.Rows,
			Columns: out.Columns,
			Lines:   out.LinesCleared,
			Points:  res.Points,
		})
		s.score.Accumulate(res.Points)
		s.emit(ScoreChangedEvent{Total: s.score.Total(), Delta: res.Points})
	}
	res.Score = s.score.Total()

	if s.allUsed() {
		s.refill(s.opts.HandSize, s.strategy)
		res.Refilled = true
	}
	res.GameOver = s.checkGameOver()
	return res, nil
}

// RequestRefill replaces the whole active set with count new pieces drawn
// under strategy, which becomes the session strategy.
func (s *Session) RequestRefill(count int, strategy Strategy) (Selection, error) {
	if err := s.requireActive(); err != nil {
		return Selection{}, err
	}
	if count <= 0 {
		return Selection{}, fmt.Errorf("refill %d: %w", count, ErrInvalidCount)
	}
	if strategy >= strategyCount {
		strategy = DefaultStrategy
	}
	sel := s.refill(count, strategy)
	s.checkGameOver()
	return sel, nil
}

func (s *Session) refill(count int, strategy Strategy) Selection {
	// count is positive here so Refill cannot fail.
	sel, _ := s.selector.Refill(count, strategy, s.board, s.hint)
	s.commitHand(sel, strategy)
	return sel
}

func (s *Session) commitHand(sel Selection, strategy Strategy) {
	slots := make([]Slot, len(sel.Shapes))
	for i, sh := range sel.Shapes {
		slots[i] = Slot{Shape: sh}
	}
	s.slots = slots
	s.strategy = strategy
	s.stats.Refills++
	s.emit(PiecesRefilledEvent{
		Shapes:    sel.IDs(),
		Requested: sel.Requested,
		Effective: sel.Effective,
		Fallback:  sel.Fallback,
		Reason:    sel.Reason,
	})
}

// SetDifficultyHint sets the signal used by adaptive refills.
func (s *Session) SetDifficultyHint(v float64) {
	s.hint = HintOf(v)
}

// ClearDifficultyHint removes the difficulty signal.
func (s *Session) ClearDifficultyHint() {
	s.hint = NoHint
}

// DifficultyHint returns the current difficulty signal.
func (s *Session) DifficultyHint() Hint {
	return s.hint
}

// CaptureSnapshot copies the restorable state. The session is not modified.
func (s *Session) CaptureSnapshot() Snapshot {
	return Snapshot{
		ID:        s.opts.NewID(),
		Score:     s.score.Total(),
		Board:     s.board.Matrix(),
		Pieces:    s.handIDs(),
		Strategy:  s.strategy,
		CreatedAt: s.opts.Clock(),
	}
}

// RestoreSnapshot replaces score, strategy and board with the snapshot
// contents and draws a fresh active set against the restored board. The
// captured pieces are not reused. A snapshot can be restored once, and only
// within the validity window. On error the session is unchanged.
func (s *Session) RestoreSnapshot(snap Snapshot) error {
	if err := s.CanRestore(snap); err != nil {
		return err
	}
	s.commitRestore(snap)
	s.checkGameOver()
	return nil
}

// CanRestore reports the error RestoreSnapshot would return for snap,
// without changing the session.
func (s *Session) CanRestore(snap Snapshot) error {
	if s.state == StateTerminated {
		return ErrSessionTerminated
	}
	return s.checkRestorable(snap)
}

func (s *Session) checkRestorable(snap Snapshot) error {
	if s.consumed[snap.ID] {
		return fmt.Errorf("snapshot %s: %w", snap.ID, ErrSnapshotConsumed)
	}
	if snap.Expired(s.opts.Clock(), s.opts.SnapshotValidity) {
		return fmt.Errorf("snapshot %s: %w", snap.ID, ErrExpiredSnapshot)
	}
	return nil
}

func (s *Session) commitRestore(snap Snapshot) {
	board := NewBoard()
	board.LoadMatrix(snap.Board)

	strategy := snap.Strategy
	if strategy >= strategyCount {
		strategy = DefaultStrategy
	}
	sel, _ := s.selector.Refill(s.opts.HandSize, strategy, board, s.hint)

	prev := s.score.Total()
	s.board = board
	s.score.set(snap.Score)
	s.consumed[snap.ID] = true
	s.pending = nil
	s.state = StateActive
	s.commitHand(sel, strategy)

	if delta := s.score.Total() - prev; delta != 0 {
		s.emit(ScoreChangedEvent{Total: s.score.Total(), Delta: delta})
	}
	s.emit(StateRestoredEvent{SnapshotID: snap.ID, Score: s.score.Total()})
}

// Revive restores the snapshot captured at game over and spends one revive.
func (s *Session) Revive() error {
	switch s.state {
	case StateTerminated:
		return ErrSessionTerminated
	case StateActive:
		return ErrNoRevive
	}
	if s.pending == nil {
		return ErrNoRevive
	}
	snap := *s.pending
	if err := s.checkRestorable(snap); err != nil {
		return err
	}
	s.revivesLeft--
	s.stats.Revives++
	s.commitRestore(snap)
	s.checkGameOver()
	return nil
}

// DeclineRevive ends a session that is waiting for a revive decision.
func (s *Session) DeclineRevive() error {
	switch s.state {
	case StateTerminated:
		return ErrSessionTerminated
	case StateActive:
		return ErrNoRevive
	}
	s.pending = nil
	s.state = StateTerminated
	return nil
}

// checkGameOver moves the session out of the active state when no unused
// piece fits. Returns true if the game is over.
func (s *Session) checkGameOver() bool {
	if s.state != StateActive {
		return true
	}
	if AnyPieceFits(s.Hand(), s.board) {
		return false
	}

	ev := GameOverEvent{Score: s.score.Total()}
	if s.revivesLeft > 0 {
		snap := s.CaptureSnapshot()
		s.pending = &snap
		s.state = StateAwaitingRevive
		ev.ReviveAvailable = true
		ev.SnapshotID = snap.ID
	} else {
		s.state = StateTerminated
	}
	s.emit(ev)
	return true
}

func (s *Session) requireActive() error {
	switch s.state {
	case StateActive:
		return nil
	case StateTerminated:
		return ErrSessionTerminated
	default:
		return ErrNotActive
	}
}

func (s *Session) allUsed() bool {
	for _, slot := range s.slots {
		if !slot.Used {
			return false
		}
	}
	return true
}

func (s *Session) handIDs() []ShapeID {
	var ids []ShapeID
	for _, slot := range s.slots {
		if !slot.Used {
			ids = append(ids, slot.Shape.ID)
		}
	}
	return ids
}

func (s *Session) emit(e Event) {
	if s.opts.Listener != nil {
		s.opts.Listener(e)
	}
}

// IsGameOver reports whether the session left the active state.
func (s *Session) IsGameOver() bool {
	return s.state != StateActive
}

// BoardCapacity returns the filled fraction of the board.
func (s *Session) BoardCapacity() float64 {
	return s.board.Capacity()
}

// CurrentScore returns the running total.
func (s *Session) CurrentScore() int {
	return s.score.Total()
}

// State returns the lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Strategy returns the strategy used for the next refill.
func (s *Session) Strategy() Strategy {
	return s.strategy
}

// Slots returns a copy of the active set including used slots.
func (s *Session) Slots() []Slot {
	out := make([]Slot, len(s.slots))
	copy(out, s.slots)
	return out
}

// Hand returns the unused shapes of the active set in slot order.
func (s *Session) Hand() []*Shape {
	var out []*Shape
	for _, slot := range s.slots {
		if !slot.Used {
			out = append(out, slot.Shape)
		}
	}
	return out
}

// Board returns a copy of the board.
func (s *Session) Board() *Board {
	return s.board.Clone()
}

// PendingSnapshot returns the snapshot captured at game over, if any.
func (s *Session) PendingSnapshot() (Snapshot, bool) {
	if s.pending == nil {
		return Snapshot{}, false
	}
	return s.pending.Clone(), true
}

// RevivesLeft returns the remaining revive budget.
func (s *Session) RevivesLeft() int {
	return s.revivesLeft
}

// Stats returns the session counters.
func (s *Session) Stats() Stats {
	return s.stats
}

// Catalog returns the catalog pieces are drawn from.
func (s *Session) Catalog() *Catalog {
	return s.opts.Catalog
}

// Options returns the effective session options.
func (s *Session) Options() Options {
	return s.opts
}
