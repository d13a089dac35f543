// Package blocks drives the block puzzle engine: it runs sessions for a
// registered mode, feeds the difficulty hint, persists snapshots and
// records results.
package blocks

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/core"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/formats"
	"github.com/vovakirdan/tui-blocks/internal/registry"
)

// End reasons reported in RunResult.
const (
	EndGameOver  = "game_over"
	EndMoveLimit = "move_limit"
	EndAbandoned = "abandoned"
	EndCancelled = "cancelled"
)

// SnapshotRecord is a persisted snapshot with its run metadata.
type SnapshotRecord struct {
	ID        string
	SessionID string
	ModeID    string
	Score     int
	Capacity  float64
	Payload   []byte // formats YAML document
	CreatedAt time.Time
}

// SnapshotStore persists snapshots produced during a run.
type SnapshotStore interface {
	SaveSnapshot(rec SnapshotRecord) error
	// ConsumeSnapshot records that a snapshot was restored. It fails with
	// core.ErrSnapshotConsumed when the snapshot was already restored.
	ConsumeSnapshot(id string, at time.Time) error
}

// ResultSaver records finished runs.
type ResultSaver interface {
	SaveScore(modeID string, score int) (int64, error)
	SaveRunResult(res RunResult) error
}

// RunResult summarizes one finished run.
type RunResult struct {
	SessionID      string
	ModeID         string
	Strategy       string
	Score          int
	Stats          core.Stats
	EndReason      string
	Seed           int64
	Duration       time.Duration
	LastSnapshotID string
}

// Move is a player's choice for one turn.
type Move struct {
	Slot   int
	Origin core.Cell
}

// Player chooses moves for a session.
type Player interface {
	// NextMove picks an unused slot and origin. Returning false abandons the run.
	NextMove(s *core.Session) (Move, bool)
	// AcceptRevive decides whether to spend a revive after a game over.
	AcceptRevive(s *core.Session) bool
}

// Game runs one session of a registered mode.
type Game struct {
	mode       registry.Mode
	cfg        config.BlocksConfig
	session    *core.Session
	difficulty *config.DifficultyManager
	snapshots  SnapshotStore
	results    ResultSaver
	logger     *log.Logger
	clock      func() time.Time
	seed       int64
	sessionID  string
	stats      *DrawStats

	movesSinceSave int
	lastSnapshotID string
	savedGameOver  bool
}

// Option configures a Game.
type Option func(*Game)

// WithSnapshotStore enables autosave.
func WithSnapshotStore(s SnapshotStore) Option {
	return func(g *Game) { g.snapshots = s }
}

// WithResultSaver records scores and runs when a run ends.
func WithResultSaver(r ResultSaver) Option {
	return func(g *Game) { g.results = r }
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// WithClock replaces time.Now.
func WithClock(clock func() time.Time) Option {
	return func(g *Game) { g.clock = clock }
}

// WithSeed fixes the RNG seed. Zero picks a seed from the clock.
func WithSeed(seed int64) Option {
	return func(g *Game) { g.seed = seed }
}

// New creates a game for a registered mode.
func New(modeID string, cfg config.BlocksConfig, opts ...Option) (*Game, error) {
	m, err := registry.Create(modeID)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("blocks: invalid config: %w", err)
	}

	g := &Game{
		mode:       m,
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		logger:     log.New(io.Discard),
		clock:      time.Now,
		sessionID:  uuid.NewString(),
		stats:      NewDrawStats(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.seed == 0 {
		g.seed = g.clock().UnixNano()
	}
	g.logger = g.logger.With("session", g.sessionID[:8], "mode", modeID)

	catalog, unknown, err := core.DefaultCatalog().WithWeights(cfg.Selection.Weights)
	if err != nil {
		return nil, fmt.Errorf("blocks: %w", err)
	}
	for _, name := range unknown {
		g.logger.Warn("ignoring weight for unknown shape", "shape", name)
	}

	strategyName := m.Strategy()
	if strategyName == "" {
		strategyName = cfg.Selection.Strategy
	}
	strategy, ok := core.ParseStrategy(strategyName)
	if !ok {
		g.logger.Warn("unknown selection strategy", "value", strategyName, "default", strategy)
	}

	g.session = core.NewSession(core.Options{
		HandSize: cfg.Hand.Size,
		Strategy: strategy,
		Selector: core.SelectorParams{
			RescueThreshold:   cfg.Selection.RescueThreshold,
			RescueMaxCells:    cfg.Selection.RescueMaxCells,
			RescueRequireFit:  cfg.Selection.RescueRequireFit,
			AdaptiveStrength:  cfg.Selection.AdaptiveStrength,
			BalanceCategories: cfg.Selection.BalanceCategories,
		},
		Seed:             g.seed,
		Hint:             core.HintOf(g.difficulty.Hint(0, 0)),
		SnapshotValidity: cfg.Snapshot.Validity(),
		MaxRevives:       cfg.Snapshot.MaxRevives,
		Catalog:          catalog,
		Clock:            g.clock,
		Listener:         g.onEvent,
	})
	return g, nil
}

// Session returns the underlying engine session.
func (g *Game) Session() *core.Session {
	return g.session
}

// SessionID returns the run identifier.
func (g *Game) SessionID() string {
	return g.sessionID
}

// ModeID returns the registered mode id.
func (g *Game) ModeID() string {
	return g.mode.ID()
}

// Title returns the mode title.
func (g *Game) Title() string {
	return g.mode.Title()
}

// Seed returns the RNG seed of the session.
func (g *Game) Seed() int64 {
	return g.seed
}

// DrawStats returns the shapes offered so far.
func (g *Game) DrawStats() *DrawStats {
	return g.stats
}

// Resume restores a saved snapshot into this game's session. With a
// snapshot store the snapshot is marked consumed there first, so it cannot
// be restored again by any session.
func (g *Game) Resume(snap core.Snapshot) error {
	if err := g.session.CanRestore(snap); err != nil {
		return fmt.Errorf("blocks: cannot resume %s: %w", snap.ID, err)
	}
	if err := g.consume(snap.ID); err != nil {
		return fmt.Errorf("blocks: cannot resume %s: %w", snap.ID, err)
	}
	if err := g.session.RestoreSnapshot(snap); err != nil {
		return fmt.Errorf("blocks: cannot resume %s: %w", snap.ID, err)
	}
	g.logger.Info("resumed snapshot", "snapshot", snap.ID, "score", snap.Score)
	return nil
}

// Run plays until the session terminates, the player gives up, maxMoves
// placements were made (0 = unlimited) or ctx is done.
func (g *Game) Run(ctx context.Context, player Player, maxMoves int) (RunResult, error) {
	start := g.clock()
	reason, err := g.loop(ctx, player, maxMoves)

	res := RunResult{
		SessionID:      g.sessionID,
		ModeID:         g.mode.ID(),
		Strategy:       g.session.Strategy().String(),
		Score:          g.session.CurrentScore(),
		Stats:          g.session.Stats(),
		EndReason:      reason,
		Seed:           g.seed,
		Duration:       g.clock().Sub(start),
		LastSnapshotID: g.lastSnapshotID,
	}
	if err != nil {
		return res, err
	}

	g.logger.Info("run finished", "reason", reason, "score", res.Score, "moves", res.Stats.Moves)
	g.record(res)
	return res, nil
}

func (g *Game) loop(ctx context.Context, player Player, maxMoves int) (string, error) {
	moves := 0
	for {
		if ctx.Err() != nil {
			return EndCancelled, nil
		}

		switch g.session.State() {
		case core.StateTerminated:
			g.saveGameOver()
			return EndGameOver, nil

		case core.StateAwaitingRevive:
			g.saveGameOver()
			if player.AcceptRevive(g.session) {
				if err := g.revive(); err != nil {
					g.logger.Warn("revive failed", "err", err)
					if err := g.session.DeclineRevive(); err != nil {
						return "", err
					}
				} else {
					g.savedGameOver = false
					g.logger.Debug("revived", "revives_left", g.session.RevivesLeft())
				}
			} else if err := g.session.DeclineRevive(); err != nil {
				return "", err
			}

		case core.StateActive:
			if maxMoves > 0 && moves >= maxMoves {
				return EndMoveLimit, nil
			}
			stats := g.session.Stats()
			g.session.SetDifficultyHint(g.difficulty.Hint(g.session.CurrentScore(), stats.Moves))

			mv, ok := player.NextMove(g.session)
			if !ok {
				return EndAbandoned, nil
			}
			if _, err := g.session.PlaceSlot(mv.Slot, mv.Origin); err != nil {
				return "", fmt.Errorf("blocks: move %d: %w", moves+1, err)
			}
			moves++
			g.autosave()
		}
	}
}

// revive spends a revive on the pending snapshot after marking it consumed
// in the store.
func (g *Game) revive() error {
	pending, ok := g.session.PendingSnapshot()
	if !ok {
		return core.ErrNoRevive
	}
	if err := g.session.CanRestore(pending); err != nil {
		return err
	}
	if err := g.consume(pending.ID); err != nil {
		return err
	}
	return g.session.Revive()
}

func (g *Game) consume(id string) error {
	if g.snapshots == nil {
		return nil
	}
	return g.snapshots.ConsumeSnapshot(id, g.clock())
}

func (g *Game) autosave() {
	every := g.cfg.Snapshot.AutosaveEvery
	if every <= 0 || g.session.IsGameOver() {
		return
	}
	g.movesSinceSave++
	if g.movesSinceSave < every {
		return
	}
	g.movesSinceSave = 0
	g.persist(g.session.CaptureSnapshot())
}

// saveGameOver persists the snapshot a revive or a later resume would use,
// once per game over.
func (g *Game) saveGameOver() {
	if g.savedGameOver {
		return
	}
	g.savedGameOver = true
	snap, ok := g.session.PendingSnapshot()
	if !ok {
		snap = g.session.CaptureSnapshot()
	}
	g.persist(snap)
}

func (g *Game) persist(snap core.Snapshot) {
	if g.snapshots == nil {
		return
	}
	payload, err := formats.EncodeSnapshot(snap)
	if err != nil {
		g.logger.Warn("snapshot encode failed", "snapshot", snap.ID, "err", err)
		return
	}
	rec := SnapshotRecord{
		ID:        snap.ID,
		SessionID: g.sessionID,
		ModeID:    g.mode.ID(),
		Score:     snap.Score,
		Capacity:  snap.Capacity(),
		Payload:   payload,
		CreatedAt: snap.CreatedAt,
	}
	if err := g.snapshots.SaveSnapshot(rec); err != nil {
		g.logger.Warn("autosave failed", "snapshot", snap.ID, "err", err)
		return
	}
	g.lastSnapshotID = snap.ID
	g.logger.Debug("snapshot saved", "snapshot", snap.ID, "score", snap.Score)
}

func (g *Game) record(res RunResult) {
	if g.results == nil {
		return
	}
	if _, err := g.results.SaveScore(res.ModeID, res.Score); err != nil {
		g.logger.Warn("could not save score", "err", err)
	}
	if err := g.results.SaveRunResult(res); err != nil {
		g.logger.Warn("could not save run", "err", err)
	}
}

func (g *Game) onEvent(e core.Event) {
	switch ev := e.(type) {
	case core.PiecesRefilledEvent:
		g.stats.Record(ev)
		if ev.Fallback {
			g.logger.Warn("selection fell back", "requested", ev.Requested, "effective", ev.Effective, "reason", ev.Reason)
		} else {
			g.logger.Debug("pieces refilled", "strategy", ev.Effective, "shapes", ev.Shapes)
		}
	case core.LinesClearedEvent:
		g.logger.Debug("lines cleared", "rows", ev.Rows, "columns", ev.Columns, "points", ev.Points)
	case core.ScoreChangedEvent:
		g.logger.Debug("score changed", "total", ev.Total, "delta", ev.Delta)
	case core.GameOverEvent:
		g.logger.Info("game over", "score", ev.Score, "revive", ev.ReviveAvailable)
	case core.StateRestoredEvent:
		g.logger.Debug("state restored", "snapshot", ev.SnapshotID, "score", ev.Score)
	}
}
