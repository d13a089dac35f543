package blocks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/core"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/formats"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)}
}

type memSnapshots struct {
	recs     []SnapshotRecord
	consumed map[string]time.Time
	err      error
}

func (m *memSnapshots) SaveSnapshot(rec SnapshotRecord) error {
	if m.err != nil {
		return m.err
	}
	m.recs = append(m.recs, rec)
	return nil
}

func (m *memSnapshots) ConsumeSnapshot(id string, at time.Time) error {
	if m.consumed == nil {
		m.consumed = make(map[string]time.Time)
	}
	if _, ok := m.consumed[id]; ok {
		return core.ErrSnapshotConsumed
	}
	m.consumed[id] = at
	return nil
}

func decodeRecord(t *testing.T, rec SnapshotRecord) core.Snapshot {
	t.Helper()
	snap, _, err := formats.DecodeSnapshot(rec.Payload, nil)
	require.NoError(t, err)
	return snap
}

type memResults struct {
	scores []int
	runs   []RunResult
}

func (m *memResults) SaveScore(_ string, score int) (int64, error) {
	m.scores = append(m.scores, score)
	return int64(len(m.scores)), nil
}

func (m *memResults) SaveRunResult(res RunResult) error {
	m.runs = append(m.runs, res)
	return nil
}

// scriptedPlayer returns fixed answers.
type scriptedPlayer struct {
	move   Move
	ok     bool
	revive bool
}

func (p scriptedPlayer) NextMove(*core.Session) (Move, bool) { return p.move, p.ok }
func (p scriptedPlayer) AcceptRevive(*core.Session) bool    { return p.revive }

func newTestGame(t *testing.T, modeID string, cfg config.BlocksConfig, opts ...Option) *Game {
	t.Helper()
	clock := newTestClock()
	opts = append([]Option{WithClock(clock.Now), WithSeed(42)}, opts...)
	g, err := New(modeID, cfg, opts...)
	require.NoError(t, err)
	return g
}

func TestNewUnknownMode(t *testing.T) {
	_, err := New("tetris", config.DefaultBlocksConfig())
	require.Error(t, err)
}

func TestNewInvalidConfig(t *testing.T) {
	cfg := config.DefaultBlocksConfig()
	cfg.Hand.Size = 0
	_, err := New("classic", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hand.size")
}

func TestNewStrategyFromMode(t *testing.T) {
	cfg := config.DefaultBlocksConfig()
	cfg.Selection.Strategy = "balanced"

	classic := newTestGame(t, "classic", cfg)
	assert.Equal(t, core.StrategyBalanced, classic.Session().Strategy())

	uniform := newTestGame(t, "uniform", cfg)
	assert.Equal(t, core.StrategyUniform, uniform.Session().Strategy())

	cfg.Selection.Strategy = "sideways"
	fallback := newTestGame(t, "classic", cfg)
	assert.Equal(t, core.DefaultStrategy, fallback.Session().Strategy())
}

func TestNewIgnoresUnknownWeights(t *testing.T) {
	cfg := config.DefaultBlocksConfig()
	cfg.Selection.Weights = map[string]float64{"blob": 3, "plus": 0}

	g := newTestGame(t, "classic", cfg)
	plus := g.Session().Catalog().Lookup(core.ShapePlus)
	assert.Zero(t, plus.Weight)
}

func TestNewSeedsHint(t *testing.T) {
	g := newTestGame(t, "adaptive", config.DefaultBlocksConfig())
	hint := g.Session().DifficultyHint()
	assert.True(t, hint.Valid)
	assert.InDelta(t, 0.0, hint.Value, 1e-9)
	assert.Equal(t, int64(42), g.Seed())
	assert.Equal(t, "adaptive", g.ModeID())
	assert.Equal(t, "Adaptive", g.Title())
}

func TestNewRecordsInitialRefill(t *testing.T) {
	g := newTestGame(t, "classic", config.DefaultBlocksConfig())
	assert.Equal(t, 1, g.DrawStats().Refills())
	assert.Equal(t, 3, g.DrawStats().Total())
}

func TestRunToGameOver(t *testing.T) {
	cfg := config.DefaultBlocksConfig()
	cfg.Snapshot.MaxRevives = 0

	snaps := &memSnapshots{}
	results := &memResults{}
	g := newTestGame(t, "classic", cfg, WithSnapshotStore(snaps), WithResultSaver(results))

	res, err := g.Run(context.Background(), NewRandomPlayer(7, false), 10000)
	require.NoError(t, err)

	assert.Equal(t, EndGameOver, res.EndReason)
	assert.Equal(t, core.StateTerminated, g.Session().State())
	assert.Equal(t, g.SessionID(), res.SessionID)
	assert.Equal(t, "classic", res.ModeID)
	assert.Equal(t, "rarity", res.Strategy)
	assert.Equal(t, g.Session().CurrentScore(), res.Score)
	assert.Positive(t, res.Stats.Moves)
	assert.Zero(t, res.Stats.Revives)

	require.Len(t, snaps.recs, 1)
	assert.Equal(t, snaps.recs[0].ID, res.LastSnapshotID)
	assert.Equal(t, res.SessionID, snaps.recs[0].SessionID)
	assert.Equal(t, res.Score, snaps.recs[0].Score)

	assert.Equal(t, []int{res.Score}, results.scores)
	require.Len(t, results.runs, 1)
	assert.Equal(t, res, results.runs[0])
}

func TestRunReviveAccepted(t *testing.T) {
	cfg := config.DefaultBlocksConfig()
	cfg.Snapshot.MaxRevives = 1

	snaps := &memSnapshots{}
	g := newTestGame(t, "classic", cfg, WithSnapshotStore(snaps))

	res, err := g.Run(context.Background(), NewRandomPlayer(3, true), 10000)
	require.NoError(t, err)

	assert.Equal(t, EndGameOver, res.EndReason)
	assert.Equal(t, 1, res.Stats.Revives)
	assert.Zero(t, g.Session().RevivesLeft())
	// One snapshot per game over.
	require.Len(t, snaps.recs, 2)
	assert.NotEqual(t, snaps.recs[0].ID, snaps.recs[1].ID)
	assert.Equal(t, snaps.recs[1].ID, res.LastSnapshotID)

	// The revive used up the first snapshot for every session.
	require.Contains(t, snaps.consumed, snaps.recs[0].ID)
	other, err := New("classic", cfg, WithClock(newTestClock().Now), WithSeed(8), WithSnapshotStore(snaps))
	require.NoError(t, err)
	err = other.Resume(decodeRecord(t, snaps.recs[0]))
	require.ErrorIs(t, err, core.ErrSnapshotConsumed)
	assert.Zero(t, other.Session().CurrentScore())
}

func TestRunReviveDeclined(t *testing.T) {
	cfg := config.DefaultBlocksConfig()
	cfg.Snapshot.MaxRevives = 1

	snaps := &memSnapshots{}
	g := newTestGame(t, "classic", cfg, WithSnapshotStore(snaps))

	res, err := g.Run(context.Background(), NewRandomPlayer(3, false), 10000)
	require.NoError(t, err)

	assert.Equal(t, EndGameOver, res.EndReason)
	assert.Zero(t, res.Stats.Revives)
	assert.Equal(t, 1, g.Session().RevivesLeft())
	require.Len(t, snaps.recs, 1)
	assert.Equal(t, snaps.recs[0].ID, res.LastSnapshotID)
	assert.Empty(t, snaps.consumed)
}

func TestRunMoveLimitAndAutosave(t *testing.T) {
	cfg := config.DefaultBlocksConfig()
	cfg.Snapshot.AutosaveEvery = 1

	snaps := &memSnapshots{}
	results := &memResults{}
	g := newTestGame(t, "classic", cfg, WithSnapshotStore(snaps), WithResultSaver(results))

	res, err := g.Run(context.Background(), GreedyPlayer{}, 3)
	require.NoError(t, err)

	assert.Equal(t, EndMoveLimit, res.EndReason)
	assert.Equal(t, 3, res.Stats.Moves)
	assert.Equal(t, core.StateActive, g.Session().State())
	require.Len(t, snaps.recs, 3)
	assert.Equal(t, snaps.recs[2].ID, res.LastSnapshotID)
	require.Len(t, results.runs, 1)

	snap, warnings, err := formats.DecodeSnapshot(snaps.recs[2].Payload, nil)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, g.Session().Board().Matrix(), snap.Board)
	assert.Equal(t, res.Score, snap.Score)
}

func TestRunSnapshotStoreFailure(t *testing.T) {
	cfg := config.DefaultBlocksConfig()
	cfg.Snapshot.AutosaveEvery = 1

	snaps := &memSnapshots{err: errors.New("disk full")}
	g := newTestGame(t, "classic", cfg, WithSnapshotStore(snaps))

	res, err := g.Run(context.Background(), GreedyPlayer{}, 2)
	require.NoError(t, err)
	assert.Empty(t, res.LastSnapshotID)
}

func TestRunAbandoned(t *testing.T) {
	results := &memResults{}
	g := newTestGame(t, "classic", config.DefaultBlocksConfig(), WithResultSaver(results))

	res, err := g.Run(context.Background(), scriptedPlayer{}, 0)
	require.NoError(t, err)
	assert.Equal(t, EndAbandoned, res.EndReason)
	assert.Zero(t, res.Stats.Moves)
	assert.Len(t, results.runs, 1)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := newTestGame(t, "classic", config.DefaultBlocksConfig())
	res, err := g.Run(ctx, GreedyPlayer{}, 0)
	require.NoError(t, err)
	assert.Equal(t, EndCancelled, res.EndReason)
}

func TestRunIllegalMove(t *testing.T) {
	results := &memResults{}
	g := newTestGame(t, "classic", config.DefaultBlocksConfig(), WithResultSaver(results))

	_, err := g.Run(context.Background(), scriptedPlayer{move: Move{Slot: 9}, ok: true}, 0)
	require.ErrorIs(t, err, core.ErrPieceNotInHand)
	assert.Empty(t, results.runs)
	assert.Empty(t, results.scores)
}

func TestResume(t *testing.T) {
	cfg := config.DefaultBlocksConfig()
	cfg.Snapshot.AutosaveEvery = 1

	clock := newTestClock()
	snaps := &memSnapshots{}
	src, err := New("classic", cfg, WithClock(clock.Now), WithSeed(5), WithSnapshotStore(snaps))
	require.NoError(t, err)
	_, err = src.Run(context.Background(), GreedyPlayer{}, 2)
	require.NoError(t, err)
	require.NotEmpty(t, snaps.recs)

	snap, _, err := formats.DecodeSnapshot(snaps.recs[len(snaps.recs)-1].Payload, nil)
	require.NoError(t, err)

	dst, err := New("classic", cfg, WithClock(clock.Now), WithSeed(6))
	require.NoError(t, err)
	require.NoError(t, dst.Resume(snap))
	assert.Equal(t, snap.Score, dst.Session().CurrentScore())
	assert.Equal(t, snap.Board, dst.Session().Board().Matrix())
	assert.Equal(t, 2, dst.DrawStats().Refills())

	err = dst.Resume(snap)
	require.ErrorIs(t, err, core.ErrSnapshotConsumed)

	// Once a store records the restore, no other session sharing it can
	// restore the snapshot again.
	first, err := New("classic", cfg, WithClock(clock.Now), WithSeed(8), WithSnapshotStore(snaps))
	require.NoError(t, err)
	require.NoError(t, first.Resume(snap))
	require.Contains(t, snaps.consumed, snap.ID)

	second, err := New("classic", cfg, WithClock(clock.Now), WithSeed(9), WithSnapshotStore(snaps))
	require.NoError(t, err)
	require.ErrorIs(t, second.Resume(snap), core.ErrSnapshotConsumed)
	assert.Zero(t, second.Session().CurrentScore())

	clock.now = clock.now.Add(cfg.Snapshot.Validity() + time.Second)
	late, err := New("classic", cfg, WithClock(clock.Now), WithSeed(7), WithSnapshotStore(snaps))
	require.NoError(t, err)
	older := decodeRecord(t, snaps.recs[0])
	require.ErrorIs(t, late.Resume(older), core.ErrExpiredSnapshot)
	assert.NotContains(t, snaps.consumed, older.ID, "an expired snapshot is not consumed")
}
