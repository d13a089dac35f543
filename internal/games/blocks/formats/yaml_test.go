package formats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks/core"
)

func sampleSnapshot() core.Snapshot {
	snap := core.Snapshot{
		ID:        "6f1c2a52-90c4-4c0b-9d3e-2d7d8a5f0c11",
		Score:     1200,
		Pieces:    []core.ShapeID{core.ShapeCornerNE, core.ShapeLine3H, core.ShapeDot},
		Strategy:  core.StrategyRescue,
		CreatedAt: time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC),
	}
	snap.Board[0][0] = core.FillRed
	snap.Board[0][7] = core.FillPurple
	snap.Board[4][3] = core.FillCyan
	snap.Board[7][7] = core.FillGreen
	return snap
}

func TestEncodeDecodeSnapshot(t *testing.T) {
	want := sampleSnapshot()

	data, err := EncodeSnapshot(want)
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, "strategy: rescue")
	assert.Contains(t, text, "pieces: [corner_ne, line3_h, dot]")
	assert.Contains(t, text, "- [red, null, null, null, null, null, null, purple]")

	got, warnings, err := DecodeSnapshot(data, nil)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Empty(t, cmp.Diff(want, got))
}

func TestDecodeSubstitutesUnknownTokens(t *testing.T) {
	doc := `
version: 1
id: abc
score: -40
strategy: chaos
pieces: [plus, heptomino]
created_at: 2026-10-18T10:00:00Z
board:
  - [red, magenta, null, none]
`
	var buf bytes.Buffer
	logger := log.New(&buf)

	snap, warnings, err := DecodeSnapshot([]byte(doc), logger)
	require.NoError(t, err)

	assert.Equal(t, "abc", snap.ID)
	assert.Equal(t, 0, snap.Score)
	assert.Equal(t, core.StrategyRarity, snap.Strategy)
	assert.Equal(t, []core.ShapeID{core.ShapePlus, core.ShapeDot}, snap.Pieces)
	assert.Equal(t, core.FillRed, snap.Board[0][0])
	assert.Equal(t, core.FillBlue, snap.Board[0][1])
	assert.Equal(t, core.FillNone, snap.Board[0][2])
	assert.Equal(t, core.FillNone, snap.Board[0][3])
	for row := 1; row < core.BoardSize; row++ {
		assert.Equal(t, [core.BoardSize]core.Fill{}, snap.Board[row])
	}

	fields := make([]string, len(warnings))
	for i, w := range warnings {
		fields[i] = w.Field
	}
	assert.Equal(t, []string{"score", "strategy", "pieces[1]", "board", "board[0]", "board[0][1]"}, fields)
	assert.Equal(t, TokenWarning{Field: "strategy", Value: "chaos", Default: "rarity"}, warnings[1])

	assert.Equal(t, len(warnings), strings.Count(buf.String(), "unknown snapshot token"))
}

func TestDecodeIgnoresExtraCells(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("version: 1\nid: x\ncreated_at: 2026-10-18T10:00:00Z\nboard:\n")
	for row := 0; row < 9; row++ {
		sb.WriteString("  - [yellow, null, null, null, null, null, null, null, orange]\n")
	}

	snap, warnings, err := DecodeSnapshot([]byte(sb.String()), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, warnings)
	for row := 0; row < core.BoardSize; row++ {
		assert.Equal(t, core.FillYellow, snap.Board[row][0])
		assert.Equal(t, core.FillNone, snap.Board[row][7])
	}
}

func TestDecodeMissingID(t *testing.T) {
	snap, warnings, err := DecodeSnapshot([]byte("version: 1\ncreated_at: 2026-10-18T10:00:00Z\n"), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, snap.ID)
	require.NotEmpty(t, warnings)
	assert.Equal(t, "id", warnings[0].Field)
}

func TestDecodeErrors(t *testing.T) {
	_, _, err := DecodeSnapshot([]byte("version: [1"), nil)
	assert.Error(t, err)

	_, _, err = DecodeSnapshot([]byte("version: 9\nid: x\n"), nil)
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}
