package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks/core"
)

func TestRenderBoardPlain(t *testing.T) {
	b := core.NewBoard()
	require.NoError(t, b.SetFillDirect(core.C(0, 0), core.FillRed))
	require.NoError(t, b.SetFillDirect(core.C(7, 7), core.FillGreen))

	lines := strings.Split(RenderBoard(b, false), "\n")
	require.Len(t, lines, core.BoardSize)
	assert.Equal(t, "R . . . . . . .", lines[0])
	assert.Equal(t, ". . . . . . . .", lines[3])
	assert.Equal(t, ". . . . . . . G", lines[7])
}

func TestRenderBoardStyled(t *testing.T) {
	b := core.NewBoard()
	require.NoError(t, b.SetFillDirect(core.C(2, 2), core.FillCyan))

	out := RenderBoard(b, true)
	assert.Contains(t, out, "██")
	assert.Contains(t, out, "·")
}

func TestRenderShapePlain(t *testing.T) {
	plus := core.DefaultCatalog().Lookup(core.ShapePlus)
	c := string(plus.Fill.Char())

	want := strings.Join([]string{
		". " + c,
		c + " " + c + " " + c,
		". " + c,
	}, "\n")
	assert.Equal(t, want, RenderShape(plus, false))
}

func TestRenderHand(t *testing.T) {
	cat := core.DefaultCatalog()
	slots := []core.Slot{
		{Shape: cat.Lookup(core.ShapeDot)},
		{Shape: cat.Lookup(core.ShapeDominoH), Used: true},
	}

	plain := RenderHand(slots, false)
	assert.Contains(t, plain, "0 dot")
	assert.Contains(t, plain, "1 domino_h (used)")

	styled := RenderHand(slots, true)
	assert.Contains(t, styled, "0 dot")
	assert.Contains(t, styled, "(used)")

	assert.Empty(t, RenderHand(nil, true))
}

func TestPanel(t *testing.T) {
	out := Panel("Score", "120")
	assert.Contains(t, out, "Score")
	assert.Contains(t, out, "120")
}
