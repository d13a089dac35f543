package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	cat := DefaultCatalog()

	assert.Equal(t, 26, cat.Len())
	assert.Len(t, cat.Categories(), 9)
	largest := 0
	for i, s := range cat.Shapes() {
		largest = max(largest, s.Size())
		assert.Equal(t, ShapeID(i), s.ID, "shapes are indexed by id")
		assert.Greater(t, s.Weight, 0.0, s.Name)
		assert.NotEqual(t, FillNone, s.Fill, s.Name)
	}
	assert.Equal(t, 9, largest)
}

func TestCatalogCategorySizes(t *testing.T) {
	cat := DefaultCatalog()
	tests := []struct {
		cat   Category
		count int
		size  int
	}{
		{CategoryDot, 1, 1},
		{CategoryDomino, 2, 2},
		{CategorySquare, 2, 0},
		{CategoryCorner, 4, 3},
		{CategoryBigCorner, 4, 5},
		{CategoryTee, 4, 4},
		{CategorySkew, 2, 4},
		{CategoryPlus, 1, 5},
		{CategoryLine, 6, 0},
	}

	for _, tt := range tests {
		t.Run(tt.cat.String(), func(t *testing.T) {
			shapes := cat.InCategory(tt.cat)
			require.Len(t, shapes, tt.count)
			if tt.size == 0 {
				return
			}
			for _, s := range shapes {
				assert.Equal(t, tt.size, s.Size(), s.Name)
			}
		})
	}
}

func TestShapeIDNames(t *testing.T) {
	for id := ShapeID(0); id < ShapeCount; id++ {
		got, ok := ParseShapeID(id.String())
		require.True(t, ok, id.String())
		assert.Equal(t, id, got)

		assert.Equal(t, id, DefaultCatalog().Lookup(got).ID)
	}

	got, ok := ParseShapeID("hexomino")
	assert.False(t, ok)
	assert.Equal(t, DefaultShape, got)
}

func TestCatalogLookupFallback(t *testing.T) {
	cat := DefaultCatalog()

	_, ok := cat.ByID(ShapeCount)
	assert.False(t, ok)
	assert.Equal(t, ShapeDot, cat.Lookup(ShapeCount).ID)
	assert.Equal(t, ShapePlus, cat.Lookup(ShapePlus).ID)
}

func TestCatalogWithWeights(t *testing.T) {
	base := DefaultCatalog()
	plusWeight := base.Lookup(ShapePlus).Weight

	cat, unknown, err := base.WithWeights(map[string]float64{
		"plus":    10,
		"dot":     0,
		"pentomo": 3,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"pentomo"}, unknown)
	assert.Equal(t, 10.0, cat.Lookup(ShapePlus).Weight)
	assert.Equal(t, 0.0, cat.Lookup(ShapeDot).Weight)

	// The source catalog is not modified.
	assert.Equal(t, plusWeight, base.Lookup(ShapePlus).Weight)

	_, _, err = base.WithWeights(map[string]float64{"dot": -1})
	assert.True(t, errors.Is(err, ErrMalformedShape))
}

func TestNewShape(t *testing.T) {
	t.Run("normalizes offsets", func(t *testing.T) {
		s, err := NewShape(ShapeDominoH, "pair", CategoryDomino, 1, FillRed, []Cell{C(3, 2), C(4, 2)})
		require.NoError(t, err)
		assert.Equal(t, []Cell{C(0, 0), C(1, 0)}, s.Cells())
		assert.Equal(t, 2, s.Width())
		assert.Equal(t, 1, s.Height())
	})

	t.Run("empty", func(t *testing.T) {
		_, err := NewShape(ShapeDot, "void", CategoryDot, 1, FillRed, nil)
		assert.ErrorIs(t, err, ErrEmptyShape)
	})

	t.Run("duplicate offsets", func(t *testing.T) {
		_, err := NewShape(ShapeDot, "twice", CategoryDot, 1, FillRed, []Cell{C(0, 0), C(0, 0)})
		assert.ErrorIs(t, err, ErrMalformedShape)
	})

	t.Run("wider than board", func(t *testing.T) {
		_, err := NewShape(ShapeDot, "long", CategoryLine, 1, FillRed, []Cell{C(0, 0), C(8, 0)})
		assert.ErrorIs(t, err, ErrMalformedShape)
	})

	t.Run("empty fill gets default", func(t *testing.T) {
		s, err := NewShape(ShapeDot, "plain", CategoryDot, 1, FillNone, []Cell{C(0, 0)})
		require.NoError(t, err)
		assert.Equal(t, DefaultFill, s.Fill)
	})
}

func TestShapeCellsIsCopy(t *testing.T) {
	s := DefaultCatalog().Lookup(ShapeLine3H)
	cells := s.Cells()
	cells[0] = C(5, 5)
	assert.Equal(t, C(0, 0), s.Cells()[0])
}

func TestShapeString(t *testing.T) {
	assert.Equal(t, ".#.\n###\n.#.", DefaultCatalog().Lookup(ShapePlus).String())
	assert.Equal(t, "##\n.#", DefaultCatalog().Lookup(ShapeCornerNE).String())
}
