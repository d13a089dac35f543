package core

import (
	"fmt"
	"strings"
)

// Category groups shapes of similar geometry.
type Category uint8

const (
	CategoryDot Category = iota
	CategoryDomino
	CategoryLine
	CategorySquare
	CategoryCorner
	CategoryBigCorner
	CategoryTee
	CategorySkew
	CategoryPlus
	categoryCount
)

var categoryNames = [categoryCount]string{
	CategoryDot:       "dot",
	CategoryDomino:    "domino",
	CategoryLine:      "line",
	CategorySquare:    "square",
	CategoryCorner:    "corner",
	CategoryBigCorner: "big_corner",
	CategoryTee:       "tee",
	CategorySkew:      "skew",
	CategoryPlus:      "plus",
}

// String returns the stable name of the category.
func (c Category) String() string {
	if c >= categoryCount {
		return "unknown"
	}
	return categoryNames[c]
}

// AllCategories returns the categories in declaration order.
func AllCategories() []Category {
	cats := make([]Category, categoryCount)
	for i := range cats {
		cats[i] = Category(i)
	}
	return cats
}

// ShapeID is the stable identifier of a catalogued shape.
// Values are part of the persisted layout through their names; never reorder.
type ShapeID uint8

const (
	ShapeDot ShapeID = iota
	ShapeDominoH
	ShapeDominoV
	ShapeLine3H
	ShapeLine3V
	ShapeLine4H
	ShapeLine4V
	ShapeLine5H
	ShapeLine5V
	ShapeSquare2
	ShapeSquare3
	ShapeCornerNE
	ShapeCornerNW
	ShapeCornerSE
	ShapeCornerSW
	ShapeBigCornerNE
	ShapeBigCornerNW
	ShapeBigCornerSE
	ShapeBigCornerSW
	ShapeTeeUp
	ShapeTeeDown
	ShapeTeeLeft
	ShapeTeeRight
	ShapeSkewS
	ShapeSkewZ
	ShapePlus
	ShapeCount // Sentinel value for iteration
)

// DefaultShape is substituted for unrecognized shape names.
const DefaultShape = ShapeDot

var shapeNames = [ShapeCount]string{
	ShapeDot:         "dot",
	ShapeDominoH:     "domino_h",
	ShapeDominoV:     "domino_v",
	ShapeLine3H:      "line3_h",
	ShapeLine3V:      "line3_v",
	ShapeLine4H:      "line4_h",
	ShapeLine4V:      "line4_v",
	ShapeLine5H:      "line5_h",
	ShapeLine5V:      "line5_v",
	ShapeSquare2:     "square2",
	ShapeSquare3:     "square3",
	ShapeCornerNE:    "corner_ne",
	ShapeCornerNW:    "corner_nw",
	ShapeCornerSE:    "corner_se",
	ShapeCornerSW:    "corner_sw",
	ShapeBigCornerNE: "big_corner_ne",
	ShapeBigCornerNW: "big_corner_nw",
	ShapeBigCornerSE: "big_corner_se",
	ShapeBigCornerSW: "big_corner_sw",
	ShapeTeeUp:       "tee_up",
	ShapeTeeDown:     "tee_down",
	ShapeTeeLeft:     "tee_left",
	ShapeTeeRight:    "tee_right",
	ShapeSkewS:       "skew_s",
	ShapeSkewZ:       "skew_z",
	ShapePlus:        "plus",
}

// String returns the stable serialized name of the shape.
func (id ShapeID) String() string {
	if id >= ShapeCount {
		return "unknown"
	}
	return shapeNames[id]
}

// ParseShapeID converts a serialized name to a ShapeID.
// Returns DefaultShape and false if the name is not recognized.
func ParseShapeID(s string) (ShapeID, bool) {
	name := strings.ToLower(strings.TrimSpace(s))
	for id, n := range shapeNames {
		if n == name {
			return ShapeID(id), true
		}
	}
	return DefaultShape, false
}

// Shape is an immutable piece geometry with its category and rarity weight.
// Offsets are normalized so the smallest column and row are zero.
type Shape struct {
	ID       ShapeID
	Name     string
	Category Category
	Weight   float64 // Higher is more common; zero disables the shape
	Fill     Fill    // Display identity recorded in placed cells

	cells  []Cell
	width  int
	height int
}

// NewShape validates the offsets and builds a shape.
// Returns ErrEmptyShape for zero cells and ErrMalformedShape for duplicate
// offsets, negative weights or a footprint larger than the board.
func NewShape(id ShapeID, name string, cat Category, weight float64, fill Fill, offsets []Cell) (*Shape, error) {
	if len(offsets) == 0 {
		return nil, fmt.Errorf("shape %q: %w", name, ErrEmptyShape)
	}
	if len(offsets) > BoardCells {
		return nil, fmt.Errorf("shape %q: %d cells: %w", name, len(offsets), ErrMalformedShape)
	}
	if weight < 0 {
		return nil, fmt.Errorf("shape %q: negative weight: %w", name, ErrMalformedShape)
	}

	minCol, minRow := offsets[0].Col, offsets[0].Row
	maxCol, maxRow := minCol, minRow
	for _, c := range offsets[1:] {
		minCol = min(minCol, c.Col)
		minRow = min(minRow, c.Row)
		maxCol = max(maxCol, c.Col)
		maxRow = max(maxRow, c.Row)
	}

	width := maxCol - minCol + 1
	height := maxRow - minRow + 1
	if width > BoardSize || height > BoardSize {
		return nil, fmt.Errorf("shape %q: footprint %dx%d: %w", name, width, height, ErrMalformedShape)
	}

	seen := make(map[Cell]bool, len(offsets))
	cells := make([]Cell, 0, len(offsets))
	for _, c := range offsets {
		n := C(c.Col-minCol, c.Row-minRow)
		if seen[n] {
			return nil, fmt.Errorf("shape %q: duplicate offset %s: %w", name, c, ErrMalformedShape)
		}
		seen[n] = true
		cells = append(cells, n)
	}

	if !fill.Valid() || fill == FillNone {
		fill = DefaultFill
	}

	return &Shape{
		ID:       id,
		Name:     name,
		Category: cat,
		Weight:   weight,
		Fill:     fill,
		cells:    cells,
		width:    width,
		height:   height,
	}, nil
}

// Cells returns a copy of the normalized offsets.
func (s *Shape) Cells() []Cell {
	out := make([]Cell, len(s.cells))
	copy(out, s.cells)
	return out
}

// Size returns the number of cells.
func (s *Shape) Size() int {
	return len(s.cells)
}

// Width returns the bounding box width.
func (s *Shape) Width() int {
	return s.width
}

// Height returns the bounding box height.
func (s *Shape) Height() int {
	return s.height
}

// withWeight returns a copy of the shape with a different weight.
func (s *Shape) withWeight(w float64) *Shape {
	cp := *s
	cp.Weight = w
	return &cp
}

// String returns a compact multi-line drawing of the shape.
func (s *Shape) String() string {
	grid := make([][]rune, s.height)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(".", s.width))
	}
	for _, c := range s.cells {
		grid[c.Row][c.Col] = '#'
	}
	lines := make([]string, len(grid))
	for i, row := range grid {
		lines[i] = string(row)
	}
	return strings.Join(lines, "\n")
}

// Piece is a shape anchored at an origin on the board.
type Piece struct {
	Shape  *Shape
	Origin Cell
}

// Cells returns the absolute cells the piece would occupy.
func (p Piece) Cells() []Cell {
	if p.Shape == nil {
		return nil
	}
	out := make([]Cell, len(p.Shape.cells))
	for i, c := range p.Shape.cells {
		out[i] = p.Origin.Add(c)
	}
	return out
}
