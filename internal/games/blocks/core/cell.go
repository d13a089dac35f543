// Package core implements the rules engine of the block placement puzzle:
// shapes, the board, reachability checks, piece selection, scoring and
// session snapshot/restore. It is UI-agnostic, synchronous and performs no I/O.
package core

import "fmt"

// Board dimensions are fixed for the lifetime of a board.
const (
	BoardSize  = 8
	BoardCells = BoardSize * BoardSize
)

// Cell is a board coordinate. Col increases to the right, Row increases downward.
type Cell struct {
	Col int
	Row int
}

// C is a convenience constructor for Cell.
func C(col, row int) Cell {
	return Cell{Col: col, Row: row}
}

// String returns a string representation of the cell.
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

// Add returns the cell offset by another cell.
func (c Cell) Add(other Cell) Cell {
	return Cell{Col: c.Col + other.Col, Row: c.Row + other.Row}
}

// InBounds returns true if the cell lies on the board.
func (c Cell) InBounds() bool {
	return c.Col >= 0 && c.Col < BoardSize && c.Row >= 0 && c.Row < BoardSize
}
