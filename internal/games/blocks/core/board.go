package core

import "strings"

// Board is the fixed 8x8 grid. Cells are stored row-major.
// rowFill and colFill always equal the number of non-empty cells in each
// row and column; filled equals their sum.
type Board struct {
	cells   [BoardSize][BoardSize]Fill
	rowFill [BoardSize]int
	colFill [BoardSize]int
	filled  int
}

// PlacementOutcome reports what a successful placement changed.
type PlacementOutcome struct {
	Piece        Piece
	Rows         []int // Indices of cleared rows
	Columns      []int // Indices of cleared columns
	LinesCleared int
	CellsCleared int
	CellsPlaced  int
}

// NewBoard creates an empty board.
func NewBoard() *Board {
	return &Board{}
}

// CanPlace reports whether every cell of the piece is on the board and empty.
func (b *Board) CanPlace(p Piece) bool {
	if p.Shape == nil || p.Shape.Size() == 0 {
		return false
	}
	for _, c := range p.Shape.cells {
		abs := p.Origin.Add(c)
		if !abs.InBounds() || b.cells[abs.Row][abs.Col] != FillNone {
			return false
		}
	}
	return true
}

// Check is CanPlace with the reason of the first offending cell.
func (b *Board) Check(p Piece) error {
	if p.Shape == nil || p.Shape.Size() == 0 {
		return ErrEmptyShape
	}
	for _, c := range p.Shape.cells {
		abs := p.Origin.Add(c)
		if !abs.InBounds() {
			return &PlacementError{Reason: RejectOutOfBounds, Cell: abs}
		}
		if b.cells[abs.Row][abs.Col] != FillNone {
			return &PlacementError{Reason: RejectOverlap, Cell: abs}
		}
	}
	return nil
}

// Place fills the piece's cells and clears every row and column that the
// placement completed. Rows and columns are evaluated against the same
// post-placement board so a cell at an intersection counts for both lines.
// On error the board is unchanged.
func (b *Board) Place(p Piece, fill Fill) (PlacementOutcome, error) {
	if err := b.Check(p); err != nil {
		return PlacementOutcome{}, err
	}
	if fill == FillNone || !fill.Valid() {
		fill = p.Shape.Fill
	}

	for _, c := range p.Shape.cells {
		abs := p.Origin.Add(c)
		b.set(abs.Col, abs.Row, fill)
	}

	out := PlacementOutcome{
		Piece:       p,
		CellsPlaced: p.Shape.Size(),
	}
	for i := 0; i < BoardSize; i++ {
		if b.rowFill[i] == BoardSize {
			out.Rows = append(out.Rows, i)
		}
		if b.colFill[i] == BoardSize {
			out.Columns = append(out.Columns, i)
		}
	}

	for _, row := range out.Rows {
		for col := 0; col < BoardSize; col++ {
			if b.cells[row][col] != FillNone {
				b.set(col, row, FillNone)
				out.CellsCleared++
			}
		}
	}
	for _, col := range out.Columns {
		for row := 0; row < BoardSize; row++ {
			if b.cells[row][col] != FillNone {
				b.set(col, row, FillNone)
				out.CellsCleared++
			}
		}
	}

	out.LinesCleared = len(out.Rows) + len(out.Columns)
	return out, nil
}

// set writes one cell and keeps the counters in sync.
func (b *Board) set(col, row int, f Fill) {
	old := b.cells[row][col]
	if old == f {
		return
	}
	switch {
	case old == FillNone:
		b.rowFill[row]++
		b.colFill[col]++
		b.filled++
	case f == FillNone:
		b.rowFill[row]--
		b.colFill[col]--
		b.filled--
	}
	b.cells[row][col] = f
}

// Capacity returns the filled fraction of the board in [0,1].
func (b *Board) Capacity() float64 {
	return float64(b.filled) / float64(BoardCells)
}

// Filled returns the number of occupied cells.
func (b *Board) Filled() int {
	return b.filled
}

// Empty returns the number of free cells.
func (b *Board) Empty() int {
	return BoardCells - b.filled
}

// Reset clears the board.
func (b *Board) Reset() {
	*b = Board{}
}

// SetFillDirect writes a cell without placement validation.
// Used when rebuilding a board from a snapshot.
func (b *Board) SetFillDirect(c Cell, f Fill) error {
	if !c.InBounds() {
		return &PlacementError{Reason: RejectOutOfBounds, Cell: c}
	}
	if !f.Valid() {
		f = DefaultFill
	}
	b.set(c.Col, c.Row, f)
	return nil
}

// ReadFill returns the fill at c. The second value is false for
// out-of-bounds cells.
func (b *Board) ReadFill(c Cell) (Fill, bool) {
	if !c.InBounds() {
		return FillNone, false
	}
	return b.cells[c.Row][c.Col], true
}

// IsEmpty reports whether c is on the board and unoccupied.
func (b *Board) IsEmpty(c Cell) bool {
	f, ok := b.ReadFill(c)
	return ok && f == FillNone
}

// Matrix returns a copy of the cells indexed [row][col].
func (b *Board) Matrix() [BoardSize][BoardSize]Fill {
	return b.cells
}

// LoadMatrix replaces the board contents with m.
func (b *Board) LoadMatrix(m [BoardSize][BoardSize]Fill) {
	b.Reset()
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			_ = b.SetFillDirect(C(col, row), m[row][col])
		}
	}
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	cp := *b
	return &cp
}

// String returns an ASCII dump, one line per row.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow(BoardCells + BoardSize)
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			sb.WriteRune(b.cells[row][col].Char())
		}
		if row < BoardSize-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
