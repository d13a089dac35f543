package core

// CanPlaceAnywhere reports whether the shape has at least one legal origin.
// Only origins whose bounding box lies on the board are tried; shapes are
// never rotated.
func CanPlaceAnywhere(s *Shape, b *Board) bool {
	if s == nil || s.Size() == 0 || s.Size() > b.Empty() {
		return false
	}
	for row := 0; row+s.height <= BoardSize; row++ {
		for col := 0; col+s.width <= BoardSize; col++ {
			if b.CanPlace(Piece{Shape: s, Origin: C(col, row)}) {
				return true
			}
		}
	}
	return false
}

// Placements returns every legal origin for the shape in row-major order.
func Placements(s *Shape, b *Board) []Cell {
	if s == nil || s.Size() == 0 || s.Size() > b.Empty() {
		return nil
	}
	var out []Cell
	for row := 0; row+s.height <= BoardSize; row++ {
		for col := 0; col+s.width <= BoardSize; col++ {
			origin := C(col, row)
			if b.CanPlace(Piece{Shape: s, Origin: origin}) {
				out = append(out, origin)
			}
		}
	}
	return out
}

// AnyPieceFits reports whether at least one of the shapes can be placed.
// It is the terminal-state test: false means game over.
func AnyPieceFits(shapes []*Shape, b *Board) bool {
	for _, s := range shapes {
		if CanPlaceAnywhere(s, b) {
			return true
		}
	}
	return false
}
