package core

// Award returns the points for clearing n lines in one placement:
// 1→100, 2→300, 3→500, 4→800, then 1000 plus 200 for each line beyond five.
func Award(lines int) int {
	switch {
	case lines <= 0:
		return 0
	case lines == 1:
		return 100
	case lines == 2:
		return 300
	case lines == 3:
		return 500
	case lines == 4:
		return 800
	default:
		return 1000 + (lines-5)*200
	}
}

// Score is a non-negative running total.
type Score struct {
	total int
}

// Total returns the current score.
func (s *Score) Total() int {
	return s.total
}

// Accumulate adds points. Non-positive values are ignored.
func (s *Score) Accumulate(points int) {
	if points <= 0 {
		return
	}
	s.total += points
}

// Reset sets the total back to zero.
func (s *Score) Reset() {
	s.total = 0
}

func (s *Score) set(v int) {
	s.total = max(v, 0)
}
