package blocks

import (
	"math/rand"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks/core"
)

// GreedyPlayer picks the placement with the best immediate evaluation.
type GreedyPlayer struct {
	Revive bool // Accept revives when offered
}

// NextMove implements Player.
func (p GreedyPlayer) NextMove(s *core.Session) (Move, bool) {
	board := s.Board()
	best := Move{}
	bestScore := 0
	found := false

	for slot, sl := range s.Slots() {
		if sl.Used {
			continue
		}
		for _, origin := range core.Placements(sl.Shape, board) {
			score := evaluate(board, core.Piece{Shape: sl.Shape, Origin: origin})
			if !found || score > bestScore {
				best = Move{Slot: slot, Origin: origin}
				bestScore = score
				found = true
			}
		}
	}
	return best, found
}

// AcceptRevive implements Player.
func (p GreedyPlayer) AcceptRevive(*core.Session) bool {
	return p.Revive
}

// evaluate scores a legal placement: cleared lines dominate, then contact
// with walls and filled cells, minus empty cells left without neighbors.
func evaluate(board *core.Board, piece core.Piece) int {
	b := board.Clone()
	out, err := b.Place(piece, core.FillNone)
	if err != nil {
		return -1 << 30
	}

	score := out.LinesCleared * 1000
	for _, c := range piece.Cells() {
		for _, d := range neighbors {
			n := c.Add(d)
			if !n.InBounds() || !board.IsEmpty(n) {
				score += 10
			}
		}
	}
	return score - 40*isolatedCells(b)
}

var neighbors = []core.Cell{core.C(1, 0), core.C(-1, 0), core.C(0, 1), core.C(0, -1)}

// isolatedCells counts empty cells whose four neighbors are all blocked.
func isolatedCells(b *core.Board) int {
	n := 0
	for row := 0; row < core.BoardSize; row++ {
		for col := 0; col < core.BoardSize; col++ {
			c := core.C(col, row)
			if !b.IsEmpty(c) {
				continue
			}
			open := false
			for _, d := range neighbors {
				if b.IsEmpty(c.Add(d)) {
					open = true
					break
				}
			}
			if !open {
				n++
			}
		}
	}
	return n
}

// RandomPlayer picks a uniformly random legal placement.
type RandomPlayer struct {
	rng    *rand.Rand
	revive bool
}

// NewRandomPlayer creates a seeded random player.
func NewRandomPlayer(seed int64, revive bool) *RandomPlayer {
	return &RandomPlayer{rng: rand.New(rand.NewSource(seed)), revive: revive}
}

// NextMove implements Player.
func (p *RandomPlayer) NextMove(s *core.Session) (Move, bool) {
	board := s.Board()
	var moves []Move
	for slot, sl := range s.Slots() {
		if sl.Used {
			continue
		}
		for _, origin := range core.Placements(sl.Shape, board) {
			moves = append(moves, Move{Slot: slot, Origin: origin})
		}
	}
	if len(moves) == 0 {
		return Move{}, false
	}
	return moves[p.rng.Intn(len(moves))], true
}

// AcceptRevive implements Player.
func (p *RandomPlayer) AcceptRevive(*core.Session) bool {
	return p.revive
}

// NewPlayer returns the autoplayer with the given name: "greedy" or "random".
func NewPlayer(name string, seed int64, revive bool) (Player, bool) {
	switch name {
	case "greedy":
		return GreedyPlayer{Revive: revive}, true
	case "random":
		return NewRandomPlayer(seed, revive), true
	default:
		return nil, false
	}
}
