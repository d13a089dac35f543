package core

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// Strategy selects how the next pieces are drawn.
type Strategy uint8

const (
	StrategyUniform Strategy = iota
	StrategyRarity
	StrategyBalanced
	StrategyAdaptive
	StrategyRescue
	strategyCount
)

// DefaultStrategy is used when no strategy is configured or a name is unknown.
const DefaultStrategy = StrategyRarity

var strategyNames = [strategyCount]string{
	StrategyUniform:  "uniform",
	StrategyRarity:   "rarity",
	StrategyBalanced: "balanced",
	StrategyAdaptive: "adaptive",
	StrategyRescue:   "rescue",
}

func (s Strategy) String() string {
	if s >= strategyCount {
		return "unknown"
	}
	return strategyNames[s]
}

// ParseStrategy converts a name to a Strategy.
// Returns DefaultStrategy and false if the name is not recognized.
func ParseStrategy(s string) (Strategy, bool) {
	name := strings.ToLower(strings.TrimSpace(s))
	for st, n := range strategyNames {
		if n == name {
			return Strategy(st), true
		}
	}
	return DefaultStrategy, false
}

// AllStrategies returns every strategy in declaration order.
func AllStrategies() []Strategy {
	out := make([]Strategy, strategyCount)
	for i := range out {
		out[i] = Strategy(i)
	}
	return out
}

// SelectorParams tunes the strategies.
type SelectorParams struct {
	RescueThreshold   float64 // Capacity above which rescue engages
	RescueMaxCells    int     // Largest shape rescue may offer
	RescueRequireFit  bool    // Rescue only offers shapes that fit somewhere
	AdaptiveStrength  float64 // How strongly the hint skews toward small or large shapes
	BalanceCategories bool    // No category repeats within one balanced refill
}

// DefaultSelectorParams returns the standard tuning.
func DefaultSelectorParams() SelectorParams {
	return SelectorParams{
		RescueThreshold:   0.70,
		RescueMaxCells:    3,
		RescueRequireFit:  true,
		AdaptiveStrength:  0.75,
		BalanceCategories: true,
	}
}

const maxAdaptiveStrength = 0.95

func (p SelectorParams) normalized() SelectorParams {
	p.RescueThreshold = clamp(p.RescueThreshold, 0, 1)
	if p.RescueMaxCells < 1 {
		p.RescueMaxCells = 1
	}
	p.AdaptiveStrength = clamp(p.AdaptiveStrength, 0, maxAdaptiveStrength)
	return p
}

// Hint is the externally supplied difficulty signal.
// Value 0 asks for the easiest pieces and 1 for the hardest.
type Hint struct {
	Value float64
	Valid bool
}

// NoHint is the absent hint.
var NoHint = Hint{}

// HintOf wraps a hint value.
func HintOf(v float64) Hint {
	return Hint{Value: v, Valid: true}
}

func (h Hint) usable() bool {
	return h.Valid && !math.IsNaN(h.Value)
}

// Selection is the result of one refill.
type Selection struct {
	Shapes    []*Shape
	Requested Strategy
	Effective Strategy
	Fallback  bool   // Effective differs from Requested because of misconfiguration
	Reason    string // Why a fallback happened
	Engaged   bool   // Rescue only: capacity was above the threshold
}

// IDs returns the shape ids of the selection.
func (s Selection) IDs() []ShapeID {
	ids := make([]ShapeID, len(s.Shapes))
	for i, sh := range s.Shapes {
		ids[i] = sh.ID
	}
	return ids
}

// Selector draws shapes from a catalog. It is not safe for concurrent use.
type Selector struct {
	catalog *Catalog
	params  SelectorParams
	rng     *rand.Rand
	minSize int
	maxSize int
}

// NewSelector creates a selector seeded for reproducible draws.
func NewSelector(cat *Catalog, params SelectorParams, seed int64) *Selector {
	if cat == nil {
		cat = DefaultCatalog()
	}
	s := &Selector{
		catalog: cat,
		params:  params.normalized(),
		rng:     rand.New(rand.NewSource(seed)),
		minSize: BoardCells,
	}
	for _, sh := range cat.shapes {
		s.minSize = min(s.minSize, sh.Size())
		s.maxSize = max(s.maxSize, sh.Size())
	}
	return s
}

// Catalog returns the catalog the selector draws from.
func (s *Selector) Catalog() *Catalog {
	return s.catalog
}

// Params returns the effective parameters.
func (s *Selector) Params() SelectorParams {
	return s.params
}

// Refill draws exactly count shapes under the strategy.
// board is only read by the rescue strategy; nil means an empty board.
func (s *Selector) Refill(count int, strategy Strategy, board *Board, hint Hint) (Selection, error) {
	if count <= 0 {
		return Selection{}, fmt.Errorf("refill %d: %w", count, ErrInvalidCount)
	}
	if board == nil {
		board = NewBoard()
	}

	sel := Selection{Requested: strategy}
	switch strategy {
	case StrategyUniform:
		s.drawUniform(count, &sel)
	case StrategyBalanced:
		s.drawBalanced(count, &sel)
	case StrategyAdaptive:
		s.drawAdaptive(count, hint, &sel)
	case StrategyRescue:
		s.drawRescue(count, board, &sel)
	case StrategyRarity:
		s.drawRarity(count, &sel)
	default:
		s.drawRarity(count, &sel)
		sel.Fallback = true
		sel.Reason = fmt.Sprintf("unknown strategy %d", strategy)
	}
	return sel, nil
}

// drawUniform draws evenly among shapes with a positive weight. When every
// weight is zero it draws from the whole catalog and reports a fallback.
func (s *Selector) drawUniform(count int, sel *Selection) {
	var pool []*Shape
	for _, sh := range s.catalog.shapes {
		if sh.Weight > 0 {
			pool = append(pool, sh)
		}
	}
	if len(pool) == 0 {
		pool = s.catalog.shapes
		sel.Fallback = true
		sel.Reason = "all shape weights are zero"
	}
	sel.Effective = StrategyUniform
	sel.Shapes = make([]*Shape, count)
	for i := range sel.Shapes {
		sel.Shapes[i] = pool[s.rng.Intn(len(pool))]
	}
}

// drawRarity draws by weight and degrades to uniform when every weight is zero.
func (s *Selector) drawRarity(count int, sel *Selection) {
	weights := make([]float64, len(s.catalog.shapes))
	for i, sh := range s.catalog.shapes {
		weights[i] = sh.Weight
	}
	if sum(weights) <= 0 {
		s.drawUniform(count, sel)
		return
	}
	sel.Effective = StrategyRarity
	sel.Shapes = make([]*Shape, count)
	for i := range sel.Shapes {
		sel.Shapes[i] = s.catalog.shapes[s.pick(weights)]
	}
}

func (s *Selector) drawBalanced(count int, sel *Selection) {
	cats := s.catalog.Categories()
	catWeights := make([]float64, len(cats))
	for i, c := range cats {
		for _, sh := range s.catalog.InCategory(c) {
			catWeights[i] += sh.Weight
		}
	}
	if sum(catWeights) <= 0 {
		s.drawRarity(count, sel)
		return
	}

	sel.Effective = StrategyBalanced
	sel.Shapes = make([]*Shape, 0, count)
	pool := make([]float64, len(catWeights))
	copy(pool, catWeights)
	for len(sel.Shapes) < count {
		if sum(pool) <= 0 {
			copy(pool, catWeights)
		}
		ci := s.pick(pool)
		if s.params.BalanceCategories {
			pool[ci] = 0
		}

		members := s.catalog.InCategory(cats[ci])
		weights := make([]float64, len(members))
		for i, sh := range members {
			weights[i] = sh.Weight
		}
		sel.Shapes = append(sel.Shapes, members[s.pick(weights)])
	}
}

func (s *Selector) drawAdaptive(count int, hint Hint, sel *Selection) {
	if !hint.usable() {
		s.drawRarity(count, sel)
		sel.Fallback = true
		sel.Reason = "adaptive strategy has no difficulty hint"
		return
	}

	h := clamp(hint.Value, 0, 1)
	weights := make([]float64, len(s.catalog.shapes))
	for i, sh := range s.catalog.shapes {
		weights[i] = sh.Weight * s.adaptiveMultiplier(h, sh)
	}
	if sum(weights) <= 0 {
		s.drawRarity(count, sel)
		sel.Fallback = true
		sel.Reason = "adaptive weights are all zero"
		return
	}

	sel.Effective = StrategyAdaptive
	sel.Shapes = make([]*Shape, count)
	for i := range sel.Shapes {
		sel.Shapes[i] = s.catalog.shapes[s.pick(weights)]
	}
}

// adaptiveMultiplier favors small shapes for low hints and large shapes for
// high hints. It stays in [1-strength, 1+strength].
func (s *Selector) adaptiveMultiplier(h float64, sh *Shape) float64 {
	size := 0.5
	if s.maxSize > s.minSize {
		size = float64(sh.Size()-s.minSize) / float64(s.maxSize-s.minSize)
	}
	return 1 + s.params.AdaptiveStrength*(2*h-1)*(2*size-1)
}

func (s *Selector) drawRescue(count int, board *Board, sel *Selection) {
	if board.Capacity() <= s.params.RescueThreshold {
		s.drawRarity(count, sel)
		return
	}
	sel.Engaged = true

	limit := min(s.params.RescueMaxCells, board.Empty())
	var candidates []*Shape
	var weights []float64
	for _, sh := range s.catalog.shapes {
		if sh.Weight <= 0 || sh.Size() > limit {
			continue
		}
		if s.params.RescueRequireFit && !CanPlaceAnywhere(sh, board) {
			continue
		}
		candidates = append(candidates, sh)
		weights = append(weights, sh.Weight)
	}
	if len(candidates) == 0 {
		s.drawRarity(count, sel)
		sel.Fallback = true
		sel.Reason = "no rescue candidate fits the board"
		return
	}

	sel.Effective = StrategyRescue
	sel.Shapes = make([]*Shape, count)
	for i := range sel.Shapes {
		sel.Shapes[i] = candidates[s.pick(weights)]
	}
}

// pick returns an index with probability proportional to its weight.
// The total weight must be positive.
func (s *Selector) pick(weights []float64) int {
	r := s.rng.Float64() * sum(weights)
	last := -1
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		last = i
		if r < w {
			return i
		}
		r -= w
	}
	return last
}

func sum(ws []float64) float64 {
	var t float64
	for _, w := range ws {
		t += w
	}
	return t
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
