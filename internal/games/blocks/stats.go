package blocks

import (
	"github.com/kamstrup/intmap"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks/core"
)

// DrawStats accumulates the shapes offered over a run.
type DrawStats struct {
	counts    *intmap.Map[core.ShapeID, int]
	total     int
	refills   int
	fallbacks int
	effective map[core.Strategy]int
}

// ShapeCount is one histogram bucket.
type ShapeCount struct {
	Shape core.ShapeID
	Count int
}

// NewDrawStats creates empty statistics.
func NewDrawStats() *DrawStats {
	return &DrawStats{
		counts:    intmap.New[core.ShapeID, int](int(core.ShapeCount)),
		effective: make(map[core.Strategy]int),
	}
}

// Record adds one refill to the statistics.
func (d *DrawStats) Record(ev core.PiecesRefilledEvent) {
	d.refills++
	if ev.Fallback {
		d.fallbacks++
	}
	d.effective[ev.Effective]++
	for _, id := range ev.Shapes {
		n, _ := d.counts.Get(id)
		d.counts.Put(id, n+1)
		d.total++
	}
}

// Count returns how often a shape was offered.
func (d *DrawStats) Count(id core.ShapeID) int {
	n, _ := d.counts.Get(id)
	return n
}

// Frequency returns the share of offers that were the given shape.
func (d *DrawStats) Frequency(id core.ShapeID) float64 {
	if d.total == 0 {
		return 0
	}
	return float64(d.Count(id)) / float64(d.total)
}

// Total returns the number of shapes offered.
func (d *DrawStats) Total() int {
	return d.total
}

// Refills returns the number of refills recorded.
func (d *DrawStats) Refills() int {
	return d.refills
}

// Fallbacks returns how many refills degraded to another strategy.
func (d *DrawStats) Fallbacks() int {
	return d.fallbacks
}

// Effective returns how many refills ran under the given strategy.
func (d *DrawStats) Effective(s core.Strategy) int {
	return d.effective[s]
}

// Distinct returns the number of different shapes offered.
func (d *DrawStats) Distinct() int {
	return d.counts.Len()
}

// Histogram returns the non-zero buckets in ShapeID order.
func (d *DrawStats) Histogram() []ShapeCount {
	var out []ShapeCount
	for id := core.ShapeID(0); id < core.ShapeCount; id++ {
		if n, ok := d.counts.Get(id); ok {
			out = append(out, ShapeCount{Shape: id, Count: n})
		}
	}
	return out
}

// Merge adds other into d.
func (d *DrawStats) Merge(other *DrawStats) {
	for _, b := range other.Histogram() {
		n, _ := d.counts.Get(b.Shape)
		d.counts.Put(b.Shape, n+b.Count)
	}
	d.total += other.total
	d.refills += other.refills
	d.fallbacks += other.fallbacks
	for s, n := range other.effective {
		d.effective[s] += n
	}
}

// Reset clears the statistics.
func (d *DrawStats) Reset() {
	d.counts.Clear()
	d.total = 0
	d.refills = 0
	d.fallbacks = 0
	clear(d.effective)
}
