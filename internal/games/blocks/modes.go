package blocks

import (
	"github.com/vovakirdan/tui-blocks/internal/registry"
)

// mode is a registered puzzle variant. An empty strategy defers to the
// configured selection strategy.
type mode struct {
	id          string
	title       string
	strategy    string
	description string
}

func (m mode) ID() string          { return m.id }
func (m mode) Title() string       { return m.title }
func (m mode) Strategy() string    { return m.strategy }
func (m mode) Description() string { return m.description }

var modes = []mode{
	{"classic", "Classic", "", "Rarity-weighted pieces, or the strategy set in the config"},
	{"uniform", "Uniform", "uniform", "Every shape equally likely"},
	{"balanced", "Balanced", "balanced", "No shape category repeats within a hand"},
	{"adaptive", "Adaptive", "adaptive", "Piece sizes follow the difficulty progression"},
	{"rescue", "Rescue", "rescue", "Small fitting pieces when the board is nearly full"},
}

func init() {
	for _, m := range modes {
		m := m
		registry.Register(m.id, func() registry.Mode { return m })
	}
}
