package blocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks/core"
	"github.com/vovakirdan/tui-blocks/internal/registry"
)

func TestModesRegistered(t *testing.T) {
	for _, m := range modes {
		require.True(t, registry.Exists(m.id), m.id)

		created, err := registry.Create(m.id)
		require.NoError(t, err)
		assert.Equal(t, m.title, created.Title())

		if m.strategy == "" {
			continue
		}
		_, ok := core.ParseStrategy(m.strategy)
		assert.True(t, ok, "mode %s has unknown strategy %q", m.id, m.strategy)
	}
	assert.GreaterOrEqual(t, len(registry.List()), len(modes))
}
