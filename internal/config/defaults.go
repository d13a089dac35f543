package config

import (
	_ "embed"
)

//go:embed defaults/blocks.yaml
var defaultBlocksYAML []byte

// DefaultBlocksConfig returns the default block puzzle configuration.
func DefaultBlocksConfig() BlocksConfig {
	return BlocksConfig{
		Hand: HandConfig{
			Size: 3,
		},
		Selection: SelectionConfig{
			Strategy:          "rarity",
			RescueThreshold:   0.70,
			RescueMaxCells:    3,
			RescueRequireFit:  true,
			AdaptiveStrength:  0.75,
			BalanceCategories: true,
		},
		Snapshot: SnapshotConfig{
			ValiditySeconds: 300,
			MaxRevives:      1,
			AutosaveEvery:   0,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 5000,
			},
			Scaling: ScalingConfig{
				HintFloor:   0.0,
				HintCeiling: 1.0,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultBlocksYAML
}
