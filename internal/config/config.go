// Package config provides YAML-based engine configuration loading and
// difficulty management for the block puzzle.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// BlocksConfig contains all configuration for a block puzzle session.
type BlocksConfig struct {
	Hand       HandConfig       `yaml:"hand"`
	Selection  SelectionConfig  `yaml:"selection"`
	Snapshot   SnapshotConfig   `yaml:"snapshot"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// HandConfig defines the active piece set.
type HandConfig struct {
	Size int `yaml:"size"`
}

// SelectionConfig defines how upcoming pieces are drawn.
type SelectionConfig struct {
	Strategy          string             `yaml:"strategy"`           // uniform, rarity, balanced, adaptive, rescue
	RescueThreshold   float64            `yaml:"rescue_threshold"`   // Board capacity above which rescue engages
	RescueMaxCells    int                `yaml:"rescue_max_cells"`   // Largest piece rescue may offer
	RescueRequireFit  bool               `yaml:"rescue_require_fit"` // Rescue only offers pieces that fit
	AdaptiveStrength  float64            `yaml:"adaptive_strength"`  // 0 disables the size skew
	BalanceCategories bool               `yaml:"balance_categories"`
	Weights           map[string]float64 `yaml:"weights"` // Per-shape rarity overrides
}

// SnapshotConfig defines the continue-after-loss behavior.
type SnapshotConfig struct {
	ValiditySeconds int `yaml:"validity_seconds"`
	MaxRevives      int `yaml:"max_revives"`
	AutosaveEvery   int `yaml:"autosave_every"` // Moves between autosaves, 0 = only at game over
}

// Validity returns the snapshot validity window.
func (c SnapshotConfig) Validity() time.Duration {
	return time.Duration(c.ValiditySeconds) * time.Second
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases during a session.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "moves", or "none"
	MaxAt int    `yaml:"max_at"` // Score/moves at which max difficulty is reached
}

// ScalingConfig maps the difficulty level onto the hint handed to the engine.
type ScalingConfig struct {
	HintFloor   float64 `yaml:"hint_floor"`   // Hint at level 0
	HintCeiling float64 `yaml:"hint_ceiling"` // Hint at level 1
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. An empty name yields an empty preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// Validate reports every out-of-range value in the configuration.
func (c BlocksConfig) Validate() error {
	var errs []error
	if c.Hand.Size < 1 || c.Hand.Size > 8 {
		errs = append(errs, fmt.Errorf("hand.size must be in [1,8], got %d", c.Hand.Size))
	}
	if c.Selection.RescueThreshold < 0 || c.Selection.RescueThreshold > 1 {
		errs = append(errs, fmt.Errorf("selection.rescue_threshold must be in [0,1], got %g", c.Selection.RescueThreshold))
	}
	if c.Selection.RescueMaxCells < 1 {
		errs = append(errs, fmt.Errorf("selection.rescue_max_cells must be positive, got %d", c.Selection.RescueMaxCells))
	}
	if c.Selection.AdaptiveStrength < 0 || c.Selection.AdaptiveStrength > 1 {
		errs = append(errs, fmt.Errorf("selection.adaptive_strength must be in [0,1], got %g", c.Selection.AdaptiveStrength))
	}
	for name, w := range c.Selection.Weights {
		if w < 0 {
			errs = append(errs, fmt.Errorf("selection.weights.%s must not be negative, got %g", name, w))
		}
	}
	if c.Snapshot.ValiditySeconds <= 0 {
		errs = append(errs, fmt.Errorf("snapshot.validity_seconds must be positive, got %d", c.Snapshot.ValiditySeconds))
	}
	if c.Snapshot.MaxRevives < 0 {
		errs = append(errs, fmt.Errorf("snapshot.max_revives must not be negative, got %d", c.Snapshot.MaxRevives))
	}
	if c.Snapshot.AutosaveEvery < 0 {
		errs = append(errs, fmt.Errorf("snapshot.autosave_every must not be negative, got %d", c.Snapshot.AutosaveEvery))
	}
	switch c.Difficulty.Progression.Type {
	case "score", "moves", "none", "":
	default:
		errs = append(errs, fmt.Errorf("difficulty.progression.type must be score, moves or none, got %q", c.Difficulty.Progression.Type))
	}
	if c.Difficulty.InitialLevel < 0 || c.Difficulty.InitialLevel > 1 {
		errs = append(errs, fmt.Errorf("difficulty.initial_level must be in [0,1], got %g", c.Difficulty.InitialLevel))
	}
	return errors.Join(errs...)
}
