package config

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestDifficultyLevel(t *testing.T) {
	tests := []struct {
		name  string
		cfg   DifficultyConfig
		score int
		moves int
		want  float64
	}{
		{
			name:  "score start",
			cfg:   DifficultyConfig{Enabled: true, Progression: ProgressionConfig{Type: "score", MaxAt: 1000}},
			score: 0,
			want:  0,
		},
		{
			name:  "score halfway",
			cfg:   DifficultyConfig{Enabled: true, Progression: ProgressionConfig{Type: "score", MaxAt: 1000}},
			score: 500,
			want:  0.5,
		},
		{
			name:  "score past max",
			cfg:   DifficultyConfig{Enabled: true, Progression: ProgressionConfig{Type: "score", MaxAt: 1000}},
			score: 4000,
			want:  1,
		},
		{
			name:  "moves with initial level",
			cfg:   DifficultyConfig{Enabled: true, InitialLevel: 0.3, Progression: ProgressionConfig{Type: "moves", MaxAt: 100}},
			moves: 50,
			want:  0.65,
		},
		{
			name:  "disabled",
			cfg:   DifficultyConfig{Enabled: false, InitialLevel: 0.4, Progression: ProgressionConfig{Type: "score", MaxAt: 10}},
			score: 1000,
			want:  0.4,
		},
		{
			name:  "none",
			cfg:   DifficultyConfig{Enabled: true, InitialLevel: 0.2, Progression: ProgressionConfig{Type: "none"}},
			moves: 1000,
			want:  0.2,
		},
		{
			name:  "zero max_at",
			cfg:   DifficultyConfig{Enabled: true, Progression: ProgressionConfig{Type: "moves"}},
			moves: 1,
			want:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDifficultyManager(tt.cfg)
			if got := d.Level(tt.score, tt.moves); !approx(got, tt.want) {
				t.Errorf("Level() = %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestDifficultyHintScaling(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "score", MaxAt: 100},
		Scaling:     ScalingConfig{HintFloor: 0.2, HintCeiling: 0.6},
	})

	if got := d.Hint(0, 0); !approx(got, 0.2) {
		t.Errorf("Hint(0) = %v, expected 0.2", got)
	}
	if got := d.Hint(100, 0); !approx(got, 0.6) {
		t.Errorf("Hint(100) = %v, expected 0.6", got)
	}

	fixed := NewDifficultyManager(DifficultyConfig{
		Enabled:      false,
		InitialLevel: 2,
		Scaling:      ScalingConfig{HintFloor: 0.2, HintCeiling: 0.6},
	})
	if got := fixed.Hint(500, 500); !approx(got, 0.6) {
		t.Errorf("Hint() with clamped level = %v, expected 0.6", got)
	}
}
