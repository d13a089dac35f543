package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg BlocksConfig
	if err := yaml.Unmarshal(GetDefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	// The embedded file spells out an empty weights map.
	cfg.Selection.Weights = nil

	if want := DefaultBlocksConfig(); !reflect.DeepEqual(cfg, want) {
		t.Errorf("embedded defaults = %+v, expected %+v", cfg, want)
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultBlocksConfig().Validate(); err != nil {
		t.Errorf("Validate() = %v, expected nil", err)
	}
}

func TestLoadBlocksCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := `
hand:
  size: 4
selection:
  strategy: rescue
  weights:
    plus: 3
snapshot:
  max_revives: 2
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBlocks(path)
	if err != nil {
		t.Fatalf("LoadBlocks() failed: %v", err)
	}
	if cfg.Hand.Size != 4 {
		t.Errorf("Hand.Size = %d, expected 4", cfg.Hand.Size)
	}
	if cfg.Selection.Strategy != "rescue" {
		t.Errorf("Selection.Strategy = %q, expected rescue", cfg.Selection.Strategy)
	}
	if cfg.Selection.Weights["plus"] != 3 {
		t.Errorf("Selection.Weights[plus] = %v, expected 3", cfg.Selection.Weights["plus"])
	}
	if cfg.Snapshot.MaxRevives != 2 {
		t.Errorf("Snapshot.MaxRevives = %d, expected 2", cfg.Snapshot.MaxRevives)
	}
	// Unset keys keep defaults.
	if cfg.Snapshot.ValiditySeconds != 300 {
		t.Errorf("Snapshot.ValiditySeconds = %d, expected 300", cfg.Snapshot.ValiditySeconds)
	}
	if cfg.Selection.RescueThreshold != 0.70 {
		t.Errorf("Selection.RescueThreshold = %v, expected 0.70", cfg.Selection.RescueThreshold)
	}
}

func TestLoadBlocksErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"malformed", "hand: [", "failed to parse"},
		{"invalid values", "hand:\n  size: 0\nsnapshot:\n  validity_seconds: -1\n", "invalid config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := LoadBlocks(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("LoadBlocks() error = %v, expected %q", err, tt.wantErr)
			}
		})
	}

	if _, err := LoadBlocks(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadBlocks() on a missing file should fail")
	}
}

func TestLoadBlocksSearchOrder(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := LoadBlocks("")
	if err != nil {
		t.Fatalf("LoadBlocks() failed: %v", err)
	}
	if cfg.Hand.Size != 3 {
		t.Errorf("embedded Hand.Size = %d, expected 3", cfg.Hand.Size)
	}

	userDir := filepath.Join(home, ".blocks", "configs")
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(userDir, "blocks.yaml"), []byte("hand:\n  size: 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err = LoadBlocks("")
	if err != nil {
		t.Fatalf("LoadBlocks() failed: %v", err)
	}
	if cfg.Hand.Size != 5 {
		t.Errorf("user Hand.Size = %d, expected 5", cfg.Hand.Size)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*BlocksConfig)
		field  string
	}{
		{"hand size", func(c *BlocksConfig) { c.Hand.Size = 9 }, "hand.size"},
		{"rescue threshold", func(c *BlocksConfig) { c.Selection.RescueThreshold = 1.5 }, "rescue_threshold"},
		{"rescue cells", func(c *BlocksConfig) { c.Selection.RescueMaxCells = 0 }, "rescue_max_cells"},
		{"adaptive strength", func(c *BlocksConfig) { c.Selection.AdaptiveStrength = -0.1 }, "adaptive_strength"},
		{"negative weight", func(c *BlocksConfig) { c.Selection.Weights = map[string]float64{"dot": -2} }, "weights.dot"},
		{"revives", func(c *BlocksConfig) { c.Snapshot.MaxRevives = -1 }, "max_revives"},
		{"autosave", func(c *BlocksConfig) { c.Snapshot.AutosaveEvery = -5 }, "autosave_every"},
		{"progression", func(c *BlocksConfig) { c.Difficulty.Progression.Type = "time" }, "progression.type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultBlocksConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.field) {
				t.Errorf("Validate() = %v, expected error mentioning %q", err, tt.field)
			}
		})
	}
}

func TestApplyBlocksPreset(t *testing.T) {
	tests := []struct {
		preset       DifficultyPreset
		enabled      bool
		initialLevel float64
		revives      int
		threshold    float64
	}{
		{DifficultyEasy, true, 0.0, 2, 0.60},
		{DifficultyNormal, true, 0.3, 1, 0.70},
		{DifficultyHard, true, 0.7, 0, 0.85},
		{DifficultyFixed, false, 0.0, 1, 0.70},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultBlocksConfig()
			ApplyBlocksPreset(&cfg, tt.preset)

			if cfg.Difficulty.Enabled != tt.enabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Difficulty.Enabled, tt.enabled)
			}
			if cfg.Difficulty.InitialLevel != tt.initialLevel {
				t.Errorf("InitialLevel = %v, expected %v", cfg.Difficulty.InitialLevel, tt.initialLevel)
			}
			if cfg.Snapshot.MaxRevives != tt.revives {
				t.Errorf("MaxRevives = %d, expected %d", cfg.Snapshot.MaxRevives, tt.revives)
			}
			if cfg.Selection.RescueThreshold != tt.threshold {
				t.Errorf("RescueThreshold = %v, expected %v", cfg.Selection.RescueThreshold, tt.threshold)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	for _, in := range []string{"", "easy", "Normal", " hard ", "fixed"} {
		if _, err := ParsePreset(in); err != nil {
			t.Errorf("ParsePreset(%q) = %v, expected nil", in, err)
		}
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("ParsePreset(nightmare) should fail")
	}
}
