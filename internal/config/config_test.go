package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/fieldviz/internal/grid"
	"github.com/san-kum/fieldviz/internal/pipeline"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Expression != DefaultExpression {
		t.Errorf("expected default expression, got %s", cfg.Expression)
	}
	if cfg.Dimension != 2 {
		t.Errorf("expected dimension 2, got %d", cfg.Dimension)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "field.yaml")
	data := "expression: \"i*x + j*y\"\ndensity: 9\nbounds:\n  x_min: -2\n  x_max: 2\n  y_min: -1\n  y_max: 1\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Expression != "i*x + j*y" || cfg.Density != 9 {
		t.Errorf("unexpected values: %+v", cfg)
	}
	if cfg.Bounds.XMin != -2 || cfg.Bounds.YMax != 1 {
		t.Errorf("unexpected bounds: %+v", cfg.Bounds)
	}
	if cfg.FPS != DefaultFPS || cfg.Dimension != DefaultDimension {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("density: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "field.yaml")
	cfg := GetPreset("3d", "helix")
	cfg.Workers = 4

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *got != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   error
	}{
		{"empty expression", func(c *Config) { c.Expression = "  " }, ErrInvalid},
		{"density", func(c *Config) { c.Density = 1 }, grid.ErrDensity},
		{"dimension", func(c *Config) { c.Dimension = 5 }, grid.ErrDimension},
		{"fps", func(c *Config) { c.FPS = 0 }, ErrInvalid},
		{"workers", func(c *Config) { c.Workers = -1 }, ErrInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("2d", "rotation")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Expression != "i*(-y) + j*x" {
		t.Errorf("unexpected expression %s", cfg.Expression)
	}

	cfg.Density = 99
	if GetPreset("2d", "rotation").Density == 99 {
		t.Error("preset should be returned as a copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("2d", "nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if GetPreset("nonexistent", "rotation") != nil {
		t.Error("expected nil for nonexistent group")
	}
	if FindPreset("nonexistent") != nil {
		t.Error("expected nil from FindPreset")
	}
	if cfg := FindPreset("swirl3d"); cfg == nil || cfg.Dimension != 3 {
		t.Errorf("FindPreset(swirl3d) = %+v", cfg)
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("2d")
	if len(presets) == 0 {
		t.Fatal("expected 2d presets")
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] > presets[i] {
			t.Errorf("presets not sorted: %v", presets)
		}
	}
	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for nonexistent group")
	}
}

func TestPresetsSample(t *testing.T) {
	for _, group := range Groups() {
		for _, name := range ListPresets(group) {
			t.Run(group+"/"+name, func(t *testing.T) {
				cfg := GetPreset(group, name)
				if err := cfg.Validate(); err != nil {
					t.Fatalf("invalid preset: %v", err)
				}
				p := pipeline.New(pipeline.Options{})
				if _, err := p.SetExpression(cfg.Expression, cfg.Dimension); err != nil {
					t.Fatalf("expression rejected: %v", err)
				}
				if err := p.SetGrid(cfg.Grid()); err != nil {
					t.Fatal(err)
				}
				frame, err := p.SampleAt(context.Background(), cfg.Time)
				if err != nil {
					t.Fatalf("sample failed: %v", err)
				}
				if frame.Count == 0 {
					t.Error("preset produced no samples")
				}
			})
		}
	}
}
