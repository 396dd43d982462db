package config

import (
	"sort"

	"github.com/san-kum/fieldviz/internal/grid"
)

var Presets = map[string]map[string]*Config{
	"2d": {
		"rotation": {
			Expression: "i*(-y) + j*x", Dimension: 2, Bounds: grid.Cube(5), Density: 15, FPS: 10, TimeStep: 0.1,
		},
		"source": {
			Expression: "i*x + j*y", Dimension: 2, Bounds: grid.Cube(5), Density: 15, FPS: 10, TimeStep: 0.1,
		},
		"sink": {
			Expression: "-i*x - j*y", Dimension: 2, Bounds: grid.Cube(5), Density: 15, FPS: 10, TimeStep: 0.1,
		},
		"saddle": {
			Expression: "i*x - j*y", Dimension: 2, Bounds: grid.Cube(5), Density: 15, FPS: 10, TimeStep: 0.1,
		},
		"shear": {
			Expression: "i*y", Dimension: 2, Bounds: grid.Cube(5), Density: 15, FPS: 10, TimeStep: 0.1,
		},
		"vortex": {
			Expression: "(-i*y + j*x)/(x^2 + y^2 + 0.1)", Dimension: 2, Bounds: grid.Cube(3), Density: 21, FPS: 10, TimeStep: 0.1,
		},
		"dipole": {
			Expression: "(i*x + j*y)/(x^2 + y^2 + 0.01)^1.5", Dimension: 2, Bounds: grid.Cube(2), Density: 21, FPS: 10, TimeStep: 0.1,
		},
		"wave": {
			Expression: "i*sin(y - t) + j*cos(x - t)", Dimension: 2, Bounds: grid.Cube(6), Density: 17, FPS: 15, TimeStep: 0.05,
		},
	},
	"3d": {
		"helix": {
			Expression: "-i*y + j*x + k*0.5", Dimension: 3, Bounds: grid.Cube(3), Density: 7, FPS: 10, TimeStep: 0.1,
		},
		"swirl3d": {
			Expression: "i*sin(y + t) + j*cos(z + t) + k*sin(x)", Dimension: 3, Bounds: grid.Cube(3), Density: 7, FPS: 15, TimeStep: 0.05,
		},
		"radial3d": {
			Expression: "i*x + j*y + k*z", Dimension: 3, Bounds: grid.Cube(2), Density: 5, FPS: 10, TimeStep: 0.1,
		},
	},
}

// GetPreset returns a copy of the named preset in group, or nil.
func GetPreset(group, name string) *Config {
	groupPresets, ok := Presets[group]
	if !ok {
		return nil
	}
	cfg, ok := groupPresets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

// FindPreset looks a preset up by name across all groups.
func FindPreset(name string) *Config {
	for _, group := range Groups() {
		if cfg := GetPreset(group, name); cfg != nil {
			return cfg
		}
	}
	return nil
}

func ListPresets(group string) []string {
	groupPresets, ok := Presets[group]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(groupPresets))
	for name := range groupPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func Groups() []string {
	groups := make([]string, 0, len(Presets))
	for g := range Presets {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups
}
