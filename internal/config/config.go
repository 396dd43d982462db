package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/fieldviz/internal/grid"
)

const (
	DefaultExpression = "i*(-y) + j*x"
	DefaultDimension  = 2
	DefaultExtent     = 5.0
	DefaultDensity    = 15
	DefaultFPS        = 10
	DefaultTimeStep   = 0.1
	DefaultWorkers    = 1
)

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Expression string      `yaml:"expression"`
	Dimension  int         `yaml:"dimension"`
	Bounds     grid.Bounds `yaml:"bounds"`
	Density    int         `yaml:"density"`
	Time       float64     `yaml:"time"`
	FPS        int         `yaml:"fps"`
	TimeStep   float64     `yaml:"time_step"`
	Workers    int         `yaml:"workers"`
}

func DefaultConfig() *Config {
	return &Config{
		Expression: DefaultExpression,
		Dimension:  DefaultDimension,
		Bounds:     grid.Cube(DefaultExtent),
		Density:    DefaultDensity,
		FPS:        DefaultFPS,
		TimeStep:   DefaultTimeStep,
		Workers:    DefaultWorkers,
	}
}

// Load reads a YAML config. Keys absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Expression) == "" {
		return fmt.Errorf("%w: expression is empty", ErrInvalid)
	}
	if err := c.Grid().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalid, c.FPS)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalid, c.Workers)
	}
	return nil
}

// Grid returns the sampling grid described by the config.
func (c *Config) Grid() grid.Grid {
	return grid.Grid{Bounds: c.Bounds, Density: c.Density, Dimension: c.Dimension}
}

func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
