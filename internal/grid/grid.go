package grid

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

var (
	ErrDensity   = errors.New("grid: density must be at least 2")
	ErrDimension = errors.New("grid: dimension must be 2 or 3")
	ErrBounds    = errors.New("grid: invalid bounds")
)

type Bounds struct {
	XMin float64 `yaml:"x_min" json:"x_min"`
	XMax float64 `yaml:"x_max" json:"x_max"`
	YMin float64 `yaml:"y_min" json:"y_min"`
	YMax float64 `yaml:"y_max" json:"y_max"`
	ZMin float64 `yaml:"z_min" json:"z_min"`
	ZMax float64 `yaml:"z_max" json:"z_max"`
}

// Cube returns bounds spanning [-half, half] on every axis.
func Cube(half float64) Bounds {
	return Bounds{-half, half, -half, half, -half, half}
}

// Grid is a rectangular lattice with Density points per axis.
type Grid struct {
	Bounds    Bounds `yaml:"bounds" json:"bounds"`
	Density   int    `yaml:"density" json:"density"`
	Dimension int    `yaml:"dimension" json:"dimension"`
}

func (g Grid) Validate() error {
	if g.Dimension != 2 && g.Dimension != 3 {
		return fmt.Errorf("%w, got %d", ErrDimension, g.Dimension)
	}
	if g.Density < 2 {
		return fmt.Errorf("%w, got %d", ErrDensity, g.Density)
	}
	b := g.Bounds
	pairs := [][2]float64{{b.XMin, b.XMax}, {b.YMin, b.YMax}}
	if g.Dimension == 3 {
		pairs = append(pairs, [2]float64{b.ZMin, b.ZMax})
	}
	for _, p := range pairs {
		if math.IsNaN(p[0]) || math.IsNaN(p[1]) || math.IsInf(p[0], 0) || math.IsInf(p[1], 0) || p[0] > p[1] {
			return fmt.Errorf("%w: [%g, %g]", ErrBounds, p[0], p[1])
		}
	}
	return nil
}

// Points returns the number of lattice points, Density^Dimension.
func (g Grid) Points() int {
	n := 1
	for d := 0; d < g.Dimension; d++ {
		n *= g.Density
	}
	return n
}

// Axes returns the lattice coordinates along x, y and z. In two
// dimensions z is the single plane z = 0.
func (g Grid) Axes() (xs, ys, zs []float64) {
	xs = floats.Span(make([]float64, g.Density), g.Bounds.XMin, g.Bounds.XMax)
	ys = floats.Span(make([]float64, g.Density), g.Bounds.YMin, g.Bounds.YMax)
	if g.Dimension == 3 {
		zs = floats.Span(make([]float64, g.Density), g.Bounds.ZMin, g.Bounds.ZMax)
	} else {
		zs = []float64{0}
	}
	return xs, ys, zs
}
