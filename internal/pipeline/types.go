package pipeline

import (
	"errors"

	"github.com/san-kum/fieldviz/internal/analysis"
	"github.com/san-kum/fieldviz/internal/decompose"
	"github.com/san-kum/fieldviz/internal/field"
	"github.com/san-kum/fieldviz/internal/grid"
)

var (
	ErrNoField           = errors.New("pipeline: no expression set")
	ErrNoGrid            = errors.New("pipeline: no grid set")
	ErrDimensionMismatch = errors.New("pipeline: field and grid dimensions differ")
)

type Options struct {
	// Workers is the number of goroutines used per sampling pass.
	Workers int

	// Compiler overrides the coefficient compiler. Nil uses field.DefaultCompiler.
	Compiler field.Compiler
}

// Frame is one sampling pass at a fixed time.
type Frame struct {
	Time         float64               `json:"time"`
	Expression   string                `json:"expression"`
	Components   decompose.Components  `json:"components"`
	Dimension    int                   `json:"dimension"`
	Grid         grid.Grid             `json:"grid"`
	Samples      []grid.Sample         `json:"-"`
	Normalized   []analysis.Normalized `json:"samples"`
	Count        int                   `json:"count"`
	MaxMagnitude float64               `json:"max_magnitude"`
}

// Observer is notified after every successful SampleAt.
type Observer interface {
	OnFrame(f *Frame)
}

type ObserverFunc func(f *Frame)

func (fn ObserverFunc) OnFrame(f *Frame) { fn(f) }

// Animation describes a sequence of frames at Start, Start+Step, ...
type Animation struct {
	Start  float64
	Step   float64
	Frames int
}
