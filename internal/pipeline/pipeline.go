package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/san-kum/fieldviz/internal/analysis"
	"github.com/san-kum/fieldviz/internal/decompose"
	"github.com/san-kum/fieldviz/internal/field"
	"github.com/san-kum/fieldviz/internal/grid"
)

// Pipeline holds the last compiled field and grid and resamples on demand.
// It is safe for concurrent use.
type Pipeline struct {
	mu        sync.RWMutex
	compiler  field.Compiler
	sampler   grid.Sampler
	expr      string
	dim       int
	field     *field.Field
	grid      grid.Grid
	hasGrid   bool
	observers []Observer
}

func New(opts Options) *Pipeline {
	comp := opts.Compiler
	if comp == nil {
		comp = field.DefaultCompiler
	}
	return &Pipeline{
		compiler:  comp,
		sampler:   grid.Sampler{Workers: opts.Workers},
		observers: make([]Observer, 0),
	}
}

func (p *Pipeline) AddObserver(o Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, o)
}

// SetExpression decomposes and compiles src for the given dimension. It
// reports whether a recompile happened; an unchanged expression and
// dimension is a no-op. On failure the previous field stays active.
func (p *Pipeline) SetExpression(src string, dim int) (bool, error) {
	p.mu.RLock()
	same := p.field != nil && p.expr == src && p.dim == dim
	p.mu.RUnlock()
	if same {
		return false, nil
	}

	c, err := decompose.Decompose(src)
	if err != nil {
		return false, err
	}
	f, err := field.CompileWith(p.compiler, c, dim)
	if err != nil {
		return false, err
	}

	p.mu.Lock()
	p.expr, p.dim, p.field = src, dim, f
	p.mu.Unlock()
	return true, nil
}

// SetGrid replaces the sampling grid after validating it.
func (p *Pipeline) SetGrid(g grid.Grid) error {
	if err := g.Validate(); err != nil {
		return err
	}
	p.mu.Lock()
	p.grid, p.hasGrid = g, true
	p.mu.Unlock()
	return nil
}

func (p *Pipeline) Expression() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.expr
}

// Components returns the decomposition of the active expression.
func (p *Pipeline) Components() (decompose.Components, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.field == nil {
		return decompose.Components{}, false
	}
	return p.field.Components(), true
}

func (p *Pipeline) Grid() (grid.Grid, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.grid, p.hasGrid
}

// SampleAt samples the active field over the active grid at time t.
func (p *Pipeline) SampleAt(ctx context.Context, t float64) (*Frame, error) {
	p.mu.RLock()
	f, g, hasGrid, src := p.field, p.grid, p.hasGrid, p.expr
	observers := append([]Observer(nil), p.observers...)
	p.mu.RUnlock()

	if f == nil {
		return nil, ErrNoField
	}
	if !hasGrid {
		return nil, ErrNoGrid
	}
	if f.Dimension() != g.Dimension {
		return nil, fmt.Errorf("%w: field %d, grid %d", ErrDimensionMismatch, f.Dimension(), g.Dimension)
	}

	samples, err := p.sampler.Sample(ctx, f, g, t)
	if err != nil {
		return nil, err
	}
	peak := analysis.MaxMagnitude(samples)

	frame := &Frame{
		Time:         t,
		Expression:   src,
		Components:   f.Components(),
		Dimension:    f.Dimension(),
		Grid:         g,
		Samples:      samples,
		Normalized:   analysis.Normalize(samples, peak),
		Count:        len(samples),
		MaxMagnitude: peak,
	}
	for _, o := range observers {
		o.OnFrame(frame)
	}
	return frame, nil
}

// Animate samples successive frames and hands each to fn until fn returns
// false, the frame count is reached, or ctx is done.
func (p *Pipeline) Animate(ctx context.Context, a Animation, fn func(*Frame) bool) error {
	if a.Frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", a.Frames)
	}
	t := a.Start
	for i := 0; i < a.Frames; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		frame, err := p.SampleAt(ctx, t)
		if err != nil {
			return err
		}
		if !fn(frame) {
			return nil
		}
		t += a.Step
	}
	return nil
}
