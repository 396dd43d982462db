package pipeline

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/fieldviz/internal/decompose"
	"github.com/san-kum/fieldviz/internal/field"
	"github.com/san-kum/fieldviz/internal/grid"
)

func unitGrid(dim int) grid.Grid {
	return grid.Grid{Bounds: grid.Cube(1), Density: 3, Dimension: dim}
}

func TestPipeline_SampleAt(t *testing.T) {
	p := New(Options{})
	if _, err := p.SetExpression("i*x + j*y", 2); err != nil {
		t.Fatalf("set expression: %v", err)
	}
	if err := p.SetGrid(unitGrid(2)); err != nil {
		t.Fatalf("set grid: %v", err)
	}

	frame, err := p.SampleAt(context.Background(), 0)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if frame.Count != 9 || len(frame.Samples) != 9 || len(frame.Normalized) != 9 {
		t.Fatalf("unexpected counts: %d %d %d", frame.Count, len(frame.Samples), len(frame.Normalized))
	}
	if math.Abs(frame.MaxMagnitude-math.Sqrt2) > 1e-12 {
		t.Errorf("max magnitude = %v", frame.MaxMagnitude)
	}
	if frame.Components != (decompose.Components{X: "x", Y: "y", Z: "0"}) {
		t.Errorf("components = %+v", frame.Components)
	}
	if math.Abs(frame.Normalized[8].NormMagnitude-1) > 1e-12 {
		t.Errorf("corner normalized = %v", frame.Normalized[8].NormMagnitude)
	}
}

func TestPipeline_Missing(t *testing.T) {
	p := New(Options{})
	if _, err := p.SampleAt(context.Background(), 0); !errors.Is(err, ErrNoField) {
		t.Errorf("expected ErrNoField, got %v", err)
	}
	if _, err := p.SetExpression("i", 2); err != nil {
		t.Fatal(err)
	}
	if _, err := p.SampleAt(context.Background(), 0); !errors.Is(err, ErrNoGrid) {
		t.Errorf("expected ErrNoGrid, got %v", err)
	}
	if err := p.SetGrid(unitGrid(3)); err != nil {
		t.Fatal(err)
	}
	if _, err := p.SampleAt(context.Background(), 0); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestPipeline_RecompilesOnlyOnChange(t *testing.T) {
	calls := 0
	p := New(Options{Compiler: field.CompilerFunc(func(src string) (field.Evaluable, error) {
		calls++
		return field.DefaultCompiler.Compile(src)
	})})

	if changed, err := p.SetExpression("i*x", 2); err != nil || !changed {
		t.Fatalf("first set: changed=%v err=%v", changed, err)
	}
	if changed, _ := p.SetExpression("i*x", 2); changed {
		t.Error("identical expression should not recompile")
	}
	if calls != 1 {
		t.Errorf("expected 1 compile, got %d", calls)
	}
	if changed, _ := p.SetExpression("i*x", 3); !changed {
		t.Error("dimension change should recompile")
	}
}

func TestPipeline_FailureKeepsPreviousField(t *testing.T) {
	p := New(Options{})
	if _, err := p.SetExpression("i*x", 2); err != nil {
		t.Fatal(err)
	}
	if err := p.SetGrid(unitGrid(2)); err != nil {
		t.Fatal(err)
	}

	for _, bad := range []string{"", "i*(x", "sin(i*x)", "i*w"} {
		if _, err := p.SetExpression(bad, 2); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
	if p.Expression() != "i*x" {
		t.Errorf("active expression = %q", p.Expression())
	}
	frame, err := p.SampleAt(context.Background(), 0)
	if err != nil {
		t.Fatalf("sample after failure: %v", err)
	}
	if frame.Components.X != "x" {
		t.Errorf("components changed: %+v", frame.Components)
	}
}

func TestPipeline_SetGridRejectsInvalid(t *testing.T) {
	p := New(Options{})
	err := p.SetGrid(grid.Grid{Bounds: grid.Cube(1), Density: 1, Dimension: 2})
	if !errors.Is(err, grid.ErrDensity) {
		t.Errorf("expected ErrDensity, got %v", err)
	}
	if _, ok := p.Grid(); ok {
		t.Error("invalid grid should not be stored")
	}
}

func TestPipeline_AnimateAndObservers(t *testing.T) {
	p := New(Options{Workers: 2})
	if _, err := p.SetExpression("i*cos(t) + j*sin(t)", 2); err != nil {
		t.Fatal(err)
	}
	if err := p.SetGrid(unitGrid(2)); err != nil {
		t.Fatal(err)
	}

	observed := 0
	p.AddObserver(ObserverFunc(func(*Frame) { observed++ }))

	var times []float64
	err := p.Animate(context.Background(), Animation{Start: 0, Step: 0.5, Frames: 4}, func(f *Frame) bool {
		times = append(times, f.Time)
		return len(times) < 3
	})
	if err != nil {
		t.Fatalf("animate: %v", err)
	}
	if len(times) != 3 || times[2] != 1.0 {
		t.Errorf("times = %v", times)
	}
	if observed != 3 {
		t.Errorf("observer saw %d frames", observed)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := p.Animate(ctx, Animation{Frames: 2}, func(*Frame) bool { return true }); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
