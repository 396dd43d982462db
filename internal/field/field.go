package field

import (
	"errors"
	"fmt"

	"github.com/san-kum/fieldviz/internal/decompose"
	"github.com/san-kum/fieldviz/internal/expr"
)

var (
	ErrDimension = errors.New("field: dimension must be 2 or 3")

	// ErrNonFinite marks an evaluation that produced NaN or Inf.
	ErrNonFinite = errors.New("field: non-finite component")
)

// Evaluable is a compiled scalar coefficient.
type Evaluable interface {
	Evaluate(scope expr.Scope) (float64, error)
}

// Compiler turns coefficient source into an Evaluable.
type Compiler interface {
	Compile(src string) (Evaluable, error)
}

type CompilerFunc func(src string) (Evaluable, error)

func (f CompilerFunc) Compile(src string) (Evaluable, error) { return f(src) }

// DefaultCompiler compiles coefficients with the expr package over x, y, z, t.
var DefaultCompiler Compiler = CompilerFunc(func(src string) (Evaluable, error) {
	p, err := expr.Compile(src)
	if err != nil {
		return nil, err
	}
	return p, nil
})

// CompileError reports a coefficient the evaluator rejected.
type CompileError struct {
	Axis        decompose.Axis
	Coefficient string
	Wrapped     error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("field: %s component %q: %v", e.Axis, e.Coefficient, e.Wrapped)
}

func (e *CompileError) Unwrap() error {
	return e.Wrapped
}

// Field is a compiled vector field. Empty slots evaluate to 0. A Field is
// immutable and safe for concurrent evaluation.
type Field struct {
	components decompose.Components
	dimension  int
	slots      [3]Evaluable
}

// Compile builds a Field from decomposed coefficients using DefaultCompiler.
func Compile(c decompose.Components, dimension int) (*Field, error) {
	return CompileWith(DefaultCompiler, c, dimension)
}

// CompileWith builds a Field with the given compiler. Coefficients equal to
// "0", and z when dimension is 2, are left empty without consulting the
// compiler. No Field is returned if any coefficient fails.
func CompileWith(comp Compiler, c decompose.Components, dimension int) (*Field, error) {
	if dimension != 2 && dimension != 3 {
		return nil, fmt.Errorf("%w, got %d", ErrDimension, dimension)
	}
	f := &Field{components: c, dimension: dimension}
	for _, a := range decompose.Axes {
		src := c.Get(a)
		if src == decompose.Zero || src == "" || (a == decompose.Z && dimension == 2) {
			continue
		}
		ev, err := comp.Compile(src)
		if err != nil {
			return nil, &CompileError{Axis: a, Coefficient: src, Wrapped: err}
		}
		f.slots[a] = ev
	}
	return f, nil
}

func (f *Field) Components() decompose.Components { return f.components }
func (f *Field) Dimension() int                    { return f.dimension }

// Has reports whether the slot for a is compiled.
func (f *Field) Has(a decompose.Axis) bool { return f.slots[a] != nil }

// EvalAt evaluates every present slot at (x, y, z) and time t. On the first
// failing or non-finite slot it returns the zero vector and the cause.
func (f *Field) EvalAt(x, y, z, t float64) (Vec3, error) {
	scope := expr.Scope{"x": x, "y": y, "z": z, "t": t}
	var out [3]float64
	for a, ev := range f.slots {
		if ev == nil {
			continue
		}
		v, err := ev.Evaluate(scope)
		if err != nil {
			return Vec3{}, fmt.Errorf("%s component: %w", decompose.Axis(a), err)
		}
		out[a] = v
	}
	vec := Vec3{out[0], out[1], out[2]}
	if !vec.IsFinite() {
		return Vec3{}, ErrNonFinite
	}
	return vec, nil
}

// Evaluate is EvalAt with failures resolved to the zero vector.
func (f *Field) Evaluate(x, y, z, t float64) Vec3 {
	v, _ := f.EvalAt(x, y, z, t)
	return v
}
