package expr

import (
	"fmt"
	"math"
)

// Scope binds variable names to values for one evaluation.
type Scope map[string]float64

// DefaultVariables are the names a field coefficient may reference.
var DefaultVariables = []string{"x", "y", "z", "t"}

type evalFn func(Scope) (float64, error)

// Program is a compiled expression. It holds no mutable state and may be
// evaluated concurrently.
type Program struct {
	src  string
	root Node
	fn   evalFn
}

type Option func(*compiler)

// WithVariables replaces the set of names accepted as free variables.
func WithVariables(names ...string) Option {
	return func(c *compiler) {
		c.vars = make(map[string]bool, len(names))
		for _, n := range names {
			c.vars[n] = true
		}
	}
}

type compiler struct {
	vars map[string]bool
}

// Compile parses src and resolves every identifier against the allowed
// variables, the constants pi and e, and the built-in function table.
func Compile(src string, opts ...Option) (*Program, error) {
	c := &compiler{}
	WithVariables(DefaultVariables...)(c)
	for _, o := range opts {
		o(c)
	}
	root, err := Parse(src)
	if err != nil {
		return nil, err
	}
	fn, err := c.compile(root)
	if err != nil {
		return nil, err
	}
	return &Program{src: src, root: root, fn: fn}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(src string, opts ...Option) *Program {
	p, err := Compile(src, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Program) Source() string { return p.src }
func (p *Program) Tree() Node     { return p.root }

// Evaluate runs the program against scope.
func (p *Program) Evaluate(scope Scope) (float64, error) {
	return p.fn(scope)
}

func (c *compiler) compile(n Node) (evalFn, error) {
	switch n := n.(type) {
	case *Num:
		v := n.Value
		return func(Scope) (float64, error) { return v, nil }, nil

	case *Var:
		if v, ok := constants[n.Name]; ok {
			return func(Scope) (float64, error) { return v, nil }, nil
		}
		if !c.vars[n.Name] {
			return nil, &ParseError{Msg: fmt.Sprintf("unknown variable %q", n.Name)}
		}
		name := n.Name
		return func(s Scope) (float64, error) {
			v, ok := s[name]
			if !ok {
				return 0, &EvalError{Name: name, Wrapped: ErrUndefined}
			}
			return v, nil
		}, nil

	case *Unary:
		x, err := c.compile(n.X)
		if err != nil {
			return nil, err
		}
		if n.Op == '+' {
			return x, nil
		}
		return func(s Scope) (float64, error) {
			v, err := x(s)
			return -v, err
		}, nil

	case *Binary:
		return c.binary(n)

	case *Call:
		f, ok := functions[n.Fn]
		if !ok {
			return nil, &ParseError{Msg: fmt.Sprintf("unknown function %q", n.Fn)}
		}
		if (f.arity >= 0 && len(n.Args) != f.arity) || (f.arity < 0 && len(n.Args) == 0) {
			return nil, &ParseError{Msg: fmt.Sprintf("%s: wrong number of arguments (%d)", n.Fn, len(n.Args))}
		}
		args := make([]evalFn, len(n.Args))
		for i, a := range n.Args {
			fn, err := c.compile(a)
			if err != nil {
				return nil, err
			}
			args[i] = fn
		}
		return func(s Scope) (float64, error) {
			vals := make([]float64, len(args))
			for i, a := range args {
				v, err := a(s)
				if err != nil {
					return 0, err
				}
				vals[i] = v
			}
			return f.fn(vals)
		}, nil
	}
	return nil, &ParseError{Msg: fmt.Sprintf("unsupported node %T", n)}
}

func (c *compiler) binary(n *Binary) (evalFn, error) {
	l, err := c.compile(n.L)
	if err != nil {
		return nil, err
	}
	r, err := c.compile(n.R)
	if err != nil {
		return nil, err
	}
	var op func(a, b float64) (float64, error)
	switch n.Op {
	case '+':
		op = func(a, b float64) (float64, error) { return a + b, nil }
	case '-':
		op = func(a, b float64) (float64, error) { return a - b, nil }
	case '*':
		op = func(a, b float64) (float64, error) { return a * b, nil }
	case '/':
		op = func(a, b float64) (float64, error) { return a / b, nil }
	case '^':
		op = func(a, b float64) (float64, error) {
			v := math.Pow(a, b)
			if math.IsNaN(v) && !math.IsNaN(a) && !math.IsNaN(b) {
				return 0, &EvalError{Name: "^", Wrapped: ErrDomain}
			}
			return v, nil
		}
	default:
		return nil, &ParseError{Msg: fmt.Sprintf("unknown operator %q", n.Op)}
	}
	return func(s Scope) (float64, error) {
		a, err := l(s)
		if err != nil {
			return 0, err
		}
		b, err := r(s)
		if err != nil {
			return 0, err
		}
		return op(a, b)
	}, nil
}
