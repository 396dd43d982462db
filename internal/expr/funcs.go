package expr

import (
	"math"
	"sort"
)

type function struct {
	arity int // -1 for one or more
	fn    func(args []float64) (float64, error)
}

var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

var functions = map[string]function{
	"sin":   unary(math.Sin),
	"cos":   unary(math.Cos),
	"tan":   unary(math.Tan),
	"asin":  bounded("asin", math.Asin, -1, 1),
	"acos":  bounded("acos", math.Acos, -1, 1),
	"atan":  unary(math.Atan),
	"sinh":  unary(math.Sinh),
	"cosh":  unary(math.Cosh),
	"tanh":  unary(math.Tanh),
	"exp":   unary(math.Exp),
	"log":   bounded("log", math.Log, 0, math.Inf(1)),
	"log10": bounded("log10", math.Log10, 0, math.Inf(1)),
	"log2":  bounded("log2", math.Log2, 0, math.Inf(1)),
	"sqrt":  bounded("sqrt", math.Sqrt, 0, math.Inf(1)),
	"abs":   unary(math.Abs),
	"ceil":  unary(math.Ceil),
	"floor": unary(math.Floor),
	"round": unary(math.Round),
	"sign": unary(func(x float64) float64 {
		switch {
		case x > 0:
			return 1
		case x < 0:
			return -1
		}
		return 0
	}),
	"atan2": binary(math.Atan2),
	"pow":   binary(math.Pow),
	"hypot": binary(math.Hypot),
	"min":   variadic(math.Min),
	"max":   variadic(math.Max),
}

// Functions returns the sorted names of the built-in functions.
func Functions() []string {
	names := make([]string, 0, len(functions))
	for name := range functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func unary(f func(float64) float64) function {
	return function{arity: 1, fn: func(a []float64) (float64, error) { return f(a[0]), nil }}
}

func bounded(name string, f func(float64) float64, lo, hi float64) function {
	return function{arity: 1, fn: func(a []float64) (float64, error) {
		if a[0] < lo || a[0] > hi {
			return 0, &EvalError{Name: name, Wrapped: ErrDomain}
		}
		return f(a[0]), nil
	}}
}

func binary(f func(float64, float64) float64) function {
	return function{arity: 2, fn: func(a []float64) (float64, error) { return f(a[0], a[1]), nil }}
}

func variadic(f func(float64, float64) float64) function {
	return function{arity: -1, fn: func(a []float64) (float64, error) {
		acc := a[0]
		for _, v := range a[1:] {
			acc = f(acc, v)
		}
		return acc, nil
	}}
}
