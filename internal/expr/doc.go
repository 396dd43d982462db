// Package expr compiles scalar algebraic expressions into evaluable programs.
//
// It is the numeric backend for vector-field coefficients:
//
//   - [Tokenize]: typed token stream (numbers, identifiers, axis symbols,
//     operators, parentheses)
//   - [Parse]: syntax tree built from [Node] values
//   - [Compile]: resolves identifiers and produces a [Program]
//
// The axis symbols i, j and k are recognised by the tokenizer as [Axis]
// tokens so that callers can locate them structurally. They are never valid
// free variables of a compiled program.
//
// # Example
//
//	p, err := expr.Compile("sin(x)*y^2")
//	v, err := p.Evaluate(expr.Scope{"x": 1, "y": 2, "z": 0, "t": 0})
package expr
