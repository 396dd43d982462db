package expr

import (
	"strconv"
	"strings"
)

// Node is a parsed scalar expression.
type Node interface {
	String() string
	prec() int
}

const (
	precSum = iota + 1
	precProduct
	precUnary
	precPower
	precAtom
)

type Num struct {
	Value float64
}

type Var struct {
	Name string
}

type Unary struct {
	Op byte
	X  Node
}

type Binary struct {
	Op   byte
	L, R Node
}

type Call struct {
	Fn   string
	Args []Node
}

func (n *Num) prec() int  { return precAtom }
func (v *Var) prec() int  { return precAtom }
func (c *Call) prec() int { return precAtom }
func (u *Unary) prec() int {
	return precUnary
}
func (b *Binary) prec() int {
	switch b.Op {
	case '+', '-':
		return precSum
	case '*', '/':
		return precProduct
	}
	return precPower
}

func (n *Num) String() string { return strconv.FormatFloat(n.Value, 'g', -1, 64) }
func (v *Var) String() string { return v.Name }

func (u *Unary) String() string {
	return string(u.Op) + wrap(u.X, precUnary, false)
}

func (b *Binary) String() string {
	p := b.prec()
	if b.Op == '^' {
		// right associative
		return wrap(b.L, p, true) + "^" + wrap(b.R, p, false)
	}
	return wrap(b.L, p, false) + string(b.Op) + wrap(b.R, p, b.Op == '-' || b.Op == '/')
}

func (c *Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return c.Fn + "(" + strings.Join(args, ",") + ")"
}

func wrap(n Node, parent int, strict bool) string {
	if n.prec() < parent || (strict && n.prec() == parent) {
		return "(" + n.String() + ")"
	}
	return n.String()
}

// Walk calls fn for n and every node below it, parents first.
func Walk(n Node, fn func(Node)) {
	fn(n)
	switch n := n.(type) {
	case *Unary:
		Walk(n.X, fn)
	case *Binary:
		Walk(n.L, fn)
		Walk(n.R, fn)
	case *Call:
		for _, a := range n.Args {
			Walk(a, fn)
		}
	}
}

// Variables returns the distinct variable names referenced by n in first
// appearance order.
func Variables(n Node) []string {
	seen := make(map[string]bool)
	var names []string
	Walk(n, func(n Node) {
		if v, ok := n.(*Var); ok && !seen[v.Name] {
			seen[v.Name] = true
			names = append(names, v.Name)
		}
	})
	return names
}
