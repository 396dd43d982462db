package decompose

import (
	"fmt"
	"strings"
)

const (
	// Zero is the neutral coefficient of an axis no term mentions.
	Zero = "0"
	One  = "1"
)

// Components holds the per-axis coefficient expressions of a vector field.
type Components struct {
	X string `json:"x" yaml:"x"`
	Y string `json:"y" yaml:"y"`
	Z string `json:"z" yaml:"z"`
}

func (c Components) Get(a Axis) string {
	switch a {
	case X:
		return c.X
	case Y:
		return c.Y
	}
	return c.Z
}

func (c *Components) set(a Axis, v string) {
	switch a {
	case X:
		c.X = v
	case Y:
		c.Y = v
	default:
		c.Z = v
	}
}

func (c Components) String() string {
	return fmt.Sprintf("x: %s, y: %s, z: %s", c.X, c.Y, c.Z)
}

// Accumulate adds incoming to existing as text. Zero is neutral on either
// side; nothing is simplified.
func Accumulate(existing, incoming string) string {
	switch {
	case existing == Zero:
		return incoming
	case incoming == Zero:
		return existing
	}
	return "(" + existing + ") + (" + incoming + ")"
}

// Decompose turns a vector expression such as "i*(-y) + j*x" into its
// three coefficient expressions. Division over parenthesised sums is
// distributed first, then every term is offered to each axis in turn.
// Terms without an axis symbol contribute nothing. Any malformed term
// fails the whole decomposition.
func Decompose(src string) (Components, error) {
	if strings.TrimSpace(src) == "" {
		return Components{}, failf(src, ErrEmptyExpression)
	}
	pre, err := Distribute(src)
	if err != nil {
		return Components{}, err
	}

	comps := Components{X: Zero, Y: Zero, Z: Zero}
	for _, term := range Split(pre) {
		for _, a := range Axes {
			c, ok, err := Extract(term.String(), a)
			if err != nil {
				return Components{}, err
			}
			if ok {
				comps.set(a, Accumulate(comps.Get(a), c))
			}
		}
	}
	return comps, nil
}
