package decompose

import (
	"strings"

	"github.com/san-kum/fieldviz/internal/expr"
)

// Axis selects one of the three coefficient slots.
type Axis int

const (
	X Axis = iota
	Y
	Z
)

// Axes lists the slots in x, y, z order.
var Axes = [...]Axis{X, Y, Z}

var (
	axisSymbols = [...]string{"i", "j", "k"}
	axisNames   = [...]string{"x", "y", "z"}
)

// Symbol returns the unit-vector symbol bound to a: i, j or k.
func (a Axis) Symbol() string { return axisSymbols[a] }

func (a Axis) String() string { return axisNames[a] }

// Extract returns the scalar coefficient multiplying axis in term, or
// ok == false when the term does not mention that axis.
//
// The axis symbol is located as an [expr.Axis] token, so identifiers such
// as sin or xi never match. The text before and after it become the
// coefficient: "2*i*x" gives "(2)*(x)", "y*i" gives "y", a bare "i" gives
// "1" and a negative term is wrapped as "-(...)". When the symbol sits in a
// parenthesised group, the group's own coefficient takes the place of 1.
func Extract(term string, axis Axis) (coef string, ok bool, err error) {
	s := strings.Join(strings.Fields(term), "")
	negative := false
	for len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		negative = negative != (s[0] == '-')
		s = s[1:]
	}
	s = unwrap(s)

	toks, err := expr.Tokenize(s)
	if err != nil {
		return "", false, failf(term, err)
	}
	match, err := matchParens(toks)
	if err != nil {
		return "", false, failf(term, err)
	}

	sym := axis.Symbol()
	lo, hi := -1, -1
	coef = "1"
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		switch {
		case t.Kind == expr.Axis && t.Text == sym:
			if lo >= 0 {
				return "", false, failf(term, ErrRepeatedAxis)
			}
			lo, hi = t.Pos, t.End
		case t.Kind == expr.LParen:
			closing := match[i]
			if !hasSymbol(toks[i+1:closing], sym) {
				i = closing
				continue
			}
			if i > 0 && toks[i-1].Kind == expr.Ident {
				return "", false, failf(term, ErrAxisInCall)
			}
			if lo >= 0 {
				return "", false, failf(term, ErrRepeatedAxis)
			}
			inner, found, err := coefficient(s[t.End:toks[closing].Pos], axis)
			if err != nil {
				return "", false, err
			}
			if found {
				lo, hi, coef = t.Pos, toks[closing].End, inner
			}
			i = closing
		}
	}
	if lo < 0 {
		return "", false, nil
	}

	before, after := s[:lo], s[hi:]
	if strings.HasSuffix(before, "-") || strings.HasSuffix(before, "+") {
		negative = negative != strings.HasSuffix(before, "-")
		before = before[:len(before)-1]
	}
	switch {
	case strings.HasSuffix(before, "/"):
		return "", false, failf(term, ErrAxisDivisor)
	case strings.HasSuffix(before, "^"), strings.HasPrefix(after, "^"):
		return "", false, failf(term, ErrAxisExponent)
	}
	before = strings.TrimSuffix(before, "*")
	after = strings.TrimPrefix(after, "*")

	coef = combine(before, coef, after)
	if negative {
		coef = "-(" + coef + ")"
	}
	return coef, true, nil
}

func combine(before, coef, after string) string {
	num := before
	if coef != One {
		if num == "" {
			num = coef
		} else {
			num = "(" + num + ")*(" + coef + ")"
		}
	}
	switch {
	case strings.HasPrefix(after, "/"):
		if num == "" {
			num = One
		}
		return "(" + num + ")" + after
	case num == "" && after == "":
		return One
	case num == "":
		return after
	case after == "":
		return num
	}
	return "(" + num + ")*(" + after + ")"
}

// coefficient decomposes a sub-expression for a single axis.
func coefficient(src string, axis Axis) (string, bool, error) {
	pre, err := Distribute(src)
	if err != nil {
		return "", false, err
	}
	acc, found := Zero, false
	for _, term := range Split(pre) {
		c, ok, err := Extract(term.String(), axis)
		if err != nil {
			return "", false, err
		}
		if ok {
			acc, found = Accumulate(acc, c), true
		}
	}
	return acc, found, nil
}

// unwrap strips one pair of parentheses enclosing all of s, unless the
// enclosed text is itself a sum.
func unwrap(s string) string {
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return s
	}
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && i < len(s)-1 {
				return s
			}
		}
	}
	inner := s[1 : len(s)-1]
	if depth != 0 || len(Split(inner)) > 1 {
		return s
	}
	return inner
}

func hasSymbol(toks []expr.Token, sym string) bool {
	for _, t := range toks {
		if t.Kind == expr.Axis && t.Text == sym {
			return true
		}
	}
	return false
}
