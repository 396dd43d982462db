package decompose

import (
	"strings"

	"github.com/san-kum/fieldviz/internal/expr"
)

// Distribute rewrites every parenthesised sum that carries an axis symbol
// and is divided by a single operand into a sum of per-term quotients:
//
//	(i*y - j*x)/(x^2+y^2)  ->  +i*y/(x^2+y^2)-j*x/(x^2+y^2)
//	(i + j)/sqrt(r)        ->  +i/sqrt(r)+j/sqrt(r)
//
// The denominator may be a call, a parenthesised group, an identifier or a
// number, optionally raised to a power. The group must stand at the start
// of a term and the quotient must end it; anything else is left as is.
// Group contents are distributed first, so nested quotients are rewritten
// too. Text outside rewritten regions is copied unchanged.
func Distribute(src string) (string, error) {
	toks, err := expr.Tokenize(src)
	if err != nil {
		return "", failf(src, err)
	}
	match, err := matchParens(toks)
	if err != nil {
		return "", failf(src, err)
	}

	var out strings.Builder
	last := 0
	for i := 0; i < len(toks); i++ {
		if toks[i].Kind != expr.LParen {
			continue
		}
		signAt, ok := termStart(toks, i)
		if !ok {
			continue
		}
		closing := match[i]
		if !toks[closing+1].Is(expr.Op, "/") || !hasAxis(toks[i+1:closing]) {
			continue
		}
		denEnd, ok := operandEnd(toks, match, closing+2)
		if !ok || !endsTerm(toks[denEnd]) {
			continue
		}
		den := toks[closing+2 : denEnd]
		if hasAxis(den) {
			return "", failf(src, ErrAxisDivisor)
		}

		inner, err := Distribute(src[toks[i].End:toks[closing].Pos])
		if err != nil {
			return "", err
		}
		outer := byte('+')
		from := toks[i].Pos
		if signAt >= 0 {
			outer = toks[signAt].Text[0]
			from = toks[signAt].Pos
		}
		denText := src[den[0].Pos:den[len(den)-1].End]

		out.WriteString(src[last:from])
		for _, term := range Split(inner) {
			sign := term.Sign
			if outer == '-' {
				sign = flip(sign)
			}
			out.WriteByte(sign)
			out.WriteString(term.Body)
			out.WriteByte('/')
			out.WriteString(denText)
		}
		last = toks[denEnd-1].End
		i = denEnd - 1
	}
	out.WriteString(src[last:])
	return out.String(), nil
}

// matchParens maps the index of every parenthesis token to its partner.
func matchParens(toks []expr.Token) (map[int]int, error) {
	match := make(map[int]int)
	var stack []int
	for i, t := range toks {
		switch t.Kind {
		case expr.LParen:
			stack = append(stack, i)
		case expr.RParen:
			if len(stack) == 0 {
				return nil, ErrUnbalanced
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			match[open], match[i] = i, open
		}
	}
	if len(stack) != 0 {
		return nil, ErrUnbalanced
	}
	return match, nil
}

// termStart reports whether the token at i begins a term. signAt is the
// index of a binary or leading sign in front of it, or -1.
func termStart(toks []expr.Token, i int) (signAt int, ok bool) {
	if i == 0 {
		return -1, true
	}
	prev := toks[i-1]
	switch {
	case prev.Kind == expr.LParen || prev.Kind == expr.Comma:
		return -1, true
	case prev.Is(expr.Op, "+") || prev.Is(expr.Op, "-"):
		// a sign right after another operator is unary
		if i >= 2 && toks[i-2].Kind == expr.Op {
			return -1, false
		}
		return i - 1, true
	}
	return -1, false
}

// operandEnd returns the index just past the operand starting at j.
func operandEnd(toks []expr.Token, match map[int]int, j int) (int, bool) {
	var end int
	switch t := toks[j]; t.Kind {
	case expr.Number, expr.Axis:
		end = j + 1
	case expr.Ident:
		end = j + 1
		if toks[end].Kind == expr.LParen {
			end = match[end] + 1
		}
	case expr.LParen:
		end = match[j] + 1
	default:
		return 0, false
	}
	if toks[end].Is(expr.Op, "^") {
		return operandEnd(toks, match, end+1)
	}
	return end, true
}

func endsTerm(t expr.Token) bool {
	return t.Kind == expr.EOF || t.Kind == expr.RParen || t.Kind == expr.Comma ||
		t.Is(expr.Op, "+") || t.Is(expr.Op, "-")
}

func hasAxis(toks []expr.Token) bool {
	for _, t := range toks {
		if t.Kind == expr.Axis {
			return true
		}
	}
	return false
}
