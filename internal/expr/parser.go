package expr

import (
	"fmt"
	"strconv"
)

// Parse builds the syntax tree of a scalar expression.
//
// Precedence from loosest to tightest: + -, * / (and implicit
// multiplication of adjacent operands), unary + -, ^ (right associative).
func Parse(src string) (Node, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	if p.peek().Kind == EOF {
		return nil, &ParseError{Pos: 0, Msg: "empty expression"}
	}
	n, err := p.sum()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.Kind != EOF {
		return nil, &ParseError{Pos: t.Pos, Msg: fmt.Sprintf("unexpected %q", t.Text)}
	}
	return n, nil
}

type parser struct {
	toks []Token
	i    int
}

func (p *parser) peek() Token { return p.toks[p.i] }

func (p *parser) next() Token {
	t := p.toks[p.i]
	if t.Kind != EOF {
		p.i++
	}
	return t
}

func (p *parser) sum() (Node, error) {
	l, err := p.product()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if !t.Is(Op, "+") && !t.Is(Op, "-") {
			return l, nil
		}
		p.next()
		r, err := p.product()
		if err != nil {
			return nil, err
		}
		l = &Binary{Op: t.Text[0], L: l, R: r}
	}
}

func (p *parser) product() (Node, error) {
	l, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		switch {
		case t.Is(Op, "*") || t.Is(Op, "/"):
			p.next()
			r, err := p.unary()
			if err != nil {
				return nil, err
			}
			l = &Binary{Op: t.Text[0], L: l, R: r}
		case t.Kind == Number || t.Kind == Ident || t.Kind == Axis || t.Kind == LParen:
			r, err := p.power()
			if err != nil {
				return nil, err
			}
			l = &Binary{Op: '*', L: l, R: r}
		default:
			return l, nil
		}
	}
}

func (p *parser) unary() (Node, error) {
	t := p.peek()
	if t.Is(Op, "-") || t.Is(Op, "+") {
		p.next()
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: t.Text[0], X: x}, nil
	}
	return p.power()
}

func (p *parser) power() (Node, error) {
	base, err := p.primary()
	if err != nil {
		return nil, err
	}
	if !p.peek().Is(Op, "^") {
		return base, nil
	}
	p.next()
	exp, err := p.unary()
	if err != nil {
		return nil, err
	}
	return &Binary{Op: '^', L: base, R: exp}, nil
}

func (p *parser) primary() (Node, error) {
	t := p.next()
	switch t.Kind {
	case Number:
		v, err := strconv.ParseFloat(t.Text, 64)
		if err != nil {
			return nil, &ParseError{Pos: t.Pos, Msg: fmt.Sprintf("bad number %q", t.Text)}
		}
		return &Num{Value: v}, nil
	case Axis:
		return &Var{Name: t.Text}, nil
	case Ident:
		if p.peek().Kind == LParen {
			p.next()
			args, err := p.args()
			if err != nil {
				return nil, err
			}
			return &Call{Fn: t.Text, Args: args}, nil
		}
		return &Var{Name: t.Text}, nil
	case LParen:
		n, err := p.sum()
		if err != nil {
			return nil, err
		}
		if c := p.next(); c.Kind != RParen {
			return nil, &ParseError{Pos: c.Pos, Msg: "missing )"}
		}
		return n, nil
	case EOF:
		return nil, &ParseError{Pos: t.Pos, Msg: "unexpected end of expression"}
	}
	return nil, &ParseError{Pos: t.Pos, Msg: fmt.Sprintf("unexpected %q", t.Text)}
}

func (p *parser) args() ([]Node, error) {
	var args []Node
	if p.peek().Kind == RParen {
		p.next()
		return args, nil
	}
	for {
		a, err := p.sum()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		switch t := p.next(); t.Kind {
		case Comma:
		case RParen:
			return args, nil
		default:
			return nil, &ParseError{Pos: t.Pos, Msg: "expected , or ) in argument list"}
		}
	}
}
