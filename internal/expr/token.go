package expr

import (
	"fmt"
	"strings"
)

type Kind int

const (
	EOF Kind = iota
	Number
	Ident
	Axis
	Op
	LParen
	RParen
	Comma
)

var kindNames = [...]string{"EOF", "Number", "Ident", "Axis", "Op", "LParen", "RParen", "Comma"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is a lexeme with its byte span [Pos, End) in the source.
type Token struct {
	Kind Kind
	Text string
	Pos  int
	End  int
}

func (t Token) Is(k Kind, text string) bool {
	return t.Kind == k && t.Text == text
}

// IsAxisSymbol reports whether name is one of the reserved unit-vector
// symbols i, j, k.
func IsAxisSymbol(name string) bool {
	return name == "i" || name == "j" || name == "k"
}

// Tokenize splits src into tokens. The returned slice always ends with an
// EOF token positioned at len(src).
func Tokenize(src string) ([]Token, error) {
	toks := make([]Token, 0, len(src)/2+1)
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case isDigit(c) || (c == '.' && i+1 < len(src) && isDigit(src[i+1])):
			end := scanNumber(src, i)
			toks = append(toks, Token{Kind: Number, Text: src[i:end], Pos: i, End: end})
			i = end
		case isLetter(c):
			end := i + 1
			for end < len(src) && (isLetter(src[end]) || isDigit(src[end])) {
				end++
			}
			kind := Ident
			if IsAxisSymbol(src[i:end]) {
				kind = Axis
			}
			toks = append(toks, Token{Kind: kind, Text: src[i:end], Pos: i, End: end})
			i = end
		case strings.IndexByte("+-*/^", c) >= 0:
			toks = append(toks, Token{Kind: Op, Text: src[i : i+1], Pos: i, End: i + 1})
			i++
		case c == '(':
			toks = append(toks, Token{Kind: LParen, Text: "(", Pos: i, End: i + 1})
			i++
		case c == ')':
			toks = append(toks, Token{Kind: RParen, Text: ")", Pos: i, End: i + 1})
			i++
		case c == ',':
			toks = append(toks, Token{Kind: Comma, Text: ",", Pos: i, End: i + 1})
			i++
		default:
			return nil, &ParseError{Pos: i, Msg: fmt.Sprintf("unexpected character %q", c)}
		}
	}
	toks = append(toks, Token{Kind: EOF, Pos: len(src), End: len(src)})
	return toks, nil
}

func scanNumber(src string, i int) int {
	for i < len(src) && isDigit(src[i]) {
		i++
	}
	if i < len(src) && src[i] == '.' {
		i++
		for i < len(src) && isDigit(src[i]) {
			i++
		}
	}
	// exponent only when digits follow, so "2e" stays 2*e
	if i < len(src) && (src[i] == 'e' || src[i] == 'E') {
		j := i + 1
		if j < len(src) && (src[j] == '+' || src[j] == '-') {
			j++
		}
		if j < len(src) && isDigit(src[j]) {
			for j < len(src) && isDigit(src[j]) {
				j++
			}
			i = j
		}
	}
	return i
}

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' }
