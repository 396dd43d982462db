package decompose

import "strings"

// Term is a signed top-level additive fragment of an expression.
type Term struct {
	Sign byte // '+' or '-'
	Body string
}

func (t Term) String() string { return string(t.Sign) + t.Body }

// Split breaks expr into its terms at every + or - found outside
// parentheses. A sign directly following *, / or ^ is unary and stays in
// the term, as does the sign of a numeric exponent like 2e-3. Consecutive
// signs fold into one. Whitespace-only terms are dropped and a final
// unclosed depth is tolerated.
func Split(expr string) []Term {
	var terms []Term
	depth := 0
	sign := byte('+')
	start := 0
	for i := 0; i < len(expr); i++ {
		c := expr[i]
		switch c {
		case '(':
			depth++
		case ')':
			depth--
		case '+', '-':
			if depth != 0 || unarySign(expr, start, i) {
				continue
			}
			body := strings.TrimSpace(expr[start:i])
			if body == "" {
				// leading or doubled sign
				if c == '-' {
					sign = flip(sign)
				}
			} else {
				terms = append(terms, Term{Sign: sign, Body: body})
				sign = c
			}
			start = i + 1
		}
	}
	if body := strings.TrimSpace(expr[start:]); body != "" {
		terms = append(terms, Term{Sign: sign, Body: body})
	}
	return terms
}

func unarySign(expr string, start, i int) bool {
	j := i - 1
	for j >= start && expr[j] == ' ' {
		j--
	}
	if j < start {
		return false
	}
	switch expr[j] {
	case '*', '/', '^':
		return true
	case 'e', 'E':
		return j > start && isDigit(expr[j-1]) && i+1 < len(expr) && isDigit(expr[i+1]) && numericRun(expr, start, j)
	}
	return false
}

// numericRun reports whether the characters before the exponent marker at
// j form a number rather than the tail of an identifier.
func numericRun(expr string, start, j int) bool {
	k := j - 1
	for k >= start && (isDigit(expr[k]) || expr[k] == '.') {
		k--
	}
	return k < start || !isLetter(expr[k])
}

func flip(sign byte) byte {
	if sign == '-' {
		return '+'
	}
	return '-'
}

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' }
