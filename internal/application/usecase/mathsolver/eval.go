package mathsolver

import (
	"fmt"
	"math"
	"strconv"
)

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokPercent
	tokPower
	tokLParen
	tokRParen
)

type token struct {
	kind  tokenKind
	value float64
}

func tokenize(expr string) ([]token, error) {
	var tokens []token

	i := 0
	for i < len(expr) {
		c := expr[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '+':
			tokens = append(tokens, token{kind: tokPlus})
			i++
		case c == '-':
			tokens = append(tokens, token{kind: tokMinus})
			i++
		case c == '*':
			if i+1 < len(expr) && expr[i+1] == '*' {
				tokens = append(tokens, token{kind: tokPower})
				i += 2
			} else {
				tokens = append(tokens, token{kind: tokStar})
				i++
			}
		case c == '/':
			tokens = append(tokens, token{kind: tokSlash})
			i++
		case c == '%':
			tokens = append(tokens, token{kind: tokPercent})
			i++
		case c == '(':
			tokens = append(tokens, token{kind: tokLParen})
			i++
		case c == ')':
			tokens = append(tokens, token{kind: tokRParen})
			i++
		case c >= '0' && c <= '9' || c == '.':
			lit, width, err := scanNumber(expr[i:])
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{kind: tokNumber, value: lit})
			i += width
		default:
			return nil, fmt.Errorf("unexpected character %q", c)
		}
	}

	return tokens, nil
}

// scanNumber consumes a decimal literal with an optional signed exponent,
// like 12, 3., .75 or 1.5e-3.
func scanNumber(s string) (float64, int, error) {
	i := 0
	for i < len(s) && (s[i] >= '0' && s[i] <= '9' || s[i] == '.') {
		i++
	}

	// Optional exponent: only consumed when a digit follows, so a stray
	// trailing "e" is left for the tokenizer to reject.
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && s[j] >= '0' && s[j] <= '9' {
			for j < len(s) && s[j] >= '0' && s[j] <= '9' {
				j++
			}
			i = j
		}
	}

	value, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed number %q", s[:i])
	}
	return value, i, nil
}

// parser is a recursive-descent evaluator with Python-style precedence:
// power binds tighter than unary minus on its left, and the exponent side
// may itself contain a unary sign.
type parser struct {
	tokens []token
	pos    int
}

func (p *parser) done() bool {
	return p.pos >= len(p.tokens)
}

func (p *parser) peek() (token, bool) {
	if p.done() {
		return token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) parseExpr() (float64, error) {
	left, err := p.parseTerm()
	if err != nil {
		return 0, err
	}

	for {
		tok, ok := p.peek()
		if !ok || (tok.kind != tokPlus && tok.kind != tokMinus) {
			return left, nil
		}
		p.pos++

		right, err := p.parseTerm()
		if err != nil {
			return 0, err
		}
		if tok.kind == tokPlus {
			left += right
		} else {
			left -= right
		}
	}
}

func (p *parser) parseTerm() (float64, error) {
	left, err := p.parseFactor()
	if err != nil {
		return 0, err
	}

	for {
		tok, ok := p.peek()
		if !ok || (tok.kind != tokStar && tok.kind != tokSlash && tok.kind != tokPercent) {
			return left, nil
		}
		p.pos++

		right, err := p.parseFactor()
		if err != nil {
			return 0, err
		}

		switch tok.kind {
		case tokStar:
			left *= right
		case tokSlash:
			if right == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			left /= right
		case tokPercent:
			if right == 0 {
				return 0, fmt.Errorf("modulo by zero")
			}
			left = math.Mod(left, right)
		}
	}
}

func (p *parser) parseFactor() (float64, error) {
	tok, ok := p.peek()
	if ok && (tok.kind == tokPlus || tok.kind == tokMinus) {
		p.pos++
		value, err := p.parseFactor()
		if err != nil {
			return 0, err
		}
		if tok.kind == tokMinus {
			value = -value
		}
		return value, nil
	}

	return p.parsePower()
}

func (p *parser) parsePower() (float64, error) {
	base, err := p.parseAtom()
	if err != nil {
		return 0, err
	}

	tok, ok := p.peek()
	if !ok || tok.kind != tokPower {
		return base, nil
	}
	p.pos++

	exponent, err := p.parseFactor()
	if err != nil {
		return 0, err
	}
	return math.Pow(base, exponent), nil
}

func (p *parser) parseAtom() (float64, error) {
	tok, ok := p.peek()
	if !ok {
		return 0, fmt.Errorf("unexpected end of expression")
	}

	switch tok.kind {
	case tokNumber:
		p.pos++
		return tok.value, nil
	case tokLParen:
		p.pos++
		value, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		closing, ok := p.peek()
		if !ok || closing.kind != tokRParen {
			return 0, fmt.Errorf("missing closing parenthesis")
		}
		p.pos++
		return value, nil
	default:
		return 0, fmt.Errorf("unexpected token")
	}
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
