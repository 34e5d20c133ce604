package qmood

import (
	"fmt"
	"strconv"
	"unicode"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenNumber
	tokenIdent
	tokenOp
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func tokenize(src string) ([]token, error) {
	runes := []rune(src)
	tokens := make([]token, 0, len(runes)/2)

	for i := 0; i < len(runes); {
		r := runes[i]

		switch {
		case unicode.IsSpace(r):
			i++

		case r == '+' || r == '-' || r == '*' || r == '/' || r == '(' || r == ')':
			tokens = append(tokens, token{kind: tokenOp, text: string(r), pos: i})
			i++

		case unicode.IsDigit(r) || r == '.':
			start := i
			for i < len(runes) && (unicode.IsDigit(runes[i]) || runes[i] == '.') {
				i++
			}
			// exponent: 1e-3, 2E+4
			if i < len(runes) && (runes[i] == 'e' || runes[i] == 'E') {
				j := i + 1
				if j < len(runes) && (runes[j] == '+' || runes[j] == '-') {
					j++
				}
				if j < len(runes) && unicode.IsDigit(runes[j]) {
					i = j
					for i < len(runes) && unicode.IsDigit(runes[i]) {
						i++
					}
				}
			}
			tokens = append(tokens, token{kind: tokenNumber, text: string(runes[start:i]), pos: start})

		case r == '_' || unicode.IsLetter(r):
			start := i
			for i < len(runes) && (runes[i] == '_' || unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i])) {
				i++
			}
			tokens = append(tokens, token{kind: tokenIdent, text: string(runes[start:i]), pos: start})

		default:
			return nil, fmt.Errorf("%w: unexpected character %q at offset %d", ErrInvalidFormula, r, i)
		}
	}

	return append(tokens, token{kind: tokenEOF, pos: len(runes)}), nil
}

// linear is a constant plus coefficient-weighted columns
type linear struct {
	terms    []Term
	constant float64
}

func (l linear) isConstant() bool {
	return len(l.terms) == 0
}

func (l linear) scale(k float64) linear {
	out := linear{terms: make([]Term, len(l.terms)), constant: l.constant * k}
	for i, term := range l.terms {
		out.terms[i] = Term{Coefficient: term.Coefficient * k, Column: term.Column}
	}

	return out
}

func (l linear) plus(other linear) linear {
	terms := make([]Term, 0, len(l.terms)+len(other.terms))
	terms = append(terms, l.terms...)
	terms = append(terms, other.terms...)

	return linear{terms: terms, constant: l.constant + other.constant}
}

// parser is a recursive-descent parser over:
//
//	expr    = product { ("+" | "-") product }
//	product = unary { ("*" | "/") unary }
//	unary   = ("+" | "-") unary | primary
//	primary = number | ident | "(" expr ")"
type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokenEOF {
		p.pos++
	}

	return tok
}

func (p *parser) isOp(text string) bool {
	tok := p.peek()
	return tok.kind == tokenOp && tok.text == text
}

func (p *parser) parseExpr() (linear, error) {
	left, err := p.parseProduct()
	if err != nil {
		return linear{}, err
	}

	for p.isOp("+") || p.isOp("-") {
		op := p.next()

		right, err := p.parseProduct()
		if err != nil {
			return linear{}, err
		}

		if op.text == "-" {
			right = right.scale(-1)
		}
		left = left.plus(right)
	}

	return left, nil
}

func (p *parser) parseProduct() (linear, error) {
	left, err := p.parseUnary()
	if err != nil {
		return linear{}, err
	}

	for p.isOp("*") || p.isOp("/") {
		op := p.next()

		right, err := p.parseUnary()
		if err != nil {
			return linear{}, err
		}

		switch {
		case op.text == "/":
			if !right.isConstant() {
				return linear{}, fmt.Errorf("%w: division by a column at offset %d", ErrNonLinear, op.pos)
			}
			if right.constant == 0 {
				return linear{}, fmt.Errorf("%w: division by zero at offset %d", ErrInvalidFormula, op.pos)
			}
			left = left.scale(1 / right.constant)
		case right.isConstant():
			left = left.scale(right.constant)
		case left.isConstant():
			left = right.scale(left.constant)
		default:
			return linear{}, fmt.Errorf("%w: product of columns at offset %d", ErrNonLinear, op.pos)
		}
	}

	return left, nil
}

func (p *parser) parseUnary() (linear, error) {
	if p.isOp("+") {
		p.next()
		return p.parseUnary()
	}

	if p.isOp("-") {
		p.next()

		operand, err := p.parseUnary()
		if err != nil {
			return linear{}, err
		}

		return operand.scale(-1), nil
	}

	return p.parsePrimary()
}

func (p *parser) parsePrimary() (linear, error) {
	tok := p.next()

	switch tok.kind {
	case tokenNumber:
		v, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return linear{}, fmt.Errorf("%w: bad number %q at offset %d", ErrInvalidFormula, tok.text, tok.pos)
		}
		return linear{constant: v}, nil

	case tokenIdent:
		return linear{terms: []Term{{Coefficient: 1, Column: tok.text}}}, nil

	case tokenOp:
		if tok.text == "(" {
			inner, err := p.parseExpr()
			if err != nil {
				return linear{}, err
			}
			if !p.isOp(")") {
				return linear{}, fmt.Errorf("%w: missing ')' at offset %d", ErrInvalidFormula, p.peek().pos)
			}
			p.next()
			return inner, nil
		}
	}

	if tok.kind == tokenEOF {
		return linear{}, fmt.Errorf("%w: unexpected end of formula", ErrInvalidFormula)
	}

	return linear{}, fmt.Errorf("%w: unexpected %q at offset %d", ErrInvalidFormula, tok.text, tok.pos)
}
