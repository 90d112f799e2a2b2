package expr

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Parser is a recursive-descent parser over the token stream of one expression.
//
//	expr    := term   (('+' | '-') term)*
//	term    := unary  (('*' | '/') unary)*
//	unary   := ('+' | '-') unary | primary
//	primary := NUMBER | '(' expr ')'
type Parser struct {
	toks []Token
	pos  int
}

// NewParser lexes src and returns a parser positioned at its first token.
func NewParser(src string) (*Parser, error) {
	toks, err := Lex(src)
	if err != nil {
		return nil, err
	}
	return &Parser{toks: toks}, nil
}

// Parse parses src into an expression tree.
func Parse(src string) (Node, error) {
	p, err := NewParser(src)
	if err != nil {
		return nil, err
	}
	return p.Parse()
}

// Parse consumes the whole token stream.
func (p *Parser) Parse() (Node, error) {
	if p.peek().Kind == EOF {
		return nil, ErrEmpty
	}
	n, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.Kind != EOF {
		return nil, &SyntaxError{Pos: t.Pos, Msg: "unexpected " + describe(t)}
	}
	return n, nil
}

func (p *Parser) peek() Token {
	return p.toks[p.pos]
}

func (p *Parser) next() Token {
	t := p.toks[p.pos]
	if t.Kind != EOF {
		p.pos++
	}
	return t
}

func (p *Parser) parseExpr() (Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		op := p.peek()
		if op.Kind != Plus && op.Kind != Minus {
			return left, nil
		}
		p.next()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op.Kind, Left: left, Right: right}
	}
}

func (p *Parser) parseTerm() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op := p.peek()
		if op.Kind != Star && op.Kind != Slash {
			return left, nil
		}
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op.Kind, Left: left, Right: right}
	}
}

func (p *Parser) parseUnary() (Node, error) {
	op := p.peek()
	if op.Kind != Plus && op.Kind != Minus {
		return p.parsePrimary()
	}
	p.next()
	x, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &Unary{Op: op.Kind, X: x}, nil
}

func (p *Parser) parsePrimary() (Node, error) {
	t := p.next()
	switch t.Kind {
	case Number:
		v, err := strconv.ParseFloat(t.Text, 64)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) && math.IsInf(v, 0) {
				return nil, ErrOverflow
			}
			// Underflow to zero is not an error; anything else is.
			if !errors.Is(err, strconv.ErrRange) {
				return nil, &SyntaxError{Pos: t.Pos, Msg: "malformed number " + quote(t.Text)}
			}
		}
		return Literal(v), nil
	case LParen:
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if c := p.next(); c.Kind != RParen {
			return nil, &SyntaxError{Pos: c.Pos, Msg: fmt.Sprintf("expected ')', found %s", describe(c))}
		}
		return inner, nil
	case EOF:
		return nil, &SyntaxError{Pos: t.Pos, Msg: "missing operand at end of input"}
	default:
		return nil, &SyntaxError{Pos: t.Pos, Msg: "unexpected " + describe(t)}
	}
}

func describe(t Token) string {
	if t.Kind == Number {
		return "number " + quote(t.Text)
	}
	return t.Kind.String()
}
