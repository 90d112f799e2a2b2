package expr

import (
	"fmt"
	"strings"
)

// Kind identifies the lexical class of a token.
type Kind int

const (
	EOF Kind = iota
	Number
	Plus
	Minus
	Star
	Slash
	LParen
	RParen
)

var kindNames = map[Kind]string{
	EOF:    "end of input",
	Number: "number",
	Plus:   "'+'",
	Minus:  "'-'",
	Star:   "'*'",
	Slash:  "'/'",
	LParen: "'('",
	RParen: "')'",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Token is a lexeme with its byte offset in the source.
type Token struct {
	Kind Kind
	Text string
	Pos  int
}

var operators = map[byte]Kind{
	'+': Plus,
	'-': Minus,
	'*': Star,
	'/': Slash,
	'(': LParen,
	')': RParen,
}

// Lex splits src into tokens. The returned slice always ends with an EOF token.
func Lex(src string) ([]Token, error) {
	var toks []Token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case isDigit(c) || c == '.':
			end, err := scanNumber(src, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, Token{Kind: Number, Text: src[i:end], Pos: i})
			i = end
		default:
			k, ok := operators[c]
			if !ok {
				return nil, &SyntaxError{Pos: i, Msg: fmt.Sprintf("unexpected character %q", rune(src[i]))}
			}
			toks = append(toks, Token{Kind: k, Text: string(c), Pos: i})
			i++
		}
	}
	toks = append(toks, Token{Kind: EOF, Pos: len(src)})
	return toks, nil
}

// scanNumber returns the end offset of the numeric literal starting at i.
func scanNumber(src string, i int) (int, error) {
	start := i
	intDigits := 0
	for i < len(src) && isDigit(src[i]) {
		i++
		intDigits++
	}
	fracDigits := 0
	if i < len(src) && src[i] == '.' {
		i++
		for i < len(src) && isDigit(src[i]) {
			i++
			fracDigits++
		}
	}
	if intDigits == 0 && fracDigits == 0 {
		return 0, &SyntaxError{Pos: start, Msg: "malformed number " + quote(src[start:i])}
	}
	if i < len(src) && (src[i] == 'e' || src[i] == 'E') {
		j := i + 1
		if j < len(src) && (src[j] == '+' || src[j] == '-') {
			j++
		}
		expDigits := 0
		for j < len(src) && isDigit(src[j]) {
			j++
			expDigits++
		}
		if expDigits == 0 {
			return 0, &SyntaxError{Pos: start, Msg: "malformed number " + quote(src[start:j])}
		}
		i = j
	}
	if i < len(src) && src[i] == '.' {
		return 0, &SyntaxError{Pos: i, Msg: "malformed number " + quote(src[start:i+1])}
	}
	return i, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func quote(s string) string {
	return "'" + strings.TrimSpace(s) + "'"
}
