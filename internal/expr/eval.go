// Package expr parses and evaluates the arithmetic accepted by the calculator
// keypad: decimal literals, unary signs, + - * / and parentheses.
//
// Nothing outside that grammar is interpreted; input is never executed.
package expr

import (
	"math"
	"strconv"
	"strings"
)

// Evaluate parses src and computes its value.
func Evaluate(src string) (float64, error) {
	n, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return n.Eval()
}

// FormatNumber renders v the way a browser would print a JavaScript number:
// shortest round-trip digits, exponent form outside [1e-6, 1e21).
func FormatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		return trimExponent(strconv.FormatFloat(v, 'e', -1, 64))
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// trimExponent turns Go's "1e-07" into "1e-7".
func trimExponent(s string) string {
	i := strings.IndexByte(s, 'e')
	if i < 0 || i+2 >= len(s) {
		return s
	}
	mant, sign, digits := s[:i], s[i+1], strings.TrimLeft(s[i+2:], "0")
	if digits == "" {
		digits = "0"
	}
	return mant + "e" + string(sign) + digits
}
