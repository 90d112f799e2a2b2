package expr

import (
	"fmt"
	"math"
)

// Node is an evaluable expression tree.
type Node interface {
	Eval() (float64, error)
	String() string
}

// Literal is a numeric constant.
type Literal float64

func (l Literal) Eval() (float64, error) {
	return float64(l), nil
}

func (l Literal) String() string {
	return FormatNumber(float64(l))
}

// Unary is a sign applied to an operand.
type Unary struct {
	Op Kind
	X  Node
}

func (u *Unary) Eval() (float64, error) {
	v, err := u.X.Eval()
	if err != nil {
		return 0, err
	}
	if u.Op == Minus {
		return -v, nil
	}
	return v, nil
}

func (u *Unary) String() string {
	return fmt.Sprintf("(%s%s)", u.Op.symbol(), u.X)
}

// Binary is an arithmetic operation on two operands.
type Binary struct {
	Op          Kind
	Left, Right Node
}

func (b *Binary) Eval() (float64, error) {
	x, err := b.Left.Eval()
	if err != nil {
		return 0, err
	}
	y, err := b.Right.Eval()
	if err != nil {
		return 0, err
	}

	var v float64
	switch b.Op {
	case Plus:
		v = x + y
	case Minus:
		v = x - y
	case Star:
		v = x * y
	case Slash:
		if y == 0 {
			return 0, ErrDivisionByZero
		}
		v = x / y
	default:
		return 0, fmt.Errorf("invalid operator %s", b.Op)
	}

	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, ErrOverflow
	}
	return v, nil
}

func (b *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op.symbol(), b.Right)
}

func (k Kind) symbol() string {
	switch k {
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Star:
		return "*"
	case Slash:
		return "/"
	}
	return "?"
}
