package compiler

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrOverflow       = errors.New("integer overflow")
	ErrDivisionByZero = errors.New("division by zero")
	ErrUnknownOp      = errors.New("unknown operator")
)

// Apply evaluates x op y on int64 and reports overflow instead of wrapping.
func Apply(op string, x, y int64) (int64, error) {
	switch op {
	case "+":
		r := x + y
		if (r > x) != (y > 0) {
			return 0, fmt.Errorf("%w: %d + %d", ErrOverflow, x, y)
		}
		return r, nil
	case "-":
		r := x - y
		if (r < x) != (y > 0) {
			return 0, fmt.Errorf("%w: %d - %d", ErrOverflow, x, y)
		}
		return r, nil
	case "*":
		if x == 0 || y == 0 {
			return 0, nil
		}
		r := x * y
		if r/y != x || (x == -1 && y == math.MinInt64) || (y == -1 && x == math.MinInt64) {
			return 0, fmt.Errorf("%w: %d * %d", ErrOverflow, x, y)
		}
		return r, nil
	case "/", "%":
		if y == 0 {
			return 0, ErrDivisionByZero
		}
		if x == math.MinInt64 && y == -1 {
			if op == "%" {
				return 0, nil
			}
			return 0, fmt.Errorf("%w: %d / %d", ErrOverflow, x, y)
		}
		if op == "/" {
			return x / y, nil
		}
		return x % y, nil
	default:
		return 0, fmt.Errorf("%w %q", ErrUnknownOp, op)
	}
}

// Negate returns -x and reports overflow for math.MinInt64.
func Negate(x int64) (int64, error) {
	if x == math.MinInt64 {
		return 0, fmt.Errorf("%w: -(%d)", ErrOverflow, x)
	}
	return -x, nil
}
