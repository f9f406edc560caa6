package executor

import (
	"cmp"
	"fmt"
	"math"
	"strings"

	"go.creack.net/slang/ast"
)

// maxStringLen bounds the strings a program can build.
const maxStringLen = 1 << 30

// binaryOp applies op with Python 3 semantics.
func binaryOp(op ast.Operator, left, right Value) (Value, error) {
	if op.IsComparison() {
		return compare(op, left, right)
	}

	if op == ast.OpAdd {
		if l, ok := left.(String); ok {
			if r, ok := right.(String); ok {
				if len(l)+len(r) > maxStringLen {
					return nil, fmt.Errorf("%w: string of %d bytes", ErrOverflow, len(l)+len(r))
				}
				return l + r, nil
			}
		}
	}
	if op == ast.OpMul {
		if s, ok := left.(String); ok {
			if n, ok := integral(right); ok {
				return repeat(s, n)
			}
		}
		if s, ok := right.(String); ok {
			if n, ok := integral(left); ok {
				return repeat(s, n)
			}
		}
	}

	li, lf, lFloat, lok := number(left)
	ri, rf, rFloat, rok := number(right)
	if !lok || !rok {
		return nil, fmt.Errorf("%w: unsupported operand types for %s: %q and %q", ErrType, op, typeName(left), typeName(right))
	}

	if op == ast.OpDiv {
		if rf == 0 {
			return nil, fmt.Errorf("%w: %s / %s", ErrDivisionByZero, left, right)
		}
		return Float(lf / rf), nil
	}

	if lFloat || rFloat {
		switch op {
		case ast.OpAdd:
			return Float(lf + rf), nil
		case ast.OpSub:
			return Float(lf - rf), nil
		case ast.OpMul:
			return Float(lf * rf), nil
		}
	} else {
		var (
			res int64
			ok  bool
		)
		switch op {
		case ast.OpAdd:
			res, ok = addInt(li, ri)
		case ast.OpSub:
			res, ok = subInt(li, ri)
		case ast.OpMul:
			res, ok = mulInt(li, ri)
		default:
			return nil, fmt.Errorf("%w: unknown operator %d", ErrInternalNode, op)
		}
		if !ok {
			return nil, fmt.Errorf("%w: %s %s %s does not fit in 64 bits", ErrOverflow, left, op, right)
		}
		return Int(res), nil
	}
	return nil, fmt.Errorf("%w: unknown operator %d", ErrInternalNode, op)
}

func addInt(a, b int64) (int64, bool) {
	c := a + b
	return c, (c > a) == (b > 0)
}

func subInt(a, b int64) (int64, bool) {
	c := a - b
	return c, (c < a) == (b > 0)
}

func mulInt(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	c := a * b
	return c, c/b == a
}

func repeat(s String, n int64) (Value, error) {
	if n <= 0 || len(s) == 0 {
		return String(""), nil
	}
	if n > int64(maxStringLen/len(s)) {
		return nil, fmt.Errorf("%w: repeating a %d byte string %d times", ErrOverflow, len(s), n)
	}
	return String(strings.Repeat(string(s), int(n))), nil
}

func compare(op ast.Operator, left, right Value) (Value, error) {
	var order int
	li, lf, lFloat, lok := number(left)
	ri, rf, rFloat, rok := number(right)
	ls, lStr := left.(String)
	rs, rStr := right.(String)
	_, lNone := left.(None)
	_, rNone := right.(None)

	switch {
	case lok && rok && !lFloat && !rFloat:
		order = cmp.Compare(li, ri)
	case lok && rok:
		if math.IsNaN(lf) || math.IsNaN(rf) {
			return Bool(op == ast.OpNe), nil
		}
		order = cmp.Compare(lf, rf)
	case lStr && rStr:
		order = strings.Compare(string(ls), string(rs))
	case lNone && rNone && (op == ast.OpEq || op == ast.OpNe):
		return Bool(op == ast.OpEq), nil
	case op == ast.OpEq:
		return Bool(false), nil
	case op == ast.OpNe:
		return Bool(true), nil
	default:
		return nil, fmt.Errorf("%w: %q not supported between %q and %q", ErrType, op, typeName(left), typeName(right))
	}

	switch op {
	case ast.OpLt:
		return Bool(order < 0), nil
	case ast.OpGt:
		return Bool(order > 0), nil
	case ast.OpLe:
		return Bool(order <= 0), nil
	case ast.OpGe:
		return Bool(order >= 0), nil
	case ast.OpEq:
		return Bool(order == 0), nil
	case ast.OpNe:
		return Bool(order != 0), nil
	}
	return nil, fmt.Errorf("%w: unknown comparison %d", ErrInternalNode, op)
}
