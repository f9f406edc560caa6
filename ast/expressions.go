package ast

import (
	"math"
	"strconv"
	"strings"
)

type BinOp struct {
	Left     Expr
	Operator Operator
	Right    Expr
}

func (*BinOp) expr() {}

type Var struct {
	Name string
}

func (*Var) expr() {}

// NumberLiteral holds either an integer or a float, as written.
type NumberLiteral struct {
	IsFloat bool
	Int     int64
	Float   float64
}

func (*NumberLiteral) expr() {}

// Int returns an integer literal.
func Int(v int64) *NumberLiteral { return &NumberLiteral{Int: v} }

// Float returns a float literal.
func Float(v float64) *NumberLiteral { return &NumberLiteral{IsFloat: true, Float: v} }

// FormatFloat renders f the way Python's repr does: shortest round-trip
// digits, positional between 1e-4 and 1e16, always with a fraction or an
// exponent.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'e', -1, 64)
	exp, _ := strconv.Atoi(s[strings.IndexByte(s, 'e')+1:])
	if exp < -4 || exp >= 16 {
		return s
	}
	s = strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// StringLiteral holds the text between the quotes, verbatim.
type StringLiteral struct {
	Value string
}

func (*StringLiteral) expr() {}
