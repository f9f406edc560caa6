// Package ast defines the typed syntax tree shared by the code generator
// and the interpreter, and builds it from a parse tree.
//
// The set of nodes is closed: Stmt and Expr can only be implemented by the
// pointer types of this package.
package ast

import (
	"github.com/kr/pretty"
)

// Stmt is a statement node.
type Stmt interface {
	stmt()
}

// Expr is an expression node.
type Expr interface {
	expr()
}

// Operator is a binary operator.
type Operator int

// Operators.
const (
	OpAdd Operator = iota + 1
	OpSub
	OpMul
	OpDiv
	OpLt
	OpGt
	OpLe
	OpGe
	OpEq
	OpNe
)

var operatorStrings = map[Operator]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpLt:  "<",
	OpGt:  ">",
	OpLe:  "<=",
	OpGe:  ">=",
	OpEq:  "==",
	OpNe:  "!=",
}

func (o Operator) String() string {
	if s, ok := operatorStrings[o]; ok {
		return s
	}
	return "?"
}

// IsComparison reports whether o yields a boolean.
func (o Operator) IsComparison() bool {
	return o >= OpLt && o <= OpNe
}

// Dump pretty prints any node or node list, for debugging.
func Dump(v any) string {
	return pretty.Sprint(v)
}
