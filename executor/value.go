package executor

import (
	"strconv"

	"go.creack.net/slang/ast"
)

// Value is a runtime value. The set is closed.
type Value interface {
	value()
	String() string
}

type (
	Int    int64
	Float  float64
	String string
	Bool   bool
	None   struct{}
)

func (Int) value()    {}
func (Float) value()  {}
func (String) value() {}
func (Bool) value()   {}
func (None) value()   {}

func (v Int) String() string    { return strconv.FormatInt(int64(v), 10) }
func (v Float) String() string  { return ast.FormatFloat(float64(v)) }
func (v String) String() string { return string(v) }
func (None) String() string     { return "None" }

func (v Bool) String() string {
	if v {
		return "True"
	}
	return "False"
}

// typeName returns the Python type name of v, for error messages.
func typeName(v Value) string {
	switch v.(type) {
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "str"
	case Bool:
		return "bool"
	case None:
		return "NoneType"
	default:
		return "unknown"
	}
}

func truthy(v Value) bool {
	switch v := v.(type) {
	case Int:
		return v != 0
	case Float:
		return v != 0
	case String:
		return v != ""
	case Bool:
		return bool(v)
	default:
		return false
	}
}

// integral returns v as an integer when it is an int or a bool.
func integral(v Value) (int64, bool) {
	switch v := v.(type) {
	case Int:
		return int64(v), true
	case Bool:
		if v {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// number splits a numeric value into its int or float form.
func number(v Value) (i int64, f float64, isFloat, ok bool) {
	if f, isFloat := v.(Float); isFloat {
		return 0, float64(f), true, true
	}
	i, ok = integral(v)
	return i, float64(i), false, ok
}
