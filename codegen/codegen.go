// Package codegen renders a statement list as a Python 3 program.
package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"go.creack.net/slang/ast"
)

const indentUnit = "    "

// Python precedence levels, lowest first.
const (
	precComparison = iota + 1
	precAdditive
	precMultiplicative
	precAtom
)

var reserved = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true, "class": true,
	"continue": true, "def": true, "del": true, "elif": true, "else": true,
	"except": true, "finally": true, "for": true, "from": true, "global": true,
	"if": true, "import": true, "in": true, "is": true, "lambda": true,
	"nonlocal": true, "not": true, "or": true, "pass": true, "raise": true,
	"return": true, "try": true, "while": true, "with": true, "yield": true,

	// Builtins the generated code relies on.
	"globals": true, "print": true, "range": true, "zip": true,
}

// Identifier maps a source name to a Python identifier. Reserved names and
// names already ending in "_" get one more "_", which keeps the mapping
// one to one. Identifiers ending in a single "_" after a non reserved name
// are never produced, generated helpers use them.
func Identifier(name string) string {
	if reserved[name] || strings.HasSuffix(name, "_") {
		return name + "_"
	}
	return name
}

type emitter struct {
	sb        strings.Builder
	depth     int
	loopDepth int

	clashes map[string]bool // Function names also used as variables.
}

// Emit renders stmts as Python source. Every line ends with a newline.
// It panics on node types it does not know.
//
// Variables live in the module globals, functions rebind them the way the
// interpreter does.
func Emit(stmts []ast.Stmt) string {
	n := newNames()
	n.stmts(stmts)
	e := &emitter{clashes: map[string]bool{}}
	for name := range n.funcs {
		if n.vars[name] {
			e.clashes[name] = true
		}
	}
	e.block(stmts)
	return e.sb.String()
}

// function maps a function name to its Python identifier. Python shares
// one namespace for both, so a clashing function gets a suffix no variable
// can map to.
func (e *emitter) function(name string) string {
	if e.clashes[name] {
		return Identifier(name) + "_fn_"
	}
	return Identifier(name)
}

func (e *emitter) line(format string, args ...any) {
	e.sb.WriteString(strings.Repeat(indentUnit, e.depth))
	fmt.Fprintf(&e.sb, format, args...)
	e.sb.WriteByte('\n')
}

func (e *emitter) block(stmts []ast.Stmt) {
	for _, s := range stmts {
		e.stmt(s)
	}
}

func (e *emitter) indented(stmts []ast.Stmt) {
	e.depth++
	e.block(stmts)
	e.depth--
}

func (e *emitter) loop(stmts []ast.Stmt) {
	e.loopDepth++
	e.indented(stmts)
	e.loopDepth--
}

func (e *emitter) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.Assign:
		e.line("%s = %s", Identifier(s.Name), e.expr(s.Value))
	case *ast.Print:
		e.line("print(%s)", e.expr(s.Expr))
	case *ast.If:
		e.line("if %s:", e.expr(s.Cond))
		e.indented(s.Body)
		if len(s.Else) > 0 {
			e.line("else:")
			e.indented(s.Else)
		}
	case *ast.While:
		e.line("while %s:", e.expr(s.Cond))
		e.loop(s.Body)
	case *ast.For:
		e.line("for %s in range(%s):", Identifier(s.Var), e.expr(s.Limit))
		e.loop(s.Body)
	case *ast.FuncDef:
		depth := e.loopDepth
		e.loopDepth = 0
		e.funcDef(s)
		e.loopDepth = depth
	case *ast.FuncCall:
		e.line("%s", e.call(s))
	case *ast.Break:
		e.loopKeyword("break")
	case *ast.Continue:
		e.loopKeyword("continue")
	case *ast.Return:
		e.line("return %s", e.expr(s.Value))
	default:
		panic(fmt.Errorf("unsupported statement type %T", s))
	}
}

// loopKeyword emits kw inside a loop and a no-op outside of one.
func (e *emitter) loopKeyword(kw string) {
	if e.loopDepth == 0 {
		e.line("pass")
		return
	}
	e.line("%s", kw)
}

// funcDef emits a function that takes any number of arguments and binds
// them zip-shortest to its parameters as module globals. The names the body
// binds are declared global and put back as they were once the call
// completes.
func (e *emitter) funcDef(s *ast.FuncDef) {
	e.line("def %s(*args_):", e.function(s.Name))
	e.depth++
	defer func() { e.depth-- }()

	bound, defs := boundNames(s)
	global := make([]string, 0, len(bound)+len(defs))
	for _, name := range bound {
		global = append(global, Identifier(name))
	}
	for _, name := range defs {
		global = append(global, e.function(name))
	}
	if len(global) > 0 {
		e.line("global %s", strings.Join(global, ", "))
	}
	if len(bound) == 0 {
		e.block(s.Body)
		return
	}

	e.line("names_ = %s", tuple(bound))
	e.line("saved_ = {k_: globals()[k_] for k_ in names_ if k_ in globals()}")
	e.line("try:")
	e.depth++
	if len(s.Params) > 0 {
		e.line("for k_, v_ in zip(%s, args_):", tuple(s.Params))
		e.line(indentUnit + "globals()[k_] = v_")
	}
	e.block(s.Body)
	e.depth--
	e.line("finally:")
	e.line(indentUnit + "for k_ in names_:")
	e.line(indentUnit + indentUnit + "globals().pop(k_, None)")
	e.line(indentUnit + "globals().update(saved_)")
}

// tuple renders names as a Python tuple of identifier strings.
func tuple(names []string) string {
	quoted := make([]string, 0, len(names))
	for _, name := range names {
		quoted = append(quoted, strconv.Quote(Identifier(name)))
	}
	if len(quoted) == 1 {
		return "(" + quoted[0] + ",)"
	}
	return "(" + strings.Join(quoted, ", ") + ")"
}

func (e *emitter) call(c *ast.FuncCall) string {
	args := make([]string, 0, len(c.Args))
	for _, a := range c.Args {
		args = append(args, e.expr(a))
	}
	return e.function(c.Name) + "(" + strings.Join(args, ", ") + ")"
}

func (e *emitter) expr(x ast.Expr) string {
	s, _ := e.exprPrec(x)
	return s
}

func precedence(op ast.Operator) int {
	switch op {
	case ast.OpAdd, ast.OpSub:
		return precAdditive
	case ast.OpMul, ast.OpDiv:
		return precMultiplicative
	default:
		return precComparison
	}
}

func (e *emitter) exprPrec(x ast.Expr) (string, int) {
	switch x := x.(type) {
	case *ast.BinOp:
		prec := precedence(x.Operator)
		left, lp := e.exprPrec(x.Left)
		// Python chains comparisons, so a comparison operand is always grouped.
		if lp < prec || (lp == precComparison && prec == precComparison) {
			left = "(" + left + ")"
		}
		right, rp := e.exprPrec(x.Right)
		if rp <= prec {
			right = "(" + right + ")"
		}
		return left + " " + x.Operator.String() + " " + right, prec
	case *ast.Var:
		return Identifier(x.Name), precAtom
	case *ast.NumberLiteral:
		if x.IsFloat {
			return ast.FormatFloat(x.Float), precAtom
		}
		return strconv.FormatInt(x.Int, 10), precAtom
	case *ast.StringLiteral:
		return strconv.Quote(x.Value), precAtom
	case *ast.FuncCall:
		return e.call(x), precAtom
	default:
		panic(fmt.Errorf("unsupported expression type %T", x))
	}
}
