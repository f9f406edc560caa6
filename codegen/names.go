package codegen

import (
	"go.creack.net/slang/ast"
)

// names collects every variable and function name of a program, nested
// bodies included.
type names struct {
	vars  map[string]bool
	funcs map[string]bool
}

func newNames() *names {
	return &names{vars: map[string]bool{}, funcs: map[string]bool{}}
}

func (n *names) stmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		n.stmt(s)
	}
}

func (n *names) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.Assign:
		n.vars[s.Name] = true
		n.expr(s.Value)
	case *ast.Print:
		n.expr(s.Expr)
	case *ast.If:
		n.expr(s.Cond)
		n.stmts(s.Body)
		n.stmts(s.Else)
	case *ast.While:
		n.expr(s.Cond)
		n.stmts(s.Body)
	case *ast.For:
		n.vars[s.Var] = true
		n.expr(s.Limit)
		n.stmts(s.Body)
	case *ast.FuncDef:
		n.funcs[s.Name] = true
		for _, p := range s.Params {
			n.vars[p] = true
		}
		n.stmts(s.Body)
	case *ast.FuncCall:
		n.expr(s)
	case *ast.Return:
		n.expr(s.Value)
	}
}

func (n *names) expr(x ast.Expr) {
	switch x := x.(type) {
	case *ast.BinOp:
		n.expr(x.Left)
		n.expr(x.Right)
	case *ast.Var:
		n.vars[x.Name] = true
	case *ast.FuncCall:
		n.funcs[x.Name] = true
		for _, a := range x.Args {
			n.expr(a)
		}
	}
}

// boundNames lists, in first binding order, the variables a call of def
// binds itself: its parameters, then the targets of assignments and for
// loops in its body. defs lists the functions the body defines. Bodies of
// nested definitions are not walked, their own calls restore them.
func boundNames(def *ast.FuncDef) (bound, defs []string) {
	seenVar, seenDef := map[string]bool{}, map[string]bool{}
	addVar := func(name string) {
		if !seenVar[name] {
			seenVar[name] = true
			bound = append(bound, name)
		}
	}
	for _, p := range def.Params {
		addVar(p)
	}

	var walk func([]ast.Stmt)
	walk = func(stmts []ast.Stmt) {
		for _, s := range stmts {
			switch s := s.(type) {
			case *ast.Assign:
				addVar(s.Name)
			case *ast.If:
				walk(s.Body)
				walk(s.Else)
			case *ast.While:
				walk(s.Body)
			case *ast.For:
				addVar(s.Var)
				walk(s.Body)
			case *ast.FuncDef:
				if !seenDef[s.Name] {
					seenDef[s.Name] = true
					defs = append(defs, s.Name)
				}
			}
		}
	}
	walk(def.Body)
	return bound, defs
}
