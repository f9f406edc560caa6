// Package executor is a tree-walking interpreter for the statement lists
// produced by the ast package.
package executor

import (
	"errors"
	"fmt"
	"log"
	"maps"

	"go.creack.net/slang/ast"
)

// maxCallDepth mirrors Python's default recursion limit.
const maxCallDepth = 1000

// Executor holds the whole state of one running program: the flat global
// table, the function table and the output sink. Executors never share
// state.
type Executor struct {
	globals   map[string]Value
	functions map[string]*ast.FuncDef
	sink      Sink

	loopDepth int // Loops entered in the current call frame.
	callDepth int

	permissive bool
	logger     *log.Logger
}

type Option func(*Executor)

// WithLogger traces every executed statement to l.
func WithLogger(l *log.Logger) Option {
	return func(e *Executor) { e.logger = l }
}

// WithPermissive makes unbound names read as 0 instead of failing.
func WithPermissive(permissive bool) Option {
	return func(e *Executor) { e.permissive = permissive }
}

func New(sink Sink, opts ...Option) *Executor {
	e := &Executor{
		globals:   map[string]Value{},
		functions: map[string]*ast.FuncDef{},
		sink:      sink,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Globals returns a copy of the global table.
func (e *Executor) Globals() map[string]Value {
	return maps.Clone(e.globals)
}

// Execute runs stmts in order. The first fault stops the program, lines
// printed before it stay in the sink. State is kept across calls.
func (e *Executor) Execute(stmts []ast.Stmt) error {
	err := e.evaluateBlock(stmts)
	var ret returnSignal
	if errors.As(err, &ret) {
		return fmt.Errorf("%w: return outside function", ErrInternalNode)
	}
	return err
}

func (e *Executor) evaluateBlock(stmts []ast.Stmt) error {
	for _, s := range stmts {
		if err := e.evaluateStmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) trace(s ast.Stmt) {
	if e.logger == nil {
		return
	}
	var desc string
	switch s := s.(type) {
	case *ast.Assign:
		desc = "assign " + s.Name
	case *ast.Print:
		desc = "print"
	case *ast.If:
		desc = "if"
	case *ast.While:
		desc = "while"
	case *ast.For:
		desc = "for " + s.Var
	case *ast.FuncDef:
		desc = "def " + s.Name
	case *ast.FuncCall:
		desc = "call " + s.Name
	case *ast.Break:
		desc = "break"
	case *ast.Continue:
		desc = "continue"
	case *ast.Return:
		desc = "return"
	default:
		desc = fmt.Sprintf("%T", s)
	}
	e.logger.Printf("[%d] %s", e.callDepth, desc)
}

func (e *Executor) evaluateStmt(stmt ast.Stmt) error {
	e.trace(stmt)

	switch s := stmt.(type) {
	case *ast.Assign:
		v, err := e.evaluateExpr(s.Value)
		if err != nil {
			return err
		}
		e.globals[s.Name] = v
		return nil

	case *ast.Print:
		v, err := e.evaluateExpr(s.Expr)
		if err != nil {
			return err
		}
		if err := e.sink.WriteLine(v.String()); err != nil {
			return fmt.Errorf("print: %w", err)
		}
		return nil

	case *ast.If:
		cond, err := e.evaluateExpr(s.Cond)
		if err != nil {
			return err
		}
		if truthy(cond) {
			return e.evaluateBlock(s.Body)
		}
		return e.evaluateBlock(s.Else)

	case *ast.While:
		return e.evaluateWhile(s)

	case *ast.For:
		return e.evaluateFor(s)

	case *ast.FuncDef:
		e.functions[s.Name] = s
		return nil

	case *ast.FuncCall:
		_, err := e.call(s)
		return err

	case *ast.Break:
		if e.loopDepth == 0 {
			return nil
		}
		return breakSignal{}

	case *ast.Continue:
		if e.loopDepth == 0 {
			return nil
		}
		return continueSignal{}

	case *ast.Return:
		v, err := e.evaluateExpr(s.Value)
		if err != nil {
			return err
		}
		return returnSignal{value: v}

	default:
		return fmt.Errorf("%w: statement %T", ErrInternalNode, s)
	}
}

// loopControl consumes the loop signals. It reports whether the loop must
// stop, and any error to return.
func loopControl(err error) (bool, error) {
	switch err.(type) {
	case nil, continueSignal:
		return false, nil
	case breakSignal:
		return true, nil
	default:
		return true, err
	}
}

func (e *Executor) evaluateWhile(s *ast.While) error {
	e.loopDepth++
	defer func() { e.loopDepth-- }()

	for {
		cond, err := e.evaluateExpr(s.Cond)
		if err != nil {
			return err
		}
		if !truthy(cond) {
			return nil
		}
		if stop, err := loopControl(e.evaluateBlock(s.Body)); stop {
			return err
		}
	}
}

func (e *Executor) evaluateFor(s *ast.For) error {
	limit, err := e.evaluateExpr(s.Limit)
	if err != nil {
		return err
	}
	n, ok := integral(limit)
	if !ok {
		return fmt.Errorf("%w: %q object cannot be interpreted as an integer", ErrType, typeName(limit))
	}

	e.loopDepth++
	defer func() { e.loopDepth-- }()

	for i := int64(0); i < n; i++ {
		e.globals[s.Var] = Int(i)
		if stop, err := loopControl(e.evaluateBlock(s.Body)); stop {
			return err
		}
	}
	return nil
}

// call runs a function on a snapshot of the globals: parameters are bound
// zip-shortest, and every binding made during the call is dropped when it
// completes or returns.
func (e *Executor) call(c *ast.FuncCall) (Value, error) {
	def, ok := e.functions[c.Name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUndefinedFunction, c.Name)
	}
	args := make([]Value, 0, len(c.Args))
	for _, a := range c.Args {
		v, err := e.evaluateExpr(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	if e.callDepth >= maxCallDepth {
		return nil, fmt.Errorf("%w: calling %q", ErrRecursion, c.Name)
	}

	snapshot := maps.Clone(e.globals)
	loopDepth := e.loopDepth
	e.loopDepth = 0
	e.callDepth++
	defer func() {
		e.loopDepth = loopDepth
		e.callDepth--
	}()

	for i := range min(len(def.Params), len(args)) {
		e.globals[def.Params[i]] = args[i]
	}

	// A fault leaves the globals as they are.
	err := e.evaluateBlock(def.Body)
	var ret returnSignal
	switch {
	case err == nil:
		e.globals = snapshot
		return None{}, nil
	case errors.As(err, &ret):
		e.globals = snapshot
		return ret.value, nil
	default:
		return nil, err
	}
}

func (e *Executor) lookup(name string) (Value, error) {
	if v, ok := e.globals[name]; ok {
		return v, nil
	}
	if e.permissive {
		return Int(0), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUndefinedName, name)
}

func (e *Executor) evaluateExpr(expr ast.Expr) (Value, error) {
	switch x := expr.(type) {
	case *ast.BinOp:
		left, err := e.evaluateExpr(x.Left)
		if err != nil {
			return nil, err
		}
		right, err := e.evaluateExpr(x.Right)
		if err != nil {
			return nil, err
		}
		return binaryOp(x.Operator, left, right)

	case *ast.Var:
		return e.lookup(x.Name)

	case *ast.NumberLiteral:
		if x.IsFloat {
			return Float(x.Float), nil
		}
		return Int(x.Int), nil

	case *ast.StringLiteral:
		return String(x.Value), nil

	case *ast.FuncCall:
		return e.call(x)

	default:
		return nil, fmt.Errorf("%w: expression %T", ErrInternalNode, x)
	}
}
