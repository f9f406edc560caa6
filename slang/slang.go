// Package slang wires the pipeline together: source text is parsed with a
// dialect, built into an AST, then either emitted as Python or executed.
package slang

import (
	"fmt"
	"io"

	"go.creack.net/slang/ast"
	"go.creack.net/slang/codegen"
	"go.creack.net/slang/dialect"
	"go.creack.net/slang/executor"
	"go.creack.net/slang/parser"
)

// Compile parses text with d and builds the AST.
func Compile(text string, d *dialect.Dialect) ([]ast.Stmt, error) {
	tree, err := parser.Parse(text, d)
	if err != nil {
		return nil, err
	}
	stmts, err := ast.Build(tree)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	return stmts, nil
}

// CompileToSource translates text to a Python 3 program.
func CompileToSource(text string, d *dialect.Dialect) (string, error) {
	stmts, err := Compile(text, d)
	if err != nil {
		return "", err
	}
	return codegen.Emit(stmts), nil
}

// RunDirectly interprets text and returns the printed lines. On a runtime
// fault, the lines printed so far are returned with the error. Permissive
// dialects read unbound names as 0 unless opts say otherwise.
func RunDirectly(text string, d *dialect.Dialect, opts ...executor.Option) ([]string, error) {
	stmts, err := Compile(text, d)
	if err != nil {
		return nil, err
	}
	buf := &executor.LineBuffer{}
	err = newExecutor(buf, d, opts).Execute(stmts)
	return buf.Lines(), err
}

// Run interprets the program read from r, streaming output to w.
func Run(r io.Reader, w io.Writer, d *dialect.Dialect, opts ...executor.Option) error {
	text, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read program: %w", err)
	}
	stmts, err := Compile(string(text), d)
	if err != nil {
		return err
	}
	return newExecutor(executor.NewWriterSink(w), d, opts).Execute(stmts)
}

func newExecutor(sink executor.Sink, d *dialect.Dialect, opts []executor.Option) *executor.Executor {
	if d.Permissive {
		opts = append([]executor.Option{executor.WithPermissive(true)}, opts...)
	}
	return executor.New(sink, opts...)
}
