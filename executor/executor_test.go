package executor_test

import (
	"bytes"
	"errors"
	"log"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.creack.net/slang/ast"
	"go.creack.net/slang/dialect"
	"go.creack.net/slang/executor"
	"go.creack.net/slang/parser"
)

func compile(t *testing.T, dialectName, input string) []ast.Stmt {
	t.Helper()
	d, err := dialect.Load(dialectName)
	require.NoError(t, err)
	tree, err := parser.Parse(input, d)
	require.NoError(t, err, "parse %q", input)
	stmts, err := ast.Build(tree)
	require.NoError(t, err, "build %q", input)
	return stmts
}

type testCase struct {
	name    string
	dialect string
	input   string
	output  []string
	err     error
}

func run(tt testCase, opts ...executor.Option) func(t *testing.T) {
	return func(t *testing.T) {
		t.Helper()
		if tt.dialect == "" {
			tt.dialect = "jaksel"
		}
		buf := &executor.LineBuffer{}
		err := executor.New(buf, opts...).Execute(compile(t, tt.dialect, tt.input))
		if tt.err != nil {
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.err), "unexpected error: %s", err)
		} else {
			require.NoError(t, err)
		}
		if len(tt.output) == 0 {
			assert.Empty(t, buf.Lines(), "Output mismatch")
			return
		}
		assert.Equal(t, tt.output, buf.Lines(), "Output mismatch")
	}
}

func TestExecutor(t *testing.T) {
	tests := []testCase{
		{name: "assign print", input: "x itu 5\nyap x", output: []string{"5"}},
		{name: "function call", input: "imo add(a, b): stop a plus b END\nyap add(2, 3)", output: []string{"5"}},
		{name: "for", input: "cmiiw i in 3: yap i END", output: []string{"0", "1", "2"}},
		{name: "while break", input: "kalo 1 kurang 2: yap 1 burnout END", output: []string{"1"}},

		{name: "true division", input: "yap 7 bagi 2\nyap 6 bagi 3", output: []string{"3.5", "2.0"}},
		{name: "mixed arithmetic", input: "yap 1 plus 0.5\nyap 2 kali 3\nyap 1 minus 3", output: []string{"1.5", "6", "-2"}},
		{name: "float repr", input: "yap 0.1 plus 0.2", output: []string{"0.30000000000000004"}},
		{name: "string concat", input: `yap "ab" plus "cd"`, output: []string{"abcd"}},
		{name: "string repeat", input: "yap \"ab\" kali 3\nyap 2 kali 'x'\nyap 'x' kali 0", output: []string{"ababab", "xx", ""}},
		{name: "string escapes kept", input: `yap "a\"b"`, output: []string{`a\"b`}},
		{
			name:   "comparisons",
			input:  "yap 1 kurang 2\nyap 2 equals 2.0\nyap \"a\" equals 1\nyap \"a\" not 1\nyap \"a\" kurang \"b\"",
			output: []string{"True", "True", "False", "True", "True"},
		},
		{name: "bool arithmetic", input: "yap (1 kurang 2) plus 1", output: []string{"2"}},
		{name: "if", input: "x itu 3\nwhichis x lebih 2: yap \"big\" otherwise: yap \"small\" END", output: []string{"big"}},
		{name: "else", input: "x itu 1\nwhichis x lebih 2: yap \"big\" otherwise: yap \"small\" END", output: []string{"small"}},
		{name: "continue", input: "cmiiw i in 4: whichis i equals 1: gas END yap i END", output: []string{"0", "2", "3"}},
		{
			name:   "nested break",
			input:  "cmiiw i in 3: cmiiw j in 3: whichis j equals 1: burnout END yap j END yap i END",
			output: []string{"0", "0", "0", "1", "0", "2"},
		},
		{name: "while counter", input: "n itu 0\nkalo n kurang 3: yap n\nn itu n plus 1 END", output: []string{"0", "1", "2"}},
		{name: "loop var keeps last value", input: "cmiiw i in 3: x itu i END\nyap i", output: []string{"2"}},
		{name: "negative limit", input: "cmiiw i in -2: yap i END\nyap 1", output: []string{"1"}},
		{name: "bool limit", input: "cmiiw i in 1 kurang 2: yap i END", output: []string{"0"}},
		{
			name:   "return from nested loop",
			input:  "imo f(n): kalo 1: whichis n lebih 2: stop n END n itu n plus 1 END END\nyap f(0)",
			output: []string{"3"},
		},
		{name: "no return yields None", input: "imo f(): x itu 1 END\nyap f()", output: []string{"None"}},
		{name: "zip shortest", input: "imo f(a, b): yap a END\nf(1)\nimo g(a): yap a END\ng(1, 2)", output: []string{"1", "1"}},
		{
			name:   "recursion",
			input:  "imo fact(n): whichis n kurang 2: stop 1 END stop n kali fact(n minus 1) END\nyap fact(10)",
			output: []string{"3628800"},
		},
		{name: "loop control outside loop", input: "burnout\nyap 1\ngas\nyap 2", output: []string{"1", "2"}},
		{name: "break inside called function", input: "imo f(): burnout END\ncmiiw i in 2: f()\nyap i END", output: []string{"0", "1"}},
		{name: "redefinition", input: "imo f(): stop 1 END\nimo f(): stop 2 END\nyap f()", output: []string{"2"}},
		{name: "call sees globals", input: "x itu 4\nimo f(): stop x kali 2 END\nyap f()", output: []string{"8"}},
		{name: "call discards bindings", input: "x itu 1\nimo f(): x itu 2\nyap x END\nf()\nyap x", output: []string{"2", "1"}},

		{name: "undefined name", input: "yap x", err: executor.ErrUndefinedName},
		{name: "undefined function", input: "yap f(1)", err: executor.ErrUndefinedFunction},
		{name: "type error", input: `yap "a" plus 1`, err: executor.ErrType},
		{name: "ordering across kinds", input: `yap "a" kurang 1`, err: executor.ErrType},
		{name: "division by zero", input: "yap 1 bagi 0", err: executor.ErrDivisionByZero},
		{name: "float division by zero", input: "yap 1 bagi 0.0", err: executor.ErrDivisionByZero},
		{name: "float limit", input: "cmiiw i in 2.5: yap i END", err: executor.ErrType},
		{name: "partial output", input: "yap 1\nyap x\nyap 2", output: []string{"1"}, err: executor.ErrUndefinedName},
		{name: "int overflow", input: "yap 9223372036854775807 plus 1", err: executor.ErrOverflow},
		{name: "int underflow", input: "yap -9223372036854775807 minus 2", err: executor.ErrOverflow},
		{name: "int product overflow", input: "yap 4294967296 kali 4294967296", err: executor.ErrOverflow},
		{name: "int at the edge", input: "yap 9223372036854775806 plus 1\nyap -9223372036854775807 minus 1\nyap -3037000499 kali 3037000499", output: []string{"9223372036854775807", "-9223372036854775808", "-9223372030926249001"}},
		{name: "huge repeat", input: `yap "ab" kali 9223372036854775807`, err: executor.ErrOverflow},
		{name: "huge repeat on the left", input: `yap 9223372036854775807 kali "x"`, err: executor.ErrOverflow},
		{name: "empty repeat", input: `yap "" kali 9223372036854775807`, output: []string{""}},
		{name: "unbounded recursion", input: "imo f(n): stop f(n plus 1) END\nyap f(0)", err: executor.ErrRecursion},

		{name: "indo", dialect: "indo", input: "SET a 10\nSET b 20\nIF a < b: yap a + b ELSE: yap a - b END", output: []string{"30"}},
		{name: "indo loop", dialect: "indo", input: "cmiiw i in 3: IF i != 1: yap i * 10 END END", output: []string{"0", "20"}},
		{name: "indo negative literal", dialect: "indo", input: "SET y -3\nyap y\nSET z -0.5\nyap y * z", output: []string{"-3", "1.5"}},
		{name: "indo strict by default", dialect: "indo", input: "yap missing + 1", err: executor.ErrUndefinedName},
	}
	for _, tt := range tests {
		t.Run(tt.name, run(tt))
	}
}

func TestPermissive(t *testing.T) {
	tests := []testCase{
		{name: "unbound reads zero", dialect: "indo", input: "yap missing + 1", output: []string{"1"}},
		{name: "bound wins", dialect: "indo", input: "SET a 2\nyap a", output: []string{"2"}},
		{name: "functions stay strict", dialect: "indo", input: "yap missing()", err: executor.ErrUndefinedFunction},
	}
	for _, tt := range tests {
		t.Run(tt.name, run(tt, executor.WithPermissive(true)))
	}
}

func TestCallScoping(t *testing.T) {
	e := executor.New(&executor.LineBuffer{})
	require.NoError(t, e.Execute(compile(t, "jaksel", "x itu 1\ny itu \"a\"\nimo f(a): x itu 99\nz itu a\nstop x plus a END")))

	before := e.Globals()
	require.NoError(t, e.Execute(compile(t, "jaksel", "f(5)")))
	assert.Equal(t, before, e.Globals())

	require.NoError(t, e.Execute(compile(t, "jaksel", "r itu f(5)")))
	after := e.Globals()
	assert.Equal(t, executor.Int(104), after["r"])
	delete(after, "r")
	assert.Equal(t, before, after)
}

func TestCallScopingOnFault(t *testing.T) {
	e := executor.New(&executor.LineBuffer{})
	require.NoError(t, e.Execute(compile(t, "jaksel", "x itu 1\nimo f(): x itu 2\nstop y END")))
	err := e.Execute(compile(t, "jaksel", "f()"))
	require.ErrorIs(t, err, executor.ErrUndefinedName)
	assert.Equal(t, executor.Int(2), e.Globals()["x"], "a fault keeps the bindings made so far")

	require.NoError(t, e.Execute(compile(t, "jaksel", "imo g(): stop 1 END\nyap g()")), "call state is reset after a fault")
}

func TestForBound(t *testing.T) {
	for _, limit := range []int64{0, 1, 5} {
		stmts := []ast.Stmt{
			&ast.Assign{Name: "count", Value: ast.Int(0)},
			&ast.For{Var: "i", Limit: ast.Int(limit), Body: []ast.Stmt{
				&ast.Assign{Name: "count", Value: &ast.BinOp{Left: &ast.Var{Name: "count"}, Operator: ast.OpAdd, Right: ast.Int(1)}},
				&ast.Print{Expr: &ast.Var{Name: "i"}},
			}},
		}
		buf := &executor.LineBuffer{}
		e := executor.New(buf)
		require.NoError(t, e.Execute(stmts))
		assert.Equal(t, executor.Int(limit), e.Globals()["count"], "limit %d", limit)

		var expected []string
		for i := range limit {
			expected = append(expected, executor.Int(i).String())
		}
		assert.Equal(t, expected, buf.Lines(), "limit %d", limit)
	}
}

func TestWhileTrueBreak(t *testing.T) {
	buf := &executor.LineBuffer{}
	stmts := []ast.Stmt{&ast.While{
		Cond: ast.Int(1),
		Body: []ast.Stmt{&ast.Print{Expr: &ast.StringLiteral{Value: "once"}}, &ast.Break{}, &ast.Print{Expr: ast.Int(0)}},
	}}
	require.NoError(t, executor.New(buf).Execute(stmts))
	assert.Equal(t, []string{"once"}, buf.Lines())
}

func TestInternalNode(t *testing.T) {
	tests := []struct {
		name  string
		stmts []ast.Stmt
	}{
		{name: "nil statement", stmts: []ast.Stmt{nil}},
		{name: "nil expression", stmts: []ast.Stmt{&ast.Print{}}},
		{name: "return outside function", stmts: []ast.Stmt{&ast.Return{Value: ast.Int(1)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := executor.New(&executor.LineBuffer{}).Execute(tt.stmts)
			assert.ErrorIs(t, err, executor.ErrInternalNode)
		})
	}
}

func TestWriterSink(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, executor.New(executor.NewWriterSink(&out)).Execute(compile(t, "jaksel", "yap 1\nyap \"a b\"")))
	assert.Equal(t, "1\na b\n", out.String())
}

type failingSink struct{}

var errSinkClosed = errors.New("sink closed")

func (failingSink) WriteLine(string) error { return errSinkClosed }

func TestSinkError(t *testing.T) {
	err := executor.New(failingSink{}).Execute(compile(t, "jaksel", "yap 1"))
	assert.ErrorIs(t, err, errSinkClosed)
}

func TestTrace(t *testing.T) {
	var out bytes.Buffer
	e := executor.New(&executor.LineBuffer{}, executor.WithLogger(log.New(&out, "", 0)))
	require.NoError(t, e.Execute(compile(t, "jaksel", "x itu 1\nimo f(): stop 2 END\ny itu f()")))
	assert.Equal(t, "[0] assign x\n[0] def f\n[0] assign y\n[1] return\n", out.String())
}

func TestIndependentExecutors(t *testing.T) {
	first := executor.New(&executor.LineBuffer{})
	second := executor.New(&executor.LineBuffer{})
	require.NoError(t, first.Execute(compile(t, "jaksel", "x itu 1\nimo f(): stop 1 END")))
	assert.ErrorIs(t, second.Execute(compile(t, "jaksel", "yap x")), executor.ErrUndefinedName)
	assert.ErrorIs(t, second.Execute(compile(t, "jaksel", "f()")), executor.ErrUndefinedFunction)
}

func TestValueString(t *testing.T) {
	tests := []struct {
		value    executor.Value
		expected string
	}{
		{executor.Int(-3), "-3"},
		{executor.Float(1), "1.0"},
		{executor.Float(-0.5), "-0.5"},
		{executor.Float(1e16), "1e+16"},
		{executor.Float(123456789.125), "123456789.125"},
		{executor.Float(0.0001), "0.0001"},
		{executor.Float(0.00001), "1e-05"},
		{executor.Float(math.Inf(-1)), "-inf"},
		{executor.Float(math.NaN()), "nan"},
		{executor.String("hi"), "hi"},
		{executor.Bool(true), "True"},
		{executor.Bool(false), "False"},
		{executor.None{}, "None"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.value.String())
	}
}
