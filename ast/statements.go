package ast

// Assign binds Name to the value of Value.
type Assign struct {
	Name  string
	Value Expr
}

func (*Assign) stmt() {}

// Print outputs the value of Expr as one line.
type Print struct {
	Expr Expr
}

func (*Print) stmt() {}

// If runs Body when Cond is truthy, Else otherwise. Else may be empty.
type If struct {
	Cond Expr
	Body []Stmt
	Else []Stmt
}

func (*If) stmt() {}

type While struct {
	Cond Expr
	Body []Stmt
}

func (*While) stmt() {}

// For binds Var to 0..Limit-1 in order.
type For struct {
	Var   string
	Limit Expr
	Body  []Stmt
}

func (*For) stmt() {}

type FuncDef struct {
	Name   string
	Params []string
	Body   []Stmt
}

func (*FuncDef) stmt() {}

// FuncCall is both a statement and an expression.
type FuncCall struct {
	Name string
	Args []Expr
}

func (*FuncCall) stmt() {}
func (*FuncCall) expr() {}

type Break struct{}

func (*Break) stmt() {}

type Continue struct{}

func (*Continue) stmt() {}

type Return struct {
	Value Expr
}

func (*Return) stmt() {}
