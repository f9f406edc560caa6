package ast

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"go.creack.net/slang/lexer"
	"go.creack.net/slang/parser"
)

// Common errors.
var (
	ErrMalformedTree  = errors.New("malformed parse tree")
	ErrInvalidLiteral = errors.New("invalid literal")
)

var operators = map[lexer.TokenType]Operator{
	lexer.TokPlus:         OpAdd,
	lexer.TokMinus:        OpSub,
	lexer.TokMultiply:     OpMul,
	lexer.TokSlash:        OpDiv,
	lexer.TokLess:         OpLt,
	lexer.TokGreater:      OpGt,
	lexer.TokLessEqual:    OpLe,
	lexer.TokGreaterEqual: OpGe,
	lexer.TokEqualEqual:   OpEq,
	lexer.TokNotEqual:     OpNe,
}

type builder struct {
	loopDepth int
}

// Build converts a parse tree rooted at a program node into a statement
// list. The tree is not modified.
func Build(tree *parser.Node) ([]Stmt, error) {
	if tree == nil || tree.Rule != parser.RuleProgram {
		return nil, fmt.Errorf("%w: expected a program node", ErrMalformedTree)
	}
	b := &builder{}
	return b.stmts(tree.Children)
}

func malformed(n *parser.Node, format string, args ...any) error {
	return fmt.Errorf("%w: %s at %d:%d: %s", ErrMalformedTree, n.Rule, n.Token.Line, n.Token.Col, fmt.Sprintf(format, args...))
}

func (b *builder) stmts(nodes []*parser.Node) ([]Stmt, error) {
	out := make([]Stmt, 0, len(nodes))
	for _, n := range nodes {
		s, err := b.stmt(n)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (b *builder) block(n *parser.Node) ([]Stmt, error) {
	if n == nil {
		return nil, fmt.Errorf("%w: missing block", ErrMalformedTree)
	}
	if n.Rule != parser.RuleBlock {
		return nil, malformed(n, "expected a block")
	}
	return b.stmts(n.Children)
}

func (b *builder) loopBody(n *parser.Node) ([]Stmt, error) {
	b.loopDepth++
	defer func() { b.loopDepth-- }()
	return b.block(n)
}

func (b *builder) name(n *parser.Node) (string, error) {
	if n == nil || n.Rule != parser.RuleToken || n.Token.Type != lexer.TokIdentifier {
		return "", fmt.Errorf("%w: expected a name", ErrMalformedTree)
	}
	return n.Token.Value, nil
}

func arity(n *parser.Node, counts ...int) error {
	for _, c := range counts {
		if len(n.Children) == c {
			return nil
		}
	}
	return malformed(n, "unexpected child count %d", len(n.Children))
}

func (b *builder) stmt(n *parser.Node) (Stmt, error) {
	if n == nil {
		return nil, fmt.Errorf("%w: nil statement", ErrMalformedTree)
	}
	switch n.Rule {
	case parser.RuleAssign:
		if err := arity(n, 2); err != nil {
			return nil, err
		}
		name, err := b.name(n.Children[0])
		if err != nil {
			return nil, err
		}
		value, err := b.expr(n.Children[1])
		if err != nil {
			return nil, err
		}
		return &Assign{Name: name, Value: value}, nil

	case parser.RulePrint:
		if err := arity(n, 1); err != nil {
			return nil, err
		}
		e, err := b.expr(n.Children[0])
		if err != nil {
			return nil, err
		}
		return &Print{Expr: e}, nil

	case parser.RuleIf:
		if err := arity(n, 2, 3); err != nil {
			return nil, err
		}
		cond, err := b.expr(n.Children[0])
		if err != nil {
			return nil, err
		}
		body, err := b.block(n.Children[1])
		if err != nil {
			return nil, err
		}
		stmt := &If{Cond: cond, Body: body}
		if len(n.Children) == 3 {
			if stmt.Else, err = b.block(n.Children[2]); err != nil {
				return nil, err
			}
		}
		return stmt, nil

	case parser.RuleWhile:
		if err := arity(n, 2); err != nil {
			return nil, err
		}
		cond, err := b.expr(n.Children[0])
		if err != nil {
			return nil, err
		}
		body, err := b.loopBody(n.Children[1])
		if err != nil {
			return nil, err
		}
		return &While{Cond: cond, Body: body}, nil

	case parser.RuleFor:
		if err := arity(n, 3); err != nil {
			return nil, err
		}
		name, err := b.name(n.Children[0])
		if err != nil {
			return nil, err
		}
		limit, err := b.expr(n.Children[1])
		if err != nil {
			return nil, err
		}
		body, err := b.loopBody(n.Children[2])
		if err != nil {
			return nil, err
		}
		return &For{Var: name, Limit: limit, Body: body}, nil

	case parser.RuleFuncDef:
		return b.funcDef(n)

	case parser.RuleCall:
		return b.call(n)

	case parser.RuleBreak, parser.RuleContinue:
		if b.loopDepth == 0 {
			log.Printf("warning: %d:%d: %q outside loop", n.Token.Line, n.Token.Col, n.Token.Value)
		}
		if n.Rule == parser.RuleBreak {
			return &Break{}, nil
		}
		return &Continue{}, nil

	case parser.RuleReturn:
		if err := arity(n, 1); err != nil {
			return nil, err
		}
		e, err := b.expr(n.Children[0])
		if err != nil {
			return nil, err
		}
		return &Return{Value: e}, nil
	}
	return nil, malformed(n, "not a statement")
}

func (b *builder) funcDef(n *parser.Node) (Stmt, error) {
	if err := arity(n, 2, 3); err != nil {
		return nil, err
	}
	name, err := b.name(n.Children[0])
	if err != nil {
		return nil, err
	}
	def := &FuncDef{Name: name, Params: []string{}}
	if len(n.Children) == 3 {
		params := n.Children[1]
		if params.Rule != parser.RuleParams {
			return nil, malformed(params, "expected params")
		}
		for _, p := range params.Children {
			param, err := b.name(p)
			if err != nil {
				return nil, err
			}
			def.Params = append(def.Params, param)
		}
	}

	// Loops do not extend into the function body.
	depth := b.loopDepth
	b.loopDepth = 0
	def.Body, err = b.block(n.Children[len(n.Children)-1])
	b.loopDepth = depth
	if err != nil {
		return nil, err
	}
	return def, nil
}

func (b *builder) call(n *parser.Node) (*FuncCall, error) {
	if err := arity(n, 1, 2); err != nil {
		return nil, err
	}
	name, err := b.name(n.Children[0])
	if err != nil {
		return nil, err
	}
	call := &FuncCall{Name: name, Args: []Expr{}}
	if len(n.Children) == 2 {
		args := n.Children[1]
		if args.Rule != parser.RuleArgs {
			return nil, malformed(args, "expected args")
		}
		for _, a := range args.Children {
			e, err := b.expr(a)
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, e)
		}
	}
	return call, nil
}

func (b *builder) expr(n *parser.Node) (Expr, error) {
	if n == nil {
		return nil, fmt.Errorf("%w: nil expression", ErrMalformedTree)
	}
	switch n.Rule {
	case parser.RuleCompare, parser.RuleArith, parser.RuleTerm:
		if err := arity(n, 3); err != nil {
			return nil, err
		}
		op, ok := operators[n.Token.Type]
		if !ok {
			return nil, malformed(n, "unknown operator %q", n.Token.Value)
		}
		if (n.Rule == parser.RuleCompare) != op.IsComparison() {
			return nil, malformed(n, "operator %q does not match the rule", n.Token.Value)
		}
		left, err := b.expr(n.Children[0])
		if err != nil {
			return nil, err
		}
		right, err := b.expr(n.Children[2])
		if err != nil {
			return nil, err
		}
		return &BinOp{Left: left, Operator: op, Right: right}, nil

	case parser.RuleNumber:
		return numberLiteral(n.Token)

	case parser.RuleString:
		return stringLiteral(n.Token)

	case parser.RuleVar:
		return &Var{Name: n.Token.Value}, nil

	case parser.RuleCall:
		return b.call(n)
	}
	return nil, malformed(n, "not an expression")
}

func numberLiteral(tok lexer.Token) (*NumberLiteral, error) {
	if strings.Contains(tok.Value, ".") {
		f, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: number %q at %d:%d: %w", ErrInvalidLiteral, tok.Value, tok.Line, tok.Col, err)
		}
		return Float(f), nil
	}
	i, err := strconv.ParseInt(tok.Value, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: number %q at %d:%d: %w", ErrInvalidLiteral, tok.Value, tok.Line, tok.Col, err)
	}
	return Int(i), nil
}

// stringLiteral strips the surrounding quotes. Escapes are kept verbatim.
func stringLiteral(tok lexer.Token) (*StringLiteral, error) {
	v := tok.Value
	if len(v) < 2 || (v[0] != '"' && v[0] != '\'') || v[len(v)-1] != v[0] {
		return nil, fmt.Errorf("%w: string %s at %d:%d", ErrInvalidLiteral, v, tok.Line, tok.Col)
	}
	return &StringLiteral{Value: v[1 : len(v)-1]}, nil
}
