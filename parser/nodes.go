package parser

import (
	"strings"

	"go.creack.net/slang/lexer"
)

// Rule tags a parse tree node with the grammar production it matched.
type Rule int

// Grammar rules.
const (
	RuleToken Rule = iota // Leaf holding a single token.

	RuleProgram // stmt+
	RuleBlock   // stmt+ up to END (or ELSE).

	// Statements.
	RuleAssign   // NAME expr
	RulePrint    // expr
	RuleIf       // expr Block [Block]
	RuleWhile    // expr Block
	RuleFor      // NAME expr Block
	RuleFuncDef  // NAME [Params] Block
	RuleParams   // NAME+
	RuleCall     // NAME [Args]
	RuleArgs     // expr+
	RuleBreak    //
	RuleContinue //
	RuleReturn   // expr

	// Expressions.
	RuleCompare // expr OP expr
	RuleArith   // expr OP expr, additive.
	RuleTerm    // expr OP expr, multiplicative.
	RuleNumber
	RuleString
	RuleVar

	// End of rules.
	FinalRule
)

var ruleStrings = map[Rule]string{
	RuleToken:    "token",
	RuleProgram:  "program",
	RuleBlock:    "block",
	RuleAssign:   "assign",
	RulePrint:    "print",
	RuleIf:       "if",
	RuleWhile:    "while",
	RuleFor:      "for",
	RuleFuncDef:  "funcdef",
	RuleParams:   "params",
	RuleCall:     "call",
	RuleArgs:     "args",
	RuleBreak:    "break",
	RuleContinue: "continue",
	RuleReturn:   "return",
	RuleCompare:  "compare",
	RuleArith:    "arith",
	RuleTerm:     "term",
	RuleNumber:   "number",
	RuleString:   "string",
	RuleVar:      "var",
}

func (r Rule) String() string {
	return ruleStrings[r]
}

// Node is a concrete parse tree node. It only lives between parsing and
// AST construction.
type Node struct {
	Rule Rule
	// Token is the leaf token for RuleToken, RuleNumber, RuleString and
	// RuleVar, otherwise the token the production started at.
	Token    lexer.Token
	Children []*Node
}

func leaf(tok lexer.Token) *Node {
	return &Node{Rule: RuleToken, Token: tok}
}

// Dump renders the tree as an s-expression, mostly for tests and debugging.
func (n *Node) Dump() string {
	if n == nil {
		return "<nil>"
	}
	switch n.Rule {
	case RuleToken:
		return n.Token.Value
	case RuleNumber, RuleString, RuleVar:
		return "(" + n.Rule.String() + " " + n.Token.Value + ")"
	}
	parts := []string{n.Rule.String()}
	for _, c := range n.Children {
		parts = append(parts, c.Dump())
	}
	return "(" + strings.Join(parts, " ") + ")"
}
