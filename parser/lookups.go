package parser

import (
	"go.creack.net/slang/lexer"
)

type bindingPower int

const (
	bpDefault bindingPower = iota
	bpComparison
	bpAdditive
	bpMultiplicative
)

type stmtHandler func(*parser) *Node
type nudHandler func(*parser) *Node
type ledHandler func(*parser, *Node, bindingPower) *Node

type lookupTable[T any] map[lexer.TokenType]T

func (p *parser) led(kind lexer.TokenType, bp bindingPower, fn ledHandler) {
	if _, ok := p.ledLookupTable[kind]; ok {
		panic("duplicate led handler")
	}
	p.ledLookupTable[kind] = fn
	p.bindingPowerLookupTable[kind] = bp
}

func (p *parser) nud(kind lexer.TokenType, fn nudHandler) {
	if _, ok := p.nudLookupTable[kind]; ok {
		panic("duplicate nud handler")
	}
	p.nudLookupTable[kind] = fn
}

func (p *parser) stmt(kind lexer.TokenType, fn stmtHandler) {
	if _, ok := p.stmtLookupTable[kind]; ok {
		panic("duplicate stmt handler")
	}
	p.stmtLookupTable[kind] = fn
	p.bindingPowerLookupTable[kind] = bpDefault
}

func (p *parser) createTokenLookups() {
	// Comparison, non-associative.
	for _, kind := range []lexer.TokenType{
		lexer.TokLess, lexer.TokGreater,
		lexer.TokLessEqual, lexer.TokGreaterEqual,
		lexer.TokEqualEqual, lexer.TokNotEqual,
	} {
		p.led(kind, bpComparison, parseCompareExpr)
	}

	// Additive & multiplicative.
	p.led(lexer.TokPlus, bpAdditive, parseBinaryExpr(RuleArith))
	p.led(lexer.TokMinus, bpAdditive, parseBinaryExpr(RuleArith))
	p.led(lexer.TokMultiply, bpMultiplicative, parseBinaryExpr(RuleTerm))
	p.led(lexer.TokSlash, bpMultiplicative, parseBinaryExpr(RuleTerm))

	// Literals & symbols.
	p.nud(lexer.TokNumber, parsePrimaryExpr)
	p.nud(lexer.TokString, parsePrimaryExpr)
	p.nud(lexer.TokIdentifier, parsePrimaryExpr)
	p.nud(lexer.TokParenLeft, parseGroupingExpr)
	p.nud(lexer.TokMinus, parseNegativeNumber)

	// Statements.
	p.stmt(lexer.TokIdentifier, parseNameStmt)
	p.stmt(lexer.TokSet, parseSetStmt)
	p.stmt(lexer.TokPrint, parsePrintStmt)
	p.stmt(lexer.TokIf, parseIfStmt)
	p.stmt(lexer.TokWhile, parseWhileStmt)
	p.stmt(lexer.TokFor, parseForStmt)
	p.stmt(lexer.TokDef, parseFuncDefStmt)
	p.stmt(lexer.TokCall, parseCallStmt)
	p.stmt(lexer.TokBreak, parseBreakStmt)
	p.stmt(lexer.TokContinue, parseContinueStmt)
	p.stmt(lexer.TokReturn, parseReturnStmt)
}
