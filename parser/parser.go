// Package parser turns slang source text into a concrete parse tree.
//
// The grammar is fixed, the spelling of its keywords and operators comes
// from a dialect table. Parsing is deterministic with a single token of
// look-ahead and never backtracks.
package parser

import (
	"fmt"
	"strconv"

	"go.creack.net/slang/dialect"
	"go.creack.net/slang/lexer"
)

// SyntaxError reports source text no grammar production matches.
type SyntaxError struct {
	Token lexer.Token // Offending token.
	Msg   string
}

func (e *SyntaxError) Error() string {
	if e.Token.Type == lexer.TokEOF {
		return fmt.Sprintf("syntax error at %d:%d: %s", e.Token.Line, e.Token.Col, e.Msg)
	}
	return fmt.Sprintf("syntax error at %d:%d near %q: %s", e.Token.Line, e.Token.Col, e.Token.Value, e.Msg)
}

type parser struct {
	lex     *lexer.Lexer
	dialect *dialect.Dialect

	curToken  lexer.Token
	peekToken *lexer.Token // Buffer.

	funcDepth int // Number of enclosing function definitions.

	stmtLookupTable         lookupTable[stmtHandler]
	nudLookupTable          lookupTable[nudHandler]
	ledLookupTable          lookupTable[ledHandler]
	bindingPowerLookupTable lookupTable[bindingPower]
}

func newParser(input string, d *dialect.Dialect) *parser {
	p := &parser{
		lex:                     lexer.New(input, d),
		dialect:                 d,
		stmtLookupTable:         lookupTable[stmtHandler]{},
		nudLookupTable:          lookupTable[nudHandler]{},
		ledLookupTable:          lookupTable[ledHandler]{},
		bindingPowerLookupTable: lookupTable[bindingPower]{},
	}
	p.createTokenLookups()
	return p
}

// Parse parses a whole program written in dialect d.
// The returned error, if any, is a *SyntaxError.
func Parse(input string, d *dialect.Dialect) (tree *Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			synErr, ok := r.(*SyntaxError)
			if !ok {
				panic(r)
			}
			tree, err = nil, synErr
		}
	}()

	p := newParser(input, d)
	p.nextToken()
	return parseProgram(p), nil
}

func (p *parser) nextToken() lexer.Token {
	if p.peekToken != nil {
		p.curToken = *p.peekToken
		p.peekToken = nil
	} else {
		p.curToken = p.lex.NextToken()
	}
	if p.curToken.Type == lexer.TokError {
		panic(&SyntaxError{Token: p.curToken, Msg: p.curToken.Value})
	}
	return p.curToken
}

func (p *parser) peek() lexer.Token {
	if p.peekToken != nil {
		return *p.peekToken
	}
	tok := p.lex.NextToken()
	p.peekToken = &tok
	return tok
}

// errorf aborts parsing with a syntax error at the current token.
func (p *parser) errorf(format string, args ...any) {
	panic(&SyntaxError{Token: p.curToken, Msg: fmt.Sprintf(format, args...)})
}

// expect checks if the current token is of the expected type.
func (p *parser) expect(kind ...lexer.TokenType) lexer.Token {
	if p.curToken.Type.IsOneOf(kind...) {
		return p.curToken
	}
	p.errorf("expected %s, got %s", p.describe(kind...), p.describe(p.curToken.Type))
	return p.curToken // Unreachable.
}

// describe names token types the way the dialect spells them.
func (p *parser) describe(kind ...lexer.TokenType) string {
	out := ""
	for i, k := range kind {
		if i > 0 {
			out += " or "
		}
		switch k {
		case lexer.TokEOF:
			out += "end of input"
		case lexer.TokIdentifier:
			out += "name"
		case lexer.TokNumber:
			out += "number"
		case lexer.TokString:
			out += "string"
		case lexer.TokParenLeft:
			out += `"("`
		case lexer.TokParenRight:
			out += `")"`
		case lexer.TokComma:
			out += `","`
		case lexer.TokColon:
			out += `":"`
		default:
			c, ok := lexer.CanonicalOf(k)
			if !ok {
				out += k.String()
				continue
			}
			out += strconv.Quote(p.dialect.Spelling(c))
		}
	}
	return out
}
