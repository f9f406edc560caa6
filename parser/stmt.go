package parser

import (
	"go.creack.net/slang/dialect"
	"go.creack.net/slang/lexer"
)

func parseProgram(p *parser) *Node {
	program := &Node{Rule: RuleProgram, Token: p.curToken}
	if p.curToken.Type == lexer.TokEOF {
		p.errorf("empty program")
	}
	for p.curToken.Type != lexer.TokEOF {
		program.Children = append(program.Children, parseStmt(p))
	}
	return program
}

func parseStmt(p *parser) *Node {
	stmtFn, exists := p.stmtLookupTable[p.curToken.Type]
	if !exists {
		p.errorf("expected a statement, got %s", p.describe(p.curToken.Type))
	}
	return stmtFn(p)
}

// parseBlock parses stmt+ up to, not including, one of the end tokens.
func parseBlock(p *parser, end ...lexer.TokenType) *Node {
	block := &Node{Rule: RuleBlock, Token: p.curToken}
	for !p.curToken.Type.IsOneOf(end...) {
		if p.curToken.Type == lexer.TokEOF {
			p.errorf("unterminated block, expected %s", p.describe(end...))
		}
		block.Children = append(block.Children, parseStmt(p))
	}
	if len(block.Children) == 0 {
		p.errorf("empty block")
	}
	return block
}

// parseBody parses ":" stmt+ END and consumes the END.
func parseBody(p *parser) *Node {
	p.expect(lexer.TokColon)
	p.nextToken()
	body := parseBlock(p, lexer.TokEnd)
	p.nextToken()
	return body
}

func parseName(p *parser) *Node {
	name := leaf(p.expect(lexer.TokIdentifier))
	p.nextToken()
	return name
}

// parseNameStmt handles statements starting with a name: infix assignment
// or a call.
func parseNameStmt(p *parser) *Node {
	switch p.peek().Type {
	case lexer.TokAssign:
		start := p.curToken
		name := parseName(p)
		p.nextToken() // Consume the assign keyword.
		return &Node{Rule: RuleAssign, Token: start, Children: []*Node{name, parseExpr(p, bpDefault)}}
	case lexer.TokParenLeft:
		return parseCall(p)
	}
	if p.dialect.Has(dialect.Assign) {
		p.nextToken()
		p.errorf("expected %s or %s after name", p.describe(lexer.TokAssign), p.describe(lexer.TokParenLeft))
	}
	p.nextToken()
	p.errorf("expected %s after name", p.describe(lexer.TokParenLeft))
	return nil // Unreachable.
}

func parseSetStmt(p *parser) *Node {
	start := p.curToken
	p.nextToken()
	name := parseName(p)
	return &Node{Rule: RuleAssign, Token: start, Children: []*Node{name, parseExpr(p, bpDefault)}}
}

func parsePrintStmt(p *parser) *Node {
	start := p.curToken
	p.nextToken()
	return &Node{Rule: RulePrint, Token: start, Children: []*Node{parseExpr(p, bpDefault)}}
}

func parseIfStmt(p *parser) *Node {
	start := p.curToken
	p.nextToken()
	cond := parseExpr(p, bpDefault)
	p.expect(lexer.TokColon)
	p.nextToken()

	node := &Node{Rule: RuleIf, Token: start, Children: []*Node{cond, parseBlock(p, lexer.TokEnd, lexer.TokElse)}}
	if p.curToken.Type == lexer.TokElse {
		p.nextToken()
		node.Children = append(node.Children, parseBody(p))
		return node
	}
	p.nextToken() // Consume END.
	return node
}

func parseWhileStmt(p *parser) *Node {
	start := p.curToken
	p.nextToken()
	cond := parseExpr(p, bpDefault)
	return &Node{Rule: RuleWhile, Token: start, Children: []*Node{cond, parseBody(p)}}
}

func parseForStmt(p *parser) *Node {
	start := p.curToken
	p.nextToken()
	name := parseName(p)
	p.expect(lexer.TokIn)
	p.nextToken()
	limit := parseExpr(p, bpDefault)
	return &Node{Rule: RuleFor, Token: start, Children: []*Node{name, limit, parseBody(p)}}
}

func parseFuncDefStmt(p *parser) *Node {
	start := p.curToken
	p.nextToken()
	node := &Node{Rule: RuleFuncDef, Token: start, Children: []*Node{parseName(p)}}

	p.expect(lexer.TokParenLeft)
	p.nextToken()
	if p.curToken.Type != lexer.TokParenRight {
		params := &Node{Rule: RuleParams, Token: p.curToken}
		for {
			params.Children = append(params.Children, parseName(p))
			if p.curToken.Type != lexer.TokComma {
				break
			}
			p.nextToken()
		}
		node.Children = append(node.Children, params)
	}
	p.expect(lexer.TokParenRight)
	p.nextToken()

	p.funcDepth++
	node.Children = append(node.Children, parseBody(p))
	p.funcDepth--
	return node
}

func parseCallStmt(p *parser) *Node {
	p.nextToken()
	p.expect(lexer.TokIdentifier)
	if p.peek().Type != lexer.TokParenLeft {
		p.nextToken()
		p.errorf("expected %s after function name", p.describe(lexer.TokParenLeft))
	}
	return parseCall(p)
}

func parseBreakStmt(p *parser) *Node {
	node := &Node{Rule: RuleBreak, Token: p.curToken}
	p.nextToken()
	return node
}

func parseContinueStmt(p *parser) *Node {
	node := &Node{Rule: RuleContinue, Token: p.curToken}
	p.nextToken()
	return node
}

func parseReturnStmt(p *parser) *Node {
	if p.funcDepth == 0 {
		p.errorf("%s outside function", p.describe(lexer.TokReturn))
	}
	start := p.curToken
	p.nextToken()
	return &Node{Rule: RuleReturn, Token: start, Children: []*Node{parseExpr(p, bpDefault)}}
}
