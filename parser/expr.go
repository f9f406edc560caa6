package parser

import (
	"strings"

	"go.creack.net/slang/lexer"
)

func parseExpr(p *parser, bp bindingPower) *Node {
	// Parse the primary expression, always start with nud.
	nudFn, exists := p.nudLookupTable[p.curToken.Type]
	if !exists {
		p.errorf("expected an expression, got %s", p.describe(p.curToken.Type))
	}
	left := nudFn(p)

	// While we have tokens with a higher binding power, parse them using led.
	for p.bindingPowerLookupTable[p.curToken.Type] > bp {
		ledFn, exists := p.ledLookupTable[p.curToken.Type]
		if !exists {
			p.errorf("unexpected %s in expression", p.describe(p.curToken.Type))
		}
		left = ledFn(p, left, p.bindingPowerLookupTable[p.curToken.Type])
	}

	return left
}

func parsePrimaryExpr(p *parser) *Node {
	tok := p.curToken
	switch tok.Type {
	case lexer.TokNumber:
		p.nextToken()
		return &Node{Rule: RuleNumber, Token: tok}
	case lexer.TokString:
		p.nextToken()
		return &Node{Rule: RuleString, Token: tok}
	case lexer.TokIdentifier:
		if p.peek().Type == lexer.TokParenLeft {
			return parseCall(p)
		}
		p.nextToken()
		return &Node{Rule: RuleVar, Token: tok}
	default:
		panic("unexpected primary token") // Only registered for the types above.
	}
}

// parseNegativeNumber folds a "-" written right against a number into the
// literal. The lexer reads it as an operator after a name, as in "SET y -3".
func parseNegativeNumber(p *parser) *Node {
	sign, num := p.curToken, p.peek()
	if sign.Value != "-" || num.Type != lexer.TokNumber || strings.HasPrefix(num.Value, "-") ||
		num.Line != sign.Line || num.Col != sign.Col+1 {
		p.errorf("expected an expression, got %s", p.describe(sign.Type))
	}
	p.nextToken()
	p.nextToken()

	sign.Type = lexer.TokNumber
	sign.Value += num.Value
	return &Node{Rule: RuleNumber, Token: sign}
}

func parseGroupingExpr(p *parser) *Node {
	p.nextToken()
	expr := parseExpr(p, bpDefault)
	p.expect(lexer.TokParenRight)
	p.nextToken()
	return expr
}

// parseCall parses NAME "(" [expr ("," expr)*] ")".
func parseCall(p *parser) *Node {
	start := p.curToken
	node := &Node{Rule: RuleCall, Token: start, Children: []*Node{parseName(p)}}

	p.expect(lexer.TokParenLeft)
	p.nextToken()
	if p.curToken.Type != lexer.TokParenRight {
		args := &Node{Rule: RuleArgs, Token: p.curToken}
		for {
			args.Children = append(args.Children, parseExpr(p, bpDefault))
			if p.curToken.Type != lexer.TokComma {
				break
			}
			p.nextToken()
		}
		node.Children = append(node.Children, args)
	}
	p.expect(lexer.TokParenRight)
	p.nextToken()
	return node
}

func parseBinaryExpr(rule Rule) ledHandler {
	return func(p *parser, left *Node, bp bindingPower) *Node {
		operator := p.curToken
		p.nextToken()
		right := parseExpr(p, bp)

		return &Node{Rule: rule, Token: operator, Children: []*Node{left, leaf(operator), right}}
	}
}

func parseCompareExpr(p *parser, left *Node, bp bindingPower) *Node {
	operator := p.curToken
	p.nextToken()
	right := parseExpr(p, bp)
	if p.bindingPowerLookupTable[p.curToken.Type] == bpComparison {
		p.errorf("comparisons cannot be chained")
	}

	return &Node{Rule: RuleCompare, Token: operator, Children: []*Node{left, leaf(operator), right}}
}
