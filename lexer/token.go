package lexer

import (
	"fmt"
	"slices"

	"go.creack.net/slang/dialect"
)

// TokenType is the type of token.
type TokenType int

// Token types as constants.
const (
	TokError TokenType = iota
	TokEOF

	// Identifiers + literals.
	TokIdentifier
	TokNumber
	TokString

	// Keywords.
	TokAssign   // NAME itu expr.
	TokSet      // SET NAME expr.
	TokPrint    // yap.
	TokIf       // whichis / IF.
	TokElse     // otherwise / ELSE.
	TokWhile    // kalo.
	TokFor      // cmiiw.
	TokIn       // in.
	TokDef      // imo.
	TokCall     // call.
	TokBreak    // burnout.
	TokContinue // gas.
	TokReturn   // stop.
	TokEnd      // END.

	// Operators.
	TokPlus
	TokMinus
	TokMultiply
	TokSlash
	TokLess
	TokGreater
	TokLessEqual
	TokGreaterEqual
	TokEqualEqual
	TokNotEqual

	// Delimiters.
	TokParenLeft
	TokParenRight
	TokComma
	TokColon

	// End of tokens.
	FinalToken
)

// String returns the string representation of the token type.
func (tt TokenType) String() string {
	return tokenTypeStrings[tt]
}

// Map of token types to their string representation for debugging.
var tokenTypeStrings = map[TokenType]string{
	TokError: "ERROR",
	TokEOF:   "EOF",

	TokIdentifier: "IDENTIFIER",
	TokNumber:     "NUMBER",
	TokString:     "STRING",

	TokAssign:   "ASSIGN",
	TokSet:      "SET",
	TokPrint:    "PRINT",
	TokIf:       "IF",
	TokElse:     "ELSE",
	TokWhile:    "WHILE",
	TokFor:      "FOR",
	TokIn:       "IN",
	TokDef:      "DEF",
	TokCall:     "CALL",
	TokBreak:    "BREAK",
	TokContinue: "CONTINUE",
	TokReturn:   "RETURN",
	TokEnd:      "END",

	TokPlus:         "PLUS",
	TokMinus:        "MINUS",
	TokMultiply:     "MULTIPLY",
	TokSlash:        "SLASH",
	TokLess:         "LESS",
	TokGreater:      "GREATER",
	TokLessEqual:    "LESS_EQUAL",
	TokGreaterEqual: "GREATER_EQUAL",
	TokEqualEqual:   "EQUAL_EQUAL",
	TokNotEqual:     "NOT_EQUAL",

	TokParenLeft:  "PAREN_LEFT",
	TokParenRight: "PAREN_RIGHT",
	TokComma:      "COMMA",
	TokColon:      "COLON",
}

// canonicalTokens maps dialect productions to the token they lex to.
var canonicalTokens = map[dialect.Canonical]TokenType{
	dialect.Assign:   TokAssign,
	dialect.Set:      TokSet,
	dialect.Print:    TokPrint,
	dialect.If:       TokIf,
	dialect.Else:     TokElse,
	dialect.While:    TokWhile,
	dialect.For:      TokFor,
	dialect.In:       TokIn,
	dialect.Def:      TokDef,
	dialect.Call:     TokCall,
	dialect.Break:    TokBreak,
	dialect.Continue: TokContinue,
	dialect.Return:   TokReturn,
	dialect.End:      TokEnd,

	dialect.Add: TokPlus,
	dialect.Sub: TokMinus,
	dialect.Mul: TokMultiply,
	dialect.Div: TokSlash,
	dialect.Lt:  TokLess,
	dialect.Gt:  TokGreater,
	dialect.Le:  TokLessEqual,
	dialect.Ge:  TokGreaterEqual,
	dialect.Eq:  TokEqualEqual,
	dialect.Ne:  TokNotEqual,
}

// CanonicalOf returns the dialect production a keyword or operator token stands for.
func CanonicalOf(tt TokenType) (dialect.Canonical, bool) {
	for c, t := range canonicalTokens {
		if t == tt {
			return c, true
		}
	}
	return "", false
}

func (tt TokenType) IsOneOf(t ...TokenType) bool {
	return slices.Contains(t, tt)
}

// Token represents a lexical token of a slang program.
type Token struct {
	Type  TokenType
	Value string

	Line int // 1-based.
	Col  int // 1-based, in runes.
}

func (t Token) String() string {
	switch {
	case t.Type == TokEOF:
		return "EOF"
	case t.Type == TokError:
		return t.errorString()
	case len(t.Value) > 16:
		return fmt.Sprintf("%s[%d:%d]: %.16q", t.Type, t.Line, t.Col, t.Value)
	}
	return fmt.Sprintf("%s[%d:%d]: %q", t.Type, t.Line, t.Col, t.Value)
}

func (t Token) errorString() string {
	return fmt.Sprintf("ERROR [%d:%d]: %s", t.Line, t.Col, t.Value)
}
