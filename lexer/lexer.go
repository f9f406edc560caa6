// Package lexer provides the lexical analyzer of the slang language.
//
// Keywords and operator symbols are not fixed: they come from the
// dialect table the lexer is created with.
package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"go.creack.net/slang/dialect"
)

const (
	digits          = "0123456789"
	identStartChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ_"
	identChars      = identStartChars + digits
	whitespaceChars = " \t\r\n"
)

type Lexer struct {
	input   string
	dialect *dialect.Dialect

	curToken Token
	prevType TokenType // Type of the last emitted token.

	pos   int // Current position in input.
	width int // Width of the last rune read.
	start int // Position of the start of the current token.

	line      int // Line of start.
	lineStart int // Position of the first byte of line.
}

// New creates a new Lexer for the given input, spelled in d.
func New(input string, d *dialect.Dialect) *Lexer {
	return &Lexer{
		input:    input,
		dialect:  d,
		line:     1,
		prevType: TokEOF,
	}
}

// NextToken returns the next token. Once the input is exhausted, or after an
// error token, it keeps returning TokEOF.
func (l *Lexer) NextToken() Token {
	l.curToken = Token{Type: TokEOF, Value: "EOF", Line: l.line}
	state := lexText
	for {
		state = state(l)
		if state == nil {
			l.prevType = l.curToken.Type
			return l.curToken
		}
	}
}

// All lexes the remaining input up to and including the final TokEOF. An
// error token, if any, is the one right before it.
func (l *Lexer) All() []Token {
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokEOF {
			return tokens
		}
	}
}

func (l *Lexer) next() rune {
	if l.pos >= len(l.input) {
		l.width = 0
		return 0
	}
	r, n := utf8.DecodeRuneInString(l.input[l.pos:])
	l.width = n
	l.pos += n
	return r
}

// backup steps back one rune. Can only be called once per call of next.
func (l *Lexer) backup() {
	l.pos -= l.width
	l.width = 0
}

func (l *Lexer) peek() rune {
	r := l.next()
	l.backup()
	return r
}

func (l *Lexer) accept(valid string) bool {
	if strings.ContainsRune(valid, l.next()) {
		return true
	}
	l.backup()
	return false
}

func (l *Lexer) acceptRun(valid string) bool {
	accepted := false
	for strings.ContainsRune(valid, l.next()) {
		accepted = true
	}
	l.backup()
	return accepted
}

// signAllowed reports whether a '-' followed by a digit starts a number.
// It does unless the dialect spells '-' as an operator and the last token
// can end an operand.
func (l *Lexer) signAllowed() bool {
	if _, ok := l.dialect.Symbol("-"); !ok {
		return true
	}
	return !l.prevType.IsOneOf(TokIdentifier, TokNumber, TokString, TokParenRight)
}

func (l *Lexer) thisToken(tt TokenType) Token {
	t := Token{
		Type:  tt,
		Value: l.input[l.start:l.pos],
		Line:  l.line,
		Col:   utf8.RuneCountInString(l.input[l.lineStart:l.start]) + 1,
	}
	l.ignore()
	return t
}

func (l *Lexer) emitToken(t Token) stateFn {
	l.curToken = t
	return nil
}

func (l *Lexer) emit(tt TokenType) stateFn {
	return l.emitToken(l.thisToken(tt))
}

// ignore drops the pending input, keeping track of lines.
func (l *Lexer) ignore() {
	pending := l.input[l.start:l.pos]
	if i := strings.LastIndexByte(pending, '\n'); i >= 0 {
		l.line += strings.Count(pending, "\n")
		l.lineStart = l.start + i + 1
	}
	l.start = l.pos
}

func (l *Lexer) errorf(format string, args ...any) stateFn {
	l.curToken = Token{
		Type:  TokError,
		Value: fmt.Sprintf(format, args...),
		Line:  l.line,
		Col:   utf8.RuneCountInString(l.input[l.lineStart:l.start]) + 1,
	}
	l.start = 0
	l.pos = 0
	l.lineStart = 0
	l.input = l.input[:0]
	return nil
}
