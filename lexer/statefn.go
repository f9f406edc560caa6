package lexer

import (
	"strings"
	"unicode/utf8"

	"go.creack.net/slang/dialect"
)

type stateFn func(*Lexer) stateFn

func lexText(l *Lexer) stateFn {
	// Runes that just advance one and emit a token.
	singles := map[rune]TokenType{
		'(': TokParenLeft,
		')': TokParenRight,
		',': TokComma,
		':': TokColon,
	}

	switch r := l.peek(); {
	case r == 0 && l.pos >= len(l.input):
		return l.emit(TokEOF)
	case strings.ContainsRune(whitespaceChars, r):
		l.acceptRun(whitespaceChars)
		l.ignore()
		return lexText
	case r == '#':
		return lexComment
	case r == '"', r == '\'':
		return lexString(r)
	case r >= '0' && r <= '9':
		return lexNumber
	case r == '-':
		l.next()
		if p := l.peek(); p >= '0' && p <= '9' && l.signAllowed() {
			return lexNumber
		}
		return lexOperator
	case strings.ContainsRune(identStartChars, r):
		return lexIdentifier
	case strings.ContainsRune(dialect.OperatorRunes, r):
		l.next()
		return lexOperator
	default:
		if tok, ok := singles[r]; ok {
			l.next()
			return l.emit(tok)
		}
		return l.errorf("unexpected character: %q", r)
	}
}

func lexComment(l *Lexer) stateFn {
	for {
		r := l.next()
		if r == '\n' || (r == 0 && l.pos >= len(l.input)) {
			break
		}
	}
	l.ignore()
	return lexText
}

// lexNumber expects an optional sign to be already consumed.
func lexNumber(l *Lexer) stateFn {
	l.acceptRun(digits)
	if l.peek() == '.' {
		mark := l.pos
		l.next()
		if !l.acceptRun(digits) {
			// A trailing dot is not part of the number.
			l.pos = mark
		}
	}
	return l.emit(TokNumber)
}

// lexOperator expects the first operator rune to be already consumed.
// Longest spelling known to the dialect wins.
func lexOperator(l *Lexer) stateFn {
	first := l.input[l.start:l.pos]
	if r := l.peek(); strings.ContainsRune(dialect.OperatorRunes, r) {
		if c, ok := l.dialect.Symbol(first + string(r)); ok {
			l.next()
			return l.emit(canonicalTokens[c])
		}
	}
	if c, ok := l.dialect.Symbol(first); ok {
		return l.emit(canonicalTokens[c])
	}
	return l.errorf("unexpected character: %q", first)
}

func lexString(kind rune) stateFn {
	return func(l *Lexer) stateFn {
		l.accept(string(kind))
		for {
			r := l.next()
			if r == '\n' || (r == 0 && l.pos >= len(l.input)) {
				return l.errorf("unclosed %q", kind)
			}
			if r == kind {
				break
			}
			if r == utf8.RuneError && l.width == 1 {
				return l.errorf("invalid UTF-8 in string")
			}
			if r == '\\' { // The escaped rune never closes the string.
				switch e := l.next(); {
				case e == '\n' || e == 0 && l.pos >= len(l.input):
					return l.errorf("unclosed %q", kind)
				case e == utf8.RuneError && l.width == 1:
					return l.errorf("invalid UTF-8 in string")
				}
			}
		}
		return l.emit(TokString)
	}
}

func lexIdentifier(l *Lexer) stateFn {
	l.acceptRun(identChars)
	word := l.input[l.start:l.pos]
	if c, ok := l.dialect.Keyword(word); ok {
		return l.emit(canonicalTokens[c])
	}
	return l.emit(TokIdentifier)
}
