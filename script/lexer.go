package script

import (
	"strconv"
	"strings"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent  // variable or function name, lowercased
	tokConst  // $NAME, name uppercased without the $
	tokPlus   // +
	tokMinus  // -
	tokStar   // *
	tokSlash  // /
	tokAssign // =
	tokLParen // (
	tokRParen // )
	tokComma  // ,
	tokSemi   // ;
)

type token struct {
	kind tokenKind
	text string
	val  float64 // tokNumber only
	line int
	col  int
}

// describe renders a token for error messages.
func (t token) describe() string {
	switch t.kind {
	case tokEOF:
		return "end of script"
	case tokNumber:
		return "number " + t.text
	default:
		return "'" + t.text + "'"
	}
}

// lexer scans a script one token at a time, tracking 1-based line and
// column positions for error reporting.
type lexer struct {
	src  string
	pos  int
	line int
	col  int
}

func newLexer(src string) *lexer {
	return &lexer{src: src, line: 1, col: 1}
}

func (l *lexer) peekByte() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *lexer) advance() byte {
	c := l.src[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return c
}

// skipSpace consumes whitespace and // comments. Newlines are ordinary
// whitespace: only semicolons separate statements.
func (l *lexer) skipSpace() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.advance()
		case c == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '/':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isIdentPart(c byte) bool { return isIdentStart(c) || isDigit(c) }

// next scans the following token. Returns a *CompileError for characters
// or number literals the language does not have.
func (l *lexer) next() (token, *CompileError) {
	l.skipSpace()

	tok := token{line: l.line, col: l.col}
	if l.pos >= len(l.src) {
		tok.kind = tokEOF
		return tok, nil
	}

	c := l.peekByte()
	switch {
	case isDigit(c) || c == '.' && l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1]):
		return l.scanNumber(tok)

	case isIdentStart(c):
		start := l.pos
		for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
			l.advance()
		}
		tok.kind = tokIdent
		tok.text = strings.ToLower(l.src[start:l.pos])
		return tok, nil

	case c == '$':
		l.advance()
		start := l.pos
		for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
			l.advance()
		}
		if start == l.pos {
			return tok, errorf(tok, "expected constant name after '$'")
		}
		tok.kind = tokConst
		tok.text = strings.ToUpper(l.src[start:l.pos])
		return tok, nil
	}

	l.advance()
	tok.text = string(c)
	switch c {
	case '+':
		tok.kind = tokPlus
	case '-':
		tok.kind = tokMinus
	case '*':
		tok.kind = tokStar
	case '/':
		tok.kind = tokSlash
	case '=':
		tok.kind = tokAssign
	case '(':
		tok.kind = tokLParen
	case ')':
		tok.kind = tokRParen
	case ',':
		tok.kind = tokComma
	case ';':
		tok.kind = tokSemi
	default:
		return tok, errorf(tok, "unexpected character %q", c)
	}
	return tok, nil
}

// scanNumber consumes a decimal literal with optional fraction and exponent.
func (l *lexer) scanNumber(tok token) (token, *CompileError) {
	start := l.pos
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.advance()
	}
	if l.pos < len(l.src) && l.src[l.pos] == '.' {
		l.advance()
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.advance()
		}
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		mark := l.pos
		l.advance()
		if l.pos < len(l.src) && (l.src[l.pos] == '+' || l.src[l.pos] == '-') {
			l.advance()
		}
		if l.pos >= len(l.src) || !isDigit(l.src[l.pos]) {
			// Not an exponent after all; back off to the bare mantissa.
			// Positions past mark were only ever on the same line.
			l.col -= l.pos - mark
			l.pos = mark
		} else {
			for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
				l.advance()
			}
		}
	}

	tok.kind = tokNumber
	tok.text = l.src[start:l.pos]
	v, err := strconv.ParseFloat(tok.text, 64)
	if err != nil {
		return tok, errorf(tok, "invalid number %q", tok.text)
	}
	tok.val = v
	return tok, nil
}
