// Package lexer implements the Monkey lexer (tokeniser).
//
// The lexer converts a source string into a stream of [ast.Token] values, one
// per call to [Lexer.NextToken]. It never fails: a byte it does not understand
// comes back as an [ast.ILLEGAL] token and the parser decides what to do with it.
//
// Design notes:
//   - Single pass over bytes with a current and a next read position.
//   - Identifiers are ASCII only and are classified as keywords via
//     [ast.LookupIdent] after they are scanned.
//   - The two-character operators (==, !=) need one byte of look-ahead,
//     provided by peekChar.
package lexer

import (
	"github.com/metaphox/monkey/ast"
)

// Lexer holds the scanning state for a single source string.
// Create one with [New]; never copy a Lexer after first use.
type Lexer struct {
	input   string // the full source text
	pos     int    // current read position (index of ch)
	readPos int    // next read position (pos + 1)
	ch      byte   // current character, 0 once the input is exhausted (pos == len(input))
}

// New creates a [Lexer] positioned on the first character of input.
func New(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// NextToken returns the next token from the input.
//
// Whitespace is skipped before each token. Once the input is exhausted every
// call returns an [ast.EOF] token with an empty literal.
func (l *Lexer) NextToken() ast.Token {
	l.skipWhitespace()

	// A NUL byte inside the input is an ordinary illegal character; only
	// running off the end yields EOF.
	if l.pos >= len(l.input) {
		return ast.Token{Type: ast.EOF, Literal: ""}
	}

	var tok ast.Token

	switch l.ch {
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			tok = ast.Token{Type: ast.EQ, Literal: "=="}
		} else {
			tok = l.newToken(ast.ASSIGN)
		}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = ast.Token{Type: ast.NOT_EQ, Literal: "!="}
		} else {
			tok = l.newToken(ast.BANG)
		}

	case '+':
		tok = l.newToken(ast.PLUS)
	case '-':
		tok = l.newToken(ast.MINUS)
	case '*':
		tok = l.newToken(ast.ASTERISK)
	case '/':
		tok = l.newToken(ast.SLASH)
	case '<':
		tok = l.newToken(ast.LT)
	case '>':
		tok = l.newToken(ast.GT)

	case ',':
		tok = l.newToken(ast.COMMA)
	case ';':
		tok = l.newToken(ast.SEMICOLON)
	case '(':
		tok = l.newToken(ast.LPAREN)
	case ')':
		tok = l.newToken(ast.RPAREN)
	case '{':
		tok = l.newToken(ast.LBRACE)
	case '}':
		tok = l.newToken(ast.RBRACE)

	default:
		switch {
		case isLetter(l.ch):
			// readIdentifier leaves the cursor on the first byte after the
			// identifier, so skip the trailing readChar below.
			return l.readIdentifier()
		case isDigit(l.ch):
			return l.readNumber()
		default:
			tok = l.newToken(ast.ILLEGAL)
		}
	}

	l.readChar()
	return tok
}

// Tokenize drains a fresh lexer over input and returns every token up to and
// including the first EOF.
func Tokenize(input string) []ast.Token {
	l := New(input)
	var toks []ast.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == ast.EOF {
			return toks
		}
	}
}

// readChar advances the lexer by one byte. Past the end of input l.ch is 0
// and the positions stop moving.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
		l.pos = len(l.input)
		return
	}
	l.ch = l.input[l.readPos]
	l.pos = l.readPos
	l.readPos++
}

// peekChar returns the next byte without consuming it, or 0 at end of input.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) readIdentifier() ast.Token {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	literal := l.input[start:l.pos]
	return ast.Token{Type: ast.LookupIdent(literal), Literal: literal}
}

// readNumber scans a run of decimal digits. There is no sign, fraction or
// exponent; "-5" is a prefix expression built by the parser.
func (l *Lexer) readNumber() ast.Token {
	start := l.pos
	for isDigit(l.ch) {
		l.readChar()
	}
	return ast.Token{Type: ast.INT, Literal: l.input[start:l.pos]}
}

// newToken makes a single-byte token whose literal is the source byte at pos.
func (l *Lexer) newToken(tt ast.TokenType) ast.Token {
	return ast.Token{Type: tt, Literal: l.input[l.pos:l.readPos]}
}

// isLetter reports whether b may start or continue an identifier.
func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		b == '_'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
