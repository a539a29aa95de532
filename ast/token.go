// Package ast defines the token types and the Token struct used by the Monkey
// lexer and parser, together with the AST node types the parser builds.
//
// Tokens are the smallest meaningful units of Monkey source. A token carries
// its type and the exact literal text it was scanned from; source positions
// are not tracked.
package ast

// TokenType identifies the category of a scanned token.
type TokenType int

const (
	// ── Special ────────────────────────────────────────────────────────────────

	// ILLEGAL is a character the lexer does not recognise. The parser reports it.
	ILLEGAL TokenType = iota
	// EOF marks the end of the input stream. The lexer repeats it forever.
	EOF

	// ── Literals ───────────────────────────────────────────────────────────────

	// IDENT is an identifier: [a-zA-Z_][a-zA-Z0-9_]*
	IDENT
	// INT is an unsigned decimal integer literal. Negative numbers are
	// prefix expressions.
	INT

	// ── Operators ──────────────────────────────────────────────────────────────

	ASSIGN
	PLUS
	MINUS
	BANG
	ASTERISK
	SLASH

	LT
	GT
	EQ
	NOT_EQ

	// ── Delimiters ──────────────────────────────────────────────────────────────

	COMMA
	SEMICOLON

	LPAREN
	RPAREN
	LBRACE
	RBRACE

	// ── Keywords ───────────────────────────────────────────────────────────────

	FUNCTION
	LET
	TRUE
	FALSE
	IF
	ELSE
	RETURN
)

var tokenNames = [...]string{
	ILLEGAL:   "ILLEGAL",
	EOF:       "EOF",
	IDENT:     "IDENT",
	INT:       "INT",
	ASSIGN:    "ASSIGN",
	PLUS:      "PLUS",
	MINUS:     "MINUS",
	BANG:      "BANG",
	ASTERISK:  "ASTERISK",
	SLASH:     "SLASH",
	LT:        "LT",
	GT:        "GT",
	EQ:        "EQ",
	NOT_EQ:    "NOT_EQ",
	COMMA:     "COMMA",
	SEMICOLON: "SEMICOLON",
	LPAREN:    "LPAREN",
	RPAREN:    "RPAREN",
	LBRACE:    "LBRACE",
	RBRACE:    "RBRACE",
	FUNCTION:  "FUNCTION",
	LET:       "LET",
	TRUE:      "TRUE",
	FALSE:     "FALSE",
	IF:        "IF",
	ELSE:      "ELSE",
	RETURN:    "RETURN",
}

// String returns the upper-case name of the token type, e.g. "ASSIGN".
func (tt TokenType) String() string {
	if tt >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return "TokenType(?)"
}

// keywords maps the literal text of every Monkey keyword to its TokenType.
// It is built once at package initialisation and only ever read.
var keywords = map[string]TokenType{
	"fn":     FUNCTION,
	"let":    LET,
	"true":   TRUE,
	"false":  FALSE,
	"if":     IF,
	"else":   ELSE,
	"return": RETURN,
}

// LookupIdent checks whether ident is a reserved keyword and returns the
// corresponding TokenType. If ident is not a keyword, IDENT is returned.
func LookupIdent(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return IDENT
}

// Token is a single lexical unit produced by the lexer.
type Token struct {
	Type    TokenType
	Literal string
}

// String returns the literal text of the token.
func (t Token) String() string {
	return t.Literal
}
