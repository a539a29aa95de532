// Package parser implements the Monkey recursive-descent parser.
//
// The parser reads a token stream from a [lexer.Lexer] and builds an
// [ast.Program]. Expression parsing uses Pratt (top-down operator precedence)
// so that precedence rules are encoded in a small table rather than a tangle
// of grammar rules.
//
// Usage:
//
//	l := lexer.New(source)
//	p := parser.New(l)
//	prog := p.ParseProgram()
//	if errs := p.Errors(); len(errs) != 0 { ... }
//
// Error recovery: the parser collects errors and keeps going so that several
// problems can be reported in one pass. A malformed let or return statement
// is dropped and the parser skips to the next semicolon.
package parser

import (
	"fmt"
	"strconv"

	"github.com/metaphox/monkey/ast"
	"github.com/metaphox/monkey/lexer"
)

// ── Operator precedence ───────────────────────────────────────────────────────

// Precedence levels, ordered from lowest to highest.
const (
	precLowest      = iota // starting point
	precEquals             // == !=
	precLessGreater        // < >
	precSum                // + -
	precProduct            // * /
	precPrefix             // -x !x
	precCall               // f(x)
)

// tokenPrecedence maps a TokenType to its infix precedence level.
// Tokens not in this map have precLowest.
var tokenPrecedence = map[ast.TokenType]int{
	ast.EQ:       precEquals,
	ast.NOT_EQ:   precEquals,
	ast.LT:       precLessGreater,
	ast.GT:       precLessGreater,
	ast.PLUS:     precSum,
	ast.MINUS:    precSum,
	ast.ASTERISK: precProduct,
	ast.SLASH:    precProduct,
	ast.LPAREN:   precCall,
}

// ── Parser ────────────────────────────────────────────────────────────────────

// prefixParseFn parses an expression that starts with the current token.
type prefixParseFn func() ast.Expression

// infixParseFn parses an operator in infix position given the already-parsed
// left-hand side.
type infixParseFn func(left ast.Expression) ast.Expression

// Parser holds all state needed to parse one source string.
// Create one with [New] and call [Parser.ParseProgram].
type Parser struct {
	l      *lexer.Lexer
	cur    ast.Token // current token (the one being examined)
	peek   ast.Token // one-token look-ahead
	errors []string  // accumulated parse errors, in the order found

	depth int // braces opened by cur and not yet closed
	block int // depth inside the innermost block being parsed, 0 at top level

	prefixFns map[ast.TokenType]prefixParseFn
	infixFns  map[ast.TokenType]infixParseFn
}

// New creates a Parser that reads tokens from l.
// It registers all parse functions and primes the two-token lookahead.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{
		l:         l,
		prefixFns: make(map[ast.TokenType]prefixParseFn),
		infixFns:  make(map[ast.TokenType]infixParseFn),
	}

	p.registerPrefix(ast.IDENT, p.parseIdentifier)
	p.registerPrefix(ast.INT, p.parseIntegerLiteral)
	p.registerPrefix(ast.TRUE, p.parseBoolean)
	p.registerPrefix(ast.FALSE, p.parseBoolean)
	p.registerPrefix(ast.BANG, p.parsePrefixExpression)
	p.registerPrefix(ast.MINUS, p.parsePrefixExpression)
	p.registerPrefix(ast.LPAREN, p.parseGroupedExpression)
	p.registerPrefix(ast.IF, p.parseIfExpression)
	p.registerPrefix(ast.FUNCTION, p.parseFunctionLiteral)

	for _, tt := range []ast.TokenType{
		ast.PLUS, ast.MINUS, ast.ASTERISK, ast.SLASH,
		ast.EQ, ast.NOT_EQ, ast.LT, ast.GT,
	} {
		p.registerInfix(tt, p.parseInfixExpression)
	}
	p.registerInfix(ast.LPAREN, p.parseCallExpression)

	// After two advances cur is the first token and peek the second.
	p.advance()
	p.advance()

	return p
}

// Parse is a convenience wrapper that lexes and parses src in one call and
// returns the program together with the collected errors.
func Parse(src string) (*ast.Program, []string) {
	p := New(lexer.New(src))
	prog := p.ParseProgram()
	return prog, p.Errors()
}

// Errors returns all parse errors collected so far, in the order they were found.
func (p *Parser) Errors() []string {
	return p.errors
}

// ParseProgram builds and returns the AST for the whole input. It always
// returns a non-nil Program, even when errors were recorded.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{Statements: []ast.Statement{}}
	for !p.curIs(ast.EOF) {
		// An unrecognised character at the start of a statement ends the
		// parse; nothing after it can be trusted.
		if p.curIs(ast.ILLEGAL) {
			p.errorf("illegal token %q", p.cur.Literal)
			break
		}
		if s := p.parseStatement(); s != nil {
			prog.Statements = append(prog.Statements, s)
		}
		p.advance()
	}
	return prog
}

// ── Internal token management ─────────────────────────────────────────────────

// advance consumes one token from the lexer, shifting peek into cur.
func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.l.NextToken()

	switch p.cur.Type {
	case ast.LBRACE:
		p.depth++
	case ast.RBRACE:
		// A stray '}' at top level must not drive the count negative.
		if p.depth > 0 {
			p.depth--
		}
	}
}

// expectPeek checks that the peek token matches tt. If so it advances and
// returns true; otherwise it records an error and returns false (no advance).
func (p *Parser) expectPeek(tt ast.TokenType) bool {
	if p.peekIs(tt) {
		p.advance()
		return true
	}
	p.peekError(tt)
	return false
}

func (p *Parser) curIs(tt ast.TokenType) bool  { return p.cur.Type == tt }
func (p *Parser) peekIs(tt ast.TokenType) bool { return p.peek.Type == tt }

// curPrecedence returns the infix precedence of the current token.
func (p *Parser) curPrecedence() int {
	if prec, ok := tokenPrecedence[p.cur.Type]; ok {
		return prec
	}
	return precLowest
}

// peekPrecedence returns the infix precedence of the peek token.
func (p *Parser) peekPrecedence() int {
	if prec, ok := tokenPrecedence[p.peek.Type]; ok {
		return prec
	}
	return precLowest
}

// skipStatement moves cur forward to the semicolon ending the failed statement
// (or EOF) so that the caller's advance resumes on a fresh statement. Inside a
// block it never crosses the block's closing brace: it stops just before it,
// or stays on it when the failure already consumed it.
func (p *Parser) skipStatement() {
	for !p.curIs(ast.EOF) {
		if p.closesBlock() {
			return
		}
		if p.curIs(ast.SEMICOLON) && p.depth == p.block {
			return
		}
		if p.block > 0 && p.peekIs(ast.RBRACE) && p.depth == p.block {
			return
		}
		p.advance()
	}
}

// closesBlock reports whether cur is the '}' of the innermost open block.
func (p *Parser) closesBlock() bool {
	return p.block > 0 && p.curIs(ast.RBRACE) && p.depth < p.block
}

func (p *Parser) registerPrefix(tt ast.TokenType, fn prefixParseFn) {
	p.prefixFns[tt] = fn
}

func (p *Parser) registerInfix(tt ast.TokenType, fn infixParseFn) {
	p.infixFns[tt] = fn
}

// ── Statement parsing ─────────────────────────────────────────────────────────

// parseStatement dispatches on the current token. It returns nil when the
// statement could not be parsed; the error has already been recorded.
func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Type {
	case ast.LET:
		return p.parseLetStatement()
	case ast.RETURN:
		return p.parseReturnStatement()
	default:
		return p.parseExpressionStatement()
	}
}

// parseLetStatement parses `let name = expr [;]`.
func (p *Parser) parseLetStatement() ast.Statement {
	tok := p.cur // 'let'

	if !p.expectPeek(ast.IDENT) {
		p.skipStatement()
		return nil
	}
	name := &ast.Identifier{Token: p.cur, Value: p.cur.Literal}

	if !p.expectPeek(ast.ASSIGN) {
		p.skipStatement()
		return nil
	}
	p.advance() // move past '='

	value := p.parseExpression(precLowest)
	if value == nil {
		p.skipStatement()
		return nil
	}

	if p.peekIs(ast.SEMICOLON) {
		p.advance()
	}
	return &ast.LetStatement{Token: tok, Name: name, Value: value}
}

// parseReturnStatement parses `return expr [;]`. A bare `return;` carries no
// value.
func (p *Parser) parseReturnStatement() ast.Statement {
	tok := p.cur // 'return'

	if p.peekIs(ast.SEMICOLON) {
		p.advance()
		return &ast.ReturnStatement{Token: tok}
	}
	p.advance() // move past 'return'

	value := p.parseExpression(precLowest)
	if value == nil {
		p.skipStatement()
		return nil
	}

	if p.peekIs(ast.SEMICOLON) {
		p.advance()
	}
	return &ast.ReturnStatement{Token: tok, ReturnValue: value}
}

// parseExpressionStatement parses an expression in statement position with an
// optional trailing semicolon.
func (p *Parser) parseExpressionStatement() ast.Statement {
	tok := p.cur
	expr := p.parseExpression(precLowest)
	if expr == nil {
		p.skipStatement()
		return nil
	}

	if p.peekIs(ast.SEMICOLON) {
		p.advance()
	}
	return &ast.ExpressionStatement{Token: tok, Expression: expr}
}

// parseBlockStatement parses `{ stmts... }`. The current token must be '{' on
// entry; on return cur = '}'. Running out of input before the closing brace
// records an error and yields nil.
func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.cur, Statements: []ast.Statement{}}

	outer := p.block
	p.block = p.depth
	defer func() { p.block = outer }()

	p.advance() // move past '{'

	for !p.curIs(ast.RBRACE) && !p.curIs(ast.EOF) {
		if s := p.parseStatement(); s != nil {
			block.Statements = append(block.Statements, s)
		}
		// A failed statement may stop on this block's '}'.
		if p.closesBlock() {
			break
		}
		p.advance()
	}

	if p.curIs(ast.EOF) {
		p.errorf("unexpected end of input, expected %s", ast.RBRACE)
		return nil
	}
	return block
}

// ── Expression parsing (Pratt) ────────────────────────────────────────────────

// parseExpression is the Pratt parser entry point. prec is the binding power
// of the operator to the left; only operators that bind strictly tighter are
// folded into the result, which makes equal-precedence operators associate to
// the left.
func (p *Parser) parseExpression(prec int) ast.Expression {
	prefix := p.prefixFns[p.cur.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.cur.Type)
		return nil
	}

	left := prefix()

	for left != nil && !p.peekIs(ast.SEMICOLON) && prec < p.peekPrecedence() {
		infix := p.infixFns[p.peek.Type]
		if infix == nil {
			return left
		}
		p.advance()
		left = infix(left)
	}

	return left
}

// ── Prefix parse functions ────────────────────────────────────────────────────

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.cur, Value: p.cur.Literal}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	tok := p.cur
	val, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil {
		p.errorf("could not parse %q as integer", tok.Literal)
		return nil
	}
	return &ast.IntegerLiteral{Token: tok, Value: val}
}

func (p *Parser) parseBoolean() ast.Expression {
	return &ast.Boolean{Token: p.cur, Value: p.curIs(ast.TRUE)}
}

// parsePrefixExpression handles `!expr` and `-expr`.
func (p *Parser) parsePrefixExpression() ast.Expression {
	tok := p.cur
	p.advance()
	right := p.parseExpression(precPrefix)
	if right == nil {
		return nil
	}
	return &ast.PrefixExpression{Token: tok, Operator: tok.Literal, Right: right}
}

// parseGroupedExpression handles `(expr)`. The parentheses leave no node of
// their own in the tree.
func (p *Parser) parseGroupedExpression() ast.Expression {
	p.advance() // move past '('
	expr := p.parseExpression(precLowest)
	if expr == nil {
		return nil
	}
	if !p.expectPeek(ast.RPAREN) {
		return nil
	}
	return expr
}

// parseIfExpression handles `if (cond) { ... } [else { ... }]`.
func (p *Parser) parseIfExpression() ast.Expression {
	tok := p.cur // 'if'

	if !p.expectPeek(ast.LPAREN) {
		return nil
	}
	p.advance() // move to condition

	cond := p.parseExpression(precLowest)
	if cond == nil {
		return nil
	}
	if !p.expectPeek(ast.RPAREN) {
		return nil
	}
	if !p.expectPeek(ast.LBRACE) {
		return nil
	}
	consequence := p.parseBlockStatement()
	if consequence == nil {
		return nil
	}

	expr := &ast.IfExpression{Token: tok, Condition: cond, Consequence: consequence}

	if p.peekIs(ast.ELSE) {
		p.advance() // consume 'else'
		if !p.expectPeek(ast.LBRACE) {
			return nil
		}
		alternative := p.parseBlockStatement()
		if alternative == nil {
			return nil
		}
		expr.Alternative = alternative
	}

	return expr
}

// parseFunctionLiteral handles `fn(params) { body }`.
func (p *Parser) parseFunctionLiteral() ast.Expression {
	tok := p.cur // 'fn'
	if !p.expectPeek(ast.LPAREN) {
		return nil
	}

	params, ok := p.parseFunctionParameters()
	if !ok {
		return nil
	}

	if !p.expectPeek(ast.LBRACE) {
		return nil
	}
	body := p.parseBlockStatement()
	if body == nil {
		return nil
	}
	return &ast.FunctionLiteral{Token: tok, Parameters: params, Body: body}
}

// parseFunctionParameters parses a comma-separated identifier list. cur = '('
// on entry, cur = ')' on successful return.
func (p *Parser) parseFunctionParameters() ([]*ast.Identifier, bool) {
	params := []*ast.Identifier{}

	if p.peekIs(ast.RPAREN) {
		p.advance()
		return params, true
	}

	if !p.expectPeek(ast.IDENT) {
		return nil, false
	}
	params = append(params, &ast.Identifier{Token: p.cur, Value: p.cur.Literal})

	for p.peekIs(ast.COMMA) {
		p.advance() // consume ','
		if !p.expectPeek(ast.IDENT) {
			return nil, false
		}
		params = append(params, &ast.Identifier{Token: p.cur, Value: p.cur.Literal})
	}

	if !p.expectPeek(ast.RPAREN) {
		return nil, false
	}
	return params, true
}

// ── Infix parse functions ─────────────────────────────────────────────────────

// parseInfixExpression handles all binary operators. The right operand is
// parsed at the operator's own precedence.
func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	tok := p.cur
	prec := p.curPrecedence()
	p.advance()
	right := p.parseExpression(prec)
	if right == nil {
		return nil
	}
	return &ast.InfixExpression{Token: tok, Left: left, Operator: tok.Literal, Right: right}
}

// parseCallExpression handles `f(args...)`, triggered when '(' follows an
// expression in infix position.
func (p *Parser) parseCallExpression(fn ast.Expression) ast.Expression {
	tok := p.cur // '('
	args, ok := p.parseExpressionList(ast.RPAREN)
	if !ok {
		return nil
	}
	return &ast.CallExpression{Token: tok, Function: fn, Arguments: args}
}

// parseExpressionList parses a comma-separated list of expressions terminated
// by end. cur is the opening delimiter on entry and end on successful return.
func (p *Parser) parseExpressionList(end ast.TokenType) ([]ast.Expression, bool) {
	list := []ast.Expression{}

	if p.peekIs(end) {
		p.advance()
		return list, true
	}

	p.advance() // move to first element
	first := p.parseExpression(precLowest)
	if first == nil {
		return nil, false
	}
	list = append(list, first)

	for p.peekIs(ast.COMMA) {
		p.advance() // consume ','
		p.advance() // move to next element
		next := p.parseExpression(precLowest)
		if next == nil {
			return nil, false
		}
		list = append(list, next)
	}

	if !p.expectPeek(end) {
		return nil, false
	}
	return list, true
}

// ── Errors ────────────────────────────────────────────────────────────────────

// errorf records a formatted parse error.
func (p *Parser) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *Parser) peekError(tt ast.TokenType) {
	p.errorf("expected next token to be %s, got %s (%q) instead",
		tt, p.peek.Type, p.peek.Literal)
}

func (p *Parser) noPrefixParseFnError(tt ast.TokenType) {
	p.errorf("no prefix parse function for %s (%q) found", tt, p.cur.Literal)
}
