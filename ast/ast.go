package ast

// The node hierarchy is:
//
//	Node (interface)
//	  Statement (interface)
//	    LetStatement, ReturnStatement, ExpressionStatement, BlockStatement
//	  Expression (interface)
//	    Identifier, IntegerLiteral, Boolean
//	    PrefixExpression, InfixExpression
//	    IfExpression, FunctionLiteral, CallExpression
//
// Every node keeps the token that began its production so that its literal
// text can be recovered for diagnostics. The tree is built once by the parser
// and never mutated afterwards; each composite node owns its children.

import (
	"strings"
)

// ── Interfaces ────────────────────────────────────────────────────────────────

// Node is the root interface for every element in the AST.
type Node interface {
	// TokenLiteral returns the literal string of the token that began this node.
	TokenLiteral() string
	// String renders the node back to fully parenthesised source text.
	// Infix and prefix expressions are wrapped in parentheses so that the
	// precedence the parser resolved is visible in the output.
	String() string
}

// Statement is a Node in statement position.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// ── Top-level program ─────────────────────────────────────────────────────────

// Program is the root AST node produced by the parser. Statements are kept in
// source order.
type Program struct {
	Statements []Statement
}

// TokenLiteral returns the literal of the first statement's starting token,
// or "" for an empty program.
func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

// String returns the rendered statements, one per line.
func (p *Program) String() string {
	var out strings.Builder
	for i, s := range p.Statements {
		if i > 0 {
			out.WriteByte('\n')
		}
		out.WriteString(s.String())
	}
	return out.String()
}

// ── Statements ────────────────────────────────────────────────────────────────

// LetStatement binds a name to a value.
//
//	let x = 5;
type LetStatement struct {
	Token Token // the 'let' token
	Name  *Identifier
	Value Expression
}

func (s *LetStatement) statementNode()       {}
func (s *LetStatement) TokenLiteral() string { return s.Token.Literal }
func (s *LetStatement) String() string {
	var out strings.Builder
	out.WriteString(s.TokenLiteral() + " ")
	out.WriteString(s.Name.String())
	out.WriteString(" = ")
	if s.Value != nil {
		out.WriteString(s.Value.String())
	}
	out.WriteString(";")
	return out.String()
}

// ReturnStatement returns a value from the enclosing function.
//
//	return x + 1;
type ReturnStatement struct {
	Token       Token // the 'return' token
	ReturnValue Expression
}

func (s *ReturnStatement) statementNode()       {}
func (s *ReturnStatement) TokenLiteral() string { return s.Token.Literal }
func (s *ReturnStatement) String() string {
	if s.ReturnValue == nil {
		return s.TokenLiteral() + ";"
	}
	return s.TokenLiteral() + " " + s.ReturnValue.String() + ";"
}

// ExpressionStatement wraps an expression that appears in statement position.
//
//	x + 10;
type ExpressionStatement struct {
	Token      Token // the first token of the expression
	Expression Expression
}

func (s *ExpressionStatement) statementNode()       {}
func (s *ExpressionStatement) TokenLiteral() string { return s.Token.Literal }
func (s *ExpressionStatement) String() string {
	if s.Expression == nil {
		return ""
	}
	return s.Expression.String()
}

// BlockStatement is a brace-delimited sequence of statements used as the body
// of if expressions and function literals.
type BlockStatement struct {
	Token      Token // the '{' token
	Statements []Statement
}

func (s *BlockStatement) statementNode()       {}
func (s *BlockStatement) TokenLiteral() string { return s.Token.Literal }
func (s *BlockStatement) String() string {
	var out strings.Builder
	out.WriteString("{ ")
	for _, st := range s.Statements {
		out.WriteString(st.String())
		out.WriteByte(' ')
	}
	out.WriteString("}")
	return out.String()
}

// ── Expressions ───────────────────────────────────────────────────────────────

// Identifier is a reference to a named binding.
type Identifier struct {
	Token Token // the IDENT token
	Value string
}

func (e *Identifier) expressionNode()      {}
func (e *Identifier) TokenLiteral() string { return e.Token.Literal }
func (e *Identifier) String() string       { return e.Value }

// IntegerLiteral is a decimal integer literal that fits in an int64.
type IntegerLiteral struct {
	Token Token
	Value int64
}

func (e *IntegerLiteral) expressionNode()      {}
func (e *IntegerLiteral) TokenLiteral() string { return e.Token.Literal }
func (e *IntegerLiteral) String() string       { return e.Token.Literal }

// Boolean is the literal true or false.
type Boolean struct {
	Token Token
	Value bool
}

func (e *Boolean) expressionNode()      {}
func (e *Boolean) TokenLiteral() string { return e.Token.Literal }
func (e *Boolean) String() string       { return e.Token.Literal }

// PrefixExpression is a unary operator applied to its operand: !ok, -x.
type PrefixExpression struct {
	Token    Token  // the operator token
	Operator string // "!" or "-"
	Right    Expression
}

func (e *PrefixExpression) expressionNode()      {}
func (e *PrefixExpression) TokenLiteral() string { return e.Token.Literal }
func (e *PrefixExpression) String() string {
	return "(" + e.Operator + render(e.Right) + ")"
}

// InfixExpression is a binary operator expression: left op right.
type InfixExpression struct {
	Token    Token // the operator token
	Left     Expression
	Operator string // "+", "-", "*", "/", "==", "!=", "<", ">"
	Right    Expression
}

func (e *InfixExpression) expressionNode()      {}
func (e *InfixExpression) TokenLiteral() string { return e.Token.Literal }
func (e *InfixExpression) String() string {
	return "(" + render(e.Left) + " " + e.Operator + " " + render(e.Right) + ")"
}

// IfExpression is a conditional. Alternative is nil when there is no else.
//
//	if (x < y) { x } else { y }
type IfExpression struct {
	Token       Token // the 'if' token
	Condition   Expression
	Consequence *BlockStatement
	Alternative *BlockStatement
}

func (e *IfExpression) expressionNode()      {}
func (e *IfExpression) TokenLiteral() string { return e.Token.Literal }
func (e *IfExpression) String() string {
	var out strings.Builder
	out.WriteString("if (")
	out.WriteString(render(e.Condition))
	out.WriteString(") ")
	if e.Consequence != nil {
		out.WriteString(e.Consequence.String())
	}
	if e.Alternative != nil {
		out.WriteString(" else ")
		out.WriteString(e.Alternative.String())
	}
	return out.String()
}

// FunctionLiteral is an anonymous function.
//
//	fn(x, y) { x + y; }
type FunctionLiteral struct {
	Token      Token // the 'fn' token
	Parameters []*Identifier
	Body       *BlockStatement
}

func (e *FunctionLiteral) expressionNode()      {}
func (e *FunctionLiteral) TokenLiteral() string { return e.Token.Literal }
func (e *FunctionLiteral) String() string {
	params := make([]string, 0, len(e.Parameters))
	for _, p := range e.Parameters {
		params = append(params, p.String())
	}
	var out strings.Builder
	out.WriteString(e.TokenLiteral())
	out.WriteString("(")
	out.WriteString(strings.Join(params, ", "))
	out.WriteString(") ")
	if e.Body != nil {
		out.WriteString(e.Body.String())
	}
	return out.String()
}

// CallExpression applies a function to arguments. Function is either an
// Identifier or a FunctionLiteral (or any expression yielding a function).
//
//	add(1, 2 * 3)
type CallExpression struct {
	Token     Token // the '(' token
	Function  Expression
	Arguments []Expression
}

func (e *CallExpression) expressionNode()      {}
func (e *CallExpression) TokenLiteral() string { return e.Token.Literal }
func (e *CallExpression) String() string {
	args := make([]string, 0, len(e.Arguments))
	for _, a := range e.Arguments {
		args = append(args, render(a))
	}
	return render(e.Function) + "(" + strings.Join(args, ", ") + ")"
}

// render guards against nil operands left behind by a failed sub-parse.
func render(n Node) string {
	if n == nil {
		return ""
	}
	return n.String()
}
