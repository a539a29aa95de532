package ast_test

import (
	"testing"

	"github.com/metaphox/monkey/ast"
)

func ident(name string) *ast.Identifier {
	return &ast.Identifier{Token: ast.Token{Type: ast.IDENT, Literal: name}, Value: name}
}

func intLit(lit string, v int64) *ast.IntegerLiteral {
	return &ast.IntegerLiteral{Token: ast.Token{Type: ast.INT, Literal: lit}, Value: v}
}

func infix(left ast.Expression, op string, right ast.Expression) *ast.InfixExpression {
	return &ast.InfixExpression{Token: ast.Token{Literal: op}, Left: left, Operator: op, Right: right}
}

func exprStmt(e ast.Expression) *ast.ExpressionStatement {
	return &ast.ExpressionStatement{Token: ast.Token{Literal: e.TokenLiteral()}, Expression: e}
}

func block(stmts ...ast.Statement) *ast.BlockStatement {
	return &ast.BlockStatement{Token: ast.Token{Type: ast.LBRACE, Literal: "{"}, Statements: stmts}
}

func TestString(t *testing.T) {
	program := &ast.Program{
		Statements: []ast.Statement{
			&ast.LetStatement{
				Token: ast.Token{Type: ast.LET, Literal: "let"},
				Name:  ident("myVar"),
				Value: ident("anotherVar"),
			},
		},
	}

	if got := program.String(); got != "let myVar = anotherVar;" {
		t.Errorf("program.String() wrong. got=%q", got)
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		node ast.Node
		want string
	}{
		{"identifier", ident("x"), "x"},
		{"integer", intLit("42", 42), "42"},
		{"boolean", &ast.Boolean{Token: ast.Token{Type: ast.TRUE, Literal: "true"}, Value: true}, "true"},
		{
			"prefix",
			&ast.PrefixExpression{Token: ast.Token{Type: ast.MINUS, Literal: "-"}, Operator: "-", Right: ident("a")},
			"(-a)",
		},
		{"infix", infix(infix(ident("a"), "+", ident("b")), "+", ident("c")), "((a + b) + c)"},
		{
			"return",
			&ast.ReturnStatement{Token: ast.Token{Type: ast.RETURN, Literal: "return"}, ReturnValue: intLit("5", 5)},
			"return 5;",
		},
		{"bare return", &ast.ReturnStatement{Token: ast.Token{Type: ast.RETURN, Literal: "return"}}, "return;"},
		{"empty block", block(), "{ }"},
		{"block", block(exprStmt(ident("x")), exprStmt(ident("y"))), "{ x y }"},
		{
			"if",
			&ast.IfExpression{
				Token:       ast.Token{Type: ast.IF, Literal: "if"},
				Condition:   infix(ident("x"), "<", ident("y")),
				Consequence: block(exprStmt(ident("x"))),
			},
			"if ((x < y)) { x }",
		},
		{
			"if else",
			&ast.IfExpression{
				Token:       ast.Token{Type: ast.IF, Literal: "if"},
				Condition:   ident("ok"),
				Consequence: block(exprStmt(intLit("1", 1))),
				Alternative: block(exprStmt(intLit("2", 2))),
			},
			"if (ok) { 1 } else { 2 }",
		},
		{
			"function",
			&ast.FunctionLiteral{
				Token:      ast.Token{Type: ast.FUNCTION, Literal: "fn"},
				Parameters: []*ast.Identifier{ident("x"), ident("y")},
				Body:       block(exprStmt(infix(ident("x"), "+", ident("y")))),
			},
			"fn(x, y) { (x + y) }",
		},
		{
			"call",
			&ast.CallExpression{
				Token:     ast.Token{Type: ast.LPAREN, Literal: "("},
				Function:  ident("add"),
				Arguments: []ast.Expression{intLit("1", 1), infix(intLit("2", 2), "*", intLit("3", 3))},
			},
			"add(1, (2 * 3))",
		},
		{
			"program",
			&ast.Program{Statements: []ast.Statement{exprStmt(ident("a")), exprStmt(ident("b"))}},
			"a\nb",
		},
		{"empty program", &ast.Program{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTokenLiteral(t *testing.T) {
	prog := &ast.Program{}
	if prog.TokenLiteral() != "" {
		t.Errorf("empty program TokenLiteral = %q, want \"\"", prog.TokenLiteral())
	}
	prog.Statements = append(prog.Statements, &ast.LetStatement{
		Token: ast.Token{Type: ast.LET, Literal: "let"},
		Name:  ident("x"),
		Value: intLit("1", 1),
	})
	if prog.TokenLiteral() != "let" {
		t.Errorf("TokenLiteral = %q, want \"let\"", prog.TokenLiteral())
	}
}

func TestLookupIdent(t *testing.T) {
	tests := map[string]ast.TokenType{
		"fn":      ast.FUNCTION,
		"let":     ast.LET,
		"true":    ast.TRUE,
		"false":   ast.FALSE,
		"if":      ast.IF,
		"else":    ast.ELSE,
		"return":  ast.RETURN,
		"foobar":  ast.IDENT,
		"Fn":      ast.IDENT,
		"returns": ast.IDENT,
	}
	for in, want := range tests {
		if got := ast.LookupIdent(in); got != want {
			t.Errorf("LookupIdent(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestTokenTypeString(t *testing.T) {
	if got := ast.ASSIGN.String(); got != "ASSIGN" {
		t.Errorf("ASSIGN.String() = %q", got)
	}
	if got := ast.NOT_EQ.String(); got != "NOT_EQ" {
		t.Errorf("NOT_EQ.String() = %q", got)
	}
	if got := ast.TokenType(999).String(); got != "TokenType(?)" {
		t.Errorf("out of range String() = %q", got)
	}
}
