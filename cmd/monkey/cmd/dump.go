package cmd

import (
	"fmt"

	"github.com/metaphox/monkey/ast"
)

// node is the YAML shape of one AST node. Only the fields that apply to the
// node's type are set.
type node struct {
	Type        string   `yaml:"type"`
	Literal     string   `yaml:"literal,omitempty"`
	Operator    string   `yaml:"operator,omitempty"`
	Name        string   `yaml:"name,omitempty"`
	Parameters  []string `yaml:"parameters,omitempty"`
	Value       *node    `yaml:"value,omitempty"`
	Left        *node    `yaml:"left,omitempty"`
	Right       *node    `yaml:"right,omitempty"`
	Condition   *node    `yaml:"condition,omitempty"`
	Consequence *node    `yaml:"consequence,omitempty"`
	Alternative *node    `yaml:"alternative,omitempty"`
	Function    *node    `yaml:"function,omitempty"`
	Arguments   []*node  `yaml:"arguments,omitempty"`
	Body        *node    `yaml:"body,omitempty"`
	Statements  []*node  `yaml:"statements,omitempty"`
}

func dumpProgram(p *ast.Program) *node {
	return &node{Type: "Program", Statements: dumpStatements(p.Statements)}
}

func dumpStatements(stmts []ast.Statement) []*node {
	out := make([]*node, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, dumpNode(s))
	}
	return out
}

func dumpNode(n ast.Node) *node {
	switch v := n.(type) {
	case nil:
		return nil
	case *ast.LetStatement:
		return &node{Type: "Let", Name: v.Name.Value, Value: dumpExpr(v.Value)}
	case *ast.ReturnStatement:
		return &node{Type: "Return", Value: dumpExpr(v.ReturnValue)}
	case *ast.ExpressionStatement:
		return &node{Type: "Expression", Value: dumpExpr(v.Expression)}
	case *ast.BlockStatement:
		return dumpBlock(v)
	case *ast.Identifier:
		return &node{Type: "Identifier", Name: v.Value}
	case *ast.IntegerLiteral:
		return &node{Type: "Integer", Literal: v.Token.Literal}
	case *ast.Boolean:
		return &node{Type: "Boolean", Literal: v.Token.Literal}
	case *ast.PrefixExpression:
		return &node{Type: "Prefix", Operator: v.Operator, Right: dumpExpr(v.Right)}
	case *ast.InfixExpression:
		return &node{Type: "Infix", Operator: v.Operator, Left: dumpExpr(v.Left), Right: dumpExpr(v.Right)}
	case *ast.IfExpression:
		return &node{
			Type:        "If",
			Condition:   dumpExpr(v.Condition),
			Consequence: dumpBlock(v.Consequence),
			Alternative: dumpBlock(v.Alternative),
		}
	case *ast.FunctionLiteral:
		params := make([]string, len(v.Parameters))
		for i, p := range v.Parameters {
			params[i] = p.Value
		}
		return &node{Type: "Function", Parameters: params, Body: dumpBlock(v.Body)}
	case *ast.CallExpression:
		args := make([]*node, 0, len(v.Arguments))
		for _, a := range v.Arguments {
			args = append(args, dumpExpr(a))
		}
		return &node{Type: "Call", Function: dumpExpr(v.Function), Arguments: args}
	default:
		return &node{Type: fmt.Sprintf("%T", n)}
	}
}

// dumpExpr and dumpBlock keep a nil child nil instead of wrapping it in a
// non-nil interface.
func dumpExpr(e ast.Expression) *node {
	if e == nil {
		return nil
	}
	return dumpNode(e)
}

func dumpBlock(b *ast.BlockStatement) *node {
	if b == nil {
		return nil
	}
	return &node{Type: "Block", Statements: dumpStatements(b.Statements)}
}
