// Package ast defines the abstract syntax tree node types produced by the
// parser and consumed by the evaluator.
package ast

import (
	"bytes"
	"strings"

	"github.com/khaledouriemmi/djerba/internal/token"
)

// Node is the base interface implemented by every AST node.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() token.Position
}

// Expression is a node that produces a value when evaluated.
type Expression interface {
	Node
	expressionNode()
}

// Statement is a node that performs an action and/or a control-flow
// signal, but does not itself produce a value.
type Statement interface {
	Node
	statementNode()
}

// Program is the root of the AST: a sequence of top-level statements.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Statements {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

func (p *Program) Pos() token.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return token.Position{Line: 1, Column: 1}
}

// Block is a brace-delimited sequence of statements, used as the body of
// If/While/ForLoop/FuncDef.
type Block struct {
	Token      token.Token // the '{' token
	Statements []Statement
}

func (b *Block) TokenLiteral() string { return b.Token.Literal }
func (b *Block) Pos() token.Position  { return b.Token.Pos }
func (b *Block) String() string {
	var out bytes.Buffer
	out.WriteString("{\n")
	for _, s := range b.Statements {
		out.WriteString("  ")
		out.WriteString(strings.ReplaceAll(s.String(), "\n", "\n  "))
		out.WriteString("\n")
	}
	out.WriteString("}")
	return out.String()
}
