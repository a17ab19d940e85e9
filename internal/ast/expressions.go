package ast

import (
	"bytes"
	"strings"

	"github.com/khaledouriemmi/djerba/internal/token"
)

// NumberLiteral is a numeric literal.
type NumberLiteral struct {
	Token token.Token
	Value float64
}

func (n *NumberLiteral) expressionNode()      {}
func (n *NumberLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *NumberLiteral) Pos() token.Position  { return n.Token.Pos }
func (n *NumberLiteral) String() string       { return n.Token.Literal }

// StringLiteral is a string literal, already unescaped by the parser.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (s *StringLiteral) expressionNode()      {}
func (s *StringLiteral) TokenLiteral() string { return s.Token.Literal }
func (s *StringLiteral) Pos() token.Position  { return s.Token.Pos }
func (s *StringLiteral) String() string       { return "\"" + s.Value + "\"" }

// BoolLiteral is a boolean literal.
type BoolLiteral struct {
	Token token.Token
	Value bool
}

func (b *BoolLiteral) expressionNode()      {}
func (b *BoolLiteral) TokenLiteral() string { return b.Token.Literal }
func (b *BoolLiteral) Pos() token.Position  { return b.Token.Pos }
func (b *BoolLiteral) String() string       { return b.Token.Literal }

// ListLiteral is a bracketed list literal: "[ expr (, expr)* ]" or the
// empty "[]".
type ListLiteral struct {
	Token    token.Token // the '[' token
	Elements []Expression
}

func (l *ListLiteral) expressionNode()      {}
func (l *ListLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *ListLiteral) Pos() token.Position  { return l.Token.Pos }
func (l *ListLiteral) String() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Var is a variable reference: either a sigil form ($name) or a bare
// identifier, which lets function parameters appear without the sigil
// inside a function body.
type Var struct {
	Token token.Token
	Name  string
}

func (v *Var) expressionNode()      {}
func (v *Var) TokenLiteral() string { return v.Token.Literal }
func (v *Var) Pos() token.Position  { return v.Token.Pos }
func (v *Var) String() string       { return "$" + v.Name }

// Index is a single indexing operation; chains like $name[i][j] are
// represented as nested Index nodes.
type Index struct {
	Token token.Token // the '[' token
	Obj   Expression
	Idx   Expression
}

func (ix *Index) expressionNode()      {}
func (ix *Index) TokenLiteral() string { return ix.Token.Literal }
func (ix *Index) Pos() token.Position  { return ix.Token.Pos }
func (ix *Index) String() string       { return ix.Obj.String() + "[" + ix.Idx.String() + "]" }

// Call is a function-call expression. Function names occupy a separate
// syntactic slot from variable references; there is no "$name(" form.
type Call struct {
	Token token.Token // the identifier token
	Name  string
	Args  []Expression
}

func (c *Call) expressionNode()      {}
func (c *Call) TokenLiteral() string { return c.Token.Literal }
func (c *Call) Pos() token.Position  { return c.Token.Pos }
func (c *Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return c.Name + "(" + strings.Join(parts, ", ") + ")"
}

// BinOp is an arithmetic binary expression; one of + - * / % ^.
type BinOp struct {
	Token token.Token
	Op    string
	Left  Expression
	Right Expression
}

func (b *BinOp) expressionNode()      {}
func (b *BinOp) TokenLiteral() string { return b.Token.Literal }
func (b *BinOp) Pos() token.Position  { return b.Token.Pos }
func (b *BinOp) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(b.Left.String())
	out.WriteString(" " + b.Op + " ")
	out.WriteString(b.Right.String())
	out.WriteString(")")
	return out.String()
}

// Compare is a comparison expression; one of == != <= >= < >.
type Compare struct {
	Token token.Token
	Op    string
	Left  Expression
	Right Expression
}

func (c *Compare) expressionNode()      {}
func (c *Compare) TokenLiteral() string { return c.Token.Literal }
func (c *Compare) Pos() token.Position  { return c.Token.Pos }
func (c *Compare) String() string {
	return "(" + c.Left.String() + " " + c.Op + " " + c.Right.String() + ")"
}

// LogicalOp is a short-circuiting logical expression: "and"/"or" are
// binary (Right set), "not" is unary (Right is nil).
type LogicalOp struct {
	Token token.Token
	Op    string // "and", "or", "not"
	Left  Expression
	Right Expression // nil for "not"
}

func (lo *LogicalOp) expressionNode()      {}
func (lo *LogicalOp) TokenLiteral() string { return lo.Token.Literal }
func (lo *LogicalOp) Pos() token.Position  { return lo.Token.Pos }
func (lo *LogicalOp) String() string {
	if lo.Op == "not" {
		return "(not " + lo.Left.String() + ")"
	}
	return "(" + lo.Left.String() + " " + lo.Op + " " + lo.Right.String() + ")"
}
