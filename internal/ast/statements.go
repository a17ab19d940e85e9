package ast

import "github.com/khaledouriemmi/djerba/internal/token"

// PrintStmt is the ":>" statement with one or more comma-separated
// expressions.
type PrintStmt struct {
	Token token.Token
	Args  []Expression
}

func (p *PrintStmt) statementNode()       {}
func (p *PrintStmt) TokenLiteral() string { return p.Token.Literal }
func (p *PrintStmt) Pos() token.Position  { return p.Token.Pos }
func (p *PrintStmt) String() string {
	s := ":> "
	for i, a := range p.Args {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	return s
}

// AssignStmt is "$ IDENT <- expr".
type AssignStmt struct {
	Token token.Token // the '$' token
	Name  string
	Expr  Expression
}

func (a *AssignStmt) statementNode()       {}
func (a *AssignStmt) TokenLiteral() string { return a.Token.Literal }
func (a *AssignStmt) Pos() token.Position  { return a.Token.Pos }
func (a *AssignStmt) String() string       { return "$" + a.Name + " <- " + a.Expr.String() }

// IfStmt is a conditional statement with an optional else block.
type IfStmt struct {
	Token token.Token
	Cond  Expression
	Then  *Block
	Else  *Block // nil if no else clause
}

func (i *IfStmt) statementNode()       {}
func (i *IfStmt) TokenLiteral() string { return i.Token.Literal }
func (i *IfStmt) Pos() token.Position  { return i.Token.Pos }
func (i *IfStmt) String() string {
	s := "? " + i.Cond.String() + " " + i.Then.String()
	if i.Else != nil {
		s += " else " + i.Else.String()
	}
	return s
}

// WhileStmt is a condition-checked loop.
type WhileStmt struct {
	Token token.Token
	Cond  Expression
	Body  *Block
}

func (w *WhileStmt) statementNode()       {}
func (w *WhileStmt) TokenLiteral() string { return w.Token.Literal }
func (w *WhileStmt) Pos() token.Position  { return w.Token.Pos }
func (w *WhileStmt) String() string       { return "~ " + w.Cond.String() + " " + w.Body.String() }

// ForLoopStmt iterates a bound variable over a list-valued expression:
// "@> $ IDENT in expr { ... }".
type ForLoopStmt struct {
	Token    token.Token
	VarName  string
	Iterable Expression
	Body     *Block
}

func (f *ForLoopStmt) statementNode()       {}
func (f *ForLoopStmt) TokenLiteral() string { return f.Token.Literal }
func (f *ForLoopStmt) Pos() token.Position  { return f.Token.Pos }
func (f *ForLoopStmt) String() string {
	return "@> $" + f.VarName + " in " + f.Iterable.String() + " " + f.Body.String()
}

// FuncDefStmt defines a user function.
type FuncDefStmt struct {
	Token  token.Token
	Name   string
	Params []string
	Body   *Block
}

func (f *FuncDefStmt) statementNode()       {}
func (f *FuncDefStmt) TokenLiteral() string { return f.Token.Literal }
func (f *FuncDefStmt) Pos() token.Position  { return f.Token.Pos }
func (f *FuncDefStmt) String() string {
	s := "@" + f.Name + "("
	for i, p := range f.Params {
		if i > 0 {
			s += ", "
		}
		s += p
	}
	return s + ") " + f.Body.String()
}

// ReturnStmt carries a mandatory result expression.
type ReturnStmt struct {
	Token token.Token
	Expr  Expression
}

func (r *ReturnStmt) statementNode()       {}
func (r *ReturnStmt) TokenLiteral() string { return r.Token.Literal }
func (r *ReturnStmt) Pos() token.Position  { return r.Token.Pos }
func (r *ReturnStmt) String() string       { return "!> " + r.Expr.String() }

// BreakStmt is a standalone "break".
type BreakStmt struct{ Token token.Token }

func (b *BreakStmt) statementNode()       {}
func (b *BreakStmt) TokenLiteral() string { return b.Token.Literal }
func (b *BreakStmt) Pos() token.Position  { return b.Token.Pos }
func (b *BreakStmt) String() string       { return "break" }

// ContinueStmt is a standalone "continue".
type ContinueStmt struct{ Token token.Token }

func (c *ContinueStmt) statementNode()       {}
func (c *ContinueStmt) TokenLiteral() string { return c.Token.Literal }
func (c *ContinueStmt) Pos() token.Position  { return c.Token.Pos }
func (c *ContinueStmt) String() string       { return "continue" }

// ExpressionStmt wraps an expression used in statement position, its
// result discarded.
type ExpressionStmt struct {
	Token token.Token
	Expr  Expression
}

func (e *ExpressionStmt) statementNode()       {}
func (e *ExpressionStmt) TokenLiteral() string { return e.Token.Literal }
func (e *ExpressionStmt) Pos() token.Position  { return e.Token.Pos }
func (e *ExpressionStmt) String() string       { return e.Expr.String() }
