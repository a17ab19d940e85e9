// Package parser implements Djerba's recursive-descent parser:
// single-token lookahead, producing a Program from the lexer's token
// stream.
package parser

import (
	"strconv"

	"github.com/khaledouriemmi/djerba/internal/ast"
	"github.com/khaledouriemmi/djerba/internal/lexer"
	"github.com/khaledouriemmi/djerba/internal/token"
)

// Parser consumes a Lexer's token stream with one token of lookahead.
type Parser struct {
	l    *lexer.Lexer
	cur  token.Token
	peek token.Token
}

// New creates a Parser reading from l, priming the lookahead buffer.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) curIs(t token.Type) bool  { return p.cur.Type == t }
func (p *Parser) peekIs(t token.Type) bool { return p.peek.Type == t }

// expect requires the current token to have type t, consumes it, and
// returns it; otherwise it returns a *Error.
func (p *Parser) expect(t token.Type, what string) (token.Token, error) {
	if !p.curIs(t) {
		return token.Token{}, errExpected(p.cur, what)
	}
	tok := p.cur
	p.nextToken()
	return tok, nil
}

// skipNewlines consumes zero or more NEWLINE tokens; NEWLINE is always an
// optional statement terminator, never required.
func (p *Parser) skipNewlines() {
	for p.curIs(token.NEWLINE) {
		p.nextToken()
	}
}

// ParseProgram parses the whole token stream into a Program, aborting on
// the first error. A LexError raised while scanning takes priority over
// any ParseError it provoked downstream, since an ILLEGAL token reaching
// the grammar always traces back to an unrecognized byte.
func ParseProgram(src string) (*ast.Program, error) {
	l := lexer.New(src)
	p := New(l)
	prog, perr := p.parseProgram()
	if errs := l.Errors(); len(errs) > 0 {
		return nil, errs[0]
	}
	if perr != nil {
		return nil, perr
	}
	return prog, nil
}

func (p *Parser) parseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	p.skipNewlines()
	for !p.curIs(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)
		p.skipNewlines()
	}
	return prog, nil
}

func (p *Parser) parseBlock() (*ast.Block, error) {
	brace, err := p.expect(token.LBRACE, "{")
	if err != nil {
		return nil, err
	}
	block := &ast.Block{Token: brace}
	p.skipNewlines()
	for !p.curIs(token.RBRACE) {
		if p.curIs(token.EOF) {
			return nil, errExpected(p.cur, "}")
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)
		p.skipNewlines()
	}
	p.nextToken() // consume '}'
	return block, nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.cur.Type {
	case token.PRINT:
		return p.parsePrint()
	case token.DOLLAR:
		return p.parseAssign()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.FORLOOP:
		return p.parseForLoop()
	case token.FUNC:
		return p.parseFuncDef()
	case token.RETURN:
		return p.parseReturn()
	case token.BREAK:
		tok := p.cur
		p.nextToken()
		return &ast.BreakStmt{Token: tok}, nil
	case token.CONTINUE:
		tok := p.cur
		p.nextToken()
		return &ast.ContinueStmt{Token: tok}, nil
	default:
		tok := p.cur
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.ExpressionStmt{Token: tok, Expr: expr}, nil
	}
}

func (p *Parser) parsePrint() (ast.Statement, error) {
	tok := p.cur
	p.nextToken()
	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	args := []ast.Expression{first}
	for p.curIs(token.COMMA) {
		p.nextToken()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, e)
	}
	return &ast.PrintStmt{Token: tok, Args: args}, nil
}

func (p *Parser) parseAssign() (ast.Statement, error) {
	tok := p.cur
	p.nextToken() // consume '$'
	nameTok, err := p.expect(token.IDENT, "identifier")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ARROW, "<-"); err != nil {
		return nil, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.AssignStmt{Token: tok, Name: nameTok.Literal, Expr: expr}, nil
}

func (p *Parser) parseIf() (ast.Statement, error) {
	tok := p.cur
	p.nextToken()
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &ast.IfStmt{Token: tok, Cond: cond, Then: then}
	if p.curIs(token.ELSE) {
		p.nextToken()
		els, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.Else = els
	}
	return stmt, nil
}

func (p *Parser) parseWhile() (ast.Statement, error) {
	tok := p.cur
	p.nextToken()
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Token: tok, Cond: cond, Body: body}, nil
}

func (p *Parser) parseForLoop() (ast.Statement, error) {
	tok := p.cur
	p.nextToken() // consume '@>'
	if _, err := p.expect(token.DOLLAR, "$"); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.IDENT, "identifier")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.IN, "in"); err != nil {
		return nil, err
	}
	iterable, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.ForLoopStmt{Token: tok, VarName: nameTok.Literal, Iterable: iterable, Body: body}, nil
}

func (p *Parser) parseFuncDef() (ast.Statement, error) {
	tok := p.cur
	p.nextToken() // consume '@'
	nameTok, err := p.expect(token.IDENT, "identifier")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN, "("); err != nil {
		return nil, err
	}
	var params []string
	if !p.curIs(token.RPAREN) {
		pt, err := p.expect(token.IDENT, "identifier")
		if err != nil {
			return nil, err
		}
		params = append(params, pt.Literal)
		for p.curIs(token.COMMA) {
			p.nextToken()
			pt, err := p.expect(token.IDENT, "identifier")
			if err != nil {
				return nil, err
			}
			params = append(params, pt.Literal)
		}
	}
	if _, err := p.expect(token.RPAREN, ")"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.FuncDefStmt{Token: tok, Name: nameTok.Literal, Params: params, Body: body}, nil
}

func (p *Parser) parseReturn() (ast.Statement, error) {
	tok := p.cur
	p.nextToken()
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{Token: tok, Expr: expr}, nil
}

// parseExpr is the lowest-precedence entry point (logical_or).
func (p *Parser) parseExpr() (ast.Expression, error) {
	return p.parseLogicalOr()
}

func (p *Parser) parseLogicalOr() (ast.Expression, error) {
	left, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}
	for p.curIs(token.OR) {
		tok := p.cur
		p.nextToken()
		right, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.LogicalOp{Token: tok, Op: "or", Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseLogicalAnd() (ast.Expression, error) {
	left, err := p.parseLogicalNot()
	if err != nil {
		return nil, err
	}
	for p.curIs(token.AND) {
		tok := p.cur
		p.nextToken()
		right, err := p.parseLogicalNot()
		if err != nil {
			return nil, err
		}
		left = &ast.LogicalOp{Token: tok, Op: "and", Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseLogicalNot() (ast.Expression, error) {
	if p.curIs(token.NOT) {
		tok := p.cur
		p.nextToken()
		inner, err := p.parseLogicalNot()
		if err != nil {
			return nil, err
		}
		return &ast.LogicalOp{Token: tok, Op: "not", Left: inner}, nil
	}
	return p.parseCompare()
}

func (p *Parser) parseCompare() (ast.Expression, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.curIs(token.CMP) {
		tok := p.cur
		op := tok.Literal
		p.nextToken()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &ast.Compare{Token: tok, Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseTerm() (ast.Expression, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.curIs(token.OP) && (p.cur.Literal == "+" || p.cur.Literal == "-") {
		tok := p.cur
		op := tok.Literal
		p.nextToken()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Token: tok, Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseFactor() (ast.Expression, error) {
	left, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	for p.curIs(token.OP) && (p.cur.Literal == "*" || p.cur.Literal == "/" || p.cur.Literal == "%") {
		tok := p.cur
		op := tok.Literal
		p.nextToken()
		right, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Token: tok, Op: op, Left: left, Right: right}
	}
	return left, nil
}

// parsePower loops rather than recurses, giving "^" its intentionally
// left-associative behavior.
func (p *Parser) parsePower() (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.curIs(token.OP) && p.cur.Literal == "^" {
		tok := p.cur
		p.nextToken()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Token: tok, Op: "^", Left: left, Right: right}
	}
	return left, nil
}

// parseUnary desugars unary minus to (-1) * x.
func (p *Parser) parseUnary() (ast.Expression, error) {
	if p.curIs(token.OP) && p.cur.Literal == "-" {
		tok := p.cur
		p.nextToken()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		negOne := &ast.NumberLiteral{Token: tok, Value: -1}
		return &ast.BinOp{Token: tok, Op: "*", Left: negOne, Right: operand}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	switch p.cur.Type {
	case token.NUMBER:
		tok := p.cur
		p.nextToken()
		v, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, errExpected(tok, "number")
		}
		return &ast.NumberLiteral{Token: tok, Value: v}, nil

	case token.STRING:
		tok := p.cur
		p.nextToken()
		v, err := unescapeString(tok.Literal)
		if err != nil {
			return nil, errExpected(tok, "valid string literal")
		}
		return &ast.StringLiteral{Token: tok, Value: v}, nil

	case token.TRUE, token.FALSE:
		tok := p.cur
		p.nextToken()
		return &ast.BoolLiteral{Token: tok, Value: tok.Type == token.TRUE}, nil

	case token.LBRACKET:
		return p.parseListLiteral()

	case token.DOLLAR:
		return p.parseVarWithIndices()

	case token.IDENT:
		return p.parseIdentOrCall()

	case token.LPAREN:
		p.nextToken()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, ")"); err != nil {
			return nil, err
		}
		return e, nil
	}

	return nil, errExpected(p.cur, "expression")
}

func (p *Parser) parseListLiteral() (ast.Expression, error) {
	tok := p.cur
	p.nextToken() // consume '['
	list := &ast.ListLiteral{Token: tok}
	if p.curIs(token.RBRACKET) {
		p.nextToken()
		return list, nil
	}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	list.Elements = append(list.Elements, e)
	for p.curIs(token.COMMA) {
		p.nextToken()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		list.Elements = append(list.Elements, e)
	}
	if _, err := p.expect(token.RBRACKET, "]"); err != nil {
		return nil, err
	}
	return list, nil
}

// parseVarWithIndices parses "$ IDENT index*".
func (p *Parser) parseVarWithIndices() (ast.Expression, error) {
	tok := p.cur
	p.nextToken() // consume '$'
	nameTok, err := p.expect(token.IDENT, "identifier")
	if err != nil {
		return nil, err
	}
	var node ast.Expression = &ast.Var{Token: tok, Name: nameTok.Literal}
	for p.curIs(token.LBRACKET) {
		brTok := p.cur
		p.nextToken()
		idx, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RBRACKET, "]"); err != nil {
			return nil, err
		}
		node = &ast.Index{Token: brTok, Obj: node, Idx: idx}
	}
	return node, nil
}

// parseIdentOrCall parses "IDENT (args)?": an identifier immediately
// followed by '(' is a call; otherwise it is a bare-identifier variable
// reference.
func (p *Parser) parseIdentOrCall() (ast.Expression, error) {
	tok := p.cur
	name := tok.Literal
	p.nextToken()
	if !p.curIs(token.LPAREN) {
		return &ast.Var{Token: tok, Name: name}, nil
	}
	p.nextToken() // consume '('
	call := &ast.Call{Token: tok, Name: name}
	if p.curIs(token.RPAREN) {
		p.nextToken()
		return call, nil
	}
	arg, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	call.Args = append(call.Args, arg)
	for p.curIs(token.COMMA) {
		p.nextToken()
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)
	}
	if _, err := p.expect(token.RPAREN, ")"); err != nil {
		return nil, err
	}
	return call, nil
}
