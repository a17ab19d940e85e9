package parser

import (
	"testing"

	"github.com/khaledouriemmi/djerba/internal/ast"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := ParseProgram(src)
	if err != nil {
		t.Fatalf("ParseProgram(%q): %v", src, err)
	}
	return prog
}

func TestPrecedenceLaw(t *testing.T) {
	// a + b * c => a + (b * c)
	prog := mustParse(t, ":> 2 + 3 * 4")
	stmt := prog.Statements[0].(*ast.PrintStmt)
	add := stmt.Args[0].(*ast.BinOp)
	if add.Op != "+" {
		t.Fatalf("top operator = %q, want +", add.Op)
	}
	mul, ok := add.Right.(*ast.BinOp)
	if !ok || mul.Op != "*" {
		t.Fatalf("right operand is not a '*' BinOp: %#v", add.Right)
	}
}

func TestPowerLeftAssociative(t *testing.T) {
	// a ^ b ^ c => (a^b)^c
	prog := mustParse(t, ":> 2 ^ 3 ^ 2")
	stmt := prog.Statements[0].(*ast.PrintStmt)
	top := stmt.Args[0].(*ast.BinOp)
	if top.Op != "^" {
		t.Fatalf("top operator = %q, want ^", top.Op)
	}
	left, ok := top.Left.(*ast.BinOp)
	if !ok || left.Op != "^" {
		t.Fatalf("left operand is not a '^' BinOp (left-associative expected): %#v", top.Left)
	}
	if _, ok := top.Right.(*ast.NumberLiteral); !ok {
		t.Fatalf("right operand should be a plain literal, got %#v", top.Right)
	}
}

func TestUnaryMinusDesugarsToMultiplication(t *testing.T) {
	prog := mustParse(t, ":> -5")
	stmt := prog.Statements[0].(*ast.PrintStmt)
	bin, ok := stmt.Args[0].(*ast.BinOp)
	if !ok || bin.Op != "*" {
		t.Fatalf("unary minus did not desugar to '*': %#v", stmt.Args[0])
	}
	lit := bin.Left.(*ast.NumberLiteral)
	if lit.Value != -1 {
		t.Fatalf("left literal = %v, want -1", lit.Value)
	}
}

func TestChainedComparisonReassociatesLeft(t *testing.T) {
	// a<b<c means (a<b)<c
	prog := mustParse(t, ":> 1 < 2 < 3")
	stmt := prog.Statements[0].(*ast.PrintStmt)
	top := stmt.Args[0].(*ast.Compare)
	if _, ok := top.Left.(*ast.Compare); !ok {
		t.Fatalf("left operand of chained compare is not itself a Compare: %#v", top.Left)
	}
}

func TestAssignFunctionCallReturnForLoopWhileBreak(t *testing.T) {
	src := `
$x <- 10
$y <- $x + 5
:> $y

@add(a, b) { !> a + b }
:> add(3, 4)

$s <- 0
@> $i in range(1, 4) { $s <- $s + $i }
:> $s

$i <- 0
~ true { ? $i >= 3 { break } $i <- $i + 1 }
:> $i

$a <- [1, 2]
$b <- $a
push($a, 3)
:> len($b)
`
	prog := mustParse(t, src)
	if len(prog.Statements) == 0 {
		t.Fatal("expected statements")
	}

	assign, ok := prog.Statements[0].(*ast.AssignStmt)
	if !ok || assign.Name != "x" {
		t.Fatalf("statement 0 = %#v, want AssignStmt x", prog.Statements[0])
	}

	var fn *ast.FuncDefStmt
	var forLoop *ast.ForLoopStmt
	var whileStmt *ast.WhileStmt
	for _, s := range prog.Statements {
		switch v := s.(type) {
		case *ast.FuncDefStmt:
			fn = v
		case *ast.ForLoopStmt:
			forLoop = v
		case *ast.WhileStmt:
			whileStmt = v
		}
	}
	if fn == nil || fn.Name != "add" || len(fn.Params) != 2 {
		t.Fatalf("FuncDefStmt not parsed as expected: %#v", fn)
	}
	if _, ok := fn.Body.Statements[0].(*ast.ReturnStmt); !ok {
		t.Fatalf("function body statement 0 is not Return: %#v", fn.Body.Statements[0])
	}
	if forLoop == nil || forLoop.VarName != "i" {
		t.Fatalf("ForLoopStmt not parsed as expected: %#v", forLoop)
	}
	if whileStmt == nil {
		t.Fatal("WhileStmt not found")
	}
	ifStmt, ok := whileStmt.Body.Statements[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("while body statement 0 is not IfStmt: %#v", whileStmt.Body.Statements[0])
	}
	if _, ok := ifStmt.Then.Statements[0].(*ast.BreakStmt); !ok {
		t.Fatalf("if-then statement 0 is not BreakStmt: %#v", ifStmt.Then.Statements[0])
	}
}

func TestBareIdentifierInsideFunctionIsVar(t *testing.T) {
	prog := mustParse(t, "@f(a) { !> a }")
	fn := prog.Statements[0].(*ast.FuncDefStmt)
	ret := fn.Body.Statements[0].(*ast.ReturnStmt)
	if _, ok := ret.Expr.(*ast.Var); !ok {
		t.Fatalf("bare identifier did not parse as Var: %#v", ret.Expr)
	}
}

func TestShortCircuitParsesAsLogicalOp(t *testing.T) {
	prog := mustParse(t, ":> false and f()")
	stmt := prog.Statements[0].(*ast.PrintStmt)
	op, ok := stmt.Args[0].(*ast.LogicalOp)
	if !ok || op.Op != "and" {
		t.Fatalf("expected LogicalOp 'and', got %#v", stmt.Args[0])
	}
}

func TestParseErrorCarriesOffset(t *testing.T) {
	_, err := ParseProgram("$x <- ")
	if err == nil {
		t.Fatal("expected a ParseError")
	}
	pe, ok := err.(*Error)
	if !ok {
		t.Fatalf("error is not *parser.Error: %#v", err)
	}
	if pe.Got.Pos.Offset == 0 && pe.Got.Type.String() != "EOF" {
		t.Fatalf("unexpected parse error shape: %#v", pe)
	}
}

func TestStringEscapes(t *testing.T) {
	prog := mustParse(t, `:> "a\nb\t\"c\""`)
	stmt := prog.Statements[0].(*ast.PrintStmt)
	s := stmt.Args[0].(*ast.StringLiteral)
	want := "a\nb\t\"c\""
	if s.Value != want {
		t.Fatalf("got %q, want %q", s.Value, want)
	}
}
