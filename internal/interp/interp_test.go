package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/khaledouriemmi/djerba/internal/parser"
)

func run(t *testing.T, src string) (string, error) {
	t.Helper()
	prog, err := parser.ParseProgram(src)
	if err != nil {
		t.Fatalf("ParseProgram(%q): %v", src, err)
	}
	var out bytes.Buffer
	interp := New(&out, strings.NewReader(""))
	err = interp.Run(prog)
	return out.String(), err
}

func runOK(t *testing.T, src string) string {
	t.Helper()
	out, err := run(t, src)
	if err != nil {
		t.Fatalf("Run(%q): %v", src, err)
	}
	return out
}

// End-to-end scenarios.

func TestArithmeticPrecedence(t *testing.T) {
	if got := runOK(t, ":> 2 + 3 * 4"); got != "14\n" {
		t.Errorf("got %q, want %q", got, "14\n")
	}
}

func TestAssignmentAndVariableUse(t *testing.T) {
	src := "$x <- 10\n$y <- $x + 5\n:> $y"
	if got := runOK(t, src); got != "15\n" {
		t.Errorf("got %q, want %q", got, "15\n")
	}
}

func TestFunctionDefCallReturn(t *testing.T) {
	src := "@add(a, b) { !> a + b }\n:> add(3, 4)"
	if got := runOK(t, src); got != "7\n" {
		t.Errorf("got %q, want %q", got, "7\n")
	}
}

func TestForLoopWithRange(t *testing.T) {
	src := "$s <- 0\n@> $i in range(1, 4) { $s <- $s + $i }\n:> $s"
	if got := runOK(t, src); got != "6\n" {
		t.Errorf("got %q, want %q", got, "6\n")
	}
}

func TestWhileWithBreak(t *testing.T) {
	src := "$i <- 0\n~ true { ? $i >= 3 { break } $i <- $i + 1 }\n:> $i"
	if got := runOK(t, src); got != "3\n" {
		t.Errorf("got %q, want %q", got, "3\n")
	}
}

func TestListMutationAndAliasing(t *testing.T) {
	src := "$a <- [1, 2]\n$b <- $a\npush($a, 3)\n:> len($b)"
	if got := runOK(t, src); got != "3\n" {
		t.Errorf("got %q, want %q", got, "3\n")
	}
}

// Language-law properties beyond the literal scenarios.

func TestShortCircuitAndDoesNotCallFunction(t *testing.T) {
	src := `
@sideEffect() { :> "called" !> true }
:> false and sideEffect()
`
	got := runOK(t, src)
	if strings.Contains(got, "called") {
		t.Errorf("short-circuit and still invoked sideEffect(): %q", got)
	}
	if !strings.Contains(got, "false") {
		t.Errorf("expected false result, got %q", got)
	}
}

func TestShortCircuitOrDoesNotCallFunction(t *testing.T) {
	src := `
@sideEffect() { :> "called" !> true }
:> true or sideEffect()
`
	got := runOK(t, src)
	if strings.Contains(got, "called") {
		t.Errorf("short-circuit or still invoked sideEffect(): %q", got)
	}
}

func TestAssignmentScopingMutatesAncestor(t *testing.T) {
	src := `
$x <- 1
? true {
  $x <- 2
}
:> $x
`
	if got := runOK(t, src); got != "2\n" {
		t.Errorf("got %q, want %q", got, "2\n")
	}
}

func TestAssignmentScopingCreatesLocalWithNoAncestor(t *testing.T) {
	src := `
? true {
  $y <- 9
}
:> $y
`
	_, err := run(t, src)
	if err == nil {
		t.Fatalf("expected NameError for $y leaking out of its block, got none")
	}
	rerr, ok := err.(*RuntimeError)
	if !ok || rerr.Kind != KindName {
		t.Fatalf("expected NameError, got %v", err)
	}
}

func TestFunctionIsolationFromCallerLocals(t *testing.T) {
	src := `
$x <- 1
@f() { :> x }
f()
`
	_, err := run(t, src)
	if err == nil {
		t.Fatalf("expected NameError: functions must not see caller locals")
	}
	rerr, ok := err.(*RuntimeError)
	if !ok || rerr.Kind != KindName {
		t.Fatalf("expected NameError, got %v", err)
	}
}

func TestTopLevelFunctionsVisibleFromFunctionBodies(t *testing.T) {
	// Call frames re-parent to the root, but top-level definitions must
	// still be callable from inside a function body: recursion and mutual
	// calls both depend on it.
	src := `
@fact(n) {
  ? n <= 1 { !> 1 }
  !> n * fact(n - 1)
}
:> fact(5)
`
	if got := runOK(t, src); got != "120\n" {
		t.Errorf("got %q, want %q", got, "120\n")
	}
}

func TestFunctionDefinedInsideBlockStaysLocal(t *testing.T) {
	src := `
? true {
  @g() { !> 1 }
}
:> g()
`
	_, err := run(t, src)
	rerr, ok := err.(*RuntimeError)
	if !ok || rerr.Kind != KindName {
		t.Fatalf("expected NameError for block-local function, got %v", err)
	}
}

func TestBreakOutsideLoopIsControlFlowError(t *testing.T) {
	_, err := run(t, "break")
	rerr, ok := err.(*RuntimeError)
	if !ok || rerr.Kind != KindControlFlow {
		t.Fatalf("expected ControlFlowError, got %v", err)
	}
}

func TestContinueOutsideLoopIsControlFlowError(t *testing.T) {
	_, err := run(t, "continue")
	rerr, ok := err.(*RuntimeError)
	if !ok || rerr.Kind != KindControlFlow {
		t.Fatalf("expected ControlFlowError, got %v", err)
	}
}

func TestReturnOutsideFunctionIsControlFlowError(t *testing.T) {
	_, err := run(t, "!> 1")
	rerr, ok := err.(*RuntimeError)
	if !ok || rerr.Kind != KindControlFlow {
		t.Fatalf("expected ControlFlowError, got %v", err)
	}
}

func TestDivisionByZeroIsArithError(t *testing.T) {
	_, err := run(t, ":> 1 / 0")
	rerr, ok := err.(*RuntimeError)
	if !ok || rerr.Kind != KindArith {
		t.Fatalf("expected ArithError, got %v", err)
	}
}

func TestModulusByZeroIsArithError(t *testing.T) {
	_, err := run(t, ":> 1 % 0")
	rerr, ok := err.(*RuntimeError)
	if !ok || rerr.Kind != KindArith {
		t.Fatalf("expected ArithError, got %v", err)
	}
}

func TestIndexOutOfRangeIsIndexError(t *testing.T) {
	src := "$a <- [1, 2]\n:> $a[5]"
	_, err := run(t, src)
	rerr, ok := err.(*RuntimeError)
	if !ok || rerr.Kind != KindIndex {
		t.Fatalf("expected IndexError, got %v", err)
	}
}

func TestArityMismatchIsArityError(t *testing.T) {
	src := "@add(a, b) { !> a + b }\n:> add(1)"
	_, err := run(t, src)
	rerr, ok := err.(*RuntimeError)
	if !ok || rerr.Kind != KindArity {
		t.Fatalf("expected ArityError, got %v", err)
	}
}

func TestMixedStringNumberPlusIsTypeError(t *testing.T) {
	src := `:> "a" + 1`
	_, err := run(t, src)
	rerr, ok := err.(*RuntimeError)
	if !ok || rerr.Kind != KindType {
		t.Fatalf("expected TypeError, got %v", err)
	}
}

func TestUndefinedVariableIsNameError(t *testing.T) {
	_, err := run(t, ":> $nope")
	rerr, ok := err.(*RuntimeError)
	if !ok || rerr.Kind != KindName {
		t.Fatalf("expected NameError, got %v", err)
	}
}

func TestBuiltinDispatchedWhenNoUserFunction(t *testing.T) {
	if got := runOK(t, ":> len(\"hello\")"); got != "5\n" {
		t.Errorf("got %q, want %q", got, "5\n")
	}
}

func TestUserFunctionTakesPrecedenceOverBuiltin(t *testing.T) {
	// A visible user-defined function wins over the built-in bound
	// under the same name.
	src := `
@len(x) { !> 99 }
:> len("hello")
`
	if got := runOK(t, src); got != "99\n" {
		t.Errorf("got %q, want %q", got, "99\n")
	}
}

func TestFunctionWithoutReturnYieldsNilValue(t *testing.T) {
	src := `
@noop() { $x <- 1 }
:> type(noop())
`
	if got := runOK(t, src); got != "unknown\n" {
		t.Errorf("got %q, want %q", got, "unknown\n")
	}
}

func TestTruthinessTable(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{`? 0 { :> "t" } else { :> "f" }`, "f\n"},
		{`? 1 { :> "t" } else { :> "f" }`, "t\n"},
		{`? "" { :> "t" } else { :> "f" }`, "f\n"},
		{`? "x" { :> "t" } else { :> "f" }`, "t\n"},
		{`? [] { :> "t" } else { :> "f" }`, "f\n"},
		{`? [1] { :> "t" } else { :> "f" }`, "t\n"},
		{`? false { :> "t" } else { :> "f" }`, "f\n"},
		{`? true { :> "t" } else { :> "f" }`, "t\n"},
	}
	for _, c := range cases {
		if got := runOK(t, c.src); got != c.want {
			t.Errorf("%s: got %q, want %q", c.src, got, c.want)
		}
	}
}

func TestStringIndexingByCodepoint(t *testing.T) {
	src := `$s <- "héllo"
:> $s[1]`
	if got := runOK(t, src); got != "é\n" {
		t.Errorf("got %q, want %q", got, "é\n")
	}
}

func TestChainedIndexing(t *testing.T) {
	src := `$a <- [[1, 2], [3, 4]]
:> $a[1][0]`
	if got := runOK(t, src); got != "3\n" {
		t.Errorf("got %q, want %q", got, "3\n")
	}
}

func TestForLoopVariableHygieneAcrossIterations(t *testing.T) {
	// Each iteration rebinds $i in a fresh frame; mutating it inside
	// the body must not perturb the next iteration's value.
	src := `
$total <- 0
@> $i in range(0, 3) {
  $i <- $i + 100
  $total <- $total + $i
}
:> $total
`
	if got := runOK(t, src); got != "303\n" {
		t.Errorf("got %q, want %q", got, "303\n")
	}
}

func TestInputReadsOneLine(t *testing.T) {
	prog, err := parser.ParseProgram(`$name <- input("who? ")
:> $name`)
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	interp := New(&out, strings.NewReader("Khaled\nignored\n"))
	if err := interp.Run(prog); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "who? Khaled\n" {
		t.Errorf("got %q, want %q", got, "who? Khaled\n")
	}
}
