package interp

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/khaledouriemmi/djerba/internal/ast"
	"github.com/khaledouriemmi/djerba/internal/token"
)

// Interpreter walks an AST, maintaining the environment chain and the
// standard I/O streams that print and input() touch.
type Interpreter struct {
	root    *Environment
	globals *Environment
	out     io.Writer
	in      *bufio.Reader

	// currentPos tracks the source position of the node under evaluation,
	// so built-ins (which receive no ast.Node of their own) can still
	// raise errors carrying a useful offset.
	currentPos token.Position
}

// New creates an Interpreter with its root frame pre-populated with
// every built-in, and the program frame top-level statements run in.
func New(out io.Writer, in io.Reader) *Interpreter {
	i := &Interpreter{root: NewEnvironment(), out: out, in: bufio.NewReader(in)}
	i.registerBuiltins()
	i.globals = newProgramEnvironment(i.root)
	return i
}

// Run executes a parsed program to completion. A free-standing return,
// break, or continue escaping the top level is a ControlFlowError.
func (i *Interpreter) Run(prog *ast.Program) error {
	flow, err := i.evalStatements(prog.Statements, i.globals)
	if err != nil {
		return err
	}
	switch flow.Signal {
	case Returning:
		return newErr(KindControlFlow, i.currentPos, "return outside a function")
	case Breaking:
		return newErr(KindControlFlow, i.currentPos, "break outside a loop")
	case Continuing:
		return newErr(KindControlFlow, i.currentPos, "continue outside a loop")
	}
	return nil
}

func (i *Interpreter) evalStatements(stmts []ast.Statement, env *Environment) (Flow, error) {
	for _, stmt := range stmts {
		flow, err := i.evalStatement(stmt, env)
		if err != nil {
			return Flow{}, err
		}
		if flow.Signal != Normal {
			return flow, nil
		}
	}
	return normalFlow, nil
}

func (i *Interpreter) evalBlock(block *ast.Block, env *Environment) (Flow, error) {
	return i.evalStatements(block.Statements, env)
}

func (i *Interpreter) evalStatement(stmt ast.Statement, env *Environment) (Flow, error) {
	i.currentPos = stmt.Pos()

	switch s := stmt.(type) {
	case *ast.PrintStmt:
		return normalFlow, i.evalPrint(s, env)

	case *ast.AssignStmt:
		val, err := i.evalExpr(s.Expr, env)
		if err != nil {
			return Flow{}, err
		}
		env.Set(s.Name, val)
		return normalFlow, nil

	case *ast.IfStmt:
		return i.evalIf(s, env)

	case *ast.WhileStmt:
		return i.evalWhile(s, env)

	case *ast.ForLoopStmt:
		return i.evalForLoop(s, env)

	case *ast.FuncDefStmt:
		env.DefineFunc(s.Name, &FunctionValue{Name: s.Name, Params: s.Params, Body: s.Body})
		return normalFlow, nil

	case *ast.ReturnStmt:
		val, err := i.evalExpr(s.Expr, env)
		if err != nil {
			return Flow{}, err
		}
		return returning(val), nil

	case *ast.BreakStmt:
		return breakingFlow, nil

	case *ast.ContinueStmt:
		return continuingFlow, nil

	case *ast.ExpressionStmt:
		_, err := i.evalExpr(s.Expr, env)
		return normalFlow, err

	default:
		return Flow{}, newErr(KindType, stmt.Pos(), "unhandled statement %T", stmt)
	}
}

func (i *Interpreter) evalPrint(s *ast.PrintStmt, env *Environment) error {
	parts := make([]string, len(s.Args))
	for idx, arg := range s.Args {
		v, err := i.evalExpr(arg, env)
		if err != nil {
			return err
		}
		parts[idx] = v.String()
	}
	_, err := fmt.Fprintln(i.out, strings.Join(parts, " "))
	return err
}

func (i *Interpreter) evalIf(s *ast.IfStmt, env *Environment) (Flow, error) {
	cond, err := i.evalExpr(s.Cond, env)
	if err != nil {
		return Flow{}, err
	}
	if truthy(cond) {
		return i.evalBlock(s.Then, NewEnclosedEnvironment(env))
	}
	if s.Else != nil {
		return i.evalBlock(s.Else, NewEnclosedEnvironment(env))
	}
	return normalFlow, nil
}

// evalWhile loops checking -> (cond true) running -> (normal/continue)
// checking | (break) done | (return) re-raise. Each iteration's body runs
// in a fresh child frame of the frame active when the while statement
// itself runs.
func (i *Interpreter) evalWhile(s *ast.WhileStmt, env *Environment) (Flow, error) {
	for {
		cond, err := i.evalExpr(s.Cond, env)
		if err != nil {
			return Flow{}, err
		}
		if !truthy(cond) {
			return normalFlow, nil
		}
		flow, err := i.evalBlock(s.Body, NewEnclosedEnvironment(env))
		if err != nil {
			return Flow{}, err
		}
		switch flow.Signal {
		case Breaking:
			return normalFlow, nil
		case Returning:
			return flow, nil
		}
		// Normal or Continuing: re-check the condition.
	}
}

// evalForLoop evaluates the iterable once at entry, then rebinds the
// loop variable in a fresh child frame each iteration so break/continue
// remain hygienic.
func (i *Interpreter) evalForLoop(s *ast.ForLoopStmt, env *Environment) (Flow, error) {
	iterVal, err := i.evalExpr(s.Iterable, env)
	if err != nil {
		return Flow{}, err
	}
	list, ok := iterVal.(*ListValue)
	if !ok {
		return Flow{}, newErr(KindType, s.Iterable.Pos(), "cannot iterate over %s", iterVal.Type())
	}

	for _, elem := range list.Elements {
		child := NewEnclosedEnvironment(env)
		child.Define(s.VarName, elem)
		flow, err := i.evalBlock(s.Body, child)
		if err != nil {
			return Flow{}, err
		}
		switch flow.Signal {
		case Breaking:
			return normalFlow, nil
		case Continuing:
			continue
		case Returning:
			return flow, nil
		}
	}
	return normalFlow, nil
}

// evalExpr dispatches on the expression node's tag.
func (i *Interpreter) evalExpr(expr ast.Expression, env *Environment) (Value, error) {
	i.currentPos = expr.Pos()

	switch e := expr.(type) {
	case *ast.NumberLiteral:
		return &NumberValue{Value: e.Value}, nil

	case *ast.StringLiteral:
		return &StringValue{Value: e.Value}, nil

	case *ast.BoolLiteral:
		return &BooleanValue{Value: e.Value}, nil

	case *ast.ListLiteral:
		elems := make([]Value, len(e.Elements))
		for idx, el := range e.Elements {
			v, err := i.evalExpr(el, env)
			if err != nil {
				return nil, err
			}
			elems[idx] = v
		}
		return &ListValue{Elements: elems}, nil

	case *ast.Var:
		if v, ok := env.Get(e.Name); ok {
			return v, nil
		}
		return nil, newErr(KindName, e.Pos(), "undefined variable $%s", e.Name)

	case *ast.Index:
		return i.evalIndex(e, env)

	case *ast.Call:
		return i.evalCall(e, env)

	case *ast.BinOp:
		return i.evalBinOp(e, env)

	case *ast.Compare:
		return i.evalCompare(e, env)

	case *ast.LogicalOp:
		return i.evalLogical(e, env)
	}

	return nil, newErr(KindType, expr.Pos(), "unhandled expression %T", expr)
}

func (i *Interpreter) evalIndex(e *ast.Index, env *Environment) (Value, error) {
	obj, err := i.evalExpr(e.Obj, env)
	if err != nil {
		return nil, err
	}
	idxVal, err := i.evalExpr(e.Idx, env)
	if err != nil {
		return nil, err
	}
	idxNum, ok := numberOf(idxVal)
	if !ok {
		return nil, newErr(KindType, e.Idx.Pos(), "index must be a number, got %s", idxVal.Type())
	}
	idx := int(idxNum)

	switch v := obj.(type) {
	case *ListValue:
		if idx < 0 || idx >= len(v.Elements) {
			return nil, newErr(KindIndex, e.Pos(), "list index %d out of range (len %d)", idx, len(v.Elements))
		}
		return v.Elements[idx], nil

	case *StringValue:
		// Indexed by code-point position, not byte offset.
		runes := []rune(v.Value)
		if idx < 0 || idx >= len(runes) {
			return nil, newErr(KindIndex, e.Pos(), "string index %d out of range (len %d)", idx, len(runes))
		}
		return &StringValue{Value: string(runes[idx])}, nil

	default:
		return nil, newErr(KindType, e.Pos(), "cannot index a %s", obj.Type())
	}
}

// evalCall dispatches a call: a visible user-defined function wins;
// otherwise a built-in bound as a variable under that name is invoked;
// otherwise NameError.
func (i *Interpreter) evalCall(e *ast.Call, env *Environment) (Value, error) {
	args := make([]Value, len(e.Args))
	for idx, a := range e.Args {
		v, err := i.evalExpr(a, env)
		if err != nil {
			return nil, err
		}
		args[idx] = v
	}

	if fn, ok := env.GetFunc(e.Name); ok {
		return i.callUserFunction(fn, args, e.Pos())
	}
	if v, ok := env.Get(e.Name); ok {
		if b, ok := v.(*BuiltinValue); ok {
			return b.Fn(i, args)
		}
	}
	return nil, newErr(KindName, e.Pos(), "undefined function %s()", e.Name)
}

// callUserFunction creates the call frame with the root environment as
// its parent, never the caller's frame: functions cannot implicitly read
// caller locals.
func (i *Interpreter) callUserFunction(fn *FunctionValue, args []Value, callPos token.Position) (Value, error) {
	if len(args) != len(fn.Params) {
		return nil, newErr(KindArity, callPos, "%s expects %d argument(s), got %d", fn.Name, len(fn.Params), len(args))
	}

	frame := NewEnclosedEnvironment(i.root)
	for idx, p := range fn.Params {
		frame.Define(p, args[idx])
	}

	flow, err := i.evalBlock(fn.Body, frame)
	if err != nil {
		return nil, err
	}
	switch flow.Signal {
	case Returning:
		return flow.Value, nil
	case Breaking:
		return nil, newErr(KindControlFlow, callPos, "break outside a loop (in %s)", fn.Name)
	case Continuing:
		return nil, newErr(KindControlFlow, callPos, "continue outside a loop (in %s)", fn.Name)
	default:
		return theNil, nil
	}
}

func (i *Interpreter) evalLogical(e *ast.LogicalOp, env *Environment) (Value, error) {
	left, err := i.evalExpr(e.Left, env)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case "not":
		return &BooleanValue{Value: !truthy(left)}, nil
	case "and":
		if !truthy(left) {
			return &BooleanValue{Value: false}, nil
		}
		right, err := i.evalExpr(e.Right, env)
		if err != nil {
			return nil, err
		}
		return &BooleanValue{Value: truthy(right)}, nil
	case "or":
		if truthy(left) {
			return &BooleanValue{Value: true}, nil
		}
		right, err := i.evalExpr(e.Right, env)
		if err != nil {
			return nil, err
		}
		return &BooleanValue{Value: truthy(right)}, nil
	}
	return nil, newErr(KindType, e.Pos(), "unknown logical operator %q", e.Op)
}

func (i *Interpreter) evalCompare(e *ast.Compare, env *Environment) (Value, error) {
	left, err := i.evalExpr(e.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evalExpr(e.Right, env)
	if err != nil {
		return nil, err
	}

	if e.Op == "==" {
		return &BooleanValue{Value: valuesEqual(left, right)}, nil
	}
	if e.Op == "!=" {
		return &BooleanValue{Value: !valuesEqual(left, right)}, nil
	}

	// Ordering comparisons are defined for numbers pairwise and for
	// strings lexicographically.
	if ln, ok := numberOf(left); ok {
		if rn, ok := numberOf(right); ok {
			return &BooleanValue{Value: compareNumbers(e.Op, ln, rn)}, nil
		}
	}
	if ls, ok := left.(*StringValue); ok {
		if rs, ok := right.(*StringValue); ok {
			return &BooleanValue{Value: compareStrings(e.Op, ls.Value, rs.Value)}, nil
		}
	}
	return nil, fmtTypeErr(e.Pos(), e.Op, left, right)
}

func compareNumbers(op string, l, r float64) bool {
	switch op {
	case "<":
		return l < r
	case ">":
		return l > r
	case "<=":
		return l <= r
	case ">=":
		return l >= r
	}
	return false
}

func compareStrings(op string, l, r string) bool {
	switch op {
	case "<":
		return l < r
	case ">":
		return l > r
	case "<=":
		return l <= r
	case ">=":
		return l >= r
	}
	return false
}

// evalBinOp applies an arithmetic operator: "+" on two strings
// concatenates, on two numbers adds, on mixed operands fails; -, *, /, %,
// ^ operate on numbers only.
func (i *Interpreter) evalBinOp(e *ast.BinOp, env *Environment) (Value, error) {
	left, err := i.evalExpr(e.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evalExpr(e.Right, env)
	if err != nil {
		return nil, err
	}

	if e.Op == "+" {
		if ls, ok := left.(*StringValue); ok {
			if rs, ok := right.(*StringValue); ok {
				return &StringValue{Value: ls.Value + rs.Value}, nil
			}
			return nil, fmtTypeErr(e.Pos(), "+", left, right)
		}
	}

	ln, lok := numberOf(left)
	rn, rok := numberOf(right)
	if !lok || !rok {
		return nil, fmtTypeErr(e.Pos(), e.Op, left, right)
	}

	switch e.Op {
	case "+":
		return &NumberValue{Value: ln + rn}, nil
	case "-":
		return &NumberValue{Value: ln - rn}, nil
	case "*":
		return &NumberValue{Value: ln * rn}, nil
	case "/":
		if rn == 0 {
			return nil, &RuntimeError{Kind: KindArith, Message: "division by zero", Pos: e.Pos()}
		}
		return &NumberValue{Value: ln / rn}, nil
	case "%":
		if rn == 0 {
			return nil, &RuntimeError{Kind: KindArith, Message: "modulus by zero", Pos: e.Pos()}
		}
		return &NumberValue{Value: math.Mod(ln, rn)}, nil
	case "^":
		return &NumberValue{Value: math.Pow(ln, rn)}, nil
	}
	return nil, newErr(KindType, e.Pos(), "unknown operator %q", e.Op)
}

// runeLen reports a string's length in code points, used by len().
func runeLen(s string) int { return utf8.RuneCountInString(s) }
