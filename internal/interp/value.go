// Package interp implements Djerba's tree-walking evaluator: the
// environment chain, the built-in registry, and the non-local
// control-flow signals behind return, break, and continue.
package interp

import (
	"strconv"
	"strings"

	"github.com/khaledouriemmi/djerba/internal/ast"
	"github.com/khaledouriemmi/djerba/internal/token"
)

// Value is Djerba's runtime value union: number, string, boolean, list,
// or callable.
type Value interface {
	Type() string
	String() string
}

// NumberValue is the single numeric kind; Djerba does not surface a
// number/integer distinction.
type NumberValue struct{ Value float64 }

func (n *NumberValue) Type() string { return "number" }
func (n *NumberValue) String() string {
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

// StringValue is a value-typed UTF-8 string.
type StringValue struct{ Value string }

func (s *StringValue) Type() string   { return "string" }
func (s *StringValue) String() string { return s.Value }

// BooleanValue is a value-typed boolean.
type BooleanValue struct{ Value bool }

func (b *BooleanValue) Type() string { return "bool" }
func (b *BooleanValue) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// ListValue is a mutable, heterogeneous sequence with reference
// identity: two variables bound to the same list observe each other's
// mutations. Always used behind a pointer so that copying a ListValue
// variable copies the reference, not the backing slice.
type ListValue struct{ Elements []Value }

func (l *ListValue) Type() string { return "list" }
func (l *ListValue) String() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// NilValue is the result of a function call that finished without
// hitting a return statement. It falls into type()'s "unknown" bucket,
// since the value union otherwise closes over
// number/string/bool/list/callable.
type NilValue struct{}

func (n *NilValue) Type() string   { return "unknown" }
func (n *NilValue) String() string { return "" }

var theNil = &NilValue{}

// BuiltinFunc is the host-side action backing a built-in callable.
type BuiltinFunc func(i *Interpreter, args []Value) (Value, error)

// BuiltinValue is a built-in callable carrying a host-side action; each
// action checks its own arity.
type BuiltinValue struct {
	Name string
	Fn   BuiltinFunc
}

func (b *BuiltinValue) Type() string   { return "callable" }
func (b *BuiltinValue) String() string { return "<builtin " + b.Name + ">" }

// FunctionValue is a user-defined function carrying its parameter names
// and body.
type FunctionValue struct {
	Name   string
	Params []string
	Body   *ast.Block
}

func (f *FunctionValue) Type() string   { return "callable" }
func (f *FunctionValue) String() string { return "<function " + f.Name + ">" }

// truthy maps a value to its boolean weight: false, zero, the empty
// string, and the empty list are false, as is any value of another kind
// (the nil call result, callables); all other values are true.
func truthy(v Value) bool {
	switch val := v.(type) {
	case *BooleanValue:
		return val.Value
	case *NumberValue:
		return val.Value != 0
	case *StringValue:
		return val.Value != ""
	case *ListValue:
		return len(val.Elements) > 0
	default:
		return false
	}
}

// typeName implements the type() built-in's name table.
func typeName(v Value) string {
	switch v.(type) {
	case *BooleanValue:
		return "bool"
	case *NumberValue:
		return "number"
	case *StringValue:
		return "string"
	case *ListValue:
		return "list"
	default:
		return "unknown"
	}
}

func valuesEqual(a, b Value) bool {
	switch av := a.(type) {
	case *NumberValue:
		bv, ok := b.(*NumberValue)
		return ok && av.Value == bv.Value
	case *StringValue:
		bv, ok := b.(*StringValue)
		return ok && av.Value == bv.Value
	case *BooleanValue:
		bv, ok := b.(*BooleanValue)
		return ok && av.Value == bv.Value
	case *ListValue:
		bv, ok := b.(*ListValue)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !valuesEqual(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

func numberOf(v Value) (float64, bool) {
	n, ok := v.(*NumberValue)
	if !ok {
		return 0, false
	}
	return n.Value, true
}

func fmtTypeErr(pos token.Position, op string, a, b Value) *RuntimeError {
	if b == nil {
		return newErr(KindType, pos, "%s not supported for %s", op, a.Type())
	}
	return newErr(KindType, pos, "%s not supported between %s and %s", op, a.Type(), b.Type())
}
