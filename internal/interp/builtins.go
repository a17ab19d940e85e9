package interp

import (
	"fmt"
	"math"
	"strings"
)

// registerBuiltins pre-populates the root frame, binding each built-in
// as an ordinary variable so it participates in the same call-dispatch
// path as a user function.
func (i *Interpreter) registerBuiltins() {
	i.root.Define("PI", &NumberValue{Value: math.Pi})
	i.root.Define("E", &NumberValue{Value: math.E})

	unary := map[string]func(float64) float64{
		"sin":   math.Sin,
		"cos":   math.Cos,
		"tan":   math.Tan,
		"sqrt":  math.Sqrt,
		"abs":   math.Abs,
		"floor": math.Floor,
		"ceil":  math.Ceil,
		"round": math.Round,
	}
	for name, fn := range unary {
		fn := fn
		i.defineBuiltin(name, func(i *Interpreter, args []Value) (Value, error) {
			n, err := requireOneNumber(i, name, args)
			if err != nil {
				return nil, err
			}
			return &NumberValue{Value: fn(n)}, nil
		})
	}

	i.defineBuiltin("min", builtinMin)
	i.defineBuiltin("max", builtinMax)
	i.defineBuiltin("pow", builtinPow)

	i.defineBuiltin("len", builtinLen)
	i.defineBuiltin("upper", builtinUpper)
	i.defineBuiltin("lower", builtinLower)
	i.defineBuiltin("substr", builtinSubstr)

	i.defineBuiltin("push", builtinPush)
	i.defineBuiltin("append", builtinPush)
	i.defineBuiltin("pop", builtinPop)

	i.defineBuiltin("type", builtinType)
	i.defineBuiltin("input", builtinInput)
	i.defineBuiltin("print", builtinPrint)
	i.defineBuiltin("range", builtinRange)
}

func (i *Interpreter) defineBuiltin(name string, fn BuiltinFunc) {
	i.root.Define(name, &BuiltinValue{Name: name, Fn: fn})
}

func requireOneNumber(i *Interpreter, name string, args []Value) (float64, error) {
	if len(args) != 1 {
		return 0, newErr(KindArity, i.currentPos, "%s expects 1 argument, got %d", name, len(args))
	}
	n, ok := numberOf(args[0])
	if !ok {
		return 0, newErr(KindType, i.currentPos, "%s expects a number, got %s", name, args[0].Type())
	}
	return n, nil
}

func builtinMin(i *Interpreter, args []Value) (Value, error) {
	return variadicExtreme(i, "min", args, func(a, b float64) bool { return a < b })
}

func builtinMax(i *Interpreter, args []Value) (Value, error) {
	return variadicExtreme(i, "max", args, func(a, b float64) bool { return a > b })
}

func variadicExtreme(i *Interpreter, name string, args []Value, better func(a, b float64) bool) (Value, error) {
	if len(args) == 0 {
		return nil, newErr(KindArity, i.currentPos, "%s expects at least 1 argument", name)
	}
	best, ok := numberOf(args[0])
	if !ok {
		return nil, newErr(KindType, i.currentPos, "%s expects numbers, got %s", name, args[0].Type())
	}
	for _, a := range args[1:] {
		n, ok := numberOf(a)
		if !ok {
			return nil, newErr(KindType, i.currentPos, "%s expects numbers, got %s", name, a.Type())
		}
		if better(n, best) {
			best = n
		}
	}
	return &NumberValue{Value: best}, nil
}

func builtinPow(i *Interpreter, args []Value) (Value, error) {
	if len(args) != 2 {
		return nil, newErr(KindArity, i.currentPos, "pow expects 2 arguments, got %d", len(args))
	}
	base, ok1 := numberOf(args[0])
	exp, ok2 := numberOf(args[1])
	if !ok1 || !ok2 {
		return nil, newErr(KindType, i.currentPos, "pow expects two numbers")
	}
	return &NumberValue{Value: math.Pow(base, exp)}, nil
}

func builtinLen(i *Interpreter, args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, newErr(KindArity, i.currentPos, "len expects 1 argument, got %d", len(args))
	}
	switch v := args[0].(type) {
	case *StringValue:
		return &NumberValue{Value: float64(runeLen(v.Value))}, nil
	case *ListValue:
		return &NumberValue{Value: float64(len(v.Elements))}, nil
	default:
		return nil, newErr(KindType, i.currentPos, "len expects a string or list, got %s", v.Type())
	}
}

func builtinUpper(i *Interpreter, args []Value) (Value, error) {
	s, err := requireOneString(i, "upper", args)
	if err != nil {
		return nil, err
	}
	return &StringValue{Value: strings.ToUpper(s)}, nil
}

func builtinLower(i *Interpreter, args []Value) (Value, error) {
	s, err := requireOneString(i, "lower", args)
	if err != nil {
		return nil, err
	}
	return &StringValue{Value: strings.ToLower(s)}, nil
}

func requireOneString(i *Interpreter, name string, args []Value) (string, error) {
	if len(args) != 1 {
		return "", newErr(KindArity, i.currentPos, "%s expects 1 argument, got %d", name, len(args))
	}
	s, ok := args[0].(*StringValue)
	if !ok {
		return "", newErr(KindType, i.currentPos, "%s expects a string, got %s", name, args[0].Type())
	}
	return s.Value, nil
}

// builtinSubstr implements substr(s, start [, end]) over code points.
// end defaults to the string's length; both bounds are clamped.
func builtinSubstr(i *Interpreter, args []Value) (Value, error) {
	if len(args) != 2 && len(args) != 3 {
		return nil, newErr(KindArity, i.currentPos, "substr expects 2 or 3 arguments, got %d", len(args))
	}
	s, ok := args[0].(*StringValue)
	if !ok {
		return nil, newErr(KindType, i.currentPos, "substr expects a string, got %s", args[0].Type())
	}
	startN, ok := numberOf(args[1])
	if !ok {
		return nil, newErr(KindType, i.currentPos, "substr start must be a number")
	}
	runes := []rune(s.Value)
	start := clampIndex(int(startN), len(runes))
	end := len(runes)
	if len(args) == 3 {
		endN, ok := numberOf(args[2])
		if !ok {
			return nil, newErr(KindType, i.currentPos, "substr end must be a number")
		}
		end = clampIndex(int(endN), len(runes))
	}
	if end < start {
		end = start
	}
	return &StringValue{Value: string(runes[start:end])}, nil
}

func clampIndex(idx, length int) int {
	if idx < 0 {
		return 0
	}
	if idx > length {
		return length
	}
	return idx
}

func builtinPush(i *Interpreter, args []Value) (Value, error) {
	if len(args) != 2 {
		return nil, newErr(KindArity, i.currentPos, "push expects 2 arguments, got %d", len(args))
	}
	list, ok := args[0].(*ListValue)
	if !ok {
		return nil, newErr(KindType, i.currentPos, "push expects a list, got %s", args[0].Type())
	}
	list.Elements = append(list.Elements, args[1])
	return theNil, nil
}

func builtinPop(i *Interpreter, args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, newErr(KindArity, i.currentPos, "pop expects 1 argument, got %d", len(args))
	}
	list, ok := args[0].(*ListValue)
	if !ok {
		return nil, newErr(KindType, i.currentPos, "pop expects a list, got %s", args[0].Type())
	}
	if len(list.Elements) == 0 {
		return nil, newErr(KindIndex, i.currentPos, "pop from an empty list")
	}
	last := list.Elements[len(list.Elements)-1]
	list.Elements = list.Elements[:len(list.Elements)-1]
	return last, nil
}

func builtinType(i *Interpreter, args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, newErr(KindArity, i.currentPos, "type expects 1 argument, got %d", len(args))
	}
	return &StringValue{Value: typeName(args[0])}, nil
}

// builtinInput writes an optional prompt without a trailing newline,
// then reads and returns one line with its newline stripped.
func builtinInput(i *Interpreter, args []Value) (Value, error) {
	if len(args) > 1 {
		return nil, newErr(KindArity, i.currentPos, "input expects 0 or 1 arguments, got %d", len(args))
	}
	if len(args) == 1 {
		if s, ok := args[0].(*StringValue); ok {
			fmt.Fprint(i.out, s.Value)
		} else {
			fmt.Fprint(i.out, args[0].String())
		}
	}
	line, err := i.in.ReadString('\n')
	if err != nil && line == "" {
		return &StringValue{Value: ""}, nil
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return &StringValue{Value: line}, nil
}

// builtinPrint is the variadic, expression-position twin of the ":>"
// statement: space-joined arguments followed by a newline.
func builtinPrint(i *Interpreter, args []Value) (Value, error) {
	parts := make([]string, len(args))
	for idx, a := range args {
		parts[idx] = a.String()
	}
	fmt.Fprintln(i.out, strings.Join(parts, " "))
	return theNil, nil
}

// builtinRange implements range(stop) | range(start, stop) |
// range(start, stop, step), returning a list of integers.
func builtinRange(i *Interpreter, args []Value) (Value, error) {
	var start, stop, step float64 = 0, 0, 1
	switch len(args) {
	case 1:
		n, ok := numberOf(args[0])
		if !ok {
			return nil, newErr(KindType, i.currentPos, "range expects numbers")
		}
		stop = n
	case 2:
		s, ok1 := numberOf(args[0])
		e, ok2 := numberOf(args[1])
		if !ok1 || !ok2 {
			return nil, newErr(KindType, i.currentPos, "range expects numbers")
		}
		start, stop = s, e
	case 3:
		s, ok1 := numberOf(args[0])
		e, ok2 := numberOf(args[1])
		st, ok3 := numberOf(args[2])
		if !ok1 || !ok2 || !ok3 {
			return nil, newErr(KindType, i.currentPos, "range expects numbers")
		}
		start, stop, step = s, e, st
	default:
		return nil, newErr(KindArity, i.currentPos, "range expects 1, 2, or 3 arguments, got %d", len(args))
	}
	if step == 0 {
		return nil, &RuntimeError{Kind: KindArith, Message: "range step must not be zero", Pos: i.currentPos}
	}

	var elems []Value
	if step > 0 {
		for v := start; v < stop; v += step {
			elems = append(elems, &NumberValue{Value: v})
		}
	} else {
		for v := start; v > stop; v += step {
			elems = append(elems, &NumberValue{Value: v})
		}
	}
	return &ListValue{Elements: elems}, nil
}
