package interp

import (
	"fmt"

	"github.com/khaledouriemmi/djerba/internal/token"
)

// Kind is Djerba's fixed runtime-error taxonomy. Control-flow signals
// (return/break/continue) are a separate channel (Flow, see control.go)
// and never surface as a Kind.
type Kind string

const (
	KindName        Kind = "NameError"
	KindArity       Kind = "ArityError"
	KindType        Kind = "TypeError"
	KindIndex       Kind = "IndexError"
	KindArith       Kind = "ArithError"
	KindControlFlow Kind = "ControlFlowError"
)

// RuntimeError is a single evaluator failure tagged with its taxonomy
// kind and the source position of the node under evaluation when it
// occurred. It implements errors.Positioned (internal/errors) so the CLI
// can render it with file:line:col context the same way a LexError or
// ParseError is rendered.
type RuntimeError struct {
	Kind    Kind
	Message string
	Pos     token.Position
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: %s at %s", e.Kind, e.Message, e.Pos)
}

// ErrorPos implements errors.Positioned.
func (e *RuntimeError) ErrorPos() token.Position { return e.Pos }

func newErr(kind Kind, pos token.Position, format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos}
}
