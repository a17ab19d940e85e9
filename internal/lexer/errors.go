package lexer

import (
	"fmt"

	"github.com/khaledouriemmi/djerba/internal/token"
)

// Error reports a single scanning failure: an unrecognizable character,
// an invalid UTF-8 sequence, or an unterminated string literal.
type Error struct {
	Message string
	Pos     token.Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("LexError: %s at %s", e.Message, e.Pos)
}

// ErrorPos implements the internal/errors.Positioned interface so the CLI
// can render this error with file:line:col source context.
func (e *Error) ErrorPos() token.Position { return e.Pos }
