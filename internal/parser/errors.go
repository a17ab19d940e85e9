package parser

import (
	"fmt"
	"strings"

	"github.com/khaledouriemmi/djerba/internal/token"
)

// Error is raised on an unexpected token.
type Error struct {
	Expected []string
	Got      token.Token
}

func (e *Error) Error() string {
	return fmt.Sprintf("ParseError: expected %s, got %s at %s",
		strings.Join(e.Expected, " or "), e.Got.Type, e.Got.Pos)
}

func errExpected(got token.Token, expected ...string) *Error {
	return &Error{Expected: expected, Got: got}
}

// ErrorPos implements the internal/errors.Positioned interface so the CLI
// can render this error with file:line:col source context.
func (e *Error) ErrorPos() token.Position { return e.Got.Pos }
