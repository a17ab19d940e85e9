// Package errors provides source-context formatting for Djerba's fixed
// error taxonomy: a file:line:col header, the offending source line, and
// a caret indicator, regardless of which pipeline stage
// (lexer/parser/evaluator) raised the error. Each stage keeps its own
// error type (lexer.Error, parser.Error, interp.RuntimeError); anything
// implementing Positioned renders the same way.
package errors

import (
	"fmt"
	"strings"

	"github.com/khaledouriemmi/djerba/internal/token"
)

// Positioned is implemented by every Djerba error kind so Report can
// extract a source location without depending on any one concrete type.
type Positioned interface {
	error
	ErrorPos() token.Position
}

// Report formats err for human-readable CLI output. If err carries a
// position (implements Positioned), the report includes a file:line:col
// header, the source line at that position, and a caret pointing at the
// column; otherwise only the error's message is returned.
func Report(err error, source, file string) string {
	pe, ok := err.(Positioned)
	if !ok {
		return err.Error()
	}
	pos := pe.ErrorPos()

	var sb strings.Builder
	if file != "" {
		fmt.Fprintf(&sb, "Error in %s:%d:%d\n", file, pos.Line, pos.Column)
	} else {
		fmt.Fprintf(&sb, "Error at %d:%d\n", pos.Line, pos.Column)
	}

	if line := sourceLine(source, pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		col := pos.Column
		if col < 1 {
			col = 1
		}
		sb.WriteString(strings.Repeat(" ", len(prefix)+col-1))
		sb.WriteString("^\n")
	}

	sb.WriteString(err.Error())
	return sb.String()
}

func sourceLine(source string, n int) string {
	if source == "" || n < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if n > len(lines) {
		return ""
	}
	return lines[n-1]
}
