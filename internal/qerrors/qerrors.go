// Package qerrors formats the compiler's staged errors per spec.md §6/§7:
// "<kind>: <message> at line L, col C", with an optional source-context
// rendering in the style of the teacher's CompilerError.
package qerrors

import (
	"fmt"
	"strings"

	"github.com/qbcompile/qbc/internal/token"
)

// Kind identifies which pipeline stage raised an error.
type Kind string

const (
	KindLex      Kind = "LexError"
	KindParse    Kind = "ParseError"
	KindSemantic Kind = "SemanticError"
	KindCodegen  Kind = "CodegenError"
	KindRuntime  Kind = "RuntimeError"
)

// Error is the uniform shape for every staged compiler/runtime error
// (spec.md §7: "All errors carry {kind, loc, message}").
type Error struct {
	Kind    Kind
	Pos     token.Position
	Message string
}

func New(kind Kind, pos token.Position, format string, args ...any) *Error {
	return &Error{Kind: kind, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// Error implements the error interface with the canonical one-line form
// required by spec.md §6.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s at line %d, col %d", e.Kind, e.Message, e.Pos.Line, e.Pos.Column)
}

// FormatWithSource renders the error with the offending source line and a
// caret underneath, matching the teacher's CompilerError.Format.
func (e *Error) FormatWithSource(source string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s: %s\n", e.Kind, e.Message))

	lines := strings.Split(source, "\n")
	if e.Pos.Line >= 1 && e.Pos.Line <= len(lines) {
		lineText := lines[e.Pos.Line-1]
		prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(lineText)
		sb.WriteString("\n")
		col := e.Pos.Column - 1
		if col < 0 {
			col = 0
		}
		sb.WriteString(strings.Repeat(" ", len(prefix)+col))
		sb.WriteString("^\n")
	}
	return sb.String()
}

// FormatAll joins the one-line forms of a batch of errors, matching the
// accumulate-don't-stop posture of the lexer/parser error lists, but
// callers that want first-fatal-error behavior (spec.md §7) should stop
// collecting after the first error from the semantic stage onward.
func FormatAll(errs []*Error) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "\n")
}
