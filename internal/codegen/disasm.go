package codegen

import (
	"fmt"
	"strings"

	"github.com/qbcompile/qbc/internal/runtime"
)

// Disassemble renders mod as a human-readable label/statement listing, in
// the spirit of the teacher's bytecode.Disassembler: one line per compiled
// statement, labels printed as their own line, each Runnable line carrying
// its source position. spec.md §6 leaves the compiled module's
// serialisation format to the implementer; this textual form is qbc's
// choice for the CLI's `compile`/`--disassemble` surface (see DESIGN.md) —
// it is not meant to round-trip back into a runnable Module, since a
// Runnable's behavior lives in a Go closure rather than encoded data.
func Disassemble(mod *runtime.Module) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "; module %s\n", mod.SourceFileName)
	disassembleStmts(&sb, "main", mod.Stmts)
	for _, proc := range mod.Procs {
		fmt.Fprintln(&sb)
		disassembleStmts(&sb, proc.Name, proc.Stmts)
	}
	return sb.String()
}

func disassembleStmts(sb *strings.Builder, name string, stmts []runtime.CompiledStmt) {
	fmt.Fprintf(sb, "; proc %s\n", name)
	for i, s := range stmts {
		if s.Label != "" {
			fmt.Fprintf(sb, "%s:\n", s.Label)
			continue
		}
		fmt.Fprintf(sb, "  %4d  stmt @ line %d, col %d\n", i, s.Runnable.Loc.Line, s.Runnable.Loc.Column)
	}
}
