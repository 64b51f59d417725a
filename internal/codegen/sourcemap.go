package codegen

import "github.com/qbcompile/qbc/internal/runtime"

// SourceMapEntry attributes one compiled statement to the source position
// it was lowered from, addressed by its position in the flat module: the
// module's top-level statement list uses a negative ProcIndex sentinel,
// procs are addressed by their index into Module.Procs (spec.md §4.4
// "source maps" is specified only as an obligation, not a fixed format —
// see DESIGN.md).
type SourceMapEntry struct {
	ProcIndex int // -1 for the module's top-level statement list
	StmtIndex int
	Pos       runtime.CompiledStmt
}

// SourceMap is a flat, ordered list of entries, one per non-label compiled
// statement, keyed by its position in the compiled module.
type SourceMap struct {
	Entries []SourceMapEntry
}

// buildSourceMap walks a compiled module and records every Runnable's
// source location, satisfying spec.md §4.4's source-map obligation without
// committing to any particular serialised format.
func buildSourceMap(mod *runtime.Module) *SourceMap {
	sm := &SourceMap{}
	collect := func(procIndex int, stmts []runtime.CompiledStmt) {
		for i, stmt := range stmts {
			if stmt.Runnable == nil {
				continue
			}
			sm.Entries = append(sm.Entries, SourceMapEntry{
				ProcIndex: procIndex,
				StmtIndex: i,
				Pos:       stmt,
			})
		}
	}
	collect(-1, mod.Stmts)
	for i, proc := range mod.Procs {
		collect(i, proc.Stmts)
	}
	return sm
}
