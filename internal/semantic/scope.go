package semantic

import (
	"github.com/qbcompile/qbc/internal/ast"
	"github.com/qbcompile/qbc/internal/symtab"
	"github.com/qbcompile/qbc/internal/types"
)

// scopeCtx threads the lookup chain described in spec.md §4.3 step 3
// ("current proc's params, current proc's locals, module locals, module
// globals") through one statement-list walk. Params and proc-locals share
// one table (proc.LocalSymbols) distinguished by symtab.Kind, so the
// lookup chain collapses to two tables when inside a proc, one at module
// level.
type scopeCtx struct {
	proc          *ast.FnProc // nil when walking top-level module statements
	moduleLocals  *symtab.Table
	moduleGlobals *symtab.Table
}

// lookup searches the chain in priority order.
func (s *scopeCtx) lookup(name string) (*symtab.Symbol, symtab.Scope) {
	if s.proc != nil {
		if sym := s.proc.LocalSymbols.Lookup(name); sym != nil {
			return sym, symtab.Local
		}
	}
	if sym := s.moduleLocals.Lookup(name); sym != nil {
		return sym, symtab.Local
	}
	if sym := s.moduleGlobals.Lookup(name); sym != nil {
		return sym, symtab.Global
	}
	return nil, symtab.Local
}

// declareLocal defines a new variable in the innermost table: the
// enclosing proc's locals if there is one, otherwise the module's locals
// (spec.md §4.3 step 3, "append to the appropriate symbol table").
func (s *scopeCtx) declareLocal(name string, typ types.Type) *symtab.Symbol {
	if s.proc != nil {
		return s.proc.LocalSymbols.Define(name, symtab.Var, typ, symtab.Local)
	}
	return s.moduleLocals.Define(name, symtab.Var, typ, symtab.Local)
}
