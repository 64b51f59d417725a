// Package semantic implements the single top-down analysis pass described
// in spec.md §4.3: procedure preprocessing, literal typing, identifier
// resolution (with the VarRef→FnCall rewrite for nullary function calls),
// call/operator type checking, and statement-level elementary-type checks.
package semantic

import (
	"strings"

	"github.com/qbcompile/qbc/internal/ast"
	"github.com/qbcompile/qbc/internal/qerrors"
	"github.com/qbcompile/qbc/internal/symtab"
	"github.com/qbcompile/qbc/internal/token"
	"github.com/qbcompile/qbc/internal/types"
)

// Analyzer runs one Analyze pass per Module. It is not reentrant across
// concurrent Modules; construct a new Analyzer per call if needed.
type Analyzer struct {
	errors      []*qerrors.Error
	procsByName map[string]*ast.FnProc
}

func New() *Analyzer {
	return &Analyzer{}
}

func (a *Analyzer) Errors() []*qerrors.Error { return a.errors }

func (a *Analyzer) errorf(pos token.Position, format string, args ...any) {
	a.errors = append(a.errors, qerrors.New(qerrors.KindSemantic, pos, format, args...))
}

// Analyze type-checks and resolves mod in place, returning any errors
// found. The AST is mutated directly (types attached to expressions,
// symbols attached to VarRefs) per spec.md §5's "analyzer mutates AST
// nodes in place" resource model.
func (a *Analyzer) Analyze(mod *ast.Module) []*qerrors.Error {
	mod.LocalSymbols = symtab.New()
	mod.GlobalSymbols = symtab.New()

	a.procsByName = make(map[string]*ast.FnProc, len(mod.Procs))
	for _, proc := range mod.Procs {
		key := strings.ToLower(proc.Name)
		if _, exists := a.procsByName[key]; exists {
			a.errorf(proc.Loc, "function %q redeclared", proc.Name)
			continue
		}
		a.procsByName[key] = proc
	}

	for _, proc := range mod.Procs {
		a.preprocessProc(proc)
	}

	for _, proc := range mod.Procs {
		scope := &scopeCtx{proc: proc, moduleLocals: mod.LocalSymbols, moduleGlobals: mod.GlobalSymbols}
		a.analyzeStmts(proc.Stmts, scope)
	}

	topScope := &scopeCtx{moduleLocals: mod.LocalSymbols, moduleGlobals: mod.GlobalSymbols}
	a.analyzeStmts(mod.Stmts, topScope)

	return a.errors
}

// preprocessProc synthesises param symbols and the implicit return-value
// local, per spec.md §4.3 step 1.
func (a *Analyzer) preprocessProc(proc *ast.FnProc) {
	proc.LocalSymbols = symtab.New()
	proc.ReturnType = types.Elementary(types.KindFromName(proc.Name))

	proc.ParamSymbols = make([]*symtab.Symbol, 0, len(proc.Params))
	for _, pname := range proc.Params {
		sym := proc.LocalSymbols.Define(pname, symtab.Arg, types.Elementary(types.KindFromName(pname)), symtab.Local)
		proc.ParamSymbols = append(proc.ParamSymbols, sym)
	}

	// The function's own name doubles as its return-value variable: an
	// assignment to it anywhere in the body is how a FUNCTION produces a
	// result (spec.md §4.3 step 1).
	proc.LocalSymbols.Define(proc.Name, symtab.Var, proc.ReturnType, symtab.Local)
}
