package semantic

import (
	"strings"

	"github.com/qbcompile/qbc/internal/ast"
	"github.com/qbcompile/qbc/internal/symtab"
	"github.com/qbcompile/qbc/internal/types"
)

// analyzeStmts walks a statement list in source order, per spec.md §4.3
// step 7's per-construct rules.
func (a *Analyzer) analyzeStmts(stmts []ast.Stmt, scope *scopeCtx) {
	for _, stmt := range stmts {
		a.analyzeStmt(stmt, scope)
	}
}

func (a *Analyzer) analyzeStmt(stmt ast.Stmt, scope *scopeCtx) {
	switch s := stmt.(type) {
	case *ast.Label, *ast.Goto, *ast.ExitLoop, *ast.ExitFor, *ast.Gosub, *ast.Return, *ast.End:
		// No expressions to check; labels/jumps are resolved by the code
		// generator against the compiled statement list (spec.md §3
		// invariants), not by the analyzer.
	case *ast.Assign:
		a.analyzeAssign(s, scope)
	case *ast.If:
		a.analyzeIf(s, scope)
	case *ast.CondLoop:
		a.analyzeCondLoop(s, scope)
	case *ast.UncondLoop:
		a.analyzeStmts(s.Stmts, scope)
	case *ast.For:
		a.analyzeFor(s, scope)
	case *ast.Next:
		// Counter names are checked textually against open FOR frames by
		// the code generator (spec.md §4.4), not the analyzer.
	case *ast.Print:
		a.analyzePrint(s, scope)
	case *ast.Input:
		a.analyzeInput(s, scope)
	case *ast.Dim:
		a.analyzeDim(s, scope)
	}
}

func (a *Analyzer) analyzeAssign(s *ast.Assign, scope *scopeCtx) {
	s.Target = a.analyzeExpr(s.Target, scope)
	s.Value = a.analyzeExpr(s.Value, scope)
	tt, vt := s.Target.GetType(), s.Value.GetType()
	if tt == nil || vt == nil {
		return
	}
	if !types.MatchingElementary(*tt, *vt) {
		a.errorf(s.Loc, "cannot assign %s value to %s target", vt, tt)
	}
}

func (a *Analyzer) analyzeIf(s *ast.If, scope *scopeCtx) {
	for i := range s.Arms {
		s.Arms[i].Cond = a.analyzeExpr(s.Arms[i].Cond, scope)
		a.checkNumericCond(s.Arms[i].Cond)
		a.analyzeStmts(s.Arms[i].Stmts, scope)
	}
	a.analyzeStmts(s.ElseStmts, scope)
}

func (a *Analyzer) analyzeCondLoop(s *ast.CondLoop, scope *scopeCtx) {
	s.Cond = a.analyzeExpr(s.Cond, scope)
	a.checkNumericCond(s.Cond)
	a.analyzeStmts(s.Stmts, scope)
}

func (a *Analyzer) checkNumericCond(cond ast.Expr) {
	if t := cond.GetType(); t != nil && !t.IsNumeric() {
		a.errorf(cond.Pos(), "condition must be numeric, got %s", t)
	}
}

func (a *Analyzer) analyzeFor(s *ast.For, scope *scopeCtx) {
	s.Start = a.analyzeExpr(s.Start, scope)
	s.End = a.analyzeExpr(s.End, scope)
	if s.Step != nil {
		s.Step = a.analyzeExpr(s.Step, scope)
	}
	for _, e := range []ast.Expr{s.Start, s.End, s.Step} {
		if e == nil {
			continue
		}
		if t := e.GetType(); t != nil && !t.IsNumeric() {
			a.errorf(e.Pos(), "FOR bound/step must be numeric, got %s", t)
		}
	}

	// Ensure the counter has a symbol before the body is walked, in case
	// the body itself references it: resolve/declare it through the same
	// path a bare identifier would take, and keep the resolved symbol on
	// the node so code generation can address its storage directly.
	if counterRef, ok := a.analyzeExpr(ast.NewVarRef(s.Loc, s.Counter), scope).(*ast.VarRef); ok {
		s.CounterSymbol = counterRef.Symbol
		s.CounterScope = counterRef.Scope
	} else {
		a.errorf(s.Loc, "FOR counter %q must not name a function", s.Counter)
	}

	a.analyzeStmts(s.Stmts, scope)
}

func (a *Analyzer) analyzePrint(s *ast.Print, scope *scopeCtx) {
	for i := range s.Args {
		if s.Args[i].Kind != ast.PrintValue {
			continue
		}
		s.Args[i].Expr = a.analyzeExpr(s.Args[i].Expr, scope)
		if t := s.Args[i].Expr.GetType(); t != nil && !t.IsElementary() {
			a.errorf(s.Args[i].Expr.Pos(), "PRINT argument must be elementary, got %s", t)
		}
	}
}

func (a *Analyzer) analyzeInput(s *ast.Input, scope *scopeCtx) {
	for i, target := range s.Targets {
		s.Targets[i] = a.analyzeExpr(target, scope)
		if t := s.Targets[i].GetType(); t != nil && !t.IsElementary() {
			a.errorf(s.Targets[i].Pos(), "INPUT target must be elementary, got %s", t)
		}
	}
}

// analyzeDim evaluates an array's dimension bounds and creates its symbol
// (see ast.Dim's doc comment: an Open Question resolution, not part of
// spec.md §3's enumerated closed statement set).
func (a *Analyzer) analyzeDim(s *ast.Dim, scope *scopeCtx) {
	dims := make([]types.Dim, 0, len(s.Bounds))
	for i := range s.Bounds {
		if s.Bounds[i].Lower != nil {
			s.Bounds[i].Lower = a.analyzeExpr(s.Bounds[i].Lower, scope)
		}
		s.Bounds[i].Upper = a.analyzeExpr(s.Bounds[i].Upper, scope)

		lower, _ := a.constIntBound(s.Bounds[i].Lower, 0)
		upper, _ := a.constIntBound(s.Bounds[i].Upper, 0)
		dims = append(dims, types.Dim{Lower: lower, Upper: upper})
	}

	elemKind := types.Single
	if s.AsType != "" {
		elemKind = types.KindFromName("x" + sigilFor(s.AsType))
	} else {
		elemKind = types.KindFromName(s.Name)
	}
	elemType := types.Elementary(elemKind)

	arrType := elemType
	if len(dims) > 0 {
		arrType = types.NewArray(elemType, dims)
	}

	if scope.proc != nil {
		scope.proc.LocalSymbols.Define(s.Name, symtab.Var, arrType, symtab.Local)
	} else {
		scope.moduleLocals.Define(s.Name, symtab.Var, arrType, symtab.Local)
	}
}

// constIntBound reads a constant numeric literal bound for the array's
// declared shape. Dynamic (non-literal) bounds are legal per spec.md §4.5
// ("DIM x(a TO b, c TO d) creates a typed array") but this implementation's
// static types.Dim only carries int bounds resolved at codegen/runtime
// array-creation time; the analyzer records 0 here as a placeholder and
// the generator re-evaluates the bound expressions when it emits the
// array's creation statement (see DESIGN.md).
func (a *Analyzer) constIntBound(e ast.Expr, fallback int) (int, bool) {
	if e == nil {
		return fallback, false
	}
	lit, ok := e.(*ast.Literal)
	if !ok {
		return fallback, false
	}
	f, ok := lit.Value.(float64)
	if !ok {
		return fallback, false
	}
	return int(f), true
}

// sigilFor maps an `AS <type>` keyword spelling back to the sigil
// KindFromName expects, since AsType is stored as plain keyword text
// (e.g. "INTEGER") rather than a symbol name.
func sigilFor(asType string) string {
	switch strings.ToUpper(asType) {
	case "INTEGER":
		return "%"
	case "LONG":
		return "&"
	case "SINGLE":
		return "!"
	case "DOUBLE":
		return "#"
	case "STRING":
		return "$"
	default:
		return ""
	}
}
