package semantic

import (
	"strings"

	"github.com/qbcompile/qbc/internal/ast"
	"github.com/qbcompile/qbc/internal/symtab"
	"github.com/qbcompile/qbc/internal/types"
)

// analyzeExpr type-checks e and returns its replacement (itself, unless a
// bare VarRef turned out to name a nullary function and was rewritten into
// an FnCall — spec.md §4.3 step 3). Callers must reassign the field they
// passed e from to the returned value.
func (a *Analyzer) analyzeExpr(e ast.Expr, scope *scopeCtx) ast.Expr {
	switch n := e.(type) {
	case *ast.Literal:
		return a.analyzeLiteral(n)
	case *ast.VarRef:
		return a.analyzeVarRef(n, scope)
	case *ast.FnCall:
		return a.analyzeFnCall(n, scope)
	case *ast.BinaryOp:
		return a.analyzeBinaryOp(n, scope)
	case *ast.UnaryOp:
		return a.analyzeUnaryOp(n, scope)
	default:
		return e
	}
}

// analyzeLiteral implements spec.md §4.3 step 2: string literals type as
// String; numeric literals type as Single (a deliberate simplification,
// spec.md §9).
func (a *Analyzer) analyzeLiteral(n *ast.Literal) ast.Expr {
	switch n.Value.(type) {
	case string:
		n.SetType(types.StringType)
	case float64:
		n.SetType(types.SingleType)
	}
	return n
}

// analyzeVarRef implements spec.md §4.3 step 3.
func (a *Analyzer) analyzeVarRef(n *ast.VarRef, scope *scopeCtx) ast.Expr {
	if sym, sc := scope.lookup(n.Name); sym != nil {
		n.Symbol = sym
		n.Scope = sc
		n.Resolved = true
		n.SetType(sym.Type)
		return n
	}

	if proc, ok := a.procsByName[strings.ToLower(n.Name)]; ok {
		if len(proc.Params) != 0 {
			a.errorf(n.Loc, "function %q requires %d argument(s), called with 0", proc.Name, len(proc.Params))
		}
		call := ast.NewFnCall(n.Loc, n.Name, nil)
		call.IsUserCall = true
		call.SetType(proc.ReturnType)
		return call
	}

	typ := types.Elementary(types.KindFromName(n.Name))
	sym := scope.declareLocal(n.Name, typ)
	n.Symbol = sym
	n.Scope = symtab.Local
	n.Resolved = true
	n.SetType(typ)
	return n
}

// analyzeFnCall implements spec.md §4.3 step 4, extended (see builtins.go)
// to also resolve array indexing and built-in calls, since spec.md's
// closed AST has FnCall double as an index expression.
func (a *Analyzer) analyzeFnCall(n *ast.FnCall, scope *scopeCtx) ast.Expr {
	for i, arg := range n.Args {
		n.Args[i] = a.analyzeExpr(arg, scope)
	}

	key := strings.ToLower(n.Name)

	if sym, _ := scope.lookup(n.Name); sym != nil && sym.Type.Kind == types.Array {
		a.analyzeArrayIndex(n, sym)
		return n
	}

	if proc, ok := a.procsByName[key]; ok {
		a.analyzeUserCall(n, proc)
		return n
	}

	if arrayBuiltins[key] {
		a.analyzeArrayBuiltin(n, scope)
		return n
	}

	if sig, ok := builtins[key]; ok {
		a.analyzeBuiltinCall(n, key, sig)
		return n
	}

	a.errorf(n.Loc, "undefined function or array %q", n.Name)
	n.SetType(types.SingleType)
	return n
}

func (a *Analyzer) analyzeArrayIndex(n *ast.FnCall, sym *symtab.Symbol) {
	n.Symbol = sym
	if len(n.Args) != len(sym.Type.Dims) {
		a.errorf(n.Loc, "array %q takes %d index(es), got %d", n.Name, len(sym.Type.Dims), len(n.Args))
	}
	for _, arg := range n.Args {
		if t := arg.GetType(); t != nil && !t.IsNumeric() {
			a.errorf(arg.Pos(), "array index must be numeric")
		}
	}
	if sym.Type.Elem != nil {
		n.SetType(*sym.Type.Elem)
	} else {
		n.SetType(types.SingleType)
	}
}

func (a *Analyzer) analyzeUserCall(n *ast.FnCall, proc *ast.FnProc) {
	n.IsUserCall = true
	if len(n.Args) != len(proc.Params) {
		a.errorf(n.Loc, "function %q requires %d argument(s), called with %d", proc.Name, len(proc.Params), len(n.Args))
	} else {
		for i, arg := range n.Args {
			at := arg.GetType()
			pt := proc.ParamSymbols[i].Type
			if at != nil && !types.MatchingElementary(*at, pt) {
				a.errorf(arg.Pos(), "argument %d to %q: %s does not match parameter type %s", i+1, proc.Name, at, pt)
			}
		}
	}
	n.SetType(proc.ReturnType)
}

func (a *Analyzer) analyzeBuiltinCall(n *ast.FnCall, name string, sig builtinSig) {
	if len(n.Args) < sig.minArgs || len(n.Args) > sig.maxArgs {
		a.errorf(n.Loc, "%s expects between %d and %d argument(s), got %d", name, sig.minArgs, sig.maxArgs, len(n.Args))
	}
	n.SetType(sig.result)
}

// analyzeArrayBuiltin handles LBOUND/UBOUND, whose first argument is an
// array symbol rather than an elementary expression.
func (a *Analyzer) analyzeArrayBuiltin(n *ast.FnCall, scope *scopeCtx) {
	n.SetType(types.IntegerType)
	if len(n.Args) < 1 || len(n.Args) > 2 {
		a.errorf(n.Loc, "%s expects 1 or 2 argument(s), got %d", n.Name, len(n.Args))
		return
	}
	ref, ok := n.Args[0].(*ast.VarRef)
	if !ok {
		a.errorf(n.Args[0].Pos(), "%s's first argument must be an array name", n.Name)
		return
	}
	sym, _ := scope.lookup(ref.Name)
	if sym == nil || sym.Type.Kind != types.Array {
		a.errorf(ref.Loc, "%q is not an array", ref.Name)
		return
	}
	ref.Symbol = sym
	ref.Resolved = true
	ref.SetType(sym.Type)
	if len(n.Args) == 2 {
		if dt := n.Args[1].GetType(); dt != nil && !dt.IsNumeric() {
			a.errorf(n.Args[1].Pos(), "%s dimension argument must be numeric", n.Name)
		}
	}
}

// analyzeBinaryOp implements spec.md §4.3 step 5.
func (a *Analyzer) analyzeBinaryOp(n *ast.BinaryOp, scope *scopeCtx) ast.Expr {
	n.Left = a.analyzeExpr(n.Left, scope)
	n.Right = a.analyzeExpr(n.Right, scope)
	lt, rt := n.Left.GetType(), n.Right.GetType()
	if lt == nil || rt == nil {
		n.SetType(types.SingleType)
		return n
	}

	switch n.Op {
	case ast.BinAdd:
		switch {
		case lt.IsString() && rt.IsString():
			n.SetType(types.StringType)
		case lt.IsNumeric() && rt.IsNumeric():
			n.SetType(types.Widen(*lt, *rt))
		default:
			a.errorf(n.Loc, "operands to + must both be numeric or both be string, got %s and %s", lt, rt)
			n.SetType(types.SingleType)
		}
	case ast.BinSub, ast.BinMul, ast.BinExp, ast.BinIntDiv, ast.BinMod:
		if !lt.IsNumeric() || !rt.IsNumeric() {
			a.errorf(n.Loc, "operands to %s must be numeric, got %s and %s", n.Op, lt, rt)
			n.SetType(types.SingleType)
		} else {
			n.SetType(types.Widen(*lt, *rt))
		}
	case ast.BinDiv:
		if !lt.IsNumeric() || !rt.IsNumeric() {
			a.errorf(n.Loc, "operands to / must be numeric, got %s and %s", lt, rt)
			n.SetType(types.SingleType)
		} else {
			n.SetType(types.Widen(types.Widen(*lt, *rt), types.SingleType))
		}
	case ast.BinAnd, ast.BinOr:
		if !lt.IsNumeric() || !rt.IsNumeric() {
			a.errorf(n.Loc, "operands to %s must be numeric, got %s and %s", n.Op, lt, rt)
		}
		n.SetType(types.IntegerType)
	case ast.BinEq, ast.BinNe, ast.BinLt, ast.BinLte, ast.BinGt, ast.BinGte:
		if !types.MatchingElementary(*lt, *rt) {
			a.errorf(n.Loc, "operands to %s must both be numeric or both be string, got %s and %s", n.Op, lt, rt)
		}
		n.SetType(types.IntegerType)
	default:
		n.SetType(types.SingleType)
	}
	return n
}

// analyzeUnaryOp implements spec.md §4.3 step 6.
func (a *Analyzer) analyzeUnaryOp(n *ast.UnaryOp, scope *scopeCtx) ast.Expr {
	n.Operand = a.analyzeExpr(n.Operand, scope)
	ot := n.Operand.GetType()
	if ot == nil {
		n.SetType(types.SingleType)
		return n
	}
	switch n.Op {
	case ast.UnaryNeg:
		if !ot.IsNumeric() {
			a.errorf(n.Loc, "operand to unary - must be numeric, got %s", ot)
			n.SetType(types.SingleType)
		} else {
			n.SetType(*ot)
		}
	case ast.UnaryNot:
		if !ot.IsNumeric() {
			a.errorf(n.Loc, "operand to NOT must be numeric, got %s", ot)
		}
		n.SetType(types.IntegerType)
	case ast.UnaryParens:
		n.SetType(*ot)
	default:
		n.SetType(types.SingleType)
	}
	return n
}
