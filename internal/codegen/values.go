package codegen

import (
	"strings"

	"github.com/qbcompile/qbc/internal/runtime"
	"github.com/qbcompile/qbc/internal/symtab"
	"github.com/qbcompile/qbc/internal/types"
)

// qbTrue/qbFalse follow QBasic's own Integer encoding of a logical result:
// -1 for true, 0 for false (spec.md §4.3 step 5: comparison/AND/OR results
// are Integer, "used both bitwise-on-integer and logical").
const (
	qbTrue  = -1
	qbFalse = 0
)

func boolToQB(b bool) float64 {
	if b {
		return qbTrue
	}
	return qbFalse
}

func isTruthy(v runtime.Value) bool { return v.Num != 0 }

// coerceToKind relabels v's Kind tag to k, per spec.md §4.3's coercion
// model: numeric widening/narrowing here is purely a tag change (no
// integer-overflow emulation, spec.md §1 Non-goals), and String values
// pass through unchanged.
func coerceToKind(v runtime.Value, k types.Kind) runtime.Value {
	if k == types.String {
		return v
	}
	return runtime.Num(k, v.Num)
}

// storageKey is the canonical, case-folded map key every read/write of a
// symbol's storage location uses (spec.md §3 "case-insensitive").
func storageKey(sym *symtab.Symbol) string { return strings.ToLower(sym.Name) }

// getSymbol/setSymbol implement spec.md §4.4's "localVars[name], params[name]
// per analyzed scope" assignment rule. symtab.Scope turns out never to carry
// Global in this grammar (no GLOBAL keyword exists), so storage location is
// dispatched on symtab.Kind instead: Arg reads/writes go to ctx.Params,
// everything else (Var, Const) goes to ctx.Locals — see DESIGN.md.
func getSymbol(ctx *runtime.Context, sym *symtab.Symbol) runtime.Value {
	key := storageKey(sym)
	if sym.Kind == symtab.Arg {
		if v, ok := ctx.Params[key]; ok {
			return v
		}
		return runtime.Zero(elementaryKind(sym.Type))
	}
	if v, ok := ctx.Locals[key]; ok {
		return v
	}
	return runtime.Zero(elementaryKind(sym.Type))
}

func setSymbol(ctx *runtime.Context, sym *symtab.Symbol, v runtime.Value) {
	key := storageKey(sym)
	if sym.Kind == symtab.Arg {
		ctx.Params[key] = v
		return
	}
	ctx.Locals[key] = v
}

func elementaryKind(t types.Type) types.Kind {
	if t.Kind == types.Array {
		return types.Array
	}
	return t.Kind
}
