// Package runtime implements the runtime contract spec.md §4.5 describes:
// the storage model, built-in function registry, print/input semantics,
// and the trampoline executor that walks a compiled module (spec.md §5).
package runtime

import (
	"fmt"

	"github.com/qbcompile/qbc/internal/qerrors"
	"github.com/qbcompile/qbc/internal/token"
	"github.com/qbcompile/qbc/internal/types"
)

// Value is a dynamically-kinded elementary or array runtime value. Only
// one of Num/Str/Arr is meaningful, selected by Kind.
type Value struct {
	Kind types.Kind
	Num  float64
	Str  string
	Arr  *Array
}

// Zero returns the zero value for an elementary kind (numeric 0, or "" for
// String), matching QBasic's implicit-variable-initialization semantics.
func Zero(k types.Kind) Value {
	if k == types.String {
		return Value{Kind: types.String, Str: ""}
	}
	return Value{Kind: k, Num: 0}
}

func Num(k types.Kind, n float64) Value { return Value{Kind: k, Num: n} }
func Str(s string) Value                { return Value{Kind: types.String, Str: s} }
func ArrValue(a *Array) Value           { return Value{Kind: types.Array, Arr: a} }

func (v Value) String() string {
	switch v.Kind {
	case types.String:
		return v.Str
	case types.Array:
		return "<array>"
	default:
		return fmt.Sprintf("%g", v.Num)
	}
}

// runtimeErr builds a RuntimeError at pos, matching the other stages'
// qerrors.Error shape (spec.md §7).
func runtimeErr(pos token.Position, format string, args ...any) *qerrors.Error {
	return qerrors.New(qerrors.KindRuntime, pos, format, args...)
}
