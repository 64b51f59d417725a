package codegen

import (
	"math"
	"strings"

	"github.com/qbcompile/qbc/internal/ast"
	"github.com/qbcompile/qbc/internal/qerrors"
	"github.com/qbcompile/qbc/internal/runtime"
	"github.com/qbcompile/qbc/internal/token"
	"github.com/qbcompile/qbc/internal/types"
)

// evalFn is the target-language arithmetic spec.md §4.4's "Expression
// lowering" paragraph describes: a closure over the captured, already
// type-checked expression shape, evaluated against a live Context.
type evalFn func(ctx *runtime.Context) (runtime.Value, error)

func runtimeErr(pos token.Position, format string, args ...any) error {
	return qerrors.New(qerrors.KindRuntime, pos, format, args...)
}

func (g *Generator) genExprs(exprs []ast.Expr) []evalFn {
	fns := make([]evalFn, len(exprs))
	for i, e := range exprs {
		fns[i] = g.genExpr(e)
	}
	return fns
}

func (g *Generator) genExpr(e ast.Expr) evalFn {
	switch n := e.(type) {
	case *ast.Literal:
		return g.genLiteral(n)
	case *ast.VarRef:
		return g.genVarRef(n)
	case *ast.FnCall:
		return g.genFnCallExpr(n)
	case *ast.BinaryOp:
		return g.genBinaryOp(n)
	case *ast.UnaryOp:
		return g.genUnaryOp(n)
	default:
		pos := e.Pos()
		return func(ctx *runtime.Context) (runtime.Value, error) {
			return runtime.Value{}, runtimeErr(pos, "codegen: unhandled expression node")
		}
	}
}

func (g *Generator) genLiteral(n *ast.Literal) evalFn {
	var v runtime.Value
	switch val := n.Value.(type) {
	case string:
		v = runtime.Str(val)
	case float64:
		kind := types.Single
		if t := n.GetType(); t != nil {
			kind = t.Kind
		}
		v = runtime.Num(kind, val)
	}
	return func(ctx *runtime.Context) (runtime.Value, error) { return v, nil }
}

func (g *Generator) genVarRef(n *ast.VarRef) evalFn {
	sym := n.Symbol
	return func(ctx *runtime.Context) (runtime.Value, error) {
		return getSymbol(ctx, sym), nil
	}
}

// genFnCallExpr dispatches an *ast.FnCall by the three-way split the
// semantic analyzer already resolved (see ast.FnCall's doc comment): array
// index, user-defined FUNCTION call, or built-in call.
func (g *Generator) genFnCallExpr(n *ast.FnCall) evalFn {
	argFns := g.genExprs(n.Args)
	pos := n.Pos()
	name := n.Name

	if n.Symbol != nil {
		sym := n.Symbol
		return func(ctx *runtime.Context) (runtime.Value, error) {
			arrVal := getSymbol(ctx, sym)
			if arrVal.Arr == nil {
				return runtime.Value{}, runtimeErr(pos, "array %q is not dimensioned", name)
			}
			idx, err := evalIndices(ctx, argFns, pos)
			if err != nil {
				return runtime.Value{}, err
			}
			return arrVal.Arr.Get(pos, idx)
		}
	}

	if n.IsUserCall {
		return func(ctx *runtime.Context) (runtime.Value, error) {
			args, err := evalAll(ctx, argFns)
			if err != nil {
				return runtime.Value{}, err
			}
			return ctx.Call(pos, name, args)
		}
	}

	return func(ctx *runtime.Context) (runtime.Value, error) {
		args, err := evalAll(ctx, argFns)
		if err != nil {
			return runtime.Value{}, err
		}
		return runtime.Call(pos, name, args)
	}
}

func evalAll(ctx *runtime.Context, fns []evalFn) ([]runtime.Value, error) {
	out := make([]runtime.Value, len(fns))
	for i, fn := range fns {
		v, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func evalIndices(ctx *runtime.Context, fns []evalFn, pos token.Position) ([]int, error) {
	idx := make([]int, len(fns))
	for i, fn := range fns {
		v, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		idx[i] = int(v.Num)
	}
	return idx, nil
}

// genBinaryOp implements spec.md §4.4's "Expression lowering" two special
// cases (`^` a power function, `\` floor division) plus the general
// arithmetic/comparison rules from §4.3 step 5. String comparisons use
// strict, pointwise ordinal comparison (spec.md §4.4: "Comparisons use
// strict equality; relational operators are pointwise"), matching the
// teacher's own `evalStringBinaryOp`'s plain `==`/`<`/`>` on Go strings.
func (g *Generator) genBinaryOp(n *ast.BinaryOp) evalFn {
	leftFn := g.genExpr(n.Left)
	rightFn := g.genExpr(n.Right)
	lt, rt := n.Left.GetType(), n.Right.GetType()
	resultKind := types.Single
	if t := n.GetType(); t != nil {
		resultKind = t.Kind
	}
	op := n.Op
	pos := n.Pos()

	return func(ctx *runtime.Context) (runtime.Value, error) {
		lv, err := leftFn(ctx)
		if err != nil {
			return runtime.Value{}, err
		}
		rv, err := rightFn(ctx)
		if err != nil {
			return runtime.Value{}, err
		}

		switch op {
		case ast.BinAdd:
			if lt != nil && rt != nil && lt.IsString() && rt.IsString() {
				return runtime.Str(lv.Str + rv.Str), nil
			}
			return runtime.Num(resultKind, lv.Num+rv.Num), nil
		case ast.BinSub:
			return runtime.Num(resultKind, lv.Num-rv.Num), nil
		case ast.BinMul:
			return runtime.Num(resultKind, lv.Num*rv.Num), nil
		case ast.BinDiv:
			if rv.Num == 0 {
				return runtime.Value{}, runtimeErr(pos, "division by zero")
			}
			return runtime.Num(resultKind, lv.Num/rv.Num), nil
		case ast.BinIntDiv:
			divisor := int64(rv.Num)
			if divisor == 0 {
				return runtime.Value{}, runtimeErr(pos, "division by zero")
			}
			return runtime.Num(resultKind, math.Floor(float64(int64(lv.Num))/float64(divisor))), nil
		case ast.BinExp:
			return runtime.Num(resultKind, math.Pow(lv.Num, rv.Num)), nil
		case ast.BinMod:
			divisor := int64(rv.Num)
			if divisor == 0 {
				return runtime.Value{}, runtimeErr(pos, "division by zero")
			}
			return runtime.Num(resultKind, float64(int64(lv.Num)%divisor)), nil
		case ast.BinAnd:
			return runtime.Num(types.Integer, float64(int64(lv.Num)&int64(rv.Num))), nil
		case ast.BinOr:
			return runtime.Num(types.Integer, float64(int64(lv.Num)|int64(rv.Num))), nil
		case ast.BinEq, ast.BinNe, ast.BinLt, ast.BinLte, ast.BinGt, ast.BinGte:
			var cmp int
			if lt != nil && lt.IsString() {
				cmp = strings.Compare(lv.Str, rv.Str)
			} else {
				cmp = numCompare(lv.Num, rv.Num)
			}
			return runtime.Num(types.Integer, boolToQB(compareHolds(op, cmp))), nil
		default:
			return runtime.Value{}, runtimeErr(pos, "codegen: unhandled binary operator %s", op)
		}
	}
}

func numCompare(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareHolds(op ast.BinaryOperator, cmp int) bool {
	switch op {
	case ast.BinEq:
		return cmp == 0
	case ast.BinNe:
		return cmp != 0
	case ast.BinLt:
		return cmp < 0
	case ast.BinLte:
		return cmp <= 0
	case ast.BinGt:
		return cmp > 0
	case ast.BinGte:
		return cmp >= 0
	default:
		return false
	}
}

// genUnaryOp implements spec.md §4.4: "Unary NOT is logical-not; NEG is
// arithmetic negation." UnaryParens is a no-op at runtime; it exists purely
// so parenthesised grouping survives code generation unchanged (spec.md
// §4.2).
func (g *Generator) genUnaryOp(n *ast.UnaryOp) evalFn {
	operandFn := g.genExpr(n.Operand)
	resultKind := types.Single
	if t := n.GetType(); t != nil {
		resultKind = t.Kind
	}
	op := n.Op

	return func(ctx *runtime.Context) (runtime.Value, error) {
		v, err := operandFn(ctx)
		if err != nil {
			return runtime.Value{}, err
		}
		switch op {
		case ast.UnaryNeg:
			return runtime.Num(resultKind, -v.Num), nil
		case ast.UnaryNot:
			return runtime.Num(types.Integer, boolToQB(!isTruthy(v))), nil
		case ast.UnaryParens:
			return v, nil
		default:
			return v, nil
		}
	}
}
