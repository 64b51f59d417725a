package ast

import (
	"github.com/qbcompile/qbc/internal/symtab"
	"github.com/qbcompile/qbc/internal/token"
)

// Literal is a string or numeric constant. Value holds a string for
// STRING_LITERAL tokens and a float64 for NUMERIC_LITERAL tokens (spec.md
// §4.3 step 2: numeric literals type as Single, see DESIGN.md).
type Literal struct {
	exprBase
	Value any // string | float64
}

func NewLiteral(loc token.Position, value any) *Literal {
	return &Literal{exprBase: exprBase{Loc: loc}, Value: value}
}

// VarRef is a bare identifier reference. Symbol and Scope are populated by
// the semantic analyzer (spec.md §3 "AST" VarRef fields: type, varType,
// scope — Symbol.Type serves as varType here); a VarRef that turns out to
// name a nullary FnProc is rewritten in place into an FnCall during
// analysis (spec.md §4.3 step 3, §9 design note).
type VarRef struct {
	exprBase
	Name     string
	Symbol   *symtab.Symbol // nil until analyzed
	Scope    symtab.Scope
	Resolved bool
}

func NewVarRef(loc token.Position, name string) *VarRef {
	return &VarRef{exprBase: exprBase{Loc: loc}, Name: name}
}

// FnCall is a function call or, indistinguishably at parse time, an array
// index expression: `f(x)` and `a(i)` share the same grammar production.
// The semantic analyzer (spec.md §4.3 step 3/4) decides which this is by
// looking up Name in scope, and records that decision on the node so the
// code generator never has to re-run name resolution: Symbol is set (to
// the array's symbol) when this is an index expression; IsUserCall is set
// when Name resolved to a declared FnProc. Neither set means a built-in.
type FnCall struct {
	exprBase
	Name       string
	Args       []Expr
	Symbol     *symtab.Symbol // non-nil only for array-index FnCalls
	IsUserCall bool
}

func NewFnCall(loc token.Position, name string, args []Expr) *FnCall {
	return &FnCall{exprBase: exprBase{Loc: loc}, Name: name, Args: args}
}

// BinaryOperator enumerates the operators a BinaryOp node may carry.
type BinaryOperator int

const (
	BinAdd BinaryOperator = iota
	BinSub
	BinMul
	BinDiv
	BinIntDiv
	BinExp
	BinMod
	BinAnd
	BinOr
	BinEq
	BinNe
	BinLt
	BinLte
	BinGt
	BinGte
)

func (op BinaryOperator) String() string {
	switch op {
	case BinAdd:
		return "+"
	case BinSub:
		return "-"
	case BinMul:
		return "*"
	case BinDiv:
		return "/"
	case BinIntDiv:
		return "\\"
	case BinExp:
		return "^"
	case BinMod:
		return "MOD"
	case BinAnd:
		return "AND"
	case BinOr:
		return "OR"
	case BinEq:
		return "="
	case BinNe:
		return "<>"
	case BinLt:
		return "<"
	case BinLte:
		return "<="
	case BinGt:
		return ">"
	case BinGte:
		return ">="
	default:
		return "?"
	}
}

// BinaryOp is a two-operand expression, per spec.md §4.3 step 5.
type BinaryOp struct {
	exprBase
	Op    BinaryOperator
	Left  Expr
	Right Expr
}

func NewBinaryOp(loc token.Position, op BinaryOperator, l, r Expr) *BinaryOp {
	return &BinaryOp{exprBase: exprBase{Loc: loc}, Op: op, Left: l, Right: r}
}

// UnaryOperator enumerates the operators a UnaryOp node may carry.
type UnaryOperator int

const (
	UnaryNeg UnaryOperator = iota
	UnaryNot
	UnaryParens
)

// UnaryOp is a single-operand expression, per spec.md §4.3 step 6. Parens
// is modeled explicitly so parenthesised groupings survive unchanged
// through code generation (spec.md §4.2).
type UnaryOp struct {
	exprBase
	Op      UnaryOperator
	Operand Expr
}

func NewUnaryOp(loc token.Position, op UnaryOperator, operand Expr) *UnaryOp {
	return &UnaryOp{exprBase: exprBase{Loc: loc}, Op: op, Operand: operand}
}
