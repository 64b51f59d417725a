// Package ast defines the QBasic abstract syntax tree described in
// spec.md §3: a closed set of statement and expression node variants, each
// carrying a source position, with expression nodes additionally carrying
// an inferred type once the semantic analyzer has run.
package ast

import (
	"github.com/qbcompile/qbc/internal/symtab"
	"github.com/qbcompile/qbc/internal/token"
	"github.com/qbcompile/qbc/internal/types"
)

// Node is the base interface implemented by every AST node.
type Node interface {
	Pos() token.Position
}

// Stmt is any statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is any expression node. Type is nil until the semantic analyzer has
// run; every expression has a non-nil Type after a successful Analyze
// (spec.md §3 invariants, §8 testable properties).
type Expr interface {
	Node
	exprNode()
	GetType() *types.Type
	SetType(types.Type)
}

// exprBase factors the position and analyzed-type bookkeeping shared by
// every expression node variant.
type exprBase struct {
	Loc token.Position
	Typ *types.Type
}

func (e *exprBase) Pos() token.Position  { return e.Loc }
func (e *exprBase) exprNode()            {}
func (e *exprBase) GetType() *types.Type { return e.Typ }
func (e *exprBase) SetType(t types.Type) { e.Typ = t }

// stmtBase factors the position shared by every statement node variant.
type stmtBase struct {
	Loc token.Position
}

func (s *stmtBase) Pos() token.Position { return s.Loc }
func (s *stmtBase) stmtNode()           {}

// FnProc is a user-defined FUNCTION. spec.md's Non-goals exclude SUB
// procedures; only nullary-or-argumented FUNCTIONs with a return value are
// modeled (spec.md §4.3 step 1).
type FnProc struct {
	Name         string
	Params       []string
	ParamSymbols []*symtab.Symbol
	LocalSymbols *symtab.Table
	ReturnType   types.Type
	Stmts        []Stmt
	Loc          token.Position
}

func (p *FnProc) Pos() token.Position { return p.Loc }

// Module is the root of a parsed (and, after analysis, type-annotated)
// program: spec.md §3 "Module".
type Module struct {
	Procs         []*FnProc
	Stmts         []Stmt
	LocalSymbols  *symtab.Table
	GlobalSymbols *symtab.Table
}
