package ast

import (
	"github.com/qbcompile/qbc/internal/symtab"
	"github.com/qbcompile/qbc/internal/token"
)

// Label marks a jump target. Label names emitted by the parser echo the
// source's own label text; label names emitted later by the generator for
// synthesized control-flow targets are distinct strings (spec.md §4.4).
type Label struct {
	stmtBase
	Name string
}

func NewLabel(loc token.Position, name string) *Label {
	return &Label{stmtBase: stmtBase{Loc: loc}, Name: name}
}

// Assign is `target = value` (optionally spelled with LET). Target is
// either a *VarRef (scalar assignment) or an *FnCall (array-element
// assignment — spec.md's closed AST has no separate index node; FnCall
// doubles as an index expression once resolved against an array symbol).
type Assign struct {
	stmtBase
	Target Expr
	Value  Expr
}

func NewAssign(loc token.Position, target, value Expr) *Assign {
	return &Assign{stmtBase: stmtBase{Loc: loc}, Target: target, Value: value}
}

// Goto is an unconditional jump to a source label.
type Goto struct {
	stmtBase
	Label string
}

func NewGoto(loc token.Position, label string) *Goto {
	return &Goto{stmtBase: stmtBase{Loc: loc}, Label: label}
}

// IfArm is one `IF`/`ELSEIF` condition-and-body pair.
type IfArm struct {
	Cond  Expr
	Stmts []Stmt
}

// If models both single-line and multi-line IF/ELSEIF/ELSE/END IF forms,
// which parse to the same node shape (spec.md §4.2).
type If struct {
	stmtBase
	Arms      []IfArm
	ElseStmts []Stmt
}

func NewIf(loc token.Position, arms []IfArm, elseStmts []Stmt) *If {
	return &If{stmtBase: stmtBase{Loc: loc}, Arms: arms, ElseStmts: elseStmts}
}

// LoopStructure distinguishes where a CondLoop's test sits.
type LoopStructure int

const (
	CondBeforeStmts LoopStructure = iota // DO WHILE/UNTIL cond ... LOOP
	CondAfterStmts                       // DO ... LOOP WHILE/UNTIL cond
)

// CondLoop is DO WHILE/DO UNTIL ... LOOP / DO ... LOOP WHILE/UNTIL, per
// spec.md §3 and §4.3.
type CondLoop struct {
	stmtBase
	Structure LoopStructure
	Negated   bool // true for UNTIL: the loop exits when cond is true
	Cond      Expr
	Stmts     []Stmt
}

func NewCondLoop(loc token.Position, structure LoopStructure, negated bool, cond Expr, stmts []Stmt) *CondLoop {
	return &CondLoop{stmtBase: stmtBase{Loc: loc}, Structure: structure, Negated: negated, Cond: cond, Stmts: stmts}
}

// UncondLoop is a bare `DO ... LOOP`.
type UncondLoop struct {
	stmtBase
	Stmts []Stmt
}

func NewUncondLoop(loc token.Position, stmts []Stmt) *UncondLoop {
	return &UncondLoop{stmtBase: stmtBase{Loc: loc}, Stmts: stmts}
}

// ExitLoop is `EXIT DO`. Valid only inside a CondLoop/UncondLoop.
type ExitLoop struct {
	stmtBase
}

func NewExitLoop(loc token.Position) *ExitLoop {
	return &ExitLoop{stmtBase: stmtBase{Loc: loc}}
}

// For is `FOR counter = start TO end [STEP step]`. CounterSymbol/CounterScope
// are populated by the semantic analyzer from the same resolution path a
// bare VarRef takes (spec.md §4.3 step 3), so the code generator can read
// and write the counter's storage location without re-resolving the name.
type For struct {
	stmtBase
	Counter       string
	CounterSymbol *symtab.Symbol
	CounterScope  symtab.Scope
	Start         Expr
	End           Expr
	Step          Expr // nil means implicit step of 1
	Stmts         []Stmt
}

func NewFor(loc token.Position, counter string, start, end, step Expr, stmts []Stmt) *For {
	return &For{stmtBase: stmtBase{Loc: loc}, Counter: counter, Start: start, End: end, Step: step, Stmts: stmts}
}

// Next is `NEXT [counter[, counter...]]`. A bare NEXT (no counters) closes
// exactly one open FOR; naming k counters closes k nested FORs, innermost
// first (spec.md §4.4).
type Next struct {
	stmtBase
	Counters []string
}

func NewNext(loc token.Position, counters []string) *Next {
	return &Next{stmtBase: stmtBase{Loc: loc}, Counters: counters}
}

// ExitFor is `EXIT FOR`. Valid only inside a For.
type ExitFor struct {
	stmtBase
}

func NewExitFor(loc token.Position) *ExitFor {
	return &ExitFor{stmtBase: stmtBase{Loc: loc}}
}

// Gosub is `GOSUB label`.
type Gosub struct {
	stmtBase
	DestLabel string
}

func NewGosub(loc token.Position, destLabel string) *Gosub {
	return &Gosub{stmtBase: stmtBase{Loc: loc}, DestLabel: destLabel}
}

// Return is `RETURN [label]`.
type Return struct {
	stmtBase
	DestLabel string // empty means "pop the gosub stack"
}

func NewReturn(loc token.Position, destLabel string) *Return {
	return &Return{stmtBase: stmtBase{Loc: loc}, DestLabel: destLabel}
}

// End is the `END` statement.
type End struct {
	stmtBase
}

func NewEnd(loc token.Position) *End {
	return &End{stmtBase: stmtBase{Loc: loc}}
}

// PrintItemKind distinguishes the three kinds of PRINT argument.
type PrintItemKind int

const (
	PrintComma PrintItemKind = iota
	PrintSemicolon
	PrintValue
)

// PrintItem is one comma-separated slot of a PRINT statement's argument
// list: either a separator marker or a value expression (spec.md §3, §4.4).
type PrintItem struct {
	Kind PrintItemKind
	Expr Expr // only set when Kind == PrintValue
}

// Print is the PRINT statement.
type Print struct {
	stmtBase
	Args []PrintItem
}

func NewPrint(loc token.Position, args []PrintItem) *Print {
	return &Print{stmtBase: stmtBase{Loc: loc}, Args: args}
}

// Input is the INPUT statement.
type Input struct {
	stmtBase
	Prompt  string
	Targets []Expr
}

func NewInput(loc token.Position, prompt string, targets []Expr) *Input {
	return &Input{stmtBase: stmtBase{Loc: loc}, Prompt: prompt, Targets: targets}
}

// Dim declares an array with explicit (possibly dynamic) dimension bounds:
// `DIM x(n)` (implicit 0 TO n) or `DIM x(a TO b, c TO d)`. This node is not
// part of spec.md §3's enumerated closed set; it is added to give dynamic
// array bounds (spec.md §4.5 "DIM x(a TO b, ...)") a statement to evaluate
// their bound expressions at and a site to create the runtime array
// object, and is recorded as an explicit Open-Question resolution in
// DESIGN.md rather than silently expanding the grammar.
type Dim struct {
	stmtBase
	Name   string
	Bounds []DimBound
	AsType string // elementary type name from `AS <type>`, or "" for sigil-inferred
}

// DimBound is one `[lower TO] upper` dimension bound expression pair.
// Lower is nil for the bare `DIM x(n)` form, meaning an implicit 0.
type DimBound struct {
	Lower Expr
	Upper Expr
}

func NewDim(loc token.Position, name string, bounds []DimBound, asType string) *Dim {
	return &Dim{stmtBase: stmtBase{Loc: loc}, Name: name, Bounds: bounds, AsType: asType}
}
