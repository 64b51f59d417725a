package codegen

import (
	"fmt"

	"github.com/qbcompile/qbc/internal/runtime"
	"github.com/qbcompile/qbc/internal/symtab"
	"github.com/qbcompile/qbc/internal/token"
	"github.com/qbcompile/qbc/internal/types"
)

// loopFrame is one open DO/LOOP's break target, pushed by genCondLoop/
// genUncondLoop and consulted by EXIT DO (spec.md §6's loopStack note).
type loopFrame struct {
	endLabel string
}

// forFrame is one open FOR's identity and break target, pushed by genFor
// (spec.md §4.4: "{forStmt, startLabel, endLabel, stepTemp, endTemp}") and
// consulted by NEXT (to close it) and EXIT FOR. counterKey is the
// canonical (lower-cased) counter name, used to match a `NEXT i, j`
// counter list against open frames innermost-first.
type forFrame struct {
	counterKey  string
	counterSym  *symtab.Symbol
	counterKind types.Kind
	startLabel  string // the guard/test the increment jumps back to
	endLabel    string
	stepKey     string // ctx.Locals temp key holding the evaluated STEP
	endKey      string // ctx.Locals temp key holding the evaluated TO bound
}

// genScope accumulates one proc's (or the module's) flat statement list
// plus its label-stem counter and open loop/for stacks. A fresh genScope is
// used per proc and per the module's top-level statement list, matching
// the independent label-namespaces spec.md §3 invariants require ("label
// names are only required to be unique within one statement list").
type genScope struct {
	stmts        []runtime.CompiledStmt
	labelCounter int
	loopStack    []loopFrame
	forStack     []forFrame
	labelsSeen   map[string]bool
}

func newScope() *genScope {
	return &genScope{labelsSeen: make(map[string]bool)}
}

// newLabel mints a fresh synthesized label name stamped with suffix, using
// a monotonic per-scope counter (spec.md §6: "$1, $2, ... with
// construct-specific suffixes").
func (s *genScope) newLabel(suffix string) string {
	s.labelCounter++
	return fmt.Sprintf("$%d%s", s.labelCounter, suffix)
}

// emitLabel appends a label marker. name may be a source label (parsed
// verbatim) or a synthesized one from newLabel. It reports whether name was
// already emitted earlier in this scope, so a caller with access to the
// Generator's error sink can enforce spec.md §8's "no label name is emitted
// twice within the same proc" testable property.
func (s *genScope) emitLabel(name string) bool {
	dup := s.labelsSeen[name]
	s.labelsSeen[name] = true
	s.stmts = append(s.stmts, runtime.CompiledStmt{Label: name})
	return dup
}

// emit appends a runnable statement lowered from a source statement at pos.
func (s *genScope) emit(pos token.Position, run func(ctx *runtime.Context) (runtime.Directive, error)) {
	s.stmts = append(s.stmts, runtime.CompiledStmt{Runnable: &runtime.Runnable{Loc: pos, Run: run}})
}

func (s *genScope) pushLoop(endLabel string) {
	s.loopStack = append(s.loopStack, loopFrame{endLabel: endLabel})
}

func (s *genScope) popLoop() {
	s.loopStack = s.loopStack[:len(s.loopStack)-1]
}

func (s *genScope) currentLoop() (loopFrame, bool) {
	if len(s.loopStack) == 0 {
		return loopFrame{}, false
	}
	return s.loopStack[len(s.loopStack)-1], true
}

func (s *genScope) pushFor(f forFrame) {
	s.forStack = append(s.forStack, f)
}

func (s *genScope) popFor() {
	s.forStack = s.forStack[:len(s.forStack)-1]
}

func (s *genScope) currentFor() (forFrame, bool) {
	if len(s.forStack) == 0 {
		return forFrame{}, false
	}
	return s.forStack[len(s.forStack)-1], true
}
