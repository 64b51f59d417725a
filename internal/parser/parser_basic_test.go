package parser

import (
	"testing"

	"github.com/qbcompile/qbc/internal/ast"
	"github.com/qbcompile/qbc/internal/lexer"
)

func parseModule(t *testing.T, src string) *ast.Module {
	t.Helper()
	p := New(lexer.New(src))
	mod := p.ParseModule()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, errs)
	}
	return mod
}

func TestParseAssign(t *testing.T) {
	mod := parseModule(t, "x% = 1 + 2\n")
	if len(mod.Stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(mod.Stmts))
	}
	assign, ok := mod.Stmts[0].(*ast.Assign)
	if !ok {
		t.Fatalf("expected *ast.Assign, got %T", mod.Stmts[0])
	}
	ref, ok := assign.Target.(*ast.VarRef)
	if !ok || ref.Name != "x%" {
		t.Fatalf("unexpected assign target: %#v", assign.Target)
	}
}

func TestParseIfElseifElse(t *testing.T) {
	src := `IF x = 1 THEN
  PRINT 1
ELSEIF x = 2 THEN
  PRINT 2
ELSE
  PRINT 3
END IF
`
	mod := parseModule(t, src)
	if len(mod.Stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(mod.Stmts))
	}
	ifStmt, ok := mod.Stmts[0].(*ast.If)
	if !ok {
		t.Fatalf("expected *ast.If, got %T", mod.Stmts[0])
	}
	if len(ifStmt.Arms) != 2 {
		t.Fatalf("expected 2 arms, got %d", len(ifStmt.Arms))
	}
	if len(ifStmt.ElseStmts) != 1 {
		t.Fatalf("expected 1 else statement, got %d", len(ifStmt.ElseStmts))
	}
}

func TestParseForNext(t *testing.T) {
	src := "FOR i = 1 TO 10 STEP 2\n  PRINT i\nNEXT i\n"
	mod := parseModule(t, src)
	if len(mod.Stmts) != 2 {
		t.Fatalf("expected 2 statements (For, Next), got %d", len(mod.Stmts))
	}
	forStmt, ok := mod.Stmts[0].(*ast.For)
	if !ok {
		t.Fatalf("expected *ast.For, got %T", mod.Stmts[0])
	}
	if forStmt.Counter != "i" {
		t.Fatalf("expected counter %q, got %q", "i", forStmt.Counter)
	}
	if forStmt.Step == nil {
		t.Fatal("expected non-nil Step")
	}
	next, ok := mod.Stmts[1].(*ast.Next)
	if !ok {
		t.Fatalf("expected *ast.Next, got %T", mod.Stmts[1])
	}
	if len(next.Counters) != 1 || next.Counters[0] != "i" {
		t.Fatalf("unexpected next counters: %v", next.Counters)
	}
}

func TestParseDoLoopUntil(t *testing.T) {
	src := "DO\n  x = x + 1\nLOOP UNTIL x = 10\n"
	mod := parseModule(t, src)
	loop, ok := mod.Stmts[0].(*ast.CondLoop)
	if !ok {
		t.Fatalf("expected *ast.CondLoop, got %T", mod.Stmts[0])
	}
	if loop.Structure != ast.CondAfterStmts {
		t.Fatalf("expected CondAfterStmts, got %v", loop.Structure)
	}
	if !loop.Negated {
		t.Fatal("expected Negated=true for UNTIL")
	}
}

func TestParseFunctionDecl(t *testing.T) {
	src := "FUNCTION Square%(n%)\n  Square% = n% * n%\nEND FUNCTION\n"
	mod := parseModule(t, src)
	if len(mod.Procs) != 1 {
		t.Fatalf("expected 1 proc, got %d", len(mod.Procs))
	}
	proc := mod.Procs[0]
	if proc.Name != "Square%" {
		t.Fatalf("unexpected proc name: %q", proc.Name)
	}
	if len(proc.Params) != 1 || proc.Params[0] != "n%" {
		t.Fatalf("unexpected params: %v", proc.Params)
	}
}

func TestParseDimWithBounds(t *testing.T) {
	mod := parseModule(t, "DIM a(10) AS INTEGER\n")
	dim, ok := mod.Stmts[0].(*ast.Dim)
	if !ok {
		t.Fatalf("expected *ast.Dim, got %T", mod.Stmts[0])
	}
	if dim.Name != "a" || dim.AsType != "INTEGER" {
		t.Fatalf("unexpected dim: %+v", dim)
	}
	if len(dim.Bounds) != 1 || dim.Bounds[0].Lower != nil {
		t.Fatalf("expected one implicit-lower bound, got %+v", dim.Bounds)
	}
}
