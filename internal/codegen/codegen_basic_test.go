package codegen

import (
	"strings"
	"testing"

	"github.com/qbcompile/qbc/internal/lexer"
	"github.com/qbcompile/qbc/internal/parser"
	"github.com/qbcompile/qbc/internal/semantic"
)

func TestGenerateSourceMapCoversEveryRunnable(t *testing.T) {
	p := parser.New(lexer.New("x% = 1\nPRINT x%\n"))
	mod := p.ParseModule()
	if errs := semantic.New().Analyze(mod); len(errs) > 0 {
		t.Fatalf("unexpected semantic errors: %v", errs)
	}
	g := New()
	compiled, sm, errs := g.Generate(mod, "test.bas")
	if len(errs) > 0 {
		t.Fatalf("unexpected codegen errors: %v", errs)
	}
	nonLabel := 0
	for _, s := range compiled.Stmts {
		if s.Runnable != nil {
			nonLabel++
		}
	}
	if len(sm.Entries) != nonLabel {
		t.Fatalf("expected %d source map entries, got %d", nonLabel, len(sm.Entries))
	}
	for _, e := range sm.Entries {
		if e.ProcIndex != -1 {
			t.Fatalf("expected top-level entries to use ProcIndex -1, got %d", e.ProcIndex)
		}
	}
}

func TestGenerateUnclosedForReportsCodegenError(t *testing.T) {
	p := parser.New(lexer.New("FOR i% = 1 TO 3\n  PRINT i%\n"))
	mod := p.ParseModule()
	if errs := semantic.New().Analyze(mod); len(errs) > 0 {
		t.Fatalf("unexpected semantic errors: %v", errs)
	}
	g := New()
	_, _, errs := g.Generate(mod, "test.bas")
	if len(errs) == 0 {
		t.Fatal("expected a codegen error for an unclosed FOR")
	}
	if !strings.Contains(errs[0].Message, "unclosed FOR") {
		t.Fatalf("unexpected message: %q", errs[0].Message)
	}
}

func TestGenerateDuplicateLabelReportsCodegenError(t *testing.T) {
	p := parser.New(lexer.New("again:\nPRINT \"x\"\nagain:\nPRINT \"y\"\n"))
	mod := p.ParseModule()
	if errs := semantic.New().Analyze(mod); len(errs) > 0 {
		t.Fatalf("unexpected semantic errors: %v", errs)
	}
	g := New()
	_, _, errs := g.Generate(mod, "test.bas")
	if len(errs) == 0 {
		t.Fatal("expected a codegen error for a duplicate label")
	}
	if !strings.Contains(errs[0].Message, "already defined") {
		t.Fatalf("unexpected message: %q", errs[0].Message)
	}
}

func TestDisassembleListsLabelsAndStatements(t *testing.T) {
	p := parser.New(lexer.New("GOTO skip\nPRINT \"unreachable\"\nskip:\nPRINT \"reached\"\n"))
	mod := p.ParseModule()
	if errs := semantic.New().Analyze(mod); len(errs) > 0 {
		t.Fatalf("unexpected semantic errors: %v", errs)
	}
	g := New()
	compiled, _, errs := g.Generate(mod, "test.bas")
	if len(errs) > 0 {
		t.Fatalf("unexpected codegen errors: %v", errs)
	}
	text := Disassemble(compiled)
	if !strings.Contains(text, "module test.bas") {
		t.Fatalf("expected disassembly to name the module file, got:\n%s", text)
	}
	if !strings.Contains(text, "skip:") {
		t.Fatalf("expected disassembly to print the skip: label, got:\n%s", text)
	}
}
