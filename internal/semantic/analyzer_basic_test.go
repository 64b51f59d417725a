package semantic

import (
	"testing"

	"github.com/qbcompile/qbc/internal/ast"
	"github.com/qbcompile/qbc/internal/lexer"
	"github.com/qbcompile/qbc/internal/parser"
	"github.com/qbcompile/qbc/internal/types"
)

func analyzeSource(t *testing.T, src string) (*ast.Module, []string) {
	t.Helper()
	p := parser.New(lexer.New(src))
	mod := p.ParseModule()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	errs := New().Analyze(mod)
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return mod, msgs
}

func TestAnalyzeSimpleAssignResolvesVarRef(t *testing.T) {
	mod, errs := analyzeSource(t, "x% = 1 + 2\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	assign := mod.Stmts[0].(*ast.Assign)
	ref := assign.Target.(*ast.VarRef)
	if ref.Symbol == nil {
		t.Fatal("expected VarRef to be resolved with a Symbol")
	}
	if ref.Symbol.Type.Kind != types.Integer {
		t.Fatalf("expected Integer, got %v", ref.Symbol.Type.Kind)
	}
}

func TestAnalyzeNumericLiteralTypesAsSingle(t *testing.T) {
	mod, errs := analyzeSource(t, "x! = 3.14\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	assign := mod.Stmts[0].(*ast.Assign)
	lit := assign.Value.(*ast.Literal)
	if lit.GetType() == nil || lit.GetType().Kind != types.Single {
		t.Fatalf("expected numeric literal typed Single, got %v", lit.GetType())
	}
}

func TestAnalyzeUndefinedFunctionCallIsError(t *testing.T) {
	_, errs := analyzeSource(t, "x = Foo(1)\n")
	if len(errs) == 0 {
		t.Fatal("expected a semantic error for a call to an undeclared function")
	}
}

func TestAnalyzeStringNumericMismatchIsError(t *testing.T) {
	_, errs := analyzeSource(t, `x% = "hello" + 1`+"\n")
	if len(errs) == 0 {
		t.Fatal("expected a semantic error mixing String and Integer in +")
	}
}

func TestAnalyzeFunctionDeclaresParamsAndReturnLocal(t *testing.T) {
	src := "FUNCTION Square%(n%)\n  Square% = n% * n%\nEND FUNCTION\n"
	mod, errs := analyzeSource(t, src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	proc := mod.Procs[0]
	if len(proc.ParamSymbols) != 1 {
		t.Fatalf("expected 1 param symbol, got %d", len(proc.ParamSymbols))
	}
	if proc.ReturnType.Kind != types.Integer {
		t.Fatalf("expected Integer return type, got %v", proc.ReturnType.Kind)
	}
}
