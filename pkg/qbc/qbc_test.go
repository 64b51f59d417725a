package qbc

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/qbcompile/qbc/internal/runtime"
)

func runSource(t *testing.T, src string) string {
	t.Helper()
	result, err := Compile(src, Options{SourceFileName: "test.bas"})
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	var out bytes.Buffer
	env := runtime.NewStdEnv(strings.NewReader(""), &out)
	interp := runtime.NewInterpreter(env)
	if err := interp.RunModule(result.Module); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return out.String()
}

func TestCompilePrintLiteral(t *testing.T) {
	out := runSource(t, `PRINT "HELLO"`+"\n")
	if out != "HELLO\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestCompileForNextAccumulates(t *testing.T) {
	src := "total% = 0\nFOR i% = 1 TO 5\n  total% = total% + i%\nNEXT i%\nPRINT total%\n"
	out := runSource(t, src)
	if out != " 15 \n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestCompileIfElseif(t *testing.T) {
	src := `x% = 2
IF x% = 1 THEN
  PRINT "one"
ELSEIF x% = 2 THEN
  PRINT "two"
ELSE
  PRINT "other"
END IF
`
	out := runSource(t, src)
	if out != "two\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestCompileDoUntil(t *testing.T) {
	src := "n% = 0\nDO\n  n% = n% + 1\nLOOP UNTIL n% = 3\nPRINT n%\n"
	out := runSource(t, src)
	if out != " 3 \n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestCompileArrayDimAndIndex(t *testing.T) {
	src := "DIM a(3) AS INTEGER\na(0) = 10\na(1) = 20\nPRINT a(0) + a(1)\n"
	out := runSource(t, src)
	if out != " 30 \n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestCompileUserFunctionCall(t *testing.T) {
	src := "FUNCTION Square%(n%)\n  Square% = n% * n%\nEND FUNCTION\nPRINT Square%(7)\n"
	out := runSource(t, src)
	if out != " 49 \n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestCompileGosubReturn(t *testing.T) {
	src := "GOSUB greet\nPRINT \"after\"\nEND\ngreet:\nPRINT \"hi\"\nRETURN\n"
	out := runSource(t, src)
	if out != "hi\nafter\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestCompileInputCoercesFields(t *testing.T) {
	result, err := Compile("INPUT n%\nPRINT n% * 2\n", Options{SourceFileName: "test.bas"})
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	var out bytes.Buffer
	env := runtime.NewStdEnv(strings.NewReader("21\n"), &out)
	interp := runtime.NewInterpreter(env)
	if err := interp.RunModule(result.Module); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if out.String() != " 42 \n" {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestCompileLexErrorSurfacesAsStagedError(t *testing.T) {
	_, err := Compile(`PRINT "unterminated`, Options{SourceFileName: "test.bas"})
	if err == nil {
		t.Fatal("expected a lex-stage error")
	}
	cerr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *qbc.Error, got %T", err)
	}
	if cerr.Stage != "lex" {
		t.Fatalf("expected stage=lex, got %q", cerr.Stage)
	}
}

func TestCompileSemanticErrorSurfacesAsStagedError(t *testing.T) {
	_, err := Compile(`x% = "hello" + 1`+"\n", Options{SourceFileName: "test.bas"})
	if err == nil {
		t.Fatal("expected a semantic-stage error")
	}
	cerr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *qbc.Error, got %T", err)
	}
	if cerr.Stage != "semantic" {
		t.Fatalf("expected stage=semantic, got %q", cerr.Stage)
	}
}

func TestCompileUnclosedForIsCodegenError(t *testing.T) {
	// A FOR with no matching NEXT leaves the generator's forStack non-empty
	// at end of scope (spec.md §8's testable property).
	src := "FOR i% = 1 TO 3\n  PRINT i%\n"
	_, err := Compile(src, Options{SourceFileName: "test.bas"})
	if err == nil {
		t.Fatal("expected a codegen-stage error for an unclosed FOR")
	}
	cerr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *qbc.Error, got %T", err)
	}
	if cerr.Stage != "codegen" {
		t.Fatalf("expected stage=codegen, got %q", cerr.Stage)
	}
}

func TestCompileSnapshotsMultiFeatureScript(t *testing.T) {
	src := `count% = 0
FOR i% = 1 TO 3
  IF i% = 2 THEN
    PRINT "skip"
  ELSE
    count% = count% + i%
  END IF
NEXT i%
PRINT count%
`
	out := runSource(t, src)
	snaps.MatchSnapshot(t, out)
}
