package runtime

import (
	"bytes"
	"strings"
	"testing"

	"github.com/qbcompile/qbc/internal/types"
)

func TestStdEnvPrintNumberHasSignSlot(t *testing.T) {
	var buf bytes.Buffer
	e := NewStdEnv(strings.NewReader(""), &buf)
	e.Print([]PrintArg{{Kind: ArgValue, Value: Num(types.Integer, 5)}})
	if buf.String() != " 5 \n" {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestStdEnvPrintNegativeNumberNoLeadingSpace(t *testing.T) {
	var buf bytes.Buffer
	e := NewStdEnv(strings.NewReader(""), &buf)
	e.Print([]PrintArg{{Kind: ArgValue, Value: Num(types.Integer, -5)}})
	if buf.String() != "-5 \n" {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestStdEnvPrintStringPrintsAsIs(t *testing.T) {
	var buf bytes.Buffer
	e := NewStdEnv(strings.NewReader(""), &buf)
	e.Print([]PrintArg{{Kind: ArgValue, Value: Str("hi")}})
	if buf.String() != "hi\n" {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestStdEnvPrintTrailingSemicolonSuppressesNewline(t *testing.T) {
	var buf bytes.Buffer
	e := NewStdEnv(strings.NewReader(""), &buf)
	e.Print([]PrintArg{{Kind: ArgValue, Value: Str("hi")}, {Kind: ArgSemicolon}})
	if buf.String() != "hi" {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestStdEnvInputParsesCommaSeparatedFields(t *testing.T) {
	var buf bytes.Buffer
	e := NewStdEnv(strings.NewReader("10,hello\n"), &buf)
	vals, err := e.Input("", []types.Kind{types.Integer, types.String})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vals) != 2 || vals[0].Num != 10 || vals[1].Str != "hello" {
		t.Fatalf("unexpected values: %+v", vals)
	}
}

func TestStdEnvInputRedoesOnFieldCountMismatch(t *testing.T) {
	var buf bytes.Buffer
	e := NewStdEnv(strings.NewReader("1\n1,2\n"), &buf)
	vals, err := e.Input("", []types.Kind{types.Integer, types.Integer})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vals) != 2 || vals[0].Num != 1 || vals[1].Num != 2 {
		t.Fatalf("unexpected values: %+v", vals)
	}
	if !strings.Contains(buf.String(), "Redo from start") {
		t.Fatalf("expected a Redo from start prompt, got %q", buf.String())
	}
}

func TestStdEnvInputRedoesOnBadNumericField(t *testing.T) {
	var buf bytes.Buffer
	e := NewStdEnv(strings.NewReader("not-a-number\n5\n"), &buf)
	vals, err := e.Input("", []types.Kind{types.Integer})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vals) != 1 || vals[0].Num != 5 {
		t.Fatalf("unexpected values: %+v", vals)
	}
}
