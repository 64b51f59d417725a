package runtime

import (
	"testing"

	"github.com/qbcompile/qbc/internal/token"
	"github.com/qbcompile/qbc/internal/types"
)

func call(t *testing.T, name string, args ...Value) Value {
	t.Helper()
	v, err := Call(token.Position{}, name, args)
	if err != nil {
		t.Fatalf("%s: unexpected error: %v", name, err)
	}
	return v
}

func TestBuiltinStringFunctions(t *testing.T) {
	if got := call(t, "LEFT$", Str("HELLO"), Num(types.Integer, 3)); got.Str != "HEL" {
		t.Fatalf("LEFT$: got %q", got.Str)
	}
	if got := call(t, "RIGHT$", Str("HELLO"), Num(types.Integer, 3)); got.Str != "LLO" {
		t.Fatalf("RIGHT$: got %q", got.Str)
	}
	if got := call(t, "MID$", Str("HELLO"), Num(types.Integer, 2), Num(types.Integer, 3)); got.Str != "ELL" {
		t.Fatalf("MID$: got %q", got.Str)
	}
	if got := call(t, "UCASE$", Str("hello")); got.Str != "HELLO" {
		t.Fatalf("UCASE$: got %q", got.Str)
	}
	if got := call(t, "LCASE$", Str("HELLO")); got.Str != "hello" {
		t.Fatalf("LCASE$: got %q", got.Str)
	}
	if got := call(t, "LEN", Str("HELLO")); got.Num != 5 {
		t.Fatalf("LEN: got %v", got.Num)
	}
}

func TestBuiltinInstr(t *testing.T) {
	if got := call(t, "INSTR", Str("HELLO WORLD"), Str("WORLD")); got.Num != 7 {
		t.Fatalf("INSTR: got %v", got.Num)
	}
	if got := call(t, "INSTR", Str("HELLO"), Str("X")); got.Num != 0 {
		t.Fatalf("INSTR miss: got %v", got.Num)
	}
}

func TestBuiltinChr(t *testing.T) {
	if got := call(t, "CHR$", Num(types.Integer, 65)); got.Str != "A" {
		t.Fatalf("CHR$: got %q", got.Str)
	}
}

func TestBuiltinStrAndVal(t *testing.T) {
	if got := call(t, "STR$", Num(types.Integer, 42)); got.Str != " 42" {
		t.Fatalf("STR$: got %q", got.Str)
	}
	if got := call(t, "VAL", Str("12abc")); got.Num != 12 {
		t.Fatalf("VAL: got %v", got.Num)
	}
	if got := call(t, "VAL", Str("not a number")); got.Num != 0 {
		t.Fatalf("VAL on garbage: got %v", got.Num)
	}
}

func TestBuiltinLboundUbound(t *testing.T) {
	a := ArrValue(NewArray(types.Integer, []types.Dim{{Lower: 2, Upper: 9}}))
	if got := call(t, "LBOUND", a); got.Num != 2 {
		t.Fatalf("LBOUND: got %v", got.Num)
	}
	if got := call(t, "UBOUND", a); got.Num != 9 {
		t.Fatalf("UBOUND: got %v", got.Num)
	}
}

func TestBuiltinUndefinedNameErrors(t *testing.T) {
	if _, err := Call(token.Position{}, "NOSUCHFUNC", nil); err == nil {
		t.Fatal("expected an error for an undefined built-in")
	}
}

func TestBuiltinNameLookupIsCaseInsensitive(t *testing.T) {
	if got := call(t, "Len", Str("abc")); got.Num != 3 {
		t.Fatalf("Len (mixed case): got %v", got.Num)
	}
}
