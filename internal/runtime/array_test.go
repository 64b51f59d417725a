package runtime

import (
	"testing"

	"github.com/qbcompile/qbc/internal/token"
	"github.com/qbcompile/qbc/internal/types"
)

func TestArrayGetSetRoundTrip(t *testing.T) {
	a := NewArray(types.Integer, []types.Dim{{Lower: 0, Upper: 4}})
	if err := a.Set(token.Position{}, []int{2}, Num(types.Integer, 42)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err := a.Get(token.Position{}, []int{2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Num != 42 {
		t.Fatalf("expected 42, got %v", v.Num)
	}
}

func TestArrayZeroFilled(t *testing.T) {
	a := NewArray(types.String, []types.Dim{{Lower: 1, Upper: 3}})
	v, err := a.Get(token.Position{}, []int{1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Str != "" {
		t.Fatalf("expected zero-value empty string, got %q", v.Str)
	}
}

func TestArrayOutOfRangeIndexErrors(t *testing.T) {
	a := NewArray(types.Integer, []types.Dim{{Lower: 0, Upper: 2}})
	if _, err := a.Get(token.Position{}, []int{5}); err == nil {
		t.Fatal("expected an out-of-range error")
	}
}

func TestArrayWrongDimensionCountErrors(t *testing.T) {
	a := NewArray(types.Integer, []types.Dim{{Lower: 0, Upper: 2}, {Lower: 0, Upper: 2}})
	if _, err := a.Get(token.Position{}, []int{1}); err == nil {
		t.Fatal("expected a dimension-count mismatch error")
	}
}

func TestArrayMultiDimRowMajorOffset(t *testing.T) {
	a := NewArray(types.Integer, []types.Dim{{Lower: 0, Upper: 1}, {Lower: 0, Upper: 2}})
	if err := a.Set(token.Position{}, []int{1, 2}, Num(types.Integer, 7)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err := a.Get(token.Position{}, []int{1, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Num != 7 {
		t.Fatalf("expected 7, got %v", v.Num)
	}
	if _, err := a.Get(token.Position{}, []int{0, 0}); err != nil {
		t.Fatalf("unexpected error for a distinct cell: %v", err)
	}
}

func TestArrayBound(t *testing.T) {
	a := NewArray(types.Integer, []types.Dim{{Lower: 2, Upper: 9}})
	lo, err := a.Bound(token.Position{}, 1, false)
	if err != nil || lo != 2 {
		t.Fatalf("expected lower bound 2, got %d (err=%v)", lo, err)
	}
	hi, err := a.Bound(token.Position{}, 1, true)
	if err != nil || hi != 9 {
		t.Fatalf("expected upper bound 9, got %d (err=%v)", hi, err)
	}
}
