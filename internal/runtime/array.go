package runtime

import (
	"github.com/qbcompile/qbc/internal/token"
	"github.com/qbcompile/qbc/internal/types"
)

// Array is the runtime array object described in spec.md §4.5: a typed,
// multi-dimensional store with explicit per-dim bounds, indexed in
// row-major order over a flat backing slice.
type Array struct {
	Elem types.Kind
	Dims []types.Dim
	Data []Value
}

// NewArray allocates an array over dims, zero-filled per elem's kind.
func NewArray(elem types.Kind, dims []types.Dim) *Array {
	size := 1
	for _, d := range dims {
		size *= d.Upper - d.Lower + 1
	}
	data := make([]Value, size)
	for i := range data {
		data[i] = Zero(elem)
	}
	return &Array{Elem: elem, Dims: dims, Data: data}
}

// offset computes the row-major flat index for idx, or an error if idx is
// out of range or has the wrong dimensionality.
func (a *Array) offset(pos token.Position, idx []int) (int, error) {
	if len(idx) != len(a.Dims) {
		return 0, runtimeErr(pos, "array index count %d does not match declared %d dimension(s)", len(idx), len(a.Dims))
	}
	offset := 0
	for i, d := range a.Dims {
		if idx[i] < d.Lower || idx[i] > d.Upper {
			return 0, runtimeErr(pos, "array index %d out of range (%d TO %d)", idx[i], d.Lower, d.Upper)
		}
		offset = offset*(d.Upper-d.Lower+1) + (idx[i] - d.Lower)
	}
	return offset, nil
}

func (a *Array) Get(pos token.Position, idx []int) (Value, error) {
	off, err := a.offset(pos, idx)
	if err != nil {
		return Value{}, err
	}
	return a.Data[off], nil
}

func (a *Array) Set(pos token.Position, idx []int, v Value) error {
	off, err := a.offset(pos, idx)
	if err != nil {
		return err
	}
	a.Data[off] = v
	return nil
}

// Bound returns the lower or upper bound of dim (1-based), per spec.md
// §4.5's LBOUND/UBOUND contract.
func (a *Array) Bound(pos token.Position, dim int, upper bool) (int, error) {
	if dim < 1 || dim > len(a.Dims) {
		return 0, runtimeErr(pos, "dimension %d out of range for array with %d dimension(s)", dim, len(a.Dims))
	}
	d := a.Dims[dim-1]
	if upper {
		return d.Upper, nil
	}
	return d.Lower, nil
}
