// Package types implements the elementary/array type spec described in
// spec.md §3 and the numeric coercion lattice from spec.md §4.3.
package types

import "fmt"

// Kind tags an elementary or compound type.
type Kind int

const (
	Integer Kind = iota
	Long
	Single
	Double
	String
	Array
)

func (k Kind) String() string {
	switch k {
	case Integer:
		return "Integer"
	case Long:
		return "Long"
	case Single:
		return "Single"
	case Double:
		return "Double"
	case String:
		return "String"
	case Array:
		return "Array"
	default:
		return "Unknown"
	}
}

// Dim is one dimension bound of an array type, inclusive on both ends.
type Dim struct {
	Lower int
	Upper int
}

// Type is a tagged value: one of the five elementary kinds, or Array with
// an element type and a list of dimension bounds.
type Type struct {
	Kind Kind
	Elem *Type
	Dims []Dim
}

// Elementary constructs an elementary (non-array) type of the given kind.
func Elementary(k Kind) Type {
	return Type{Kind: k}
}

var (
	IntegerType = Elementary(Integer)
	LongType    = Elementary(Long)
	SingleType  = Elementary(Single)
	DoubleType  = Elementary(Double)
	StringType  = Elementary(String)
)

// NewArray constructs an array type over elem with the given dimensions.
func NewArray(elem Type, dims []Dim) Type {
	e := elem
	return Type{Kind: Array, Elem: &e, Dims: dims}
}

// Equal reports structural equality, per spec.md §3 "Equality is structural".
func (t Type) Equal(o Type) bool {
	if t.Kind != o.Kind {
		return false
	}
	if t.Kind != Array {
		return true
	}
	if len(t.Dims) != len(o.Dims) {
		return false
	}
	for i := range t.Dims {
		if t.Dims[i] != o.Dims[i] {
			return false
		}
	}
	if t.Elem == nil || o.Elem == nil {
		return t.Elem == o.Elem
	}
	return t.Elem.Equal(*o.Elem)
}

func (t Type) String() string {
	if t.Kind != Array {
		return t.Kind.String()
	}
	s := "Array of " + t.Elem.String() + "("
	for i, d := range t.Dims {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%d TO %d", d.Lower, d.Upper)
	}
	return s + ")"
}

// IsNumeric reports whether t is one of the four numeric elementary kinds.
func (t Type) IsNumeric() bool {
	switch t.Kind {
	case Integer, Long, Single, Double:
		return true
	default:
		return false
	}
}

// IsString reports whether t is the String kind.
func (t Type) IsString() bool { return t.Kind == String }

// IsElementary reports whether t is any non-Array kind.
func (t Type) IsElementary() bool { return t.Kind != Array }

// MatchingElementary reports whether a and b are "the same flavour": both
// numeric, or both string. Used by built-in/function-call argument
// matching (spec.md §4.3 step 4, §4.5 built-in resolution).
func MatchingElementary(a, b Type) bool {
	if a.IsNumeric() && b.IsNumeric() {
		return true
	}
	return a.IsString() && b.IsString()
}

// rank orders the numeric kinds from narrowest to widest for the coercion
// lattice in spec.md §4.3: Integer < Long < Single < Double.
var rank = map[Kind]int{
	Integer: 0,
	Long:    1,
	Single:  2,
	Double:  3,
}

// widenTable is the literal pairwise-widening lookup spec.md §4.3 calls
// for ("the table is lookup-based so an implementer can read it off a
// literal data declaration"). Indexed [a][b] by Kind; only numeric kinds
// are populated.
var widenTable = map[[2]Kind]Kind{
	{Integer, Integer}: Integer,
	{Integer, Long}:    Long,
	{Integer, Single}:  Single,
	{Integer, Double}:  Double,
	{Long, Integer}:    Long,
	{Long, Long}:       Long,
	{Long, Single}:     Single,
	{Long, Double}:     Double,
	{Single, Integer}:  Single,
	{Single, Long}:     Single,
	{Single, Single}:   Single,
	{Single, Double}:   Double,
	{Double, Integer}:  Double,
	{Double, Long}:     Double,
	{Double, Single}:   Double,
	{Double, Double}:   Double,
}

// Widen returns the coerced result type of combining two numeric operand
// types, per the widening table above. Callers must ensure both operands
// are numeric; Widen does not validate this.
func Widen(a, b Type) Type {
	if k, ok := widenTable[[2]Kind{a.Kind, b.Kind}]; ok {
		return Elementary(k)
	}
	// Defensive fallback consistent with the rank ordering, exercised only
	// if widenTable is ever missing an entry.
	if rank[a.Kind] >= rank[b.Kind] {
		return Elementary(a.Kind)
	}
	return Elementary(b.Kind)
}

// WidenAll left-folds Widen over a slice of numeric types, matching
// spec.md §8's "coercion is associative left-to-right" invariant.
func WidenAll(ts []Type) Type {
	if len(ts) == 0 {
		return SingleType
	}
	result := ts[0]
	for _, t := range ts[1:] {
		result = Widen(result, t)
	}
	return result
}

// SigilKind maps a trailing type-sigil character to its elementary Kind,
// per spec.md §3 "Type sigil suffix". Absent sigil defaults to Single.
func SigilKind(sigil byte) Kind {
	switch sigil {
	case '%':
		return Integer
	case '&':
		return Long
	case '!':
		return Single
	case '#':
		return Double
	case '$':
		return String
	default:
		return Single
	}
}

// KindFromName infers the elementary Kind implied by an identifier's
// trailing sigil, defaulting to Single when there is none.
func KindFromName(name string) Kind {
	if name == "" {
		return Single
	}
	last := name[len(name)-1]
	switch last {
	case '%', '&', '!', '#', '$':
		return SigilKind(last)
	default:
		return Single
	}
}
