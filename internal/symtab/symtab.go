// Package symtab implements the insertion-ordered, case-insensitive symbol
// table described in spec.md §3.
package symtab

import (
	"strings"

	"github.com/qbcompile/qbc/internal/types"
)

// Kind classifies what a Symbol denotes.
type Kind int

const (
	Var Kind = iota
	Arg
	Const
)

// Scope classifies where a Symbol lives.
type Scope int

const (
	Local Scope = iota
	Global
)

// Symbol is one named entry: a variable, parameter, or constant.
type Symbol struct {
	Name  string // original-case spelling, kept for diagnostics
	Kind  Kind
	Type  types.Type
	Scope Scope
}

// Table is an insertion-ordered, case-insensitive symbol table. Lookup is
// case-insensitive (QBasic identifiers fold case), but the original
// spelling of each name is preserved for error messages.
type Table struct {
	order []string // canonical (lower-cased) names, insertion order
	byKey map[string]*Symbol
}

// New returns an empty Table.
func New() *Table {
	return &Table{byKey: make(map[string]*Symbol)}
}

func canonical(name string) string { return strings.ToLower(name) }

// Lookup returns the symbol named name (case-insensitively), or nil.
func (t *Table) Lookup(name string) *Symbol {
	return t.byKey[canonical(name)]
}

// Define inserts a new symbol, appending it to the insertion order. Define
// does not check for duplicates; callers that care about redeclaration do
// that check themselves via Lookup first.
func (t *Table) Define(name string, kind Kind, typ types.Type, scope Scope) *Symbol {
	key := canonical(name)
	sym := &Symbol{Name: name, Kind: kind, Type: typ, Scope: scope}
	if _, exists := t.byKey[key]; !exists {
		t.order = append(t.order, key)
	}
	t.byKey[key] = sym
	return sym
}

// Symbols returns all symbols in insertion order.
func (t *Table) Symbols() []*Symbol {
	out := make([]*Symbol, 0, len(t.order))
	for _, key := range t.order {
		out = append(out, t.byKey[key])
	}
	return out
}

// Len returns the number of defined symbols.
func (t *Table) Len() int { return len(t.order) }
