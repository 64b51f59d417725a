package semantic

import "github.com/qbcompile/qbc/internal/types"

// builtinSig is the semantic analyzer's own compile-time mirror of the
// runtime built-in registry (spec.md §4.5). The runtime registry resolves
// overloads dynamically by argument count and elementary-kind matching;
// the analyzer needs a matching compile-time shape purely so every FnCall
// that turns out to name a built-in still gets a non-null type, per the
// "every expression has a non-null type" invariant (spec.md §3) — this is
// an Open Question resolution recorded in DESIGN.md, since spec.md's
// built-in registry is described as a runtime concept (§4.5), not
// something the analyzer consults.
type builtinSig struct {
	minArgs int
	maxArgs int // -1 means same as minArgs is not fixed; set explicitly per entry
	result  types.Type
}

// builtins enumerates the required built-ins from spec.md §4.5, keyed by
// lower-cased name including any trailing `$` sigil.
var builtins = map[string]builtinSig{
	"chr$":   {minArgs: 1, maxArgs: 1, result: types.StringType},
	"instr":  {minArgs: 2, maxArgs: 3, result: types.IntegerType},
	"lcase$": {minArgs: 1, maxArgs: 1, result: types.StringType},
	"ucase$": {minArgs: 1, maxArgs: 1, result: types.StringType},
	"left$":  {minArgs: 2, maxArgs: 2, result: types.StringType},
	"right$": {minArgs: 2, maxArgs: 2, result: types.StringType},
	"mid$":   {minArgs: 2, maxArgs: 3, result: types.StringType},
	"len":    {minArgs: 1, maxArgs: 1, result: types.IntegerType},
	"str$":   {minArgs: 1, maxArgs: 1, result: types.StringType},
	"val":    {minArgs: 1, maxArgs: 1, result: types.DoubleType},
}

// arrayBuiltins are LBOUND/UBOUND: their first argument is an array, not an
// elementary value, so they are resolved separately from the generic
// builtins table (spec.md §4.5 "LBOUND(a[, dim]), UBOUND(a[, dim])").
var arrayBuiltins = map[string]bool{
	"lbound": true,
	"ubound": true,
}
