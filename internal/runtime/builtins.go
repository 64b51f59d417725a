package runtime

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/qbcompile/qbc/internal/token"
	"github.com/qbcompile/qbc/internal/types"
)

// BuiltinFn is one entry of the built-in function registry (spec.md §4.5):
// case-insensitive name match, then argument-count match is the caller's
// job (Call below); Run performs the actual computation.
type BuiltinFn func(pos token.Position, args []Value) (Value, error)

// Builtins is the registry of required built-ins with exact semantics
// (spec.md §4.5).
var Builtins = map[string]BuiltinFn{
	"chr$":   biChr,
	"instr":  biInstr,
	"lcase$": biLcase,
	"ucase$": biUcase,
	"left$":  biLeft,
	"right$": biRight,
	"mid$":   biMid,
	"len":    biLen,
	"str$":   biStr,
	"val":    biVal,
	"lbound": biLbound,
	"ubound": biUbound,
}

// Call resolves and invokes a built-in by case-insensitive name.
func Call(pos token.Position, name string, args []Value) (Value, error) {
	fn, ok := Builtins[strings.ToLower(name)]
	if !ok {
		return Value{}, runtimeErr(pos, "undefined built-in function %q", name)
	}
	return fn(pos, args)
}

func biChr(pos token.Position, args []Value) (Value, error) {
	if len(args) != 1 {
		return Value{}, runtimeErr(pos, "CHR$ expects 1 argument")
	}
	code := int(args[0].Num)
	if code < 0 || code > 0x10FFFF {
		return Value{}, runtimeErr(pos, "CHR$: code point %d out of range", code)
	}
	return Str(string(rune(code))), nil
}

// biInstr implements `INSTR([start,] hay, needle)`, 1-based, 0 on miss.
func biInstr(pos token.Position, args []Value) (Value, error) {
	var start int
	var hay, needle string
	switch len(args) {
	case 2:
		start, hay, needle = 1, args[0].Str, args[1].Str
	case 3:
		start, hay, needle = int(args[0].Num), args[1].Str, args[2].Str
	default:
		return Value{}, runtimeErr(pos, "INSTR expects 2 or 3 arguments")
	}
	if start < 1 {
		start = 1
	}
	runes := []rune(hay)
	if start > len(runes)+1 {
		return Num(types.Integer, 0), nil
	}
	idx := strings.Index(string(runes[start-1:]), needle)
	if idx < 0 {
		return Num(types.Integer, 0), nil
	}
	// idx is a byte offset into the substring; convert back to a rune
	// position and add the 1-based start offset.
	runePos := len([]rune(string(runes[start-1:])[:idx]))
	return Num(types.Integer, float64(start+runePos)), nil
}

func biLcase(pos token.Position, args []Value) (Value, error) {
	if len(args) != 1 {
		return Value{}, runtimeErr(pos, "LCASE$ expects 1 argument")
	}
	return Str(strings.ToLower(norm.NFC.String(args[0].Str))), nil
}

func biUcase(pos token.Position, args []Value) (Value, error) {
	if len(args) != 1 {
		return Value{}, runtimeErr(pos, "UCASE$ expects 1 argument")
	}
	return Str(strings.ToUpper(norm.NFC.String(args[0].Str))), nil
}

func biLeft(pos token.Position, args []Value) (Value, error) {
	if len(args) != 2 {
		return Value{}, runtimeErr(pos, "LEFT$ expects 2 arguments")
	}
	runes := []rune(args[0].Str)
	n := int(args[1].Num)
	if n < 0 {
		n = 0
	}
	if n > len(runes) {
		n = len(runes)
	}
	return Str(string(runes[:n])), nil
}

func biRight(pos token.Position, args []Value) (Value, error) {
	if len(args) != 2 {
		return Value{}, runtimeErr(pos, "RIGHT$ expects 2 arguments")
	}
	runes := []rune(args[0].Str)
	n := int(args[1].Num)
	if n < 0 {
		n = 0
	}
	if n > len(runes) {
		n = len(runes)
	}
	return Str(string(runes[len(runes)-n:])), nil
}

// biMid implements `MID$(s, start, len)`, 1-based start; a missing len
// means "to the end of the string".
func biMid(pos token.Position, args []Value) (Value, error) {
	if len(args) != 2 && len(args) != 3 {
		return Value{}, runtimeErr(pos, "MID$ expects 2 or 3 arguments")
	}
	runes := []rune(args[0].Str)
	start := int(args[1].Num)
	if start < 1 {
		start = 1
	}
	if start > len(runes) {
		return Str(""), nil
	}
	remaining := len(runes) - (start - 1)
	n := remaining
	if len(args) == 3 {
		n = int(args[2].Num)
		if n < 0 {
			n = 0
		}
		if n > remaining {
			n = remaining
		}
	}
	return Str(string(runes[start-1 : start-1+n])), nil
}

func biLen(pos token.Position, args []Value) (Value, error) {
	if len(args) != 1 {
		return Value{}, runtimeErr(pos, "LEN expects 1 argument")
	}
	return Num(types.Integer, float64(len([]rune(args[0].Str)))), nil
}

// biStr implements `STR$(n)`: a leading space marks non-negative numbers,
// matching the sign slot PRINT itself reserves (spec.md §4.5).
func biStr(pos token.Position, args []Value) (Value, error) {
	if len(args) != 1 {
		return Value{}, runtimeErr(pos, "STR$ expects 1 argument")
	}
	n := args[0].Num
	s := formatNumber(n)
	if n >= 0 {
		s = " " + s
	}
	return Str(s), nil
}

// biVal implements `VAL(s)`: decimal parse, 0 on failure.
func biVal(pos token.Position, args []Value) (Value, error) {
	if len(args) != 1 {
		return Value{}, runtimeErr(pos, "VAL expects 1 argument")
	}
	trimmed := strings.TrimSpace(args[0].Str)
	f, err := strconv.ParseFloat(leadingNumericPrefix(trimmed), 64)
	if err != nil {
		return Num(types.Double, 0), nil
	}
	return Num(types.Double, f), nil
}

// leadingNumericPrefix returns the longest prefix of s that could parse as
// a float, matching VAL's tolerant "parse what you can" behavior (e.g.
// VAL("12abc") is 12, not an error).
func leadingNumericPrefix(s string) string {
	end := 0
	seenDigit, seenDot, seenExp := false, false, false
	for i, ch := range s {
		switch {
		case ch >= '0' && ch <= '9':
			seenDigit = true
			end = i + 1
		case ch == '.' && !seenDot && !seenExp:
			seenDot = true
			end = i + 1
		case (ch == '+' || ch == '-') && i == 0:
			end = i + 1
		case (ch == 'e' || ch == 'E') && seenDigit && !seenExp:
			seenExp = true
			end = i + 1
		default:
			return s[:end]
		}
	}
	return s[:end]
}

func biLbound(pos token.Position, args []Value) (Value, error) {
	return arrayBound(pos, args, false)
}

func biUbound(pos token.Position, args []Value) (Value, error) {
	return arrayBound(pos, args, true)
}

func arrayBound(pos token.Position, args []Value, upper bool) (Value, error) {
	if len(args) < 1 || len(args) > 2 {
		return Value{}, runtimeErr(pos, "LBOUND/UBOUND expect 1 or 2 arguments")
	}
	if args[0].Arr == nil {
		return Value{}, runtimeErr(pos, "LBOUND/UBOUND's first argument must be an array")
	}
	dim := 1
	if len(args) == 2 {
		dim = int(args[1].Num)
	}
	b, err := args[0].Arr.Bound(pos, dim, upper)
	if err != nil {
		return Value{}, err
	}
	return Num(types.Integer, float64(b)), nil
}
