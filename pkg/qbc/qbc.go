// Package qbc is the compiler's public entry point: it wires the lexer,
// parser, semantic analyzer, and code generator into the single
// `Compile(source, opts)` call spec.md §6 describes as the core's external
// interface, mirroring the pipeline shape (but not the stdout-writing
// behavior) of the teacher's cmd/dwscript/cmd/compile.go's
// lex→parse→check→analyze→check→compile sequence.
package qbc

import (
	"fmt"

	"github.com/qbcompile/qbc/internal/codegen"
	"github.com/qbcompile/qbc/internal/lexer"
	"github.com/qbcompile/qbc/internal/parser"
	"github.com/qbcompile/qbc/internal/qerrors"
	"github.com/qbcompile/qbc/internal/runtime"
	"github.com/qbcompile/qbc/internal/semantic"
)

// Options configures one Compile call. SourceFileName is attached to the
// resulting Module and used in error messages; it has no effect on
// compilation itself.
type Options struct {
	SourceFileName string
}

// Result is everything a successful Compile call produces: the compiled,
// label-addressed module an Interpreter can run, and the source map
// attributing each compiled statement back to the program text.
type Result struct {
	Module *runtime.Module
	Map    *codegen.SourceMap
}

// Error is returned by Compile when any pipeline stage reports one or more
// problems. Stage names which one failed; Errors preserves every error the
// stage accumulated (lexing and parsing accumulate freely; the semantic
// analyzer and code generator report every independent invariant violation
// they find within their own single pass, per spec.md §7).
type Error struct {
	Stage  string
	Errors []*qerrors.Error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Stage, qerrors.FormatAll(e.Errors))
}

// Compile lowers QBasic source all the way to a runnable Module. It stops
// at the first stage that reports errors, returning them as an *Error
// rather than continuing with a partially-valid AST.
func Compile(source string, opts Options) (*Result, error) {
	l := lexer.New(source)
	p := parser.New(l)
	mod := p.ParseModule()

	if lexErrs := l.Errors(); len(lexErrs) > 0 {
		return nil, &Error{Stage: "lex", Errors: toQerrors(lexErrs)}
	}
	if perrs := p.Errors(); len(perrs) > 0 {
		return nil, &Error{Stage: "parse", Errors: perrs}
	}

	analyzer := semantic.New()
	if serrs := analyzer.Analyze(mod); len(serrs) > 0 {
		return nil, &Error{Stage: "semantic", Errors: serrs}
	}

	gen := codegen.New()
	compiledModule, sourceMap, gerrs := gen.Generate(mod, opts.SourceFileName)
	if len(gerrs) > 0 {
		return nil, &Error{Stage: "codegen", Errors: gerrs}
	}
	compiledModule.SourceFileName = opts.SourceFileName

	return &Result{Module: compiledModule, Map: sourceMap}, nil
}

func toQerrors(errs []lexer.Error) []*qerrors.Error {
	out := make([]*qerrors.Error, len(errs))
	for i, e := range errs {
		out[i] = qerrors.New(qerrors.KindLex, e.Pos, "%s", e.Message)
	}
	return out
}
