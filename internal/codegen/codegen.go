// Package codegen lowers an analyzed AST into the flat, label-addressed
// statement form spec.md §4.4 describes: each source statement becomes one
// or more runtime.CompiledStmt entries, control flow is expressed purely
// through the runtime.Directive a Runnable's Run may return, and every
// Runnable keeps the source position of the statement it was lowered from
// (spec.md §4.4 "source maps").
//
// The generator keeps a loopStack/forStack per proc/module scope exactly
// like the teacher's bytecode.Compiler.loopStack (pushLoop/popLoop,
// patchLoopBreaks), except a frame records a destination label name rather
// than a bytecode offset to patch, since this target is a label+directive
// list rather than an offset-addressed chunk.
package codegen

import (
	"fmt"

	"github.com/qbcompile/qbc/internal/ast"
	"github.com/qbcompile/qbc/internal/qerrors"
	"github.com/qbcompile/qbc/internal/runtime"
	"github.com/qbcompile/qbc/internal/token"
)

// Generator lowers one analyzed *ast.Module into a *runtime.Module. It is
// not reentrant across concurrent modules; construct a new Generator per
// call if needed, matching the single-traversal resource model of spec.md
// §5 ("these mutations are confined to one walk of one module").
type Generator struct {
	errors []*qerrors.Error
}

func New() *Generator { return &Generator{} }

func (g *Generator) Errors() []*qerrors.Error { return g.errors }

func (g *Generator) errorf(pos token.Position, format string, args ...any) {
	g.errors = append(g.errors, qerrors.New(qerrors.KindCodegen, pos, format, args...))
}

// Generate lowers mod into a runtime.Module plus the source map spec.md
// §4.4/§6 requires, and returns any codegen errors accumulated along the
// way. Generation proceeds even after an error is recorded, so a caller
// sees every problem in one pass, matching the lexer/parser's
// accumulate-don't-stop posture (spec.md §7 discusses only the analyzer as
// first-fatal; codegen's own invariant violations are structural and each
// is independently reportable).
func (g *Generator) Generate(mod *ast.Module, sourceFileName string) (*runtime.Module, *SourceMap, []*qerrors.Error) {
	out := &runtime.Module{SourceFileName: sourceFileName}

	for _, proc := range mod.Procs {
		scope := newScope()
		g.genStmts(proc.Stmts, scope)
		g.closeScope(proc.Loc, scope, proc.Name)
		out.Procs = append(out.Procs, runtime.CompiledProc{
			Name:       proc.Name,
			ParamNames: append([]string(nil), proc.Params...),
			Stmts:      scope.stmts,
		})
	}

	topScope := newScope()
	g.genStmts(mod.Stmts, topScope)
	g.closeScope(token.Position{}, topScope, "")
	out.Stmts = topScope.stmts

	if len(g.errors) > 0 {
		return out, nil, g.errors
	}

	sm := buildSourceMap(out)
	return out, sm, nil
}

// closeScope enforces spec.md §8's "the open-FOR and open-loop stacks are
// empty when a proc's statement list is exhausted" testable property.
func (g *Generator) closeScope(pos token.Position, scope *genScope, procName string) {
	where := "module"
	if procName != "" {
		where = fmt.Sprintf("function %q", procName)
	}
	if len(scope.forStack) > 0 {
		g.errorf(pos, "unclosed FOR in %s", where)
	}
	if len(scope.loopStack) > 0 {
		g.errorf(pos, "unclosed DO in %s", where)
	}
}
